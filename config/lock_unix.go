//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package config

import (
	"os"

	"golang.org/x/sys/unix"
)

func flock(f *os.File, how int) error {
	for {
		err := unix.Flock(int(f.Fd()), how)
		if err != unix.EINTR {
			return err
		}
	}
}

// lockFileExclusive takes the write lock
func lockFileExclusive(f *os.File) error {
	return flock(f, unix.LOCK_EX)
}

// lockFileShared takes the read lock
func lockFileShared(f *os.File) error {
	return flock(f, unix.LOCK_SH)
}

func unlockFile(f *os.File) error {
	return flock(f, unix.LOCK_UN)
}
