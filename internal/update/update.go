// Package update checks whether a source checkout of clippy is behind upstream.
package update

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RepoURL identifies the upstream repository
const RepoURL = "https://github.com/nedn/clippy"

// Git runs a git subcommand in dir and returns trimmed stdout
type Git func(dir string, args ...string) (string, error)

// ExecGit runs the git binary
func ExecGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	err := cmd.Run()
	return strings.TrimSpace(out.String()), err
}

// Checker compares a checkout with origin/main
type Checker struct {
	Dir string
	Git Git
}

// NewChecker checks the directory holding the running executable
func NewChecker() *Checker {
	dir := ""
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir = filepath.Dir(exe)
	}
	return &Checker{Dir: dir, Git: ExecGit}
}

// Behind reports whether the checkout is strictly behind origin/main.
// Every failure, including not being a checkout, reports false.
func (c *Checker) Behind() bool {
	if c.Dir == "" {
		return false
	}
	if _, err := os.Stat(filepath.Join(c.Dir, ".git")); err != nil {
		return false
	}

	origin, err := c.Git(c.Dir, "remote", "get-url", "origin")
	if err != nil || !strings.Contains(origin, RepoURL) {
		return false
	}
	if _, err := c.Git(c.Dir, "fetch", "origin", "main", "--quiet"); err != nil {
		return false
	}

	local, err := c.Git(c.Dir, "rev-parse", "HEAD")
	if err != nil {
		return false
	}
	remote, err := c.Git(c.Dir, "rev-parse", "origin/main")
	if err != nil || local == remote {
		return false
	}

	// behind means HEAD is an ancestor of origin/main
	_, err = c.Git(c.Dir, "merge-base", "--is-ancestor", "HEAD", "origin/main")
	return err == nil
}
