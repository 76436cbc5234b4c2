package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DefaultBackupRetention is the default number of backups to keep
const DefaultBackupRetention = 3

// BackupManager keeps rotating copies of a file next to it
type BackupManager struct {
	// MaxBackups is the maximum number of backups to retain
	MaxBackups int
	now        func() time.Time
}

// NewBackupManager creates a BackupManager; maxBackups <= 0 uses the default
func NewBackupManager(maxBackups int) *BackupManager {
	if maxBackups <= 0 {
		maxBackups = DefaultBackupRetention
	}
	return &BackupManager{MaxBackups: maxBackups, now: time.Now}
}

// CreateBackup copies filePath to filePath.backup-YYYYMMDDHHMMSS-PID
func (bm *BackupManager) CreateBackup(filePath string) (string, error) {
	backupPath := fmt.Sprintf("%s.backup-%s-%d", filePath, bm.now().Format("20060102150405"), os.Getpid())
	if err := copyFile(filePath, backupPath); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	return backupPath, nil
}

// ListBackups returns the backups of filePath, oldest first
func (bm *BackupManager) ListBackups(filePath string) ([]string, error) {
	backups, err := filepath.Glob(filePath + ".backup-*")
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	type dated struct {
		path string
		mod  time.Time
	}
	items := make([]dated, 0, len(backups))
	for _, b := range backups {
		info, err := os.Stat(b)
		if err != nil {
			continue
		}
		items = append(items, dated{b, info.ModTime()})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].mod.Equal(items[j].mod) {
			return items[i].path < items[j].path
		}
		return items[i].mod.Before(items[j].mod)
	})

	sorted := make([]string, len(items))
	for i, it := range items {
		sorted[i] = it.path
	}
	return sorted, nil
}

// CleanupOldBackups removes all but the newest MaxBackups backups
func (bm *BackupManager) CleanupOldBackups(filePath string) error {
	backups, err := bm.ListBackups(filePath)
	if err != nil {
		return err
	}
	excess := len(backups) - bm.MaxBackups
	for i := 0; i < excess; i++ {
		if err := os.Remove(backups[i]); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i], err)
		}
	}
	return nil
}

// RestoreFromLatestBackup copies the newest backup over filePath
func (bm *BackupManager) RestoreFromLatestBackup(filePath string) error {
	backups, err := bm.ListBackups(filePath)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backup files found for %s", filePath)
	}
	if err := copyFile(backups[len(backups)-1], filePath); err != nil {
		return fmt.Errorf("failed to restore from backup: %w", err)
	}
	return nil
}

// copyFile copies src to dst, keeping the permission bits of src
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, info.Mode().Perm())
}
