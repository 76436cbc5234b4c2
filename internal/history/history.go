// Package history stores one JSON log file per assistant interaction.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const logExt = ".log"

// Entry is a logged interaction
type Entry struct {
	Timestamp    int64  `json:"timestamp"`
	Prompt       string `json:"prompt"`
	ModelName    string `json:"model_name"`
	ProviderType string `json:"provider_type"`
	Response     string `json:"response"`
}

// Time returns the entry timestamp as local time
func (e Entry) Time() time.Time {
	return time.Unix(e.Timestamp, 0)
}

// Store manages the history directory
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a Store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the history directory
func (s *Store) Dir() string {
	return s.dir
}

// Save writes e to <dir>/<timestamp>.log. A zero timestamp is set to now.
func (s *Store) Save(e Entry) (string, error) {
	if e.Timestamp == 0 {
		e.Timestamp = s.now().Unix()
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize history entry: %w", err)
	}
	path := filepath.Join(s.dir, strconv.FormatInt(e.Timestamp, 10)+logExt)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write history file: %w", err)
	}
	return path, nil
}

// Files returns the log files ordered oldest first.
// A missing directory yields no files.
func (s *Store) Files() ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	type stamped struct {
		path string
		ts   int64
	}
	var logs []stamped
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, logExt) {
			continue
		}
		ts, err := strconv.ParseInt(strings.TrimSuffix(name, logExt), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected file in history directory: %s", name)
		}
		logs = append(logs, stamped{path: filepath.Join(s.dir, name), ts: ts})
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].ts < logs[j].ts })
	files := make([]string, len(logs))
	for i, l := range logs {
		files[i] = l.path
	}
	return files, nil
}

// Read loads one log file
func (s *Store) Read(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", filepath.Base(path), err)
	}
	return &e, nil
}

// Latest returns up to n log files, newest first
func (s *Store) Latest(n int) ([]string, error) {
	files, err := s.Files()
	if err != nil {
		return nil, err
	}
	if n > len(files) {
		n = len(files)
	}
	if n <= 0 {
		return nil, nil
	}
	latest := make([]string, 0, n)
	for i := len(files) - 1; i >= len(files)-n; i-- {
		latest = append(latest, files[i])
	}
	return latest, nil
}

// Clear deletes log files: count > 0 removes the count oldest, count < 0
// keeps only the |count| newest. It returns the number of files removed.
func (s *Store) Clear(count int) (int, error) {
	if count == 0 {
		return 0, fmt.Errorf("count must be a non-zero integer")
	}
	files, err := s.Files()
	if err != nil {
		return 0, err
	}

	var doomed []string
	if count > 0 {
		if count > len(files) {
			count = len(files)
		}
		doomed = files[:count]
	} else if keep := -count; keep < len(files) {
		doomed = files[:len(files)-keep]
	}

	removed := 0
	for _, f := range doomed {
		if err := os.Remove(f); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", filepath.Base(f), err)
		}
		removed++
	}
	return removed, nil
}

// TimestampOf parses the unix timestamp encoded in a log file name
func TimestampOf(path string) (time.Time, error) {
	ts, err := strconv.ParseInt(strings.TrimSuffix(filepath.Base(path), logExt), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid history file name: %s", filepath.Base(path))
	}
	return time.Unix(ts, 0), nil
}
