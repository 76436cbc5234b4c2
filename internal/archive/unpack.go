package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Summary reports what an Unpack call did
type Summary struct {
	Written []string
	Skipped int
	Failed  int
}

// Unpacker writes archive entries below a base directory
type Unpacker struct {
	// Dir is the base directory; empty means the process working directory
	Dir string
	// Info receives one line per written file
	Info func(format string, args ...any)
	// Warn receives skipped entries and write failures
	Warn func(format string, args ...any)
}

// SafePath reduces an entry name to a relative path without empty, "." or
// ".." components. ok is false when nothing remains.
func SafePath(name string) (path string, ok bool) {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})

	kept := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			continue
		}
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return "", false
	}
	return filepath.Join(kept...), true
}

// Unpack writes each entry. Directories are never created: entries whose
// directory does not already exist are skipped. Failures are per entry.
func (u *Unpacker) Unpack(entries []Entry) Summary {
	var sum Summary
	for _, e := range entries {
		rel, ok := SafePath(e.Name)
		if !ok {
			u.warn("Skipping file with invalid or empty name after sanitization: '%s'", e.Name)
			sum.Skipped++
			continue
		}

		dir := filepath.Dir(rel)
		if dir != "." {
			info, err := os.Stat(u.join(dir))
			if err != nil || !info.IsDir() {
				u.warn("Directory '%s' for file '%s' does not exist. Skipping this file.", dir, e.Name)
				sum.Skipped++
				continue
			}
		}

		content := e.Content
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		if err := os.WriteFile(u.join(rel), []byte(content), 0644); err != nil {
			u.warn("Could not write file '%s': %v", rel, err)
			sum.Failed++
			continue
		}
		u.info("Successfully unpacked '%s'", rel)
		sum.Written = append(sum.Written, rel)
	}
	return sum
}

// UnpackText decodes text and unpacks the entries
func (u *Unpacker) UnpackText(text string) Summary {
	return u.Unpack(Decode(text))
}

func (u *Unpacker) join(rel string) string {
	if u.Dir == "" {
		return rel
	}
	return filepath.Join(u.Dir, rel)
}

func (u *Unpacker) info(format string, args ...any) {
	if u.Info != nil {
		u.Info(format, args...)
	}
}

func (u *Unpacker) warn(format string, args ...any) {
	if u.Warn != nil {
		u.Warn(format, args...)
	}
}

// String renders the closing line printed after unpacking
func (s Summary) String() string {
	return fmt.Sprintf("Unpacking complete. %d files unpacked.", len(s.Written))
}
