// Package stacktrace finds local source files referenced by a crash trace.
package stacktrace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var locationPattern = regexp.MustCompile(`\s(\S+?):\d+`)

var ignoredPrefixes = []string{"http://", "https://", "chrome://", "file://", "<unknown>"}

// Extract returns the sorted, de-duplicated absolute paths of regular files
// under cwd that the trace references as "path:line".
func Extract(trace, cwd string) []string {
	cwd = filepath.Clean(cwd)
	seen := map[string]bool{}
	var files []string

	for _, line := range strings.Split(trace, "\n") {
		m := locationPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ref := m[1]
		if ignored(ref) {
			continue
		}

		path := ref
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		path = filepath.Clean(path)
		if !within(cwd, path) || seen[path] {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		seen[path] = true
		files = append(files, path)
	}

	sort.Strings(files)
	return files
}

func ignored(ref string) bool {
	for _, p := range ignoredPrefixes {
		if strings.HasPrefix(ref, p) {
			return true
		}
	}
	return false
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Render writes the trace followed by every referenced file
func Render(w io.Writer, trace string, files []string) error {
	if _, err := fmt.Fprintln(w, trace); err != nil {
		return err
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintf(w, "\nWarning: Could not read file %s: %v\n", f, err)
			continue
		}
		if _, err := fmt.Fprintf(w, "\n>>> %s\n%s\n", f, data); err != nil {
			return err
		}
	}
	return nil
}
