package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var includePattern = regexp.MustCompile(`#include\s+"([^"]+)"`)

// Includes returns the quoted include paths of src in order of appearance
func Includes(src string) []string {
	var paths []string
	for _, m := range includePattern.FindAllStringSubmatch(src, -1) {
		paths = append(paths, m[1])
	}
	return paths
}

// Packer collects a root file and its direct local includes
type Packer struct {
	// Dir is the directory include paths resolve against; empty means the process working directory
	Dir string
	// Warn receives non-fatal problems such as missing includes
	Warn func(format string, args ...any)
}

// Pack reads root and each distinct file it includes (one level deep).
// Entries are named as written on the command line or in the directive.
func (p *Packer) Pack(root string) ([]Entry, error) {
	rootAbs, err := p.abs(root)
	if err != nil {
		return nil, fmt.Errorf("Could not read the main C++ file: %s: %w", root, err)
	}
	data, err := os.ReadFile(rootAbs)
	if err != nil {
		return nil, fmt.Errorf("Could not read the main C++ file: %s: %w", root, err)
	}
	content := string(data)

	entries := []Entry{{Name: root, Content: content}}
	seen := map[string]bool{rootAbs: true}

	for _, inc := range Includes(content) {
		incAbs, err := p.abs(inc)
		if err != nil {
			p.warn("Could not resolve included file '%s': %v", inc, err)
			continue
		}
		if seen[incAbs] {
			p.warn("Skipping duplicate or already processed include: '%s'", inc)
			continue
		}
		seen[incAbs] = true

		data, err := os.ReadFile(incAbs)
		if err != nil {
			if os.IsNotExist(err) {
				p.warn("Included file not found: '%s' (resolved to '%s')", inc, incAbs)
			} else {
				p.warn("Could not read included file '%s': %v", inc, err)
			}
			continue
		}
		entries = append(entries, Entry{Name: inc, Content: string(data)})
	}
	return entries, nil
}

func (p *Packer) abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	dir := p.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}
	return filepath.Join(dir, path), nil
}

func (p *Packer) warn(format string, args ...any) {
	if p.Warn != nil {
		p.Warn(format, args...)
	}
}
