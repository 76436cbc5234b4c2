// Package archive implements the ">>>>name" text archive used to bundle a
// source file with its local includes and to split such bundles back into files.
package archive

import (
	"strings"
)

// Marker starts every entry header line
const Marker = ">>>>"

// Entry is one named file inside an archive
type Entry struct {
	Name    string
	Content string
}

// Encode renders entries as ">>>>name\ncontent" blocks joined by newlines.
// The result always ends with a newline unless it is empty.
func Encode(entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, Marker+e.Name+"\n"+e.Content)
	}
	out := strings.Join(parts, "\n")
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// Decode splits text into entries. Anything before the first marker is
// ignored. A header is the marker followed by the name up to the end of the
// line; content runs until the next line starting with the marker or the end
// of text. A header without a terminating newline produces no entry.
func Decode(text string) []Entry {
	var entries []Entry

	i := strings.Index(text, Marker)
	for i >= 0 {
		headerStart := i + len(Marker)
		nl := strings.IndexByte(text[headerStart:], '\n')
		if nl < 0 {
			break
		}
		nl += headerStart

		name := strings.TrimSpace(text[headerStart:nl])

		// search from the header newline so an entry may be empty
		next := strings.Index(text[nl:], "\n"+Marker)
		var content string
		if next < 0 {
			content = text[nl+1:]
			i = -1
		} else {
			next += nl
			if next < nl+1 {
				content = ""
			} else {
				content = text[nl+1 : next]
			}
			i = next + 1
		}

		entries = append(entries, Entry{Name: name, Content: content})
	}
	return entries
}
