package ui

import "strings"

const maskedKey = "****"

// MaskAPIKey keeps the first and last four characters of key. Keys of eight
// characters or fewer are hidden entirely.
func MaskAPIKey(key string) string {
	r := []rune(key)
	if len(r) <= 8 {
		return maskedKey
	}
	var b strings.Builder
	b.WriteString(string(r[:4]))
	b.WriteString(maskedKey)
	b.WriteString(string(r[len(r)-4:]))
	return b.String()
}
