package util

import (
	"errors"
	"path"
	"strings"
)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// FileExt returns a lowercased extension (including the dot) inferred from a
// file name, or empty when none is present.
func FileExt(name string) string {
	ext := strings.ToLower(strings.TrimSpace(path.Ext(name)))
	if ext == "." {
		return ""
	}
	return ext
}

// StripNonASCII drops non-ASCII runes and trims surrounding whitespace.
// Model output occasionally carries smart quotes and stray unicode.
func StripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
