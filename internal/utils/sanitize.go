// internal/utils/sanitize.go
package utils

import (
	"strings"
	"unicode/utf8"
)

const maxSanitizedLength = 1000

// SanitizeString trims whitespace, strips angle brackets and caps the
// length at 1000 characters. The cap counts runes, not bytes, so a
// multibyte input is never cut mid-character. This is defense in depth
// for plain-text fields, not an HTML sanitizer; output encoding remains
// the renderer's job.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	if utf8.RuneCountInString(s) > maxSanitizedLength {
		runes := []rune(s)
		s = string(runes[:maxSanitizedLength])
	}
	return s
}

const (
	maxTags      = 10
	maxTagLength = 30
)

// ParseTags turns a comma-separated string into a normalized tag set:
// trimmed, lowercased, deduplicated in first-seen order, empty and
// overlong entries dropped, at most ten tags.
func ParseTags(raw string) []string {
	tags := []string{}
	seen := make(map[string]bool)

	for _, part := range strings.Split(raw, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" || len(tag) > maxTagLength || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}

	return tags
}
