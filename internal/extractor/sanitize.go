package extractor

import (
	"regexp"
	"strings"
)

const maxFilenameLen = 100

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._ -]+`)

// SanitizeFilename strips characters outside the safe filename alphabet and
// bounds the result to 100 characters. Idempotent: sanitizing twice yields
// the same string.
func SanitizeFilename(name string) string {
	s := unsafeFilenameChars.ReplaceAllString(name, "")
	s = strings.TrimSpace(s)
	if len(s) > maxFilenameLen {
		s = strings.TrimSpace(s[:maxFilenameLen])
	}
	return s
}
