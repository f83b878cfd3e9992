package extractor

import (
	"regexp"

	"github.com/kkdai/youtube/v2"
)

// The accepted URL surface: watch-query, short-link, embed and shorts forms,
// each carrying an 11 character video identifier. This gate is the only
// defense against smuggling arbitrary strings into the extractor invocation,
// so every handler must pass URLs through it before doing anything else.
var urlShapes = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(www\.|m\.)?youtube\.com/watch\?([^#]*&)?v=[A-Za-z0-9_-]{11}([&#].*)?$`),
	regexp.MustCompile(`^https?://youtu\.be/[A-Za-z0-9_-]{11}([?#].*)?$`),
	regexp.MustCompile(`^https?://(www\.|m\.)?youtube\.com/embed/[A-Za-z0-9_-]{11}([?#].*)?$`),
	regexp.MustCompile(`^https?://(www\.|m\.)?youtube\.com/shorts/[A-Za-z0-9_-]{11}([?#].*)?$`),
}

// ValidURL reports whether raw is a supported video URL. Purely syntactic;
// no network access is performed.
func ValidURL(raw string) bool {
	for _, shape := range urlShapes {
		if shape.MatchString(raw) {
			// Shapes matched; confirm a canonical video ID can be derived.
			if _, err := youtube.ExtractVideoID(raw); err != nil {
				return false
			}
			return true
		}
	}
	return false
}
