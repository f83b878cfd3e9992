package extractor

import (
	"fmt"
	"strings"
)

// Kind tags an extraction failure so callers branch on a type, not on
// substring searches against upstream diagnostics.
type Kind int

const (
	KindUnknown Kind = iota
	// KindAuthRequired marks an anti-automation refusal by the upstream site.
	KindAuthRequired
	// KindNotFound marks a video that the upstream site says does not exist.
	KindNotFound
	// KindRateLimited marks upstream throttling of the server's address.
	KindRateLimited
	// KindBadPayload marks extractor output that could not be parsed.
	KindBadPayload
	// KindLaunch marks a failure to spawn the extractor at all.
	KindLaunch
	// KindTimeout marks an invocation cut off by the bounded wait.
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindAuthRequired:
		return "auth_required"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindBadPayload:
		return "bad_payload"
	case KindLaunch:
		return "launch_failed"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is a classified extraction failure. Detail carries the upstream
// diagnostic text for the response body.
type Error struct {
	Kind     Kind
	Detail   string
	ExitCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("extractor: %s: %s", e.Kind, e.Detail)
}

// The trigger phrases below are coupled to the extraction tool's message
// wording and may drift between tool versions. Keep them lowercase.
var diagnosticPatterns = []struct {
	kind     Kind
	patterns []string
}{
	{KindAuthRequired, []string{
		"sign in to confirm",
		"login required",
		"requires authentication",
		"use --cookies",
		"confirm your age",
	}},
	{KindRateLimited, []string{
		"http error 429",
		"too many requests",
		"rate-limit",
	}},
	{KindNotFound, []string{
		"video unavailable",
		"does not exist",
		"http error 404",
	}},
}

// Classify maps the extractor's diagnostic stream onto a failure kind.
func Classify(stderr string) Kind {
	lowered := strings.ToLower(stderr)
	for _, entry := range diagnosticPatterns {
		for _, p := range entry.patterns {
			if strings.Contains(lowered, p) {
				return entry.kind
			}
		}
	}
	return KindUnknown
}
