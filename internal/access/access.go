// Package access holds the cross-origin admission decision, kept pure so the
// policy can be tested without a running server.
package access

import "strings"

// IsOriginAllowed reports whether a request carrying the given Origin header
// may be granted cross-origin access. An empty origin (non-browser client)
// is always allowed. A "*" entry in the allow-list grants every origin.
func IsOriginAllowed(origin string, allowlist []string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range allowlist {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
