package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOriginAllowed(t *testing.T) {
	allowlist := []string{"http://localhost:3000", "https://app.example.com"}

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"empty origin is a non-browser client", "", true},
		{"listed origin", "http://localhost:3000", true},
		{"listed origin, different case", "HTTP://LOCALHOST:3000", true},
		{"unlisted origin", "http://evil.example.com", false},
		{"scheme mismatch", "https://localhost:3000", false},
		{"port mismatch", "http://localhost:3001", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, IsOriginAllowed(tt.origin, allowlist))
		})
	}
}

func TestIsOriginAllowedWildcard(t *testing.T) {
	assert.True(t, IsOriginAllowed("http://anything.example.com", []string{"*"}))
}

func TestIsOriginAllowedEmptyList(t *testing.T) {
	assert.False(t, IsOriginAllowed("http://localhost:3000", nil))
	assert.True(t, IsOriginAllowed("", nil))
}
