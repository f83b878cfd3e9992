package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   Kind
	}{
		{"bot check", "ERROR: [youtube] dQw4w9WgXcQ: Sign in to confirm you're not a bot.", KindAuthRequired},
		{"cookies hint", "Use --cookies-from-browser or --cookies for the authentication.", KindAuthRequired},
		{"age gate", "ERROR: Confirm your age to watch this video", KindAuthRequired},
		{"throttled", "ERROR: unable to download webpage: HTTP Error 429: Too Many Requests", KindRateLimited},
		{"missing video", "ERROR: [youtube] xxxxxxxxxxx: Video unavailable", KindNotFound},
		{"plain 404", "ERROR: HTTP Error 404: Not Found", KindNotFound},
		{"anything else", "ERROR: something exploded", KindUnknown},
		{"empty stderr", "", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.stderr))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindAuthRequired, Detail: "sign in required", ExitCode: 1}
	assert.Equal(t, "extractor: auth_required: sign in required", err.Error())
}
