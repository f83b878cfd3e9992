package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidURLAcceptedShapes(t *testing.T) {
	accepted := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"http://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=shared&v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?t=10",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
	}

	for _, url := range accepted {
		assert.True(t, ValidURL(url), "expected %q to be accepted", url)
	}
}

func TestValidURLRejected(t *testing.T) {
	rejected := []string{
		"",
		"not-a-url",
		"ftp://example.com/x",
		"javascript:alert(1)",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=",
		"https://www.youtube.com/watch?v=short",
		"https://youtu.be/",
		"https://www.youtube.com/playlist?list=PL123",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ; rm -rf /",
		"--dump-single-json",
	}

	for _, url := range rejected {
		assert.False(t, ValidURL(url), "expected %q to be rejected", url)
	}
}
