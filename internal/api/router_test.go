package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Easysoul1/yt-video-downloader/internal/config"
	"github.com/Easysoul1/yt-video-downloader/pkg/logger"
)

func newTestRouter(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()
	cfg.StaticDir = t.TempDir()
	h := newTestHandler(&spyExtractor{})
	return NewRouter(h, cfg, logger.Get("test"))
}

func baseConfig() *config.Config {
	return &config.Config{
		AllowedOrigins: []string{"http://localhost:3000"},
		RateLimit:      config.RateLimit{Requests: 100, Window: 15 * time.Minute},
	}
}

func TestRouterHealthRoute(t *testing.T) {
	ec := newTestRouter(t, baseConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	ec.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"OK"`)
}

func TestRouterGrantsAllowedOrigin(t *testing.T) {
	ec := newTestRouter(t, baseConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	rec := httptest.NewRecorder()
	ec.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestRouterRefusesUnlistedOrigin(t *testing.T) {
	ec := newTestRouter(t, baseConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(echo.HeaderOrigin, "http://evil.example.com")
	rec := httptest.NewRecorder()
	ec.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin),
		"an unlisted origin must not receive a cross-origin grant")
}

func TestRouterRateLimitsClient(t *testing.T) {
	cfg := baseConfig()
	cfg.RateLimit = config.RateLimit{Requests: 2, Window: time.Minute}
	ec := newTestRouter(t, cfg)

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.RemoteAddr = "198.51.100.7:4242"
		rec := httptest.NewRecorder()
		ec.ServeHTTP(rec, req)
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestRouterMetricsRoute(t *testing.T) {
	ec := newTestRouter(t, baseConfig())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	ec.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
