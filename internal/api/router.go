package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Easysoul1/yt-video-downloader/internal/config"
	"github.com/Easysoul1/yt-video-downloader/internal/metrics"
	"github.com/Easysoul1/yt-video-downloader/pkg/logger"
)

// NewRouter assembles the echo instance: recovery, request IDs, logging,
// origin and rate-limit policy, the API routes, the metrics endpoint and
// the static presentation client.
func NewRouter(h *Handler, cfg *config.Config, log *logger.Logger) *echo.Echo {
	ec := echo.New()
	ec.HideBanner = true
	ec.HidePort = true

	ec.Use(middleware.Recover())
	ec.Use(RequestID())
	ec.Use(RequestLogger(log))
	ec.Use(CORS(cfg.AllowedOrigins))
	ec.Use(RateLimiter(cfg.RateLimit))

	api := ec.Group("/api")
	api.POST("/video-info", h.VideoInfo)
	api.POST("/formats", h.Formats)
	api.GET("/download", h.Download)
	api.GET("/health", h.Health)

	ec.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	ec.Static("/", cfg.StaticDir)

	return ec
}
