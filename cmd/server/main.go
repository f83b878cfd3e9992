package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Easysoul1/yt-video-downloader/internal/api"
	"github.com/Easysoul1/yt-video-downloader/internal/config"
	"github.com/Easysoul1/yt-video-downloader/internal/extractor"
	"github.com/Easysoul1/yt-video-downloader/internal/jobs"
	"github.com/Easysoul1/yt-video-downloader/internal/metrics"
	"github.com/Easysoul1/yt-video-downloader/internal/server"
	"github.com/Easysoul1/yt-video-downloader/pkg/logger"
)

const shutdownGrace = 10 * time.Second

func main() {
	godotenv.Load()
	log := logger.Get("Server")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	if err := server.PrepareFilesystem(cfg); err != nil {
		log.Fatalf("could not prepare filesystem: %v", err)
	}

	rec := metrics.NewProm("ytdl")
	engine := extractor.NewEngine(cfg.Extractor, cfg.TempDir, logger.Get("Extractor"), rec)
	handler := api.NewHandler(engine, cfg.Extractor.TitleTimeout, logger.Get("API"), rec)
	router := api.NewRouter(handler, cfg, logger.Get("HTTP"))
	janitor := jobs.NewJanitor(cfg.Janitor, cfg.TempDir, logger.Get("Janitor"), rec)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go janitor.Run(ctx)

	go func() {
		log.Infof("listening on %s", cfg.Addr())
		if err := router.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Infof("shutting down, draining connections for up to %s", shutdownGrace)

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := router.Shutdown(drainCtx); err != nil {
		log.Errorf("shutdown did not complete cleanly: %v", err)
	}
}
