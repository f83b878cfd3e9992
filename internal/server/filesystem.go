package server

import (
	"os"

	"github.com/Easysoul1/yt-video-downloader/internal/config"
)

// PrepareFilesystem ensures the scratch directory exists before any
// extractor process or the janitor touches it.
func PrepareFilesystem(cfg *config.Config) error {
	return os.MkdirAll(cfg.TempDir, 0o755)
}
