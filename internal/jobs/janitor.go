package jobs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/Easysoul1/yt-video-downloader/internal/config"
	"github.com/Easysoul1/yt-video-downloader/internal/metrics"
	"github.com/Easysoul1/yt-video-downloader/pkg/logger"
)

// Janitor reclaims scratch directory entries that outlived the retention
// window. Handlers may race it on deletion; a failed remove is logged and
// the sweep moves on.
type Janitor struct {
	dir       string
	retention time.Duration
	interval  time.Duration
	log       *logger.Logger
	metrics   metrics.Recorder
}

func NewJanitor(cfg config.Janitor, dir string, log *logger.Logger, rec metrics.Recorder) *Janitor {
	return &Janitor{
		dir:       dir,
		retention: cfg.Retention,
		interval:  cfg.Interval,
		log:       log,
		metrics:   rec,
	}
}

// Run sweeps on a recurring timer until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep(time.Now())
		}
	}
}

// Sweep removes every entry whose modification time is older than the
// retention window at the given moment. Entries appearing mid-sweep keep
// their grace period until the next cycle.
func (j *Janitor) Sweep(now time.Time) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		j.log.Errorf("could not enumerate scratch dir %s: %v", j.dir, err)
		return
	}

	removed := 0
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			j.log.Warnf("could not stat %s: %v", entry.Name(), err)
			continue
		}
		if now.Sub(info.ModTime()) <= j.retention {
			continue
		}
		if err := os.RemoveAll(filepath.Join(j.dir, entry.Name())); err != nil {
			j.log.Warnf("could not remove %s: %v", entry.Name(), err)
			continue
		}
		j.metrics.IncJanitorRemoved()
		removed++
	}

	if removed > 0 {
		j.log.Infof("janitor removed %d stale scratch entries", removed)
	}
}
