package extractor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/Easysoul1/yt-video-downloader/internal/config"
	"github.com/Easysoul1/yt-video-downloader/internal/metrics"
	"github.com/Easysoul1/yt-video-downloader/internal/models"
	"github.com/Easysoul1/yt-video-downloader/pkg/logger"
)

// Engine spawns the external extraction binary and relays its output. Each
// call owns its own process handle and buffers; no state is shared between
// concurrent invocations.
type Engine struct {
	bin             string
	cookiesPath     string
	scratchDir      string
	metadataTimeout time.Duration
	titleTimeout    time.Duration
	log             *logger.Logger
	metrics         metrics.Recorder
}

func NewEngine(cfg config.Extractor, scratchDir string, log *logger.Logger, rec metrics.Recorder) *Engine {
	return &Engine{
		bin:             cfg.BinPath,
		cookiesPath:     cfg.CookiesPath,
		scratchDir:      scratchDir,
		metadataTimeout: cfg.MetadataTimeout,
		titleTimeout:    cfg.TitleTimeout,
		log:             log,
		metrics:         rec,
	}
}

func (e *Engine) options(p Profile) Options {
	return Options{Profile: p, CookiesPath: e.cookiesPath}
}

// ytdlpInfo mirrors the subset of the extractor's JSON dump the gateway
// cares about.
type ytdlpInfo struct {
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Thumbnail string  `json:"thumbnail"`
	Uploader  string  `json:"uploader"`
	ViewCount int64   `json:"view_count"`
	Formats   []struct {
		FormatID string  `json:"format_id"`
		Ext      string  `json:"ext"`
		Height   int     `json:"height"`
		VCodec   string  `json:"vcodec"`
		Filesize int64   `json:"filesize"`
		Note     string  `json:"format_note"`
		FPS      float64 `json:"fps"`
	} `json:"formats"`
}

// FetchInfo runs a metadata-only extraction. An anti-automation refusal is
// retried exactly once under the fallback identity profile; any further
// failure is terminal for the request.
func (e *Engine) FetchInfo(ctx context.Context, url string) (*models.VideoInfo, error) {
	info, err := e.fetchInfo(ctx, url, DefaultProfile)
	if err == nil {
		e.metrics.IncExtraction("metadata", "ok")
		return info, nil
	}

	var exErr *Error
	if errors.As(err, &exErr) && exErr.Kind == KindAuthRequired {
		e.log.Warnf("metadata fetch hit an authentication wall, retrying with fallback profile")
		info, err = e.fetchInfo(ctx, url, FallbackProfile)
		if err == nil {
			e.metrics.IncExtraction("metadata", "ok_fallback")
			return info, nil
		}
	}

	e.metrics.IncExtraction("metadata", failureOutcome(err))
	return nil, err
}

func (e *Engine) fetchInfo(ctx context.Context, url string, p Profile) (*models.VideoInfo, error) {
	stdout, err := e.run(ctx, e.metadataTimeout, BuildMetadataArgs(url, e.options(p)))
	if err != nil {
		return nil, err
	}

	var raw ytdlpInfo
	if err := json.Unmarshal(stdout, &raw); err != nil {
		return nil, &Error{Kind: KindBadPayload, Detail: "could not parse extractor output: " + err.Error()}
	}

	info := &models.VideoInfo{
		Title:     raw.Title,
		Duration:  raw.Duration,
		Thumbnail: raw.Thumbnail,
		Uploader:  raw.Uploader,
		ViewCount: raw.ViewCount,
		Formats:   []models.VideoFormat{},
	}
	for _, f := range raw.Formats {
		// Only video streams with a known height are worth presenting.
		if f.VCodec == "" || f.VCodec == "none" || f.Height <= 0 {
			continue
		}
		label := f.Note
		if label == "" {
			label = models.ResolutionLabel(f.Height)
		}
		info.Formats = append(info.Formats, models.VideoFormat{
			FormatID:   f.FormatID,
			Ext:        f.Ext,
			Resolution: label,
			Filesize:   f.Filesize,
		})
	}

	return info, nil
}

// FetchTitle is the lightweight probe used to build a download filename. It
// is best-effort: callers substitute a default name on failure.
func (e *Engine) FetchTitle(ctx context.Context, url string) (string, error) {
	stdout, err := e.run(ctx, e.titleTimeout, BuildTitleArgs(url, e.options(DefaultProfile)))
	if err != nil {
		e.metrics.IncExtraction("title", failureOutcome(err))
		return "", err
	}
	e.metrics.IncExtraction("title", "ok")

	title, _, _ := strings.Cut(strings.TrimSpace(string(stdout)), "\n")
	return title, nil
}

// ListFormats returns the extractor's raw format table for the given URL.
func (e *Engine) ListFormats(ctx context.Context, url string) (string, error) {
	stdout, err := e.run(ctx, e.metadataTimeout, BuildFormatsArgs(url, e.options(DefaultProfile)))
	if err != nil {
		e.metrics.IncExtraction("formats", failureOutcome(err))
		return "", err
	}
	e.metrics.IncExtraction("formats", "ok")
	return string(stdout), nil
}

// OpenStream starts a download and returns a reader over the extractor's
// stdout. The returned stream holds exactly one process; closing it kills
// the process, as does cancelling ctx. An error return means no media byte
// was produced, so the caller is still free to answer with an error status.
func (e *Engine) OpenStream(ctx context.Context, url string, q Quality) (io.ReadCloser, error) {
	args := BuildStreamArgs(url, q, e.scratchDir, e.options(DefaultProfile))
	cmd := exec.CommandContext(ctx, e.bin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &Error{Kind: KindLaunch, Detail: err.Error()}
	}

	if err := cmd.Start(); err != nil {
		e.metrics.IncExtraction("stream", "launch_failed")
		return nil, launchError(err)
	}

	// Wait for the first media byte before declaring success. A process
	// that dies producing nothing is still an error the handler can report
	// to the client without having committed to a 200.
	br := bufio.NewReaderSize(stdout, 64<<10)
	if _, err := br.Peek(1); err != nil {
		waitErr := cmd.Wait()
		exErr := e.commandError(ctx, waitErr, stderr.String())
		e.metrics.IncExtraction("stream", exErr.Kind.String())
		return nil, exErr
	}

	e.metrics.IncExtraction("stream", "ok")
	return &mediaStream{r: br, cmd: cmd}, nil
}

// mediaStream relays a live extractor stdout pipe. Close is idempotent and
// always reaps the child.
type mediaStream struct {
	r    *bufio.Reader
	cmd  *exec.Cmd
	once sync.Once
}

func (s *mediaStream) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *mediaStream) Close() error {
	s.once.Do(func() {
		if s.cmd.Process != nil {
			// Best effort; the process may already have exited.
			_ = s.cmd.Process.Kill()
		}
		_ = s.cmd.Wait()
	})
	return nil
}

// run executes the extractor with a bounded wait, buffering stdout fully.
// Only used for the small-output invocations, never for media streaming.
func (e *Engine) run(parent context.Context, timeout time.Duration, args []string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.log.Debugf("running %s %s", e.bin, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return nil, e.commandError(ctx, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

func (e *Engine) commandError(ctx context.Context, err error, stderr string) *Error {
	if ctx.Err() == context.DeadlineExceeded {
		return &Error{Kind: KindTimeout, Detail: "extractor did not finish within the allowed time"}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		detail := strings.TrimSpace(stderr)
		if detail == "" {
			detail = exitErr.Error()
		}
		return &Error{Kind: Classify(stderr), Detail: detail, ExitCode: exitErr.ExitCode()}
	}
	if err == nil {
		// Exit zero but nothing usable was produced.
		return &Error{Kind: KindUnknown, Detail: "extractor produced no output"}
	}
	return launchError(err)
}

func launchError(err error) *Error {
	return &Error{Kind: KindLaunch, Detail: "could not start extractor: " + err.Error()}
}

func failureOutcome(err error) string {
	var exErr *Error
	if errors.As(err, &exErr) {
		return exErr.Kind.String()
	}
	return "error"
}
