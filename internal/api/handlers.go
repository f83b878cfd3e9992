package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Easysoul1/yt-video-downloader/internal/extractor"
	"github.com/Easysoul1/yt-video-downloader/internal/metrics"
	"github.com/Easysoul1/yt-video-downloader/internal/models"
	"github.com/Easysoul1/yt-video-downloader/pkg/logger"
)

const defaultFilename = "video"

// Extractor is the slice of the engine the handlers depend on; tests swap in
// a spy to prove no process is spawned for rejected input.
type Extractor interface {
	FetchInfo(ctx context.Context, url string) (*models.VideoInfo, error)
	FetchTitle(ctx context.Context, url string) (string, error)
	ListFormats(ctx context.Context, url string) (string, error)
	OpenStream(ctx context.Context, url string, q extractor.Quality) (io.ReadCloser, error)
}

type Handler struct {
	engine       Extractor
	titleTimeout time.Duration
	validate     *validator.Validate
	log          *logger.Logger
	metrics      metrics.Recorder
}

func NewHandler(engine Extractor, titleTimeout time.Duration, log *logger.Logger, rec metrics.Recorder) *Handler {
	return &Handler{
		engine:       engine,
		titleTimeout: titleTimeout,
		validate:     validator.New(),
		log:          log,
		metrics:      rec,
	}
}

type urlRequest struct {
	URL string `json:"url" validate:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// bindURL decodes and validates the JSON body shared by the POST endpoints.
func (h *Handler) bindURL(c echo.Context) (string, error) {
	var req urlRequest
	if err := c.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}
	if !extractor.ValidURL(req.URL) {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid or unsupported video URL")
	}
	return req.URL, nil
}

// VideoInfo answers POST /api/video-info.
func (h *Handler) VideoInfo(c echo.Context) error {
	url, err := h.bindURL(c)
	if err != nil {
		return err
	}

	info, err := h.engine.FetchInfo(c.Request().Context(), url)
	if err != nil {
		return h.extractionError(c, err)
	}

	return c.JSON(http.StatusOK, info)
}

// Formats answers POST /api/formats with the raw format table.
func (h *Handler) Formats(c echo.Context) error {
	url, err := h.bindURL(c)
	if err != nil {
		return err
	}

	listing, err := h.engine.ListFormats(c.Request().Context(), url)
	if err != nil {
		return h.extractionError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"formats": listing})
}

// Download answers GET /api/download, relaying the extractor's stdout to the
// response without buffering the file. Once the first byte is written no
// further error can be surfaced; a mid-stream failure simply ends the body.
func (h *Handler) Download(c echo.Context) error {
	rawURL := c.QueryParam("url")
	if rawURL == "" || !extractor.ValidURL(rawURL) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid or unsupported video URL")
	}
	quality := extractor.ParseQuality(c.QueryParam("quality"))

	ctx := c.Request().Context()
	filename := h.downloadFilename(ctx, rawURL)

	stream, err := h.engine.OpenStream(ctx, rawURL, quality)
	if err != nil {
		return h.extractionError(c, err)
	}
	defer stream.Close()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "video/mp4")
	resp.Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`.mp4"`)
	resp.WriteHeader(http.StatusOK)

	n, err := relay(resp, stream)
	h.metrics.AddStreamedBytes(n)
	if err != nil {
		// Headers are long gone; the disconnect or extractor death already
		// ended the transfer.
		h.log.Warnf("stream for %s ended early after %d bytes: %v", rawURL, n, err)
	}
	return nil
}

// Health answers GET /api/health.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// downloadFilename probes for the video title under a short deadline; a
// failure names the file "video" rather than failing the download.
func (h *Handler) downloadFilename(ctx context.Context, url string) string {
	titleCtx, cancel := context.WithTimeout(ctx, h.titleTimeout)
	defer cancel()

	title, err := h.engine.FetchTitle(titleCtx, url)
	if err != nil {
		h.log.Warnf("title probe failed for %s: %v", url, err)
		return defaultFilename
	}
	if name := extractor.SanitizeFilename(title); name != "" {
		return name
	}
	return defaultFilename
}

// relay copies the media stream to the client, flushing as bytes arrive so
// backpressure stays in the OS pipe rather than in server memory.
func relay(resp *echo.Response, stream io.Reader) (int64, error) {
	buf := make([]byte, 32<<10)
	var written int64
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			if _, werr := resp.Write(buf[:n]); werr != nil {
				return written, werr
			}
			written += int64(n)
			resp.Flush()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return written, nil
			}
			return written, err
		}
	}
}

// extractionError maps a classified extractor failure onto the HTTP
// taxonomy: upstream refusals are the client's 400, parse and spawn
// failures are the server's 500.
func (h *Handler) extractionError(c echo.Context, err error) error {
	var exErr *extractor.Error
	if !errors.As(err, &exErr) {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	switch exErr.Kind {
	case extractor.KindAuthRequired:
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "the video source requires authentication; configure a cookies file and try again",
		})
	case extractor.KindNotFound, extractor.KindRateLimited, extractor.KindUnknown:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: exErr.Detail})
	case extractor.KindLaunch:
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "video extraction service is unavailable",
		})
	case extractor.KindTimeout:
		return c.JSON(http.StatusGatewayTimeout, errorResponse{Error: exErr.Detail})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: exErr.Detail})
	}
}
