package models

import "strconv"

// ResolutionLabel renders a vertical resolution as the conventional
// "1080p" style label.
func ResolutionLabel(height int) string {
	return strconv.Itoa(height) + "p"
}

// VideoFormat is one downloadable encoding of a video, as reported by the
// extractor. Filesize is omitted when the extractor does not know it.
type VideoFormat struct {
	FormatID   string `json:"format_id"`
	Ext        string `json:"ext"`
	Resolution string `json:"resolution"`
	Filesize   int64  `json:"filesize,omitempty"`
}

// VideoInfo is the per-request metadata answer. It is never persisted; each
// value reflects exactly one extractor invocation.
type VideoInfo struct {
	Title     string        `json:"title"`
	Duration  float64       `json:"duration"`
	Thumbnail string        `json:"thumbnail"`
	Uploader  string        `json:"uploader"`
	ViewCount int64         `json:"view_count"`
	Formats   []VideoFormat `json:"formats"`
}
