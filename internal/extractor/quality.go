package extractor

import "fmt"

// Quality is the fixed set of download quality selectors exposed by the API.
type Quality string

const (
	QualityBest  Quality = "best"
	Quality4K    Quality = "4k"
	Quality1080p Quality = "1080p"
	Quality720p  Quality = "720p"
	Quality480p  Quality = "480p"
	Quality360p  Quality = "360p"
	QualityAudio Quality = "audio"
)

var qualityHeights = map[Quality]int{
	Quality4K:    2160,
	Quality1080p: 1080,
	Quality720p:  720,
	Quality480p:  480,
	Quality360p:  360,
}

// ParseQuality maps a raw request parameter onto the quality enumeration.
// Anything unrecognized degrades to QualityBest.
func ParseQuality(s string) Quality {
	switch q := Quality(s); q {
	case QualityBest, Quality4K, Quality1080p, Quality720p, Quality480p, Quality360p, QualityAudio:
		return q
	default:
		return QualityBest
	}
}

// Selector returns the format-selection expression handed to the extractor:
// a video stream at or below the requested height merged with the best
// available audio, falling back to the best combined stream under the same
// ceiling.
func (q Quality) Selector() string {
	if h, ok := qualityHeights[q]; ok {
		return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", h, h)
	}
	if q == QualityAudio {
		return "bestaudio[ext=m4a]/bestaudio"
	}
	return "bestvideo+bestaudio/best"
}
