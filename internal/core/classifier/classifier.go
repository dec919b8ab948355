// Package classifier derives media kind, quality and watermark status
// from the free-text descriptor attached to each download link.
package classifier

import (
	"regexp"

	"github.com/guiyumin/vlink/internal/core/extractor"
)

// Classification is the outcome of running the rules on one descriptor
type Classification struct {
	Kind        extractor.MediaKind
	Quality     string
	NoWatermark bool
}

// kindRule maps a descriptor pattern to a media kind
type kindRule struct {
	pattern *regexp.Regexp
	kind    extractor.MediaKind
}

// kindRules are evaluated in order; the first match decides.
// Anything unmatched is video.
var kindRules = []kindRule{
	{regexp.MustCompile(`(?i)mp3|m4a|aac|kbps|audio`), extractor.MediaKindAudio},
}

// qualityRegex finds the leftmost resolution ("720p") or bitrate ("128kbps")
var qualityRegex = regexp.MustCompile(`(?i)\d+p|\d+kbps`)

// noWatermarkRegex marks watermark-free video variants
var noWatermarkRegex = regexp.MustCompile(`(?i)no watermark|without water`)

// Kind returns the media kind advertised by descriptor
func Kind(descriptor string) extractor.MediaKind {
	for _, r := range kindRules {
		if r.pattern.MatchString(descriptor) {
			return r.kind
		}
	}
	return extractor.MediaKindVideo
}

// Quality returns the first resolution or bitrate label in descriptor, or "unknown"
func Quality(descriptor string) string {
	if m := qualityRegex.FindString(descriptor); m != "" {
		return m
	}
	return extractor.UnknownQuality
}

// NoWatermark reports whether descriptor advertises a watermark-free file
func NoWatermark(descriptor string) bool {
	return noWatermarkRegex.MatchString(descriptor)
}

// Classify applies kind, quality and watermark rules in that order.
// The watermark flag is only meaningful for video and stays false for audio.
func Classify(descriptor string) Classification {
	c := Classification{
		Kind:    Kind(descriptor),
		Quality: Quality(descriptor),
	}
	if c.Kind == extractor.MediaKindVideo {
		c.NoWatermark = NoWatermark(descriptor)
	}
	return c
}
