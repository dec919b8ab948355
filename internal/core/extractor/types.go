package extractor

import (
	"regexp"
	"strings"
)

// MediaKind is the kind of a resolved download link
type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindAudio MediaKind = "audio"
)

// UnknownQuality is the quality label used when no resolution or bitrate is found
const UnknownQuality = "unknown"

// RawToken is one encrypted link found on a search result page
type RawToken struct {
	// Encrypted is the opaque payload after the "#url=" marker
	Encrypted string
	// Descriptor is the full lowercased href, used for classification heuristics
	Descriptor string
}

// MediaItem is a resolved and classified download link
type MediaItem struct {
	Kind    MediaKind
	URL     string
	Quality string
	// Size is the probed content length in bytes (video only, 0 when unknown)
	Size int64
	// NoWatermark is set for videos whose descriptor advertises a watermark-free file
	NoWatermark bool
}

// QualityLabel returns a human-readable quality label
func (m MediaItem) QualityLabel() string {
	if m.Quality != "" {
		return m.Quality
	}
	return UnknownQuality
}

var lineBreakRegex = regexp.MustCompile(`[\r\n]+`)

// unsafeReplacer drops characters that are invalid in filenames
var unsafeReplacer = strings.NewReplacer(
	"\\", "",
	"/", "",
	":", "",
	"*", "",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFilename turns a page title into a suggested filename.
// Line breaks collapse into a single space and reserved characters are removed.
func SanitizeFilename(name string) string {
	result := lineBreakRegex.ReplaceAllString(name, " ")
	result = strings.TrimSpace(result)
	result = unsafeReplacer.Replace(result)
	return strings.TrimSpace(result)
}
