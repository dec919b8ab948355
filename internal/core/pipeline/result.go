package pipeline

import (
	"github.com/guiyumin/vlink/internal/core/extractor"
	"github.com/samber/lo"
)

// MediaEntry is one link in the full result
type MediaEntry struct {
	Type    extractor.MediaKind `json:"type"`
	URL     string              `json:"url"`
	Quality string              `json:"quality"`
	// Size is only reported for video
	Size *int64 `json:"size,omitempty"`
}

// VideoPick is the selected video download
type VideoPick struct {
	URL     string `json:"url"`
	Size    int64  `json:"size"`
	Quality string `json:"quality"`
	Title   string `json:"title"`
}

// AudioPick is the selected audio download
type AudioPick struct {
	URL     string `json:"url"`
	Bitrate string `json:"bitrate"`
	Title   string `json:"title"`
}

// Result is the full resolution of one media page.
// At most one of VideoNoWatermark and VideoBest is set.
type Result struct {
	Success          bool         `json:"success"`
	Title            string       `json:"title"`
	OriginalURL      string       `json:"original_url"`
	Formats          int          `json:"formats"`
	Media            []MediaEntry `json:"media"`
	VideoNoWatermark *VideoPick   `json:"video_no_watermark,omitempty"`
	VideoBest        *VideoPick   `json:"video_best,omitempty"`
	AudioBest        *AudioPick   `json:"audio_best,omitempty"`

	// Items are the classified links in source order
	Items []extractor.MediaItem `json:"-"`
}

// Summary is the reduced view served by /info
type Summary struct {
	Success   bool     `json:"success"`
	Title     string   `json:"title"`
	Formats   int      `json:"formats"`
	HasVideo  bool     `json:"has_video"`
	HasAudio  bool     `json:"has_audio"`
	Qualities []string `json:"qualities"`
}

// BuildResult turns a finished fold into the result payload.
// A no-watermark video supersedes the largest video.
func BuildResult(title, originalURL string, acc Accumulator) *Result {
	items := acc.Items
	if items == nil {
		items = []extractor.MediaItem{}
	}

	r := &Result{
		Success:     true,
		Title:       title,
		OriginalURL: originalURL,
		Formats:     len(items),
		Media:       lo.Map(items, func(it extractor.MediaItem, _ int) MediaEntry { return toEntry(it) }),
		Items:       items,
	}

	if nw, ok := acc.NoWatermarkVideo().Get(); ok {
		r.VideoNoWatermark = toVideoPick(nw, title)
	} else if best, ok := acc.BestVideo().Get(); ok {
		r.VideoBest = toVideoPick(best, title)
	}

	if audio, ok := acc.BestAudio().Get(); ok {
		r.AudioBest = &AudioPick{
			URL:     audio.URL,
			Bitrate: audio.QualityLabel(),
			Title:   title,
		}
	}
	return r
}

// Summary reduces the result to counts, flags and distinct qualities
func (r *Result) Summary() Summary {
	return Summary{
		Success:  true,
		Title:    r.Title,
		Formats:  r.Formats,
		HasVideo: r.VideoBest != nil || r.VideoNoWatermark != nil,
		HasAudio: r.AudioBest != nil,
		Qualities: lo.Uniq(lo.Map(r.Media, func(m MediaEntry, _ int) string {
			return m.Quality
		})),
	}
}

func toEntry(it extractor.MediaItem) MediaEntry {
	e := MediaEntry{
		Type:    it.Kind,
		URL:     it.URL,
		Quality: it.QualityLabel(),
	}
	if it.Kind == extractor.MediaKindVideo {
		size := it.Size
		e.Size = &size
	}
	return e
}

func toVideoPick(it extractor.MediaItem, title string) *VideoPick {
	return &VideoPick{
		URL:     it.URL,
		Size:    it.Size,
		Quality: it.QualityLabel(),
		Title:   title,
	}
}
