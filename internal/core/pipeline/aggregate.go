package pipeline

import (
	"slices"

	"github.com/guiyumin/vlink/internal/core/extractor"
	"github.com/samber/mo"
)

const none = -1

// Accumulator is the running state of the best-pick fold. Picks are
// indexes into Items so they always reference an entry of the list.
type Accumulator struct {
	Items []extractor.MediaItem

	bestVideo   int
	noWatermark int
	bestAudio   int
}

// NewAccumulator returns an empty accumulator
func NewAccumulator() Accumulator {
	return Accumulator{
		Items:       []extractor.MediaItem{},
		bestVideo:   none,
		noWatermark: none,
		bestAudio:   none,
	}
}

// Fold adds one processed item. An absent item (dropped token) leaves the
// accumulator unchanged. Items must be folded in source order:
//   - audio: the first one becomes the best audio
//   - video: the strictly largest size becomes the best video (ties keep the earlier)
//   - video: the last no-watermark match becomes the no-watermark pick
func (a Accumulator) Fold(item mo.Option[extractor.MediaItem]) Accumulator {
	it, ok := item.Get()
	if !ok {
		return a
	}

	idx := len(a.Items)
	// clip so accumulators folded from the same base never share a backing array
	a.Items = append(slices.Clip(a.Items), it)

	switch it.Kind {
	case extractor.MediaKindAudio:
		if a.bestAudio == none {
			a.bestAudio = idx
		}
	default:
		var best int64
		if a.bestVideo != none {
			best = a.Items[a.bestVideo].Size
		}
		if it.Size > best {
			a.bestVideo = idx
		}
		if it.NoWatermark {
			a.noWatermark = idx
		}
	}
	return a
}

func (a Accumulator) pick(idx int) mo.Option[extractor.MediaItem] {
	if idx == none {
		return mo.None[extractor.MediaItem]()
	}
	return mo.Some(a.Items[idx])
}

// BestVideo is the largest probed video, absent when no video had a size
func (a Accumulator) BestVideo() mo.Option[extractor.MediaItem] {
	return a.pick(a.bestVideo)
}

// NoWatermarkVideo is the last video advertised without watermark
func (a Accumulator) NoWatermarkVideo() mo.Option[extractor.MediaItem] {
	return a.pick(a.noWatermark)
}

// BestAudio is the first audio item
func (a Accumulator) BestAudio() mo.Option[extractor.MediaItem] {
	return a.pick(a.bestAudio)
}
