package cli

import (
	"errors"
	"runtime"
	"testing"

	"github.com/guiyumin/vlink/internal/core/config"
	"github.com/guiyumin/vlink/internal/core/extractor"
	"github.com/guiyumin/vlink/internal/core/pipeline"
	"github.com/guiyumin/vlink/internal/core/version"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
)

func someItem(it extractor.MediaItem) mo.Option[extractor.MediaItem] {
	return mo.Some(it)
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{0, "?"},
		{-1, "?"},
		{1000, "1.0 kB"},
		{5_000_000, "5.0 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatSize(tt.size))
	}
}

func TestRenderResult(t *testing.T) {
	acc := pipeline.NewAccumulator().
		Fold(someItem(extractor.MediaItem{Kind: extractor.MediaKindVideo, URL: "https://cdn.example/v.mp4", Quality: "720p", Size: 2_000_000})).
		Fold(someItem(extractor.MediaItem{Kind: extractor.MediaKindAudio, URL: "https://cdn.example/a.mp3", Quality: "128kbps"}))
	r := pipeline.BuildResult("clip", "https://www.tiktok.com/@u/video/1", acc)

	out := renderResult(r)
	assert.Contains(t, out, "clip")
	assert.Contains(t, out, "Best video:")
	assert.Contains(t, out, "https://cdn.example/v.mp4")
	assert.Contains(t, out, "2.0 MB")
	assert.Contains(t, out, "128kbps")
	assert.NotContains(t, out, "no watermark")
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary(pipeline.Summary{
		Success:   true,
		Title:     "clip",
		Formats:   2,
		HasVideo:  true,
		Qualities: []string{"720p", "480p"},
	})
	assert.Contains(t, out, "720p, 480p")
	assert.Contains(t, out, "true")
}

func TestErrorPayload(t *testing.T) {
	p := errorPayload(errors.New("boom"))
	assert.Equal(t, false, p["success"])
	assert.Equal(t, "unexpected: boom", p["error"])
}

func TestBuildInfo(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Upstream.SearchURL = "https://search.example/search"

	info := newBuildInfo(cfg)
	assert.Equal(t, version.Version, info.Version)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Equal(t, "https://search.example/search", info.SearchURL)
	assert.Equal(t, config.DefaultDecryptURL, info.DecryptURL)

	out := info.String()
	assert.Contains(t, out, "vlink v"+version.Version)
	assert.Contains(t, out, "search:  https://search.example/search")
}
