package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guiyumin/vlink/internal/core/extractor"
	"github.com/guiyumin/vlink/internal/core/pipeline"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	qualityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
)

func formatSize(size int64) string {
	if size <= 0 {
		return "?"
	}
	return humanize.Bytes(uint64(size))
}

func renderResult(r *pipeline.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n  %s\n", titleStyle.Render(r.Title))
	fmt.Fprintf(&b, "  %s %s\n\n", labelStyle.Render("Source:"), r.OriginalURL)

	switch {
	case r.VideoNoWatermark != nil:
		v := r.VideoNoWatermark
		fmt.Fprintf(&b, "  %s %s %s\n    %s\n", labelStyle.Render("Video (no watermark):"),
			qualityStyle.Render(v.Quality), formatSize(v.Size), urlStyle.Render(v.URL))
	case r.VideoBest != nil:
		v := r.VideoBest
		fmt.Fprintf(&b, "  %s %s %s\n    %s\n", labelStyle.Render("Best video:"),
			qualityStyle.Render(v.Quality), formatSize(v.Size), urlStyle.Render(v.URL))
	}
	if a := r.AudioBest; a != nil {
		fmt.Fprintf(&b, "  %s %s\n    %s\n", labelStyle.Render("Audio:"),
			qualityStyle.Render(a.Bitrate), urlStyle.Render(a.URL))
	}

	fmt.Fprintf(&b, "\n  %s (%d):\n", labelStyle.Render("All links"), r.Formats)
	for i, m := range r.Media {
		size := ""
		if m.Type == extractor.MediaKindVideo && m.Size != nil {
			size = " " + formatSize(*m.Size)
		}
		fmt.Fprintf(&b, "    • [%d] %s %s%s\n      %s\n", i+1, m.Type, qualityStyle.Render(m.Quality), size, urlStyle.Render(m.URL))
	}
	b.WriteString("\n")
	return b.String()
}

func renderSummary(s pipeline.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n", titleStyle.Render(s.Title))
	fmt.Fprintf(&b, "  %s %d\n", labelStyle.Render("Links:"), s.Formats)
	fmt.Fprintf(&b, "  %s %t\n", labelStyle.Render("Video:"), s.HasVideo)
	fmt.Fprintf(&b, "  %s %t\n", labelStyle.Render("Audio:"), s.HasAudio)
	fmt.Fprintf(&b, "  %s %s\n\n", labelStyle.Render("Qualities:"), strings.Join(s.Qualities, ", "))
	return b.String()
}
