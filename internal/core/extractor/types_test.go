package extractor

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Plain title",
			input:    "My holiday video",
			expected: "My holiday video",
		},
		{
			name:     "ASCII reserved characters",
			input:    `test:file*name?with<special>chars|here`,
			expected: "testfilenamewithspecialcharshere",
		},
		{
			name:     "Path separators and quotes",
			input:    `path/to\file "final"`,
			expected: "pathtofile final",
		},
		{
			name:     "Line breaks become one space",
			input:    "first line\r\n\nsecond line",
			expected: "first line second line",
		},
		{
			name:     "Surrounding whitespace",
			input:    "\n  TikTok - video  \n",
			expected: "TikTok - video",
		},
		{
			name:     "Empty after sanitization",
			input:    `?*|`,
			expected: "",
		},
		{
			name:     "CJK is kept",
			input:    "视频：下载",
			expected: "视频：下载",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeFilename(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeFilename(%q)\n  got:  %q\n  want: %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestQualityLabel(t *testing.T) {
	if got := (MediaItem{Quality: "720p"}).QualityLabel(); got != "720p" {
		t.Errorf("QualityLabel() = %q, want %q", got, "720p")
	}
	if got := (MediaItem{}).QualityLabel(); got != UnknownQuality {
		t.Errorf("QualityLabel() = %q, want %q", got, UnknownQuality)
	}
}
