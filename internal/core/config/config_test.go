package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveToThenLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	want := DefaultConfig()
	want.Server.Port = 9000
	want.Upstream.Timeout = "3s"
	want.Upstream.RateLimit = 2
	want.Log.Level = "debug"

	require.NoError(t, SaveTo(path, want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# vlink configuration file")

	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 3*time.Second, got.Upstream.RequestTimeout())
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, DefaultSearchURL, cfg.Upstream.SearchURL)
	assert.Equal(t, DefaultDecryptURL, cfg.Upstream.DecryptURL)
	assert.Equal(t, DefaultUserAgent, cfg.Upstream.UserAgent)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0644))

	t.Setenv("VLINK_SERVER_PORT", "6060")
	t.Setenv("VLINK_UPSTREAM_DECRYPT_URL", "http://127.0.0.1:1/decrypt")
	t.Setenv("VLINK_UPSTREAM_RATE_LIMIT", "2.5")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
	assert.Equal(t, "http://127.0.0.1:1/decrypt", cfg.Upstream.DecryptURL)
	assert.InDelta(t, 2.5, cfg.Upstream.RateLimit, 0.0001)
}

func TestLoadFromBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed\n"), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestRequestTimeout(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
	}{
		{"Valid duration", "2s", 2 * time.Second},
		{"Padded", " 500ms ", 500 * time.Millisecond},
		{"Empty", "", DefaultTimeout},
		{"Garbage", "soon", DefaultTimeout},
		{"Negative", "-1s", DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpstreamConfig{Timeout: tt.input}.RequestTimeout()
			if got != tt.expected {
				t.Errorf("RequestTimeout(%q) = %v; want %v", tt.input, got, tt.expected)
			}
		})
	}
}
