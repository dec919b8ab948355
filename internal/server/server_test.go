package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guiyumin/vlink/internal/core/pipeline"
	"github.com/guiyumin/vlink/internal/core/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newUpstream fakes the search provider, the decryption provider and a CDN
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var base string

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("url"), "empty") {
			fmt.Fprint(w, `<html><head><title>Nothing</title></head><body></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><head><title>Dance: clip</title></head><body>
			<a href="https://dl.example/hd-1080p#url=big">1080p</a>
			<a href="https://dl.example/720p no watermark#url=nowm">720p No Watermark</a>
			<a href="https://dl.example/mp3-128kbps#url=song">MP3</a>
			<a href="https://dl.example/broken#url=dead">?</a>
		</body></html>`)
	})
	mux.HandleFunc("/load_url", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("url") {
		case "big":
			fmt.Fprint(w, base+"/files/big.mp4")
		case "nowm":
			fmt.Fprint(w, base+"/files/nowm.mp4")
		case "song":
			fmt.Fprint(w, base+"/files/song.mp3")
		default:
			fmt.Fprint(w, "error")
		}
	})
	mux.HandleFunc("/files/big.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "9000")
	})
	mux.HandleFunc("/files/nowm.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "4000")
	})

	srv := httptest.NewServer(mux)
	base = srv.URL
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	up := newUpstream(t)
	client := resolver.New(resolver.Options{
		SearchURL:  up.URL + "/search",
		DecryptURL: up.URL + "/load_url",
		Timeout:    2 * time.Second,
	})
	return NewServer(0, pipeline.New(client, nil), nil).Handler()
}

func get(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, http.NoBody)
	h.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func TestRoot(t *testing.T) {
	w, body := get(t, newTestServer(t), http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "vlink", body["name"])
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestHealth(t *testing.T) {
	w, body := get(t, newTestServer(t), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestDownload(t *testing.T) {
	w, body := get(t, newTestServer(t), http.MethodGet, "/download?url=https://www.tiktok.com/@u/video/1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Dance clip", body["title"])
	assert.Equal(t, "https://www.tiktok.com/@u/video/1", body["original_url"])
	assert.EqualValues(t, 3, body["formats"])
	assert.Len(t, body["media"], 3)

	nowm, ok := body["video_no_watermark"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 4000, nowm["size"])
	assert.Equal(t, "720p", nowm["quality"])
	assert.NotContains(t, body, "video_best")

	audio, ok := body["audio_best"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "128kbps", audio["bitrate"])
}

func TestDownloadErrors(t *testing.T) {
	h := newTestServer(t)

	w, body := get(t, h, http.MethodGet, "/download")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "url missing", body["error"])

	w, body = get(t, h, http.MethodGet, "/download?url=https://example.com/empty")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Download links not found", body["error"])
}

func TestInfo(t *testing.T) {
	h := newTestServer(t)

	w, body := get(t, h, http.MethodGet, "/info?url=https://www.tiktok.com/@u/video/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["has_video"])
	assert.Equal(t, true, body["has_audio"])
	assert.EqualValues(t, 3, body["formats"])
	assert.Equal(t, []any{"1080p", "720p", "128kbps"}, body["qualities"])
	assert.NotContains(t, body, "media")

	w, body = get(t, h, http.MethodGet, "/info")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "url missing", body["error"])
}

func TestDirect(t *testing.T) {
	h := newTestServer(t)

	w, body := get(t, h, http.MethodGet, "/direct/video?url=big")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.True(t, strings.HasSuffix(body["direct_url"].(string), "/files/big.mp4"))

	w, body = get(t, h, http.MethodGet, "/direct/audio?url=dead")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "decrypt failed", body["error"])

	w, body = get(t, h, http.MethodGet, "/direct/video")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "encrypted url missing", body["error"])
}

func TestPreflight(t *testing.T) {
	w, body := get(t, newTestServer(t), http.MethodOptions, "/download")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "GET,POST,OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestNotFound(t *testing.T) {
	w, body := get(t, newTestServer(t), http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", body["error"])
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t)

	w, _ := get(t, h, http.MethodGet, "/health")
	assert.Len(t, w.Header().Get(requestIDHeader), 36)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set(requestIDHeader, "upstream-id")
	h.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get(requestIDHeader))
}

type panickingResolver struct{}

func (panickingResolver) Run(context.Context, string) (*pipeline.Result, error) {
	panic("boom")
}

func (panickingResolver) Direct(context.Context, string) (string, error) {
	return "", nil
}

func TestPanicBecomesPayload(t *testing.T) {
	h := NewServer(0, panickingResolver{}, nil).Handler()

	w, body := get(t, h, http.MethodGet, "/download?url=x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "unexpected: boom", body["error"])
}
