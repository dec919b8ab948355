package resolver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Probe returns the declared size of rawURL using a HEAD request.
// Any failure yields 0.
func (c *Client) Probe(ctx context.Context, rawURL string) int64 {
	size, err := c.contentLength(ctx, rawURL)
	if err != nil {
		c.log.Debug("size probe failed",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return 0
	}
	return size
}

func (c *Client) contentLength(ctx context.Context, rawURL string) (int64, error) {
	resp, err := c.do(ctx, http.MethodHead, rawURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return 0, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	header := strings.TrimSpace(resp.Header.Get("Content-Length"))
	if header == "" {
		if resp.ContentLength > 0 {
			return resp.ContentLength, nil
		}
		return 0, fmt.Errorf("no content length")
	}

	size, err := strconv.ParseInt(header, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid content length %q: %w", header, err)
	}
	if size < 0 {
		return 0, fmt.Errorf("invalid content length %d", size)
	}
	return size, nil
}
