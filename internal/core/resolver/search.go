package resolver

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/guiyumin/vlink/internal/core/extractor"
	"go.uber.org/zap"
)

// Search asks the search provider for the download page of mediaURL
func (c *Client) Search(ctx context.Context, mediaURL string) (*extractor.SearchPage, error) {
	reqURL, err := withQuery(c.searchURL, "url", mediaURL)
	if err != nil {
		return nil, err
	}

	body, status, err := c.get(ctx, reqURL, maxPageSize)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	if status != http.StatusOK {
		// The page is still scanned: an error page simply yields no tokens.
		c.log.Warn("search provider returned non-200 status",
			zap.String("media_url", mediaURL),
			zap.Int("status", status),
		)
	}

	page, err := extractor.ParsePage(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return page, nil
}
