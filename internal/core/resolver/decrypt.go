package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guiyumin/vlink/internal/core/extractor"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

// ErrNotURL is returned when the decryption provider answers with something other than a URL
var ErrNotURL = errors.New("decrypt failed")

// ResolvedLink pairs a token with its decrypted URL, absent when decryption failed
type ResolvedLink struct {
	Token extractor.RawToken
	URL   mo.Option[string]
}

// Decrypt exchanges one encrypted token for the real download URL
func (c *Client) Decrypt(ctx context.Context, token string) (string, error) {
	reqURL, err := withQuery(c.decryptURL, "url", token)
	if err != nil {
		return "", err
	}

	body, _, err := c.get(ctx, reqURL, maxDecryptSize)
	if errors.Is(err, ErrBodyTooLarge) {
		return "", fmt.Errorf("%w: %w", ErrNotURL, err)
	}
	if err != nil {
		return "", fmt.Errorf("decrypt request failed: %w", err)
	}

	final := strings.TrimSpace(string(body))
	if !strings.HasPrefix(final, "http") {
		return "", ErrNotURL
	}
	return final, nil
}

// Resolve decrypts tok. Failures are logged and reported as an absent URL so
// that one bad token never aborts the rest of the page.
func (c *Client) Resolve(ctx context.Context, tok extractor.RawToken) ResolvedLink {
	link := ResolvedLink{Token: tok, URL: mo.None[string]()}

	final, err := c.Decrypt(ctx, tok.Encrypted)
	if err != nil {
		c.log.Debug("token dropped",
			zap.String("token", tok.Encrypted),
			zap.Error(err),
		)
		return link
	}

	link.URL = mo.Some(final)
	return link
}
