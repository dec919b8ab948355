// Package resolver talks to the third-party services behind vlink:
// the search page provider, the token decryption provider and the
// download hosts that are probed for their size.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/guiyumin/vlink/internal/core/config"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	maxPageSize    = 16 << 20
	maxDecryptSize = 64 << 10
	maxRedirects   = 10
)

// ErrBodyTooLarge is returned when an upstream response exceeds its read limit
var ErrBodyTooLarge = errors.New("response body too large")

// Options configures a Client
type Options struct {
	SearchURL  string
	DecryptURL string
	UserAgent  string
	Timeout    time.Duration
	// RateLimit caps outgoing requests per second, 0 means unlimited
	RateLimit float64

	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client performs single-attempt upstream calls. It holds no per-request
// state and is safe for concurrent use by independent pipelines.
type Client struct {
	searchURL  string
	decryptURL string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

// New creates a Client, filling unset options with the config defaults
func New(opts Options) *Client {
	if opts.SearchURL == "" {
		opts.SearchURL = config.DefaultSearchURL
	}
	if opts.DecryptURL == "" {
		opts.DecryptURL = config.DefaultDecryptURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		}
	}

	c := &Client{
		searchURL:  opts.SearchURL,
		decryptURL: opts.DecryptURL,
		userAgent:  opts.UserAgent,
		httpClient: opts.HTTPClient,
		log:        opts.Logger.Named("resolver"),
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return c
}

// NewFromConfig creates a Client from the upstream section of the config file
func NewFromConfig(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	return New(Options{
		SearchURL:  cfg.SearchURL,
		DecryptURL: cfg.DecryptURL,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.RequestTimeout(),
		RateLimit:  cfg.RateLimit,
		Logger:     logger,
	})
}

// do sends one request with the configured user agent after waiting for the limiter
func (c *Client) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	return resp, nil
}

// get fetches rawURL and returns at most limit bytes of its body
func (c *Client) get(ctx context.Context, rawURL string, limit int64) ([]byte, int, error) {
	resp, err := c.do(ctx, http.MethodGet, rawURL)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, resp.StatusCode, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, limit)
	}
	return body, resp.StatusCode, nil
}

// withQuery sets key=value on endpoint's query string, keeping any existing parameters
func withQuery(endpoint, key, value string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
