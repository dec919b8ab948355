// Package pipeline resolves a media page into classified download links:
// search page → encrypted tokens → decrypted URLs → size probe → best picks.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guiyumin/vlink/internal/core/classifier"
	"github.com/guiyumin/vlink/internal/core/extractor"
	"github.com/guiyumin/vlink/internal/core/resolver"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

// Upstream is the set of third-party calls the pipeline needs
type Upstream interface {
	Search(ctx context.Context, mediaURL string) (*extractor.SearchPage, error)
	Decrypt(ctx context.Context, token string) (string, error)
	Resolve(ctx context.Context, tok extractor.RawToken) resolver.ResolvedLink
	Probe(ctx context.Context, rawURL string) int64
}

// Pipeline runs resolutions. It keeps no state between runs, so one
// instance can serve concurrent requests.
type Pipeline struct {
	upstream Upstream
	log      *zap.Logger
}

// New creates a pipeline over the given upstream
func New(upstream Upstream, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		upstream: upstream,
		log:      logger.Named("pipeline"),
	}
}

// Run resolves mediaURL. Tokens are processed one at a time in page order
// because the best-pick rules depend on that order.
//
// A page without tokens is a *Error of KindNoLinks; a page whose tokens all
// fail to decrypt is a successful, empty Result.
func (p *Pipeline) Run(ctx context.Context, mediaURL string) (result *Result, err error) {
	defer p.recoverInto(&err, "run", mediaURL)

	mediaURL = strings.TrimSpace(mediaURL)
	if mediaURL == "" {
		return nil, inputError("url missing")
	}

	start := time.Now()
	page, err := p.upstream.Search(ctx, mediaURL)
	if err != nil {
		return nil, unexpectedError(err)
	}
	title := page.Title()

	acc := NewAccumulator()
	tokens := 0
	for tok := range page.Tokens() {
		if err := ctx.Err(); err != nil {
			return nil, unexpectedError(err)
		}
		tokens++
		acc = acc.Fold(p.process(ctx, tok))
	}

	if tokens == 0 {
		p.log.Info("no download links found", zap.String("media_url", mediaURL))
		return nil, noLinksError()
	}

	result = BuildResult(title, mediaURL, acc)
	p.log.Info("media resolved",
		zap.String("media_url", mediaURL),
		zap.String("title", title),
		zap.Int("tokens", tokens),
		zap.Int("items", result.Formats),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// process turns one token into a media item, or nothing when decryption fails
func (p *Pipeline) process(ctx context.Context, tok extractor.RawToken) mo.Option[extractor.MediaItem] {
	link := p.upstream.Resolve(ctx, tok)
	finalURL, ok := link.URL.Get()
	if !ok {
		return mo.None[extractor.MediaItem]()
	}

	c := classifier.Classify(tok.Descriptor)
	item := extractor.MediaItem{
		Kind:    c.Kind,
		URL:     finalURL,
		Quality: c.Quality,
	}
	if c.Kind == extractor.MediaKindVideo {
		item.Size = p.upstream.Probe(ctx, finalURL)
		item.NoWatermark = c.NoWatermark
	}
	return mo.Some(item)
}

// Direct decrypts a single token on behalf of a caller
func (p *Pipeline) Direct(ctx context.Context, token string) (directURL string, err error) {
	defer p.recoverInto(&err, "direct", token)

	token = strings.TrimSpace(token)
	if token == "" {
		return "", inputError("encrypted url missing")
	}

	final, err := p.upstream.Decrypt(ctx, token)
	if err != nil {
		p.log.Debug("direct decrypt failed", zap.String("token", token), zap.Error(err))
		if !errors.Is(err, resolver.ErrNotURL) {
			err = errors.Join(resolver.ErrNotURL, err)
		}
		return "", &Error{Kind: KindDecrypt, Message: "decrypt failed", Err: err}
	}
	return final, nil
}

// recoverInto turns a panic below Run or Direct into an unexpected error
func (p *Pipeline) recoverInto(err *error, op, input string) {
	r := recover()
	if r == nil {
		return
	}
	p.log.Error("panic during resolution",
		zap.String("op", op),
		zap.String("input", input),
		zap.Any("panic", r),
		zap.Stack("stack"),
	)
	*err = unexpectedError(fmt.Errorf("%v", r))
}
