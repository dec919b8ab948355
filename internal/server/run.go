package server

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/guiyumin/vlink/internal/core/config"
	"github.com/guiyumin/vlink/internal/core/pipeline"
	"github.com/guiyumin/vlink/internal/core/resolver"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Run wires the pipeline from cfg, serves on port and shuts down
// gracefully on SIGINT/SIGTERM or when ctx is cancelled.
func Run(ctx context.Context, port int, cfg *config.Config, logger *zap.Logger) error {
	client := resolver.NewFromConfig(cfg.Upstream, logger)
	srv := NewServer(port, pipeline.New(client, logger), logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("upstream configured",
		zap.String("search_url", cfg.Upstream.SearchURL),
		zap.String("decrypt_url", cfg.Upstream.DecryptURL),
		zap.Duration("timeout", cfg.Upstream.RequestTimeout()),
		zap.Float64("rate_limit", cfg.Upstream.RateLimit),
	)

	return srv.Start()
}
