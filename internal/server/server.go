package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guiyumin/vlink/internal/core/pipeline"
	"go.uber.org/zap"
)

// Resolver is the pipeline surface exposed over HTTP
type Resolver interface {
	Run(ctx context.Context, mediaURL string) (*pipeline.Result, error)
	Direct(ctx context.Context, token string) (string, error)
}

// Server is the HTTP server for vlink
type Server struct {
	port     int
	resolver Resolver
	log      *zap.Logger
	server   *http.Server
	engine   *gin.Engine
}

// NewServer creates a new HTTP server
func NewServer(port int, resolver Resolver, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		port:     port,
		resolver: resolver,
		log:      logger.Named("server"),
	}
	s.engine = s.newEngine()
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // a page with many links is resolved sequentially
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Handler returns the routed gin engine
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) newEngine() *gin.Engine {
	engine := gin.New()

	engine.Use(gin.CustomRecovery(s.recoveryHandler))
	engine.Use(requestIDMiddleware())
	engine.Use(s.loggingMiddleware())
	engine.Use(corsMiddleware())

	engine.GET("/", s.handleRoot)
	engine.GET("/health", s.handleHealth)
	engine.GET("/download", s.handleDownload)
	engine.GET("/info", s.handleInfo)
	engine.GET("/direct/*type", s.handleDirect)

	engine.NoRoute(func(c *gin.Context) {
		errorResponse(c, http.StatusNotFound, "not found")
	})

	return engine
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.log.Info("starting vlink server", zap.Int("port", s.port))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
