package cli

import (
	"github.com/guiyumin/vlink/internal/core/config"
	"github.com/guiyumin/vlink/internal/core/logging"
	"github.com/guiyumin/vlink/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server exposing the resolver as a JSON API.

Examples:
  vlink serve              # Start server on port 8080
  vlink serve -p 9000      # Start server on port 9000

API Endpoints:
  GET /                        # Service metadata
  GET /health                  # Health check
  GET /download?url=<page>     # Full result with direct links
  GET /info?url=<page>         # Title, counts and qualities
  GET /direct/<type>?url=<tok> # Decrypt a single token`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadOrDefault()

		// Resolve port (flag > config/env > default)
		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		if port == 0 {
			port = config.DefaultPort
		}

		logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return err
		}
		defer logger.Sync()

		return server.Run(cmd.Context(), port, cfg, logger)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP listen port (default: 8080)")
	rootCmd.AddCommand(serveCmd)
}
