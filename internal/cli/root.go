package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/guiyumin/vlink/internal/core/config"
	"github.com/guiyumin/vlink/internal/core/pipeline"
	"github.com/guiyumin/vlink/internal/core/version"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	infoOnly   bool
	plain      bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "vlink [url]",
	Short: "Resolve a media page into direct, classified download links",
	Long: `Resolve a media page (TikTok, Instagram, X, ...) into direct download links.

Examples:
  vlink https://www.tiktok.com/@user/video/123         # Show best picks and all links
  vlink --info https://www.tiktok.com/@user/video/123  # Title, counts and qualities only
  vlink --json https://www.tiktok.com/@user/video/123  # Full result as JSON
  vlink decrypt <token>                                # Decrypt a single link token
  vlink serve                                          # Start the HTTP API`,
	Version:       version.Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runResolve(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log upstream calls to stderr")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	rootCmd.Flags().BoolVar(&infoOnly, "info", false, "show only title, counts and qualities")
	rootCmd.Flags().BoolVar(&plain, "plain", false, "disable the progress spinner")
}

// Execute runs the root command and reports errors on stderr
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func runResolve(ctx context.Context, mediaURL string) error {
	cfg := config.LoadOrDefault()
	if !config.Exists() && !jsonOutput {
		color.New(color.FgYellow).Fprintln(os.Stderr, "Config file not found, using defaults. Run 'vlink config init'.")
	}

	p, logger, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var result *pipeline.Result
	if jsonOutput || plain {
		result, err = p.Run(ctx, mediaURL)
	} else {
		result, err = runResolveWithSpinner(ctx, p, mediaURL)
	}
	if err != nil {
		if jsonOutput {
			if perr := printJSON(errorPayload(err)); perr != nil {
				return perr
			}
			return reportedError{err}
		}
		return err
	}

	switch {
	case jsonOutput && infoOnly:
		return printJSON(result.Summary())
	case jsonOutput:
		return printJSON(result)
	case infoOnly:
		fmt.Print(renderSummary(result.Summary()))
	default:
		fmt.Print(renderResult(result))
	}
	return nil
}

func errorPayload(err error) map[string]any {
	return map[string]any{
		"success": false,
		"error":   pipeline.AsError(err).Message,
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
