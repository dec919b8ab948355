package cli

import (
	"fmt"
	"runtime"

	"github.com/guiyumin/vlink/internal/core/config"
	"github.com/guiyumin/vlink/internal/core/version"
	"github.com/spf13/cobra"
)

// buildInfo is what `vlink version` reports
type buildInfo struct {
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
	SearchURL  string `json:"search_url"`
	DecryptURL string `json:"decrypt_url"`
}

func newBuildInfo(cfg *config.Config) buildInfo {
	return buildInfo{
		Version:    version.Version,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		SearchURL:  cfg.Upstream.SearchURL,
		DecryptURL: cfg.Upstream.DecryptURL,
	}
}

func (b buildInfo) String() string {
	return fmt.Sprintf("vlink v%s %s (%s)\n  search:  %s\n  decrypt: %s\n",
		b.Version, b.Platform, b.GoVersion, b.SearchURL, b.DecryptURL)
}

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and upstream information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := newBuildInfo(config.LoadOrDefault())
		if versionJSON {
			return printJSON(info)
		}
		fmt.Print(info)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(versionCmd)
}
