package cli

import (
	"fmt"

	"github.com/guiyumin/vlink/internal/core/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vlink configuration",
	Long: `View and create the vlink configuration file.

Every key can also be set through the environment, e.g.
  VLINK_SERVER_PORT=9000
  VLINK_UPSTREAM_TIMEOUT=20s
  VLINK_UPSTREAM_RATE_LIMIT=2`,
}

// vlink config init - write defaults
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", config.SavePath())
		return nil
	},
}

// vlink config show - show effective config
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration (file + environment)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		out, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n%s", config.SavePath(), out)
		return nil
	},
}

// vlink config path - show config file path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.SavePath())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
