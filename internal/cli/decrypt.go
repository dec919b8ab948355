package cli

import (
	"fmt"

	"github.com/guiyumin/vlink/internal/core/config"
	"github.com/spf13/cobra"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt <token>",
	Short: "Decrypt a single encrypted link token",
	Long: `Exchange one encrypted token (the part after "#url=" on a search page)
for its direct download URL.

Examples:
  vlink decrypt aHR0cHM6Ly9jZG4uZXhhbXBsZS92aWRlby5tcDQ`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, logger, err := newPipeline(config.LoadOrDefault())
		if err != nil {
			return err
		}
		defer logger.Sync()

		directURL, err := p.Direct(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(directURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
}
