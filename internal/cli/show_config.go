// internal/cli/show_config.go
package handytools

import (
	"os"

	"github.com/k0kubun/pp"
	"github.com/mwiater/handytools/internal/appconfig"
	"github.com/spf13/cobra"
)

// configCmd prints the effective configuration. With --debug the full struct
// is dumped as well.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		appconfig.ShowConfig(os.Stdout, cfg.ConfigPath, cfg)
		if DebugEnabled() {
			pp.Println(cfg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
