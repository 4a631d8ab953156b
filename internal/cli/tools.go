// internal/cli/tools.go
package handytools

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/mwiater/handytools/internal/util"
	"github.com/spf13/cobra"
)

// toolsCmd lists the registered tools and their descriptions.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools this server exposes",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := newServer()
		if err != nil {
			return err
		}

		nameStyle := color.New(color.FgCyan, color.Bold)
		for _, def := range srv.Registry().Definitions() {
			nameStyle.Println(def.Name)
			fmt.Println(util.IndentLines(util.WrapToWidth(def.Description, 76), "  "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
