// internal/cli/check.go
package handytools

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/handytools/internal/client"
	"github.com/spf13/cobra"
)

// serverStatus summarizes the result of probing the configured server binary.
type serverStatus string

const (
	serverStatusOK     serverStatus = "ok"
	serverStatusFailed serverStatus = "failed"
)

// checkCmd spawns the configured server binary over stdio, runs the
// initialize handshake, and lists the tools it reports.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Spawn the server binary and verify the stdio handshake",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		c, err := client.Spawn(ctx, cfg.ServerBinaryPath(), "serve")
		if err != nil {
			fmt.Println(renderStatusBadge(serverStatusFailed))
			return err
		}
		defer c.Close()

		tools, err := c.ListTools(ctx)
		if err != nil {
			fmt.Println(renderStatusBadge(serverStatusFailed))
			return err
		}

		fmt.Println(renderStatusBadge(serverStatusOK))
		for _, tool := range tools {
			fmt.Printf("  %s — %s\n", tool.Name, tool.Description)
		}
		return nil
	},
}

// renderStatusBadge returns a Lipgloss-styled badge string for the probe result.
func renderStatusBadge(status serverStatus) string {
	badgeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Padding(0, 1)
	if status == serverStatusOK {
		return badgeStyle.Background(lipgloss.Color("42")).Render("server: ok")
	}
	return badgeStyle.Background(lipgloss.Color("203")).Render("server: failed")
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
