// internal/cli/serve.go
package handytools

import (
	"os"

	"github.com/mwiater/handytools/internal/logging"
	"github.com/spf13/cobra"
)

// serveCmd runs the stdio MCP transport. stdout carries only protocol frames;
// logs go to stderr and the log file.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP over stdio (Content-Length framed JSON-RPC)",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := newServer()
		if err != nil {
			return err
		}
		logging.LogEvent("stdio transport ready: %d tools registered", len(srv.Registry().Definitions()))
		return srv.ServeStdio(os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
