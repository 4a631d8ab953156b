// internal/cli/serve_http.go
package handytools

import (
	"net/http"

	"github.com/mwiater/handytools/internal/logging"
	"github.com/spf13/cobra"
)

// serveHTTPCmd runs the HTTP MCP transport.
var serveHTTPCmd = &cobra.Command{
	Use:   "serve-http",
	Short: "Serve MCP over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		srv, err := newServer()
		if err != nil {
			return err
		}
		addr := cfg.ListenAddr()
		logging.LogEvent("http transport listening on %s", addr)
		return http.ListenAndServe(addr, srv.Router(cfg.HTTPToken))
	},
}

func init() {
	rootCmd.AddCommand(serveHTTPCmd)
}
