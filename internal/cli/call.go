// internal/cli/call.go
package handytools

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var callArgsJSON string

// callCmd invokes one tool in-process and prints its content parts. Useful
// for trying a tool without wiring up an MCP host.
var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke a tool directly and print its result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toolArgs := map[string]any{}
		if callArgsJSON != "" {
			if err := json.Unmarshal([]byte(callArgsJSON), &toolArgs); err != nil {
				return fmt.Errorf("parse --args: %w", err)
			}
		}

		srv, err := newServer()
		if err != nil {
			return err
		}

		content, err := srv.Registry().Dispatch(args[0], toolArgs)
		if err != nil {
			return err
		}

		typeStyle := color.New(color.FgYellow)
		for _, part := range content {
			typeStyle.Printf("[%s]\n", part.Type)
			switch part.Type {
			case "image":
				fmt.Printf("%s, %d base64 bytes\n", part.MimeType, len(part.Data))
			default:
				fmt.Println(part.Text)
			}
		}
		return nil
	},
}

func init() {
	callCmd.Flags().StringVar(&callArgsJSON, "args", "", "tool arguments as a JSON object")
	rootCmd.AddCommand(callCmd)
}
