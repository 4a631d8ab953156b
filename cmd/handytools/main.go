// cmd/handytools/main.go
package main

import (
	cmd "github.com/mwiater/handytools/internal/cli"
)

// main starts the handytools CLI application by delegating to the
// cobra root command defined in the cli package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
