// ABOUTME: Entry point for the pipekit CLI tool
// ABOUTME: Initializes and executes the root command
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pipekit/pipekit/internal/commands"
	"github.com/pipekit/pipekit/internal/ui"
)

var version = "dev" // Injected at build time via -ldflags

func main() {
	commands.SetVersion(version)

	if err := commands.Execute(); err != nil {
		if msg := ui.FormatError(err); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		code := 1
		var exitErr *commands.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
		}
		os.Exit(code)
	}
}
