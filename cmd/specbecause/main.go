// Command specbecause runs and validates Because/It conformance scenarios.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/specbecause/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Subcommands silence cobra's printing and report through the
		// formatter; only surface what they did not already print.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
