// Command irkit parses, verifies and prints dialect-based IR programs.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/roach88/irkit/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Subcommands report their own errors; bad flags and unknown
		// commands are printed here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
