package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VerifyResult is the JSON payload of the verify command.
type VerifyResult struct {
	Valid bool `json:"valid"`
	Count int  `json:"count"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <file|->",
		Short: "Parse and verify a program",
		Long: `Parse a textual IR program and verify every op in order.

Verification stops at the first invalid op. Its error is reported with the
op's location and the chain of causes beneath it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runVerify(opts *RootOptions, path string, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	ops, err := s.parseProgram(cmd, path, true)
	if err != nil {
		return err
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(VerifyResult{Valid: true, Count: len(ops)})
	}
	fmt.Fprintf(s.formatter.Writer, "✓ %d op(s) verified\n", len(ops))
	return nil
}
