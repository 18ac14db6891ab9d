package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/irkit/internal/ir"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	NoVerify bool
}

// ParseResult is the JSON payload of the parse command.
type ParseResult struct {
	Count    int      `json:"count"`
	Verified bool     `json:"verified"`
	Ops      []string `json:"ops"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a program and print it in canonical form",
		Long: `Parse a textual IR program and print it back in canonical form.

Unnamed results are numbered, attribute dictionaries are printed with sorted
keys and whitespace is normalized. The program is verified first unless
verification is turned off by --no-verify or the configuration.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoVerify, "no-verify", false, "skip verification")

	return cmd
}

func runParse(opts *ParseOptions, path string, cmd *cobra.Command) error {
	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	verify := s.cfg.Verify && !opts.NoVerify
	ops, err := s.parseProgram(cmd, path, verify)
	if err != nil {
		return err
	}

	if s.formatter.Format == "json" {
		result := ParseResult{Count: len(ops), Verified: verify, Ops: make([]string, len(ops))}
		text := strings.TrimSuffix(ir.PrintOps(s.ctx, ops), "\n")
		if len(ops) > 0 {
			result.Ops = strings.Split(text, "\n")
		}
		return s.formatter.Success(result)
	}

	_, err = s.formatter.Writer.Write([]byte(ir.PrintOps(s.ctx, ops)))
	return err
}
