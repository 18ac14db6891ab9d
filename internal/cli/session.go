package cli

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/irkit/internal/config"
	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/dialects"
	"github.com/roach88/irkit/internal/ir"
	"github.com/roach88/irkit/internal/location"
	"github.com/roach88/irkit/internal/logging"
)

// session is the state one command invocation works in.
type session struct {
	cfg       config.Config
	ctx       *ir.Context
	formatter *OutputFormatter
}

// newSession loads the configuration, builds the logger and a context with
// the configured dialects registered. Failures are already reported when
// it returns.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, formatter.ReportError(err)
		}
		formatter.VerboseLog("Loaded config %s", opts.Config)
	}

	logOpts := cfg.LoggingOptions()
	if opts.Verbose {
		logOpts.Level = "debug"
	}
	logOpts.Output = cmd.ErrOrStderr()
	log, err := logging.New(logOpts)
	if err != nil {
		return nil, formatter.ReportError(diag.Arg(location.Unknown, err))
	}

	ctx := ir.NewContext(ir.WithLogger(log))
	if err := dialects.RegisterAll(ctx, cfg.DialectNames()); err != nil {
		return nil, formatter.ReportError(err)
	}

	ctx.Logger().Debug("session ready", zap.Int(logging.FieldCount, len(cfg.Dialects)))
	return &session{cfg: cfg, ctx: ctx, formatter: formatter}, nil
}

// readProgram reads the program at path, or stdin for "-".
func (s *session) readProgram(cmd *cobra.Command, path string) (location.Source, string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return location.Source{}, "", s.reportNotFound(errors.Wrap(err, "reading stdin"))
		}
		return s.cfg.Source(), string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return location.Source{}, "", s.reportNotFound(errors.Wrapf(err, "reading %s", path))
	}
	return location.File(path), string(data), nil
}

func (s *session) reportNotFound(err error) error {
	_ = s.formatter.Error(ErrCodeNotFound, err.Error(), nil)
	return WrapExitError(ExitCommandError, ErrCodeNotFound, err)
}

// parseProgram reads and parses the program at path and, when verify is
// set, verifies it.
func (s *session) parseProgram(cmd *cobra.Command, path string, verify bool) ([]ir.Op, error) {
	src, text, err := s.readProgram(cmd, path)
	if err != nil {
		return nil, err
	}

	ops, err := ir.ParseOps(ir.NewParseState(s.ctx, src, text))
	if err != nil {
		return nil, s.formatter.ReportError(err)
	}
	s.formatter.VerboseLog("Parsed %d op(s) from %s", len(ops), src)

	if verify {
		if err := ir.VerifyOps(s.ctx, ops); err != nil {
			return nil, s.formatter.ReportError(err)
		}
		s.formatter.VerboseLog("Verified %d op(s)", len(ops))
	}
	return ops, nil
}
