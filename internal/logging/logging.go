// Package logging builds the zap loggers used by irkit.
//
// Library code never logs through a global: a *zap.Logger is handed to the
// ir.Context that needs it, and the no-op logger is the default.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for structured logging.
const (
	FieldSession = "session"
	FieldDialect = "dialect"
	FieldKind    = "kind"
	FieldKey     = "key"
	FieldCount   = "count"
	FieldSource  = "source"
	FieldError   = "error"
)

// Options selects the logger's level and encoding.
type Options struct {
	// Level is one of debug, info, warn or error. Empty means warn.
	Level string
	// JSON selects the production JSON encoder instead of the console one.
	JSON bool
	// Output defaults to stderr.
	Output io.Writer
}

// ParseLevel maps a level name onto a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(name) {
	case "", "warn", "warning":
		return zap.WarnLevel, nil
	case "debug":
		return zap.DebugLevel, nil
	case "info":
		return zap.InfoLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zap.WarnLevel, errors.Newf("unknown log level %q", name)
	}
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(out), level)
	return zap.New(core), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
