// Package config loads irkit session configuration.
//
// A configuration file is YAML. It is checked against an embedded CUE
// schema before being decoded, so type and enum errors are reported at
// their position in the file:
//
//	dialects: [builtin, llvm]
//	log:
//	  level: debug
//	  json: false
//	verify: true
//	source_name: stdin.ir
package config

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/dialects"
	"github.com/roach88/irkit/internal/ir"
	"github.com/roach88/irkit/internal/location"
	"github.com/roach88/irkit/internal/logging"
)

//go:embed schema.cue
var schemaSource string

// Config is a session configuration.
type Config struct {
	Dialects   []string `yaml:"dialects"`
	Log        Log      `yaml:"log"`
	Verify     bool     `yaml:"verify"`
	SourceName string   `yaml:"source_name"`
}

// Log configures the session logger.
type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Dialects: []string{"builtin", "llvm"},
		Log:      Log{Level: "warn"},
		Verify:   true,
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, diag.Arg(location.Unknown, errors.Wrapf(err, "reading config %s", path))
	}
	return Parse(path, data)
}

// Parse validates data, naming it filename in errors, and decodes it over
// Default. Missing fields keep their defaults.
func Parse(filename string, data []byte) (Config, error) {
	if err := checkSchema(filename, data); err != nil {
		return Config{}, err
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, diag.Arg(location.Unknown, errors.Wrapf(err, "decoding config %s", filename))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks what the schema cannot: that every dialect is known.
func (c Config) Validate() error {
	for _, name := range c.Dialects {
		if _, ok := dialects.Lookup(ir.DialectName(name)); !ok {
			return diag.ArgErr(location.Unknown, "Unknown dialect %s", name)
		}
	}
	return nil
}

// DialectNames returns the configured dialects as ir names.
func (c Config) DialectNames() []ir.DialectName {
	names := make([]ir.DialectName, len(c.Dialects))
	for i, n := range c.Dialects {
		names[i] = ir.DialectName(n)
	}
	return names
}

// Source names the source of inputs that do not come from a file.
func (c Config) Source() location.Source {
	if c.SourceName == "" {
		return location.InMemory
	}
	return location.File(c.SourceName)
}

// LoggingOptions maps the log section onto logger options.
func (c Config) LoggingOptions() logging.Options {
	return logging.Options{Level: c.Log.Level, JSON: c.Log.JSON}
}

func checkSchema(filename string, data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return errors.Wrap(err, "compiling config schema")
	}

	f, err := cueyaml.Extract(filename, data)
	if err != nil {
		return schemaError(filename, err)
	}
	v := ctx.BuildFile(f)
	if err := v.Err(); err != nil {
		return schemaError(filename, err)
	}
	if err := schema.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return schemaError(filename, err)
	}
	return nil
}

// schemaError reports the first CUE error at its position in the file.
func schemaError(filename string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return diag.Arg(location.Unknown, errors.Wrapf(err, "config %s", filename))
	}
	first := errs[0]
	for _, pos := range cueerrors.Positions(first) {
		if pos.Filename() == filename {
			return diag.Arg(location.At(location.File(filename), pos.Line(), pos.Column()), first)
		}
	}
	return diag.Arg(location.Unknown, errors.Wrapf(first, "config %s", filename))
}
