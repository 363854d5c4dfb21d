package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix starts every environment variable the loader reads.
const EnvPrefix = "UTFSTRING_"

// envMapping maps environment variables to the setting they override.
var envMapping = map[string]func(c *Config, v string) error{
	EnvPrefix + "LOG_LEVEL":        func(c *Config, v string) error { c.Logging.Level = v; return nil },
	EnvPrefix + "INPUT_ENCODING":   func(c *Config, v string) error { c.Input.Encoding = v; return nil },
	EnvPrefix + "INPUT_NORMALIZE":  func(c *Config, v string) error { c.Input.Normalize = v; return nil },
	EnvPrefix + "OUTPUT_ENCODING":  func(c *Config, v string) error { c.Output.Encoding = v; return nil },
	EnvPrefix + "REPORT_FORMAT":    func(c *Config, v string) error { c.Report.Format = v; return nil },
	EnvPrefix + "REPORT_HEX_GROUP": func(c *Config, v string) error { return parseInt(v, &c.Report.HexGroup) },
	EnvPrefix + "REPORT_MAX_UNITS": func(c *Config, v string) error { return parseInt(v, &c.Report.MaxUnits) },
}

// Loader builds a Config from a TOML file and the environment.
type Loader struct {
	readFile  func(path string) ([]byte, error)
	lookupEnv func(key string) (string, bool)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithReadFile replaces the function used to read files.
func WithReadFile(fn func(path string) ([]byte, error)) LoaderOption {
	return func(l *Loader) {
		l.readFile = fn
	}
}

// WithLookupEnv replaces the function used to read environment variables.
func WithLookupEnv(fn func(key string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		l.lookupEnv = fn
	}
}

// NewLoader creates a loader reading from the OS.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		readFile:  os.ReadFile,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load builds a Config from, in increasing priority: the defaults, the TOML
// file at path, variables in the dotenv file envFile, and the process
// environment. An empty path or envFile skips that layer. The result is not
// validated.
func (l *Loader) Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := l.LoadTOML(&cfg, path); err != nil {
			return cfg, err
		}
	}

	var fileVars map[string]string
	if envFile != "" {
		vars, err := l.loadEnvFile(envFile)
		if err != nil {
			return cfg, err
		}
		fileVars = vars
	}

	lookup := func(key string) (string, bool) {
		if v, ok := l.lookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadTOML overlays the settings in the TOML file at path onto cfg. Keys
// the file does not mention keep their current values. Unknown keys are
// rejected.
func (l *Loader) LoadTOML(cfg *Config, path string) error {
	data, err := l.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(cfg, path, data)
}

// parse decodes TOML data onto cfg.
func parse(cfg *Config, source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// loadEnvFile reads KEY=value pairs from a dotenv file without touching the
// process environment.
func (l *Loader) loadEnvFile(path string) (map[string]string, error) {
	data, err := l.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	vars, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return vars, nil
}

// applyEnv overrides settings from mapped environment variables, in sorted
// key order.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, key := range slices.Sorted(maps.Keys(envMapping)) {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		if err := envMapping[key](cfg, v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func parseInt(s string, dst *int) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrValidationFailed, s)
	}
	*dst = n
	return nil
}
