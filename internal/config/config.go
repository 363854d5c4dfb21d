package config

import (
	"errors"

	"github.com/dshills/utfstring/internal/logging"
	"github.com/dshills/utfstring/internal/textio"
)

// Report formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config holds the settings of the utfstring command.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Input   InputConfig   `toml:"input"`
	Output  OutputConfig  `toml:"output"`
	Report  ReportConfig  `toml:"report"`
}

// LoggingConfig configures diagnostics on stderr.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn or error.
	Level string `toml:"level"`
}

// InputConfig configures how input bytes become a string.
type InputConfig struct {
	// Encoding names the input encoding, or "auto" to detect it.
	Encoding string `toml:"encoding"`
	// Normalize is a Unicode normalization form applied after decoding:
	// nfc, nfd, nfkc or nfkd. Empty leaves the text as decoded.
	Normalize string `toml:"normalize"`
}

// OutputConfig configures transcoding.
type OutputConfig struct {
	// Encoding names the target encoding. Empty means the report is printed
	// instead of transcoded bytes.
	Encoding string `toml:"encoding"`
}

// ReportConfig configures the inspection report.
type ReportConfig struct {
	// Format is text, yaml or json.
	Format string `toml:"format"`
	// HexGroup is the number of values per hex dump line; 0 keeps each dump
	// on one line.
	HexGroup int `toml:"hexGroup"`
	// MaxUnits caps the number of code units dumped; 0 dumps everything.
	MaxUnits int `toml:"maxUnits"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Input:   InputConfig{Encoding: "auto"},
		Report:  ReportConfig{Format: FormatText, HexGroup: 8, MaxUnits: 256},
	}
}

// Validate checks every setting. All failures are returned together; each
// matches ErrValidationFailed.
func (c Config) Validate() error {
	var errs []error
	invalid := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		invalid("logging.level", "must be debug, info, warn or error", c.Logging.Level)
	}
	if _, err := textio.ParseEncoding(c.Input.Encoding); err != nil {
		invalid("input.encoding", "unknown encoding", c.Input.Encoding)
	}
	if c.Input.Normalize != "" {
		if _, err := textio.ParseForm(c.Input.Normalize); err != nil {
			invalid("input.normalize", "must be nfc, nfd, nfkc or nfkd", c.Input.Normalize)
		}
	}
	if c.Output.Encoding != "" {
		enc, err := textio.ParseEncoding(c.Output.Encoding)
		switch {
		case err != nil:
			invalid("output.encoding", "unknown encoding", c.Output.Encoding)
		case enc == textio.EncodingAuto:
			invalid("output.encoding", "cannot be auto", c.Output.Encoding)
		}
	}
	switch c.Report.Format {
	case FormatText, FormatYAML, FormatJSON:
	default:
		invalid("report.format", "must be text, yaml or json", c.Report.Format)
	}
	if c.Report.HexGroup < 0 {
		invalid("report.hexGroup", "must not be negative", c.Report.HexGroup)
	}
	if c.Report.MaxUnits < 0 {
		invalid("report.maxUnits", "must not be negative", c.Report.MaxUnits)
	}

	return errors.Join(errs...)
}
