// Package main is the entry point for the utfstring inspector.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/utfstring/internal/config"
	"github.com/dshills/utfstring/internal/engine"
	"github.com/dshills/utfstring/internal/logging"
	"github.com/dshills/utfstring/internal/report"
	"github.com/dshills/utfstring/internal/textio"
	"github.com/dshills/utfstring/internal/watch"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks command line mistakes; they exit with status 2.
var errUsage = errors.New("usage")

// streams are the process's standard files.
type streams struct {
	stdin    io.Reader
	stdinTTY bool
	stdout   io.Writer
	stderr   io.Writer
}

// options holds the parsed command line.
type options struct {
	configPath  string
	envFile     string
	text        string
	watch       bool
	showVersion bool
	file        string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], streams{
		stdin:    os.Stdin,
		stdinTTY: term.IsTerminal(int(os.Stdin.Fd())),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}))
}

func run(ctx context.Context, args []string, std streams) int {
	opts, cfg, err := parseArgs(args, std.stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(std.stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}

	if opts.showVersion {
		fmt.Fprintf(std.stdout, "utfstring %s\n", version)
		fmt.Fprintf(std.stdout, "Commit: %s\n", commit)
		fmt.Fprintf(std.stdout, "Built: %s\n", date)
		return 0
	}

	level, _ := logging.ParseLevel(cfg.Logging.Level)
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.Output = std.stderr
	log := logging.New(logCfg)

	if opts.file == "" && opts.text == "" && std.stdinTTY {
		fmt.Fprintln(std.stderr, "Error: no input (pass a file, -text, or pipe data on stdin)")
		return 2
	}
	if opts.watch && opts.file == "" {
		fmt.Fprintln(std.stderr, "Error: -watch needs a file argument")
		return 2
	}

	p := &processor{cfg: cfg, log: log.WithComponent("inspect"), out: std.stdout}
	if err := p.process(opts, std.stdin); err != nil {
		log.Error("%v", err)
		return 1
	}
	if !opts.watch {
		return 0
	}

	if err := watchFile(ctx, opts, p, log.WithComponent("watch")); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

// parseArgs parses the command line and loads the configuration it names.
// Explicitly set flags override the file and environment settings.
func parseArgs(args []string, stderr io.Writer) (options, config.Config, error) {
	var opts options
	fs := flag.NewFlagSet("utfstring", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		format, inEnc, outEnc, normalize, logLevel string
		hexGroup, maxUnits                         int
	)
	fs.StringVar(&opts.configPath, "config", "", "Path to TOML configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to TOML configuration file (shorthand)")
	fs.StringVar(&opts.envFile, "env-file", "", "Path to a dotenv file of UTFSTRING_* settings")
	fs.StringVar(&opts.text, "text", "", "Inspect this UTF-8 text instead of reading input")
	fs.StringVar(&format, "format", "", "Report format (text, yaml, json)")
	fs.StringVar(&format, "f", "", "Report format (shorthand)")
	fs.StringVar(&inEnc, "encoding", "", "Input encoding (auto, utf-8, utf-8-bom, utf-16le, utf-16be, iso-8859-1, ascii)")
	fs.StringVar(&inEnc, "e", "", "Input encoding (shorthand)")
	fs.StringVar(&outEnc, "output-encoding", "", "Transcode to this encoding instead of printing a report")
	fs.StringVar(&outEnc, "o", "", "Output encoding (shorthand)")
	fs.StringVar(&normalize, "normalize", "", "Normalization form applied after decoding (nfc, nfd, nfkc, nfkd)")
	fs.IntVar(&hexGroup, "hex-group", 0, "Code units per hex dump line")
	fs.IntVar(&maxUnits, "max-units", 0, "Maximum code units to dump (0 for all)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run whenever the input file changes")
	fs.BoolVar(&opts.watch, "w", false, "Re-run whenever the input file changes (shorthand)")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "utfstring - inspect and transcode UTF-16 text\n\n")
		fmt.Fprintf(stderr, "Usage: utfstring [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  utfstring notes.txt                      Report on a file\n")
		fmt.Fprintf(stderr, "  utfstring -text 'a😀' -f json             Report on a literal\n")
		fmt.Fprintf(stderr, "  utfstring -o utf-16le in.txt > out.txt   Transcode a file\n")
		fmt.Fprintf(stderr, "  utfstring -w -normalize nfc notes.txt    Watch a file\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, config.Config{}, err
		}
		return opts, config.Config{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	switch fs.NArg() {
	case 0:
	case 1:
		opts.file = fs.Arg(0)
	default:
		return opts, config.Config{}, fmt.Errorf("%w: expected at most one file, got %d", errUsage, fs.NArg())
	}
	if opts.file != "" && opts.text != "" {
		return opts, config.Config{}, fmt.Errorf("%w: -text cannot be combined with a file", errUsage)
	}
	if opts.showVersion {
		return opts, config.Config{}, nil
	}

	cfg, err := config.NewLoader().Load(opts.configPath, opts.envFile)
	if err != nil {
		return opts, cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format", "f":
			cfg.Report.Format = format
		case "encoding", "e":
			cfg.Input.Encoding = inEnc
		case "output-encoding", "o":
			cfg.Output.Encoding = outEnc
		case "normalize":
			cfg.Input.Normalize = normalize
		case "hex-group":
			cfg.Report.HexGroup = hexGroup
		case "max-units":
			cfg.Report.MaxUnits = maxUnits
		case "log-level":
			cfg.Logging.Level = logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return opts, cfg, fmt.Errorf("%w: %v", errUsage, err)
	}
	return opts, cfg, nil
}

// processor turns one input into a report or transcoded bytes.
type processor struct {
	cfg config.Config
	log *logging.Logger
	out io.Writer
}

func (p *processor) process(opts options, stdin io.Reader) error {
	e, err := p.load(opts, stdin)
	if err != nil {
		return err
	}
	p.log.WithFields(map[string]any{
		"encoding": e.Encoding(),
		"units":    e.Len(),
	}).Debug("decoded input")

	if p.cfg.Input.Normalize != "" {
		form, _ := textio.ParseForm(p.cfg.Input.Normalize)
		if err := e.Normalize(form); err != nil {
			return fmt.Errorf("normalize: %w", err)
		}
		if e.CanUndo() {
			p.log.WithField("form", p.cfg.Input.Normalize).Info("normalized input")
		}
	}

	if p.cfg.Output.Encoding != "" {
		enc, _ := textio.ParseEncoding(p.cfg.Output.Encoding)
		e.SetEncoding(enc)
		if _, err := e.WriteTo(p.out); err != nil {
			return fmt.Errorf("write %s: %w", enc, err)
		}
		return nil
	}

	r := report.Build(e.Snapshot(), e.Encoding().String(), report.Options{
		HexGroup: p.cfg.Report.HexGroup,
		MaxUnits: p.cfg.Report.MaxUnits,
	})
	return report.Render(p.out, r, p.cfg.Report.Format)
}

// load builds an engine from -text, the input file or stdin.
func (p *processor) load(opts options, stdin io.Reader) (*engine.Engine, error) {
	enc, _ := textio.ParseEncoding(p.cfg.Input.Encoding)

	if opts.text != "" {
		return engine.New(engine.WithUTF8(opts.text), engine.WithEncoding(textio.EncodingUTF8))
	}

	r := stdin
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	e, err := engine.NewFromReader(r, engine.WithEncoding(enc))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", enc, err)
	}
	return e, nil
}

// watchFile re-runs p every time the input file changes, until ctx is
// cancelled.
func watchFile(ctx context.Context, opts options, p *processor, log *logging.Logger) error {
	w, err := watch.New()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(opts.file); err != nil {
		return err
	}
	log.WithField("file", opts.file).Info("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			log.WithField("op", ev.Op).Debug("file changed")
			if ev.Op.Has(watch.OpRemove) || ev.Op.Has(watch.OpRename) {
				if _, err := os.Stat(ev.Path); err != nil {
					log.Warn("input file is gone: %s", ev.Path)
					continue
				}
			}
			if err := p.process(opts, nil); err != nil {
				log.Error("%v", err)
			}

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			log.Warn("watch error: %v", err)
		}
	}
}
