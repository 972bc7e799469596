// Package cmd wires up the CLI flags and starts the camera console.
package cmd

import (
	"context"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"ptzcon/config"
	"ptzcon/internal/console"
	"ptzcon/internal/history"
	"ptzcon/internal/metrics"
	"ptzcon/internal/preset"
	"ptzcon/internal/transport"
	"ptzcon/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X ptzcon/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// invocation is the result of parsing the command line.
type invocation struct {
	cfg         *config.Config
	fs          *flag.FlagSet
	showVersion bool
	showHelp    bool
}

// parseArgs layers defaults, PTZCON_* environment and flags, in that
// order.
func parseArgs(args []string) (*invocation, error) {
	cfg := config.Defaults()
	config.LoadFromEnv(cfg)

	inv := &invocation{cfg: cfg}
	fs := flag.NewFlagSet("ptzcon", flag.ContinueOnError)
	inv.fs = fs

	// ── serial line ──────────────────────────────────────────────
	fs.StringVarP(&cfg.Port, "port", "P", cfg.Port, "Serial device (probed when omitted)")
	fs.IntVarP(&cfg.BaudRate, "baud", "b", cfg.BaudRate, "Baud rate")
	fs.IntVar(&cfg.OpenAttempts, "open-attempts", cfg.OpenAttempts, "Tries before giving up on the port")
	fs.BoolVar(&cfg.SendInit, "init", cfg.SendInit, "Send the init preset after opening")

	// ── console ──────────────────────────────────────────────────
	fs.StringVar(&cfg.PresetFile, "presets", cfg.PresetFile, "YAML file of extra presets")
	fs.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "History file (default ~/"+config.DefaultHistoryFile+")")
	fs.IntVar(&cfg.HistoryLimit, "history-limit", cfg.HistoryLimit, "Entries kept in the history file (0 = all)")

	// ── output ───────────────────────────────────────────────────
	// CountVarP zeroes its target, so -v counts on top of the
	// default/env level instead of into cfg.Verbose directly.
	var extraVerbose int
	fs.CountVarP(&extraVerbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to a rotated file instead of stderr")

	// ── modes ────────────────────────────────────────────────────
	fs.BoolVar(&cfg.ListPorts, "list-ports", false, "List serial ports and exit")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Validate configuration and presets, then exit")

	fs.BoolVar(&inv.showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&inv.showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Verbose += extraVerbose
	return inv, nil
}

// Execute parses args and runs one console session.
func Execute(ctx context.Context, args []string) error {
	inv, err := parseArgs(args)
	if err != nil {
		return err
	}
	cfg, fs := inv.cfg, inv.fs

	if inv.showHelp {
		printUsage(fs)
		return nil
	}
	if inv.showVersion {
		fmt.Printf("ptzcon %s\n", version)
		return nil
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q (use --help for usage)", fs.Arg(0))
	}
	if cfg.ListPorts {
		return listPorts()
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	presets, err := loadPresets(cfg.PresetFile)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		fmt.Printf("configuration OK: port=%s baud=%d presets=%d\n",
			portLabel(cfg.Port), cfg.BaudRate, presets.Len())
		return nil
	}

	// ── build components ─────────────────────────────────────────
	logger := newLogger(cfg)
	defer logger.Close()

	link, err := transport.OpenSerial(ctx, transport.Options{
		Port:       cfg.Port,
		BaudRate:   cfg.BaudRate,
		Attempts:   cfg.OpenAttempts,
		RetryDelay: config.DefaultOpenRetryDelay,
	}, logger)
	if err != nil {
		return err
	}

	if cfg.SendInit {
		sendInit(link, presets, logger)
	}

	reader := console.NewLineReader(os.Stdin, os.Stdout, console.Completions(presets))
	store, historyPath := openHistory(cfg, reader, logger)

	c, err := console.New(console.Config{
		Transport:   link,
		Reader:      reader,
		Presets:     presets,
		History:     store,
		HistoryPath: historyPath,
		Logger:      logger,
		Metrics:     metrics.New(),
	})
	if err != nil {
		reader.Close()
		link.Close()
		return err
	}
	return c.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

func newLogger(cfg *config.Config) *util.Logger {
	if cfg.LogFile == "" {
		return util.NewLogger(cfg.Verbose)
	}
	return util.NewFileLogger(cfg.Verbose, util.LogFileOptions{
		Path:       cfg.LogFile,
		MaxSizeMB:  config.DefaultLogMaxSizeMB,
		MaxBackups: config.DefaultLogMaxBackups,
	})
}

func loadPresets(path string) (*preset.Table, error) {
	if path == "" {
		return preset.Default(), nil
	}
	t, err := preset.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("presets: %w", err)
	}
	return t, nil
}

// openHistory picks the history store.  It writes in the line editor's
// own format when the reader is one.  Without a home directory the
// session still runs, it just forgets its history on exit.
func openHistory(cfg *config.Config, reader console.LineReader, logger *util.Logger) (history.Store, string) {
	path := cfg.HistoryPath
	if path == "" {
		p, err := history.DefaultPath()
		if err != nil {
			logger.Warn("no home directory, history will not be saved: %v", err)
			return history.NewMemoryStore(), ""
		}
		path = p
	}
	return console.HistoryStore(reader, cfg.HistoryLimit), path
}

// sendInit puts the camera into a known state.  A failure is reported
// but does not stop the console.
func sendInit(link transport.Transport, presets *preset.Table, logger *util.Logger) {
	frame, err := presets.Resolve("init")
	if err != nil {
		logger.Warn("--init: %v", err)
		return
	}
	if err := link.SendFrame(frame); err != nil {
		logger.Warn("send init frame: %v", err)
		return
	}
	logger.Info("init frame %s sent", frame)
}

func listPorts() error {
	ports, err := transport.ListPorts()
	if err != nil {
		return fmt.Errorf("list ports: %w", err)
	}
	if len(ports) == 0 {
		fmt.Println("no serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Println(p)
	}
	return nil
}

func portLabel(p string) string {
	if p == "" {
		return "auto"
	}
	return p
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `ptzcon - VISCA Camera Console v%s

Interactive console for sending hex command frames to a PTZ camera
over a serial line.

Usage:
  ptzcon [options]

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  ptzcon                                  Probe for the camera at 9600 baud
  ptzcon -P /dev/ttyUSB1 -b 38400         Explicit port and rate
  ptzcon --presets site.yaml --init       Extra presets, reset zoom on start
  ptzcon --list-ports                     Show serial devices
  echo '!zoom_max' | ptzcon -P /dev/ttyS0 Scripted input
`)
}
