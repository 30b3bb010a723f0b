// Package main provides the strokes command: a mouse gesture engine with
// three hosts. The replay host runs recorded pointer traces headlessly, the
// pad host is an interactive terminal canvas, and the browser host drives a
// Chromium window through Playwright.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/entrhq/strokes/pkg/config"
	"github.com/entrhq/strokes/pkg/executor/pad"
	"github.com/entrhq/strokes/pkg/logging"
)

const version = "0.1.0"

// Config holds the command-line configuration
type Config struct {
	ConfigFile  string
	Replay      string
	ReportLevel string
	Pad         bool
	Browser     bool
	Headless    bool
	URL         string
	Host        string
	CellWidth   float64
	CellHeight  float64
	LogLevel    string
	LogDir      string
	ShowVersion bool

	// Traces are replay files given as positional arguments.
	Traces []string
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("strokes v%s\n", version)
		return
	}

	if err := cfg.validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Printf("strokes: %v", err)
		os.Exit(1)
	}
	cancel()
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.ConfigFile, "config", "", "Path to settings file, JSON or YAML (default ~/.strokes/config.json)")
	flag.StringVar(&cfg.Replay, "replay", "", "Replay a pointer trace file (YAML or JSON)")
	flag.StringVar(&cfg.ReportLevel, "report", "normal", "Replay report detail: quiet, normal or verbose")
	flag.BoolVar(&cfg.Pad, "pad", false, "Run the interactive terminal gesture pad")
	flag.BoolVar(&cfg.Browser, "browser", false, "Run gestures in a Chromium window")
	flag.BoolVar(&cfg.Headless, "headless", false, "Run the browser without a window")
	flag.StringVar(&cfg.URL, "url", "about:blank", "Page the browser opens first")
	flag.StringVar(&cfg.Host, "host", "localhost", "Page host the pad reports to the site policy")
	flag.Float64Var(&cfg.CellWidth, "cell-width", pad.DefaultCellWidth, "Pad cell width in pixels")
	flag.Float64Var(&cfg.CellHeight, "cell-height", pad.DefaultCellHeight, "Pad cell height in pixels")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flag.StringVar(&cfg.LogDir, "log-dir", "", "Log directory (default ~/.strokes/logs)")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "strokes - mouse gesture recognition\n\n")
		fmt.Fprintf(os.Stderr, "Usage: strokes [options] [trace...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  strokes -replay testdata/navigation.yaml\n")
		fmt.Fprintf(os.Stderr, "  strokes -report verbose nav.yaml links.json\n")
		fmt.Fprintf(os.Stderr, "  strokes -pad -host github.com\n")
		fmt.Fprintf(os.Stderr, "  strokes -browser -url https://example.org\n")
	}

	flag.Parse()
	cfg.Traces = flag.Args()
	if cfg.Replay != "" {
		cfg.Traces = append([]string{cfg.Replay}, cfg.Traces...)
	}
	return cfg
}

// validate checks that exactly one host is selected
func (c *Config) validate() error {
	hosts := 0
	if len(c.Traces) > 0 {
		hosts++
	}
	if c.Pad {
		hosts++
	}
	if c.Browser {
		hosts++
	}
	switch {
	case hosts == 0:
		return errors.New("choose a host: -replay, -pad or -browser")
	case hosts > 1:
		return errors.New("-replay, -pad and -browser are mutually exclusive")
	}

	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return errors.New("cell size must be positive")
	}
	return nil
}

func run(ctx context.Context, cfg *Config) error {
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.SetDefaultLevel(level)
	if cfg.LogDir != "" {
		logging.SetDirectory(cfg.LogDir)
	}

	logger, err := logging.NewLogger("strokes")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging to stderr: %v\n", err)
	}
	defer logger.Close()

	if err := config.Initialize(cfg.ConfigFile); err != nil {
		if !config.IsInitialized() {
			return fmt.Errorf("failed to initialize configuration: %w", err)
		}
		logger.Warnf("settings partially loaded: %v", err)
	}
	manager := config.Global()
	if dropped := config.GetGestures().Dropped(); len(dropped) > 0 {
		logger.Warnf("ignored gesture mappings: %s", strings.Join(dropped, ", "))
	}

	switch {
	case cfg.Pad:
		return pad.NewExecutor(manager, pad.Options{
			CellWidth:  cfg.CellWidth,
			CellHeight: cfg.CellHeight,
			Host:       cfg.Host,
			Logger:     logger.Component("engine"),
		}).Run(ctx)
	case cfg.Browser:
		return runBrowser(ctx, cfg, manager, logger)
	default:
		return runReplay(ctx, cfg, manager, logger)
	}
}
