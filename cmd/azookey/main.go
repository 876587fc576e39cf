// Package main is the entry point for the azookey terminal demo.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shuna/azooKey/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.DictPath, "dict", "", "Path to fixture dictionary (JSON)")
	flag.StringVar(&opts.ReplacePath, "replace", "", "Path to Lua replacement table")
	flag.BoolVar(&opts.Reading, "reading", false, "Enable morphological reading fallback")
	flag.StringVar(&opts.LogPath, "log", "", "Log file path")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "azookey - kana-kanji composing session demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: azookey [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  letters      compose romaji\n")
		fmt.Fprintf(os.Stderr, "  space/tab    cycle candidates\n")
		fmt.Fprintf(os.Stderr, "  enter        commit selection\n")
		fmt.Fprintf(os.Stderr, "  esc          abandon composition\n")
		fmt.Fprintf(os.Stderr, "  ctrl-w       smooth delete\n")
		fmt.Fprintf(os.Stderr, "  ctrl-t       cycle character form\n")
		fmt.Fprintf(os.Stderr, "  ctrl-q       quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("azookey %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}
