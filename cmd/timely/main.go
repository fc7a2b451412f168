package main

import (
	"flag"
	"fmt"
	"os"

	"timely/internal/config"
	"timely/internal/logging"
	"timely/internal/storage"
	"timely/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	fs := flag.NewFlagSet("timely", flag.ExitOnError)
	configPath := fs.String("config", config.ResolveConfigPath(), "path to the TOML config file")
	printConfig := fs.Bool("print-config", false, "print the effective config as TOML and exit")
	showVersion := fs.Bool("version", false, "show version")
	fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println("timely " + Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *printConfig {
		data, err := config.Encode(cfg)
		if err != nil {
			logging.New(os.Stderr, cfg.LogLevel).Fatal("encode config", "err", err)
		}
		os.Stdout.Write(data)
		return
	}

	// The terminal belongs to the UI from here on.
	logger, logCloser, err := logging.NewForTUI(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	store, err := storage.Open(storage.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open task store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	logger.Debug("starting", "config", *configPath, "version", Version)
	if err := ui.Run(store, cfg, ui.WithLogger(logger)); err != nil {
		logger.Error("error running program", "err", err)
		fmt.Fprintf(os.Stderr, "error running program: %v\n", err)
		store.Close()
		logCloser.Close()
		os.Exit(1)
	}
}
