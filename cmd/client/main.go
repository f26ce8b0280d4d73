package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"Almonium/internal/cli/bootstrap"
	"Almonium/internal/cli/commands"
	"Almonium/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	logger, err := bootstrap.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	sugar := logger.Sugar()

	app, err := bootstrap.New(cfg, sugar, nil)
	if err != nil {
		sugar.Errorw("failed to initialize client", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// dispatcher
	exitCode := commands.Dispatch(ctx, app, flag.Args())

	cancel()
	if err := app.Close(); err != nil {
		sugar.Warnw("failed to close client storage", "error", err)
	}
	_ = logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func printVersion() {
	fmt.Printf("Almonium CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
