// Package main is the entry point for the nexus event bus demo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/nexus/internal/demo"
)

func main() {
	os.Exit(run())
}

func run() int {
	var opts demo.Options
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to TOML configuration file")
	flag.StringVar(&opts.ScriptPath, "script", "", "Path to Lua hook script")
	flag.Int64Var(&opts.Seed, "seed", 0, "Random seed (0 uses the clock)")
	flag.Parse()

	app, err := demo.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer app.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
