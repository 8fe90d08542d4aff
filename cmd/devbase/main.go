// Package main is the entry point for the devbase CLI.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"devbase/internal/api"
	"devbase/internal/backend/devbase"
	"devbase/internal/cli"
	"devbase/internal/commands"
	"devbase/internal/config"
	"devbase/internal/service"
	"devbase/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create service factory
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		sessions := session.NewStore(cfg.Dir)
		var debugW io.Writer
		if cfg.Debug {
			debugW = os.Stderr
		}
		gateway := api.New(cfg.BaseURL, sessions, api.WithDebug(debugW))
		return devbase.New(gateway), nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
