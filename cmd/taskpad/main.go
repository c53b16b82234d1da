// Package main is the entry point for the taskpad CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskpad/internal/backend/restapi"
	"taskpad/internal/cli"
	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/service"
)

func main() {
	// Cancel in-flight requests on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return restapi.New(cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
