// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/telemetry"
)

// traceFlushTimeout bounds flushing spans to the trace file on exit.
const traceFlushTimeout = 5 * time.Second

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var (
		configDir string
		baseURL   string
		quiet     bool
		debug     bool
	)
	fs.StringVar(&configDir, "config", "", "config directory")
	fs.StringVar(&baseURL, "base-url", "", "Task API base URL")
	fs.BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")
	fs.BoolVar(&debug, "debug", false, "print debug logs to stderr")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(out, "Usage: %s\n\n%s\n", cmd.Usage(), cmd.Synopsis())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.ConfigError
		}
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	cfg.Logger = telemetry.NewLogger(errOut, debug)

	shutdown, err := telemetry.SetupTracing(cfg.TraceFile, commands.Version)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), traceFlushTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			cfg.Logger.Warn("trace_flush_failed", slog.String("error", err.Error()))
		}
	}()

	cfg.Logger.Debug("dispatch",
		slog.String("command", cmd.Name()),
		slog.String("base_url", cfg.BaseURL),
		slog.String("config_dir", cfg.Dir),
	)

	var svc service.Service
	if cmd.NeedsService() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no backend configured")
			return exitcode.ConfigError
		}
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.ConfigError
		}
	}

	return cmd.Run(ctx, cfg, svc, fs.Args(), out, errOut)
}
