package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/telemetry"
	"taskpad/internal/tui"
)

func init() {
	Register(&TuiCmd{})
}

// TuiCmd starts the interactive task manager.
type TuiCmd struct{}

func (c *TuiCmd) Name() string       { return "tui" }
func (c *TuiCmd) Aliases() []string  { return nil }
func (c *TuiCmd) Synopsis() string   { return "Interactive task manager" }
func (c *TuiCmd) Usage() string      { return "taskpad tui" }
func (c *TuiCmd) NeedsService() bool { return true }

func (c *TuiCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *TuiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if cfg.MetricsAddr != "" {
		srv, err := telemetry.ServeMetrics(cfg.MetricsAddr, cfg.Log())
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.ConfigError
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if err := tui.Run(ctx, cfg, svc); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
