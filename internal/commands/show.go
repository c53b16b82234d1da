package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command. The task is re-read from the API so
// the printed fields are current.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return nil }
func (c *ShowCmd) Synopsis() string   { return "Print a task's details" }
func (c *ShowCmd) Usage() string      { return "taskpad show <ref>" }
func (c *ShowCmd) NeedsService() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, _, code := parseRef(args, errOut)
	if code != exitcode.Success {
		return code
	}

	_, task, code := lookupRef(ctx, cfg, svc, ref, errOut)
	if code != exitcode.Success {
		return code
	}

	current, err := svc.GetTask(ctx, task.ID)
	if err != nil {
		return backendError(errOut, fmt.Errorf("failed to fetch task: %w", err))
	}

	output.FormatDetail(out, current, cfg.Loc())
	return exitcode.Success
}
