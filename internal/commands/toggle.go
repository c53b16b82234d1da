package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
// An ongoing task becomes completed and a completed one becomes ongoing.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string   { return "Flip a task between ongoing and completed" }
func (c *ToggleCmd) Usage() string      { return "taskpad toggle <ref>" }
func (c *ToggleCmd) NeedsService() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, _, code := parseRef(args, errOut)
	if code != exitcode.Success {
		return code
	}

	vm, task, code := lookupRef(ctx, cfg, svc, ref, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := vm.ToggleComplete(ctx, task.ID); err != nil {
		return backendError(errOut, err)
	}

	printOK(cfg, out)
	return exitcode.Success
}
