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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "taskpad rm <ref>" }
func (c *RmCmd) NeedsService() bool { return true }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, _, code := parseRef(args, errOut)
	if code != exitcode.Success {
		return code
	}

	vm, task, code := lookupRef(ctx, cfg, svc, ref, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := vm.Remove(ctx, task.ID); err != nil {
		return backendError(errOut, err)
	}

	printOK(cfg, out)
	return exitcode.Success
}
