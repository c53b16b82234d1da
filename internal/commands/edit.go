package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. The task keeps its completion state.
type EditCmd struct{}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return nil }
func (c *EditCmd) Synopsis() string   { return "Rename a task" }
func (c *EditCmd) Usage() string      { return "taskpad edit <ref> <title...>" }
func (c *EditCmd) NeedsService() bool { return true }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, rest, code := parseRef(args, errOut)
	if code != exitcode.Success {
		return code
	}

	title := strings.Join(rest, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	vm, task, code := lookupRef(ctx, cfg, svc, ref, errOut)
	if code != exitcode.Success {
		return code
	}

	vm.BeginEdit(task)
	vm.SetDraft(title)
	if err := vm.CommitEdit(ctx); err != nil {
		return backendError(errOut, err)
	}

	printOK(cfg, out)
	return exitcode.Success
}
