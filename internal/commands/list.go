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
	"taskpad/internal/viewmodel"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskpad` (no args) and `taskpad list`.
type ListCmd struct {
	ongoingOnly   bool
	completedOnly bool
}

// SetSections restricts output to one section (for testing).
func (c *ListCmd) SetSections(ongoingOnly, completedOnly bool) {
	c.ongoingOnly = ongoingOnly
	c.completedOnly = completedOnly
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskpad list [--ongoing | --completed]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.ongoingOnly, "ongoing", "o", false, "show only ongoing tasks")
	fs.BoolVarP(&c.completedOnly, "completed", "c", false, "show only completed tasks")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.ongoingOnly && c.completedOnly {
		fmt.Fprintln(errOut, "error: cannot use both --ongoing and --completed")
		return exitcode.UserError
	}
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	vm, code := loadTasks(ctx, cfg, svc, errOut)
	if code != exitcode.Success {
		return code
	}
	tasks := vm.Tasks()

	if !c.completedOnly {
		printSection(cfg, out, "Ongoing", "", viewmodel.Ongoing(tasks))
	}
	if !c.ongoingOnly {
		printSection(cfg, out, "Completed", string(completedPrefix), viewmodel.Completed(tasks))
	}
	return exitcode.Success
}

// printSection prints a header and one row per task, numbered from 1 and
// prefixed so that each row's ref can be passed back to other commands.
func printSection(cfg *config.Config, out io.Writer, title, prefix string, tasks []service.Task) {
	output.FormatSectionHeader(out, title)
	if len(tasks) == 0 {
		if !cfg.Quiet {
			output.FormatEmpty(out, title)
		}
		return
	}
	for i, task := range tasks {
		output.FormatTask(out, fmt.Sprintf("%s%d", prefix, i+1), task, cfg.Loc())
	}
}
