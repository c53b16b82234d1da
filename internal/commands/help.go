package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskpad help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskpad                                  List ongoing and completed tasks
  taskpad list [--ongoing | --completed]   List tasks (alias: ls)
  taskpad show <ref>                       Print a task's details
  taskpad add <title...>                   Create a task (alias: create)
  taskpad edit <ref> <title...>            Rename a task
  taskpad toggle <ref>                     Mark a task completed or ongoing (alias: done)
  taskpad rm <ref>                         Delete a task (alias: delete)
  taskpad tui                              Interactive task manager
  taskpad login [--token <token>]          Store an API token
  taskpad logout                           Remove the stored API token
  taskpad config                           Print the effective configuration
  taskpad help
  taskpad version

Task references:
  N      the Nth ongoing task
  cN     the Nth completed task (also: c N)

Common flags:
  --config <dir>     Override config directory
  --base-url <url>   Override the Task API base URL
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
`
