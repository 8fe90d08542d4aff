package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"devbase/internal/config"
	"devbase/internal/exitcode"
	"devbase/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "devbase help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  devbase                                            Show the dashboard
  devbase dashboard [common flags]
  devbase projects [common flags] [--page <n>] [--page-size <n>] [--search <text>] [--sort <field>] [--order <asc|desc>]
  devbase addproject [common flags] <name...>
  devbase renameproject [common flags] <project-id> <name...>
  devbase rmproject [common flags] <project-id>
  devbase tasks [common flags] [--project <id>] [--status <todo|doing|done>]
  devbase add [common flags] --project <id> [--status <s>] <title...>
  devbase done [common flags] <task>
  devbase status [common flags] <task> <todo|doing|done>
  devbase retitle [common flags] <task> <title...>
  devbase rm [common flags] <task>
  devbase login [common flags] --email <email> [--password <password>]
  devbase register [common flags] --email <email> [--password <password>] [--name <name>]
  devbase logout [common flags]
  devbase whoami [common flags]
  devbase theme [dark|light|toggle]
  devbase settings [set <key> <on|off>]
  devbase help
  devbase version

A <task> is the row number from the task listing, a task id, or a title
prefix that matches exactly one task.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print request traces to stderr
`
