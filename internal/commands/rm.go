package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"devbase/internal/config"
	"devbase/internal/exitcode"
	"devbase/internal/service"
)

func init() {
	Register(&RmCmd{})
	Register(&RetitleCmd{})
}

// RmCmd deletes a task.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return nil }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "devbase rm <task>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}

	task, err := resolveTaskRef(ctx, svc, args[0])
	if err != nil {
		return reportTaskRefError(errOut, err)
	}

	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// RetitleCmd updates a task's title.
type RetitleCmd struct{}

func (c *RetitleCmd) Name() string      { return "retitle" }
func (c *RetitleCmd) Aliases() []string { return nil }
func (c *RetitleCmd) Synopsis() string  { return "Rename a task" }
func (c *RetitleCmd) Usage() string     { return "devbase retitle <task> <title...>" }
func (c *RetitleCmd) NeedsAuth() bool   { return true }

func (c *RetitleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RetitleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task reference and title required")
		return exitcode.UserError
	}
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	task, err := resolveTaskRef(ctx, svc, args[0])
	if err != nil {
		return reportTaskRefError(errOut, err)
	}

	if _, err := svc.UpdateTask(ctx, task.ID, service.UpdateTask{Title: &title}); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
