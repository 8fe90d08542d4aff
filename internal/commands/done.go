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
	Register(&DoneCmd{})
	Register(&StatusCmd{})
}

// DoneCmd marks a task done.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task done" }
func (c *DoneCmd) Usage() string     { return "devbase done <task>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}

	task, err := resolveTaskRef(ctx, svc, args[0])
	if err != nil {
		return reportTaskRefError(errOut, err)
	}

	status := service.StatusDone
	if _, err := svc.UpdateTask(ctx, task.ID, service.UpdateTask{Status: &status}); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// StatusCmd sets a task's status to any of the three values.
type StatusCmd struct{}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return nil }
func (c *StatusCmd) Synopsis() string  { return "Set a task's status" }
func (c *StatusCmd) Usage() string     { return "devbase status <task> <todo|doing|done>" }
func (c *StatusCmd) NeedsAuth() bool   { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: task reference and status required")
		return exitcode.UserError
	}

	status, ok := service.ParseStatus(normalizeStatusInput(args[1]))
	if !ok {
		fmt.Fprintf(errOut, "error: invalid status: %s\n", args[1])
		return exitcode.UserError
	}

	task, err := resolveTaskRef(ctx, svc, args[0])
	if err != nil {
		return reportTaskRefError(errOut, err)
	}

	if _, err := svc.UpdateTask(ctx, task.ID, service.UpdateTask{Status: &status}); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
