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
	Register(&AddProjectCmd{})
	Register(&RenameProjectCmd{})
	Register(&RmProjectCmd{})
}

// AddProjectCmd creates a project.
type AddProjectCmd struct{}

func (c *AddProjectCmd) Name() string      { return "addproject" }
func (c *AddProjectCmd) Aliases() []string { return []string{"createproject"} }
func (c *AddProjectCmd) Synopsis() string  { return "Create a project" }
func (c *AddProjectCmd) Usage() string     { return "devbase addproject <name...>" }
func (c *AddProjectCmd) NeedsAuth() bool   { return true }

func (c *AddProjectCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddProjectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: project name required")
		return exitcode.UserError
	}

	project, err := svc.CreateProject(ctx, name)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created project %s\n", project.ID)
	}
	return exitcode.Success
}

// RenameProjectCmd updates a project's name.
type RenameProjectCmd struct{}

func (c *RenameProjectCmd) Name() string      { return "renameproject" }
func (c *RenameProjectCmd) Aliases() []string { return nil }
func (c *RenameProjectCmd) Synopsis() string  { return "Rename a project" }
func (c *RenameProjectCmd) Usage() string     { return "devbase renameproject <project-id> <name...>" }
func (c *RenameProjectCmd) NeedsAuth() bool   { return true }

func (c *RenameProjectCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RenameProjectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: project id and name required")
		return exitcode.UserError
	}
	id := args[0]
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: project name required")
		return exitcode.UserError
	}

	if _, err := svc.UpdateProject(ctx, id, service.UpdateProject{Name: &name}); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// RmProjectCmd deletes a project.
type RmProjectCmd struct{}

func (c *RmProjectCmd) Name() string      { return "rmproject" }
func (c *RmProjectCmd) Aliases() []string { return nil }
func (c *RmProjectCmd) Synopsis() string  { return "Delete a project" }
func (c *RmProjectCmd) Usage() string     { return "devbase rmproject <project-id>" }
func (c *RmProjectCmd) NeedsAuth() bool   { return true }

func (c *RmProjectCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmProjectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: project id required")
		return exitcode.UserError
	}

	if err := svc.DeleteProject(ctx, args[0]); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
