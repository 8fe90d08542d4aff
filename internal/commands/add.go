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
	Register(&AddCmd{})
}

// AddCmd creates a task in a project.
type AddCmd struct {
	projectID string
	status    string
}

// SetProjectID sets the project filter (for testing).
func (c *AddCmd) SetProjectID(id string) { c.projectID = id }

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "devbase add --project <id> [--status <todo|doing|done>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.projectID, "project", "", "")
	fs.StringVar(&c.projectID, "p", "", "")
	fs.StringVar(&c.status, "status", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	if strings.TrimSpace(c.projectID) == "" {
		fmt.Fprintln(errOut, "error: project id required")
		return exitcode.UserError
	}

	in := service.CreateTask{Title: title, ProjectID: c.projectID}
	if c.status != "" {
		status, ok := service.ParseStatus(normalizeStatusInput(c.status))
		if !ok {
			fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status)
			return exitcode.UserError
		}
		in.Status = status
	}

	task, err := svc.CreateTask(ctx, in)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created task %s\n", task.ID)
	}
	return exitcode.Success
}
