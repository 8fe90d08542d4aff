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
	Register(&TasksCmd{})
}

// TasksCmd lists tasks, optionally filtered by project and status.
type TasksCmd struct {
	projectID string
	status    string
}

func (c *TasksCmd) Name() string      { return "tasks" }
func (c *TasksCmd) Aliases() []string { return nil }
func (c *TasksCmd) Synopsis() string  { return "List tasks" }
func (c *TasksCmd) Usage() string {
	return "devbase tasks [--project <id>] [--status <todo|doing|done>]"
}
func (c *TasksCmd) NeedsAuth() bool { return true }

func (c *TasksCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.projectID, "project", "", "")
	fs.StringVar(&c.projectID, "p", "", "")
	fs.StringVar(&c.status, "status", "", "")
}

func (c *TasksCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	query := service.TaskQuery{ProjectID: c.projectID}
	if c.status != "" {
		status, ok := service.ParseStatus(normalizeStatusInput(c.status))
		if !ok {
			fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status)
			return exitcode.UserError
		}
		query.Status = status
	}

	tasks, err := svc.ListTasks(ctx, query)
	if err != nil {
		return reportError(errOut, err)
	}

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	r := newRenderer(cfg)
	defer r.Close()
	for i, t := range tasks {
		r.TaskRow(out, i+1, t)
	}
	return exitcode.Success
}
