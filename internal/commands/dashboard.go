package commands

import (
	"context"
	"flag"
	"io"

	"devbase/internal/config"
	"devbase/internal/exitcode"
	"devbase/internal/service"
)

func init() {
	Register(&DashboardCmd{})
}

// DashboardCmd prints the summary view: project and task counts, completion
// percentage, and the most recent tasks. Running devbase with no arguments
// dispatches here.
type DashboardCmd struct{}

func (c *DashboardCmd) Name() string      { return "dashboard" }
func (c *DashboardCmd) Aliases() []string { return nil }
func (c *DashboardCmd) Synopsis() string  { return "Show the dashboard summary" }
func (c *DashboardCmd) Usage() string     { return "devbase dashboard [common flags]" }
func (c *DashboardCmd) NeedsAuth() bool   { return true }

func (c *DashboardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DashboardCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	dash, err := svc.Dashboard(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	r := newRenderer(cfg)
	defer r.Close()
	r.DashboardSummary(out, dash)
	return exitcode.Success
}
