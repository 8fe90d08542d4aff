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
	Register(&ProjectsCmd{})
}

// ProjectsCmd lists projects with pagination, search, and sorting.
type ProjectsCmd struct {
	page     int
	pageSize int
	search   string
	sortBy   string
	order    string
}

func (c *ProjectsCmd) Name() string      { return "projects" }
func (c *ProjectsCmd) Aliases() []string { return nil }
func (c *ProjectsCmd) Synopsis() string  { return "List projects" }
func (c *ProjectsCmd) Usage() string {
	return "devbase projects [--page <n>] [--page-size <n>] [--search <text>] [--sort <field>] [--order <asc|desc>]"
}
func (c *ProjectsCmd) NeedsAuth() bool { return true }

func (c *ProjectsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", 0, "")
	fs.IntVar(&c.pageSize, "page-size", 0, "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.sortBy, "sort", "", "")
	fs.StringVar(&c.order, "order", "", "")
}

func (c *ProjectsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.page < 0 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}
	if c.order != "" && c.order != "asc" && c.order != "desc" {
		fmt.Fprintf(errOut, "error: invalid sort order: %s\n", c.order)
		return exitcode.UserError
	}

	page, err := svc.ListProjects(ctx, service.ProjectQuery{
		Page:      c.page,
		PageSize:  c.pageSize,
		Search:    c.search,
		SortBy:    c.sortBy,
		SortOrder: c.order,
	})
	if err != nil {
		return reportError(errOut, err)
	}

	if len(page.Items) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no projects found")
		}
		return exitcode.Success
	}

	r := newRenderer(cfg)
	defer r.Close()
	for _, p := range page.Items {
		r.ProjectRow(out, p)
	}
	r.ProjectPageFooter(out, page)
	return exitcode.Success
}
