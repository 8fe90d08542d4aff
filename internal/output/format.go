// Package output provides formatters for CLI output, styled for the active
// theme preference.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"devbase/internal/event"
	"devbase/internal/service"
	"devbase/internal/theme"
)

// RecentTaskCount is how many tasks the dashboard shows.
const RecentTaskCount = 6

// Renderer writes styled rows and summaries. It rebuilds its palette when a
// theme-changed broadcast arrives, so a theme switch takes effect without
// re-creating mounted writers.
type Renderer struct {
	styles      styles
	unsubscribe func()
}

type styles struct {
	header lipgloss.Style
	muted  lipgloss.Style
	todo   lipgloss.Style
	doing  lipgloss.Style
	done   lipgloss.Style
}

// NewRenderer creates a Renderer for the given preference, subscribed to
// theme changes on bus (nil for a fixed palette).
func NewRenderer(pref theme.Preference, bus *event.Bus) *Renderer {
	r := &Renderer{styles: newStyles(pref)}
	if bus != nil {
		r.unsubscribe = bus.Subscribe(event.ThemeChanged, func(payload string) {
			if theme.Valid(payload) {
				r.styles = newStyles(theme.Preference(payload))
			}
		})
	}
	return r
}

// Close detaches the Renderer from the bus. Callers that subscribed via
// NewRenderer must close, or handlers accumulate across renderers sharing
// a bus.
func (r *Renderer) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

// newStyles picks a palette for the preference. Values are paired light/dark
// so rows stay readable on both backgrounds.
func newStyles(pref theme.Preference) styles {
	pick := func(light, dark string) lipgloss.Color {
		if pref == theme.Light {
			return lipgloss.Color(light)
		}
		return lipgloss.Color(dark)
	}
	return styles{
		header: lipgloss.NewStyle().Bold(true),
		muted:  lipgloss.NewStyle().Foreground(pick("240", "245")),
		todo:   lipgloss.NewStyle().Foreground(pick("124", "203")),
		doing:  lipgloss.NewStyle().Foreground(pick("27", "75")),
		done:   lipgloss.NewStyle().Foreground(pick("28", "77")),
	}
}

// ProjectRow formats one project line: id, name.
func (r *Renderer) ProjectRow(w io.Writer, p service.Project) {
	fmt.Fprintf(w, "%s  %s\n", r.styles.muted.Render(p.ID), normalizeTitle(p.Name))
}

// ProjectPageFooter formats the pagination line of a project listing.
func (r *Renderer) ProjectPageFooter(w io.Writer, page service.ProjectPage) {
	fmt.Fprintln(w, r.styles.muted.Render(
		fmt.Sprintf("page %d/%d (%d total)", page.Page, page.TotalPages, page.Total)))
}

// TaskRow formats one task line: number, status tag, title, id.
// Format: "{N:>4}  [Status]  {TITLE}  (id)"
func (r *Renderer) TaskRow(w io.Writer, num int, t service.Task) {
	fmt.Fprintf(w, "%4d  %-7s  %s  %s\n",
		num,
		r.statusStyle(t.Status).Render("["+service.DisplayStatus(t.Status)+"]"),
		normalizeTitle(t.Title),
		r.styles.muted.Render("("+t.ID+")"))
}

// DashboardSummary formats the dashboard: counts, completion, and the most
// recently created tasks. A nil Projects slice means the project fetch
// failed and the count is shown as unavailable.
func (r *Renderer) DashboardSummary(w io.Writer, d service.Dashboard) {
	fmt.Fprintln(w, r.styles.header.Render("Dashboard"))

	if d.Projects == nil {
		fmt.Fprintln(w, "projects: unavailable")
	} else {
		fmt.Fprintf(w, "projects: %d\n", len(d.Projects))
	}

	done := 0
	for _, t := range d.Tasks {
		if t.Status == service.StatusDone {
			done++
		}
	}
	pct := 0
	if len(d.Tasks) > 0 {
		pct = done * 100 / len(d.Tasks)
	}
	fmt.Fprintf(w, "tasks: %d (%d done, %d%%)\n", len(d.Tasks), done, pct)

	recent := recentTasks(d.Tasks, RecentTaskCount)
	if len(recent) == 0 {
		fmt.Fprintln(w, r.styles.muted.Render("no tasks yet"))
		return
	}
	fmt.Fprintln(w, r.styles.header.Render("Recent tasks"))
	for i, t := range recent {
		r.TaskRow(w, i+1, t)
	}
}

func (r *Renderer) statusStyle(s service.Status) lipgloss.Style {
	switch s {
	case service.StatusDoing:
		return r.styles.doing
	case service.StatusDone:
		return r.styles.done
	default:
		return r.styles.todo
	}
}

// recentTasks returns up to n tasks, newest first. CreatedAt is an ISO
// timestamp, so lexical order is chronological order.
func recentTasks(tasks []service.Task, n int) []service.Task {
	sorted := make([]service.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
