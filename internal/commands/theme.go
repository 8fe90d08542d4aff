package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"devbase/internal/config"
	"devbase/internal/event"
	"devbase/internal/exitcode"
	"devbase/internal/service"
	"devbase/internal/theme"
)

func init() {
	Register(&ThemeCmd{})
}

// ThemeCmd shows or changes the appearance preference.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Show or set the theme" }
func (c *ThemeCmd) Usage() string     { return "devbase theme [dark|light|toggle]" }
func (c *ThemeCmd) NeedsAuth() bool   { return false }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store := theme.NewStore(cfg.ThemePath(), event.Default)

	if len(args) == 0 {
		fmt.Fprintln(out, store.Resolve())
		return exitcode.Success
	}
	if len(args) > 1 {
		fmt.Fprintln(errOut, "error: expected one of: dark, light, toggle")
		return exitcode.UserError
	}

	var next theme.Preference
	switch args[0] {
	case "toggle":
		next = theme.Toggle(store.Resolve())
	case string(theme.Dark), string(theme.Light):
		next = theme.Preference(args[0])
	default:
		fmt.Fprintf(errOut, "error: invalid theme: %s\n", args[0])
		return exitcode.UserError
	}

	if err := store.Set(next); err != nil {
		fmt.Fprintf(errOut, "error: failed to save theme: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, next)
	}
	return exitcode.Success
}
