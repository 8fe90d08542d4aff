package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"devbase/internal/config"
	"devbase/internal/event"
	"devbase/internal/exitcode"
	"devbase/internal/prefs"
	"devbase/internal/service"
	"devbase/internal/session"
	"devbase/internal/theme"
)

func init() {
	Register(&SettingsCmd{})
}

// SettingsCmd shows the app settings or sets a local notification
// preference. The preferences never leave the machine.
type SettingsCmd struct{}

func (c *SettingsCmd) Name() string      { return "settings" }
func (c *SettingsCmd) Aliases() []string { return nil }
func (c *SettingsCmd) Synopsis() string  { return "Show or change local settings" }
func (c *SettingsCmd) Usage() string {
	return "devbase settings [show | set <email-notifications|task-reminders> <on|off>]"
}
func (c *SettingsCmd) NeedsAuth() bool { return false }

func (c *SettingsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SettingsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store := prefs.NewStore(cfg.PrefsPath())

	if len(args) == 0 || (len(args) == 1 && args[0] == "show") {
		c.show(cfg, store, out)
		return exitcode.Success
	}

	if len(args) != 3 || args[0] != "set" {
		fmt.Fprintf(errOut, "error: usage: %s\n", c.Usage())
		return exitcode.UserError
	}

	var on bool
	switch args[2] {
	case "on":
		on = true
	case "off":
		on = false
	default:
		fmt.Fprintf(errOut, "error: invalid value: %s (want on or off)\n", args[2])
		return exitcode.UserError
	}

	if err := store.Set(args[1], on); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func (c *SettingsCmd) show(cfg *config.Config, store *prefs.Store, out io.Writer) {
	sessionState := "not logged in"
	if session.NewStore(cfg.Dir).Token() != "" {
		sessionState = "authenticated"
	}

	p := store.Load()
	fmt.Fprintf(out, "api base url:        %s\n", cfg.BaseURL)
	fmt.Fprintf(out, "session:             %s\n", sessionState)
	fmt.Fprintf(out, "theme:               %s\n", theme.NewStore(cfg.ThemePath(), event.Default).Resolve())
	fmt.Fprintf(out, "email-notifications: %s\n", onOff(p.EmailNotifications))
	fmt.Fprintf(out, "task-reminders:      %s\n", onOff(p.TaskReminders))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
