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
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the current session state. A token with no cached
// profile still counts as authenticated.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show the current session" }
func (c *WhoamiCmd) Usage() string     { return "devbase whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	mgr := newAuthManager(cfg)
	if !mgr.IsAuthenticated() {
		fmt.Fprintln(out, "not logged in")
		return exitcode.Success
	}

	user := mgr.CurrentUser()
	if user == nil {
		fmt.Fprintln(out, "authenticated (no cached profile)")
		return exitcode.Success
	}

	fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
	return exitcode.Success
}
