package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"devbase/internal/config"
	"devbase/internal/exitcode"
	"devbase/internal/service"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command. A successful registration is
// an implicit login.
type RegisterCmd struct {
	email    string
	password string
	userName string

	stdin io.Reader
}

// SetStdin overrides the password input (for testing).
func (c *RegisterCmd) SetStdin(r io.Reader) { c.stdin = r }

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create an account and log in" }
func (c *RegisterCmd) Usage() string {
	return "devbase register --email <email> [--password <password>] [--name <name>]"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.userName, "name", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	email := strings.TrimSpace(c.email)
	if email == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	password := c.password
	if password == "" {
		fmt.Fprint(errOut, "password: ")
		stdin := c.stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		password = readSecret(stdin, errOut)
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	mgr := newAuthManager(cfg)
	user, err := mgr.Register(ctx, email, password, strings.TrimSpace(c.userName))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "registered and logged in as %s\n", user.Email)
	}
	return exitcode.Success
}
