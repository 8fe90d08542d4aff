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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string

	// stdin for the password prompt; defaults to os.Stdin.
	stdin io.Reader
}

// SetStdin overrides the password input (for testing).
func (c *LoginCmd) SetStdin(r io.Reader) { c.stdin = r }

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate and store the session" }
func (c *LoginCmd) Usage() string     { return "devbase login --email <email> [--password <password>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
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
	user, err := mgr.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", user.Email)
	}
	return exitcode.Success
}
