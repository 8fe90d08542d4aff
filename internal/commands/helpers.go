package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"devbase/internal/api"
	"devbase/internal/auth"
	"devbase/internal/config"
	"devbase/internal/event"
	"devbase/internal/exitcode"
	"devbase/internal/output"
	"devbase/internal/session"
	"devbase/internal/theme"
)

// reportError prints a backend failure and maps it to an exit code.
// Commands are the only layer that catches; the message is always shown,
// never swallowed.
func reportError(errOut io.Writer, err error) int {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) && reqErr.Unauthorized() {
		fmt.Fprintf(errOut, "error: %v (run: devbase login)\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.BackendError
}

// newAuthManager wires the auth session manager for commands that own the
// session lifecycle (login, register, logout). Other commands go through
// the injected service instead.
func newAuthManager(cfg *config.Config) *auth.Manager {
	sessions := session.NewStore(cfg.Dir)
	var debugW io.Writer
	if cfg.Debug {
		debugW = os.Stderr
	}
	client := api.New(cfg.BaseURL, sessions, api.WithDebug(debugW))
	return auth.NewManager(client, sessions, event.Default)
}

// newRenderer builds an output renderer for the resolved theme, kept in
// sync with theme changes until the caller closes it.
func newRenderer(cfg *config.Config) *output.Renderer {
	store := theme.NewStore(cfg.ThemePath(), event.Default)
	return output.NewRenderer(store.Resolve(), event.Default)
}

// normalizeStatusInput folds a user-supplied status onto the wire
// vocabulary so "todo", "Todo", and "TODO" all parse.
func normalizeStatusInput(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// readLine reads one trimmed line from r, for values not passed as flags.
func readLine(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}

// readSecret reads a secret from r without echo when r is a terminal. The
// newline the terminal swallows is reprinted on errOut so the next output
// starts on its own line. Pipes and test readers fall back to a plain line
// read.
func readSecret(r io.Reader, errOut io.Writer) string {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(errOut)
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(r)
}
