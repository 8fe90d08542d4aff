package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"devbase/internal/api"
	"devbase/internal/config"
	"devbase/internal/exitcode"
	"devbase/internal/service"
	"devbase/internal/session"
	"devbase/internal/testutil"
)

func TestMain(m *testing.M) {
	// Force unstyled output so assertions see plain text regardless of the
	// terminal running the tests.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// runCommand parses args through the command's flags and executes it,
// the way the dispatcher would.
func runCommand(t *testing.T, cmd Command, svc service.Service, args ...string) (int, string, string) {
	t.Helper()
	cfg := &config.Config{Dir: t.TempDir(), BaseURL: "http://localhost:4000"}
	return runCommandWithConfig(t, cmd, cfg, svc, args...)
}

func runCommandWithConfig(t *testing.T, cmd Command, cfg *config.Config, svc service.Service, args ...string) (int, string, string) {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("flag parse: %v", err)
	}

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), cfg, svc, fs.Args(), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestProjectsCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddProject("p1", "Infra")
	svc.AddProject("p2", "Docs")

	code, out, _ := runCommand(t, &ProjectsCmd{}, svc)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d, want %d", code, exitcode.Success)
	}
	if !strings.Contains(out, "Infra") || !strings.Contains(out, "Docs") {
		t.Errorf("output missing project names:\n%s", out)
	}
	if !strings.Contains(out, "page 1/1 (2 total)") {
		t.Errorf("output missing pagination footer:\n%s", out)
	}
}

func TestProjectsCmdEmpty(t *testing.T) {
	code, out, _ := runCommand(t, &ProjectsCmd{}, testutil.NewFakeService())
	if code != exitcode.Success {
		t.Fatalf("exit code = %d, want %d", code, exitcode.Success)
	}
	if !strings.Contains(out, "no projects found") {
		t.Errorf("output = %q, want empty-list notice", out)
	}
}

func TestProjectsCmdRejectsBadOrder(t *testing.T) {
	code, _, errOut := runCommand(t, &ProjectsCmd{}, testutil.NewFakeService(), "--order", "sideways")
	if code != exitcode.UserError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "invalid sort order") {
		t.Errorf("errOut = %q", errOut)
	}
}

func TestProjectsCmdUnauthorizedMapsToAuthError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListProjectsErr = &api.RequestError{Status: http.StatusUnauthorized, Message: "Unauthorized"}

	code, _, errOut := runCommand(t, &ProjectsCmd{}, svc)
	if code != exitcode.AuthError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.AuthError)
	}
	if !strings.Contains(errOut, "run: devbase login") {
		t.Errorf("errOut = %q, want login hint", errOut)
	}
}

func TestProjectsCmdBackendFailureMapsToBackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListProjectsErr = &api.RequestError{Status: http.StatusInternalServerError, Message: "boom"}

	code, _, errOut := runCommand(t, &ProjectsCmd{}, svc)
	if code != exitcode.BackendError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.BackendError)
	}
	if !strings.Contains(errOut, "boom") {
		t.Errorf("errOut = %q", errOut)
	}
}

func TestAddProjectCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	code, out, _ := runCommand(t, &AddProjectCmd{}, svc, "New", "Project")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "created project ") {
		t.Errorf("out = %q", out)
	}

	page, _ := svc.ListProjects(context.Background(), service.ProjectQuery{})
	if len(page.Items) != 1 || page.Items[0].Name != "New Project" {
		t.Errorf("projects = %+v", page.Items)
	}
}

func TestAddProjectCmdRequiresName(t *testing.T) {
	code, _, errOut := runCommand(t, &AddProjectCmd{}, testutil.NewFakeService(), "   ")
	if code != exitcode.UserError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "project name required") {
		t.Errorf("errOut = %q", errOut)
	}
}

func TestRenameProjectCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddProject("p1", "Old")

	code, _, _ := runCommand(t, &RenameProjectCmd{}, svc, "p1", "New", "Name")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	p, _ := svc.GetProject(context.Background(), "p1")
	if p.Name != "New Name" {
		t.Errorf("name = %q, want %q", p.Name, "New Name")
	}
}

func TestRmProjectCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddProject("p1", "Doomed")

	code, out, _ := runCommand(t, &RmProjectCmd{}, svc, "p1")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("out = %q", out)
	}
	if _, err := svc.GetProject(context.Background(), "p1"); err == nil {
		t.Error("project still present after rm")
	}
}

func TestTasksCmdFilters(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "p1", "keep", service.StatusDoing)
	svc.AddTask("t2", "p1", "drop by status", service.StatusDone)
	svc.AddTask("t3", "p2", "drop by project", service.StatusDoing)

	code, out, _ := runCommand(t, &TasksCmd{}, svc, "--project", "p1", "--status", "doing")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "keep") {
		t.Errorf("out missing matching task:\n%s", out)
	}
	if strings.Contains(out, "drop by status") || strings.Contains(out, "drop by project") {
		t.Errorf("out contains filtered tasks:\n%s", out)
	}
	if !strings.Contains(out, "[Doing]") {
		t.Errorf("out missing display status:\n%s", out)
	}
}

func TestTasksCmdRejectsUnknownStatus(t *testing.T) {
	code, _, errOut := runCommand(t, &TasksCmd{}, testutil.NewFakeService(), "--status", "blocked")
	if code != exitcode.UserError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "invalid status") {
		t.Errorf("errOut = %q", errOut)
	}
}

func TestAddCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddProject("p1", "Infra")

	code, out, _ := runCommand(t, &AddCmd{}, svc, "--project", "p1", "Write", "the", "docs")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "created task ") {
		t.Errorf("out = %q", out)
	}

	tasks, _ := svc.ListTasks(context.Background(), service.TaskQuery{ProjectID: "p1"})
	if len(tasks) != 1 || tasks[0].Title != "Write the docs" {
		t.Errorf("tasks = %+v", tasks)
	}
	if tasks[0].Status != service.StatusTodo {
		t.Errorf("status = %q, want default TODO", tasks[0].Status)
	}
}

func TestAddCmdRequiresProject(t *testing.T) {
	code, _, errOut := runCommand(t, &AddCmd{}, testutil.NewFakeService(), "no", "project")
	if code != exitcode.UserError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "project id required") {
		t.Errorf("errOut = %q", errOut)
	}
}

func TestDoneCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "p1", "almost there", service.StatusDoing)

	code, _, _ := runCommand(t, &DoneCmd{}, svc, "t1")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	task, _ := svc.GetTask(context.Background(), "t1")
	if task.Status != service.StatusDone {
		t.Errorf("status = %q, want DONE", task.Status)
	}
}

func TestStatusCmdAcceptsBothVocabularies(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "p1", "x", service.StatusTodo)

	for _, input := range []string{"doing", "Doing", "DOING"} {
		code, _, errOut := runCommand(t, &StatusCmd{}, svc, "t1", input)
		if code != exitcode.Success {
			t.Fatalf("input %q: exit code = %d, errOut = %q", input, code, errOut)
		}
	}
	task, _ := svc.GetTask(context.Background(), "t1")
	if task.Status != service.StatusDoing {
		t.Errorf("status = %q, want DOING", task.Status)
	}
}

func TestRetitleCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "p1", "old title", service.StatusTodo)

	code, _, _ := runCommand(t, &RetitleCmd{}, svc, "t1", "new", "title")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	task, _ := svc.GetTask(context.Background(), "t1")
	if task.Title != "new title" {
		t.Errorf("title = %q", task.Title)
	}
}

func TestRmCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "p1", "doomed", service.StatusTodo)

	code, _, _ := runCommand(t, &RmCmd{}, svc, "t1")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if _, err := svc.GetTask(context.Background(), "t1"); err == nil {
		t.Error("task still present after rm")
	}
}

func TestDashboardCmd(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddProject("p1", "Infra")
	svc.AddTask("t1", "p1", "done one", service.StatusDone)
	svc.AddTask("t2", "p1", "open one", service.StatusTodo)

	code, out, _ := runCommand(t, &DashboardCmd{}, svc)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"Dashboard", "projects: 1", "tasks: 2 (1 done, 50%)", "Recent tasks"} {
		if !strings.Contains(out, want) {
			t.Errorf("out missing %q:\n%s", want, out)
		}
	}
}

func TestLoginCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"accessToken": "tok-1",
			"user":        service.User{ID: "u1", Email: "dev@example.com", Name: "Dev"},
		})
	}))
	defer srv.Close()

	cfg := &config.Config{Dir: t.TempDir(), BaseURL: srv.URL}
	code, out, _ := runCommandWithConfig(t, &LoginCmd{}, cfg, nil, "--email", "dev@example.com", "--password", "pw")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "logged in as dev@example.com") {
		t.Errorf("out = %q", out)
	}
	if got := session.NewStore(cfg.Dir).Token(); got != "tok-1" {
		t.Errorf("stored token = %q, want tok-1", got)
	}
}

func TestLoginCmdPromptsForPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "from-stdin" {
			t.Errorf("password = %q", creds["password"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"accessToken": "tok-1",
			"user":        service.User{ID: "u1", Email: "dev@example.com"},
		})
	}))
	defer srv.Close()

	cmd := &LoginCmd{}
	cmd.SetStdin(strings.NewReader("from-stdin\n"))
	cfg := &config.Config{Dir: t.TempDir(), BaseURL: srv.URL}
	code, _, errOut := runCommandWithConfig(t, cmd, cfg, nil, "--email", "dev@example.com")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d, errOut = %q", code, errOut)
	}
	if !strings.Contains(errOut, "password: ") {
		t.Errorf("errOut = %q, want prompt", errOut)
	}
}

func TestReadSecretFallsBackForNonTerminals(t *testing.T) {
	var errOut bytes.Buffer
	got := readSecret(strings.NewReader("  s3cret  \n"), &errOut)
	if got != "s3cret" {
		t.Errorf("readSecret = %q, want s3cret", got)
	}
	if errOut.String() != "" {
		t.Errorf("errOut = %q, want no extra newline on the fallback path", errOut.String())
	}
}

func TestLoginCmdBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer srv.Close()

	cfg := &config.Config{Dir: t.TempDir(), BaseURL: srv.URL}
	code, _, errOut := runCommandWithConfig(t, &LoginCmd{}, cfg, nil, "--email", "a@b.c", "--password", "wrong")
	if code != exitcode.AuthError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.AuthError)
	}
	if !strings.Contains(errOut, "Invalid credentials") {
		t.Errorf("errOut = %q", errOut)
	}
	if got := session.NewStore(cfg.Dir).Token(); got != "" {
		t.Errorf("token stored after failed login: %q", got)
	}
}

func TestRegisterCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["name"] != "Dev" {
			t.Errorf("name = %q", creds["name"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"accessToken": "tok-new",
			"user":        service.User{ID: "u2", Email: "new@example.com", Name: "Dev"},
		})
	}))
	defer srv.Close()

	cfg := &config.Config{Dir: t.TempDir(), BaseURL: srv.URL}
	code, out, _ := runCommandWithConfig(t, &RegisterCmd{}, cfg, nil,
		"--email", "new@example.com", "--password", "pw", "--name", "Dev")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "registered and logged in as new@example.com") {
		t.Errorf("out = %q", out)
	}
	if got := session.NewStore(cfg.Dir).Token(); got != "tok-new" {
		t.Errorf("stored token = %q, want tok-new", got)
	}
}

func TestLogoutCmd(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), BaseURL: "http://localhost:4000"}
	sessions := session.NewStore(cfg.Dir)
	if err := sessions.SetToken("tok"); err != nil {
		t.Fatal(err)
	}

	code, out, _ := runCommandWithConfig(t, &LogoutCmd{}, cfg, nil)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("out = %q", out)
	}
	if sessions.Token() != "" {
		t.Error("token survived logout")
	}

	// Second logout is a no-op, reported differently.
	code, out, _ = runCommandWithConfig(t, &LogoutCmd{}, cfg, nil)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "not logged in") {
		t.Errorf("out = %q", out)
	}
}

func TestWhoamiCmd(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), BaseURL: "http://localhost:4000"}

	code, out, _ := runCommandWithConfig(t, &WhoamiCmd{}, cfg, nil)
	if code != exitcode.Success || !strings.Contains(out, "not logged in") {
		t.Fatalf("code = %d, out = %q", code, out)
	}

	sessions := session.NewStore(cfg.Dir)
	if err := sessions.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	_, out, _ = runCommandWithConfig(t, &WhoamiCmd{}, cfg, nil)
	if !strings.Contains(out, "authenticated (no cached profile)") {
		t.Errorf("out = %q", out)
	}

	if err := sessions.SetUser(&service.User{Name: "Dev", Email: "dev@example.com"}); err != nil {
		t.Fatal(err)
	}
	_, out, _ = runCommandWithConfig(t, &WhoamiCmd{}, cfg, nil)
	if !strings.Contains(out, "Dev <dev@example.com>") {
		t.Errorf("out = %q", out)
	}
}

func TestThemeCmd(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), BaseURL: "http://localhost:4000"}

	code, out, _ := runCommandWithConfig(t, &ThemeCmd{}, cfg, nil, "light")
	if code != exitcode.Success || !strings.Contains(out, "light") {
		t.Fatalf("code = %d, out = %q", code, out)
	}

	_, out, _ = runCommandWithConfig(t, &ThemeCmd{}, cfg, nil)
	if strings.TrimSpace(out) != "light" {
		t.Errorf("show = %q, want light", out)
	}

	_, out, _ = runCommandWithConfig(t, &ThemeCmd{}, cfg, nil, "toggle")
	if !strings.Contains(out, "dark") {
		t.Errorf("toggle = %q, want dark", out)
	}

	code, _, errOut := runCommandWithConfig(t, &ThemeCmd{}, cfg, nil, "sepia")
	if code != exitcode.UserError || !strings.Contains(errOut, "invalid theme") {
		t.Errorf("code = %d, errOut = %q", code, errOut)
	}
}

func TestSettingsCmd(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), BaseURL: "http://localhost:4000"}

	code, out, _ := runCommandWithConfig(t, &SettingsCmd{}, cfg, nil)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"api base url", "session", "not logged in", "email-notifications: off"} {
		if !strings.Contains(out, want) {
			t.Errorf("out missing %q:\n%s", want, out)
		}
	}

	code, _, _ = runCommandWithConfig(t, &SettingsCmd{}, cfg, nil, "set", "email-notifications", "on")
	if code != exitcode.Success {
		t.Fatalf("set exit code = %d", code)
	}
	_, out, _ = runCommandWithConfig(t, &SettingsCmd{}, cfg, nil, "show")
	if !strings.Contains(out, "email-notifications: on") {
		t.Errorf("out = %q", out)
	}

	code, _, errOut := runCommandWithConfig(t, &SettingsCmd{}, cfg, nil, "set", "desktop", "on")
	if code != exitcode.UserError || !strings.Contains(errOut, "unknown preference") {
		t.Errorf("code = %d, errOut = %q", code, errOut)
	}
}

func TestVersionCmd(t *testing.T) {
	code, out, _ := runCommand(t, &VersionCmd{}, nil)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "devbase "+Version) {
		t.Errorf("out = %q", out)
	}
}

func TestHelpCmdCoversRegisteredCommands(t *testing.T) {
	code, out, _ := runCommand(t, &HelpCmd{}, nil)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	for _, cmd := range DefaultRegistry.All() {
		if !strings.Contains(out, cmd.Name()) {
			t.Errorf("help text missing command %q", cmd.Name())
		}
	}
	testutil.GoldenString(t, "help", out)
}

func TestQuietSuppressesConfirmations(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "p1", "x", service.StatusTodo)

	cfg := &config.Config{Dir: t.TempDir(), BaseURL: "http://localhost:4000", Quiet: true}
	code, out, _ := runCommandWithConfig(t, &DoneCmd{}, cfg, svc, "t1")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "" {
		t.Errorf("out = %q, want nothing in quiet mode", out)
	}
}
