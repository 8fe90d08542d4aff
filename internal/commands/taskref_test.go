package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"devbase/internal/exitcode"
	"devbase/internal/service"
	"devbase/internal/testutil"
)

func seedRefTasks(t *testing.T) *testutil.FakeService {
	t.Helper()
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "p1", "Write release notes", service.StatusTodo)
	svc.AddTask("t2", "p1", "Write deploy script", service.StatusDoing)
	svc.AddTask("t3", "p2", "Fix login redirect", service.StatusTodo)
	return svc
}

func TestResolveTaskRef_RowNumber(t *testing.T) {
	svc := seedRefTasks(t)

	// Row numbers follow listing order, 1-based, same as the tasks view.
	task, err := resolveTaskRef(context.Background(), svc, "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "t2" {
		t.Errorf("resolved %q, want t2", task.ID)
	}
}

func TestResolveTaskRef_RowNumberOutOfRange(t *testing.T) {
	svc := seedRefTasks(t)

	_, err := resolveTaskRef(context.Background(), svc, "9")
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), "task number out of range: 9"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestResolveTaskRef_ZeroRowNumber(t *testing.T) {
	svc := seedRefTasks(t)

	_, err := resolveTaskRef(context.Background(), svc, "0")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid task reference: 0") {
		t.Errorf("error = %q", err)
	}
}

func TestResolveTaskRef_ExactIDWinsOverPrefix(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "p1", "untouched", service.StatusTodo)
	// A title that starts with another task's id must not shadow it.
	svc.AddTask("t2", "p1", "t1 cleanup", service.StatusTodo)

	task, err := resolveTaskRef(context.Background(), svc, "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "t1" {
		t.Errorf("resolved %q, want t1", task.ID)
	}
}

func TestResolveTaskRef_TitlePrefix(t *testing.T) {
	svc := seedRefTasks(t)

	task, err := resolveTaskRef(context.Background(), svc, "fix log")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "t3" {
		t.Errorf("resolved %q, want t3", task.ID)
	}
}

func TestResolveTaskRef_AmbiguousPrefix(t *testing.T) {
	svc := seedRefTasks(t)

	_, err := resolveTaskRef(context.Background(), svc, "write")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "ambiguous task reference") {
		t.Errorf("error = %q", err)
	}
	if !strings.Contains(err.Error(), "2 tasks") {
		t.Errorf("error = %q, want match count", err)
	}
}

func TestResolveTaskRef_NoMatch(t *testing.T) {
	svc := seedRefTasks(t)

	_, err := resolveTaskRef(context.Background(), svc, "nonesuch")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no task matches: nonesuch") {
		t.Errorf("error = %q", err)
	}
}

func TestResolveTaskRef_BackendFailurePassesThrough(t *testing.T) {
	svc := testutil.NewFakeService()
	backendErr := errors.New("listing failed")
	svc.ListTasksErr = backendErr

	_, err := resolveTaskRef(context.Background(), svc, "1")
	if !errors.Is(err, backendErr) {
		t.Fatalf("error = %v, want the backend error unchanged", err)
	}

	var refErr *taskRefError
	if errors.As(err, &refErr) {
		t.Error("backend failure misclassified as a reference error")
	}
}

func TestDoneCmdByRowNumber(t *testing.T) {
	svc := seedRefTasks(t)

	code, _, _ := runCommand(t, &DoneCmd{}, svc, "3")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	task, _ := svc.GetTask(context.Background(), "t3")
	if task.Status != service.StatusDone {
		t.Errorf("status = %q, want DONE", task.Status)
	}
}

func TestStatusCmdByTitlePrefix(t *testing.T) {
	svc := seedRefTasks(t)

	code, _, errOut := runCommand(t, &StatusCmd{}, svc, "fix", "doing")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d, errOut = %q", code, errOut)
	}
	task, _ := svc.GetTask(context.Background(), "t3")
	if task.Status != service.StatusDoing {
		t.Errorf("status = %q, want DOING", task.Status)
	}
}

func TestRmCmdAmbiguousReference(t *testing.T) {
	svc := seedRefTasks(t)

	code, _, errOut := runCommand(t, &RmCmd{}, svc, "write")
	if code != exitcode.UserError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "ambiguous task reference") {
		t.Errorf("errOut = %q", errOut)
	}

	// Nothing was deleted.
	tasks, _ := svc.ListTasks(context.Background(), service.TaskQuery{})
	if len(tasks) != 3 {
		t.Errorf("tasks = %d, want 3", len(tasks))
	}
}

func TestRetitleCmdByRowNumber(t *testing.T) {
	svc := seedRefTasks(t)

	code, _, _ := runCommand(t, &RetitleCmd{}, svc, "1", "Publish", "release", "notes")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	task, _ := svc.GetTask(context.Background(), "t1")
	if task.Title != "Publish release notes" {
		t.Errorf("title = %q", task.Title)
	}
}
