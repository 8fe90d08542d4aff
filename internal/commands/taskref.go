package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"devbase/internal/exitcode"
	"devbase/internal/service"
)

// taskRefError marks a reference the user can correct, as opposed to a
// backend failure.
type taskRefError struct {
	msg string
}

func (e *taskRefError) Error() string { return e.msg }

func badRef(format string, args ...any) error {
	return &taskRefError{msg: fmt.Sprintf(format, args...)}
}

// resolveTaskRef resolves a user-supplied task reference onto a task. In
// order of precedence a reference is:
//  1. a row number from the task listing (all digits, 1-based)
//  2. an exact task id
//  3. a case-insensitive title prefix, if it matches exactly one task
//
// Resolution works against a fresh unfiltered listing, so row numbers match
// what the tasks view last printed. A numeric reference is always read as a
// row number, never as an id.
func resolveTaskRef(ctx context.Context, svc service.Service, ref string) (service.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return service.Task{}, badRef("task reference required")
	}

	tasks, err := svc.ListTasks(ctx, service.TaskQuery{})
	if err != nil {
		return service.Task{}, err
	}

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil || num < 1 {
			return service.Task{}, badRef("invalid task reference: %s", ref)
		}
		if num > len(tasks) {
			return service.Task{}, badRef("task number out of range: %d", num)
		}
		return tasks[num-1], nil
	}

	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}

	prefix := strings.ToLower(ref)
	var matches []service.Task
	for _, t := range tasks {
		if strings.HasPrefix(strings.ToLower(t.Title), prefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return service.Task{}, badRef("no task matches: %s", ref)
	default:
		return service.Task{}, badRef("ambiguous task reference: %q matches %d tasks", ref, len(matches))
	}
}

// reportTaskRefError maps a resolution failure onto an exit code: reference
// problems are the user's, everything else is the backend's.
func reportTaskRefError(errOut io.Writer, err error) int {
	var refErr *taskRefError
	if errors.As(err, &refErr) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return reportError(errOut, err)
}

// isAllDigits reports whether s is non-empty and consists only of digits.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
