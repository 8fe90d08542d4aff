// Package service defines the backend-agnostic interface for project and
// task operations.
package service

import "context"

// Service defines the interface for backend operations. All API calls go
// through this interface; commands never build HTTP requests directly.
type Service interface {
	// ListProjects returns one page of projects. Zero Page/PageSize fall
	// back to the backend defaults (1/10).
	ListProjects(ctx context.Context, q ProjectQuery) (ProjectPage, error)

	// CreateProject creates a project with the given name.
	CreateProject(ctx context.Context, name string) (Project, error)

	// GetProject returns a single project by ID.
	GetProject(ctx context.Context, id string) (Project, error)

	// UpdateProject applies a partial update to a project.
	UpdateProject(ctx context.Context, id string, in UpdateProject) (Project, error)

	// DeleteProject deletes a project by ID.
	DeleteProject(ctx context.Context, id string) error

	// ListTasks returns tasks matching the filter, unpaginated.
	ListTasks(ctx context.Context, q TaskQuery) ([]Task, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, id string) (Task, error)

	// CreateTask creates a task.
	CreateTask(ctx context.Context, in CreateTask) (Task, error)

	// UpdateTask applies a partial update to a task.
	UpdateTask(ctx context.Context, id string, in UpdateTask) (Task, error)

	// DeleteTask deletes a task by ID.
	DeleteTask(ctx context.Context, id string) error

	// Dashboard fetches tasks plus the first page of projects. A project
	// fetch failure is tolerated: tasks are returned with nil Projects.
	Dashboard(ctx context.Context) (Dashboard, error)
}
