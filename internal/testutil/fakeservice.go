// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"devbase/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	projects []service.Project
	tasks    []service.Task

	// Error injection for testing
	ListProjectsErr  error
	CreateProjectErr error
	GetProjectErr    error
	UpdateProjectErr error
	DeleteProjectErr error
	ListTasksErr     error
	GetTaskErr       error
	CreateTaskErr    error
	UpdateTaskErr    error
	DeleteTaskErr    error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddProject seeds a project and returns it.
func (f *FakeService) AddProject(id, name string) service.Project {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	p := service.Project{ID: id, Name: name, OwnerID: "owner-1"}
	f.projects = append(f.projects, p)
	return p
}

// AddTask seeds a task and returns it.
func (f *FakeService) AddTask(id, projectID, title string, status service.Status) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	if status == "" {
		status = service.StatusTodo
	}
	t := service.Task{ID: id, Title: title, Status: status, ProjectID: projectID, UserID: "user-1"}
	f.tasks = append(f.tasks, t)
	return t
}

// ListProjects implements service.Service.
func (f *FakeService) ListProjects(ctx context.Context, q service.ProjectQuery) (service.ProjectPage, error) {
	if f.ListProjectsErr != nil {
		return service.ProjectPage{}, f.ListProjectsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	page := q.Page
	if page == 0 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize == 0 {
		pageSize = 10
	}

	items := make([]service.Project, len(f.projects))
	copy(items, f.projects)

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start >= len(items) {
		items = nil
	} else {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		items = items[start:end]
	}

	return service.ProjectPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// CreateProject implements service.Service.
func (f *FakeService) CreateProject(ctx context.Context, name string) (service.Project, error) {
	if f.CreateProjectErr != nil {
		return service.Project{}, f.CreateProjectErr
	}
	return f.AddProject("", name), nil
}

// GetProject implements service.Service.
func (f *FakeService) GetProject(ctx context.Context, id string) (service.Project, error) {
	if f.GetProjectErr != nil {
		return service.Project{}, f.GetProjectErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return service.Project{}, ErrNotFound
}

// UpdateProject implements service.Service.
func (f *FakeService) UpdateProject(ctx context.Context, id string, in service.UpdateProject) (service.Project, error) {
	if f.UpdateProjectErr != nil {
		return service.Project{}, f.UpdateProjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID == id {
			if in.Name != nil {
				f.projects[i].Name = *in.Name
			}
			return f.projects[i], nil
		}
	}
	return service.Project{}, ErrNotFound
}

// DeleteProject implements service.Service.
func (f *FakeService) DeleteProject(ctx context.Context, id string) error {
	if f.DeleteProjectErr != nil {
		return f.DeleteProjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, q service.TaskQuery) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var result []service.Task
	for _, t := range f.tasks {
		if q.ProjectID != "" && t.ProjectID != q.ProjectID {
			continue
		}
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (service.Task, error) {
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, ErrNotFound
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.CreateTask) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	if in.ProjectID == "" {
		return service.Task{}, fmt.Errorf("projectId required")
	}
	status := in.Status
	if status == "" {
		status = service.StatusTodo
	}
	return f.AddTask("", in.ProjectID, in.Title, status), nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, in service.UpdateTask) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			if in.Title != nil {
				f.tasks[i].Title = *in.Title
			}
			if in.Status != nil {
				f.tasks[i].Status = *in.Status
			}
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Dashboard implements service.Service.
func (f *FakeService) Dashboard(ctx context.Context) (service.Dashboard, error) {
	tasks, err := f.ListTasks(ctx, service.TaskQuery{})
	if err != nil {
		return service.Dashboard{}, err
	}
	page, err := f.ListProjects(ctx, service.ProjectQuery{})
	if err != nil {
		return service.Dashboard{Tasks: tasks}, nil
	}
	projects := page.Items
	if projects == nil {
		projects = []service.Project{}
	}
	return service.Dashboard{Tasks: tasks, Projects: projects}, nil
}
