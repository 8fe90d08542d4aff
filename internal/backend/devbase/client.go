// Package devbase implements service.Service against the DevBase API using
// the request gateway.
package devbase

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"devbase/internal/api"
	"devbase/internal/service"
)

const (
	// DefaultPage is the first page of a project listing.
	DefaultPage = 1

	// DefaultPageSize matches the backend default.
	DefaultPageSize = 10
)

// Client implements service.Service. Stateless beyond request shaping;
// every failure is the gateway's normalized error, unmodified.
type Client struct {
	api *api.Client
}

// New creates a Client on top of the given gateway.
func New(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

type projectResponse struct {
	Project service.Project `json:"project"`
}

// ListProjects returns one page of projects.
func (c *Client) ListProjects(ctx context.Context, q service.ProjectQuery) (service.ProjectPage, error) {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}

	var page service.ProjectPage
	err := c.api.Do(ctx, http.MethodGet, "/api/projects"+encodeQuery(projectQuery(q)), api.Options{}, &page)
	return page, err
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, name string) (service.Project, error) {
	var resp projectResponse
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	err := c.api.Do(ctx, http.MethodPost, "/api/projects", api.Options{Body: body}, &resp)
	return resp.Project, err
}

// GetProject returns a project by ID.
func (c *Client) GetProject(ctx context.Context, id string) (service.Project, error) {
	var resp projectResponse
	err := c.api.Do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), api.Options{}, &resp)
	return resp.Project, err
}

// UpdateProject applies a partial update.
func (c *Client) UpdateProject(ctx context.Context, id string, in service.UpdateProject) (service.Project, error) {
	var resp projectResponse
	err := c.api.Do(ctx, http.MethodPatch, "/api/projects/"+url.PathEscape(id), api.Options{Body: in}, &resp)
	return resp.Project, err
}

// DeleteProject deletes a project. The backend acknowledges with {ok:true}.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	var ack struct {
		OK bool `json:"ok"`
	}
	return c.api.Do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), api.Options{}, &ack)
}

// ListTasks returns tasks matching the filter.
func (c *Client) ListTasks(ctx context.Context, q service.TaskQuery) ([]service.Task, error) {
	var tasks []service.Task
	err := c.api.Do(ctx, http.MethodGet, "/api/tasks"+encodeQuery(taskQuery(q)), api.Options{}, &tasks)
	return tasks, err
}

// GetTask returns a task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (service.Task, error) {
	var task service.Task
	err := c.api.Do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), api.Options{}, &task)
	return task, err
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, in service.CreateTask) (service.Task, error) {
	var task service.Task
	err := c.api.Do(ctx, http.MethodPost, "/api/tasks", api.Options{Body: in}, &task)
	return task, err
}

// UpdateTask applies a partial update.
func (c *Client) UpdateTask(ctx context.Context, id string, in service.UpdateTask) (service.Task, error) {
	var task service.Task
	err := c.api.Do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), api.Options{Body: in}, &task)
	return task, err
}

// DeleteTask deletes a task. The backend acknowledges with {deleted:true}.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	var ack struct {
		Deleted bool `json:"deleted"`
	}
	return c.api.Do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), api.Options{}, &ack)
}

// Dashboard fetches tasks, then the first page of projects. A project
// failure is tolerated so the dashboard can still show tasks.
func (c *Client) Dashboard(ctx context.Context) (service.Dashboard, error) {
	tasks, err := c.ListTasks(ctx, service.TaskQuery{})
	if err != nil {
		return service.Dashboard{}, err
	}

	page, err := c.ListProjects(ctx, service.ProjectQuery{Page: DefaultPage, PageSize: DefaultPageSize})
	if err != nil {
		return service.Dashboard{Tasks: tasks}, nil
	}
	return service.Dashboard{Tasks: tasks, Projects: page.Items}, nil
}

// projectQuery builds the project listing query from an explicit allow-list
// (page, pageSize, search, sortBy, sortOrder). Empty values are omitted and
// unknown keys are never forwarded; the backend rejects unrecognized
// fields.
func projectQuery(q service.ProjectQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		v.Set("search", search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	return v
}

// taskQuery builds the task listing query. Allow-list: projectId, status.
func taskQuery(q service.TaskQuery) url.Values {
	v := url.Values{}
	if id := strings.TrimSpace(q.ProjectID); id != "" {
		v.Set("projectId", id)
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	return v
}

func encodeQuery(v url.Values) string {
	if enc := v.Encode(); enc != "" {
		return "?" + enc
	}
	return ""
}
