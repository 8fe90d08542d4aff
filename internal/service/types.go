// Package service defines the backend-agnostic interface for project and
// task operations.
package service

// User is the authenticated account profile as returned by the backend.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// Project is a backend-owned entity. The server's copy is authoritative;
// the client never mutates this shape locally.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Status is the wire vocabulary for task state.
type Status string

const (
	StatusTodo  Status = "TODO"
	StatusDoing Status = "DOING"
	StatusDone  Status = "DONE"
)

// UIStatus is the display vocabulary for task state.
type UIStatus string

const (
	UITodo  UIStatus = "Todo"
	UIDoing UIStatus = "Doing"
	UIDone  UIStatus = "Done"
)

var wireToUI = map[Status]UIStatus{
	StatusTodo:  UITodo,
	StatusDoing: UIDoing,
	StatusDone:  UIDone,
}

var uiToWire = map[UIStatus]Status{
	UITodo:  StatusTodo,
	UIDoing: StatusDoing,
	UIDone:  StatusDone,
}

// UIStatusOf maps a wire status to its display form. The mapping is a total
// bijection over the three known statuses; ok is false for anything else.
func UIStatusOf(s Status) (UIStatus, bool) {
	ui, ok := wireToUI[s]
	return ui, ok
}

// WireStatusOf maps a display status back to the wire form.
func WireStatusOf(u UIStatus) (Status, bool) {
	s, ok := uiToWire[u]
	return s, ok
}

// DisplayStatus returns the display form of s, or the raw wire value when
// the backend sends a status this client does not know.
func DisplayStatus(s Status) string {
	if ui, ok := wireToUI[s]; ok {
		return string(ui)
	}
	return string(s)
}

// ParseStatus reads a user-supplied status in either vocabulary,
// case-insensitively handled by the caller. ok is false for unknown values.
func ParseStatus(v string) (Status, bool) {
	if s, ok := uiToWire[UIStatus(v)]; ok {
		return s, true
	}
	if _, ok := wireToUI[Status(v)]; ok {
		return Status(v), true
	}
	return "", false
}

// Task is a backend-owned entity.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    Status `json:"status"`
	ProjectID string `json:"projectId"`
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ProjectPage is one page of a project listing.
type ProjectPage struct {
	Items      []Project `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
}

// ProjectQuery carries the supported project listing parameters. Zero
// values are omitted from the request; the backend rejects unknown keys.
type ProjectQuery struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string // createdAt, updatedAt, name
	SortOrder string // asc, desc
}

// UpdateProject is a partial project update. Nil fields are not sent.
type UpdateProject struct {
	Name *string `json:"name,omitempty"`
}

// TaskQuery carries the supported task listing filters.
type TaskQuery struct {
	ProjectID string
	Status    Status
}

// CreateTask is the payload for task creation. Status is optional; the
// backend defaults it.
type CreateTask struct {
	Title     string `json:"title"`
	ProjectID string `json:"projectId"`
	Status    Status `json:"status,omitempty"`
}

// UpdateTask is a partial task update. Nil fields are not sent.
type UpdateTask struct {
	Title  *string `json:"title,omitempty"`
	Status *Status `json:"status,omitempty"`
}

// Dashboard is the aggregate the dashboard view renders. Projects is nil
// when the project fetch failed; tasks are still shown in that case.
type Dashboard struct {
	Tasks    []Task
	Projects []Project
}
