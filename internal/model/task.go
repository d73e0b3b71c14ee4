package model

import "time"

// Status values accepted by the task API.
const (
	StatusTodo = "todo"
	StatusDone = "done"
)

// Visibility controls who can see a task: private tasks belong to their
// owner, global tasks are visible to everyone.
const (
	VisibilityPrivate = "private"
	VisibilityGlobal  = "global"
)

// Filter selects which tasks to list.
type Filter string

const (
	FilterAll  Filter = "all"
	FilterTodo Filter = "todo"
	FilterDone Filter = "done"
)

// Valid reports whether f is one of the known filter values.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterTodo, FilterDone:
		return true
	}
	return false
}

// User is the identity record returned by the auth endpoints.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// DisplayName returns the user's full name when set, falling back to
// the username.
func (u User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Task mirrors the task resource served by the API. ID and the
// timestamps are assigned server-side and are zero before creation.
type Task struct {
	ID            int64     `json:"id,omitempty"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	Status        string    `json:"status"`
	Visibility    string    `json:"visibility"`
	User          *User     `json:"user,omitempty"`
	OwnerUsername string    `json:"owner_username,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
	UpdatedAt     time.Time `json:"updated_at,omitzero"`
}

// Done reports whether the task has been completed.
func (t Task) Done() bool {
	return t.Status == StatusDone
}
