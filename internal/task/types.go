package task

import "errors"

// ErrInvalidTaskID is returned for non-positive task IDs before any
// network call is made.
var ErrInvalidTaskID = errors.New("invalid task id")

// Draft holds the caller-supplied fields for creating a task.
type Draft struct {
	Title       string
	Description *string
	Status      string
	Visibility  string
}

// Patch is a partial task update. Nil fields are left untouched by the
// server; a present but empty description is sent as null.
type Patch struct {
	Title       *string
	Description *string
	Status      *string
	Visibility  *string
}
