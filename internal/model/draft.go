package model

import "time"

// TaskDraft is a locally saved, not yet submitted task form. Drafts
// never leave the machine until the user submits them through the
// task service.
type TaskDraft struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	Visibility  string    `db:"visibility"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
