package models

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses. The original tracker accepted free-form statuses typed by
// the user, so these are conventions rather than an enum; anything non-empty
// is stored as-is.
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Task is one unit of work inside a project.
type Task struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Project groups tasks under a unique name. Notes hold free-form markdown
// rendered on the tracker page.
type Project struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Notes     string    `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Tasks     []Task    `json:"tasks"`
}

// NewProject creates a project with a fresh ID.
func NewProject(name string) Project {
	return Project{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Tasks:     []Task{},
	}
}

// NewTask creates a task with a fresh ID and the default status.
func NewTask(name string) Task {
	now := time.Now().UTC()
	return Task{
		ID:        uuid.New(),
		Name:      name,
		Status:    StatusNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
