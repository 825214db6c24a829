package ports

import (
	"context"

	"github.com/google/uuid"

	"projectpulse/models"
)

// TrackerRepository persists projects and their tasks. Implementations:
// JSON flat file (original behavior) and PostgreSQL.
type TrackerRepository interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, name string) (*models.Project, error)
	CreateProject(ctx context.Context, project models.Project) error
	UpdateProjectNotes(ctx context.Context, name, notes string) error

	AddTask(ctx context.Context, projectName string, task models.Task) error
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status string) error
}
