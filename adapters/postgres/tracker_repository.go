package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"projectpulse/internal/errors"
	"projectpulse/models"
	"projectpulse/ports"
)

// TrackerRepositoryImpl implements TrackerRepository for PostgreSQL
type TrackerRepositoryImpl struct {
	db *sqlx.DB
}

// NewTrackerRepository creates a new PostgreSQL tracker repository
func NewTrackerRepository(db *sqlx.DB) ports.TrackerRepository {
	return &TrackerRepositoryImpl{db: db}
}

// EnsureSchema creates the tracker tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id UUID PRIMARY KEY,
			project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			status TEXT NOT NULL,
			position INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id, position)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to create tracker schema")
		}
	}
	return nil
}

// ListProjects returns every project with its tasks, ordered by name.
func (r *TrackerRepositoryImpl) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.SelectContext(ctx, &projects, `
		SELECT id, name, notes, created_at
		FROM projects
		ORDER BY name
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}

	for i := range projects {
		tasks, err := r.loadTasks(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Tasks = tasks
	}
	return projects, nil
}

// GetProject returns the named project with its tasks.
func (r *TrackerRepositoryImpl) GetProject(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	err := r.db.GetContext(ctx, &project, `
		SELECT id, name, notes, created_at
		FROM projects
		WHERE name = $1
	`, name)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("project")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load project")
	}

	tasks, err := r.loadTasks(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	project.Tasks = tasks
	return &project, nil
}

// CreateProject inserts a new project; duplicate names are rejected.
func (r *TrackerRepositoryImpl) CreateProject(ctx context.Context, project models.Project) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM projects WHERE name = $1)`, project.Name); err != nil {
		return errors.Wrap(err, "failed to check project name")
	}
	if exists {
		return errors.Duplicate("project")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, notes, created_at)
		VALUES ($1, $2, $3, $4)
	`, project.ID, project.Name, project.Notes, project.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to create project")
	}
	return nil
}

// UpdateProjectNotes replaces the notes of the named project.
func (r *TrackerRepositoryImpl) UpdateProjectNotes(ctx context.Context, name, notes string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE projects SET notes = $2 WHERE name = $1
	`, name, notes)
	if err != nil {
		return errors.Wrap(err, "failed to update project notes")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("project")
	}
	return nil
}

// AddTask appends a task to the named project.
func (r *TrackerRepositoryImpl) AddTask(ctx context.Context, projectName string, task models.Task) error {
	var projectID uuid.UUID
	err := r.db.GetContext(ctx, &projectID, `SELECT id FROM projects WHERE name = $1`, projectName)
	if err == sql.ErrNoRows {
		return errors.NotFound("project")
	}
	if err != nil {
		return errors.Wrap(err, "failed to load project")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, project_id, name, status, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM tasks WHERE project_id = $2),
			$5, $6)
	`, task.ID, projectID, task.Name, task.Status, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to add task")
	}
	return nil
}

// UpdateTaskStatus sets the status of the task with the given ID.
func (r *TrackerRepositoryImpl) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1
	`, taskID, status)
	if err != nil {
		return errors.Wrap(err, "failed to update task status")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("task")
	}
	return nil
}

func (r *TrackerRepositoryImpl) loadTasks(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.SelectContext(ctx, &tasks, `
		SELECT id, name, status, created_at, updated_at
		FROM tasks
		WHERE project_id = $1
		ORDER BY position
	`, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load tasks")
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}
