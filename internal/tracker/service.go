package tracker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"projectpulse/internal/errors"
	"projectpulse/models"
	"projectpulse/ports"
)

// Service wraps the tracker repository with input validation. All
// validation failures come back as INVALID_INPUT so callers can show them
// to the user instead of crashing.
type Service struct {
	repo ports.TrackerRepository
}

// NewService creates a tracker service over the given repository.
func NewService(repo ports.TrackerRepository) *Service {
	return &Service{repo: repo}
}

// ListProjects returns every project with its tasks.
func (s *Service) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.repo.ListProjects(ctx)
}

// GetProject returns the named project.
func (s *Service) GetProject(ctx context.Context, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.InvalidInput("project name cannot be empty")
	}
	return s.repo.GetProject(ctx, name)
}

// AddProject creates a new project with the given name.
func (s *Service) AddProject(ctx context.Context, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.InvalidInput("project name cannot be empty")
	}

	project := models.NewProject(name)
	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateNotes replaces the markdown notes of the named project.
func (s *Service) UpdateNotes(ctx context.Context, name, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.InvalidInput("project name cannot be empty")
	}
	return s.repo.UpdateProjectNotes(ctx, name, notes)
}

// AddTask appends a task with the default status to the named project.
func (s *Service) AddTask(ctx context.Context, projectName, taskName string) (*models.Task, error) {
	projectName = strings.TrimSpace(projectName)
	if projectName == "" {
		return nil, errors.InvalidInput("project name cannot be empty")
	}
	taskName = strings.TrimSpace(taskName)
	if taskName == "" {
		return nil, errors.InvalidInput("task description cannot be empty")
	}

	task := models.NewTask(taskName)
	if err := s.repo.AddTask(ctx, projectName, task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskStatus sets a new status on the given task.
func (s *Service) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return errors.InvalidInput("status cannot be empty")
	}
	return s.repo.UpdateTaskStatus(ctx, taskID, status)
}
