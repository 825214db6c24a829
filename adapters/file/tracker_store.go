package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"projectpulse/internal/errors"
	"projectpulse/models"
	"projectpulse/ports"
)

// storedTask mirrors the on-disk task shape. ID is optional so files written
// by the original tracker (name/status only) still load; missing IDs are
// assigned on read.
type storedTask struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type storedProject struct {
	ID        string       `json:"id,omitempty"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at,omitempty"`
	Tasks     []storedTask `json:"tasks"`
}

// TrackerStore persists the tracker as a single JSON file keyed by project
// name, the same layout the original tracker used. Every write overwrites
// the whole file atomically.
type TrackerStore struct {
	path string

	mu   sync.Mutex
	data map[string]*storedProject
}

var _ ports.TrackerRepository = (*TrackerStore)(nil)

// NewTrackerStore opens (or lazily creates) the store at the given path.
// A missing or empty file yields an empty tracker, not an error.
func NewTrackerStore(path string) (*TrackerStore, error) {
	s := &TrackerStore{path: path, data: make(map[string]*storedProject)}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *TrackerStore) load() error {
	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to read tracker file")
	}
	if len(content) == 0 {
		return nil
	}
	if err := json.Unmarshal(content, &s.data); err != nil {
		return errors.Wrap(err, "failed to parse tracker file")
	}
	return nil
}

// save writes the whole dataset to a temp file and renames it into place.
func (s *TrackerStore) save() error {
	content, err := json.MarshalIndent(s.data, "", "    ")
	if err != nil {
		return errors.Wrap(err, "failed to encode tracker data")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tracker-*.json")
	if err != nil {
		return errors.Wrap(err, "failed to create temp tracker file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to write tracker file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to close tracker file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to replace tracker file")
	}
	return nil
}

func (s *TrackerStore) toModel(name string, sp *storedProject) models.Project {
	p := models.Project{
		Name:      name,
		Notes:     sp.Notes,
		CreatedAt: sp.CreatedAt,
		Tasks:     make([]models.Task, 0, len(sp.Tasks)),
	}
	if id, err := uuid.Parse(sp.ID); err == nil {
		p.ID = id
	}
	for _, st := range sp.Tasks {
		t := models.Task{Name: st.Name, Status: st.Status}
		if id, err := uuid.Parse(st.ID); err == nil {
			t.ID = id
		}
		p.Tasks = append(p.Tasks, t)
	}
	return p
}

// ListProjects returns every project sorted by name for deterministic output.
func (s *TrackerStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)

	projects := make([]models.Project, 0, len(names))
	for _, name := range names {
		projects = append(projects, s.toModel(name, s.data[name]))
	}
	return projects, nil
}

// GetProject returns the named project or NOT_FOUND.
func (s *TrackerStore) GetProject(ctx context.Context, name string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.data[name]
	if !ok {
		return nil, errors.NotFound("project")
	}
	p := s.toModel(name, sp)
	return &p, nil
}

// CreateProject adds a new project; duplicate names are rejected.
func (s *TrackerStore) CreateProject(ctx context.Context, project models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[project.Name]; ok {
		return errors.Duplicate("project")
	}
	s.data[project.Name] = &storedProject{
		ID:        project.ID.String(),
		Notes:     project.Notes,
		CreatedAt: project.CreatedAt,
		Tasks:     []storedTask{},
	}
	return s.save()
}

// UpdateProjectNotes replaces the notes of the named project.
func (s *TrackerStore) UpdateProjectNotes(ctx context.Context, name, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.data[name]
	if !ok {
		return errors.NotFound("project")
	}
	sp.Notes = notes
	return s.save()
}

// AddTask appends a task to the named project.
func (s *TrackerStore) AddTask(ctx context.Context, projectName string, task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.data[projectName]
	if !ok {
		return errors.NotFound("project")
	}
	sp.Tasks = append(sp.Tasks, storedTask{
		ID:     task.ID.String(),
		Name:   task.Name,
		Status: task.Status,
	})
	return s.save()
}

// UpdateTaskStatus sets the status of the task with the given ID.
func (s *TrackerStore) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := taskID.String()
	for _, sp := range s.data {
		for i := range sp.Tasks {
			if sp.Tasks[i].ID == id {
				sp.Tasks[i].Status = status
				return s.save()
			}
		}
	}
	return errors.NotFound("task")
}
