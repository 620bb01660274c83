// Package store owns the canonical in-memory projects and tasks and mirrors
// every change into persistent storage.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/taskpilot/internal/events"
	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/persist"
)

// Storage keys of the two collections
const (
	ProjectsKey = "projects"
	TasksKey    = "tasks"
)

// Store holds the projects and tasks of one application session.
//
// Mutations serialize on a mutex and write through to the adapter before
// returning, so a subsequent read of the same key sees them. When the write
// fails the mutation stays applied in memory and a *persist.WriteError is
// returned.
type Store struct {
	mu       sync.RWMutex
	projects []models.Project
	tasks    []models.Task

	adapter   *persist.Adapter
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// Open loads both collections through adapter, seeding empty ones when
// absent.
func Open(ctx context.Context, adapter *persist.Adapter, opts ...Option) (*Store, error) {
	s := &Store{
		adapter: adapter,
		logger:  slog.Default(),
		now:     time.Now,
		newID:   defaultID,
	}
	for _, opt := range opts {
		opt(s)
	}

	projects, err := persist.Load(ctx, adapter, ProjectsKey, []models.Project{})
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	tasks, err := persist.Load(ctx, adapter, TasksKey, []models.Task{})
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	// a stored "null" decodes to a nil slice
	if projects == nil {
		projects = []models.Project{}
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	s.projects = projects
	s.tasks = tasks
	s.logger.Debug("store opened", "projects", len(projects), "tasks", len(tasks))
	return s, nil
}

// ============================================================================
// Reads
// ============================================================================

// Projects returns a snapshot of all projects in insertion order.
func (s *Store) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Tasks returns a snapshot of all tasks in insertion order.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

// Project returns the project with id.
func (s *Store) Project(id string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.projectIndex(id); i >= 0 {
		return s.projects[i], true
	}
	return models.Project{}, false
}

// Task returns the task with id.
func (s *Store) Task(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.taskIndex(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return models.Task{}, false
}

// TasksByProject returns the tasks of one project in insertion order.
func (s *Store) TasksByProject(projectID string) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Task{}
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, t.Clone())
		}
	}
	return out
}

// ============================================================================
// Projects
// ============================================================================

// AddProject creates a project. CreatedAt defaults to now.
func (s *Store) AddProject(ctx context.Context, in models.NewProject) (models.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Project{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	created := now
	if in.CreatedAt != nil {
		created = normalize(*in.CreatedAt)
	}
	updated := now
	if updated.Before(created) {
		updated = created
	}

	project := models.Project{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   created,
		UpdatedAt:   updated,
		OwnerID:     in.OwnerID,
	}
	s.projects = append(s.projects, project)

	s.logger.Info("project added", "project_id", project.ID, "name", project.Name)
	if err := s.saveProjects(ctx); err != nil {
		return project, err
	}
	s.publish(events.ProjectsChanged, project.ID)
	return project, nil
}

// UpdateProject merges patch into the project with id. An unknown id is
// ignored.
func (s *Store) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(id)
	if i < 0 {
		s.logger.Debug("update of unknown project ignored", "project_id", id)
		return nil
	}

	updated := patch.Apply(s.projects[i])
	updated.UpdatedAt = s.advance(updated.UpdatedAt)
	s.projects[i] = updated

	if err := s.saveProjects(ctx); err != nil {
		return err
	}
	s.publish(events.ProjectsChanged, id)
	return nil
}

// DeleteProject removes the project with id together with its tasks. Both
// collections change under the same lock before either is written, so no
// reader sees the project gone while its tasks remain. An unknown id is
// ignored.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(id)
	if i < 0 {
		s.logger.Debug("delete of unknown project ignored", "project_id", id)
		return nil
	}

	projects := make([]models.Project, 0, len(s.projects)-1)
	projects = append(projects, s.projects[:i]...)
	projects = append(projects, s.projects[i+1:]...)

	tasks := make([]models.Task, 0, len(s.tasks))
	removed := 0
	for _, t := range s.tasks {
		if t.ProjectID == id {
			removed++
			continue
		}
		tasks = append(tasks, t)
	}

	s.projects = projects
	s.tasks = tasks
	s.logger.Info("project deleted", "project_id", id, "tasks_removed", removed)

	// both writes are attempted; the first failure is reported
	projErr := s.saveProjects(ctx)
	var taskErr error
	if removed > 0 {
		taskErr = s.saveTasks(ctx)
	}

	if projErr == nil {
		s.publish(events.ProjectsChanged, id)
	}
	if removed > 0 && taskErr == nil {
		s.publish(events.TasksChanged, "")
	}
	if projErr != nil {
		return projErr
	}
	return taskErr
}

// ============================================================================
// Tasks
// ============================================================================

// AddTask creates a task. Status and priority must be valid values; the
// referenced project must exist.
func (s *Store) AddTask(ctx context.Context, in models.NewTask) (models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Task{}, ErrEmptyTitle
	}

	status := in.Status
	if !status.Valid() {
		return models.Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	priority := in.Priority
	if !priority.Valid() {
		return models.Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectIndex(in.ProjectID) < 0 {
		return models.Task{}, fmt.Errorf("%w: %q", ErrProjectNotFound, in.ProjectID)
	}

	now := s.timestamp()
	task := models.Task{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  in.AssigneeID,
		ProjectID:   in.ProjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.DueDate != nil {
		due := normalize(*in.DueDate)
		task.DueDate = &due
	}
	s.tasks = append(s.tasks, task)

	s.logger.Info("task added", "task_id", task.ID, "project_id", task.ProjectID, "status", task.Status)
	if err := s.saveTasks(ctx); err != nil {
		return task.Clone(), err
	}
	s.publish(events.TasksChanged, task.ID)
	return task.Clone(), nil
}

// UpdateTask merges patch into the task with id. An unknown id is ignored.
// Moving a task to another project requires that project to exist.
func (s *Store) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return ErrEmptyTitle
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *patch.Status)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *patch.Priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		s.logger.Debug("update of unknown task ignored", "task_id", id)
		return nil
	}
	if patch.ProjectID != nil && s.projectIndex(*patch.ProjectID) < 0 {
		return fmt.Errorf("%w: %q", ErrProjectNotFound, *patch.ProjectID)
	}

	updated := patch.Apply(s.tasks[i])
	if updated.DueDate != nil {
		due := normalize(*updated.DueDate)
		updated.DueDate = &due
	}
	updated.UpdatedAt = s.advance(updated.UpdatedAt)
	s.tasks[i] = updated

	if err := s.saveTasks(ctx); err != nil {
		return err
	}
	s.publish(events.TasksChanged, id)
	return nil
}

// DeleteTask removes the task with id. An unknown id is ignored.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		s.logger.Debug("delete of unknown task ignored", "task_id", id)
		return nil
	}

	tasks := make([]models.Task, 0, len(s.tasks)-1)
	tasks = append(tasks, s.tasks[:i]...)
	tasks = append(tasks, s.tasks[i+1:]...)
	s.tasks = tasks

	s.logger.Info("task deleted", "task_id", id)
	if err := s.saveTasks(ctx); err != nil {
		return err
	}
	s.publish(events.TasksChanged, id)
	return nil
}

// ============================================================================
// Helpers (callers hold s.mu)
// ============================================================================

func (s *Store) projectIndex(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) saveProjects(ctx context.Context) error {
	return s.adapter.Save(ctx, ProjectsKey, s.projects)
}

func (s *Store) saveTasks(ctx context.Context) error {
	return s.adapter.Save(ctx, TasksKey, s.tasks)
}

func (s *Store) publish(t events.EventType, id string) {
	events.Publish(s.publisher, events.Event{Type: t, EntityID: id})
}

// timestamp reads the clock at millisecond precision.
func (s *Store) timestamp() time.Time {
	return normalize(s.now()).Truncate(time.Millisecond)
}

// advance returns a timestamp strictly after prev.
func (s *Store) advance(prev time.Time) time.Time {
	now := s.timestamp()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

// normalize converts t to UTC and strips the monotonic reading so that
// values deep-equal after a JSON round trip. Precision is kept.
func normalize(t time.Time) time.Time {
	return t.UTC().Round(0)
}

func cloneTasks(in []models.Task) []models.Task {
	out := make([]models.Task, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}
