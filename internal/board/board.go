// Package board holds the kanban operations shared by the CLI, the TUI and
// the HTTP API. It resolves references, validates input and turns user
// actions into whole-record writes against the store.
package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/ironboard/internal/db"
	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/model"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAmbiguousID   = errors.New("ambiguous id")
	ErrEmptyTitle    = errors.New("title must not be empty")
	ErrEmptyName     = errors.New("project name must not be empty")
	ErrEmptyComment  = errors.New("comment must not be empty")
	ErrInvalidStatus = errors.New("invalid status")
	ErrLastProject   = errors.New("cannot delete the last project")
)

// Store is the persistence surface the board needs
type Store interface {
	GetProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, id string) (model.Project, bool, error)
	AddProject(ctx context.Context, project model.Project) (model.Project, error)
	UpdateProject(ctx context.Context, project model.Project) (model.Project, error)
	DeleteProject(ctx context.Context, id string) (string, error)
	GetTasks(ctx context.Context, projectID string) ([]model.Task, error)
	GetAllTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id string) (model.Task, bool, error)
	AddTask(ctx context.Context, task model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) (model.Task, error)
	DeleteTask(ctx context.Context, id string) (string, error)
	ClearAllTasks(ctx context.Context, projectID string) error
	CountTasks(ctx context.Context, projectID string) (db.TaskCounts, error)
}

// Service implements board operations on top of a Store
type Service struct {
	store Store
	now   func() time.Time
}

// New returns a Service using store
func New(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Column is one board lane
type Column struct {
	Status model.Status
	Title  string
}

// Columns lists the board lanes in display order
var Columns = []Column{
	{model.StatusTodo, model.StatusTodo.Title()},
	{model.StatusInProgress, model.StatusInProgress.Title()},
	{model.StatusPending, model.StatusPending.Title()},
	{model.StatusDone, model.StatusDone.Title()},
}

// ParseStatus accepts a status key or its column title, ignoring case and spaces
func ParseStatus(s string) (model.Status, error) {
	key := strings.ToLower(strings.Join(strings.Fields(s), ""))
	for _, c := range Columns {
		if key == string(c.Status) || key == strings.ToLower(strings.ReplaceAll(c.Title, " ", "")) {
			return c.Status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Projects returns every project in creation order
func (s *Service) Projects(ctx context.Context) ([]model.Project, error) {
	return s.store.GetProjects(ctx)
}

// CurrentProject returns the project with savedID, falling back to the first
// project when savedID is empty or no longer exists.
func (s *Service) CurrentProject(ctx context.Context, savedID string) (model.Project, error) {
	if savedID != "" {
		p, ok, err := s.store.GetProject(ctx, savedID)
		if err != nil {
			return model.Project{}, err
		}
		if ok {
			return p, nil
		}
		logger.Warn("Saved project not found, falling back", logger.F("project", savedID))
	}

	projects, err := s.store.GetProjects(ctx)
	if err != nil {
		return model.Project{}, err
	}
	if len(projects) == 0 {
		return model.Project{}, fmt.Errorf("%w: no projects", ErrNotFound)
	}
	return projects[0], nil
}

// FindProject resolves ref as a project id, a unique id prefix, or a name
func (s *Service) FindProject(ctx context.Context, ref string) (model.Project, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Project{}, fmt.Errorf("%w: empty project reference", ErrNotFound)
	}
	if p, ok, err := s.store.GetProject(ctx, ref); err != nil || ok {
		return p, err
	}

	projects, err := s.store.GetProjects(ctx)
	if err != nil {
		return model.Project{}, err
	}

	var matches []model.Project
	for _, p := range projects {
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
		if strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return model.Project{}, fmt.Errorf("%w: project %q", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return model.Project{}, fmt.Errorf("%w: %q matches %d projects", ErrAmbiguousID, ref, len(matches))
	}
}

// AddProject creates a project named name
func (s *Service) AddProject(ctx context.Context, name string) (model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Project{}, ErrEmptyName
	}
	p, err := s.store.AddProject(ctx, model.NewProject(name))
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	logger.Info("Project created", logger.F("project", p.ID), logger.F("name", p.Name))
	return p, nil
}

// RenameProject changes the name of the project ref resolves to
func (s *Service) RenameProject(ctx context.Context, ref, name string) (model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Project{}, ErrEmptyName
	}
	p, err := s.FindProject(ctx, ref)
	if err != nil {
		return model.Project{}, err
	}
	p.Name = name
	if _, err := s.store.UpdateProject(ctx, p); err != nil {
		return model.Project{}, fmt.Errorf("failed to rename project: %w", err)
	}
	return p, nil
}

// DeleteProject removes a project and all of its tasks. The last remaining
// project cannot be deleted.
func (s *Service) DeleteProject(ctx context.Context, ref string) (model.Project, error) {
	p, err := s.FindProject(ctx, ref)
	if err != nil {
		return model.Project{}, err
	}
	projects, err := s.store.GetProjects(ctx)
	if err != nil {
		return model.Project{}, err
	}
	if len(projects) <= 1 {
		return model.Project{}, ErrLastProject
	}
	if _, err := s.store.DeleteProject(ctx, p.ID); err != nil {
		return model.Project{}, fmt.Errorf("failed to delete project: %w", err)
	}
	return p, nil
}

// Counts returns the task totals of a project
func (s *Service) Counts(ctx context.Context, projectID string) (db.TaskCounts, error) {
	return s.store.CountTasks(ctx, projectID)
}

// FindTask resolves ref as a task id or a unique id prefix
func (s *Service) FindTask(ctx context.Context, ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, fmt.Errorf("%w: empty task reference", ErrNotFound)
	}
	if t, ok, err := s.store.GetTask(ctx, ref); err != nil || ok {
		return t, err
	}

	tasks, err := s.store.GetAllTasks(ctx)
	if err != nil {
		return model.Task{}, err
	}
	var matches []model.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return model.Task{}, fmt.Errorf("%w: task %q", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return model.Task{}, fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguousID, ref, len(matches))
	}
}

// AddTask creates a task in the todo column of projectID
func (s *Service) AddTask(ctx context.Context, projectID, title, description string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}
	if _, ok, err := s.store.GetProject(ctx, projectID); err != nil {
		return model.Task{}, err
	} else if !ok {
		return model.Task{}, fmt.Errorf("%w: project %q", ErrNotFound, projectID)
	}

	t, err := s.store.AddTask(ctx, model.NewTask(projectID, title, strings.TrimSpace(description)))
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	logger.Info("Task created", logger.F("task", t.ID), logger.F("project", projectID))
	return t, nil
}

// TaskEdit holds the fields to change; nil fields are left alone
type TaskEdit struct {
	Title       *string
	Description *string
}

// EditTask updates the title and description of the task ref resolves to
func (s *Service) EditTask(ctx context.Context, ref string, edit TaskEdit) (model.Task, error) {
	t, err := s.FindTask(ctx, ref)
	if err != nil {
		return model.Task{}, err
	}
	if edit.Title != nil {
		title := strings.TrimSpace(*edit.Title)
		if title == "" {
			return model.Task{}, ErrEmptyTitle
		}
		t.Title = title
	}
	if edit.Description != nil {
		t.Description = strings.TrimSpace(*edit.Description)
	}
	return s.save(ctx, t)
}

// MoveTask puts a task into another column. Nothing is written when the task
// is already there; moved reports whether a write happened.
func (s *Service) MoveTask(ctx context.Context, ref string, status model.Status) (task model.Task, moved bool, err error) {
	if !status.Valid() {
		return model.Task{}, false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	t, err := s.FindTask(ctx, ref)
	if err != nil {
		return model.Task{}, false, err
	}
	if !t.MoveTo(status) {
		return t, false, nil
	}
	t, err = s.save(ctx, t)
	if err != nil {
		return model.Task{}, false, err
	}
	logger.Debug("Task moved", logger.F("task", t.ID), logger.F("status", string(status)))
	return t, true, nil
}

// ArchiveTask hides a task from the board
func (s *Service) ArchiveTask(ctx context.Context, ref string) (model.Task, error) {
	t, err := s.FindTask(ctx, ref)
	if err != nil {
		return model.Task{}, err
	}
	t.Archive(s.now())
	return s.save(ctx, t)
}

// UnarchiveTask returns an archived task to its column
func (s *Service) UnarchiveTask(ctx context.Context, ref string) (model.Task, error) {
	t, err := s.FindTask(ctx, ref)
	if err != nil {
		return model.Task{}, err
	}
	t.Unarchive()
	return s.save(ctx, t)
}

// AddComment appends a comment to a task
func (s *Service) AddComment(ctx context.Context, ref, text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyComment
	}
	t, err := s.FindTask(ctx, ref)
	if err != nil {
		return model.Task{}, err
	}
	t.AddComment(text)
	return s.save(ctx, t)
}

// DeleteTask removes a task and returns what was deleted
func (s *Service) DeleteTask(ctx context.Context, ref string) (model.Task, error) {
	t, err := s.FindTask(ctx, ref)
	if err != nil {
		return model.Task{}, err
	}
	if _, err := s.store.DeleteTask(ctx, t.ID); err != nil {
		return model.Task{}, fmt.Errorf("failed to delete task: %w", err)
	}
	return t, nil
}

// ClearTasks deletes every task of projectID, or of all projects when projectID is db.AllProjects
func (s *Service) ClearTasks(ctx context.Context, projectID string) error {
	if err := s.store.ClearAllTasks(ctx, projectID); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	return nil
}

func (s *Service) save(ctx context.Context, t model.Task) (model.Task, error) {
	t, err := s.store.UpdateTask(ctx, t)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to save task: %w", err)
	}
	return t, nil
}
