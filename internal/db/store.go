package db

import (
	"context"
	"sync"

	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/model"
)

// Store is the data access facade. The database is opened and migrated on
// first use and the handle is shared by every caller until Close.
// If opening fails, the failure is kept and returned by every later call.
type Store struct {
	path string

	mu      sync.Mutex
	db      *DB
	openErr error
}

// NewStore returns a Store backed by the database file at path.
// Nothing is opened until the first operation.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Open connects and migrates eagerly, returning the same error a later operation would
func (s *Store) Open(ctx context.Context) error {
	_, err := s.handle(ctx)
	return err
}

func (s *Store) handle(ctx context.Context) (*DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}
	if s.openErr != nil {
		return nil, s.openErr
	}

	db, err := Open(ctx, s.path)
	if err != nil {
		// A cancelled caller says nothing about the storage itself.
		if ctx.Err() == nil {
			s.openErr = err
		}
		logger.Error("Failed to open database", logger.F("path", s.path), logger.F("error", err))
		return nil, err
	}
	s.db = db
	return db, nil
}

// Close releases the handle and forgets any open failure, so the next call reopens
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.openErr = nil
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// GetProjects returns every project
func (s *Store) GetProjects(ctx context.Context) ([]model.Project, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	return db.Projects().GetAll(ctx)
}

// GetProject returns the project with id; ok is false when there is none
func (s *Store) GetProject(ctx context.Context, id string) (model.Project, bool, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return model.Project{}, false, err
	}
	return db.Projects().Get(ctx, id)
}

// AddProject upserts the project and returns it
func (s *Store) AddProject(ctx context.Context, project model.Project) (model.Project, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return model.Project{}, err
	}
	if err := db.Projects().Put(ctx, project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

// UpdateProject replaces the whole project record; it is the same operation as AddProject
func (s *Store) UpdateProject(ctx context.Context, project model.Project) (model.Project, error) {
	return s.AddProject(ctx, project)
}

// DeleteProject removes the project and its tasks, returning id
func (s *Store) DeleteProject(ctx context.Context, id string) (string, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return "", err
	}
	if err := db.Projects().Delete(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// GetTasks returns the tasks of projectID, or of the default project when projectID is empty
func (s *Store) GetTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	if projectID == "" {
		projectID = model.DefaultProjectID
	}
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	return db.Tasks().GetAll(ctx, projectID)
}

// GetAllTasks returns every task regardless of project
func (s *Store) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	return db.Tasks().GetAllTasks(ctx)
}

// GetTask returns the task with id; ok is false when there is none
func (s *Store) GetTask(ctx context.Context, id string) (model.Task, bool, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return model.Task{}, false, err
	}
	return db.Tasks().Get(ctx, id)
}

// AddTask upserts the task and returns it
func (s *Store) AddTask(ctx context.Context, task model.Task) (model.Task, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return model.Task{}, err
	}
	if err := db.Tasks().Put(ctx, task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// UpdateTask replaces the whole task record; it is the same operation as AddTask
func (s *Store) UpdateTask(ctx context.Context, task model.Task) (model.Task, error) {
	return s.AddTask(ctx, task)
}

// DeleteTask removes the task with id, returning id. A missing task is not an error.
func (s *Store) DeleteTask(ctx context.Context, id string) (string, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return "", err
	}
	if err := db.Tasks().Delete(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// ClearAllTasks deletes the tasks of projectID, or every task when projectID is AllProjects
func (s *Store) ClearAllTasks(ctx context.Context, projectID string) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	return db.Tasks().Clear(ctx, projectID)
}

// BulkAddTasks upserts all tasks atomically
func (s *Store) BulkAddTasks(ctx context.Context, tasks []model.Task) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	return db.Tasks().BulkPut(ctx, tasks)
}

// ReplaceTasks swaps the tasks of projectID for tasks in one transaction
func (s *Store) ReplaceTasks(ctx context.Context, projectID string, tasks []model.Task) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	return db.Tasks().Replace(ctx, projectID, tasks)
}

// TaskCounts holds per-project task totals
type TaskCounts struct {
	Active   int
	Done     int
	Archived int
}

// CountTasks returns task totals for projectID
func (s *Store) CountTasks(ctx context.Context, projectID string) (TaskCounts, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return TaskCounts{}, err
	}
	c, err := db.Tasks().Counts(ctx, projectID)
	if err != nil {
		return TaskCounts{}, err
	}
	return TaskCounts{Active: int(c.Active), Done: int(c.Done), Archived: int(c.Archived)}, nil
}
