package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/existflow/ironboard/internal/database"
	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/model"
)

// AllProjects passed to Clear wipes every task in the store
const AllProjects = ""

// TaskStore is the task collection. Writes are not validated:
// status and title are the caller's responsibility.
type TaskStore struct {
	db *DB
}

// GetAll returns the tasks of one project in insertion order
func (s TaskStore) GetAll(ctx context.Context, projectID string) ([]model.Task, error) {
	rows, err := s.db.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasksFromRows(rows)
}

// GetAllTasks returns every task in the store, including tasks whose project no longer exists
func (s TaskStore) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasksFromRows(rows)
}

// Get returns the task with id; ok is false when there is none
func (s TaskStore) Get(ctx context.Context, id string) (task model.Task, ok bool, err error) {
	row, err := s.db.GetTask(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, false, nil
	}
	if err != nil {
		return model.Task{}, false, fmt.Errorf("failed to get task: %w", err)
	}
	task, err = taskFromRow(row)
	if err != nil {
		return model.Task{}, false, err
	}
	return task, true, nil
}

// Put inserts the task or replaces the stored record with the same id
func (s TaskStore) Put(ctx context.Context, task model.Task) error {
	return putTask(ctx, s.db.Queries, task)
}

func putTask(ctx context.Context, q *database.Queries, task model.Task) error {
	params, err := taskParams(task)
	if err != nil {
		return err
	}
	if err := q.UpsertTask(ctx, params); err != nil {
		return fmt.Errorf("failed to save task %s: %w", task.ID, err)
	}
	return nil
}

// Delete removes the task with id. A missing id is not an error.
func (s TaskStore) Delete(ctx context.Context, id string) error {
	n, err := s.db.DeleteTask(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	logger.Debug("Task deleted", logger.F("id", id), logger.F("rows", n))
	return nil
}

// Clear deletes the tasks of projectID, or every task when projectID is AllProjects.
// Either all targeted tasks are removed or none are.
func (s TaskStore) Clear(ctx context.Context, projectID string) error {
	var n int64
	err := s.db.withTx(ctx, func(q *database.Queries) error {
		var err error
		n, err = clearTasks(ctx, q, projectID)
		return err
	})
	if err != nil {
		return err
	}
	logger.Info("Tasks cleared", logger.F("project", projectID), logger.F("tasks", n))
	return nil
}

func clearTasks(ctx context.Context, q *database.Queries, projectID string) (int64, error) {
	if projectID == AllProjects {
		n, err := q.DeleteAllTasks(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to clear tasks: %w", err)
		}
		return n, nil
	}
	n, err := q.DeleteTasksByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear tasks of project %s: %w", projectID, err)
	}
	return n, nil
}

// BulkPut upserts every task in one transaction; on any failure nothing is written
func (s TaskStore) BulkPut(ctx context.Context, tasks []model.Task) error {
	err := s.db.withTx(ctx, func(q *database.Queries) error {
		for _, t := range tasks {
			if err := putTask(ctx, q, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Tasks saved in bulk", logger.F("tasks", len(tasks)))
	return nil
}

// Replace clears projectID and inserts tasks in the same transaction
func (s TaskStore) Replace(ctx context.Context, projectID string, tasks []model.Task) error {
	var removed int64
	err := s.db.withTx(ctx, func(q *database.Queries) error {
		var err error
		if removed, err = clearTasks(ctx, q, projectID); err != nil {
			return err
		}
		for _, t := range tasks {
			if err := putTask(ctx, q, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Tasks replaced",
		logger.F("project", projectID),
		logger.F("removed", removed),
		logger.F("added", len(tasks)))
	return nil
}

// Counts returns active, done and archived task counts for a project
func (s TaskStore) Counts(ctx context.Context, projectID string) (database.CountTasksRow, error) {
	c, err := s.db.CountTasks(ctx, projectID)
	if err != nil {
		return c, fmt.Errorf("failed to count tasks: %w", err)
	}
	return c, nil
}
