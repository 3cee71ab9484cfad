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

// ProjectStore is the project collection
type ProjectStore struct {
	db *DB
}

// GetAll returns every project in creation order
func (s ProjectStore) GetAll(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	projects := make([]model.Project, 0, len(rows))
	for _, row := range rows {
		p, err := projectFromRow(row)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Get returns the project with id; ok is false when there is none
func (s ProjectStore) Get(ctx context.Context, id string) (project model.Project, ok bool, err error) {
	row, err := s.db.GetProject(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, false, nil
	}
	if err != nil {
		return model.Project{}, false, fmt.Errorf("failed to get project: %w", err)
	}
	project, err = projectFromRow(row)
	if err != nil {
		return model.Project{}, false, err
	}
	return project, true, nil
}

// Put inserts the project or replaces the stored record with the same id
func (s ProjectStore) Put(ctx context.Context, project model.Project) error {
	if err := s.db.UpsertProject(ctx, projectParams(project)); err != nil {
		return fmt.Errorf("failed to save project %s: %w", project.ID, err)
	}
	return nil
}

// Delete removes the project and all of its tasks atomically.
// Deleting a missing project is not an error.
func (s ProjectStore) Delete(ctx context.Context, id string) error {
	var projects, tasks int64
	err := s.db.withTx(ctx, func(q *database.Queries) error {
		var err error
		if tasks, err = q.DeleteTasksByProject(ctx, id); err != nil {
			return fmt.Errorf("failed to delete tasks of project %s: %w", id, err)
		}
		if projects, err = q.DeleteProject(ctx, id); err != nil {
			return fmt.Errorf("failed to delete project %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Project deleted",
		logger.F("id", id),
		logger.F("found", projects > 0),
		logger.F("tasks", tasks))
	return nil
}
