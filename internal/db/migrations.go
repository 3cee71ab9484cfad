package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/existflow/ironboard/internal/database"
	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/model"
)

// CurrentVersion is the schema version this build expects
const CurrentVersion = 2

// migration upgrades the schema from version-1 to version
type migration struct {
	version int
	name    string
	up      func(ctx context.Context, tx *sql.Tx) error
}

var migrations = []migration{
	{version: 1, name: "create tasks", up: migrateCreateTasks},
	{version: 2, name: "add projects", up: migrateAddProjects},
}

// migrate brings the schema from its stored version up to target.
// All pending steps and the version bump share one transaction.
func migrate(ctx context.Context, sqlDB *sql.DB, target int) error {
	if target < 1 || target > len(migrations) {
		return fmt.Errorf("%w: unknown schema version %d", ErrSchema, target)
	}

	var stored int
	if err := sqlDB.QueryRowContext(ctx, "PRAGMA user_version").Scan(&stored); err != nil {
		return fmt.Errorf("%w: failed to read schema version: %w", ErrStorageUnavailable, err)
	}

	if stored > target {
		return fmt.Errorf("%w: stored version %d is newer than supported version %d", ErrSchema, stored, target)
	}
	if stored == target {
		return nil
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin upgrade: %w", ErrStorageUnavailable, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range migrations {
		if m.version <= stored || m.version > target {
			continue
		}
		if err := m.up(ctx, tx); err != nil {
			return fmt.Errorf("%w: migration %d (%s) failed: %w", ErrSchema, m.version, m.name, err)
		}
		logger.Info("Applied migration", logger.F("version", m.version), logger.F("name", m.name))
	}

	// PRAGMA does not take bound parameters; target is an int we control.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", target)); err != nil {
		return fmt.Errorf("%w: failed to record schema version: %w", ErrSchema, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit upgrade: %w", ErrSchema, err)
	}

	logger.Info("Schema upgraded", logger.F("from", stored), logger.F("to", target))
	return nil
}

const migrationCreateTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    status TEXT NOT NULL DEFAULT 'todo',
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    comments TEXT NOT NULL DEFAULT '[]',
    is_archived INTEGER NOT NULL DEFAULT 0,
    archived_date TEXT
);
`

const migrationAddTaskProject = `
ALTER TABLE tasks ADD COLUMN project_id TEXT;
`

const migrationCreateTaskProjectIndex = `
CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id);
`

const migrationCreateProjects = `
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

func migrateCreateTasks(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, migrationCreateTasks)
	return err
}

// migrateAddProjects scopes tasks by project. When the projects table is new,
// it seeds the default project and assigns it every task that has no project.
func migrateAddProjects(ctx context.Context, tx *sql.Tx) error {
	if err := migrateCreateTasks(ctx, tx); err != nil {
		return err
	}

	hasColumn, err := columnExists(ctx, tx, "tasks", "project_id")
	if err != nil {
		return err
	}
	if !hasColumn {
		if _, err := tx.ExecContext(ctx, migrationAddTaskProject); err != nil {
			return fmt.Errorf("add project_id: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, migrationCreateTaskProjectIndex); err != nil {
		return fmt.Errorf("create project index: %w", err)
	}

	hadProjects, err := tableExists(ctx, tx, "projects")
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, migrationCreateProjects); err != nil {
		return fmt.Errorf("create projects: %w", err)
	}
	if hadProjects {
		return nil
	}

	q := database.New(tx)
	def := model.DefaultProject()
	if err := q.UpsertProject(ctx, projectParams(def)); err != nil {
		return fmt.Errorf("seed default project: %w", err)
	}

	n, err := q.BackfillTaskProject(ctx, def.ID)
	if err != nil {
		return fmt.Errorf("back-fill project ids: %w", err)
	}
	if n > 0 {
		logger.Info("Assigned tasks to default project", logger.F("tasks", n), logger.F("project", def.ID))
	}
	return nil
}

func tableExists(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&n)
	return n > 0, err
}

func columnExists(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column,
	).Scan(&n)
	return n > 0, err
}
