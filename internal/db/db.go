// Package db is the board's on-device persistence layer: a versioned SQLite
// database holding projects and tasks, and the Store facade the front ends use.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/existflow/ironboard/internal/database"
	"github.com/existflow/ironboard/internal/logger"
	_ "modernc.org/sqlite"
)

// FileName is the database file created under the data directory
const FileName = "ironboard.db"

// DB wraps an open, migrated SQLite connection
type DB struct {
	*sql.DB
	*database.Queries
	path string
}

// DefaultDBPath returns the default database path (~/.ironboard/ironboard.db)
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ironboard", FileName), nil
}

// Open opens or creates the database at dbPath and migrates it to CurrentVersion
func Open(ctx context.Context, dbPath string) (*DB, error) {
	return openAt(ctx, dbPath, CurrentVersion)
}

func openAt(ctx context.Context, dbPath string, version int) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create database directory: %w", ErrStorageUnavailable, err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrStorageUnavailable, err)
	}

	// One connection serializes writers and keeps every transaction on the same handle.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: failed to connect to database: %w", ErrStorageUnavailable, err)
	}

	if err := migrate(ctx, sqlDB, version); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.Debug("Database opened", logger.F("path", dbPath), logger.F("version", version))

	return &DB{
		DB:      sqlDB,
		Queries: database.New(sqlDB),
		path:    dbPath,
	}, nil
}

// Path returns the file the database was opened from
func (db *DB) Path() string {
	return db.path
}

// Tasks returns the task collection
func (db *DB) Tasks() TaskStore {
	return TaskStore{db: db}
}

// Projects returns the project collection
func (db *DB) Projects() ProjectStore {
	return ProjectStore{db: db}
}

// withTx runs fn inside a transaction, committing on success and rolling back otherwise
func (db *DB) withTx(ctx context.Context, fn func(q *database.Queries) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(db.Queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
