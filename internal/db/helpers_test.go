package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/existflow/ironboard/internal/model"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), FileName))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustHandle(t *testing.T, s *Store) *DB {
	t.Helper()
	db, err := s.handle(context.Background())
	require.NoError(t, err)
	return db
}

func mustAddProject(t *testing.T, s *Store, name string) model.Project {
	t.Helper()
	p, err := s.AddProject(context.Background(), model.NewProject(name))
	require.NoError(t, err)
	return p
}

func mustAddTask(t *testing.T, s *Store, projectID, title string) model.Task {
	t.Helper()
	task, err := s.AddTask(context.Background(), model.NewTask(projectID, title, ""))
	require.NoError(t, err)
	return task
}

func taskIDs(tasks []model.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

// abortOn installs a trigger that fails any statement of kind ("INSERT", "DELETE")
// on table touching the row where column equals value.
func abortOn(t *testing.T, s *Store, kind, table, column, value string) {
	t.Helper()
	row := "NEW"
	if kind == "DELETE" {
		row = "OLD"
	}
	stmt := "CREATE TRIGGER test_abort BEFORE " + kind + " ON " + table +
		" WHEN " + row + "." + column + " = '" + value + "'" +
		" BEGIN SELECT RAISE(ABORT, 'rejected by test'); END;"
	_, err := mustHandle(t, s).ExecContext(context.Background(), stmt)
	require.NoError(t, err)
}
