package transfer

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/ironboard/internal/db"
	"github.com/existflow/ironboard/internal/model"
)

func newStore(t *testing.T) *db.Store {
	t.Helper()
	s := db.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, s.Open(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestExportFileName(t *testing.T) {
	date := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		project string
		want    string
	}{
		{"single word", "Work", "Work-backup-2024-03-09.json"},
		{"spaces collapse", "Side  Project  X", "Side-Project-X-backup-2024-03-09.json"},
		{"empty name", "", "kanban-backup-2024-03-09.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportFileName(tt.project, date))
		})
	}
}

func TestParseRejectsNonArrays(t *testing.T) {
	inputs := map[string]string{
		"object":    `{"id":"t1"}`,
		"null":      `null`,
		"string":    `"tasks"`,
		"empty":     ``,
		"malformed": `[{"id":`,
		"numbers":   `[1,2,3]`,
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(input))
			assert.ErrorIs(t, err, ErrInvalidImportFormat)
		})
	}
}

func TestParseEmptyArray(t *testing.T) {
	tasks, err := Parse([]byte(" [] "))
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	archived := model.NewTask(model.DefaultProjectID, "Old", "")
	archived.Archive(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	commented := model.NewTask(model.DefaultProjectID, "Ship", "release notes")
	commented.Status = model.StatusDone
	commented.AddComment("tagged v1")
	for _, task := range []model.Task{model.NewTask(model.DefaultProjectID, "First", ""), archived, commented} {
		_, err := s.AddTask(ctx, task)
		require.NoError(t, err)
	}
	before, err := s.GetTasks(ctx, model.DefaultProjectID)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := Export(ctx, s, model.DefaultProjectID, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, buf.String(), "\n  {")

	require.NoError(t, s.ClearAllTasks(ctx, model.DefaultProjectID))
	_, err = Import(ctx, s, model.DefaultProjectID, buf.Bytes())
	require.NoError(t, err)

	after, err := s.GetTasks(ctx, model.DefaultProjectID)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Status, after[i].Status)
		assert.Equal(t, before[i].Title, after[i].Title)
		assert.Equal(t, before[i].Description, after[i].Description)
		assert.Equal(t, before[i].IsArchived, after[i].IsArchived)
		assert.Equal(t, before[i].ArchivedDate, after[i].ArchivedDate)
		require.Len(t, after[i].Comments, len(before[i].Comments))
		for j := range before[i].Comments {
			assert.Equal(t, before[i].Comments[j].Text, after[i].Comments[j].Text)
			assert.True(t, before[i].Comments[j].Timestamp.Equal(after[i].Comments[j].Timestamp))
		}
	}
}

func TestImportStampsTargetProject(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	work, err := s.AddProject(ctx, model.NewProject("Work"))
	require.NoError(t, err)

	data := []byte(`[
		{"id":"a","projectId":"somewhere-else","status":"pending","title":"A","description":"","comments":[],"isArchived":false},
		{"title":"No id","status":"bogus"}
	]`)
	imported, err := Import(ctx, s, work.ID, data)
	require.NoError(t, err)
	require.Len(t, imported, 2)

	tasks, err := s.GetTasks(ctx, work.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, work.ID, task.ProjectID)
		assert.NotEmpty(t, task.ID)
		assert.NotNil(t, task.Comments)
	}
	assert.Equal(t, model.StatusPending, tasks[0].Status)
	assert.Equal(t, model.StatusTodo, tasks[1].Status)
}

func TestImportReplacesOnlyTargetProject(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	work, err := s.AddProject(ctx, model.NewProject("Work"))
	require.NoError(t, err)
	keep, err := s.AddTask(ctx, model.NewTask(model.DefaultProjectID, "Keep", ""))
	require.NoError(t, err)
	_, err = s.AddTask(ctx, model.NewTask(work.ID, "Replaced", ""))
	require.NoError(t, err)

	_, err = Import(ctx, s, work.ID, []byte(`[{"id":"n1","title":"New","status":"todo"}]`))
	require.NoError(t, err)

	workTasks, err := s.GetTasks(ctx, work.ID)
	require.NoError(t, err)
	require.Len(t, workTasks, 1)
	assert.Equal(t, "n1", workTasks[0].ID)

	other, err := s.GetTasks(ctx, model.DefaultProjectID)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, keep.ID, other[0].ID)
}

func TestInvalidImportLeavesProjectUntouched(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	existing, err := s.AddTask(ctx, model.NewTask(model.DefaultProjectID, "Existing", ""))
	require.NoError(t, err)

	_, err = Import(ctx, s, model.DefaultProjectID, []byte(`{"tasks":[]}`))
	require.ErrorIs(t, err, ErrInvalidImportFormat)

	tasks, err := s.GetTasks(ctx, model.DefaultProjectID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, existing.ID, tasks[0].ID)
}
