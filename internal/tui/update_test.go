package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/ironboard/internal/board"
	"github.com/existflow/ironboard/internal/db"
	"github.com/existflow/ironboard/internal/model"
)

func newTestModel(t *testing.T) (Model, *board.Service) {
	t.Helper()
	store := db.NewStore(filepath.Join(t.TempDir(), "tui.db"))
	require.NoError(t, store.Open(context.Background()))
	t.Cleanup(func() { store.Close() })

	svc := board.New(store)
	m := NewModel(context.Background(), svc, "")
	return m, svc
}

func press(t *testing.T, m Model, presses ...string) Model {
	t.Helper()
	for _, k := range presses {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func TestOpensOnFirstProject(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, model.DefaultProjectID, m.ProjectID())
	assert.Len(t, m.lanes(), 4)
	assert.NoError(t, m.err)
}

func TestAddMoveArchiveDelete(t *testing.T) {
	m, svc := newTestModel(t)
	ctx := context.Background()

	m = press(t, m, "a")
	require.Equal(t, ModeAddTask, m.mode)
	m = typeText(t, m, "Write docs")
	m = press(t, m, "enter")
	require.NoError(t, m.err)
	assert.Equal(t, ModeNormal, m.mode)

	view, err := svc.Load(ctx, model.DefaultProjectID)
	require.NoError(t, err)
	require.Len(t, view.Columns[model.StatusTodo], 1)
	id := view.Columns[model.StatusTodo][0].ID

	m = press(t, m, "L")
	task, err := svc.FindTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, task.Status)
	assert.Equal(t, 1, m.lane)

	m = press(t, m, "H", "H")
	task, err = svc.FindTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusTodo, task.Status)

	m = press(t, m, "x")
	task, err = svc.FindTask(ctx, id)
	require.NoError(t, err)
	assert.True(t, task.IsArchived)

	// all, todo, inprogress, pending, done, archive
	m = press(t, m, "f", "f", "f", "f", "f")
	require.Equal(t, board.FilterArchive, m.filter)
	selected, ok := m.selectedTask()
	require.True(t, ok)
	assert.Equal(t, id, selected.ID)

	m = press(t, m, "d", "n")
	_, err = svc.FindTask(ctx, id)
	require.NoError(t, err)

	m = press(t, m, "d", "y")
	_, err = svc.FindTask(ctx, id)
	assert.ErrorIs(t, err, board.ErrNotFound)
	assert.Equal(t, ModeNormal, m.mode)
}

func TestEscapeCancelsInput(t *testing.T) {
	m, svc := newTestModel(t)

	m = press(t, m, "a")
	m = typeText(t, m, "Never saved")
	m = press(t, m, "esc")
	assert.Equal(t, ModeNormal, m.mode)

	all, err := svc.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	view, err := svc.Load(context.Background(), model.DefaultProjectID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Len())
}

func TestEmptyTitleShowsError(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "a", "enter")
	assert.ErrorIs(t, m.err, board.ErrEmptyTitle)
}

func TestProjectSwitching(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "p")
	m = typeText(t, m, "Work")
	m = press(t, m, "enter")
	require.NoError(t, m.err)
	require.Len(t, m.projects, 2)
	assert.Equal(t, "Work", m.view.Project.Name)
	work := m.ProjectID()

	m = press(t, m, "[")
	assert.Equal(t, model.DefaultProjectID, m.ProjectID())
	m = press(t, m, "]")
	assert.Equal(t, work, m.ProjectID())
}

func TestCommentAndRender(t *testing.T) {
	m, svc := newTestModel(t)
	ctx := context.Background()

	_, err := svc.AddTask(ctx, model.DefaultProjectID, "Review PR", "")
	require.NoError(t, err)
	m.reload()

	m = press(t, m, "c")
	require.Equal(t, ModeComment, m.mode)
	m = typeText(t, m, "looks good")
	m = press(t, m, "enter")
	require.NoError(t, m.err)

	sel, ok := m.selectedTask()
	require.True(t, ok)
	require.Len(t, sel.Comments, 1)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	out := next.(Model).View()
	assert.Contains(t, out, "Review PR")
	assert.Contains(t, out, "To Do")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "héllo", truncate("héllo", 5))
}
