package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/existflow/ironboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustAddProject(t, s, "Work")

	task := model.NewTask(p.ID, "Write report", "quarterly")
	task.AddComment("draft ready")

	_, err := s.AddTask(ctx, task)
	require.NoError(t, err)
	_, err = s.AddTask(ctx, task)
	require.NoError(t, err)

	got, err := s.GetTasks(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, task, got[0])
}

func TestUpdateTaskReplacesWholeRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustAddProject(t, s, "Work")
	first := mustAddTask(t, s, p.ID, "first")
	second := mustAddTask(t, s, p.ID, "second")

	first.Title = "first, renamed"
	first.Status = model.StatusDone
	first.Archive(time.Now())
	_, err := s.UpdateTask(ctx, first)
	require.NoError(t, err)

	got, err := s.GetTasks(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// The update keeps the record in its original position.
	assert.Equal(t, []string{first.ID, second.ID}, taskIDs(got))
	assert.Equal(t, first, got[0])

	first.Unarchive()
	_, err = s.UpdateTask(ctx, first)
	require.NoError(t, err)

	stored, ok, err := s.GetTask(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, stored.IsArchived)
	assert.Nil(t, stored.ArchivedDate)
}

func TestGetTasksIsProjectScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p1 := mustAddProject(t, s, "p1")
	p2 := mustAddProject(t, s, "p2")
	a := mustAddTask(t, s, p1.ID, "A")
	mustAddTask(t, s, p2.ID, "B")

	got, err := s.GetTasks(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{a}, got)
}

func TestGetTasksDefaultsToDefaultProject(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	task := mustAddTask(t, s, model.DefaultProjectID, "in default")

	got, err := s.GetTasks(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{task.ID}, taskIDs(got))
}

func TestDeleteProjectCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p1 := mustAddProject(t, s, "p1")
	p2 := mustAddProject(t, s, "p2")
	mustAddTask(t, s, p1.ID, "A")
	mustAddTask(t, s, p1.ID, "B")
	c := mustAddTask(t, s, p2.ID, "C")

	id, err := s.DeleteProject(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, p1.ID, id)

	projects, err := s.GetProjects(ctx)
	require.NoError(t, err)
	for _, p := range projects {
		assert.NotEqual(t, p1.ID, p.ID)
	}

	gone, err := s.GetTasks(ctx, p1.ID)
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := s.GetTasks(ctx, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{c}, kept)
}

func TestDeleteMissingProjectIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, err := s.GetProjects(ctx)
	require.NoError(t, err)

	_, err = s.DeleteProject(ctx, "does-not-exist")
	require.NoError(t, err)

	after, err := s.GetProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteProjectIsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustAddProject(t, s, "doomed")
	a := mustAddTask(t, s, p.ID, "A")

	abortOn(t, s, "DELETE", "projects", "id", p.ID)

	_, err := s.DeleteProject(ctx, p.ID)
	require.Error(t, err)

	_, ok, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok, "project must survive a failed delete")

	tasks, err := s.GetTasks(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{a}, tasks, "tasks must survive a failed delete")
}

func TestDeleteMissingTaskIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustAddProject(t, s, "p")
	a := mustAddTask(t, s, p.ID, "A")

	id, err := s.DeleteTask(ctx, "zzz")
	require.NoError(t, err)
	assert.Equal(t, "zzz", id)

	got, err := s.GetTasks(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{a}, got)
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustAddProject(t, s, "p")
	a := mustAddTask(t, s, p.ID, "A")
	b := mustAddTask(t, s, p.ID, "B")

	_, err := s.DeleteTask(ctx, a.ID)
	require.NoError(t, err)

	got, err := s.GetTasks(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, taskIDs(got))

	_, ok, err := s.GetTask(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearAllTasks(t *testing.T) {
	tests := []struct {
		name       string
		clear      func(p1, p2 model.Project) string
		wantP1     int
		wantP2     int
		wantOrphan int
	}{
		{
			name:       "scoped clear leaves other projects alone",
			clear:      func(p1, _ model.Project) string { return p1.ID },
			wantP1:     0,
			wantP2:     1,
			wantOrphan: 1,
		},
		{
			name:       "full wipe removes every task",
			clear:      func(_, _ model.Project) string { return AllProjects },
			wantP1:     0,
			wantP2:     0,
			wantOrphan: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			ctx := context.Background()
			p1 := mustAddProject(t, s, "p1")
			p2 := mustAddProject(t, s, "p2")
			mustAddTask(t, s, p1.ID, "A")
			mustAddTask(t, s, p1.ID, "B")
			mustAddTask(t, s, p2.ID, "C")
			mustAddTask(t, s, "gone", "orphan")

			require.NoError(t, s.ClearAllTasks(ctx, tt.clear(p1, p2)))

			got1, err := s.GetTasks(ctx, p1.ID)
			require.NoError(t, err)
			assert.Len(t, got1, tt.wantP1)

			got2, err := s.GetTasks(ctx, p2.ID)
			require.NoError(t, err)
			assert.Len(t, got2, tt.wantP2)

			orphans, err := s.GetTasks(ctx, "gone")
			require.NoError(t, err)
			assert.Len(t, orphans, tt.wantOrphan)
		})
	}
}

func TestClearIsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustAddProject(t, s, "p")
	mustAddTask(t, s, p.ID, "A")
	b := mustAddTask(t, s, p.ID, "B")
	mustAddTask(t, s, p.ID, "C")

	abortOn(t, s, "DELETE", "tasks", "id", b.ID)

	require.Error(t, s.ClearAllTasks(ctx, p.ID))

	got, err := s.GetTasks(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestBulkAddTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustAddProject(t, s, "p")

	batch := []model.Task{
		model.NewTask(p.ID, "A", ""),
		model.NewTask(p.ID, "B", ""),
		model.NewTask(p.ID, "C", ""),
	}
	require.NoError(t, s.BulkAddTasks(ctx, batch))

	got, err := s.GetTasks(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, batch, got)
}

func TestBulkAddTasksRollsBackOnFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustAddProject(t, s, "p")
	existing := mustAddTask(t, s, p.ID, "existing")

	abortOn(t, s, "INSERT", "tasks", "title", "boom")

	batch := []model.Task{
		model.NewTask(p.ID, "A", ""),
		model.NewTask(p.ID, "boom", ""),
		model.NewTask(p.ID, "C", ""),
	}
	require.Error(t, s.BulkAddTasks(ctx, batch))

	got, err := s.GetTasks(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{existing}, got)
}

func TestReplaceTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustAddProject(t, s, "p")
	other := mustAddProject(t, s, "other")
	mustAddTask(t, s, p.ID, "old")
	keep := mustAddTask(t, s, other.ID, "keep")

	fresh := []model.Task{model.NewTask(p.ID, "new 1", ""), model.NewTask(p.ID, "new 2", "")}
	require.NoError(t, s.ReplaceTasks(ctx, p.ID, fresh))

	got, err := s.GetTasks(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)

	kept, err := s.GetTasks(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{keep}, kept)
}

func TestReplaceTasksRollsBackClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustAddProject(t, s, "p")
	old := mustAddTask(t, s, p.ID, "old")

	abortOn(t, s, "INSERT", "tasks", "title", "boom")

	err := s.ReplaceTasks(ctx, p.ID, []model.Task{model.NewTask(p.ID, "boom", "")})
	require.Error(t, err)

	got, err := s.GetTasks(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{old}, got)
}

func TestStoreIsSchemaPermissive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := model.Task{ID: "raw", ProjectID: "p", Status: model.Status("someday"), Comments: []model.Comment{}}
	_, err := s.AddTask(ctx, task)
	require.NoError(t, err)

	got, err := s.GetTasks(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, []model.Task{task}, got)
}

func TestOrphanTasksReachableByFullScan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	orphan := mustAddTask(t, s, "never-created", "orphan")

	all, err := s.GetAllTasks(ctx)
	require.NoError(t, err)
	assert.Contains(t, taskIDs(all), orphan.ID)
}

func TestCountTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := mustAddProject(t, s, "p")

	mustAddTask(t, s, p.ID, "open")
	done := model.NewTask(p.ID, "done", "")
	done.Status = model.StatusDone
	archived := model.NewTask(p.ID, "archived", "")
	archived.Archive(time.Now())
	require.NoError(t, s.BulkAddTasks(ctx, []model.Task{done, archived}))

	c, err := s.CountTasks(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, TaskCounts{Active: 2, Done: 1, Archived: 1}, c)
}

func TestProjectRenameKeepsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustAddProject(t, s, "a")
	mustAddProject(t, s, "b")

	a.Name = "a renamed"
	_, err := s.UpdateProject(ctx, a)
	require.NoError(t, err)

	projects, err := s.GetProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, model.DefaultProjectID, projects[0].ID)
	assert.Equal(t, a, projects[1])
}

func TestStorageUnavailableIsSticky(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	s := NewStore(filepath.Join(blocker, FileName))
	ctx := context.Background()

	_, err := s.GetProjects(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorageUnavailable))

	// The blocker going away does not help until the store is closed.
	require.NoError(t, os.Remove(blocker))
	_, err = s.GetTasks(ctx, "p")
	assert.True(t, errors.Is(err, ErrStorageUnavailable))

	require.NoError(t, s.Close())
	_, err = s.GetProjects(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestCorruptFileIsStorageUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	garbage := make([]byte, 4096)
	for i := range garbage {
		garbage[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(path, garbage, 0644))

	s := NewStore(path)
	t.Cleanup(func() { _ = s.Close() })

	err := s.Open(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
