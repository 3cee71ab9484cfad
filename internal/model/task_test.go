package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask("p1", "Write docs", "")

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "p1", task.ProjectID)
	assert.Equal(t, StatusTodo, task.Status)
	assert.False(t, task.IsArchived)
	assert.Nil(t, task.ArchivedDate)
	assert.NotNil(t, task.Comments)
	assert.NotEqual(t, task.ID, NewTask("p1", "Write docs", "").ID)
}

func TestArchiveThenUnarchive(t *testing.T) {
	task := NewTask("p1", "Ship release", "")
	now := time.Date(2024, 3, 9, 17, 30, 0, 0, time.UTC)

	task.Archive(now)
	require.True(t, task.IsArchived)
	require.NotNil(t, task.ArchivedDate)
	assert.Equal(t, "2024-03-09", *task.ArchivedDate)

	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"archivedDate":"2024-03-09"`)

	task.Unarchive()
	assert.False(t, task.IsArchived)
	assert.Nil(t, task.ArchivedDate)

	data, err = json.Marshal(task)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "archivedDate")
}

func TestMoveTo(t *testing.T) {
	task := NewTask("p1", "Review", "")

	assert.False(t, task.MoveTo(StatusTodo))
	assert.True(t, task.MoveTo(StatusDone))
	assert.Equal(t, StatusDone, task.Status)
}

func TestStatusValid(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusTodo, true},
		{StatusInProgress, true},
		{StatusPending, true},
		{StatusDone, true},
		{Status("blocked"), false},
		{Status(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Valid())
		})
	}
}

func TestAddCommentKeepsOrder(t *testing.T) {
	task := NewTask("p1", "Plan", "")
	first := task.AddComment("first")
	second := task.AddComment("second")

	require.Len(t, task.Comments, 2)
	assert.Equal(t, first.ID, task.Comments[0].ID)
	assert.Equal(t, second.ID, task.Comments[1].ID)
	assert.Equal(t, "second", task.Comments[1].Text)
}

func TestCloneIsDeep(t *testing.T) {
	task := NewTask("p1", "Plan", "")
	task.AddComment("note")
	task.Archive(time.Now())

	c := task.Clone()
	c.Comments[0].Text = "changed"
	*c.ArchivedDate = "1999-01-01"

	assert.Equal(t, "note", task.Comments[0].Text)
	assert.NotEqual(t, "1999-01-01", *task.ArchivedDate)
}

func TestTaskJSONKeys(t *testing.T) {
	raw := `{"id":"1700000000000","projectId":"p9","status":"pending","title":"Imported",
		"description":"from browser","comments":[{"id":"c1","text":"hi","timestamp":"2024-01-02T03:04:05.000Z"}],
		"isArchived":false}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(raw), &task))

	assert.Equal(t, "1700000000000", task.ID)
	assert.Equal(t, "p9", task.ProjectID)
	assert.Equal(t, StatusPending, task.Status)
	require.Len(t, task.Comments, 1)
	assert.Equal(t, 2024, task.Comments[0].Timestamp.Year())
	assert.Nil(t, task.ArchivedDate)
}
