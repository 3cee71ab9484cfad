package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is the board column a task belongs to
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusPending    Status = "pending"
	StatusDone       Status = "done"
)

// Statuses lists the board columns in display order
var Statuses = []Status{StatusTodo, StatusInProgress, StatusPending, StatusDone}

// Valid reports whether s is one of the board columns
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// Title returns the column heading for the status
func (s Status) Title() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusPending:
		return "Pending"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ArchiveDateLayout is the date-only format used for ArchivedDate
const ArchiveDateLayout = "2006-01-02"

// Comment is a single note appended to a task
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Task is a unit of work on the board.
// ArchivedDate is set iff IsArchived is true; a nil value is omitted from JSON.
type Task struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	Status       Status    `json:"status"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Comments     []Comment `json:"comments"`
	IsArchived   bool      `json:"isArchived"`
	ArchivedDate *string   `json:"archivedDate,omitempty"`
}

// NewTask creates a task in the todo column with a generated id
func NewTask(projectID, title, description string) Task {
	return Task{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Status:      StatusTodo,
		Title:       title,
		Description: description,
		Comments:    []Comment{},
	}
}

// NewComment creates a comment stamped with the current time
func NewComment(text string) Comment {
	return Comment{
		ID:        uuid.New().String(),
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

// AddComment appends a comment and returns it
func (t *Task) AddComment(text string) Comment {
	c := NewComment(text)
	t.Comments = append(t.Comments, c)
	return c
}

// MoveTo changes the status and reports whether anything changed
func (t *Task) MoveTo(status Status) bool {
	if t.Status == status {
		return false
	}
	t.Status = status
	return true
}

// Archive hides the task from the board, recording the day it was archived
func (t *Task) Archive(now time.Time) {
	date := now.Format(ArchiveDateLayout)
	t.IsArchived = true
	t.ArchivedDate = &date
}

// Unarchive restores the task to the board and drops the archive date
func (t *Task) Unarchive() {
	t.IsArchived = false
	t.ArchivedDate = nil
}

// Clone returns a deep copy of the task
func (t Task) Clone() Task {
	c := t
	if t.Comments != nil {
		c.Comments = append([]Comment(nil), t.Comments...)
	}
	if t.ArchivedDate != nil {
		d := *t.ArchivedDate
		c.ArchivedDate = &d
	}
	return c
}
