// Package transfer moves a project's tasks in and out of JSON backup files.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/model"
)

// ErrInvalidImportFormat is returned when backup data is not a JSON array of tasks
var ErrInvalidImportFormat = errors.New("invalid import format")

// TaskSource reads a project's tasks
type TaskSource interface {
	GetTasks(ctx context.Context, projectID string) ([]model.Task, error)
}

// TaskSink atomically replaces a project's tasks
type TaskSink interface {
	ReplaceTasks(ctx context.Context, projectID string, tasks []model.Task) error
}

var whitespace = regexp.MustCompile(`\s+`)

// ExportFileName returns the backup file name for a project on the given day
func ExportFileName(projectName string, date time.Time) string {
	name := whitespace.ReplaceAllString(projectName, "-")
	if name == "" {
		name = "kanban"
	}
	return fmt.Sprintf("%s-backup-%s.json", name, date.Format("2006-01-02"))
}

// Export writes the project's tasks to w as an indented JSON array
func Export(ctx context.Context, src TaskSource, projectID string, w io.Writer) (int, error) {
	tasks, err := src.GetTasks(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to load tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode tasks: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return 0, fmt.Errorf("failed to write backup: %w", err)
	}

	logger.Info("Tasks exported", logger.F("project", projectID), logger.F("count", len(tasks)))
	return len(tasks), nil
}

// Parse decodes backup data. Anything other than a JSON array of task objects
// is rejected with ErrInvalidImportFormat.
func Parse(data []byte) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidImportFormat)
	}

	var tasks []model.Task
	if err := json.Unmarshal(trimmed, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImportFormat, err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// Import replaces every task of projectID with the tasks in data.
// Data is validated before anything is written, and the replacement is a
// single transaction, so a failed import leaves the project untouched.
func Import(ctx context.Context, dst TaskSink, projectID string, data []byte) ([]model.Task, error) {
	tasks, err := Parse(data)
	if err != nil {
		logger.Warn("Rejected import", logger.F("project", projectID), logger.F("error", err))
		return nil, err
	}

	for i := range tasks {
		normalize(&tasks[i], projectID)
	}

	if err := dst.ReplaceTasks(ctx, projectID, tasks); err != nil {
		return nil, fmt.Errorf("failed to import tasks: %w", err)
	}

	logger.Info("Tasks imported", logger.F("project", projectID), logger.F("count", len(tasks)))
	return tasks, nil
}

// normalize stamps the target project and fills fields an older or hand-edited
// backup may lack.
func normalize(t *model.Task, projectID string) {
	t.ProjectID = projectID
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if !t.Status.Valid() {
		t.Status = model.StatusTodo
	}
	if t.Comments == nil {
		t.Comments = []model.Comment{}
	}
}
