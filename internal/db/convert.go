package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/existflow/ironboard/internal/database"
	"github.com/existflow/ironboard/internal/model"
)

func projectParams(p model.Project) database.UpsertProjectParams {
	return database.UpsertProjectParams{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func projectFromRow(row database.Project) (model.Project, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return model.Project{}, fmt.Errorf("project %s: bad created_at %q: %w", row.ID, row.CreatedAt, err)
	}
	return model.Project{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: createdAt,
	}, nil
}

func taskParams(t model.Task) (database.UpsertTaskParams, error) {
	comments := t.Comments
	if comments == nil {
		comments = []model.Comment{}
	}
	data, err := json.Marshal(comments)
	if err != nil {
		return database.UpsertTaskParams{}, fmt.Errorf("task %s: encode comments: %w", t.ID, err)
	}

	p := database.UpsertTaskParams{
		ID:          t.ID,
		ProjectID:   sql.NullString{String: t.ProjectID, Valid: t.ProjectID != ""},
		Status:      string(t.Status),
		Title:       t.Title,
		Description: t.Description,
		Comments:    string(data),
		IsArchived:  t.IsArchived,
	}
	if t.ArchivedDate != nil {
		p.ArchivedDate = sql.NullString{String: *t.ArchivedDate, Valid: true}
	}
	return p, nil
}

func taskFromRow(row database.Task) (model.Task, error) {
	t := model.Task{
		ID:          row.ID,
		ProjectID:   row.ProjectID.String,
		Status:      model.Status(row.Status),
		Title:       row.Title,
		Description: row.Description,
		Comments:    []model.Comment{},
		IsArchived:  row.IsArchived,
	}
	if row.Comments != "" {
		if err := json.Unmarshal([]byte(row.Comments), &t.Comments); err != nil {
			return model.Task{}, fmt.Errorf("task %s: decode comments: %w", row.ID, err)
		}
	}
	if row.ArchivedDate.Valid {
		date := row.ArchivedDate.String
		t.ArchivedDate = &date
	}
	return t, nil
}

func tasksFromRows(rows []database.Task) ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		t, err := taskFromRow(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
