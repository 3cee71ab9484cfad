package database

import (
	"context"
	"database/sql"
)

const taskColumns = `id, project_id, status, title, description, comments, is_archived, archived_date`

func scanTasks(rows *sql.Rows) ([]Task, error) {
	defer rows.Close()

	var items []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(
			&t.ID,
			&t.ProjectID,
			&t.Status,
			&t.Title,
			&t.Description,
			&t.Comments,
			&t.IsArchived,
			&t.ArchivedDate,
		); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return items, rows.Err()
}

// INDEXED BY makes the statement fail instead of silently scanning
// the whole table if the project index is ever missing.
const listTasksByProject = `
SELECT ` + taskColumns + ` FROM tasks INDEXED BY idx_tasks_project_id
WHERE project_id = ?
ORDER BY rowid
`

func (q *Queries) ListTasksByProject(ctx context.Context, projectID string) ([]Task, error) {
	rows, err := q.db.QueryContext(ctx, listTasksByProject, projectID)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

const listTasks = `
SELECT ` + taskColumns + ` FROM tasks
ORDER BY rowid
`

func (q *Queries) ListTasks(ctx context.Context) ([]Task, error) {
	rows, err := q.db.QueryContext(ctx, listTasks)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

const getTask = `
SELECT ` + taskColumns + ` FROM tasks
WHERE id = ?
`

func (q *Queries) GetTask(ctx context.Context, id string) (Task, error) {
	var t Task
	err := q.db.QueryRowContext(ctx, getTask, id).Scan(
		&t.ID,
		&t.ProjectID,
		&t.Status,
		&t.Title,
		&t.Description,
		&t.Comments,
		&t.IsArchived,
		&t.ArchivedDate,
	)
	return t, err
}

const upsertTask = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    project_id = excluded.project_id,
    status = excluded.status,
    title = excluded.title,
    description = excluded.description,
    comments = excluded.comments,
    is_archived = excluded.is_archived,
    archived_date = excluded.archived_date
`

type UpsertTaskParams struct {
	ID           string
	ProjectID    sql.NullString
	Status       string
	Title        string
	Description  string
	Comments     string
	IsArchived   bool
	ArchivedDate sql.NullString
}

// UpsertTask inserts the row or replaces every column in place
func (q *Queries) UpsertTask(ctx context.Context, arg UpsertTaskParams) error {
	_, err := q.db.ExecContext(ctx, upsertTask,
		arg.ID,
		arg.ProjectID,
		arg.Status,
		arg.Title,
		arg.Description,
		arg.Comments,
		arg.IsArchived,
		arg.ArchivedDate,
	)
	return err
}

const deleteTask = `
DELETE FROM tasks WHERE id = ?
`

func (q *Queries) DeleteTask(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTask, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteTasksByProject = `
DELETE FROM tasks INDEXED BY idx_tasks_project_id
WHERE project_id = ?
`

func (q *Queries) DeleteTasksByProject(ctx context.Context, projectID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTasksByProject, projectID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteAllTasks = `
DELETE FROM tasks
`

func (q *Queries) DeleteAllTasks(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAllTasks)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const backfillTaskProject = `
UPDATE tasks SET project_id = ?
WHERE project_id IS NULL OR project_id = ''
`

// BackfillTaskProject assigns projectID to every task that has none
func (q *Queries) BackfillTaskProject(ctx context.Context, projectID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, backfillTaskProject, projectID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countTasks = `
SELECT
    COUNT(*) FILTER (WHERE is_archived = 0),
    COUNT(*) FILTER (WHERE is_archived = 0 AND status = 'done'),
    COUNT(*) FILTER (WHERE is_archived = 1)
FROM tasks INDEXED BY idx_tasks_project_id
WHERE project_id = ?
`

type CountTasksRow struct {
	Active   int64
	Done     int64
	Archived int64
}

func (q *Queries) CountTasks(ctx context.Context, projectID string) (CountTasksRow, error) {
	var c CountTasksRow
	err := q.db.QueryRowContext(ctx, countTasks, projectID).Scan(&c.Active, &c.Done, &c.Archived)
	return c, err
}
