package database

import "context"

const listProjects = `
SELECT id, name, created_at FROM projects
ORDER BY rowid
`

func (q *Queries) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := q.db.QueryContext(ctx, listProjects)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return items, rows.Err()
}

const getProject = `
SELECT id, name, created_at FROM projects
WHERE id = ?
`

func (q *Queries) GetProject(ctx context.Context, id string) (Project, error) {
	var p Project
	err := q.db.QueryRowContext(ctx, getProject, id).Scan(&p.ID, &p.Name, &p.CreatedAt)
	return p, err
}

const upsertProject = `
INSERT INTO projects (id, name, created_at)
VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    created_at = excluded.created_at
`

type UpsertProjectParams struct {
	ID        string
	Name      string
	CreatedAt string
}

// UpsertProject inserts the row or replaces it in place, keeping its position
func (q *Queries) UpsertProject(ctx context.Context, arg UpsertProjectParams) error {
	_, err := q.db.ExecContext(ctx, upsertProject, arg.ID, arg.Name, arg.CreatedAt)
	return err
}

const deleteProject = `
DELETE FROM projects WHERE id = ?
`

func (q *Queries) DeleteProject(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteProject, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
