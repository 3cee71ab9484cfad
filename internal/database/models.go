package database

import "database/sql"

// Project is a row of the projects table
type Project struct {
	ID        string
	Name      string
	CreatedAt string
}

// Task is a row of the tasks table.
// ProjectID is NULL only for rows written before the projects migration.
type Task struct {
	ID           string
	ProjectID    sql.NullString
	Status       string
	Title        string
	Description  string
	Comments     string
	IsArchived   bool
	ArchivedDate sql.NullString
}
