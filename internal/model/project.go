package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProjectID is the id of the project created when the store is first initialized.
// Task reads without an explicit project fall back to it.
const DefaultProjectID = "default"

// Project is a named container scoping a set of tasks
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewProject creates a project with a generated id
func NewProject(name string) Project {
	return Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// DefaultProject returns the project seeded by the schema migration
func DefaultProject() Project {
	return Project{
		ID:        DefaultProjectID,
		Name:      "Default Project",
		CreatedAt: time.Now().UTC(),
	}
}
