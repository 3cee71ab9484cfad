package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/existflow/ironboard/internal/model"
)

// Filter selects which part of the board is shown
type Filter string

const (
	FilterAll     Filter = "all"
	FilterArchive Filter = "archive"
)

// ParseFilter accepts "all", "archive" or any status accepted by ParseStatus
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FilterAll):
		return FilterAll, nil
	case string(FilterArchive), "archived":
		return FilterArchive, nil
	}
	status, err := ParseStatus(s)
	if err != nil {
		return "", err
	}
	return Filter(status), nil
}

// Lane is a titled list of tasks as shown on screen
type Lane struct {
	Status model.Status // empty for the archive lane
	Title  string
	Tasks  []model.Task
}

// View is a project's board: active tasks grouped by column, plus the archive
type View struct {
	Project  model.Project
	Columns  map[model.Status][]model.Task
	Archived []model.Task
}

// Load builds the board of projectID
func (s *Service) Load(ctx context.Context, projectID string) (View, error) {
	p, ok, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return View{}, err
	}
	if !ok {
		return View{}, fmt.Errorf("%w: project %q", ErrNotFound, projectID)
	}

	tasks, err := s.store.GetTasks(ctx, projectID)
	if err != nil {
		return View{}, fmt.Errorf("failed to load tasks: %w", err)
	}
	return NewView(p, tasks), nil
}

// NewView groups tasks into columns. Tasks with an unknown status land in todo.
func NewView(p model.Project, tasks []model.Task) View {
	v := View{
		Project:  p,
		Columns:  make(map[model.Status][]model.Task, len(Columns)),
		Archived: []model.Task{},
	}
	for _, c := range Columns {
		v.Columns[c.Status] = []model.Task{}
	}
	for _, t := range tasks {
		if t.IsArchived {
			v.Archived = append(v.Archived, t)
			continue
		}
		status := t.Status
		if !status.Valid() {
			status = model.StatusTodo
		}
		v.Columns[status] = append(v.Columns[status], t)
	}
	return v
}

// Lanes returns the lanes visible under filter, in display order
func (v View) Lanes(filter Filter) []Lane {
	if filter == FilterArchive {
		return []Lane{{Title: "Archive", Tasks: v.Archived}}
	}
	var lanes []Lane
	for _, c := range Columns {
		if filter != FilterAll && Filter(c.Status) != filter {
			continue
		}
		lanes = append(lanes, Lane{Status: c.Status, Title: c.Title, Tasks: v.Columns[c.Status]})
	}
	return lanes
}

// Len returns the number of active tasks on the board
func (v View) Len() int {
	n := 0
	for _, tasks := range v.Columns {
		n += len(tasks)
	}
	return n
}
