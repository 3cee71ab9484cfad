// Package tui is the interactive kanban board.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/existflow/ironboard/internal/board"
	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/model"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeEditTask
	ModeComment
	ModeAddProject
	ModeRenameProject
	ModeConfirmDelete
	ModeHelp
)

// filters is the order the view cycles through
var filters = []board.Filter{
	board.FilterAll,
	board.Filter(model.StatusTodo),
	board.Filter(model.StatusInProgress),
	board.Filter(model.StatusPending),
	board.Filter(model.StatusDone),
	board.FilterArchive,
}

// Model is the main TUI model
type Model struct {
	ctx context.Context
	svc *board.Service

	projects  []model.Project
	projectID string
	view      board.View
	filter    board.Filter

	// UI state
	width  int
	height int
	mode   Mode
	lane   int
	rows   map[int]int // cursor row per lane
	target string      // task id the current input applies to

	input textinput.Model
	help  help.Model

	message string
	err     error
}

// NewModel creates a board opened on projectID
func NewModel(ctx context.Context, svc *board.Service, projectID string) Model {
	logger.Info("Initializing TUI model", logger.F("project", projectID))

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		ctx:       ctx,
		svc:       svc,
		projectID: projectID,
		filter:    board.FilterAll,
		rows:      make(map[int]int),
		input:     ti,
		help:      help.New(),
	}
	m.reload()
	return m
}

// ProjectID returns the project on screen
func (m Model) ProjectID() string {
	return m.projectID
}

// reload fetches projects and the current board, keeping cursors in range
func (m *Model) reload() {
	projects, err := m.svc.Projects(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.projects = projects

	current, err := m.svc.CurrentProject(m.ctx, m.projectID)
	if err != nil {
		m.fail(err)
		return
	}
	m.projectID = current.ID

	view, err := m.svc.Load(m.ctx, m.projectID)
	if err != nil {
		m.fail(err)
		return
	}
	m.view = view

	lanes := m.lanes()
	if m.lane >= len(lanes) {
		m.lane = len(lanes) - 1
	}
	if m.lane < 0 {
		m.lane = 0
	}
	for i, l := range lanes {
		if m.rows[i] >= len(l.Tasks) {
			m.rows[i] = max(len(l.Tasks)-1, 0)
		}
	}
}

func (m *Model) fail(err error) {
	logger.Error("TUI operation failed", logger.F("error", err))
	m.err = err
	m.message = ""
}

func (m *Model) notify(msg string) {
	m.err = nil
	m.message = msg
}

func (m Model) lanes() []board.Lane {
	return m.view.Lanes(m.filter)
}

// selectedTask returns the task under the cursor
func (m Model) selectedTask() (model.Task, bool) {
	lanes := m.lanes()
	if m.lane >= len(lanes) {
		return model.Task{}, false
	}
	tasks := lanes[m.lane].Tasks
	row := m.rows[m.lane]
	if row >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[row], true
}

func (m Model) projectIndex() int {
	for i, p := range m.projects {
		if p.ID == m.projectID {
			return i
		}
	}
	return 0
}
