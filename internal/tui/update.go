package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/ironboard/internal/board"
	"github.com/existflow/ironboard/internal/model"
)

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTask, ModeEditTask, ModeComment, ModeAddProject, ModeRenameProject:
			return m.updateInput(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.rows[m.lane] > 0 {
			m.rows[m.lane]--
		}

	case key.Matches(msg, keys.Down):
		lanes := m.lanes()
		if m.lane < len(lanes) && m.rows[m.lane] < len(lanes[m.lane].Tasks)-1 {
			m.rows[m.lane]++
		}

	case key.Matches(msg, keys.Left):
		if m.lane > 0 {
			m.lane--
		}

	case key.Matches(msg, keys.Right):
		if m.lane < len(m.lanes())-1 {
			m.lane++
		}

	case key.Matches(msg, keys.MoveLeft):
		m.handleMove(-1)

	case key.Matches(msg, keys.MoveRight):
		m.handleMove(1)

	case key.Matches(msg, keys.Add):
		if m.filter == board.FilterArchive {
			m.notify("Switch out of the archive to add tasks")
			break
		}
		return m.startInput(ModeAddTask, "", "New task title...", "")

	case key.Matches(msg, keys.Edit):
		if t, ok := m.selectedTask(); ok {
			return m.startInput(ModeEditTask, t.ID, "Task title...", t.Title)
		}

	case key.Matches(msg, keys.Comment):
		if t, ok := m.selectedTask(); ok {
			return m.startInput(ModeComment, t.ID, "Comment...", "")
		}

	case key.Matches(msg, keys.Archive):
		m.handleArchive()

	case key.Matches(msg, keys.Delete):
		if t, ok := m.selectedTask(); ok {
			m.target = t.ID
			m.mode = ModeConfirmDelete
		}

	case key.Matches(msg, keys.Filter):
		m.cycleFilter()

	case key.Matches(msg, keys.PrevProject):
		m.switchProject(-1)

	case key.Matches(msg, keys.NextProject):
		m.switchProject(1)

	case key.Matches(msg, keys.NewProject):
		return m.startInput(ModeAddProject, "", "Project name...", "")

	case key.Matches(msg, keys.Rename):
		return m.startInput(ModeRenameProject, m.projectID, "Project name...", m.view.Project.Name)

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Escape):
		m.notify("")
	}

	return m, nil
}

func (m Model) startInput(mode Mode, target, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.target = target
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// updateInput handles text entry for every input mode
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := m.input.Value()
		mode := m.mode
		m.mode = ModeNormal
		m.input.Blur()
		m.input.SetValue("")
		m.submit(mode, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit(mode Mode, value string) {
	var err error
	switch mode {
	case ModeAddTask:
		var t model.Task
		if t, err = m.svc.AddTask(m.ctx, m.projectID, value, ""); err == nil {
			m.notify(fmt.Sprintf("Added: %s", t.Title))
			m.filter = board.FilterAll
			m.lane = 0
		}
	case ModeEditTask:
		var t model.Task
		if t, err = m.svc.EditTask(m.ctx, m.target, board.TaskEdit{Title: &value}); err == nil {
			m.notify(fmt.Sprintf("Updated: %s", t.Title))
		}
	case ModeComment:
		var t model.Task
		if t, err = m.svc.AddComment(m.ctx, m.target, value); err == nil {
			m.notify(fmt.Sprintf("Commented on %s (%d)", t.Title, len(t.Comments)))
		}
	case ModeAddProject:
		var p model.Project
		if p, err = m.svc.AddProject(m.ctx, value); err == nil {
			m.projectID = p.ID
			m.resetCursor()
			m.notify(fmt.Sprintf("Created project: %s", p.Name))
		}
	case ModeRenameProject:
		var p model.Project
		if p, err = m.svc.RenameProject(m.ctx, m.target, value); err == nil {
			m.notify(fmt.Sprintf("Renamed to: %s", p.Name))
		}
	}
	m.target = ""
	if err != nil {
		m.fail(err)
		return
	}
	m.reload()
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	id := m.target
	m.target = ""
	if msg.String() != "y" && msg.String() != "Y" {
		m.notify("Cancelled")
		return m, nil
	}
	t, err := m.svc.DeleteTask(m.ctx, id)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.notify(fmt.Sprintf("Deleted: %s", t.Title))
	m.reload()
	return m, nil
}

// handleMove shifts the selected task one column left or right
func (m *Model) handleMove(delta int) {
	t, ok := m.selectedTask()
	if !ok || t.IsArchived {
		return
	}
	idx := 0
	for i, c := range board.Columns {
		if c.Status == t.Status {
			idx = i
		}
	}
	next := idx + delta
	if next < 0 || next >= len(board.Columns) {
		return
	}

	status := board.Columns[next].Status
	if _, _, err := m.svc.MoveTask(m.ctx, t.ID, status); err != nil {
		m.fail(err)
		return
	}
	m.notify(fmt.Sprintf("Moved to %s: %s", status.Title(), t.Title))
	m.reload()

	// Follow the task when every column is on screen
	if m.filter == board.FilterAll {
		m.lane = next
		for row, lt := range m.lanes()[next].Tasks {
			if lt.ID == t.ID {
				m.rows[next] = row
			}
		}
	}
}

func (m *Model) handleArchive() {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	var err error
	if t.IsArchived {
		_, err = m.svc.UnarchiveTask(m.ctx, t.ID)
		m.notify(fmt.Sprintf("Restored: %s", t.Title))
	} else {
		_, err = m.svc.ArchiveTask(m.ctx, t.ID)
		m.notify(fmt.Sprintf("Archived: %s", t.Title))
	}
	if err != nil {
		m.fail(err)
		return
	}
	m.reload()
}

func (m *Model) cycleFilter() {
	for i, f := range filters {
		if f == m.filter {
			m.filter = filters[(i+1)%len(filters)]
			break
		}
	}
	m.resetCursor()
	m.reload()
}

func (m *Model) switchProject(delta int) {
	if len(m.projects) < 2 {
		return
	}
	i := (m.projectIndex() + delta + len(m.projects)) % len(m.projects)
	m.projectID = m.projects[i].ID
	m.resetCursor()
	m.reload()
	m.notify(fmt.Sprintf("Project: %s", m.view.Project.Name))
}

func (m *Model) resetCursor() {
	m.lane = 0
	m.rows = make(map[int]int)
}
