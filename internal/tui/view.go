package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/ironboard/internal/board"
	"github.com/existflow/ironboard/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)

	var body string
	switch m.mode {
	case ModeHelp:
		body = m.renderHelp()
	case ModeAddTask, ModeEditTask, ModeComment, ModeAddProject, ModeRenameProject, ModeConfirmDelete:
		body = lipgloss.Place(
			m.width, max(bodyHeight, 0),
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	default:
		body = m.renderBoard(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("IronBoard")

	tabs := make([]string, 0, len(m.projects))
	for _, p := range m.projects {
		style := ProjectTabStyle
		if p.ID == m.projectID {
			style = ProjectTabActiveStyle
		}
		tabs = append(tabs, style.Render(p.Name))
	}

	view := MutedStyle.Render(fmt.Sprintf("view: %s", m.filter))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Join(tabs, ""), "  ", view) + "\n"
}

func (m Model) renderBoard(height int) string {
	lanes := m.lanes()
	if len(lanes) == 0 {
		return ""
	}

	// Border and padding take 4 columns per lane
	width := max(m.width/len(lanes)-4, 12)
	rendered := make([]string, 0, len(lanes))
	for i, lane := range lanes {
		rendered = append(rendered, m.renderLane(i, lane, width, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderLane(idx int, lane board.Lane, width, height int) string {
	color := columnColor(lane.Status)
	title := lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(fmt.Sprintf("%s (%d)", lane.Title, len(lane.Tasks)))

	lines := []string{title, ""}
	if len(lane.Tasks) == 0 {
		lines = append(lines, MutedStyle.Render("empty"))
	}
	for row, t := range lane.Tasks {
		lines = append(lines, m.renderTask(t, width, idx == m.lane && row == m.rows[idx]))
	}

	style := ColumnStyle
	if idx == m.lane {
		style = ColumnFocusedStyle
	}
	style = style.Width(width)
	if height > 2 {
		style = style.Height(height - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderTask(t model.Task, width int, selected bool) string {
	line := truncate(t.Title, width-2)
	if n := len(t.Comments); n > 0 {
		line = truncate(t.Title, width-6) + MutedStyle.Render(fmt.Sprintf(" 💬%d", n))
	}
	if t.IsArchived {
		line += "\n" + MutedStyle.Render(fmt.Sprintf("  %s · %s", t.Status.Title(), archivedOn(t)))
	}

	if selected {
		return TaskItemSelectedStyle.Render("> " + line)
	}
	return TaskItemStyle.Render("  " + line)
}

func archivedOn(t model.Task) string {
	if t.ArchivedDate == nil {
		return "archived"
	}
	return "archived " + *t.ArchivedDate
}

func (m Model) renderModal() string {
	var title, body string
	switch m.mode {
	case ModeAddTask:
		title = "New task in " + m.view.Project.Name
	case ModeEditTask:
		title = "Edit task"
	case ModeComment:
		title = "Add comment"
		if t, ok := m.selectedTask(); ok {
			body = renderComments(t)
		}
	case ModeAddProject:
		title = "New project"
	case ModeRenameProject:
		title = "Rename " + m.view.Project.Name
	case ModeConfirmDelete:
		name := m.target
		if t, ok := m.selectedTask(); ok {
			name = t.Title
		}
		return ModalStyle.Render(fmt.Sprintf("Delete \"%s\"?\n\n%s", name, MutedStyle.Render("y to confirm, any other key to cancel")))
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	if body != "" {
		content += body + "\n\n"
	}
	content += m.input.View() + "\n\n" + MutedStyle.Render("enter to save, esc to cancel")
	return ModalStyle.Render(content)
}

func renderComments(t model.Task) string {
	if len(t.Comments) == 0 {
		return MutedStyle.Render("No comments yet")
	}
	lines := make([]string, 0, len(t.Comments))
	for _, c := range t.Comments {
		lines = append(lines, MutedStyle.Render(c.Timestamp.Local().Format("Jan 2 15:04"))+"  "+c.Text)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	m.help.ShowAll = true
	return ModalStyle.Render(lipgloss.NewStyle().Bold(true).Render("Keys") + "\n\n" + m.help.View(keys))
}

func (m Model) renderStatusBar() string {
	left := m.message
	if m.err != nil {
		left = ErrorStyle.Render(m.err.Error())
	}
	if left == "" {
		left = fmt.Sprintf("%d active · %d archived", m.view.Len(), len(m.view.Archived))
	}
	return StatusBarStyle.Width(max(m.width-2, 0)).Render(left + "   " + m.help.View(keys))
}

// truncate shortens a string to n runes with ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
