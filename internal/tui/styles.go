package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/ironboard/internal/model"
)

// Color palette
var (
	// Column colors
	TodoColor       = lipgloss.Color("#4ECDC4")
	InProgressColor = lipgloss.Color("#FFB347")
	PendingColor    = lipgloss.Color("#FFE66D")
	DoneColor       = lipgloss.Color("#95E1A3")
	ArchiveColor    = lipgloss.Color("#6C757D")
	ErrorColor      = lipgloss.Color("#FF6B6B")

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	ProjectTabStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	ProjectTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Padding(0, 1)

	ColumnStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	ColumnFocusedStyle = ColumnStyle.
				BorderForeground(Primary)

	TaskItemStyle = lipgloss.NewStyle()

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Background(Surface).
				Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)
)

// columnColor returns the accent color of a column; archive is the empty status
func columnColor(status model.Status) lipgloss.Color {
	switch status {
	case model.StatusTodo:
		return TodoColor
	case model.StatusInProgress:
		return InProgressColor
	case model.StatusPending:
		return PendingColor
	case model.StatusDone:
		return DoneColor
	default:
		return ArchiveColor
	}
}
