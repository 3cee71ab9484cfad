package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	MoveLeft    key.Binding
	MoveRight   key.Binding
	Add         key.Binding
	Edit        key.Binding
	Comment     key.Binding
	Archive     key.Binding
	Delete      key.Binding
	Filter      key.Binding
	PrevProject key.Binding
	NextProject key.Binding
	NewProject  key.Binding
	Rename      key.Binding
	Help        key.Binding
	Quit        key.Binding
	Escape      key.Binding
	Enter       key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
	MoveLeft:    key.NewBinding(key.WithKeys("H", "<"), key.WithHelp("H", "move task left")),
	MoveRight:   key.NewBinding(key.WithKeys("L", ">"), key.WithHelp("L", "move task right")),
	Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
	Comment:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
	Archive:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "archive/restore")),
	Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Filter:      key.NewBinding(key.WithKeys("f", "tab"), key.WithHelp("f", "cycle view")),
	PrevProject: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev project")),
	NextProject: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next project")),
	NewProject:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "new project")),
	Rename:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rename project")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.MoveLeft, k.MoveRight, k.Archive, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Add, k.Edit, k.Comment, k.MoveLeft, k.MoveRight},
		{k.Archive, k.Delete, k.Filter},
		{k.PrevProject, k.NextProject, k.NewProject, k.Rename},
		{k.Help, k.Quit},
	}
}
