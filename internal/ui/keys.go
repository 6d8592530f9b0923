package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Logs       key.Binding
	Escape     key.Binding

	// Cursor
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Home  key.Binding
	End   key.Binding

	// Editing
	Toggle      key.Binding
	Drag        key.Binding
	FillRange   key.Binding
	Remark      key.Binding
	SelectRow   key.Binding
	SelectAll   key.Binding
	Save        key.Binding
	MarkAll     key.Binding
	CycleBranch key.Binding

	// Month
	PrevMonth    key.Binding
	NextMonth    key.Binding
	CurrentMonth key.Binding
	Reload       key.Binding

	// Modal input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle log view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / cancel mark all"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Previous employee"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Next employee"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Next day"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "First day"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "Last day"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle day"),
		),
		Drag: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Start/stop paint"),
		),
		FillRange: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Fill to anchor"),
		),
		Remark: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Edit remark"),
		),
		SelectRow: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Select employee"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Select all"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Save selection"),
		),
		MarkAll: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "Mark all present"),
		),
		CycleBranch: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Cycle branch"),
		),

		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next month"),
		),
		CurrentMonth: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "This month"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reload month"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Save, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End},
		{k.Toggle, k.Drag, k.FillRange, k.Remark},
		{k.SelectRow, k.SelectAll, k.Save, k.MarkAll, k.CycleBranch},
		{k.PrevMonth, k.NextMonth, k.CurrentMonth, k.Reload},
		{k.Logs, k.CycleTheme, k.Escape, k.Help, k.Quit},
	}
}
