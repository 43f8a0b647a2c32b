package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings. Screen switching mirrors the nav
// bar of the board header; board keys are active only on the board
// screen in its normal state.
type keyMap struct {
	// Screen switching.
	GoBoard     key.Binding
	GoCalendar  key.Binding
	GoDashboard key.Binding
	GoLogs      key.Binding
	GoProfile   key.Binding

	// Movement.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Board actions.
	Grab          key.Binding // grab / drop the selected card
	Search        key.Binding
	FilterCycle   key.Binding
	New           key.Binding
	Move          key.Binding // per-card move-to-status menu
	Delete        key.Binding
	Notifications key.Binding

	// Calendar.
	PrevMonth key.Binding
	NextMonth key.Binding

	// Forms.
	FocusNext key.Binding
	FocusPrev key.Binding

	Confirm key.Binding
	Cancel  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	GoBoard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "board"),
	),
	GoCalendar: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "calendar"),
	),
	GoDashboard: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "dashboard"),
	),
	GoLogs: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "logs"),
	),
	GoProfile: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "profile"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	Grab: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "grab/drop"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	FilterCycle: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "priority filter"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new issue"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	Notifications: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "notifications"),
	),
	PrevMonth: key.NewBinding(
		key.WithKeys("h", "left", "["),
		key.WithHelp("h/[", "prev month"),
	),
	NextMonth: key.NewBinding(
		key.WithKeys("l", "right", "]"),
		key.WithHelp("l/]", "next month"),
	),
	FocusNext: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	FocusPrev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-tab", "prev field"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
