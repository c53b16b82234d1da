package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the task list.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	// SwitchSection moves the selection between the ongoing and completed
	// sections.
	SwitchSection key.Binding

	// FocusInput moves focus to the title input.
	FocusInput key.Binding

	// Submit adds or updates from the input. Cancel leaves the input and
	// abandons an edit.
	Submit key.Binding
	Cancel key.Binding

	Edit   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Reload key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	SwitchSection: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "section"),
	),
	FocusInput: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "new task"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space", "x"),
		key.WithHelp("space/x", "toggle"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

// listHelp is the order bindings appear in the footer while the list has focus.
func (k KeyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwitchSection, k.FocusInput, k.Edit, k.Toggle, k.Delete, k.Reload, k.Quit}
}

func (k KeyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}
