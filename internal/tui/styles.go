package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the view. Colors are ANSI
// 256-color codes.
type Styles struct {
	Title     lipgloss.Style
	Section   lipgloss.Style
	Selected  lipgloss.Style
	Task      lipgloss.Style
	Completed lipgloss.Style
	Created   lipgloss.Style
	Empty     lipgloss.Style
	Error     lipgloss.Style
	Loading   lipgloss.Style
	Help      lipgloss.Style
	Label     lipgloss.Style
}

// DefaultStyles is the built-in style set.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Section:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).MarginTop(1),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")),
		Task:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Completed: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Strikethrough(true),
		Created:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),
		Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
