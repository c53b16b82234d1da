package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/config"
	"taskpad/internal/service"
	"taskpad/internal/viewmodel"
)

// Run starts the interactive task manager on the terminal and blocks until
// the user quits or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, svc service.Service, opts ...tea.ProgramOption) error {
	vm := viewmodel.New(svc, cfg.Log())
	model := NewModel(ctx, vm, cfg.Loc())

	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
