// Package tui implements the interactive task manager. It is a bubbletea
// model over a viewmodel.ViewModel: every network call runs as a tea.Cmd
// and its completion message triggers a re-render. All task state lives in
// the view-model; the model only tracks focus, selection and widgets.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/output"
	"taskpad/internal/service"
	"taskpad/internal/viewmodel"
)

const (
	appTitle = "Task Management"

	ongoingTitle   = "Ongoing Task"
	completedTitle = "Completed Task"
)

type section int

const (
	ongoingSection section = iota
	completedSection
)

type focus int

const (
	focusList focus = iota
	focusInput
)

// opDoneMsg is delivered when a view-model operation returns. The result
// is already applied to the view-model; the message only triggers a
// re-render and selection fix-up.
type opDoneMsg struct {
	op  string
	err error
}

// Model is the bubbletea model of the task manager.
type Model struct {
	ctx    context.Context
	vm     *viewmodel.ViewModel
	loc    *time.Location
	keys   KeyMap
	styles Styles

	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	focus        focus
	section      section
	cursor       [2]int
	pendingLoads int
	width        int
}

// NewModel creates a model over vm. Timestamps are rendered in loc.
func NewModel(ctx context.Context, vm *viewmodel.ViewModel, loc *time.Location) Model {
	input := textinput.New()
	input.Placeholder = "Enter task title"
	input.Prompt = "> "
	input.CharLimit = 256
	input.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		ctx:     ctx,
		vm:      vm,
		loc:     loc,
		keys:    DefaultKeyMap,
		styles:  DefaultStyles(),
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),

		// Init always starts a load.
		pendingLoads: 1,
	}
}

// Init starts the spinner and the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	return m.run("load", m.vm.LoadAll)
}

func (m Model) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

// Loading reports whether a load is pending or in flight.
func (m Model) Loading() bool {
	return m.pendingLoads > 0 || m.vm.IsLoading()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opDoneMsg:
		if msg.op == "load" && m.pendingLoads > 0 {
			m.pendingLoads--
		}
		if msg.op == "submit" && msg.err == nil {
			m.input.SetValue(m.vm.Draft())
		}
		m.clampCursors()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			return m.handleInputKeys(msg)
		}
		return m.handleListKeys(msg)
	}
	return m, nil
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.vm.SetDraft(m.input.Value())
		if m.vm.Mode().IsEditing() {
			m.focus = focusList
			m.input.Blur()
		}
		return m, m.run("submit", m.vm.Submit)

	case key.Matches(msg, m.keys.Cancel):
		if m.vm.Mode().IsEditing() {
			m.vm.CancelEdit()
			m.input.SetValue("")
		}
		m.focus = focusList
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.vm.SetDraft(m.input.Value())
	return m, cmd
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.section] > 0 {
			m.cursor[m.section]--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.section] < len(m.view(m.section))-1 {
			m.cursor[m.section]++
		}

	case key.Matches(msg, m.keys.SwitchSection):
		if m.section == ongoingSection {
			m.section = completedSection
		} else {
			m.section = ongoingSection
		}

	case key.Matches(msg, m.keys.FocusInput):
		m.focus = focusInput
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Edit):
		task, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.vm.BeginEdit(task)
		m.input.SetValue(task.Title)
		m.input.CursorEnd()
		m.focus = focusInput
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, m.run("toggle", func(ctx context.Context) error {
			return m.vm.ToggleComplete(ctx, task.ID)
		})

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, m.run("delete", func(ctx context.Context) error {
			return m.vm.Remove(ctx, task.ID)
		})

	case key.Matches(msg, m.keys.Reload):
		m.pendingLoads++
		return m, m.load()

	case key.Matches(msg, m.keys.Cancel):
		m.vm.ClearError()
	}
	return m, nil
}

// Selected returns the task under the cursor in the active section.
func (m Model) Selected() (service.Task, bool) {
	tasks := m.view(m.section)
	i := m.cursor[m.section]
	if i < 0 || i >= len(tasks) {
		return service.Task{}, false
	}
	return tasks[i], true
}

func (m Model) view(s section) []service.Task {
	if s == completedSection {
		return viewmodel.Completed(m.vm.Tasks())
	}
	return viewmodel.Ongoing(m.vm.Tasks())
}

// clampCursors keeps each section's cursor on an existing row after the
// collection changes.
func (m *Model) clampCursors() {
	for _, s := range []section{ongoingSection, completedSection} {
		n := len(m.view(s))
		if m.cursor[s] >= n {
			m.cursor[s] = n - 1
		}
		if m.cursor[s] < 0 {
			m.cursor[s] = 0
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(appTitle))
	b.WriteString("\n")

	label := "New task"
	if m.vm.Mode().IsEditing() {
		label = "Edit task"
	}
	b.WriteString(m.styles.Label.Render(label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if msg := m.vm.LastError(); msg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(msg))
		b.WriteString("\n")
	}

	loading := m.Loading()
	if loading {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Loading.Render(" Loading tasks..."))
		b.WriteString("\n")
	}

	tasks := m.vm.Tasks()
	m.renderSection(&b, ongoingSection, ongoingTitle, "No ongoing tasks", viewmodel.Ongoing(tasks), loading)
	m.renderSection(&b, completedSection, completedTitle, "No completed tasks", viewmodel.Completed(tasks), loading)

	bindings := m.keys.listHelp()
	if m.focus == focusInput {
		bindings = m.keys.inputHelp()
	}
	b.WriteString(m.styles.Help.Render(m.help.ShortHelpView(bindings)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderSection(b *strings.Builder, s section, title, empty string, tasks []service.Task, loading bool) {
	b.WriteString(m.styles.Section.Render(title))
	b.WriteString("\n")

	if len(tasks) == 0 {
		if !loading {
			b.WriteString("  ")
			b.WriteString(m.styles.Empty.Render(empty))
			b.WriteString("\n")
		}
		return
	}

	for i, task := range tasks {
		selected := m.focus == focusList && m.section == s && m.cursor[s] == i

		marker := "  "
		if selected {
			marker = "> "
		}
		text := output.NormalizeTitle(task.Title)
		switch {
		case selected:
			text = m.styles.Selected.Render(text)
		case task.Completed:
			text = m.styles.Completed.Render(text)
		default:
			text = m.styles.Task.Render(text)
		}

		b.WriteString(marker)
		b.WriteString(text)
		b.WriteString("\n    ")
		b.WriteString(m.styles.Created.Render("Created: " + output.FormatDate(task.CreatedAt, m.loc)))
		b.WriteString("\n")
	}
}
