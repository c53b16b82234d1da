package viewmodel

import "taskpad/internal/service"

// Mode says what the draft title is for: a new task, or an edit of an
// existing one. The zero value is Composing.
type Mode struct {
	editing bool
	taskID  service.TaskID
}

// Composing returns the mode in which the draft becomes a new task.
func Composing() Mode { return Mode{} }

// Editing returns the mode in which the draft retitles the task with id.
func Editing(id service.TaskID) Mode { return Mode{editing: true, taskID: id} }

// IsEditing reports whether the mode is Editing.
func (m Mode) IsEditing() bool { return m.editing }

// TaskID returns the edited task's ID and true in Editing mode.
func (m Mode) TaskID() (service.TaskID, bool) { return m.taskID, m.editing }

func (m Mode) String() string {
	if m.editing {
		return "editing(" + m.taskID.String() + ")"
	}
	return "composing"
}
