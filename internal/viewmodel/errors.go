package viewmodel

import "fmt"

// Kind identifies which operation failed.
type Kind int

const (
	LoadFailure Kind = iota + 1
	AddFailure
	UpdateFailure
	ToggleFailure
	DeleteFailure
)

func (k Kind) String() string {
	switch k {
	case LoadFailure:
		return "load"
	case AddFailure:
		return "add"
	case UpdateFailure:
		return "update"
	case ToggleFailure:
		return "toggle"
	case DeleteFailure:
		return "delete"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// message is the user-facing prefix for a failure of this kind.
func (k Kind) message() string {
	switch k {
	case LoadFailure:
		return "failed to fetch tasks"
	case AddFailure:
		return "failed to add task"
	case UpdateFailure:
		return "failed to update task"
	case ToggleFailure:
		return "failed to update task status"
	case DeleteFailure:
		return "failed to delete task"
	default:
		return "operation failed"
	}
}

// OpError is recorded when a Task API call fails. Transport failures and
// non-2xx responses are both reported this way.
type OpError struct {
	Kind Kind
	Err  error
}

func (e *OpError) Error() string {
	return e.Kind.message() + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }
