package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// completedPrefix marks a reference into the completed view (c1, c 2).
const completedPrefix = 'c'

// TaskRef is a parsed task reference: the 1-based position of a task in the
// ongoing view, or in the completed view when Completed is set.
type TaskRef struct {
	Completed bool
	TaskNum   int
}

// String renders the reference the way the list command prints it.
func (r TaskRef) String() string {
	if r.Completed {
		return string(completedPrefix) + strconv.Itoa(r.TaskNum)
	}
	return strconv.Itoa(r.TaskNum)
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from the front of args and returns
// the arguments that follow it.
//
// Accepted forms:
//   - "N": the Nth ongoing task
//   - "cN": the Nth completed task
//   - "c" "N": same as "cN"
//
// A lone "c" with nothing after it reports ErrTaskRefRequired.
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	first := args[0]

	if isAllDigits(first) {
		num, err := strconv.Atoi(first)
		if err != nil {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
		}
		return TaskRef{TaskNum: num}, args[1:], nil
	}

	if len(first) > 0 && rune(first[0]) == completedPrefix {
		if len(first) > 1 && isAllDigits(first[1:]) {
			num, err := strconv.Atoi(first[1:])
			if err != nil {
				return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
			}
			return TaskRef{Completed: true, TaskNum: num}, args[1:], nil
		}

		if len(first) == 1 {
			if len(args) < 2 {
				return TaskRef{}, nil, ErrTaskRefRequired
			}
			if isAllDigits(args[1]) {
				num, err := strconv.Atoi(args[1])
				if err != nil {
					return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", args[1])
				}
				return TaskRef{Completed: true, TaskNum: num}, args[2:], nil
			}
		}
	}

	return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
