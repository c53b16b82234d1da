package viewmodel

import (
	"iter"
	"slices"

	"taskpad/internal/service"
)

// OngoingView yields incomplete tasks, oldest first.
// Every range over the sequence takes a fresh snapshot of the collection.
func (vm *ViewModel) OngoingView() iter.Seq[service.Task] {
	return func(yield func(service.Task) bool) {
		for _, t := range Ongoing(vm.Tasks()) {
			if !yield(t) {
				return
			}
		}
	}
}

// CompletedView yields completed tasks, newest first.
// Every range over the sequence takes a fresh snapshot of the collection.
func (vm *ViewModel) CompletedView() iter.Seq[service.Task] {
	return func(yield func(service.Task) bool) {
		for _, t := range Completed(vm.Tasks()) {
			if !yield(t) {
				return
			}
		}
	}
}

// Ongoing returns the incomplete tasks of tasks sorted by CreatedAt
// ascending. Ties keep input order. The input is not modified.
func Ongoing(tasks []service.Task) []service.Task {
	out := filter(tasks, false)
	slices.SortStableFunc(out, func(a, b service.Task) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}

// Completed returns the completed tasks of tasks sorted by CreatedAt
// descending. Ties keep input order. The input is not modified.
func Completed(tasks []service.Task) []service.Task {
	out := filter(tasks, true)
	slices.SortStableFunc(out, func(a, b service.Task) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func filter(tasks []service.Task, completed bool) []service.Task {
	var out []service.Task
	for _, t := range tasks {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out
}
