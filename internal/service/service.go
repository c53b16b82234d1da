// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for the remote Task API.
// All HTTP calls go through this interface.
// The view-model and commands never talk to the transport directly.
type Service interface {
	// ListTasks returns the full task collection in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, id TaskID) (Task, error)

	// CreateTask creates a task with the given title.
	// Returns the server's representation, including the assigned ID and
	// creation time.
	CreateTask(ctx context.Context, title string) (Task, error)

	// UpdateTask replaces the title and completion flag of a task.
	// Returns the server's representation after the update.
	UpdateTask(ctx context.Context, id TaskID, title string, completed bool) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id TaskID) error
}
