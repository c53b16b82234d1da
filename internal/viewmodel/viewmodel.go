// Package viewmodel holds the client-side state of the task list: the
// collection mirrored from the Task API, the draft being composed or edited,
// the loading flag and the last error.
//
// Every mutation is pessimistic. The collection changes only after the API
// confirms, and it then takes the server's representation verbatim. A
// failure leaves the collection untouched and is recorded as the last error.
//
// A ViewModel is safe for concurrent use. Its lock is never held across an
// API call, so overlapping operations each apply their own result when they
// complete (last writer wins).
package viewmodel

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"taskpad/internal/service"
)

const tracerName = "taskpad/internal/viewmodel"

// ViewModel mediates all task operations through a service.Service.
type ViewModel struct {
	api    service.Service
	logger *slog.Logger
	tracer trace.Tracer

	mu      sync.Mutex
	tasks   []service.Task
	mode    Mode
	draft   string
	loading int
	lastErr *OpError
}

// New creates an empty ViewModel. Call LoadAll to populate it.
func New(api service.Service, logger *slog.Logger) *ViewModel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ViewModel{
		api:    api,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

// LoadAll replaces the collection with the server's. On failure the previous
// collection is kept. A success clears the last error.
func (vm *ViewModel) LoadAll(ctx context.Context) error {
	ctx, span := vm.tracer.Start(ctx, "viewmodel.load")
	defer span.End()

	vm.mu.Lock()
	vm.loading++
	vm.mu.Unlock()

	tasks, err := vm.api.ListTasks(ctx)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.loading--
	if err != nil {
		return vm.failLocked(span, LoadFailure, err)
	}
	vm.tasks = dedupe(tasks)
	vm.lastErr = nil

	span.SetAttributes(attribute.Int("tasks.count", len(vm.tasks)))
	vm.logger.Debug("tasks_loaded", slog.Int("count", len(vm.tasks)))
	return nil
}

// Add creates a task. A blank title is ignored without calling the API.
// On success the new task is appended and the draft is cleared.
func (vm *ViewModel) Add(ctx context.Context, title string) error {
	if strings.TrimSpace(title) == "" {
		return nil
	}

	ctx, span := vm.tracer.Start(ctx, "viewmodel.add")
	defer span.End()

	task, err := vm.api.CreateTask(ctx, title)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err != nil {
		return vm.failLocked(span, AddFailure, err)
	}
	if i := vm.indexLocked(task.ID); i >= 0 {
		vm.tasks[i] = task
	} else {
		vm.tasks = append(vm.tasks, task)
	}
	vm.draft = ""

	span.SetAttributes(attribute.String("task.id", task.ID.String()))
	vm.logger.Debug("task_added", slog.String("id", task.ID.String()))
	return nil
}

// BeginEdit switches to Editing mode for task and loads its title into the draft.
func (vm *ViewModel) BeginEdit(task service.Task) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.mode = Editing(task.ID)
	vm.draft = task.Title
}

// CancelEdit returns to Composing mode with an empty draft.
func (vm *ViewModel) CancelEdit() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.mode = Composing()
	vm.draft = ""
}

// CommitEdit saves the draft as the edited task's title. The task's
// completion flag is sent unchanged.
//
// It does nothing when not editing, when the draft is blank, or when the
// edited task is no longer in the collection.
func (vm *ViewModel) CommitEdit(ctx context.Context) error {
	vm.mu.Lock()
	mode, title := vm.mode, vm.draft
	id, editing := mode.TaskID()
	current, found := vm.lookupLocked(id)
	vm.mu.Unlock()

	if !editing || strings.TrimSpace(title) == "" {
		return nil
	}
	if !found {
		vm.logger.Debug("edit_target_missing", slog.String("id", id.String()))
		return nil
	}

	ctx, span := vm.tracer.Start(ctx, "viewmodel.update",
		trace.WithAttributes(attribute.String("task.id", id.String())))
	defer span.End()

	updated, err := vm.api.UpdateTask(ctx, id, title, current.Completed)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err != nil {
		return vm.failLocked(span, UpdateFailure, err)
	}
	vm.replaceLocked(updated)
	if vm.mode == mode {
		vm.mode = Composing()
		vm.draft = ""
	}

	vm.logger.Debug("task_updated", slog.String("id", id.String()))
	return nil
}

// Submit is the form action: CommitEdit while editing, otherwise Add with
// the current draft.
func (vm *ViewModel) Submit(ctx context.Context) error {
	vm.mu.Lock()
	mode, draft := vm.mode, vm.draft
	vm.mu.Unlock()

	if mode.IsEditing() {
		return vm.CommitEdit(ctx)
	}
	return vm.Add(ctx, draft)
}

// ToggleComplete flips the completion flag of the task with id, keeping its
// title. It does nothing if id is not in the collection.
func (vm *ViewModel) ToggleComplete(ctx context.Context, id service.TaskID) error {
	vm.mu.Lock()
	current, found := vm.lookupLocked(id)
	vm.mu.Unlock()

	if !found {
		vm.logger.Debug("toggle_target_missing", slog.String("id", id.String()))
		return nil
	}

	ctx, span := vm.tracer.Start(ctx, "viewmodel.toggle",
		trace.WithAttributes(
			attribute.String("task.id", id.String()),
			attribute.Bool("task.completed", !current.Completed),
		))
	defer span.End()

	updated, err := vm.api.UpdateTask(ctx, id, current.Title, !current.Completed)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err != nil {
		return vm.failLocked(span, ToggleFailure, err)
	}
	vm.replaceLocked(updated)

	vm.logger.Debug("task_toggled",
		slog.String("id", id.String()),
		slog.Bool("completed", updated.Completed),
	)
	return nil
}

// Remove deletes the task with id and drops it from the collection.
func (vm *ViewModel) Remove(ctx context.Context, id service.TaskID) error {
	ctx, span := vm.tracer.Start(ctx, "viewmodel.delete",
		trace.WithAttributes(attribute.String("task.id", id.String())))
	defer span.End()

	err := vm.api.DeleteTask(ctx, id)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err != nil {
		return vm.failLocked(span, DeleteFailure, err)
	}
	if i := vm.indexLocked(id); i >= 0 {
		vm.tasks = slices.Delete(vm.tasks, i, i+1)
	}

	vm.logger.Debug("task_removed", slog.String("id", id.String()))
	return nil
}

// SetDraft replaces the draft title.
func (vm *ViewModel) SetDraft(title string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.draft = title
}

// Draft returns the draft title.
func (vm *ViewModel) Draft() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.draft
}

// Mode returns the current mode.
func (vm *ViewModel) Mode() Mode {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.mode
}

// Tasks returns a copy of the collection in server order.
func (vm *ViewModel) Tasks() []service.Task {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return slices.Clone(vm.tasks)
}

// Lookup returns the task with id.
func (vm *ViewModel) Lookup(id service.TaskID) (service.Task, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.lookupLocked(id)
}

// IsLoading reports whether a LoadAll is in flight.
func (vm *ViewModel) IsLoading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loading > 0
}

// LastError returns the message of the last failure, or "".
func (vm *ViewModel) LastError() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.lastErr == nil {
		return ""
	}
	return vm.lastErr.Error()
}

// Err returns the last failure, or nil.
func (vm *ViewModel) Err() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.lastErr == nil {
		return nil
	}
	return vm.lastErr
}

// ClearError forgets the last failure.
func (vm *ViewModel) ClearError() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.lastErr = nil
}

func (vm *ViewModel) failLocked(span trace.Span, kind Kind, err error) error {
	opErr := &OpError{Kind: kind, Err: err}
	vm.lastErr = opErr

	span.RecordError(err)
	span.SetStatus(codes.Error, opErr.Error())
	vm.logger.Info("op_failed",
		slog.String("op", kind.String()),
		slog.String("error", err.Error()),
	)
	return opErr
}

func (vm *ViewModel) indexLocked(id service.TaskID) int {
	return slices.IndexFunc(vm.tasks, func(t service.Task) bool { return t.ID == id })
}

func (vm *ViewModel) lookupLocked(id service.TaskID) (service.Task, bool) {
	if i := vm.indexLocked(id); i >= 0 {
		return vm.tasks[i], true
	}
	return service.Task{}, false
}

// replaceLocked swaps in the server's copy of a task. A task removed while
// the request was in flight stays removed.
func (vm *ViewModel) replaceLocked(task service.Task) {
	if i := vm.indexLocked(task.ID); i >= 0 {
		vm.tasks[i] = task
	}
}

// dedupe keeps the first position of each ID and the last value seen for it.
func dedupe(tasks []service.Task) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	pos := make(map[service.TaskID]int, len(tasks))
	for _, t := range tasks {
		if i, ok := pos[t.ID]; ok {
			out[i] = t
			continue
		}
		pos[t.ID] = len(out)
		out = append(out, t)
	}
	return out
}
