// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskpad/internal/service"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("not found")

// BaseTime is the creation time of the first task created by a fake.
// Each subsequent task is created one minute later.
var BaseTime = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.Mutex
	tasks []service.Task
	next  time.Time
	calls map[string]int

	// Error injection for testing
	ListTasksErr  error
	GetTaskErr    error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// BeforeReturn, if set, runs after a call has been applied and before it
	// returns. Tests use it to interleave operations.
	BeforeReturn func(method string)
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		next:  BaseTime,
		calls: make(map[string]int),
	}
}

// Seed adds tasks as-is, as though they already existed on the server.
func (f *FakeService) Seed(tasks ...service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, tasks...)
}

// AddTask adds a task with a generated ID and returns it.
func (f *FakeService) AddTask(title string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.newTaskLocked(title)
	t.Completed = completed
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a copy of the server-side collection.
func (f *FakeService) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.tasks)
}

// Calls returns how many times method was invoked, failed calls included.
func (f *FakeService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// TotalCalls returns the number of calls across all methods.
func (f *FakeService) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *FakeService) newTaskLocked(title string) service.Task {
	t := service.Task{
		ID:        service.TaskID(uuid.NewString()),
		Title:     title,
		CreatedAt: f.next,
		UpdatedAt: f.next,
	}
	f.next = f.next.Add(time.Minute)
	return t
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

func (f *FakeService) done(method string) {
	if f.BeforeReturn != nil {
		f.BeforeReturn(method)
	}
}

func (f *FakeService) indexLocked(id service.TaskID) int {
	return slices.IndexFunc(f.tasks, func(t service.Task) bool { return t.ID == id })
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	tasks := f.Tasks()
	f.done("ListTasks")
	return tasks, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id service.TaskID) (service.Task, error) {
	f.record("GetTask")
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.Lock()
	i := f.indexLocked(id)
	var t service.Task
	if i >= 0 {
		t = f.tasks[i]
	}
	f.mu.Unlock()
	if i < 0 {
		return service.Task{}, ErrNotFound
	}
	f.done("GetTask")
	return t, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title string) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	t := f.newTaskLocked(title)
	f.tasks = append(f.tasks, t)
	f.mu.Unlock()
	f.done("CreateTask")
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id service.TaskID, title string, completed bool) (service.Task, error) {
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	i := f.indexLocked(id)
	if i < 0 {
		f.mu.Unlock()
		return service.Task{}, ErrNotFound
	}
	f.tasks[i].Title = title
	f.tasks[i].Completed = completed
	f.tasks[i].UpdatedAt = f.tasks[i].UpdatedAt.Add(time.Second)
	t := f.tasks[i]
	f.mu.Unlock()
	f.done("UpdateTask")
	return t, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id service.TaskID) error {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	i := f.indexLocked(id)
	if i < 0 {
		f.mu.Unlock()
		return ErrNotFound
	}
	f.tasks = slices.Delete(f.tasks, i, i+1)
	f.mu.Unlock()
	f.done("DeleteTask")
	return nil
}
