package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/viewmodel"
)

// parseRef parses the leading task reference, reporting a user error on failure.
func parseRef(args []string, errOut io.Writer) (TaskRef, []string, int) {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return TaskRef{}, nil, exitcode.UserError
	}
	if ref.TaskNum < 1 {
		fmt.Fprintf(errOut, "error: task number out of range: %s\n", ref)
		return TaskRef{}, nil, exitcode.UserError
	}
	return ref, rest, exitcode.Success
}

// loadTasks builds a view-model over svc and loads the collection.
func loadTasks(ctx context.Context, cfg *config.Config, svc service.Service, errOut io.Writer) (*viewmodel.ViewModel, int) {
	vm := viewmodel.New(svc, cfg.Log())
	if err := vm.LoadAll(ctx); err != nil {
		return nil, backendError(errOut, err)
	}
	return vm, exitcode.Success
}

// findTask returns the task ref points at in the current views.
func findTask(vm *viewmodel.ViewModel, ref TaskRef) (service.Task, error) {
	tasks := vm.Tasks()
	view := viewmodel.Ongoing(tasks)
	if ref.Completed {
		view = viewmodel.Completed(tasks)
	}
	if ref.TaskNum < 1 || ref.TaskNum > len(view) {
		return service.Task{}, fmt.Errorf("task number out of range: %s", ref)
	}
	return view[ref.TaskNum-1], nil
}

// lookupRef loads the collection and resolves ref against it.
func lookupRef(ctx context.Context, cfg *config.Config, svc service.Service, ref TaskRef, errOut io.Writer) (*viewmodel.ViewModel, service.Task, int) {
	vm, code := loadTasks(ctx, cfg, svc, errOut)
	if code != exitcode.Success {
		return nil, service.Task{}, code
	}
	task, err := findTask(vm, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, service.Task{}, exitcode.UserError
	}
	return vm, task, exitcode.Success
}

func backendError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.BackendError
}

func printOK(cfg *config.Config, out io.Writer) {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
}
