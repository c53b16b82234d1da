package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:      t.TempDir(),
		BaseURL:  config.DefaultBaseURL,
		Timeout:  config.DefaultTimeout,
		Quiet:    quiet,
		Location: time.UTC,
	}

	// A nil *FakeService must reach the command as a nil interface.
	var s service.Service
	if svc != nil {
		s = svc
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, s, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// seededService holds two ongoing tasks (A, B) and two completed ones
// (C, D). Listed, they are 1=A 2=B c1=C c2=D.
func seededService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.Seed(
		service.Task{ID: "1", Title: "A", CreatedAt: at("2024-01-01T10:00:00Z")},
		service.Task{ID: "2", Title: "B", CreatedAt: at("2024-01-02T10:00:00Z")},
		service.Task{ID: "3", Title: "C", Completed: true, CreatedAt: at("2024-01-03T09:30:00Z"), UpdatedAt: at("2024-01-04T12:00:00Z")},
		service.Task{ID: "4", Title: "D", Completed: true, CreatedAt: at("2023-12-31T08:00:00Z")},
	)
	return svc
}

func findTask(t *testing.T, svc *testutil.FakeService, id service.TaskID) (service.Task, bool) {
	t.Helper()
	for _, task := range svc.Tasks() {
		if task.ID == id {
			return task, true
		}
	}
	return service.Task{}, false
}

func expectCode(t *testing.T, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("expected exit code %d, got %d", want, got)
	}
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskpad 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "taskpad toggle <ref>", "cN"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

// Tests for list command
func TestListCommand_AllSections(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, seededService(), nil, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_all", stdout)
}

func TestListCommand_Empty(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), nil, false)

	expectCode(t, exitcode.Success, code)
	testutil.GoldenString(t, "list_empty", stdout)
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), nil, true)

	expectCode(t, exitcode.Success, code)
	// Quiet mode drops the placeholders but keeps the headers
	if strings.Contains(stdout, "no ongoing tasks") || strings.Contains(stdout, "no completed tasks") {
		t.Errorf("expected no placeholders in quiet mode, got %q", stdout)
	}
	if !strings.Contains(stdout, "Ongoing") {
		t.Errorf("expected section header, got %q", stdout)
	}
}

func TestListCommand_OngoingOnly(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetSections(true, false)
	stdout, _, code := runCommand(t, cmd, seededService(), nil, false)

	expectCode(t, exitcode.Success, code)
	expected := "------------\nOngoing\n------------\n   1  A  1 Jan 2024 10:00\n   2  B  2 Jan 2024 10:00\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_CompletedOnly(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetSections(false, true)
	stdout, _, code := runCommand(t, cmd, seededService(), nil, false)

	expectCode(t, exitcode.Success, code)
	if strings.Contains(stdout, "Ongoing") {
		t.Errorf("expected no ongoing section, got %q", stdout)
	}
	if !strings.Contains(stdout, "  c2  D  31 Dec 2023 08:00\n") {
		t.Errorf("expected completed rows, got %q", stdout)
	}
}

func TestListCommand_ConflictingFlags(t *testing.T) {
	svc := seededService()
	cmd := &commands.ListCmd{}
	cmd.SetSections(true, true)
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: cannot use both --ongoing and --completed\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.TotalCalls() != 0 {
		t.Errorf("expected no API calls, got %d", svc.TotalCalls())
	}
}

func TestListCommand_BackendError(t *testing.T) {
	svc := seededService()
	svc.ListTasksErr = errors.New("connection refused")
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	expectCode(t, exitcode.BackendError, code)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: failed to fetch tasks: connection refused\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for show command
func TestShowCommand(t *testing.T) {
	svc := seededService()
	stdout, stderr, code := runCommand(t, &commands.ShowCmd{}, svc, []string{"c1"}, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "show_completed", stdout)
	if svc.Calls("GetTask") != 1 {
		t.Errorf("expected one GetTask call, got %d", svc.Calls("GetTask"))
	}
}

func TestShowCommand_OutOfRange(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.ShowCmd{}, seededService(), []string{"5"}, false)

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: task number out of range: 5\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestShowCommand_FetchFails(t *testing.T) {
	svc := seededService()
	svc.GetTaskErr = errors.New("boom")
	_, stderr, code := runCommand(t, &commands.ShowCmd{}, svc, []string{"1"}, false)

	expectCode(t, exitcode.BackendError, code)
	if stderr != "error: failed to fetch task: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := seededService()
	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy", "milk"}, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}

	tasks := svc.Tasks()
	last := tasks[len(tasks)-1]
	if last.Title != "Buy milk" || last.Completed {
		t.Errorf("unexpected new task %+v", last)
	}
	if svc.Calls("ListTasks") != 0 {
		t.Errorf("add should not load the list, got %d ListTasks calls", svc.Calls("ListTasks"))
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.AddCmd{}, seededService(), []string{"x"}, true)

	expectCode(t, exitcode.Success, code)
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestAddCommand_BlankTitle(t *testing.T) {
	for _, args := range [][]string{nil, {"   "}, {"", " "}} {
		svc := seededService()
		_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, args, false)

		expectCode(t, exitcode.UserError, code)
		if stderr != "error: title required\n" {
			t.Errorf("args %q: unexpected stderr %q", args, stderr)
		}
		if svc.TotalCalls() != 0 {
			t.Errorf("args %q: expected no API calls, got %d", args, svc.TotalCalls())
		}
	}
}

func TestAddCommand_BackendError(t *testing.T) {
	svc := seededService()
	svc.CreateTaskErr = errors.New("boom")
	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"x"}, false)

	expectCode(t, exitcode.BackendError, code)
	if stderr != "error: failed to add task: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for edit command
func TestEditCommand(t *testing.T) {
	svc := seededService()
	stdout, _, code := runCommand(t, &commands.EditCmd{}, svc, []string{"2", "Buy", "bread"}, false)

	expectCode(t, exitcode.Success, code)
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
	task, _ := findTask(t, svc, "2")
	if task.Title != "Buy bread" || task.Completed {
		t.Errorf("unexpected task after edit: %+v", task)
	}
}

func TestEditCommand_KeepsCompletion(t *testing.T) {
	svc := seededService()
	_, _, code := runCommand(t, &commands.EditCmd{}, svc, []string{"c", "1", "C2"}, false)

	expectCode(t, exitcode.Success, code)
	task, _ := findTask(t, svc, "3")
	if task.Title != "C2" || !task.Completed {
		t.Errorf("unexpected task after edit: %+v", task)
	}
}

func TestEditCommand_MissingTitle(t *testing.T) {
	svc := seededService()
	_, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"1"}, false)

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: title required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.TotalCalls() != 0 {
		t.Errorf("expected no API calls, got %d", svc.TotalCalls())
	}
}

func TestEditCommand_BackendError(t *testing.T) {
	svc := seededService()
	svc.UpdateTaskErr = errors.New("boom")
	_, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"1", "x"}, false)

	expectCode(t, exitcode.BackendError, code)
	if stderr != "error: failed to update task: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for toggle command
func TestToggleCommand_CompletesOngoing(t *testing.T) {
	svc := seededService()
	stdout, _, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"1"}, false)

	expectCode(t, exitcode.Success, code)
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
	task, _ := findTask(t, svc, "1")
	if !task.Completed || task.Title != "A" {
		t.Errorf("unexpected task after toggle: %+v", task)
	}
}

func TestToggleCommand_ReopensCompleted(t *testing.T) {
	svc := seededService()
	_, _, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"c2"}, false)

	expectCode(t, exitcode.Success, code)
	task, _ := findTask(t, svc, "4")
	if task.Completed {
		t.Errorf("expected D to be ongoing: %+v", task)
	}
}

func TestToggleCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"no ref", nil, "error: task reference required\n"},
		{"zero", []string{"0"}, "error: task number out of range: 0\n"},
		{"out of range", []string{"3"}, "error: task number out of range: 3\n"},
		{"completed out of range", []string{"c9"}, "error: task number out of range: c9\n"},
		{"invalid", []string{"abc"}, "error: invalid task reference: abc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := seededService()
			_, stderr, code := runCommand(t, &commands.ToggleCmd{}, svc, tt.args, false)

			expectCode(t, exitcode.UserError, code)
			if stderr != tt.stderr {
				t.Errorf("expected %q, got %q", tt.stderr, stderr)
			}
			if svc.Calls("UpdateTask") != 0 {
				t.Errorf("expected no update, got %d", svc.Calls("UpdateTask"))
			}
		})
	}
}

func TestToggleCommand_BackendError(t *testing.T) {
	svc := seededService()
	svc.UpdateTaskErr = errors.New("boom")
	_, stderr, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"1"}, false)

	expectCode(t, exitcode.BackendError, code)
	if stderr != "error: failed to update task status: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	svc := seededService()
	stdout, _, code := runCommand(t, &commands.RmCmd{}, svc, []string{"c", "2"}, false)

	expectCode(t, exitcode.Success, code)
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
	if _, ok := findTask(t, svc, "4"); ok {
		t.Error("expected D to be deleted")
	}
	if len(svc.Tasks()) != 3 {
		t.Errorf("expected 3 tasks left, got %d", len(svc.Tasks()))
	}
}

func TestRmCommand_BackendError(t *testing.T) {
	svc := seededService()
	svc.DeleteTaskErr = errors.New("boom")
	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1"}, false)

	expectCode(t, exitcode.BackendError, code)
	if stderr != "error: failed to delete task: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for config command
func TestConfigCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ConfigCmd{}, nil, nil, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"base_url: http://localhost:8000\n", "timeout: 10s\n", "logged_in: false\n"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output, got %q", want, stdout)
		}
	}
	if strings.Contains(stdout, "trace_file") {
		t.Errorf("empty trace_file should be omitted, got %q", stdout)
	}
}

// Tests for the registry
func TestRegistry_Aliases(t *testing.T) {
	aliases := map[string]string{
		"ls":     "list",
		"create": "add",
		"done":   "toggle",
		"delete": "rm",
	}
	for alias, name := range aliases {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %q not registered", alias)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("alias %q resolves to %q, want %q", alias, cmd.Name(), name)
		}
	}
}

func TestRegistry_AllSortedAndUnique(t *testing.T) {
	var names []string
	for _, cmd := range commands.DefaultRegistry.All() {
		names = append(names, cmd.Name())
	}
	want := []string{"add", "config", "edit", "help", "list", "login", "logout", "rm", "show", "toggle", "tui", "version"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, names)
	}
}

func TestRegistry_DuplicateAlias(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.ListCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&commands.ListCmd{}); err == nil {
		t.Error("expected error registering a duplicate command")
	}
	if _, ok := r.Find("add"); ok {
		t.Error("add should not be registered")
	}
}
