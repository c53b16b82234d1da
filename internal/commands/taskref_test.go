package commands

import (
	"errors"
	"testing"
)

func TestParseTaskRef_Ongoing(t *testing.T) {
	ref, rest, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Completed {
		t.Error("expected Completed to be false")
	}
	if ref.TaskNum != 5 {
		t.Errorf("expected TaskNum 5, got %d", ref.TaskNum)
	}
	if len(rest) != 0 {
		t.Errorf("expected no remaining args, got %v", rest)
	}
}

func TestParseTaskRef_CompletedCombined(t *testing.T) {
	ref, _, err := ParseTaskRef([]string{"c12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.Completed {
		t.Error("expected Completed to be true")
	}
	if ref.TaskNum != 12 {
		t.Errorf("expected TaskNum 12, got %d", ref.TaskNum)
	}
}

func TestParseTaskRef_CompletedSeparated(t *testing.T) {
	ref, rest, err := ParseTaskRef([]string{"c", "3", "new", "title"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.Completed || ref.TaskNum != 3 {
		t.Errorf("expected c3, got %s", ref)
	}
	if len(rest) != 2 || rest[0] != "new" || rest[1] != "title" {
		t.Errorf("expected remaining [new title], got %v", rest)
	}
}

func TestParseTaskRef_ReturnsRemainingArgs(t *testing.T) {
	ref, rest, err := ParseTaskRef([]string{"2", "Buy", "bread"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.TaskNum != 2 {
		t.Errorf("expected TaskNum 2, got %d", ref.TaskNum)
	}
	if len(rest) != 2 {
		t.Errorf("expected 2 remaining args, got %v", rest)
	}
}

func TestParseTaskRef_NoArgs_Error(t *testing.T) {
	_, _, err := ParseTaskRef([]string{})
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_PrefixOnly_Error(t *testing.T) {
	_, _, err := ParseTaskRef([]string{"c"})
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_Invalid(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"abc"}, "invalid task reference: abc"},
		{[]string{"a1"}, "invalid task reference: a1"},
		{[]string{"c", "x"}, "invalid task reference: c"},
		{[]string{"cx"}, "invalid task reference: cx"},
		{[]string{"-1"}, "invalid task reference: -1"},
		{[]string{"1.5"}, "invalid task reference: 1.5"},
		{[]string{"٣"}, "invalid task reference: ٣"},
	}

	for _, tt := range tests {
		_, _, err := ParseTaskRef(tt.args)
		if err == nil {
			t.Errorf("ParseTaskRef(%v): expected error", tt.args)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("ParseTaskRef(%v): expected %q, got %q", tt.args, tt.want, err.Error())
		}
	}
}

func TestTaskRefString(t *testing.T) {
	if got := (TaskRef{TaskNum: 4}).String(); got != "4" {
		t.Errorf("expected 4, got %q", got)
	}
	if got := (TaskRef{Completed: true, TaskNum: 4}).String(); got != "c4" {
		t.Errorf("expected c4, got %q", got)
	}
}
