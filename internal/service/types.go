// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TaskID is an opaque, server-assigned task identifier.
// The wire form may be a JSON number or a JSON string; both are kept as text.
type TaskID string

// String returns the ID as it appears in URLs and output.
func (id TaskID) String() string { return string(id) }

// UnmarshalJSON accepts both numeric and string IDs.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("task id: missing")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("task id: %w", err)
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	*id = TaskID(n.String())
	return nil
}

// Task represents a single task item.
type Task struct {
	ID        TaskID
	Title     string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time // zero if the server did not send one
}

// taskJSON is the wire shape of a task.
type taskJSON struct {
	ID        TaskID `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// timestampLayouts are tried in order. Zone-less layouts are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses an ISO-8601 timestamp as sent by the Task API.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp: %q", s)
}

// UnmarshalJSON decodes the wire form of a task.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w taskJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	created, err := ParseTimestamp(w.CreatedAt)
	if err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	var updated time.Time
	if w.UpdatedAt != "" {
		updated, err = ParseTimestamp(w.UpdatedAt)
		if err != nil {
			return fmt.Errorf("updated_at: %w", err)
		}
	}
	*t = Task{
		ID:        w.ID,
		Title:     w.Title,
		Completed: w.Completed,
		CreatedAt: created,
		UpdatedAt: updated,
	}
	return nil
}

// MarshalJSON encodes a task in its wire form. Timestamps are RFC 3339.
func (t Task) MarshalJSON() ([]byte, error) {
	w := taskJSON{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.Format(time.RFC3339Nano),
	}
	if !t.UpdatedAt.IsZero() {
		w.UpdatedAt = t.UpdatedAt.Format(time.RFC3339Nano)
	}
	return json.Marshal(w)
}
