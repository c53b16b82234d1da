// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskpad/internal/service"
)

const (
	// SectionSeparator is the separator line around section headers.
	SectionSeparator = "------------"

	// DateLayout renders a timestamp as "d Mon yyyy HH:MM".
	DateLayout = "2 Jan 2006 15:04"
)

// FormatDate renders t in loc using DateLayout. A nil loc means local time.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// FormatTask formats a task row.
// Format: "{REF:>4}  {TITLE}  {DATE}\n"
func FormatTask(w io.Writer, ref string, task service.Task, loc *time.Location) {
	fmt.Fprintf(w, "%4s  %s  %s\n", ref, NormalizeTitle(task.Title), FormatDate(task.CreatedAt, loc))
}

// FormatSectionHeader formats a section header.
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, SectionSeparator)
}

// FormatEmpty prints the placeholder for an empty section, e.g. "no ongoing tasks".
func FormatEmpty(w io.Writer, section string) {
	fmt.Fprintf(w, "no %s tasks\n", strings.ToLower(section))
}

// FormatDetail prints every field of a task, one per line.
func FormatDetail(w io.Writer, task service.Task, loc *time.Location) {
	status := "ongoing"
	if task.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "id:       %s\n", task.ID)
	fmt.Fprintf(w, "title:    %s\n", NormalizeTitle(task.Title))
	fmt.Fprintf(w, "status:   %s\n", status)
	fmt.Fprintf(w, "created:  %s\n", FormatDate(task.CreatedAt, loc))
	if !task.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "updated:  %s\n", FormatDate(task.UpdatedAt, loc))
	}
}

// NormalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
