// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

const (
	// ListSeparator is the separator line around a filter header.
	ListSeparator = "------------"

	// EmptyText is printed when no task matches the current view.
	EmptyText = "No tasks yet"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {TEXT}\n" (4-wide right-aligned number, two spaces, checkbox, text)
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(t.IsCompleted), normalizeText(t.Text))
}

// FormatFilterHeader formats the header printed above a filtered view.
func FormatFilterHeader(w io.Writer, mode task.FilterMode) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, mode.Label())
	fmt.Fprintln(w, ListSeparator)
}

// FormatActiveCount formats the remaining-tasks counter.
func FormatActiveCount(w io.Writer, n int) {
	fmt.Fprintln(w, ActiveCountText(n))
}

// ActiveCountText returns "N active task(s) remaining" with the noun pluralized.
func ActiveCountText(n int) string {
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d active %s remaining", n, noun)
}

// Checkbox renders a completion flag.
func Checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// normalizeText normalizes a task text for single-line display.
// Newlines are replaced with spaces.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return text
}
