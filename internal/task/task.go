// Package task defines the to-do entry and the filter view over a task list.
package task

import (
	"fmt"
	"strings"
)

// Task represents a single to-do entry.
// The JSON shape is the persisted snapshot format.
type Task struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
	CreatedAt   int64  `json:"createdAt"` // Unix milliseconds
}

// FilterMode selects which tasks are displayed.
type FilterMode string

const (
	All       FilterMode = "ALL"
	Active    FilterMode = "ACTIVE"
	Completed FilterMode = "COMPLETED"
)

// Modes lists the filter modes in display order.
var Modes = []FilterMode{All, Active, Completed}

// ParseFilterMode parses a filter name, case-insensitive and trimmed.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(strings.ToUpper(strings.TrimSpace(s))) {
	case All:
		return All, nil
	case Active:
		return Active, nil
	case Completed:
		return Completed, nil
	}
	return "", fmt.Errorf("invalid filter: %s (want all, active or completed)", s)
}

// Next returns the mode after m in display order, wrapping around.
func (m FilterMode) Next() FilterMode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return All
}

// Label returns the capitalized display name ("All", "Active", "Completed").
func (m FilterMode) Label() string {
	s := string(m)
	if s == "" {
		return ""
	}
	return s[:1] + strings.ToLower(s[1:])
}
