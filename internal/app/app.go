// Package app is the single owner of the task store and the expansion gateway.
// Presentation layers forward user intents here instead of touching the store.
package app

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"todo/internal/expand"
	"todo/internal/store"
	"todo/internal/task"
)

// ErrGenerationInFlight is returned when a generation is started while another
// one is still outstanding. The second request is dropped, not queued.
var ErrGenerationInFlight = errors.New("generation already in progress")

// Expander turns a goal into task texts. *expand.Gateway implements it.
type Expander interface {
	Expand(ctx context.Context, goal string) []string
}

var _ Expander = (*expand.Gateway)(nil)

// App owns a Store and an Expander and enforces that at most one
// generation is in flight.
type App struct {
	store      *store.Store
	expander   Expander
	generating atomic.Bool
}

// New creates an App over an already loaded store.
func New(s *store.Store, e Expander) *App {
	return &App{store: s, expander: e}
}

// Tasks returns all tasks, most recent first.
func (a *App) Tasks() []task.Task {
	return a.store.Tasks()
}

// View returns the tasks visible under mode.
func (a *App) View(mode task.FilterMode) []task.Task {
	return task.Filter(a.store.Tasks(), mode)
}

// ActiveCount returns the number of tasks not yet completed.
func (a *App) ActiveCount() int {
	return task.ActiveCount(a.store.Tasks())
}

// Generating reports whether a generation is in flight.
func (a *App) Generating() bool {
	return a.generating.Load()
}

// Submit adds text as a task. Text is trimmed; blank text and submissions
// made while a generation is in flight are dropped (ok is false).
func (a *App) Submit(text string) (t task.Task, ok bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" || a.Generating() {
		return task.Task{}, false, nil
	}
	t, err = a.store.Add(text)
	return t, true, err
}

// BeginGenerate claims the in-flight flag. It returns false if a generation
// is already outstanding.
func (a *App) BeginGenerate() bool {
	return a.generating.CompareAndSwap(false, true)
}

// FinishGenerate adds the expanded texts as one block and clears the in-flight
// flag. It must follow a successful BeginGenerate.
func (a *App) FinishGenerate(texts []string) ([]task.Task, error) {
	defer a.generating.Store(false)
	return a.store.AddMany(texts)
}

// Expand runs the expander for goal. It does not touch the store, so it may
// run on another goroutine between BeginGenerate and FinishGenerate.
func (a *App) Expand(ctx context.Context, goal string) []string {
	return a.expander.Expand(ctx, strings.TrimSpace(goal))
}

// Generate expands goal and adds the resulting tasks. Blank goals are a no-op.
// A call made while another generation is outstanding returns
// ErrGenerationInFlight without side effects.
func (a *App) Generate(ctx context.Context, goal string) ([]task.Task, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, nil
	}
	if !a.BeginGenerate() {
		return nil, ErrGenerationInFlight
	}

	texts := a.expander.Expand(ctx, goal)
	return a.FinishGenerate(texts)
}

// Toggle flips completion of the task with id. Absent ids are a no-op.
func (a *App) Toggle(id string) error {
	return a.store.Toggle(id)
}

// Remove deletes the task with id. Absent ids are a no-op.
func (a *App) Remove(id string) error {
	return a.store.Remove(id)
}
