// Package store owns the ordered task collection and its persisted snapshot.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"todo/internal/kv"
	"todo/internal/logging"
	"todo/internal/task"
)

// Store holds tasks most-recent-first and mirrors them to a kv.Storage entry.
// Every mutation that changes the collection rewrites the whole snapshot.
//
// A Store is not safe for concurrent use; it is meant to have one owner.
type Store struct {
	kv    kv.Storage
	key   string
	log   *log.Logger
	now   func() time.Time
	newID func() string

	tasks []task.Task
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for snapshot diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the task id source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates an empty store persisting under key. Call Load to read the snapshot.
func New(storage kv.Storage, key string, opts ...Option) *Store {
	s := &Store{
		kv:    storage,
		key:   key,
		log:   logging.Discard(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the snapshot and replaces the in-memory collection with it.
// A missing or malformed snapshot yields an empty collection; malformed
// snapshots are logged, never returned as errors.
func (s *Store) Load() []task.Task {
	s.tasks = nil

	data, err := s.kv.Get(s.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Error("failed to read saved tasks", "key", s.key, "err", err)
		}
		return s.Tasks()
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.log.Error("failed to parse saved tasks", "key", s.key, "err", err)
		return s.Tasks()
	}
	s.tasks = tasks
	return s.Tasks()
}

// Persist serializes the full collection and overwrites the snapshot.
func (s *Store) Persist() error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []task.Task{} // "[]", never "null"
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

// Tasks returns a copy of the collection, most recent first.
func (s *Store) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Find returns the task with the given id.
func (s *Store) Find(id string) (task.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return task.Task{}, false
}

// Add prepends a new task. Blank text leaves the store unchanged and returns
// the zero Task; callers are expected to reject it before calling Add.
// The returned error reports a failed persist; the task is kept in memory.
func (s *Store) Add(text string) (task.Task, error) {
	created, err := s.AddMany([]string{text})
	if len(created) == 0 {
		return task.Task{}, err
	}
	return created[0], err
}

// AddMany prepends one task per text as a single block, keeping the order of
// texts. All tasks share one creation timestamp. Blank texts are skipped.
func (s *Store) AddMany(texts []string) ([]task.Task, error) {
	createdAt := s.now().UnixMilli()

	created := make([]task.Task, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		created = append(created, task.Task{
			ID:        s.newID(),
			Text:      text,
			CreatedAt: createdAt,
		})
	}
	if len(created) == 0 {
		return nil, nil
	}

	tasks := make([]task.Task, 0, len(created)+len(s.tasks))
	tasks = append(tasks, created...)
	tasks = append(tasks, s.tasks...)
	s.tasks = tasks

	return created, s.Persist()
}

// Toggle flips the completion flag of the task with id. Absent ids are a no-op.
func (s *Store) Toggle(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].IsCompleted = !s.tasks[i].IsCompleted
	return s.Persist()
}

// Remove deletes the task with id. Absent ids are a no-op.
func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return s.Persist()
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
