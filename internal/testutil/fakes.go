// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"todo/internal/expand"
	"todo/internal/kv"
)

// MemoryStorage is an in-memory kv.Storage for testing.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int

	// Error injection for testing
	GetErr error
	SetErr error
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

// Put seeds a raw value without counting it as a write.
func (m *MemoryStorage) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = []byte(value)
}

// Value returns the raw stored value for key.
func (m *MemoryStorage) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return string(v), ok
}

// Writes returns the number of successful Set calls.
func (m *MemoryStorage) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Get implements kv.Storage.
func (m *MemoryStorage) Get(key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set implements kv.Storage.
func (m *MemoryStorage) Set(key string, value []byte) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	m.writes++
	return nil
}

// FakeGenerator is a scripted expand.Generator for testing.
type FakeGenerator struct {
	mu       sync.Mutex
	requests []expand.Request

	// Response is returned as the raw body when Err is nil.
	Response string

	// Err is returned instead of a body when set.
	Err error

	// Block, when non-nil, makes Generate wait until it is closed.
	Block chan struct{}

	// Started, when non-nil, receives one value as each call begins.
	Started chan struct{}
}

// Generate implements expand.Generator.
func (f *FakeGenerator) Generate(ctx context.Context, req expand.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.Started != nil {
		f.Started <- struct{}{}
	}
	if f.Block != nil {
		<-f.Block
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

// Requests returns the requests received so far.
func (f *FakeGenerator) Requests() []expand.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]expand.Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// Calls returns the number of Generate calls.
func (f *FakeGenerator) Calls() int {
	return len(f.Requests())
}
