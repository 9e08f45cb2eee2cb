package kv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorage_GetMissing(t *testing.T) {
	s := NewFileStorage(t.TempDir())

	_, err := s.Get("todo-app-data")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStorage_SetThenGet(t *testing.T) {
	s := NewFileStorage(filepath.Join(t.TempDir(), "nested"))

	if err := s.Set("todo-app-data", []byte(`[]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set("todo-app-data", []byte(`[{"id":"x"}]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.Get("todo-app-data")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `[{"id":"x"}]` {
		t.Errorf("expected overwritten value, got %q", got)
	}
}

func TestFileStorage_FileMode(t *testing.T) {
	s := NewFileStorage(t.TempDir())
	if err := s.Set("k", []byte("v")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(s.Path("k"))
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %o", info.Mode().Perm())
	}
}

func TestFileStorage_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStorage(dir)
	if err := s.Set("k", []byte("v")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "k.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only k.json, got %v", names)
	}
}

func TestFileStorage_InvalidKey(t *testing.T) {
	s := NewFileStorage(t.TempDir())

	for _, key := range []string{"", "../escape", "a/b", "has space"} {
		if err := s.Set(key, []byte("v")); err == nil {
			t.Errorf("Set(%q): expected error", key)
		}
		if _, err := s.Get(key); err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q): expected invalid key error, got %v", key, err)
		}
	}
}
