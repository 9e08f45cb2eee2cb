// Package kv stores named snapshot entries as whole values.
package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("not found")

// Storage is a flat key-value store. Set replaces the whole value.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileStorage keeps each key in <Dir>/<key>.json.
type FileStorage struct {
	Dir string
}

// NewFileStorage returns a FileStorage rooted at dir.
// The directory is created on first write.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{Dir: dir}
}

// Path returns the file path backing key.
func (s *FileStorage) Path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

// Get returns the stored value for key.
func (s *FileStorage) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Set overwrites the value for key. The write goes through a temp file in the
// same directory and a rename, so readers never see a partial value.
func (s *FileStorage) Set(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, s.Path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func checkKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid key: %q", key)
	}
	return nil
}
