// Package jsonstore keeps named collections as JSON array files in a directory.
//
// Each collection lives in <dir>/<name>.json. Writes go to a temporary file that
// is renamed over the target, so a crash leaves either the old or the new file.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ganot/activitylog/internal/repository"
)

// Store implements activity.Repository on top of the file system.
type Store struct {
	dir string
	mu  sync.Mutex // protects concurrent writes to the same directory
}

// New creates the data directory if needed and returns a Store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonstore: failed to create directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory collections are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// LoadCollection reads the named collection. It returns repository.ErrNotFound
// when the file does not exist and repository.ErrCorrupt when it is not a JSON array.
func (s *Store) LoadCollection(_ context.Context, name string) ([]json.RawMessage, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	data, err := os.ReadFile(path)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("jsonstore: collection %q: %w", name, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("jsonstore: failed to read %s: %w", path, err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("jsonstore: collection %q: %w: %v", name, repository.ErrCorrupt, err)
	}
	return items, nil
}

// SaveCollection replaces the named collection with items.
func (s *Store) SaveCollection(_ context.Context, name string, items []json.RawMessage) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if items == nil {
		items = []json.RawMessage{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonstore: failed to encode %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("jsonstore: failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("jsonstore: failed to replace %s: %w", path, err)
	}
	return nil
}

func (s *Store) path(name string) (string, error) {
	name = strings.TrimSuffix(name, ".json")
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("jsonstore: %q: %w", name, repository.ErrInvalidName)
	}
	return filepath.Join(s.dir, name+".json"), nil
}
