// Package prefs persists per-user UI preferences.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/wellywell/orderdesk/internal/view"
)

// VisibilityKey names the column visibility preference in every store.
const VisibilityKey = "orderColumnVisibility"

type Store interface {
	LoadVisibility(ctx context.Context, username string) (view.Visibility, error)
	SaveVisibility(ctx context.Context, username string, v view.Visibility) error
}

// FileStore keeps preferences of all users in one YAML document:
//
//	lan:
//	  orderColumnVisibility:
//	    note: false
type FileStore struct {
	path string
	mu   sync.Mutex
}

type document map[string]map[string]view.Visibility

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("prefs path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// read returns an empty document when the file is missing or unreadable.
func (s *FileStore) read() document {
	doc := document{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warnf("Could not read prefs file %s: %v", s.path, err)
		}
		return doc
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		logger.Warnf("Ignoring unparseable prefs file %s: %v", s.path, err)
		return document{}
	}
	if doc == nil {
		doc = document{}
	}
	return doc
}

// LoadVisibility never fails on missing or broken data: every column is
// visible then.
func (s *FileStore) LoadVisibility(ctx context.Context, username string) (view.Visibility, error) {
	s.mu.Lock()
	doc := s.read()
	s.mu.Unlock()

	return doc[username][VisibilityKey].Merge(), nil
}

func (s *FileStore) SaveVisibility(ctx context.Context, username string, v view.Visibility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	if doc[username] == nil {
		doc[username] = map[string]view.Visibility{}
	}
	doc[username][VisibilityKey] = v

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}
