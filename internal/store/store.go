// Package store persists the normalized chapter list as chapters.json, the
// file the static site and the workflow tool read directly.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/montafon/moonlight/internal/entities"
)

// ErrEmptyCommit indicates an attempt to persist zero chapters. The store
// refuses it unconditionally; an importer bug must never be able to blank
// the live chapter list.
var ErrEmptyCommit = errors.New("refusing to write an empty chapter list")

// ChapterStore reads and writes the chapters.json file. Save backs up the
// previous file before overwriting, so one bad commit is always recoverable.
type ChapterStore struct {
	path         string
	backupSuffix string

	mu sync.Mutex
}

func New(path, backupSuffix string) *ChapterStore {
	if backupSuffix == "" {
		backupSuffix = ".bak"
	}
	return &ChapterStore{path: path, backupSuffix: backupSuffix}
}

// Path returns the location of the persisted chapter list.
func (s *ChapterStore) Path() string {
	return s.path
}

// Load reads the persisted chapter list. A missing file is an empty list,
// not an error, so a fresh checkout works without setup.
func (s *ChapterStore) Load() ([]entities.Chapter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var chapters []entities.Chapter
	if err := json.Unmarshal(data, &chapters); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	// Chapter numbers are positional, not persisted.
	for i := range chapters {
		chapters[i].Number = i + 1
	}

	return chapters, nil
}

// Save commits a new chapter list. The previous file, if any, is copied to a
// backup sibling first.
func (s *ChapterStore) Save(chapters []entities.Chapter) error {
	if len(chapters) == 0 {
		return ErrEmptyCommit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backup(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(chapters, "", "  ")
	if err != nil {
		return fmt.Errorf("encode chapters: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	return nil
}

// backup copies the current file to its backup sibling. No current file is
// fine; that just means a first commit.
func (s *ChapterStore) backup() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s for backup: %w", s.path, err)
	}

	backupPath := s.path + s.backupSuffix
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return fmt.Errorf("write backup %s: %w", backupPath, err)
	}

	return nil
}
