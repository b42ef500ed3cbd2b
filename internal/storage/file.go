package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileSlot keeps every key in its own JSON file under dir. Writes go to a
// temporary file first and are renamed into place, so a crash mid-write
// leaves the previous payload intact.
type FileSlot struct {
	mu  sync.RWMutex
	dir string
}

func NewFileSlot(dir string) (*FileSlot, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileSlot{dir: dir}, nil
}

func (s *FileSlot) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return b, nil
}

func (s *FileSlot) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	_, err = tmp.Write(value)
	if err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	err = tmp.Sync()
	if err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync slot %q: %w", key, err)
	}
	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("failed to close slot %q: %w", key, err)
	}

	err = os.Rename(tmpName, s.path(key))
	if err != nil {
		return fmt.Errorf("failed to replace slot %q: %w", key, err)
	}
	return nil
}

func (s *FileSlot) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete slot %q: %w", key, err)
	}
	return nil
}

func (s *FileSlot) Close() error {
	return nil
}

var fileNameReplacer = strings.NewReplacer(":", ".", "/", "_", "\\", "_")

func (s *FileSlot) path(key string) string {
	return filepath.Join(s.dir, fileNameReplacer.Replace(key)+".json")
}
