package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const slotExt = ".json"

// FileBackend stores each key as <dir>/<key>.json, written atomically with a
// temp file + rename. Clear removes every slot file in dir and nothing else.
type FileBackend struct {
	mu  sync.RWMutex
	dir string
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend creates a FileBackend rooted at dir, creating it if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir returns the directory holding the slot files.
func (fb *FileBackend) Dir() string { return fb.dir }

func (fb *FileBackend) slotPath(key string) string {
	return filepath.Join(fb.dir, key+slotExt)
}

func (fb *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	fb.mu.RLock()
	defer fb.mu.RUnlock()

	data, err := os.ReadFile(fb.slotPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, nil
}

func (fb *FileBackend) Set(_ context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()

	path := fb.slotPath(key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write slot tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename slot: %w", err)
	}
	return nil
}

func (fb *FileBackend) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if err := os.Remove(fb.slotPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove slot %s: %w", key, err)
	}
	return nil
}

func (fb *FileBackend) Clear(_ context.Context) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	entries, err := os.ReadDir(fb.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("list store dir: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, slotExt) || strings.HasSuffix(name, slotExt+".tmp")) {
			continue
		}
		if err := os.Remove(filepath.Join(fb.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove slot %s: %w", name, err)
		}
	}
	return nil
}

func (fb *FileBackend) Close() error { return nil }
