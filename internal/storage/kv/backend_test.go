package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dohr-michael/tasklist/internal/config"
)

// testBackendContract runs the behaviour every Backend must share.
func testBackendContract(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		if _, err := b.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := b.Set(ctx, "tasks", []byte(`[{"id":"a","text":"x"}]`)); err != nil {
			t.Fatal(err)
		}
		got, err := b.Get(ctx, "tasks")
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != `[{"id":"a","text":"x"}]` {
			t.Errorf("got %q", got)
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		if err := b.Set(ctx, "tasks", []byte(`[]`)); err != nil {
			t.Fatal(err)
		}
		got, err := b.Get(ctx, "tasks")
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != `[]` {
			t.Errorf("got %q, want []", got)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := b.Delete(ctx, "tasks"); err != nil {
			t.Fatal(err)
		}
		if _, err := b.Get(ctx, "tasks"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := b.Delete(ctx, "tasks"); err != nil {
			t.Fatalf("deleting an absent key should succeed, got %v", err)
		}
	})

	t.Run("clear erases every key", func(t *testing.T) {
		for _, k := range []string{"tasks", "theme", "other"} {
			if err := b.Set(ctx, k, []byte(k)); err != nil {
				t.Fatal(err)
			}
		}
		if err := b.Clear(ctx); err != nil {
			t.Fatal(err)
		}
		for _, k := range []string{"tasks", "theme", "other"} {
			if _, err := b.Get(ctx, k); !errors.Is(err, ErrNotFound) {
				t.Errorf("%s survived Clear: %v", k, err)
			}
		}
	})

	t.Run("invalid keys", func(t *testing.T) {
		for _, k := range []string{"", "../escape", "a/b", `a\b`} {
			if err := b.Set(ctx, k, []byte("x")); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Set(%q): expected ErrInvalidKey, got %v", k, err)
			}
		}
	})
}

func TestMemoryBackend(t *testing.T) {
	b := NewMemoryBackend()
	defer b.Close()
	testBackendContract(t, b)
}

func TestMemoryBackend_CopiesValues(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	v := []byte("abc")
	if err := b.Set(ctx, "k", v); err != nil {
		t.Fatal(err)
	}
	v[0] = 'z'

	got, _ := b.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller slice: %q", got)
	}
}

func TestMemoryBackend_Closed(t *testing.T) {
	b := NewMemoryBackend()
	b.Close()
	if err := b.Set(context.Background(), "k", nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestFileBackend(t *testing.T) {
	b, err := NewFileBackend(filepath.Join(t.TempDir(), "store"))
	if err != nil {
		t.Fatal(err)
	}
	testBackendContract(t, b)
}

func TestFileBackend_ClearKeepsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	if err != nil {
		t.Fatal(err)
	}

	foreign := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(foreign, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := b.Set(context.Background(), "tasks", []byte("[]")); err != nil {
		t.Fatal(err)
	}

	if err := b.Clear(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Errorf("foreign file removed by Clear: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.json")); !os.IsNotExist(err) {
		t.Errorf("slot file should be gone, stat err = %v", err)
	}
}

func TestFileBackend_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	b1, err := NewFileBackend(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := b1.Set(ctx, "tasks", []byte(`[{"id":"a","text":"x"}]`)); err != nil {
		t.Fatal(err)
	}

	b2, err := NewFileBackend(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, err := b2.Get(ctx, "tasks")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[{"id":"a","text":"x"}]` {
		t.Errorf("got %q after reopen", got)
	}
}

func TestSQLiteBackend(t *testing.T) {
	b, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	testBackendContract(t, b)
}

func TestSQLiteBackend_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	b1, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := b1.Set(ctx, "tasks", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	b1.Close()

	b2, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	defer b2.Close()
	got, err := b2.Get(ctx, "tasks")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[]` {
		t.Errorf("got %q after reopen", got)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  config.StoreConfig
		want string
	}{
		{"file", config.StoreConfig{Backend: config.BackendFile, Path: filepath.Join(dir, "files")}, "*kv.FileBackend"},
		{"sqlite", config.StoreConfig{Backend: config.BackendSQLite, Path: filepath.Join(dir, "kv.db")}, "*kv.SQLiteBackend"},
		{"memory", config.StoreConfig{Backend: config.BackendMemory}, "*kv.MemoryBackend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Open(tt.cfg)
			if err != nil {
				t.Fatal(err)
			}
			defer b.Close()
			if got := typeName(b); got != tt.want {
				t.Errorf("Open(%s) = %s, want %s", tt.cfg.Backend, got, tt.want)
			}
		})
	}

	if _, err := Open(config.StoreConfig{Backend: "tape"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func typeName(b Backend) string {
	switch b.(type) {
	case *FileBackend:
		return "*kv.FileBackend"
	case *SQLiteBackend:
		return "*kv.SQLiteBackend"
	case *MemoryBackend:
		return "*kv.MemoryBackend"
	case *RedisBackend:
		return "*kv.RedisBackend"
	}
	return "unknown"
}

func TestMemoryBackend_Keys(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	b.Set(ctx, "b", nil)
	b.Set(ctx, "a", nil)

	keys := b.Keys()
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v", keys)
	}
}
