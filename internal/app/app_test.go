package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dohr-michael/tasklist/internal/config"
	"github.com/dohr-michael/tasklist/internal/storage/kv"
)

func TestNew_FileBackendPersists(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "store")

	a, err := New(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	task, err := a.Controller.CreateTask(ctx, "buy milk")
	if err != nil {
		t.Fatal(err)
	}
	a.Close()

	b, err := New(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	got := b.Controller.ListTasks()
	if len(got) != 1 || got[0] != task {
		t.Errorf("reloaded %#v, want [%#v]", got, task)
	}
}

func TestNewWithBackend_UsesConfiguredKeyAndScope(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Store.Key = "todo"
	cfg.Store.ClearScope = config.ClearScopeAll

	backend := kv.NewMemoryBackend()
	backend.Set(ctx, "unrelated", []byte("x"))

	a, err := NewWithBackend(ctx, cfg, backend)
	if err != nil {
		t.Fatal(err)
	}
	if a.Store.Key() != "todo" {
		t.Errorf("store key = %q", a.Store.Key())
	}

	a.Controller.CreateTask(ctx, "x")
	if err := a.Controller.ClearAll(ctx); err != nil {
		t.Fatal(err)
	}
	if keys := backend.Keys(); len(keys) != 0 {
		t.Errorf("clear_scope all left keys %v", keys)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = "tape"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected error")
	}
}
