//go:build integration

package kv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisBackend(t *testing.T, namespace string) *RedisBackend {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").WithOccurrence(1).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("redis testcontainer unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate redis container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("redis connection string: %v", err)
	}

	b, err := NewRedisBackend(url+"/1", namespace)
	if err != nil {
		t.Fatalf("connect redis backend: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestRedisBackend(t *testing.T) {
	b := setupRedisBackend(t, "tasklist-test")
	testBackendContract(t, b)
}

func TestRedisBackend_ClearScopedToNamespace(t *testing.T) {
	b := setupRedisBackend(t, "tasklist-test")
	ctx := context.Background()

	if err := b.client.Set(ctx, "unrelated", "keep", 0).Err(); err != nil {
		t.Fatal(err)
	}
	if err := b.Set(ctx, "tasks", []byte("[]")); err != nil {
		t.Fatal(err)
	}
	if err := b.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := b.Get(ctx, "tasks"); !errors.Is(err, ErrNotFound) {
		t.Errorf("namespaced key survived Clear: %v", err)
	}
	if v, err := b.client.Get(ctx, "unrelated").Result(); err != nil || v != "keep" {
		t.Errorf("unrelated key touched by Clear: %q, %v", v, err)
	}
}

func TestNewRedisBackend_BadURL(t *testing.T) {
	if _, err := NewRedisBackend("not-a-url", "x"); err == nil {
		t.Fatal("expected error for malformed url")
	}
}
