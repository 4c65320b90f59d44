package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dohr-michael/tasklist/internal/config"
	"github.com/dohr-michael/tasklist/internal/storage/kv"
)

// DefaultKey is the slot the collection lives in when none is configured.
const DefaultKey = "tasks"

// Store persists the collection as a JSON array of {id, text} under one key.
type Store struct {
	backend    kv.Backend
	key        string
	clearScope string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey overrides the slot key.
func WithKey(key string) StoreOption {
	return func(s *Store) { s.key = key }
}

// WithClearScope selects what Clear erases: config.ClearScopeKey (only the
// task slot) or config.ClearScopeAll (the backend's whole scope).
func WithClearScope(scope string) StoreOption {
	return func(s *Store) { s.clearScope = scope }
}

// NewStore creates a Store on top of backend.
func NewStore(backend kv.Backend, opts ...StoreOption) *Store {
	s := &Store{
		backend:    backend,
		key:        DefaultKey,
		clearScope: config.ClearScopeKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the slot key.
func (s *Store) Key() string { return s.key }

// Load returns the persisted collection. An absent slot or a value that does
// not parse yields an empty collection; only backend failures are returned.
func (s *Store) Load(ctx context.Context) (Collection, error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		slog.Warn("stored tasks are malformed, starting empty", "key", s.key, "error", err)
		return Collection{}, nil
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}

// Save overwrites the slot with the full collection.
func (s *Store) Save(ctx context.Context, c Collection) error {
	if c == nil {
		c = Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// Clear erases the persisted collection (or the whole backend scope, see
// WithClearScope).
func (s *Store) Clear(ctx context.Context) error {
	var err error
	if s.clearScope == config.ClearScopeAll {
		err = s.backend.Clear(ctx)
	} else {
		err = s.backend.Delete(ctx, s.key)
	}
	if err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}
