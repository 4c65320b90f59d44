// Package app builds the application context shared by every surface.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dohr-michael/tasklist/internal/config"
	"github.com/dohr-michael/tasklist/internal/storage/kv"
	"github.com/dohr-michael/tasklist/internal/tasks"
)

// App holds the store, the controller and the config. It is constructed once
// at startup and handed to the surface that runs.
type App struct {
	Config     *config.Config
	Backend    kv.Backend
	Store      *tasks.Store
	Controller *tasks.Controller
}

// New opens the configured backend and loads the task collection.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	backend, err := kv.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a, err := NewWithBackend(ctx, cfg, backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	slog.Debug("store opened", "backend", cfg.Store.Backend, "path", cfg.Store.Path, "key", cfg.Store.Key)
	return a, nil
}

// NewWithBackend builds an App on an already opened backend.
func NewWithBackend(ctx context.Context, cfg *config.Config, backend kv.Backend) (*App, error) {
	store := tasks.NewStore(backend,
		tasks.WithKey(cfg.Store.Key),
		tasks.WithClearScope(cfg.Store.ClearScope),
	)

	ctrl, err := tasks.NewController(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("init tasks: %w", err)
	}

	return &App{
		Config:     cfg,
		Backend:    backend,
		Store:      store,
		Controller: ctrl,
	}, nil
}

// Close releases the backend.
func (a *App) Close() error {
	return a.Backend.Close()
}
