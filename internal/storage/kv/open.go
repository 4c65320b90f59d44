package kv

import (
	"fmt"

	"github.com/dohr-michael/tasklist/internal/config"
)

// Open builds the backend selected by cfg.Backend.
func Open(cfg config.StoreConfig) (Backend, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileBackend(cfg.Path)
	case config.BackendSQLite:
		return NewSQLiteBackend(cfg.Path)
	case config.BackendRedis:
		return NewRedisBackend(cfg.RedisURL, cfg.Namespace)
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
