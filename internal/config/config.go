// Package config loads the tasklist configuration file and resolves data paths.
package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Backend names accepted by StoreConfig.Backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Clear scopes accepted by StoreConfig.ClearScope.
const (
	ClearScopeKey = "key" // erase only the task key
	ClearScopeAll = "all" // erase every key the backend holds
)

// Config is the root configuration for tasklist.
type Config struct {
	Store StoreConfig `json:"store"`
	Web   WebConfig   `json:"web"`
	Log   LogConfig   `json:"log"`
}

// StoreConfig selects and configures the durable key-value backend.
type StoreConfig struct {
	Backend    string `json:"backend"`             // file, sqlite, redis, memory
	Path       string `json:"path"`                // data dir (file) or database file (sqlite)
	Key        string `json:"key"`                 // slot holding the task collection
	RedisURL   string `json:"redis_url,omitempty"` // redis://host:port/db
	Namespace  string `json:"namespace,omitempty"` // redis key prefix
	ClearScope string `json:"clear_scope"`         // key or all
}

// WebConfig holds the web surface listen address.
type WebConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level"` // debug, info, warn, error
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Validate reports configuration values that cannot be honoured.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown store.backend %q", c.Store.Backend)
	}
	switch c.Store.ClearScope {
	case ClearScopeKey, ClearScopeAll:
	default:
		return fmt.Errorf("unknown store.clear_scope %q", c.Store.ClearScope)
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port out of range: %d", c.Web.Port)
	}
	return nil
}

// SlogLevel maps Log.Level to a slog level. Unknown values fall back to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
