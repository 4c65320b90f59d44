package config

import (
	"os"
	"path/filepath"
)

// DataPath returns the root directory for tasklist data.
// It uses $TASKLIST_PATH if set, otherwise defaults to ~/.tasklist.
func DataPath() string {
	if v := os.Getenv("TASKLIST_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".tasklist")
	}
	return filepath.Join(home, ".tasklist")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(DataPath(), "config.jsonc")
}

// DotenvPath returns the path to the .env file.
func DotenvPath() string {
	return filepath.Join(DataPath(), ".env")
}

// LogPath returns the file the terminal UI logs to.
func LogPath() string {
	return filepath.Join(DataPath(), "tasklist.log")
}

// HeartbeatPath returns the file a running web server advertises itself in.
func HeartbeatPath() string {
	return filepath.Join(DataPath(), "server.json")
}
