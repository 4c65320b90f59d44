package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/tasklist/internal/app"
	"github.com/dohr-michael/tasklist/internal/config"
)

// loadConfig reads the --config file, falling back to defaults when it does
// not exist, and applies --ephemeral.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	configPath := cmd.String("config")
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	if cmd.Bool("ephemeral") {
		cfg.Store.Backend = config.BackendMemory
	}
	return cfg, nil
}

// setupLogging routes slog to w at the configured level. --debug wins.
func setupLogging(cmd *cli.Command, cfg *config.Config, w io.Writer) {
	level := cfg.Log.SlogLevel()
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// openApp loads the config, sets up logging on cmd's error writer and opens
// the store.
func openApp(ctx context.Context, cmd *cli.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	setupLogging(cmd, cfg, cmd.Root().ErrWriter)
	return app.New(ctx, cfg)
}
