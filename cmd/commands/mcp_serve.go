package commands

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/tasklist/internal/app"
	tasklistmcp "github.com/dohr-michael/tasklist/internal/mcp"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServeCommand returns the mcp-serve subcommand.
func NewMCPServeCommand() *cli.Command {
	return &cli.Command{
		Name:   "mcp-serve",
		Usage:  "Expose the task list as an MCP server (stdio)",
		Action: runMCPServe,
	}
}

func runMCPServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// stdout carries the MCP stdio transport; keep logs quiet on stderr.
	if cfg.Log.SlogLevel() < slog.LevelWarn {
		cfg.Log.Level = "warn"
	}
	setupLogging(cmd, cfg, cmd.Root().ErrWriter)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	slog.Debug("starting MCP server", "backend", cfg.Store.Backend)
	server := tasklistmcp.NewMCPServer(a.Controller, Version)
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}
