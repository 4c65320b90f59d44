package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/tasklist/internal/config"
)

// Version is reported by the MCP server and `tasklist --version`.
// Overridden at build time with -ldflags "-X ...commands.Version=...".
var Version = "dev"

// NewRootCommand returns the top-level CLI command. Without a subcommand it
// opens the terminal UI.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "tasklist",
		Usage:   "A small persistent to-do list",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "Keep tasks in memory only, nothing is persisted",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			NewTUICommand(),
			NewServeCommand(),
			NewTasksCommand(),
			NewStatusCommand(),
			NewMCPServeCommand(),
		},
	}
}
