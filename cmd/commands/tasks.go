package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/dohr-michael/tasklist/internal/tasks"
)

// NewTasksCommand returns the tasks subcommand.
func NewTasksCommand() *cli.Command {
	yesFlag := &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Do not ask for confirmation",
	}
	return &cli.Command{
		Name:  "tasks",
		Usage: "Manage tasks from the command line",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all tasks",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Only list tasks containing this text (case-insensitive)",
					},
				},
				Action: runTasksList,
			},
			{
				Name:      "add",
				Usage:     "Add a task",
				ArgsUsage: "<text...>",
				Action:    runTasksAdd,
			},
			{
				Name:      "rename",
				Usage:     "Replace the text of a task",
				ArgsUsage: "<task_id> <text...>",
				Action:    runTasksRename,
			},
			{
				Name:      "rm",
				Usage:     "Delete a task",
				ArgsUsage: "<task_id>",
				Flags:     []cli.Flag{yesFlag},
				Action:    runTasksRemove,
			},
			{
				Name:   "clear",
				Usage:  "Delete all tasks",
				Flags:  []cli.Flag{yesFlag},
				Action: runTasksClear,
			},
			{
				Name:  "export",
				Usage: "Print the collection as JSON or YAML",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "json or yaml",
						Value: "json",
					},
				},
				Action: runTasksExport,
			},
		},
		DefaultCommand: "list",
	}
}

func runTasksList(ctx context.Context, cmd *cli.Command) error {
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.Root().Writer
	list := a.Controller.FilterTasks(cmd.String("filter"))
	if len(list) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTEXT")
	for _, t := range list {
		fmt.Fprintf(w, "%s\t%s\n", t.ID, t.Text)
	}
	return w.Flush()
}

func runTasksAdd(ctx context.Context, cmd *cli.Command) error {
	text := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if text == "" {
		return fmt.Errorf("usage: tasklist tasks add <text...>: %w", tasks.ErrEmptyText)
	}

	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	v, surface, _ := newCLIView(ctx, cmd, a.Controller, "")
	v.Submit(text)
	return surface.err
}

func runTasksRename(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 2 || tasks.IsBlank(strings.Join(args[1:], " ")) {
		return fmt.Errorf("usage: tasklist tasks rename <task_id> <text...>")
	}
	id, text := args[0], strings.Join(args[1:], " ")

	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, ok := a.Controller.Task(id); !ok {
		return fmt.Errorf("rename %s: %w", id, tasks.ErrTaskNotFound)
	}
	v, surface, _ := newCLIView(ctx, cmd, a.Controller, text)
	v.Edit(id)
	return surface.err
}

func runTasksRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("usage: tasklist tasks rm <task_id>")
	}

	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, ok := a.Controller.Task(id); !ok {
		return fmt.Errorf("delete %s: %w", id, tasks.ErrTaskNotFound)
	}
	v, surface, dialogs := newCLIView(ctx, cmd, a.Controller, "")
	v.Delete(id)
	if dialogs.err != nil {
		return dialogs.err
	}
	return surface.err
}

func runTasksClear(ctx context.Context, cmd *cli.Command) error {
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	v, surface, dialogs := newCLIView(ctx, cmd, a.Controller, "")
	v.ClearAll()
	if dialogs.err != nil {
		return dialogs.err
	}
	return surface.err
}

func runTasksExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}

	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	list := a.Controller.ListTasks()
	if list == nil {
		list = tasks.Collection{}
	}

	var data []byte
	switch format {
	case "yaml":
		data, err = yaml.Marshal(list)
	default:
		data, err = json.MarshalIndent(list, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	_, err = cmd.Root().Writer.Write(data)
	return err
}
