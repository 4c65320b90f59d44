package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dohr-michael/tasklist/internal/tasks"
)

type toolArgs struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Query string `json:"query"`
}

type toolFunc func(ctx context.Context, args toolArgs) (any, error)

type tool struct {
	spec toolSpec
	run  toolFunc
}

// taskTools lists the tools backed by ctrl.
func taskTools(ctrl *tasks.Controller) []tool {
	return []tool{
		{
			spec: toolSpec{
				Name:        "list_tasks",
				Description: "List tasks in insertion order, optionally filtered by a case-insensitive substring.",
				Parameters: map[string]paramSpec{
					"query": {Type: "string", Description: "Only return tasks whose text contains this"},
				},
			},
			run: func(_ context.Context, args toolArgs) (any, error) {
				return ctrl.FilterTasks(args.Query), nil
			},
		},
		{
			spec: toolSpec{
				Name:        "create_task",
				Description: "Append a new task.",
				Parameters: map[string]paramSpec{
					"text": {Type: "string", Description: "Task text, must not be blank", Required: true},
				},
			},
			run: func(ctx context.Context, args toolArgs) (any, error) {
				return ctrl.CreateTask(ctx, strings.TrimSpace(args.Text))
			},
		},
		{
			spec: toolSpec{
				Name:        "rename_task",
				Description: "Replace the text of an existing task.",
				Parameters: map[string]paramSpec{
					"id":   {Type: "string", Description: "Task id", Required: true},
					"text": {Type: "string", Description: "New text, must not be blank", Required: true},
				},
			},
			run: func(ctx context.Context, args toolArgs) (any, error) {
				return ctrl.RenameTask(ctx, args.ID, args.Text)
			},
		},
		{
			spec: toolSpec{
				Name:        "delete_task",
				Description: "Delete a task. Deleting an unknown id succeeds.",
				Parameters: map[string]paramSpec{
					"id": {Type: "string", Description: "Task id", Required: true},
				},
			},
			run: func(ctx context.Context, args toolArgs) (any, error) {
				if err := ctrl.DeleteTask(ctx, args.ID); err != nil {
					return nil, err
				}
				return map[string]string{"status": "deleted", "id": args.ID}, nil
			},
		},
	}
}

// NewMCPServer creates an MCP server exposing the task tools.
func NewMCPServer(ctrl *tasks.Controller, version string) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "tasklist",
		Version: version,
	}, nil)

	for _, t := range taskTools(ctrl) {
		server.AddTool(toMCPTool(t.spec), handler(t))
		slog.Debug("mcp tool registered", "tool", t.spec.Name)
	}
	return server
}

func handler(t tool) mcpsdk.ToolHandler {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		return callTool(ctx, t, req.Params.Arguments), nil
	}
}

// callTool decodes raw arguments, runs the tool and wraps the outcome.
// Rejections become IsError results rather than protocol errors.
func callTool(ctx context.Context, t tool, raw json.RawMessage) *mcpsdk.CallToolResult {
	var args toolArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err))
		}
	}

	out, err := t.run(ctx, args)
	if err != nil {
		if !errors.Is(err, tasks.ErrEmptyText) && !errors.Is(err, tasks.ErrTaskNotFound) {
			slog.Error("mcp tool failed", "tool", t.spec.Name, "error", err)
		}
		return errorResult(err)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return errorResult(fmt.Errorf("marshal result: %w", err))
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}
}

func errorResult(err error) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
	}
}
