// Package view translates user intents into controller calls and applies the
// results to a rendering surface, item by item, without re-rendering the list.
//
// The View holds no task data. Every rendered item is tagged with its task id
// (the correlation key) and every intent names the item by that id.
package view

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dohr-michael/tasklist/internal/tasks"
)

// Questions shown by the dialogs.
const (
	ConfirmDeleteQuestion = "Delete this task?"
	ConfirmClearQuestion  = "Delete all tasks?"
	EditPromptQuestion    = "New text for the task"
)

// Surface is the rendering target: an ordered list of items plus an input field.
type Surface interface {
	AppendItem(t tasks.Task)
	RemoveItem(id string)
	SetItemText(id, text string)
	ClearItems()
	ClearInput()
	ShowError(err error)
}

// Dialogs asks the user for a decision. Replies may arrive immediately or on
// a later turn of the surface's event loop; the View never blocks on them.
type Dialogs interface {
	// Confirm asks a Yes/No question. Dismissing the dialog counts as No.
	Confirm(question string, reply func(confirmed bool))
	// Prompt asks for text pre-filled with initial. ok is false on cancel.
	Prompt(question, initial string, reply func(text string, ok bool))
}

// Controller is the subset of *tasks.Controller the View drives.
type Controller interface {
	CreateTask(ctx context.Context, text string) (tasks.Task, error)
	RenameTask(ctx context.Context, id, newText string) (tasks.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
	ListTasks() tasks.Collection
	Task(id string) (tasks.Task, bool)
}

// View wires a surface and its dialogs to the controller.
type View struct {
	ctx     context.Context
	ctrl    Controller
	surface Surface
	dialogs Dialogs
}

// New creates a View. ctx is used for every controller call it makes,
// including ones triggered later by dialog replies.
func New(ctx context.Context, ctrl Controller, surface Surface, dialogs Dialogs) *View {
	return &View{ctx: ctx, ctrl: ctrl, surface: surface, dialogs: dialogs}
}

// Ready renders one item per task, in collection order.
func (v *View) Ready() {
	for _, t := range v.ctrl.ListTasks() {
		v.surface.AppendItem(t)
	}
}

// Submit creates a task from the input field text. On success exactly one
// item is appended and the input cleared; blank input changes nothing.
func (v *View) Submit(input string) {
	t, err := v.ctrl.CreateTask(v.ctx, input)
	if errors.Is(err, tasks.ErrEmptyText) {
		slog.Debug("ignored blank task")
		return
	}
	if t.ID != "" {
		v.surface.AppendItem(t)
		v.surface.ClearInput()
	}
	v.report("create task", err)
}

// Delete asks for confirmation, then removes the item and the task.
func (v *View) Delete(id string) {
	v.dialogs.Confirm(ConfirmDeleteQuestion, func(confirmed bool) {
		if !confirmed {
			return
		}
		v.surface.RemoveItem(id)
		v.report("delete task", v.ctrl.DeleteTask(v.ctx, id))
	})
}

// Edit prompts for new text pre-filled with the current text. A cancelled
// prompt or a blank reply leaves the item untouched.
func (v *View) Edit(id string) {
	current, ok := v.ctrl.Task(id)
	if !ok {
		slog.Debug("edit for unknown task", "id", id)
		return
	}
	v.dialogs.Prompt(EditPromptQuestion, current.Text, func(text string, ok bool) {
		if !ok || tasks.IsBlank(text) {
			return
		}
		v.surface.SetItemText(id, text)
		_, err := v.ctrl.RenameTask(v.ctx, id, text)
		if errors.Is(err, tasks.ErrTaskNotFound) {
			// Deleted while the prompt was open.
			v.surface.RemoveItem(id)
			return
		}
		v.report("rename task", err)
	})
}

// ClearAll asks for confirmation, then empties the surface and the collection.
func (v *View) ClearAll() {
	v.dialogs.Confirm(ConfirmClearQuestion, func(confirmed bool) {
		if !confirmed {
			return
		}
		v.surface.ClearItems()
		v.report("clear tasks", v.ctrl.ClearAll(v.ctx))
	})
}

func (v *View) report(action string, err error) {
	if err == nil {
		return
	}
	slog.Error(action+" failed", "error", err)
	v.surface.ShowError(err)
}
