// Package tui is the terminal surface of the task list.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/tasklist/clients/tui/components"
	"github.com/dohr-michael/tasklist/internal/tasks"
	"github.com/dohr-michael/tasklist/internal/view"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

const filterQuestion = "Filter tasks"

// App is the main TUI application model.
// Architecture: HEADER | LIST | INPUT_ZONE | FOOTER
//
// App is both the view.Surface and the view.Dialogs of its View: dialogs
// open in the input zone and their reply runs when the InputResult comes
// back through Update.
type App struct {
	// Components
	header    *components.Header
	list      *components.TaskList
	inputZone *components.InputZone

	// State
	width    int
	height   int
	focus    focusArea
	quitting bool

	// pending receives the result of the open dialog, if any.
	pending func(components.InputResult)

	view *view.View
}

// NewApp creates the TUI and renders the current tasks.
func NewApp(ctx context.Context, ctrl view.Controller) *App {
	a := &App{
		header:    components.NewHeader(),
		list:      components.NewTaskList(),
		inputZone: components.NewInputZone(),
		focus:     focusInput,
	}
	a.inputZone.Focus()
	a.view = view.New(ctx, ctrl, a, a)
	a.view.Ready()
	a.refreshHeader()
	return a
}

// Init initializes the application.
func (a *App) Init() tea.Cmd {
	return a.inputZone.Init()
}

// Update handles messages and updates state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}
		// Any key acknowledges the last error.
		if a.header.Status() != "" {
			a.header.SetStatus("")
			a.updateSizes()
		}

		if a.inputZone.Mode() != components.ModeEntry {
			var cmd tea.Cmd
			a.inputZone, cmd = a.inputZone.Update(msg)
			return a, cmd
		}
		if a.focus == focusList {
			return a, a.handleListKey(msg)
		}
		return a, a.handleInputKey(msg)

	case components.InputResult:
		return a, a.handleInputResult(msg)
	}

	var cmd tea.Cmd
	a.inputZone, cmd = a.inputZone.Update(msg)
	return a, cmd
}

func (a *App) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		return a.setFocus(focusList)
	}
	var cmd tea.Cmd
	a.inputZone, cmd = a.inputZone.Update(msg)
	return cmd
}

func (a *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "i":
		return a.setFocus(focusInput)
	case "q":
		a.quitting = true
		return tea.Quit
	case "up", "k":
		a.list.MoveUp()
	case "down", "j":
		a.list.MoveDown()
	case "d", "x", "delete":
		if id, ok := a.list.Selected(); ok {
			a.view.Delete(id)
		}
	case "e", "enter":
		if id, ok := a.list.Selected(); ok {
			a.view.Edit(id)
		}
	case "C":
		a.view.ClearAll()
	case "/":
		a.openFilter()
	case "esc":
		a.list.SetFilter("")
		a.refreshHeader()
	}
	return nil
}

// handleInputResult routes a submitted entry to the View, or a dialog
// answer to whoever opened the dialog.
func (a *App) handleInputResult(result components.InputResult) tea.Cmd {
	if result.Mode == components.ModeEntry {
		a.view.Submit(result.Text)
		return nil
	}

	reply := a.pending
	a.pending = nil
	a.updateSizes()
	if reply != nil {
		reply(result)
	}
	if a.focus == focusInput {
		return a.inputZone.Focus()
	}
	a.inputZone.Blur()
	return nil
}

func (a *App) openFilter() {
	a.inputZone.PromptText(filterQuestion, a.list.Filter())
	a.pending = func(r components.InputResult) {
		if r.Cancelled {
			return
		}
		a.list.SetFilter(r.Text)
		a.refreshHeader()
	}
	a.updateSizes()
}

func (a *App) setFocus(f focusArea) tea.Cmd {
	a.focus = f
	a.list.SetFocused(f == focusList)
	if f == focusInput {
		return a.inputZone.Focus()
	}
	a.inputZone.Blur()
	return nil
}

// View renders the application: HEADER | LIST | INPUT | FOOTER.
func (a *App) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.header.View(),
		a.list.View(),
		a.inputZone.View(),
		a.footer(),
	)
}

func (a *App) footer() string {
	if a.focus == focusList {
		return components.HintStyle.Render("↑↓ move • e edit • d delete • C clear all • / filter • tab input • q quit")
	}
	return components.HintStyle.Render("enter add • tab list • ctrl+c quit")
}

func (a *App) updateSizes() {
	headerHeight := 1
	if a.header.Status() != "" {
		headerHeight = 2
	}
	footerHeight := 1
	inputHeight := a.inputHeightForMode(a.inputZone.Mode())

	listHeight := a.height - headerHeight - footerHeight - inputHeight
	if listHeight < 3 {
		listHeight = 3
	}

	a.header.SetWidth(a.width)
	a.list.SetSize(a.width, listHeight)
	a.inputZone.SetSize(a.width)
}

// inputHeightForMode returns the input zone height for a given mode.
func (a *App) inputHeightForMode(mode components.InputMode) int {
	switch mode {
	case components.ModeConfirm:
		return 6 // sep + question + yes + no + hint + sep
	case components.ModeText:
		return 5 // sep + question + input + hint + sep
	default:
		return 3 // sep + input + sep
	}
}

func (a *App) refreshHeader() {
	a.header.SetCounts(a.list.Len(), len(a.list.Items()))
	a.header.SetFilter(a.list.Filter())
}

// --- view.Surface ---

// AppendItem adds a row for t.
func (a *App) AppendItem(t tasks.Task) {
	a.list.Append(t.ID, t.Text)
	a.refreshHeader()
}

// RemoveItem removes the row for id.
func (a *App) RemoveItem(id string) {
	a.list.Remove(id)
	a.refreshHeader()
}

// SetItemText updates the row for id.
func (a *App) SetItemText(id, text string) {
	a.list.SetText(id, text)
	a.refreshHeader()
}

// ClearItems removes every row.
func (a *App) ClearItems() {
	a.list.Clear()
	a.refreshHeader()
}

// ClearInput empties the entry field.
func (a *App) ClearInput() {
	a.inputZone.SetValue("")
}

// ShowError displays err until the next key press.
func (a *App) ShowError(err error) {
	a.header.SetStatus(err.Error())
	a.updateSizes()
}

// --- view.Dialogs ---

// Confirm opens a Yes/No prompt in the input zone.
func (a *App) Confirm(question string, reply func(bool)) {
	a.inputZone.PromptConfirm(question)
	a.pending = func(r components.InputResult) {
		reply(!r.Cancelled && r.Confirmed)
	}
	a.updateSizes()
}

// Prompt opens a text prompt in the input zone, pre-filled with initial.
func (a *App) Prompt(question, initial string, reply func(string, bool)) {
	a.inputZone.PromptText(question, initial)
	a.pending = func(r components.InputResult) {
		reply(r.Text, !r.Cancelled)
	}
	a.updateSizes()
}

var (
	_ view.Surface = (*App)(nil)
	_ view.Dialogs = (*App)(nil)
)
