package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputMode represents the current input mode.
type InputMode int

const (
	ModeEntry   InputMode = iota // New task entry (default)
	ModeText                     // Text prompt with question
	ModeConfirm                  // Yes/No confirmation
)

const entryPlaceholder = "What needs to be done?"

// InputResult is emitted when input is submitted.
type InputResult struct {
	Mode      InputMode
	Text      string // For ModeEntry, ModeText
	Confirmed bool   // For ModeConfirm
	Cancelled bool
}

// InputZone is the single input line of the TUI. It holds the new-task
// entry field and doubles as the confirm and text prompt.
type InputZone struct {
	mode InputMode

	width    int
	question string

	textInput textinput.Model
	// draft keeps the entry text while a prompt borrows the text input.
	draft string

	// Confirm state: 0=Yes, 1=No
	selectIdx int
}

// NewInputZone creates a new input zone.
func NewInputZone() *InputZone {
	ti := textinput.New()
	ti.Prompt = "" // We render our own ❯ prompt
	ti.Placeholder = entryPlaceholder
	ti.CharLimit = 2000
	ti.Width = 80

	return &InputZone{
		mode:      ModeEntry,
		textInput: ti,
	}
}

// Init initializes the component.
func (z *InputZone) Init() tea.Cmd {
	return z.textInput.Focus()
}

// Update handles messages.
func (z *InputZone) Update(msg tea.Msg) (*InputZone, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if z.mode == ModeConfirm {
			return z, nil
		}
		var cmd tea.Cmd
		z.textInput, cmd = z.textInput.Update(msg)
		return z, cmd
	}

	// Drop unparsed SGR mouse escape fragments (e.g. "[<64;75;23M")
	if keyMsg.Type == tea.KeyRunes {
		s := string(keyMsg.Runes)
		if len(s) >= 3 && s[0] == '[' && s[1] == '<' {
			return z, nil
		}
	}

	switch keyMsg.String() {
	case "enter":
		return z.submit()
	case "esc":
		if z.mode != ModeEntry {
			return z.cancel()
		}
		return z, nil
	}

	if z.mode == ModeConfirm {
		switch keyMsg.String() {
		case "up", "k", "left", "h":
			z.selectIdx = 0
		case "down", "j", "right", "l":
			z.selectIdx = 1
		case "y", "Y":
			z.selectIdx = 0
			return z.submit()
		case "n", "N":
			z.selectIdx = 1
			return z.submit()
		}
		return z, nil
	}

	var cmd tea.Cmd
	z.textInput, cmd = z.textInput.Update(keyMsg)
	return z, cmd
}

// submit processes the input and returns result.
func (z *InputZone) submit() (*InputZone, tea.Cmd) {
	result := InputResult{Mode: z.mode}

	switch z.mode {
	case ModeEntry:
		text := strings.TrimSpace(z.textInput.Value())
		if text == "" {
			return z, nil
		}
		// The field is cleared by the owner once the task is stored.
		result.Text = text
		return z, func() tea.Msg { return result }

	case ModeText:
		result.Text = z.textInput.Value()
		z.Reset()
		return z, func() tea.Msg { return result }

	case ModeConfirm:
		result.Confirmed = z.selectIdx == 0
		z.Reset()
		return z, func() tea.Msg { return result }
	}

	return z, nil
}

// cancel cancels the current prompt.
func (z *InputZone) cancel() (*InputZone, tea.Cmd) {
	result := InputResult{
		Mode:      z.mode,
		Cancelled: true,
	}
	z.Reset()
	return z, func() tea.Msg { return result }
}

// View renders the input zone.
func (z *InputZone) View() string {
	switch z.mode {
	case ModeText:
		return z.renderText()
	case ModeConfirm:
		return z.renderConfirm()
	}
	return z.renderEntry()
}

// separator returns a full-width ─── line.
func (z *InputZone) separator() string {
	w := z.width
	if w <= 0 {
		w = 80
	}
	return InputSeparatorStyle.Render(strings.Repeat("─", w))
}

// wrapWithSeparators wraps content between two separator lines.
func (z *InputZone) wrapWithSeparators(content string) string {
	sep := z.separator()
	return sep + "\n" + content + "\n" + sep
}

func (z *InputZone) renderEntry() string {
	return z.wrapWithSeparators(InputPromptCharStyle.Render("❯ ") + z.textInput.View())
}

func (z *InputZone) renderText() string {
	var b strings.Builder
	if z.question != "" {
		b.WriteString(LabelStyle.Render(z.question + ":"))
		b.WriteString("\n")
	}
	b.WriteString(InputPromptCharStyle.Render("❯ "))
	b.WriteString(z.textInput.View())
	b.WriteString("\n")
	b.WriteString(HintStyle.Render("enter=submit • esc=cancel"))
	return z.wrapWithSeparators(b.String())
}

func (z *InputZone) renderConfirm() string {
	var b strings.Builder

	if z.question != "" {
		b.WriteString(ConfirmLabelStyle.Render(z.question))
		b.WriteString("\n")
	}

	options := []string{"Yes", "No"}
	for i, opt := range options {
		if i == z.selectIdx {
			b.WriteString(SelectedOptionStyle.Render("> " + opt))
		} else {
			b.WriteString(OptionStyle.Render("  " + opt))
		}
		b.WriteString("\n")
	}

	b.WriteString(HintStyle.Render("y/n or ↑↓ + enter • esc=cancel"))
	return z.wrapWithSeparators(b.String())
}

// Reset returns to entry mode and restores the entry draft.
func (z *InputZone) Reset() {
	if z.mode == ModeEntry {
		return
	}
	z.mode = ModeEntry
	z.question = ""
	z.selectIdx = 0
	z.textInput.SetValue(z.draft)
	z.textInput.CursorEnd()
	z.textInput.Placeholder = entryPlaceholder
	z.draft = ""
}

// SetSize sets the component size.
func (z *InputZone) SetSize(width int) {
	z.width = width
	if width > 4 {
		z.textInput.Width = width - 4
	}
}

// Focus focuses the text input.
func (z *InputZone) Focus() tea.Cmd {
	return z.textInput.Focus()
}

// Blur blurs the text input.
func (z *InputZone) Blur() {
	z.textInput.Blur()
}

// Mode returns the current input mode.
func (z *InputZone) Mode() InputMode {
	return z.mode
}

// Value returns the raw content of the text input.
func (z *InputZone) Value() string {
	return z.textInput.Value()
}

// SetValue replaces the entry text. While a prompt is open it replaces the
// stashed draft instead.
func (z *InputZone) SetValue(value string) {
	if z.mode != ModeEntry {
		z.draft = value
		return
	}
	z.textInput.SetValue(value)
	z.textInput.CursorEnd()
}

// PromptText sets up a text prompt pre-filled with initial.
func (z *InputZone) PromptText(question, initial string) {
	z.stashDraft()
	z.mode = ModeText
	z.question = question
	z.textInput.Placeholder = ""
	z.textInput.SetValue(initial)
	z.textInput.CursorEnd()
	z.textInput.Focus()
}

// PromptConfirm sets up a confirmation prompt.
func (z *InputZone) PromptConfirm(question string) {
	z.stashDraft()
	z.mode = ModeConfirm
	z.question = question
	z.selectIdx = 0 // Default to Yes
	z.textInput.Blur()
}

func (z *InputZone) stashDraft() {
	if z.mode == ModeEntry {
		z.draft = z.textInput.Value()
	}
}
