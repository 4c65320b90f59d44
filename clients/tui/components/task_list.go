package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ListItem is one rendered task row. The id ties the row back to its task.
type ListItem struct {
	ID   string
	Text string
}

// TaskList renders the tasks in insertion order with a movable selection
// and an optional case-insensitive filter.
type TaskList struct {
	items   []ListItem
	cursor  int // index into the visible items
	offset  int
	filter  string
	focused bool

	width  int
	height int
}

// NewTaskList creates an empty task list.
func NewTaskList() *TaskList {
	return &TaskList{}
}

// Append adds a row at the end.
func (l *TaskList) Append(id, text string) {
	l.items = append(l.items, ListItem{ID: id, Text: text})
}

// Remove deletes the row with the given id. Unknown ids are ignored.
func (l *TaskList) Remove(id string) {
	for i, it := range l.items {
		if it.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
	l.clampCursor()
}

// SetText replaces the text of the row with the given id.
func (l *TaskList) SetText(id, text string) {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Text = text
			return
		}
	}
}

// Clear removes every row.
func (l *TaskList) Clear() {
	l.items = nil
	l.cursor = 0
	l.offset = 0
}

// Items returns the rows that pass the filter.
func (l *TaskList) Items() []ListItem {
	if l.filter == "" {
		return l.items
	}
	q := strings.ToLower(l.filter)
	var out []ListItem
	for _, it := range l.items {
		if strings.Contains(strings.ToLower(it.Text), q) {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the total number of rows, filtered or not.
func (l *TaskList) Len() int {
	return len(l.items)
}

// Selected returns the id of the highlighted row.
func (l *TaskList) Selected() (string, bool) {
	visible := l.Items()
	if l.cursor < 0 || l.cursor >= len(visible) {
		return "", false
	}
	return visible[l.cursor].ID, true
}

// MoveUp moves the selection up one row.
func (l *TaskList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
	l.scroll()
}

// MoveDown moves the selection down one row.
func (l *TaskList) MoveDown() {
	if l.cursor < len(l.Items())-1 {
		l.cursor++
	}
	l.scroll()
}

// SetFilter narrows the visible rows. An empty filter shows everything.
func (l *TaskList) SetFilter(filter string) {
	l.filter = strings.TrimSpace(filter)
	l.cursor = 0
	l.offset = 0
}

// Filter returns the active filter.
func (l *TaskList) Filter() string {
	return l.filter
}

// SetFocused toggles the selection highlight.
func (l *TaskList) SetFocused(focused bool) {
	l.focused = focused
}

// SetSize sets the component size.
func (l *TaskList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.scroll()
}

func (l *TaskList) clampCursor() {
	n := len(l.Items())
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.scroll()
}

// scroll keeps the cursor inside the rendered window.
func (l *TaskList) scroll() {
	if l.height <= 0 {
		l.offset = 0
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
}

// View renders the list.
func (l *TaskList) View() string {
	visible := l.Items()

	var b strings.Builder
	switch {
	case len(l.items) == 0:
		b.WriteString(EmptyStyle.Render("  No tasks yet."))
	case len(visible) == 0:
		b.WriteString(EmptyStyle.Render("  No task matches the filter."))
	default:
		end := len(visible)
		if l.height > 0 && l.offset+l.height < end {
			end = l.offset + l.height
		}
		for i := l.offset; i < end; i++ {
			if i > l.offset {
				b.WriteString("\n")
			}
			b.WriteString(l.renderItem(visible[i], i == l.cursor))
		}
	}

	style := lipgloss.NewStyle()
	if l.height > 0 {
		style = style.Height(l.height)
	}
	if l.width > 0 {
		style = style.Width(l.width)
	}
	return style.Render(b.String())
}

func (l *TaskList) renderItem(it ListItem, selected bool) string {
	switch {
	case selected && l.focused:
		return SelectedItemStyle.Render("> " + it.Text)
	case selected:
		return InactiveCursorStyle.Render("› ") + ItemStyle.Render(it.Text)
	default:
		return ItemStyle.Render("  " + it.Text)
	}
}
