package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header shows the title, the task count, the active filter and the last error.
type Header struct {
	width   int
	total   int
	visible int
	filter  string
	status  string
}

// NewHeader creates a new header component.
func NewHeader() *Header {
	return &Header{}
}

// SetCounts sets the total number of tasks and how many pass the filter.
func (h *Header) SetCounts(total, visible int) {
	h.total = total
	h.visible = visible
}

// SetFilter sets the filter shown next to the count.
func (h *Header) SetFilter(filter string) {
	h.filter = filter
}

// SetStatus sets an error line; empty clears it.
func (h *Header) SetStatus(status string) {
	h.status = status
}

// Status returns the current error line.
func (h *Header) Status() string {
	return h.status
}

// SetWidth sets the component width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// View renders the header.
func (h *Header) View() string {
	left := HeaderTitleStyle.Render("Tasks")

	count := fmt.Sprintf("%d", h.total)
	if h.filter != "" {
		count = fmt.Sprintf("%d/%d", h.visible, h.total)
	}
	right := HeaderCountStyle.Render(count)
	if h.filter != "" {
		right = HeaderFilterStyle.Render("/"+h.filter+" ") + right
	}

	padding := h.width - lipgloss.Width(left) - lipgloss.Width(right) - 2 // -2 for padding
	if padding < 1 {
		padding = 1
	}

	line := HeaderStyle.Width(h.width).Render(left + strings.Repeat(" ", padding) + right)
	if h.status == "" {
		return line
	}
	return line + "\n" + ErrorStyle.Render("  "+h.status)
}
