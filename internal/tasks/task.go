// Package tasks owns the task list: the records, their persistence and the
// controller every surface mutates them through.
package tasks

import (
	"strings"

	"github.com/google/uuid"
)

// Task is a single to-do item with a stable identifier and mutable text.
type Task struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Collection is the ordered set of tasks, in insertion order. It is the unit
// of persistence: every save replaces the whole collection.
type Collection []Task

// Clone returns a copy that shares no backing array with c.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Index returns the position of the task with id, or -1.
func (c Collection) Index(id string) int {
	for i, t := range c {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Has reports whether a task with id is present.
func (c Collection) Has(id string) bool {
	return c.Index(id) >= 0
}

// IsBlank reports whether text has nothing left once surrounding whitespace is
// stripped.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// NewTaskID returns a fresh opaque task identifier.
func NewTaskID() string {
	u := uuid.New().String()
	return "task_" + strings.ReplaceAll(u[:13], "-", "")
}
