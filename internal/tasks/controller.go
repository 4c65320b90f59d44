package tasks

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

var (
	ErrEmptyText    = errors.New("task text is empty")
	ErrTaskNotFound = errors.New("task not found")
)

// Controller owns the live collection and persists it after every mutation.
// It has no rendering concerns; surfaces call it and render what it returns.
type Controller struct {
	mu     sync.Mutex
	store  *Store
	tasks  Collection
	newID  func() string
	logger *slog.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithIDFunc replaces the task id generator.
func WithIDFunc(fn func() string) ControllerOption {
	return func(c *Controller) { c.newID = fn }
}

// WithLogger sets the logger used for mutation records.
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// NewController loads the collection from store once and returns a controller
// owning it.
func NewController(ctx context.Context, store *Store, opts ...ControllerOption) (*Controller, error) {
	c := &Controller{
		store:  store,
		newID:  NewTaskID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.tasks = loaded
	c.logger.Debug("tasks loaded", "count", len(loaded))
	return c, nil
}

// CreateTask appends a task with the given text and persists the collection.
// Blank text is rejected with ErrEmptyText and changes nothing.
func (c *Controller) CreateTask(ctx context.Context, text string) (Task, error) {
	if IsBlank(text) {
		return Task{}, ErrEmptyText
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t := Task{ID: c.uniqueID(), Text: text}
	c.tasks = append(c.tasks, t)
	c.logger.Debug("task created", "id", t.ID)

	return t, c.store.Save(ctx, c.tasks)
}

// RenameTask replaces the text of the task with id, keeping its position and
// id. Blank text (ErrEmptyText) and unknown ids (ErrTaskNotFound) change nothing.
func (c *Controller) RenameTask(ctx context.Context, id, newText string) (Task, error) {
	if IsBlank(newText) {
		return Task{}, ErrEmptyText
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.tasks.Index(id)
	if i < 0 {
		return Task{}, ErrTaskNotFound
	}
	c.tasks[i].Text = newText
	c.logger.Debug("task renamed", "id", id)

	return c.tasks[i], c.store.Save(ctx, c.tasks)
}

// DeleteTask removes the task with id if present and persists the result
// either way. An unknown id is not an error.
func (c *Controller) DeleteTask(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.tasks[:0:0]
	for _, t := range c.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) != len(c.tasks) {
		c.logger.Debug("task deleted", "id", id)
	}
	c.tasks = kept

	return c.store.Save(ctx, c.tasks)
}

// ClearAll empties the collection and erases the persisted value.
func (c *Controller) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("tasks cleared", "count", len(c.tasks))
	c.tasks = Collection{}
	return c.store.Clear(ctx)
}

// ListTasks returns a snapshot of the collection.
func (c *Controller) ListTasks() Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasks.Clone()
}

// Task returns the task with id.
func (c *Controller) Task(id string) (Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.tasks.Index(id)
	if i < 0 {
		return Task{}, false
	}
	return c.tasks[i], true
}

// FilterTasks returns the tasks whose text contains query, ignoring case.
// An empty query matches everything.
func (c *Controller) FilterTasks(query string) Collection {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.tasks.Clone()
	}
	out := Collection{}
	for _, t := range c.tasks {
		if strings.Contains(strings.ToLower(t.Text), q) {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of tasks.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// uniqueID draws ids until one is not already in the collection. Callers hold mu.
func (c *Controller) uniqueID() string {
	for {
		id := c.newID()
		if !c.tasks.Has(id) {
			return id
		}
	}
}
