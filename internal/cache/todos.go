package cache

import (
	"context"
	"fmt"
	"slices"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/note"
)

// TodoCache is the client copy of the todo list. Todos are never patched
// locally; every mutation is followed by a Refresh.
type TodoCache struct {
	todos  []note.Todo
	loaded bool
	err    error
}

func NewTodoCache() *TodoCache {
	return &TodoCache{}
}

func (c *TodoCache) Refresh(ctx context.Context, src backend.TodoSource) error {
	todos, err := src.GetTodos(ctx)
	if err != nil {
		c.todos = nil
		c.loaded = false
		c.err = fmt.Errorf("failed to load todos: %w", err)
		return c.err
	}

	seen := make(map[string]struct{}, len(todos))
	c.todos = make([]note.Todo, 0, len(todos))
	for _, t := range todos {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		c.todos = append(c.todos, t)
	}
	c.loaded = true
	c.err = nil
	return nil
}

func (c *TodoCache) Todos() []note.Todo {
	return slices.Clone(c.todos)
}

func (c *TodoCache) Lookup(id string) (note.Todo, bool) {
	for _, t := range c.todos {
		if t.ID == id {
			return t, true
		}
	}
	return note.Todo{}, false
}

func (c *TodoCache) Len() int {
	return len(c.todos)
}

func (c *TodoCache) Loaded() bool {
	return c.loaded
}

func (c *TodoCache) Err() error {
	return c.err
}

func (c *TodoCache) ResolveID(prefix string) (string, error) {
	ids := make([]string, len(c.todos))
	for i, t := range c.todos {
		ids[i] = t.ID
	}
	return resolvePrefix(ids, prefix)
}
