// Package cache holds the client-side copies of backend data.
package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/note"
)

var (
	ErrUnknownID   = errors.New("no record matches id")
	ErrAmbiguousID = errors.New("id prefix matches more than one record")
)

// NoteCache is the client copy of every note. It is replaced wholesale on
// Refresh, patched in place after confirmed edits and cleared when a
// refresh fails. It is owned by a single controller and not safe for
// concurrent use.
type NoteCache struct {
	order  []string
	byID   map[string]note.Note
	loaded bool
	err    error
	now    func() time.Time
}

func NewNoteCache(now func() time.Time) *NoteCache {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &NoteCache{byID: make(map[string]note.Note), now: now}
}

// Refresh replaces the cache with the backend's notes. On failure the cache
// is emptied and the error is kept for the views.
func (c *NoteCache) Refresh(ctx context.Context, src backend.NoteSource) error {
	notes, err := src.GetNotes(ctx)
	if err != nil {
		c.order = nil
		c.byID = make(map[string]note.Note)
		c.loaded = false
		c.err = fmt.Errorf("failed to load notes: %w", err)
		return c.err
	}

	c.Replace(notes)
	return nil
}

// Replace installs notes as the full cache contents. Later duplicates of an
// id are dropped.
func (c *NoteCache) Replace(notes []note.Note) {
	c.order = make([]string, 0, len(notes))
	c.byID = make(map[string]note.Note, len(notes))
	for _, n := range notes {
		if _, dup := c.byID[n.ID]; dup {
			continue
		}
		c.order = append(c.order, n.ID)
		c.byID[n.ID] = n.Clone()
	}
	c.loaded = true
	c.err = nil
}

// Patch merges fields into the cached note and stamps UpdatedAt with the
// current time. It reports false, changing nothing, if id is not cached.
func (c *NoteCache) Patch(id string, f note.Fields) bool {
	n, ok := c.byID[id]
	if !ok {
		return false
	}
	n.Apply(f, c.now())
	c.byID[id] = n
	return true
}

func (c *NoteCache) Lookup(id string) (note.Note, bool) {
	n, ok := c.byID[id]
	if !ok {
		return note.Note{}, false
	}
	return n.Clone(), true
}

// Notes returns copies of every cached note in fetch order.
func (c *NoteCache) Notes() []note.Note {
	out := make([]note.Note, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].Clone())
	}
	return out
}

func (c *NoteCache) Len() int {
	return len(c.order)
}

// Loaded reports whether the last refresh succeeded.
func (c *NoteCache) Loaded() bool {
	return c.loaded
}

// Err returns the error of the last refresh, or nil.
func (c *NoteCache) Err() error {
	return c.err
}

// ResolveID expands a unique id prefix to the full id.
func (c *NoteCache) ResolveID(prefix string) (string, error) {
	return resolvePrefix(c.order, prefix)
}

func resolvePrefix(ids []string, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrUnknownID
	}

	if slices.Contains(ids, prefix) {
		return prefix, nil
	}

	match := ""
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%q: %w", prefix, ErrAmbiguousID)
		}
		match = id
	}
	if match == "" {
		return "", fmt.Errorf("%q: %w", prefix, ErrUnknownID)
	}
	return match, nil
}
