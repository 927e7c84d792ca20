// Package app owns the client state and routes every user action through a
// single dispatch table.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/cache"
	"github.com/Paintersrp/noteplan/internal/editor"
	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/internal/views"
)

type Screen int

const (
	ScreenMain Screen = iota
	ScreenEditor
)

type AlertKind int

const (
	AlertError AlertKind = iota
	AlertValidation
	AlertNotFound
)

// Alert is a blocking message the user has to dismiss.
type Alert struct {
	Kind    AlertKind
	Message string
}

// Snapshot is the complete rendered state after a dispatch.
type Snapshot struct {
	Screen  Screen
	Filter  string
	Sidebar views.Sidebar
	Notes   views.NoteList
	Todos   views.TodoList
	Editor  editor.View
	Alert   *Alert
	// Status is a non-blocking notice from the last dispatch.
	Status string
	// Created is the id of the note or todo added by the last dispatch.
	Created string
}

type handler func(ctx context.Context, log zerolog.Logger, a Action) error

// reloader is implemented by backends that cache a file which other
// processes may rewrite.
type reloader interface {
	Reload() (bool, error)
}

// Controller holds the caches, the filter, the sidebar and the editor
// session. Dispatches are serialized, so a handler always sees the state
// left by the previous one.
type Controller struct {
	mu       sync.Mutex
	backend  backend.Backend
	notes    *cache.NoteCache
	todos    *cache.TodoCache
	filter   *state.FilterState
	sidebar  *views.SidebarController
	session  *editor.Session
	handlers map[ActionKind]handler
	log      zerolog.Logger
	now      func() time.Time

	screen  Screen
	alert   *Alert
	status  string
	created string

	snapMu    sync.RWMutex
	published Snapshot
}

type Option func(*Controller)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func New(b backend.Backend, opts ...Option) *Controller {
	c := &Controller{
		backend: b,
		log:     zerolog.Nop(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}

	c.notes = cache.NewNoteCache(c.now)
	c.todos = cache.NewTodoCache()
	c.filter = state.NewFilterState()
	c.sidebar = views.NewSidebarController(c.log)
	c.session = editor.NewSession(c.now)
	c.handlers = map[ActionKind]handler{
		ActionStartup:        c.handleStartup,
		ActionFocus:          c.handleFocus,
		ActionRefresh:        c.handleRefresh,
		ActionExternalChange: c.handleExternalChange,
		ActionSelectAll:      c.handleSelectAll,
		ActionSelectTag:      c.handleSelectTag,
		ActionOpenNote:       c.handleOpenNote,
		ActionSaveNote:       c.handleSaveNote,
		ActionCloseEditor:    c.handleCloseEditor,
		ActionAddNote:        c.handleAddNote,
		ActionAddTodo:        c.handleAddTodo,
		ActionDeleteNote:     c.handleDeleteNote,
		ActionDeleteTodo:     c.handleDeleteTodo,
		ActionToggleTodo:     c.handleToggleTodo,
	}
	c.rebuild()
	c.publish()
	return c
}

// Dispatch runs the handler for a and publishes the resulting snapshot. A
// returned error has already been turned into an alert on the snapshot.
func (c *Controller) Dispatch(ctx context.Context, a Action) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.handlers[a.Kind]
	if !ok {
		return c.Snapshot(), fmt.Errorf("unknown action %q", a.Kind)
	}

	log := c.log.With().Str("action", string(a.Kind)).Logger()
	log.Debug().Str("id", a.ID).Str("tag", a.Tag).Msg("dispatch")

	c.status = ""
	c.created = ""
	err := h(ctx, log, a)
	if err != nil {
		c.raise(log, err)
	}
	c.rebuild()
	return c.publish(), err
}

// Snapshot returns the last published state.
func (c *Controller) Snapshot() Snapshot {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return c.published
}

// DismissAlert clears the blocking alert.
func (c *Controller) DismissAlert() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alert = nil
	return c.publish()
}

// Note returns the cached note for id or a unique id prefix.
func (c *Controller) Note(id string) (note.Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	full, err := c.notes.ResolveID(id)
	if err != nil {
		return note.Note{}, err
	}
	n, _ := c.notes.Lookup(full)
	return n, nil
}

// FilteredNotes returns the notes passing the active filter, newest first.
func (c *Controller) FilteredNotes() []note.Note {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []note.Note
	for _, n := range c.notes.Notes() {
		if c.filter.Matches(n.Tags) {
			out = append(out, n)
		}
	}
	views.SortByUpdated(out)
	return out
}

func (c *Controller) raise(log zerolog.Logger, err error) {
	switch {
	case note.IsValidation(err):
		log.Debug().Err(err).Msg("input rejected")
		c.alert = &Alert{Kind: AlertValidation, Message: err.Error()}
	case errors.Is(err, editor.ErrNoteNotFound):
		log.Warn().Err(err).Msg("note unavailable")
		c.alert = &Alert{Kind: AlertNotFound, Message: "Could not load the note for editing."}
	default:
		log.Error().Err(err).Msg("action failed")
		c.alert = &Alert{Kind: AlertError, Message: err.Error()}
	}
}

func (c *Controller) rebuild() {
	c.sidebar.Rebuild(c.notes.Notes(), c.filter)
}

func (c *Controller) publish() Snapshot {
	snap := Snapshot{
		Screen:  c.screen,
		Filter:  c.filter.Label(),
		Sidebar: c.sidebar.Sidebar(),
		Notes:   views.BuildNoteList(c.notes, c.filter),
		Todos:   views.BuildTodoList(c.todos),
		Alert:   c.alert,
		Status:  c.status,
		Created: c.created,
	}
	if v, ok := c.session.View(); ok {
		snap.Editor = v
	}

	c.snapMu.Lock()
	c.published = snap
	c.snapMu.Unlock()
	return snap
}
