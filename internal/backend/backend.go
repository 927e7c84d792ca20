// Package backend defines the command surface the client talks to. Every
// implementation is asynchronous from the caller's point of view and may
// fail on any call.
package backend

import (
	"context"
	"errors"

	"github.com/Paintersrp/noteplan/internal/note"
)

// ErrNotFound is returned by UpdateNote and ToggleTodoStatus for unknown ids.
var ErrNotFound = errors.New("not found")

type NoteSource interface {
	GetNotes(ctx context.Context) ([]note.Note, error)
}

type NoteUpdater interface {
	UpdateNote(ctx context.Context, id, title, content string, tags []string) error
}

type TagSource interface {
	GetAllTags(ctx context.Context) ([]string, error)
}

type TodoSource interface {
	GetTodos(ctx context.Context) ([]note.Todo, error)
}

// Backend is the complete persistence surface.
type Backend interface {
	NoteSource
	NoteUpdater
	TagSource
	TodoSource

	AddNote(ctx context.Context, title, content string, tags []string) (note.Note, error)
	// DeleteNote succeeds for ids that do not exist.
	DeleteNote(ctx context.Context, id string) error

	AddTodo(ctx context.Context, task string, isDaily bool) (note.Todo, error)
	// DeleteTodo succeeds for ids that do not exist.
	DeleteTodo(ctx context.Context, id string) error
	ToggleTodoStatus(ctx context.Context, id string) error
	// CheckAndResetDailyTodos un-completes daily todos at most once per
	// calendar day and reports whether any todo changed.
	CheckAndResetDailyTodos(ctx context.Context) (bool, error)

	Close() error
}

// NeedsDailyReset reports whether a reset is due for today given the date of
// the last one. Dates are ISO "YYYY-MM-DD" strings, so lexical order is
// calendar order.
func NeedsDailyReset(last, today string) bool {
	return last == "" || today > last
}

// DateFormat is the layout of the daily reset marker.
const DateFormat = "2006-01-02"
