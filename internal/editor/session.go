// Package editor tracks the note open for editing and writes saves back to
// the backend and the note cache.
package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/cache"
	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/parser"
)

var (
	ErrNoSession    = errors.New("no note is open for editing")
	ErrNoteNotFound = errors.New("note could not be loaded for editing")
)

// Draft is the raw content of the editor fields. Tags is the comma
// separated text of the tag input.
type Draft struct {
	Title   string
	Content string
	Tags    string
}

// View is what the editor screen displays.
type View struct {
	ID        string
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TagsText renders the tags back into the tag input format.
func (v View) TagsText() string {
	return parser.FormatTags(v.Tags)
}

// Draft returns the view's fields as unedited form input.
func (v View) Draft() Draft {
	return Draft{Title: v.Title, Content: v.Content, Tags: v.TagsText()}
}

// Session holds at most one open note. A zero Session is closed.
type Session struct {
	view   View
	active bool
	now    func() time.Time
}

func NewSession(now func() time.Time) *Session {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Session{now: now}
}

func (s *Session) Active() bool {
	return s.active
}

// ID returns the id of the open note, or "" when closed.
func (s *Session) ID() string {
	if !s.active {
		return ""
	}
	return s.view.ID
}

func (s *Session) View() (View, bool) {
	if !s.active {
		return View{}, false
	}
	v := s.view
	v.Tags = slices.Clone(v.Tags)
	return v, true
}

// Open loads id into the editor. A cache miss triggers one refresh; if the
// note is still missing the session stays closed and ErrNoteNotFound is
// returned.
func (s *Session) Open(ctx context.Context, id string, c *cache.NoteCache, src backend.NoteSource) error {
	n, ok := c.Lookup(id)
	if !ok {
		if err := c.Refresh(ctx, src); err != nil {
			return fmt.Errorf("%w: %w", ErrNoteNotFound, err)
		}
		n, ok = c.Lookup(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNoteNotFound, note.ShortID(id))
		}
	}

	s.view = View{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      slices.Clone(n.Tags),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	s.active = true
	return nil
}

// Save validates d and sends it to the backend. On success the cached note
// is patched and the session shows the saved values with a locally stamped
// update time. On any failure neither the cache nor the session changes.
func (s *Session) Save(ctx context.Context, d Draft, c *cache.NoteCache, u backend.NoteUpdater) error {
	if !s.active {
		return ErrNoSession
	}

	in := note.EditInput{
		ID:      s.view.ID,
		Title:   d.Title,
		Content: d.Content,
		Tags:    parser.ParseTags(d.Tags),
	}.Trimmed()
	if err := note.Validate(in); err != nil {
		return err
	}

	if err := u.UpdateNote(ctx, in.ID, in.Title, in.Content, in.Tags); err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}

	updatedAt := s.now()
	if c.Patch(in.ID, in.Fields()) {
		if n, ok := c.Lookup(in.ID); ok {
			updatedAt = n.UpdatedAt
		}
	}

	s.view.Title = in.Title
	s.view.Content = in.Content
	s.view.Tags = slices.Clone(in.Tags)
	s.view.UpdatedAt = updatedAt
	return nil
}

// Close ends the session. Reloading the main view is up to the caller.
func (s *Session) Close() {
	s.view = View{}
	s.active = false
}
