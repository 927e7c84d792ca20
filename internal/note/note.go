// Package note defines the records shared by the caches, the views and the
// storage backends.
package note

import (
	"slices"
	"strings"
	"time"
)

// Note is a titled markdown document with a set of tags.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasTag reports whether the note carries tag. Tags are stored normalized,
// so the comparison is exact.
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Clone returns a copy that shares no memory with n.
func (n Note) Clone() Note {
	n.Tags = slices.Clone(n.Tags)
	return n
}

// Apply merges the editable fields into the note and stamps UpdatedAt.
func (n *Note) Apply(f Fields, at time.Time) {
	n.Title = f.Title
	n.Content = f.Content
	n.Tags = slices.Clone(f.Tags)
	n.UpdatedAt = at
}

// Todo is a single actionable item. Daily todos are un-completed by the
// backend once per calendar day.
type Todo struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	Completed bool      `json:"completed"`
	IsDaily   bool      `json:"is_daily"`
	CreatedAt time.Time `json:"created_at"`
}

// Fields is the editable subset of a note.
type Fields struct {
	Title   string
	Content string
	Tags    []string
}

// NoteInput is the validated payload of an add-note form.
type NoteInput struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
	Tags    []string
}

// TodoInput is the validated payload of an add-todo form.
type TodoInput struct {
	Task    string `validate:"required"`
	IsDaily bool
}

// EditInput is the validated payload of an editor save.
type EditInput struct {
	ID      string `validate:"required"`
	Title   string `validate:"required"`
	Content string
	Tags    []string
}

// Trimmed returns a copy with surrounding whitespace removed from the text
// fields.
func (in NoteInput) Trimmed() NoteInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	return in
}

func (in TodoInput) Trimmed() TodoInput {
	in.Task = strings.TrimSpace(in.Task)
	return in
}

func (in EditInput) Trimmed() EditInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	return in
}

// Fields converts a save payload into the fields patched into the cache.
func (in EditInput) Fields() Fields {
	return Fields{Title: in.Title, Content: in.Content, Tags: slices.Clone(in.Tags)}
}

// ShortID returns the first eight characters of id, which is how ids are
// shown in listings.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
