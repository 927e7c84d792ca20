// Package filestore keeps notes and todos in a single JSON document on disk.
package filestore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/parser"
)

// DefaultFileName is the name of the data document inside the data directory.
const DefaultFileName = "note_plan_data.json"

type document struct {
	Notes              []note.Note `json:"notes"`
	Todos              []note.Todo `json:"todos"`
	LastDailyResetDate *string     `json:"last_daily_reset_date"`
}

func (d document) clone() document {
	out := document{
		Notes: make([]note.Note, len(d.Notes)),
		Todos: slices.Clone(d.Todos),
	}
	for i, n := range d.Notes {
		out.Notes[i] = n.Clone()
	}
	if d.LastDailyResetDate != nil {
		date := *d.LastDailyResetDate
		out.LastDailyResetDate = &date
	}
	return out
}

// Store implements backend.Backend on top of one JSON file. Writes replace
// the file atomically.
type Store struct {
	mu    sync.Mutex
	path  string
	data  document
	sum   [sha256.Size]byte
	now   func() time.Time
	newID func() string
	log   zerolog.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open reads the document at path. A missing or empty file yields an empty
// store; a file that cannot be decoded is an error and is left untouched.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("data file path cannot be empty")
	}

	s := &Store{
		path:  path,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the file if another process changed it and reports
// whether the in-memory state was replaced.
func (s *Store) Reload() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (bool, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		raw = nil
	} else if err != nil {
		return false, fmt.Errorf("failed to read data file: %w", err)
	}

	sum := sha256.Sum256(raw)
	if sum == s.sum && s.data.Notes != nil {
		return false, nil
	}

	var doc document
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return false, fmt.Errorf("failed to decode data file %s: %w", s.path, err)
		}
	}
	if doc.Notes == nil {
		doc.Notes = []note.Note{}
	}
	if doc.Todos == nil {
		doc.Todos = []note.Todo{}
	}
	for i := range doc.Notes {
		doc.Notes[i].Tags = parser.NormalizeTags(doc.Notes[i].Tags)
	}

	s.data = doc
	s.sum = sum
	return true, nil
}

// update applies fn to a copy of the document and commits it only once the
// file has been written.
func (s *Store) update(fn func(d *document) (bool, error)) error {
	next := s.data.clone()
	changed, err := fn(&next)
	if err != nil || !changed {
		return err
	}

	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}
	if err := writeAtomic(s.path, raw); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("save failed")
		return fmt.Errorf("failed to save data file: %w", err)
	}

	s.data = next
	s.sum = sha256.Sum256(raw)
	return nil
}

func writeAtomic(path string, raw []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	file, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(file.Name())
	}()

	if _, err := file.Write(raw); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(file.Name(), path)
}

func (s *Store) GetNotes(ctx context.Context) ([]note.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]note.Note, len(s.data.Notes))
	for i, n := range s.data.Notes {
		out[i] = n.Clone()
	}
	return out, nil
}

func (s *Store) AddNote(ctx context.Context, title, content string, tags []string) (note.Note, error) {
	if err := ctx.Err(); err != nil {
		return note.Note{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := note.Note{
		ID:        s.newID(),
		Title:     title,
		Content:   content,
		Tags:      parser.NormalizeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.update(func(d *document) (bool, error) {
		d.Notes = append(d.Notes, n)
		return true, nil
	})
	if err != nil {
		return note.Note{}, err
	}
	return n.Clone(), nil
}

func (s *Store) UpdateNote(ctx context.Context, id, title, content string, tags []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(func(d *document) (bool, error) {
		for i := range d.Notes {
			if d.Notes[i].ID != id {
				continue
			}
			d.Notes[i].Apply(note.Fields{
				Title:   title,
				Content: content,
				Tags:    parser.NormalizeTags(tags),
			}, s.now())
			return true, nil
		}
		return false, fmt.Errorf("note %s: %w", id, backend.ErrNotFound)
	})
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(func(d *document) (bool, error) {
		before := len(d.Notes)
		d.Notes = slices.DeleteFunc(d.Notes, func(n note.Note) bool { return n.ID == id })
		return len(d.Notes) < before, nil
	})
}

func (s *Store) GetAllTags(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	tags := []string{}
	for _, n := range s.data.Notes {
		for _, tag := range n.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func (s *Store) GetTodos(ctx context.Context) ([]note.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Todos), nil
}

func (s *Store) AddTodo(ctx context.Context, task string, isDaily bool) (note.Todo, error) {
	if err := ctx.Err(); err != nil {
		return note.Todo{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := note.Todo{
		ID:        s.newID(),
		Task:      task,
		IsDaily:   isDaily,
		CreatedAt: s.now(),
	}
	err := s.update(func(d *document) (bool, error) {
		d.Todos = append(d.Todos, t)
		return true, nil
	})
	if err != nil {
		return note.Todo{}, err
	}
	return t, nil
}

func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(func(d *document) (bool, error) {
		before := len(d.Todos)
		d.Todos = slices.DeleteFunc(d.Todos, func(t note.Todo) bool { return t.ID == id })
		return len(d.Todos) < before, nil
	})
}

func (s *Store) ToggleTodoStatus(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(func(d *document) (bool, error) {
		for i := range d.Todos {
			if d.Todos[i].ID == id {
				d.Todos[i].Completed = !d.Todos[i].Completed
				return true, nil
			}
		}
		return false, fmt.Errorf("todo %s: %w", id, backend.ErrNotFound)
	})
}

func (s *Store) CheckAndResetDailyTodos(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().UTC().Format(backend.DateFormat)
	last := ""
	if s.data.LastDailyResetDate != nil {
		last = *s.data.LastDailyResetDate
	}
	if !backend.NeedsDailyReset(last, today) {
		return false, nil
	}

	modified := false
	err := s.update(func(d *document) (bool, error) {
		for i := range d.Todos {
			if d.Todos[i].IsDaily && d.Todos[i].Completed {
				d.Todos[i].Completed = false
				modified = true
			}
		}
		d.LastDailyResetDate = &today
		return true, nil
	})
	if err != nil {
		return false, err
	}
	if modified {
		s.log.Info().Str("date", today).Msg("daily todos reset")
	}
	return modified, nil
}

func (s *Store) Close() error {
	return nil
}
