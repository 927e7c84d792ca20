// Package boltstore implements the backend on an embedded bbolt database.
package boltstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/parser"
)

var (
	bucketNotes = []byte("notes")
	bucketTodos = []byte("todos")
	bucketMeta  = []byte("meta")
	keyReset    = []byte("last_daily_reset_date")
)

// DefaultFileName is the database file inside the data directory.
const DefaultFileName = "note_plan_data.db"

type noteRecord struct {
	Seq uint64 `json:"seq"`
	note.Note
}

type todoRecord struct {
	Seq uint64 `json:"seq"`
	note.Todo
}

type Store struct {
	db    *bolt.DB
	now   func() time.Time
	newID func() string
	log   zerolog.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open opens or creates the database at path. bbolt holds an exclusive
// lock, so a second process waits at most two seconds before failing.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketNotes, bucketTodos, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	s := &Store{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) GetNotes(ctx context.Context) ([]note.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var records []noteRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketNotes).ForEach(func(_, v []byte) error {
			var rec noteRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Seq < records[j].Seq })
	notes := make([]note.Note, len(records))
	for i, rec := range records {
		notes[i] = rec.Note
		if notes[i].Tags == nil {
			notes[i].Tags = []string{}
		}
	}
	return notes, nil
}

func (s *Store) AddNote(ctx context.Context, title, content string, tags []string) (note.Note, error) {
	if err := ctx.Err(); err != nil {
		return note.Note{}, err
	}
	now := s.now().UTC()
	n := note.Note{
		ID:        s.newID(),
		Title:     title,
		Content:   content,
		Tags:      parser.NormalizeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return putJSON(b, n.ID, noteRecord{Seq: seq, Note: n})
	})
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to insert note: %w", err)
	}
	return n, nil
}

func (s *Store) UpdateNote(ctx context.Context, id, title, content string, tags []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		var rec noteRecord
		found, err := getJSON(b, id, &rec)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("note %s: %w", id, backend.ErrNotFound)
		}
		rec.Note.Apply(note.Fields{Title: title, Content: content, Tags: parser.NormalizeTags(tags)}, s.now().UTC())
		return putJSON(b, id, rec)
	})
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketNotes).Delete([]byte(id))
	})
}

func (s *Store) GetAllTags(ctx context.Context) ([]string, error) {
	notes, err := s.GetNotes(ctx)
	if err != nil {
		return nil, err
	}
	counter := parser.NewTagCounter()
	for _, n := range notes {
		counter.Add(n.Tags)
	}
	return counter.Tags(), nil
}

func (s *Store) GetTodos(ctx context.Context) ([]note.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var records []todoRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTodos).ForEach(func(_, v []byte) error {
			var rec todoRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read todos: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Seq < records[j].Seq })
	todos := make([]note.Todo, len(records))
	for i, rec := range records {
		todos[i] = rec.Todo
	}
	return todos, nil
}

func (s *Store) AddTodo(ctx context.Context, task string, isDaily bool) (note.Todo, error) {
	if err := ctx.Err(); err != nil {
		return note.Todo{}, err
	}
	t := note.Todo{ID: s.newID(), Task: task, IsDaily: isDaily, CreatedAt: s.now().UTC()}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTodos)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return putJSON(b, t.ID, todoRecord{Seq: seq, Todo: t})
	})
	if err != nil {
		return note.Todo{}, fmt.Errorf("failed to insert todo: %w", err)
	}
	return t, nil
}

func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTodos).Delete([]byte(id))
	})
}

func (s *Store) ToggleTodoStatus(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTodos)
		var rec todoRecord
		found, err := getJSON(b, id, &rec)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("todo %s: %w", id, backend.ErrNotFound)
		}
		rec.Completed = !rec.Completed
		return putJSON(b, id, rec)
	})
}

func (s *Store) CheckAndResetDailyTodos(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	today := s.now().UTC().Format(backend.DateFormat)

	modified := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		if !backend.NeedsDailyReset(string(meta.Get(keyReset)), today) {
			return nil
		}

		todos := tx.Bucket(bucketTodos)
		var due []todoRecord
		err := todos.ForEach(func(_, v []byte) error {
			var rec todoRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			if rec.IsDaily && rec.Completed {
				due = append(due, rec)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, rec := range due {
			rec.Completed = false
			if err := putJSON(todos, rec.ID, rec); err != nil {
				return err
			}
		}
		modified = len(due) > 0
		return meta.Put(keyReset, []byte(today))
	})
	if err != nil {
		return false, fmt.Errorf("failed to reset daily todos: %w", err)
	}
	if modified {
		s.log.Info().Str("date", today).Msg("daily todos reset")
	}
	return modified, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func putJSON(b *bolt.Bucket, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(key), raw)
}

func getJSON(b *bolt.Bucket, key string, v any) (bool, error) {
	raw := b.Get([]byte(key))
	if raw == nil {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}
