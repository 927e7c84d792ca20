// Package pgstore implements the backend on PostgreSQL.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/parser"
)

const resetKey = "last_daily_reset_date"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	seq        BIGSERIAL,
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL,
	tags       TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS todos (
	seq        BIGSERIAL,
	id         TEXT PRIMARY KEY,
	task       TEXT NOT NULL,
	completed  BOOLEAN NOT NULL DEFAULT FALSE,
	is_daily   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

type Store struct {
	pool  *pgxpool.Pool
	now   func() time.Time
	newID func() string
	log   zerolog.Logger
}

type options struct {
	schema string
	now    func() time.Time
	log    zerolog.Logger
}

type Option func(*options)

// WithSchema places the tables in schema, creating it when missing.
func WithSchema(schema string) Option {
	return func(o *options) { o.schema = schema }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// Open connects to dsn and creates the tables if they do not exist.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	o := options{
		now: func() time.Time { return time.Now().UTC() },
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if o.schema != "" {
		cfg.ConnConfig.RuntimeParams["search_path"] = o.schema
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	if o.schema != "" {
		stmt := "CREATE SCHEMA IF NOT EXISTS " + pgx.Identifier{o.schema}.Sanitize()
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{
		pool:  pool,
		now:   o.now,
		newID: uuid.NewString,
		log:   o.log,
	}, nil
}

func (s *Store) GetNotes(ctx context.Context) ([]note.Note, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, content, tags, created_at, updated_at FROM notes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []note.Note{}
	for rows.Next() {
		var n note.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Tags, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		if n.Tags == nil {
			n.Tags = []string{}
		}
		n.CreatedAt = n.CreatedAt.UTC()
		n.UpdatedAt = n.UpdatedAt.UTC()
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Store) AddNote(ctx context.Context, title, content string, tags []string) (note.Note, error) {
	now := s.now().UTC()
	n := note.Note{
		ID:        s.newID(),
		Title:     title,
		Content:   content,
		Tags:      parser.NormalizeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO notes (id, title, content, tags, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.Title, n.Content, n.Tags, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to insert note: %w", err)
	}
	return n, nil
}

func (s *Store) UpdateNote(ctx context.Context, id, title, content string, tags []string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notes SET title = $2, content = $3, tags = $4, updated_at = $5 WHERE id = $1`,
		id, title, content, parser.NormalizeTags(tags), s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, backend.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (s *Store) GetAllTags(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT tag FROM notes, unnest(tags) AS tag ORDER BY tag`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (s *Store) GetTodos(ctx context.Context) ([]note.Todo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, task, completed, is_daily, created_at FROM todos ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	todos := []note.Todo{}
	for rows.Next() {
		var t note.Todo
		if err := rows.Scan(&t.ID, &t.Task, &t.Completed, &t.IsDaily, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (s *Store) AddTodo(ctx context.Context, task string, isDaily bool) (note.Todo, error) {
	t := note.Todo{ID: s.newID(), Task: task, IsDaily: isDaily, CreatedAt: s.now().UTC()}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO todos (id, task, completed, is_daily, created_at) VALUES ($1, $2, FALSE, $3, $4)`,
		t.ID, t.Task, t.IsDaily, t.CreatedAt)
	if err != nil {
		return note.Todo{}, fmt.Errorf("failed to insert todo: %w", err)
	}
	return t, nil
}

func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (s *Store) ToggleTodoStatus(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE todos SET completed = NOT completed WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to toggle todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("todo %s: %w", id, backend.ErrNotFound)
	}
	return nil
}

// CheckAndResetDailyTodos locks the reset marker row so concurrent clients
// reset at most once per day.
func (s *Store) CheckAndResetDailyTodos(ctx context.Context) (modified bool, err error) {
	today := s.now().UTC().Format(backend.DateFormat)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin reset: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx,
		`INSERT INTO meta (key, value) VALUES ($1, '') ON CONFLICT (key) DO NOTHING`, resetKey); err != nil {
		return false, fmt.Errorf("failed to seed reset marker: %w", err)
	}

	var last string
	err = tx.QueryRow(ctx, `SELECT value FROM meta WHERE key = $1 FOR UPDATE`, resetKey).Scan(&last)
	if errors.Is(err, pgx.ErrNoRows) {
		last, err = "", nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read reset marker: %w", err)
	}

	if !backend.NeedsDailyReset(last, today) {
		return false, tx.Commit(ctx)
	}

	tag, err := tx.Exec(ctx, `UPDATE todos SET completed = FALSE WHERE is_daily AND completed`)
	if err != nil {
		return false, fmt.Errorf("failed to reset daily todos: %w", err)
	}
	if _, err = tx.Exec(ctx, `UPDATE meta SET value = $2 WHERE key = $1`, resetKey, today); err != nil {
		return false, fmt.Errorf("failed to store reset marker: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit reset: %w", err)
	}

	modified = tag.RowsAffected() > 0
	if modified {
		s.log.Info().Str("date", today).Int64("todos", tag.RowsAffected()).Msg("daily todos reset")
	}
	return modified, nil
}

// DropSchema removes schema and everything in it. Used to clean up
// isolated test schemas.
func (s *Store) DropSchema(ctx context.Context, schema string) error {
	_, err := s.pool.Exec(ctx, "DROP SCHEMA IF EXISTS "+pgx.Identifier{schema}.Sanitize()+" CASCADE")
	return err
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
