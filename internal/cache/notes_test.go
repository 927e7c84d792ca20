package cache

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/Paintersrp/noteplan/internal/backend/backendtest"
	"github.com/Paintersrp/noteplan/internal/note"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func seeded(notes ...note.Note) *backendtest.Fake {
	f := backendtest.NewFake(nil)
	for _, n := range notes {
		f.SeedNote(n)
	}
	return f
}

func TestRefreshReplacesContents(t *testing.T) {
	ctx := context.Background()
	c := NewNoteCache(nil)
	f := seeded(note.Note{ID: "a", Title: "A"}, note.Note{ID: "b", Title: "B"})

	if err := c.Refresh(ctx, f); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if c.Len() != 2 || !c.Loaded() {
		t.Fatalf("expected two loaded notes, got %d", c.Len())
	}

	_ = f.DeleteNote(ctx, "a")
	if err := c.Refresh(ctx, f); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if _, ok := c.Lookup("a"); ok {
		t.Fatalf("expected deleted note to be gone after refresh")
	}
}

func TestRefreshDropsDuplicateIDs(t *testing.T) {
	c := NewNoteCache(nil)
	f := seeded(
		note.Note{ID: "a", Title: "first"},
		note.Note{ID: "a", Title: "second"},
		note.Note{ID: "b", Title: "other"},
	)

	if err := c.Refresh(context.Background(), f); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected duplicates to collapse, got %d notes", c.Len())
	}
	n, _ := c.Lookup("a")
	if n.Title != "first" {
		t.Fatalf("expected first occurrence to win, got %q", n.Title)
	}
}

func TestRefreshFailureClearsCache(t *testing.T) {
	ctx := context.Background()
	c := NewNoteCache(nil)
	f := seeded(note.Note{ID: "a"})
	_ = c.Refresh(ctx, f)

	boom := errors.New("disk on fire")
	f.Fail(backendtest.OpGetNotes, boom)
	err := c.Refresh(ctx, f)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if c.Len() != 0 || c.Loaded() {
		t.Fatalf("expected cache to be cleared on failure")
	}
	if !errors.Is(c.Err(), boom) {
		t.Fatalf("expected error to be retained, got %v", c.Err())
	}

	f.Fail(backendtest.OpGetNotes, nil)
	if err := c.Refresh(ctx, f); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if c.Err() != nil {
		t.Fatalf("expected error to be cleared after a successful refresh")
	}
}

func TestPatch(t *testing.T) {
	now := base.Add(time.Hour)
	c := NewNoteCache(func() time.Time { return now })
	c.Replace([]note.Note{{ID: "a", Title: "old", CreatedAt: base, UpdatedAt: base, Tags: []string{"x"}}})

	if !c.Patch("a", note.Fields{Title: "new", Content: "body", Tags: []string{"y"}}) {
		t.Fatalf("expected patch of cached note to succeed")
	}
	n, _ := c.Lookup("a")
	if n.Title != "new" || n.Content != "body" || !slices.Equal(n.Tags, []string{"y"}) {
		t.Fatalf("unexpected patched note: %+v", n)
	}
	if !n.UpdatedAt.Equal(now) || !n.CreatedAt.Equal(base) {
		t.Fatalf("expected updated_at to be stamped and created_at kept: %+v", n)
	}

	if c.Patch("missing", note.Fields{Title: "x"}) {
		t.Fatalf("expected patch of missing id to be a no-op")
	}
	if c.Len() != 1 {
		t.Fatalf("expected patch never to add notes")
	}
}

func TestNotesReturnsCopiesInFetchOrder(t *testing.T) {
	c := NewNoteCache(nil)
	c.Replace([]note.Note{{ID: "b", Tags: []string{"t"}}, {ID: "a"}})

	notes := c.Notes()
	if notes[0].ID != "b" || notes[1].ID != "a" {
		t.Fatalf("expected fetch order, got %v, %v", notes[0].ID, notes[1].ID)
	}
	notes[0].Tags[0] = "mutated"
	again, _ := c.Lookup("b")
	if again.Tags[0] != "t" {
		t.Fatalf("expected returned notes not to alias the cache")
	}
}

func TestResolveID(t *testing.T) {
	c := NewNoteCache(nil)
	c.Replace([]note.Note{{ID: "abc123"}, {ID: "abd456"}, {ID: "xyz"}})

	tests := []struct {
		prefix  string
		want    string
		wantErr error
	}{
		{prefix: "abc", want: "abc123"},
		{prefix: "xyz", want: "xyz"},
		{prefix: "ab", wantErr: ErrAmbiguousID},
		{prefix: "q", wantErr: ErrUnknownID},
		{prefix: "  ", wantErr: ErrUnknownID},
	}
	for _, tt := range tests {
		got, err := c.ResolveID(tt.prefix)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ResolveID(%q) error = %v, want %v", tt.prefix, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ResolveID(%q) = %q, %v; want %q", tt.prefix, got, err, tt.want)
		}
	}
}

func TestTodoCache(t *testing.T) {
	ctx := context.Background()
	f := backendtest.NewFake(nil)
	f.SeedTodo(note.Todo{ID: "t1", Task: "a"})
	f.SeedTodo(note.Todo{ID: "t1", Task: "dup"})
	f.SeedTodo(note.Todo{ID: "t2", Task: "b"})

	c := NewTodoCache()
	if err := c.Refresh(ctx, f); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected duplicate todo ids to collapse, got %d", c.Len())
	}
	if id, err := c.ResolveID("t2"); err != nil || id != "t2" {
		t.Fatalf("unexpected resolve result %q, %v", id, err)
	}

	f.Fail(backendtest.OpGetTodos, errors.New("offline"))
	if err := c.Refresh(ctx, f); err == nil {
		t.Fatalf("expected refresh error")
	}
	if c.Len() != 0 || c.Err() == nil {
		t.Fatalf("expected failed refresh to clear todos and keep the error")
	}
}
