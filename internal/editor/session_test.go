package editor

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/backend/backendtest"
	"github.com/Paintersrp/noteplan/internal/cache"
	"github.com/Paintersrp/noteplan/internal/note"
)

type fixture struct {
	ctx     context.Context
	clock   *backendtest.Clock
	fake    *backendtest.Fake
	cache   *cache.NoteCache
	session *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := backendtest.NewClock(backendtest.Start)
	f := &fixture{
		ctx:     context.Background(),
		clock:   clock,
		fake:    backendtest.NewFake(clock.Now),
		cache:   cache.NewNoteCache(clock.Now),
		session: NewSession(clock.Now),
	}
	f.fake.SeedNote(note.Note{
		ID:        "n1",
		Title:     "Groceries",
		Content:   "eggs",
		Tags:      []string{"home"},
		CreatedAt: backendtest.Start,
		UpdatedAt: backendtest.Start,
	})
	return f
}

func TestOpenFromCache(t *testing.T) {
	f := newFixture(t)
	if err := f.cache.Refresh(f.ctx, f.fake); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	f.fake.ResetCalls()

	if err := f.session.Open(f.ctx, "n1", f.cache, f.fake); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if got := f.fake.CallCount(backendtest.OpGetNotes); got != 0 {
		t.Fatalf("expected a cache hit to skip the backend, got %d fetches", got)
	}

	v, ok := f.session.View()
	if !ok || v.ID != "n1" || v.Title != "Groceries" || v.TagsText() != "home" {
		t.Fatalf("unexpected view %+v", v)
	}
	if f.session.ID() != "n1" {
		t.Fatalf("expected session id n1, got %q", f.session.ID())
	}
}

func TestOpenRefreshesOnceOnMiss(t *testing.T) {
	f := newFixture(t)

	if err := f.session.Open(f.ctx, "n1", f.cache, f.fake); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if got := f.fake.CallCount(backendtest.OpGetNotes); got != 1 {
		t.Fatalf("expected one refresh, got %d", got)
	}

	f.session.Close()
	f.fake.ResetCalls()
	err := f.session.Open(f.ctx, "missing", f.cache, f.fake)
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
	if got := f.fake.CallCount(backendtest.OpGetNotes); got != 1 {
		t.Fatalf("expected exactly one refresh for a miss, got %d", got)
	}
	if f.session.Active() {
		t.Fatalf("expected the session to stay closed")
	}
}

func TestOpenFailsWhenRefreshFails(t *testing.T) {
	f := newFixture(t)
	f.fake.Fail(backendtest.OpGetNotes, errors.New("offline"))

	err := f.session.Open(f.ctx, "n1", f.cache, f.fake)
	if !errors.Is(err, ErrNoteNotFound) || f.session.Active() {
		t.Fatalf("expected a closed session and ErrNoteNotFound, got %v", err)
	}
}

func TestSaveRequiresSession(t *testing.T) {
	f := newFixture(t)

	err := f.session.Save(f.ctx, Draft{Title: "x"}, f.cache, f.fake)
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if got := f.fake.CallCount(backendtest.OpUpdateNote); got != 0 {
		t.Fatalf("expected no backend call, got %d", got)
	}
}

func TestSaveRejectsEmptyTitle(t *testing.T) {
	f := newFixture(t)
	if err := f.session.Open(f.ctx, "n1", f.cache, f.fake); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	err := f.session.Save(f.ctx, Draft{Title: "   ", Content: "eggs"}, f.cache, f.fake)
	if !note.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if got := f.fake.CallCount(backendtest.OpUpdateNote); got != 0 {
		t.Fatalf("expected no backend call, got %d", got)
	}
	if v, _ := f.session.View(); v.Title != "Groceries" {
		t.Fatalf("expected the session to keep its title, got %q", v.Title)
	}
}

func TestSavePatchesCache(t *testing.T) {
	f := newFixture(t)
	if err := f.session.Open(f.ctx, "n1", f.cache, f.fake); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	f.clock.Advance(time.Hour)
	f.fake.ResetCalls()

	draft := Draft{Title: " Shopping ", Content: "eggs\nmilk\n", Tags: "Home, errands, home"}
	if err := f.session.Save(f.ctx, draft, f.cache, f.fake); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if calls := f.fake.Calls(); !reflect.DeepEqual(calls, []backendtest.Op{backendtest.OpUpdateNote}) {
		t.Fatalf("expected a single update and no refetch, got %v", calls)
	}

	cached, ok := f.cache.Lookup("n1")
	if !ok {
		t.Fatalf("expected note to stay cached")
	}
	if cached.Title != "Shopping" || cached.Content != "eggs\nmilk" {
		t.Fatalf("expected trimmed fields in cache, got %+v", cached)
	}
	if !reflect.DeepEqual(cached.Tags, []string{"errands", "home"}) {
		t.Fatalf("expected normalized tags, got %v", cached.Tags)
	}
	want := backendtest.Start.Add(time.Hour)
	if !cached.UpdatedAt.Equal(want) {
		t.Fatalf("expected updated_at %v, got %v", want, cached.UpdatedAt)
	}

	v, _ := f.session.View()
	if v.Title != "Shopping" || !v.UpdatedAt.Equal(want) || v.TagsText() != "errands, home" {
		t.Fatalf("unexpected view after save %+v", v)
	}
}

func TestSaveFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	if err := f.session.Open(f.ctx, "n1", f.cache, f.fake); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	before, _ := f.cache.Lookup("n1")
	viewBefore, _ := f.session.View()

	f.fake.Fail(backendtest.OpUpdateNote, errors.New("disk full"))
	err := f.session.Save(f.ctx, Draft{Title: "Changed", Content: "x"}, f.cache, f.fake)
	if err == nil {
		t.Fatalf("expected Save to fail")
	}

	after, _ := f.cache.Lookup("n1")
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected cache entry to be unchanged, before %+v after %+v", before, after)
	}
	viewAfter, _ := f.session.View()
	if !reflect.DeepEqual(viewBefore, viewAfter) || !f.session.Active() {
		t.Fatalf("expected the editor to stay open and unchanged")
	}
}

func TestSaveDeletedNoteReportsNotFound(t *testing.T) {
	f := newFixture(t)
	if err := f.session.Open(f.ctx, "n1", f.cache, f.fake); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := f.fake.DeleteNote(f.ctx, "n1"); err != nil {
		t.Fatalf("DeleteNote returned error: %v", err)
	}

	err := f.session.Save(f.ctx, Draft{Title: "t"}, f.cache, f.fake)
	if !errors.Is(err, backend.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	if err := f.session.Open(f.ctx, "n1", f.cache, f.fake); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	f.session.Close()
	if f.session.Active() || f.session.ID() != "" {
		t.Fatalf("expected a closed session")
	}
	if _, ok := f.session.View(); ok {
		t.Fatalf("expected no view after close")
	}
}

func TestViewDraft(t *testing.T) {
	v := View{ID: "n1", Title: "Plan", Content: "body", Tags: []string{"go", "work"}}

	got := v.Draft()
	want := Draft{Title: "Plan", Content: "body", Tags: "go, work"}
	if got != want {
		t.Fatalf("Draft() = %+v, want %+v", got, want)
	}
}
