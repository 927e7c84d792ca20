package backendtest

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/Paintersrp/noteplan/internal/backend"
)

// Factory opens an empty backend that reads time from clock.
type Factory func(t *testing.T, clock *Clock) backend.Backend

// Start is the initial time handed to every Factory. It is second aligned
// so stores with coarser timestamp precision still round-trip it.
var Start = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

// RunContract exercises the behaviour every backend must share.
func RunContract(t *testing.T, open Factory) {
	t.Helper()

	t.Run("EmptyStore", func(t *testing.T) {
		b := open(t, NewClock(Start))
		ctx := context.Background()

		notes, err := b.GetNotes(ctx)
		if err != nil {
			t.Fatalf("GetNotes returned error: %v", err)
		}
		if len(notes) != 0 {
			t.Fatalf("expected no notes, got %d", len(notes))
		}
		tags, err := b.GetAllTags(ctx)
		if err != nil {
			t.Fatalf("GetAllTags returned error: %v", err)
		}
		if len(tags) != 0 {
			t.Fatalf("expected no tags, got %v", tags)
		}
		todos, err := b.GetTodos(ctx)
		if err != nil {
			t.Fatalf("GetTodos returned error: %v", err)
		}
		if len(todos) != 0 {
			t.Fatalf("expected no todos, got %d", len(todos))
		}
	})

	t.Run("AddNoteNormalizesTags", func(t *testing.T) {
		b := open(t, NewClock(Start))
		ctx := context.Background()

		created, err := b.AddNote(ctx, "Groceries", "milk", []string{" Food ", "", "home", "food"})
		if err != nil {
			t.Fatalf("AddNote returned error: %v", err)
		}
		if created.ID == "" {
			t.Fatalf("expected an id to be assigned")
		}
		if !slices.Equal(created.Tags, []string{"food", "home"}) {
			t.Fatalf("expected normalized tags, got %v", created.Tags)
		}
		if !created.CreatedAt.Equal(created.UpdatedAt) {
			t.Fatalf("expected created_at == updated_at on insert")
		}

		notes, err := b.GetNotes(ctx)
		if err != nil {
			t.Fatalf("GetNotes returned error: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != created.ID || notes[0].Content != "milk" {
			t.Fatalf("unexpected notes after insert: %+v", notes)
		}
	})

	t.Run("UpdateNote", func(t *testing.T) {
		clock := NewClock(Start)
		b := open(t, clock)
		ctx := context.Background()

		created, err := b.AddNote(ctx, "draft", "one", []string{"a"})
		if err != nil {
			t.Fatalf("AddNote returned error: %v", err)
		}
		clock.Advance(time.Minute)

		if err := b.UpdateNote(ctx, created.ID, "final", "two", []string{"B", "c"}); err != nil {
			t.Fatalf("UpdateNote returned error: %v", err)
		}
		notes, err := b.GetNotes(ctx)
		if err != nil {
			t.Fatalf("GetNotes returned error: %v", err)
		}
		got := notes[0]
		if got.Title != "final" || got.Content != "two" {
			t.Fatalf("expected updated fields, got %+v", got)
		}
		if !slices.Equal(got.Tags, []string{"b", "c"}) {
			t.Fatalf("expected replaced tags, got %v", got.Tags)
		}
		if !got.CreatedAt.Equal(created.CreatedAt) {
			t.Fatalf("expected created_at to be preserved")
		}
		if !got.UpdatedAt.After(got.CreatedAt) {
			t.Fatalf("expected updated_at to advance, got %v", got.UpdatedAt)
		}

		err = b.UpdateNote(ctx, "missing", "x", "y", nil)
		if !errors.Is(err, backend.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
		}
	})

	t.Run("DeleteNote", func(t *testing.T) {
		b := open(t, NewClock(Start))
		ctx := context.Background()

		keep, _ := b.AddNote(ctx, "keep", "k", []string{"shared"})
		drop, _ := b.AddNote(ctx, "drop", "d", []string{"shared", "only"})

		if err := b.DeleteNote(ctx, drop.ID); err != nil {
			t.Fatalf("DeleteNote returned error: %v", err)
		}
		if err := b.DeleteNote(ctx, "missing"); err != nil {
			t.Fatalf("expected deleting an unknown id to succeed, got %v", err)
		}

		notes, _ := b.GetNotes(ctx)
		if len(notes) != 1 || notes[0].ID != keep.ID {
			t.Fatalf("expected only the kept note, got %+v", notes)
		}
		tags, _ := b.GetAllTags(ctx)
		if !slices.Equal(tags, []string{"shared"}) {
			t.Fatalf("expected tags of remaining notes, got %v", tags)
		}
	})

	t.Run("GetAllTagsIsUnion", func(t *testing.T) {
		b := open(t, NewClock(Start))
		ctx := context.Background()

		_, _ = b.AddNote(ctx, "one", "1", []string{"work", "go"})
		_, _ = b.AddNote(ctx, "two", "2", []string{"go", "home"})
		_, _ = b.AddNote(ctx, "three", "3", nil)

		tags, err := b.GetAllTags(ctx)
		if err != nil {
			t.Fatalf("GetAllTags returned error: %v", err)
		}
		slices.Sort(tags)
		if !slices.Equal(tags, []string{"go", "home", "work"}) {
			t.Fatalf("unexpected tags: %v", tags)
		}
	})

	t.Run("Todos", func(t *testing.T) {
		b := open(t, NewClock(Start))
		ctx := context.Background()

		todo, err := b.AddTodo(ctx, "water plants", true)
		if err != nil {
			t.Fatalf("AddTodo returned error: %v", err)
		}
		if todo.Completed || !todo.IsDaily {
			t.Fatalf("unexpected new todo: %+v", todo)
		}

		if err := b.ToggleTodoStatus(ctx, todo.ID); err != nil {
			t.Fatalf("ToggleTodoStatus returned error: %v", err)
		}
		todos, _ := b.GetTodos(ctx)
		if len(todos) != 1 || !todos[0].Completed {
			t.Fatalf("expected todo to be completed, got %+v", todos)
		}

		if err := b.ToggleTodoStatus(ctx, todo.ID); err != nil {
			t.Fatalf("ToggleTodoStatus returned error: %v", err)
		}
		todos, _ = b.GetTodos(ctx)
		if todos[0].Completed {
			t.Fatalf("expected second toggle to un-complete")
		}

		if err := b.ToggleTodoStatus(ctx, "missing"); !errors.Is(err, backend.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err := b.DeleteTodo(ctx, "missing"); err != nil {
			t.Fatalf("expected deleting an unknown todo to succeed, got %v", err)
		}
		if err := b.DeleteTodo(ctx, todo.ID); err != nil {
			t.Fatalf("DeleteTodo returned error: %v", err)
		}
		todos, _ = b.GetTodos(ctx)
		if len(todos) != 0 {
			t.Fatalf("expected no todos, got %+v", todos)
		}
	})

	t.Run("DailyReset", func(t *testing.T) {
		clock := NewClock(Start)
		b := open(t, clock)
		ctx := context.Background()

		daily, _ := b.AddTodo(ctx, "stretch", true)
		regular, _ := b.AddTodo(ctx, "file taxes", false)
		_ = b.ToggleTodoStatus(ctx, daily.ID)
		_ = b.ToggleTodoStatus(ctx, regular.ID)

		modified, err := b.CheckAndResetDailyTodos(ctx)
		if err != nil {
			t.Fatalf("CheckAndResetDailyTodos returned error: %v", err)
		}
		if !modified {
			t.Fatalf("expected first check to reset the completed daily todo")
		}
		assertCompleted(t, b, map[string]bool{daily.ID: false, regular.ID: true})

		_ = b.ToggleTodoStatus(ctx, daily.ID)
		modified, err = b.CheckAndResetDailyTodos(ctx)
		if err != nil {
			t.Fatalf("CheckAndResetDailyTodos returned error: %v", err)
		}
		if modified {
			t.Fatalf("expected no second reset on the same day")
		}
		assertCompleted(t, b, map[string]bool{daily.ID: true, regular.ID: true})

		clock.Advance(24 * time.Hour)
		modified, _ = b.CheckAndResetDailyTodos(ctx)
		if !modified {
			t.Fatalf("expected a reset on the next day")
		}
		assertCompleted(t, b, map[string]bool{daily.ID: false, regular.ID: true})

		clock.Advance(24 * time.Hour)
		modified, _ = b.CheckAndResetDailyTodos(ctx)
		if modified {
			t.Fatalf("expected false when no daily todo was completed")
		}
	})
}

func assertCompleted(t *testing.T, b backend.Backend, want map[string]bool) {
	t.Helper()
	todos, err := b.GetTodos(context.Background())
	if err != nil {
		t.Fatalf("GetTodos returned error: %v", err)
	}
	got := make(map[string]bool, len(todos))
	for _, td := range todos {
		got[td.ID] = td.Completed
	}
	for id, completed := range want {
		if got[id] != completed {
			t.Fatalf("todo %s: expected completed=%v, got %v", id, completed, got[id])
		}
	}
}
