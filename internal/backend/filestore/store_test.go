package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/backend/backendtest"
)

func TestStoreContract(t *testing.T) {
	backendtest.RunContract(t, func(t *testing.T, clock *backendtest.Clock) backend.Backend {
		s, err := Open(filepath.Join(t.TempDir(), DefaultFileName), WithClock(clock.Now))
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		return s
	})
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", DefaultFileName)
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	n, err := s.AddNote(ctx, "title", "body", []string{"Go"})
	if err != nil {
		t.Fatalf("AddNote returned error: %v", err)
	}
	if _, err := s.AddTodo(ctx, "task", true); err != nil {
		t.Fatalf("AddTodo returned error: %v", err)
	}
	if _, err := s.CheckAndResetDailyTodos(ctx); err != nil {
		t.Fatalf("CheckAndResetDailyTodos returned error: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	notes, _ := reopened.GetNotes(ctx)
	if len(notes) != 1 || notes[0].ID != n.ID || notes[0].Tags[0] != "go" {
		t.Fatalf("unexpected notes after reopen: %+v", notes)
	}
	todos, _ := reopened.GetTodos(ctx)
	if len(todos) != 1 || !todos[0].IsDaily {
		t.Fatalf("unexpected todos after reopen: %+v", todos)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read data file: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("data file is not JSON: %v", err)
	}
	for _, key := range []string{"notes", "todos", "last_daily_reset_date"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("expected key %q in data file", key)
		}
	}
}

func TestOpenAcceptsOriginalFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	raw := `{
  "notes": [
    {"id": "1", "title": "t", "content": "c", "tags": null,
     "created_at": "2024-01-01T10:00:00Z", "updated_at": "2024-01-02T10:00:00Z"},
    {"id": "2", "title": "u", "content": "d", "tags": [" Work ", "work"],
     "created_at": "2024-01-01T10:00:00Z", "updated_at": "2024-01-01T10:00:00Z"}
  ],
  "todos": [{"id": "a", "task": "x", "completed": true, "is_daily": false,
             "created_at": "2024-01-01T10:00:00Z"}],
  "last_daily_reset_date": null
}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	notes, _ := s.GetNotes(context.Background())
	if len(notes) != 2 {
		t.Fatalf("expected two notes, got %d", len(notes))
	}
	if notes[0].Tags == nil || len(notes[0].Tags) != 0 {
		t.Fatalf("expected null tags to load as an empty set, got %#v", notes[0].Tags)
	}
	if len(notes[1].Tags) != 1 || notes[1].Tags[0] != "work" {
		t.Fatalf("expected tags to be normalized on load, got %v", notes[1].Tags)
	}
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Fatalf("expected corrupt file to be rejected")
	}

	raw, _ := os.ReadFile(path)
	if string(raw) != "{not json" {
		t.Fatalf("expected corrupt file to be left untouched, got %q", raw)
	}
}

func TestReloadPicksUpExternalChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := s.AddNote(ctx, "mine", "m", nil); err != nil {
		t.Fatalf("AddNote returned error: %v", err)
	}

	changed, err := s.Reload()
	if err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if changed {
		t.Fatalf("expected own writes not to count as external changes")
	}

	other, err := Open(path)
	if err != nil {
		t.Fatalf("second Open returned error: %v", err)
	}
	if _, err := other.AddNote(ctx, "theirs", "t", nil); err != nil {
		t.Fatalf("AddNote returned error: %v", err)
	}

	changed, err = s.Reload()
	if err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if !changed {
		t.Fatalf("expected external write to be detected")
	}
	notes, _ := s.GetNotes(ctx)
	if len(notes) != 2 {
		t.Fatalf("expected both notes after reload, got %d", len(notes))
	}
}

func TestFailedSaveLeavesStateUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := s.AddNote(ctx, "kept", "k", nil); err != nil {
		t.Fatalf("AddNote returned error: %v", err)
	}

	// Replacing the data file with a directory makes the rename fail.
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove data file: %v", err)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create blocking directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(path, "x"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to populate blocking directory: %v", err)
	}

	if _, err := s.AddNote(ctx, "lost", "l", nil); err == nil {
		t.Fatalf("expected save to fail")
	} else if !strings.Contains(err.Error(), "save") {
		t.Fatalf("expected a save error, got %v", err)
	}

	notes, _ := s.GetNotes(ctx)
	if len(notes) != 1 || notes[0].Title != "kept" {
		t.Fatalf("expected in-memory state to be unchanged, got %+v", notes)
	}
}
