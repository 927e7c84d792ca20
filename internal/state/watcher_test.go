package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type beatMsg struct{}

func runWithTimeout(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher did not produce a message in time")
		return nil
	}
}

func TestDataWatcherReportsWritesToDataFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.json")

	w, err := NewDataWatcher(file)
	if err != nil {
		t.Fatalf("NewDataWatcher returned error: %v", err)
	}
	defer w.Close()

	cmd := w.Start()
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644)
		_ = os.WriteFile(file, []byte("{}"), 0o644)
	}()

	msg := runWithTimeout(t, cmd)
	got, ok := msg.(DataChangedMsg)
	if !ok {
		t.Fatalf("expected DataChangedMsg, got %T", msg)
	}
	if got.Path != file {
		t.Fatalf("expected change for %q, got %q", file, got.Path)
	}
}

func TestDataWatcherHeartbeat(t *testing.T) {
	w, err := NewDataWatcher("")
	if err != nil {
		t.Fatalf("NewDataWatcher returned error: %v", err)
	}
	defer w.Close()

	w.SetHeartbeat(func() tea.Cmd {
		return func() tea.Msg { return beatMsg{} }
	}, 10*time.Millisecond)

	if _, ok := runWithTimeout(t, w.Start()).(beatMsg); !ok {
		t.Fatalf("expected heartbeat message")
	}
}

func TestDataWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewDataWatcher("")
	if err != nil {
		t.Fatalf("NewDataWatcher returned error: %v", err)
	}

	cmd := w.Start()
	if err := w.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}

	if msg := runWithTimeout(t, cmd); msg != nil {
		t.Fatalf("expected nil message after close, got %T", msg)
	}
}
