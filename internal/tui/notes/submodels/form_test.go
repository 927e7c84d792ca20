package submodels

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(f NoteForm, s string) NoteForm {
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return f
}

func TestNoteFormNavigationAndValues(t *testing.T) {
	f := NewNoteForm()
	if f.Focused != title || !f.Title.Focused() {
		t.Fatalf("expected title to start focused")
	}

	f = typeText(f, "Groceries")
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if f.Focused != tags {
		t.Fatalf("expected enter to move to tags, got %d", f.Focused)
	}
	f = typeText(f, "home, Errands")
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeText(f, "eggs")

	gotTitle, gotContent, gotTags := f.Values()
	if gotTitle != "Groceries" || gotContent != "eggs" || gotTags != "home, Errands" {
		t.Fatalf("unexpected values %q %q %q", gotTitle, gotContent, gotTags)
	}

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.Focused != tags {
		t.Fatalf("expected shift+tab to go back, got %d", f.Focused)
	}

	f.Reset()
	gotTitle, gotContent, gotTags = f.Values()
	if gotTitle != "" || gotContent != "" || gotTags != "" || f.Focused != title {
		t.Fatalf("expected a cleared form")
	}
}

func TestNoteFormSubmitButton(t *testing.T) {
	f := NewNoteForm()
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.Focused != button {
		t.Fatalf("expected shift+tab from title to wrap to the button, got %d", f.Focused)
	}

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a submit command")
	}
	if _, ok := cmd().(SubmitMsg); !ok {
		t.Fatalf("expected SubmitMsg")
	}
}

func TestNoteFormKeepsLongContent(t *testing.T) {
	f := NewNoteForm()
	long := strings.Repeat("x", 2000)
	f.Content.SetValue(long)

	if _, content, _ := f.Values(); content != long {
		t.Fatalf("expected %d characters, got %d", len(long), len(content))
	}
}

func TestTodoForm(t *testing.T) {
	f := NewTodoForm()
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("stretch")})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlD})

	task, daily := f.Values()
	if task != "stretch" || !daily {
		t.Fatalf("unexpected values %q %v", task, daily)
	}
	if !strings.Contains(f.View(), "[x] Daily") {
		t.Fatalf("expected the daily box to be checked")
	}

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a submit command")
	}
	if _, ok := cmd().(SubmitMsg); !ok {
		t.Fatalf("expected SubmitMsg")
	}

	f.Reset()
	if task, daily := f.Values(); task != "" || daily {
		t.Fatalf("expected a cleared form")
	}
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want *bool
	}{
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, want: boolPtr(true)},
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Y")}, want: boolPtr(true)},
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, want: boolPtr(false)},
		{key: tea.KeyMsg{Type: tea.KeyEsc}, want: boolPtr(false)},
		{key: tea.KeyMsg{Type: tea.KeyEnter}},
	}

	m := NewConfirmModel("Delete note?", "Groceries")
	for _, tt := range tests {
		_, cmd := m.Update(tt.key)
		if tt.want == nil {
			if cmd != nil {
				t.Errorf("%q: expected no answer", tt.key.String())
			}
			continue
		}
		msg, ok := cmd().(ConfirmMsg)
		if !ok || msg.Accepted != *tt.want {
			t.Errorf("%q: expected accepted=%v, got %+v", tt.key.String(), *tt.want, msg)
		}
	}
}

func boolPtr(b bool) *bool {
	return &b
}
