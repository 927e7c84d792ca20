package views

import (
	"fmt"
	"time"

	"github.com/Paintersrp/noteplan/internal/cache"
	"github.com/Paintersrp/noteplan/internal/constants"
	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/state"
)

// NoteCard is one row of the main note list.
type NoteCard struct {
	ID        string
	Title     string
	Preview   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteList is the rendered main list. When Cards is empty Message explains
// why; Err is set when the list could not be loaded at all.
type NoteList struct {
	Cards   []NoteCard
	Message string
	Err     error
}

func (l NoteList) Empty() bool {
	return len(l.Cards) == 0
}

// BuildNoteList filters the cached notes by the active tag and orders them
// newest first.
func BuildNoteList(c *cache.NoteCache, f *state.FilterState) NoteList {
	if err := c.Err(); err != nil {
		return NoteList{Err: err, Message: fmt.Sprintf("Error loading notes: %v", err)}
	}

	all := c.Notes()
	matched := make([]note.Note, 0, len(all))
	for _, n := range all {
		if f.Matches(n.Tags) {
			matched = append(matched, n)
		}
	}
	SortByUpdated(matched)

	if len(matched) == 0 {
		if len(all) == 0 || f.IsAll() {
			return NoteList{Message: "No notes yet. Create one!"}
		}
		return NoteList{Message: fmt.Sprintf("No notes found with tag %q.", f.Active())}
	}

	cards := make([]NoteCard, len(matched))
	for i, n := range matched {
		cards[i] = NoteCard{
			ID:        n.ID,
			Title:     n.Title,
			Preview:   Preview(n.Content),
			Tags:      append([]string(nil), n.Tags...),
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		}
	}
	return NoteList{Cards: cards}
}

// Preview returns the first PreviewLength characters of content, with an
// ellipsis only when something was cut.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= constants.PreviewLength {
		return content
	}
	return string(runes[:constants.PreviewLength]) + constants.Ellipsis
}
