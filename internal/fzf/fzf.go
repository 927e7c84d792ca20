package fzf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/render"
)

// ErrNoSelection is returned when the finder is aborted.
var ErrNoSelection = errors.New("no note selected")

// FuzzyFinder picks a note by title and tags with a rendered preview.
type FuzzyFinder struct {
	Header string
	Style  string
	notes  []note.Note
	find   func(notes []note.Note, label func(int) string, opts ...fuzzyfinder.Option) (int, error)
}

func NewFuzzyFinder(notes []note.Note, header, style string) *FuzzyFinder {
	return &FuzzyFinder{
		Header: header,
		Style:  style,
		notes:  notes,
		find: func(notes []note.Note, label func(int) string, opts ...fuzzyfinder.Option) (int, error) {
			return fuzzyfinder.Find(notes, label, opts...)
		},
	}
}

func (f *FuzzyFinder) Run() (note.Note, error) {
	return f.RunWithQuery("")
}

func (f *FuzzyFinder) RunWithQuery(query string) (note.Note, error) {
	if len(f.notes) == 0 {
		return note.Note{}, fmt.Errorf("no notes to choose from")
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := f.find(f.notes, f.label, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return note.Note{}, ErrNoSelection
	}
	if err != nil {
		return note.Note{}, fmt.Errorf("error selecting note: %w", err)
	}
	if idx < 0 || idx >= len(f.notes) {
		return note.Note{}, ErrNoSelection
	}
	return f.notes[idx], nil
}

func (f *FuzzyFinder) label(i int) string {
	n := f.notes[i]
	if len(n.Tags) == 0 {
		return fmt.Sprintf("%s [No tags]", n.Title)
	}
	return fmt.Sprintf("%s [Tags: %s]", n.Title, strings.Join(n.Tags, ", "))
}

func (f *FuzzyFinder) renderMarkdownPreview(i, w, h int) string {
	if i < 0 || i >= len(f.notes) {
		return ""
	}

	n := f.notes[i]
	width := w - 4
	if width < 20 {
		width = 20
	}

	out, err := render.Terminal("# "+n.Title+"\n\n"+n.Content, width, f.Style)
	if err != nil {
		return "Error rendering markdown"
	}
	return out
}
