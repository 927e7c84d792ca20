// Package views derives the renderable note list, todo list and tag
// sidebar from the caches and the filter. Every view is rebuilt from
// scratch, so a view never reflects a half-applied update.
package views

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/parser"
	"github.com/Paintersrp/noteplan/internal/state"
)

// NoteRef is a note as listed under an expanded sidebar tag.
type NoteRef struct {
	ID        string
	Title     string
	UpdatedAt time.Time
}

// SidebarNode is one entry of the sidebar: the all pseudo-tag or a tag.
type SidebarNode struct {
	Tag      string // empty for the all node
	Label    string
	Count    int
	All      bool
	Active   bool
	Expanded bool
	Notes    []NoteRef
	// Placeholder marks an expanded tag that currently has no notes.
	Placeholder bool
}

type Sidebar struct {
	Nodes []SidebarNode
}

type RowKind int

const (
	RowAll RowKind = iota
	RowTag
	RowNote
	RowPlaceholder
)

// SidebarRow is a flattened sidebar line for cursor navigation.
type SidebarRow struct {
	Kind     RowKind
	Tag      string
	NoteID   string
	Label    string
	Count    int
	Depth    int
	Active   bool
	Expanded bool
}

// Rows flattens the tree depth first.
func (s Sidebar) Rows() []SidebarRow {
	var rows []SidebarRow
	for _, n := range s.Nodes {
		kind := RowTag
		if n.All {
			kind = RowAll
		}
		rows = append(rows, SidebarRow{
			Kind:     kind,
			Tag:      n.Tag,
			Label:    n.Label,
			Count:    n.Count,
			Active:   n.Active,
			Expanded: n.Expanded,
		})
		if !n.Expanded {
			continue
		}
		if n.Placeholder {
			rows = append(rows, SidebarRow{Kind: RowPlaceholder, Tag: n.Tag, Label: "(no notes with this tag)", Depth: 1})
			continue
		}
		for _, ref := range n.Notes {
			rows = append(rows, SidebarRow{Kind: RowNote, Tag: n.Tag, NoteID: ref.ID, Label: ref.Title, Depth: 1})
		}
	}
	return rows
}

// Node returns the node for tag, or the all node for "".
func (s Sidebar) Node(tag string) (SidebarNode, bool) {
	for _, n := range s.Nodes {
		if (tag == "" && n.All) || (!n.All && n.Tag == tag) {
			return n, true
		}
	}
	return SidebarNode{}, false
}

// BuildSidebar lays out the all node followed by every tag in ascending
// order. The active and expanded tags are kept even when the vocabulary no
// longer contains them, so exactly one node is always active.
func BuildSidebar(tags []string, notes []note.Note, f *state.FilterState) Sidebar {
	counter := parser.NewTagCounter()
	for _, n := range notes {
		counter.Add(n.Tags)
	}

	vocabulary := append([]string(nil), tags...)
	vocabulary = append(vocabulary, f.Expanded()...)
	if !f.IsAll() {
		vocabulary = append(vocabulary, f.Active())
	}
	vocabulary = uniqueSorted(vocabulary)

	nodes := make([]SidebarNode, 0, len(vocabulary)+1)
	nodes = append(nodes, SidebarNode{
		Label:  state.AllTag,
		Count:  len(notes),
		All:    true,
		Active: f.IsAll(),
	})

	for _, tag := range vocabulary {
		node := SidebarNode{
			Tag:      tag,
			Label:    tag,
			Count:    counter.Count(tag),
			Active:   !f.IsAll() && f.Active() == tag,
			Expanded: f.IsExpanded(tag),
		}
		if node.Expanded {
			node.Notes = notesForTag(notes, tag)
			node.Placeholder = len(node.Notes) == 0
		}
		nodes = append(nodes, node)
	}

	return Sidebar{Nodes: nodes}
}

func notesForTag(notes []note.Note, tag string) []NoteRef {
	var tagged []note.Note
	for _, n := range notes {
		if n.HasTag(tag) {
			tagged = append(tagged, n)
		}
	}
	SortByUpdated(tagged)

	refs := make([]NoteRef, len(tagged))
	for i, n := range tagged {
		refs[i] = NoteRef{ID: n.ID, Title: n.Title, UpdatedAt: n.UpdatedAt}
	}
	return refs
}

// SortByUpdated orders notes newest first, keeping the incoming order for
// equal timestamps.
func SortByUpdated(notes []note.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
}

func uniqueSorted(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// SidebarController keeps the last known tag vocabulary and the rendered
// sidebar.
type SidebarController struct {
	tags    []string
	sidebar Sidebar
	log     zerolog.Logger
}

func NewSidebarController(log zerolog.Logger) *SidebarController {
	return &SidebarController{log: log}
}

// Reload fetches the vocabulary and rebuilds the sidebar. When the fetch
// fails the previous vocabulary is kept, the sidebar is rebuilt from it and
// the error is returned for logging only.
func (c *SidebarController) Reload(ctx context.Context, src backend.TagSource, notes []note.Note, f *state.FilterState) error {
	tags, err := src.GetAllTags(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to load tags, keeping previous sidebar")
		c.Rebuild(notes, f)
		return fmt.Errorf("failed to load tags: %w", err)
	}

	c.tags = uniqueSorted(tags)
	c.Rebuild(notes, f)
	return nil
}

// Rebuild re-derives the sidebar from the cached vocabulary.
func (c *SidebarController) Rebuild(notes []note.Note, f *state.FilterState) {
	c.sidebar = BuildSidebar(c.tags, notes, f)
}

func (c *SidebarController) Sidebar() Sidebar {
	return c.sidebar
}

// Tags returns the last fetched vocabulary.
func (c *SidebarController) Tags() []string {
	return append([]string(nil), c.tags...)
}
