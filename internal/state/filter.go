package state

import "sort"

// AllTag is the label of the pseudo-tag that selects every note. It is a
// display label only: the filter represents "all" as an empty active tag,
// so a real tag named "all" stays distinct.
const AllTag = "all"

// FilterState is the sidebar selection: the active tag (empty for all) and
// the set of expanded tags. It lives only in memory.
type FilterState struct {
	active   string
	expanded map[string]struct{}
}

func NewFilterState() *FilterState {
	return &FilterState{expanded: make(map[string]struct{})}
}

// SelectAll activates the all pseudo-tag and collapses every tag.
func (f *FilterState) SelectAll() {
	f.active = ""
	f.expanded = make(map[string]struct{})
}

// SelectTag expands tag and makes it the active filter. Selecting the
// already active tag keeps it expanded. An empty tag is ignored.
func (f *FilterState) SelectTag(tag string) {
	if tag == "" {
		return
	}
	f.expanded[tag] = struct{}{}
	f.active = tag
}

func (f *FilterState) IsAll() bool {
	return f.active == ""
}

// Active returns the active tag, or "" when all notes are selected.
func (f *FilterState) Active() string {
	return f.active
}

func (f *FilterState) IsExpanded(tag string) bool {
	_, ok := f.expanded[tag]
	return ok
}

// Expanded returns the expanded tags in ascending order.
func (f *FilterState) Expanded() []string {
	out := make([]string, 0, len(f.expanded))
	for tag := range f.expanded {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Matches reports whether a note with tags passes the filter.
func (f *FilterState) Matches(tags []string) bool {
	if f.IsAll() {
		return true
	}
	for _, tag := range tags {
		if tag == f.active {
			return true
		}
	}
	return false
}

// Label returns the display name of the active selection.
func (f *FilterState) Label() string {
	if f.IsAll() {
		return AllTag
	}
	return f.active
}
