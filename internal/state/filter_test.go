package state

import (
	"slices"
	"testing"
)

func TestFilterStateStartsOnAll(t *testing.T) {
	f := NewFilterState()
	if !f.IsAll() || f.Active() != "" || f.Label() != AllTag {
		t.Fatalf("expected initial filter to be all")
	}
	if len(f.Expanded()) != 0 {
		t.Fatalf("expected nothing expanded initially")
	}
}

func TestFilterStateTransitions(t *testing.T) {
	f := NewFilterState()

	f.SelectTag("work")
	if f.Active() != "work" || !f.IsExpanded("work") {
		t.Fatalf("expected work to be active and expanded")
	}

	f.SelectTag("home")
	if f.Active() != "home" {
		t.Fatalf("expected home to be active, got %q", f.Active())
	}
	if got := f.Expanded(); !slices.Equal(got, []string{"home", "work"}) {
		t.Fatalf("expected both tags expanded, got %v", got)
	}

	f.SelectTag("home")
	if f.Active() != "home" || !f.IsExpanded("home") {
		t.Fatalf("expected re-selecting the active tag to keep it expanded")
	}

	f.SelectTag("")
	if f.Active() != "home" {
		t.Fatalf("expected empty tag to be ignored")
	}

	f.SelectAll()
	if !f.IsAll() || len(f.Expanded()) != 0 {
		t.Fatalf("expected select all to reset the filter, got active=%q expanded=%v", f.Active(), f.Expanded())
	}
}

func TestFilterStateRealTagNamedAll(t *testing.T) {
	f := NewFilterState()
	f.SelectTag("all")

	if f.IsAll() {
		t.Fatalf("expected a real tag named all to differ from the sentinel")
	}
	if f.Matches([]string{"other"}) {
		t.Fatalf("expected notes without the all tag to be filtered out")
	}
	if !f.Matches([]string{"all"}) {
		t.Fatalf("expected notes tagged all to match")
	}
}

func TestFilterStateMatches(t *testing.T) {
	f := NewFilterState()
	if !f.Matches(nil) {
		t.Fatalf("expected all to match untagged notes")
	}

	f.SelectTag("go")
	tests := []struct {
		tags []string
		want bool
	}{
		{nil, false},
		{[]string{"rust"}, false},
		{[]string{"rust", "go"}, true},
	}
	for _, tt := range tests {
		if got := f.Matches(tt.tags); got != tt.want {
			t.Errorf("Matches(%v) = %v, want %v", tt.tags, got, tt.want)
		}
	}
}
