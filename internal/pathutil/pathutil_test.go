package pathutil

import (
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := filepath.Join(string(filepath.Separator), "home", "user")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/.noteplan/data.json", want: filepath.Join(home, ".noteplan", "data.json")},
		{name: "relative", in: "notes/data.json", want: filepath.Join(home, "notes", "data.json")},
		{name: "absolute", in: filepath.Join(string(filepath.Separator), "srv", "data.json"), want: filepath.Join(string(filepath.Separator), "srv", "data.json")},
		{name: "untidy", in: "~/a//b/../c", want: filepath.Join(home, "a", "c")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandHome(tt.in, home); got != tt.want {
				t.Fatalf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSamePath(t *testing.T) {
	a := filepath.Join("data", "x.json")
	if !SamePath(a, "data/./x.json") {
		t.Fatalf("expected cleaned paths to match")
	}
	if SamePath(a, "") {
		t.Fatalf("expected empty path never to match")
	}
	if SamePath(a, filepath.Join("data", "y.json")) {
		t.Fatalf("expected different files not to match")
	}
}
