package flags

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
)

func TestHandlePaste(t *testing.T) {
	orig := readClipboard
	t.Cleanup(func() { readClipboard = orig })
	readClipboard = func() (string, error) { return "from clipboard", nil }

	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "without flag", args: nil, want: "typed"},
		{name: "with flag", args: []string{"--paste"}, want: "from clipboard"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "x"}
			AddPaste(cmd)
			if err := cmd.ParseFlags(tc.args); err != nil {
				t.Fatal(err)
			}

			got, err := HandlePaste(cmd, "typed")
			if err != nil {
				t.Fatalf("HandlePaste returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("HandlePaste = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHandlePasteClipboardError(t *testing.T) {
	orig := readClipboard
	t.Cleanup(func() { readClipboard = orig })
	readClipboard = func() (string, error) { return "", errors.New("no clipboard") }

	cmd := &cobra.Command{Use: "x"}
	AddPaste(cmd)
	_ = cmd.ParseFlags([]string{"--paste"})

	if _, err := HandlePaste(cmd, ""); err == nil {
		t.Fatalf("expected clipboard error")
	}
}

func TestYesAndTag(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	AddYes(cmd)
	AddTag(cmd, "tag")
	if err := cmd.ParseFlags([]string{"-y", "--tag", "go"}); err != nil {
		t.Fatal(err)
	}

	if !HandleYes(cmd) {
		t.Fatalf("expected --yes to be set")
	}
	if got := HandleTag(cmd); got != "go" {
		t.Fatalf("tag = %q, want go", got)
	}
}
