package flags

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var readClipboard = clipboard.ReadAll

func AddPaste(cmd *cobra.Command) {
	cmd.Flags().
		Bool("paste", false, "Use the clipboard contents as the note content.")
}

// HandlePaste returns the clipboard contents when --paste is set, or
// fallback otherwise.
func HandlePaste(cmd *cobra.Command, fallback string) (string, error) {
	paste, err := cmd.Flags().GetBool("paste")
	if err != nil {
		return "", err
	}
	if !paste {
		return fallback, nil
	}

	content, err := readClipboard()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return content, nil
}
