package noteAdd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/app"
	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/pkg/arg"
	"github.com/Paintersrp/noteplan/pkg/cmd/cmdutil"
	"github.com/Paintersrp/noteplan/pkg/shared/flags"
)

type options struct {
	content string
	tags    string
}

func NewCmdNoteAdd(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "add [title]",
		Aliases: []string{"a", "new"},
		Short:   "Create a new note.",
		Long: heredoc.Doc(`
			Creates a note with a title, markdown content and optional comma
			separated tags. Tags are trimmed, lowercased and deduplicated.
		`),
		Example: heredoc.Doc(`
			noteplan note add "Groceries" --content "- milk" --tags "home, errands"
			noteplan note add "Snippet" --paste
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.content, "content", "c", "", "Markdown content of the note")
	cmd.Flags().StringVarP(&opts.tags, "tags", "t", "", "Comma separated tags")
	flags.AddPaste(cmd)

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State, opts options) error {
	title, err := arg.HandleTitle(args)
	if err != nil {
		return err
	}

	content, err := flags.HandlePaste(cmd, opts.content)
	if err != nil {
		return err
	}

	ctrl, _, err := cmdutil.Controller(cmd.Context(), s)
	if err != nil {
		return err
	}

	snap, err := cmdutil.Dispatch(cmd.Context(), ctrl, app.AddNote(title, content, opts.tags))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added note %s: %s\n", note.ShortID(snap.Created), strings.TrimSpace(title))
	return nil
}
