package noteEdit

import (
	"errors"
	"fmt"

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
	title   string
	content string
	tags    string
}

func NewCmdNoteEdit(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "edit [id]",
		Aliases: []string{"e"},
		Short:   "Change a note's title, content or tags.",
		Long: heredoc.Doc(`
			Updates the fields given as flags and keeps the others. Passing
			--tags "" removes every tag.
		`),
		Example: heredoc.Doc(`
			noteplan note edit 3f2a --title "Weekly groceries"
			noteplan note edit 3f2a --paste
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s, opts)
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "New title")
	cmd.Flags().StringVarP(&opts.content, "content", "c", "", "New markdown content")
	cmd.Flags().StringVarP(&opts.tags, "tags", "t", "", "New comma separated tags")
	flags.AddPaste(cmd)

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State, opts options) error {
	id, err := arg.HandleID(args)
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if !changed("title") && !changed("content") && !changed("tags") && !changed("paste") {
		return errors.New("nothing to change: pass --title, --content, --tags or --paste")
	}

	ctrl, _, err := cmdutil.Controller(cmd.Context(), s)
	if err != nil {
		return err
	}

	snap, err := cmdutil.Dispatch(cmd.Context(), ctrl, app.OpenNote(id))
	if err != nil {
		return err
	}

	draft := snap.Editor.Draft()
	if changed("title") {
		draft.Title = opts.title
	}
	if changed("tags") {
		draft.Tags = opts.tags
	}
	if changed("content") {
		draft.Content = opts.content
	}
	if draft.Content, err = flags.HandlePaste(cmd, draft.Content); err != nil {
		return err
	}

	if _, err := cmdutil.Dispatch(cmd.Context(), ctrl, app.SaveNote(draft)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved note %s: %s\n", note.ShortID(snap.Editor.ID), draft.Title)
	return nil
}
