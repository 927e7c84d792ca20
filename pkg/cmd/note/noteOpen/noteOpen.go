package noteOpen

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/app"
	"github.com/Paintersrp/noteplan/internal/fzf"
	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/pkg/cmd/cmdutil"
	"github.com/Paintersrp/noteplan/pkg/cmd/notes"
	"github.com/Paintersrp/noteplan/pkg/shared/flags"
)

func NewCmdNoteOpen(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [id]",
		Aliases: []string{"o"},
		Short:   "Open a note in the interactive editor.",
		Long: heredoc.Doc(`
			Starts the interactive view with the note open in the editor. Without
			an id a fuzzy finder lists the notes, optionally narrowed by --tag.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return run(cmd, s, id, flags.HandleTag(cmd))
		},
	}

	flags.AddTag(cmd, "Only offer notes with this tag in the finder")
	return cmd
}

func run(cmd *cobra.Command, s *state.State, id, tag string) error {
	if id == "" {
		picked, err := pick(cmd, s, tag)
		if errors.Is(err, fzf.ErrNoSelection) {
			fmt.Fprintln(cmd.OutOrStdout(), "No note selected")
			return nil
		}
		if err != nil {
			return err
		}
		id = picked
	}

	return notes.Run(cmd.Context(), s, id)
}

func pick(cmd *cobra.Command, s *state.State, tag string) (string, error) {
	ctrl, snap, err := cmdutil.Controller(cmd.Context(), s)
	if err != nil {
		return "", err
	}
	if snap.Notes.Err != nil {
		return "", snap.Notes.Err
	}
	if tag != "" {
		if _, err := cmdutil.Dispatch(cmd.Context(), ctrl, app.SelectTag(tag)); err != nil {
			return "", err
		}
	}

	finder := fzf.NewFuzzyFinder(ctrl.FilteredNotes(), "Open note", s.Config.UI.GlamourStyle)
	n, err := finder.Run()
	if err != nil {
		return "", err
	}
	return n.ID, nil
}
