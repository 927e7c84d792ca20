package noteRemove

import (
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

func NewCmdNoteRemove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a note.",
		Long: heredoc.Doc(`
			Deletes a note after asking for confirmation. Use --yes in scripts.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s, flags.HandleYes(cmd))
		},
	}

	flags.AddYes(cmd)
	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State, yes bool) error {
	id, err := arg.HandleID(args)
	if err != nil {
		return err
	}

	ctrl, _, err := cmdutil.Controller(cmd.Context(), s)
	if err != nil {
		return err
	}

	n, err := ctrl.Note(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !yes {
		ok, err := cmdutil.Confirm(fmt.Sprintf("Delete note %q?", n.Title))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Nothing deleted.")
			return nil
		}
	}

	if _, err := cmdutil.Dispatch(cmd.Context(), ctrl, app.DeleteNote(n.ID)); err != nil {
		return err
	}

	fmt.Fprintf(out, "Deleted note %s: %s\n", note.ShortID(n.ID), n.Title)
	return nil
}
