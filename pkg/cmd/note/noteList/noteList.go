package noteList

import (
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/app"
	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/internal/views"
	"github.com/Paintersrp/noteplan/pkg/cmd/cmdutil"
	"github.com/Paintersrp/noteplan/pkg/shared/flags"
)

func NewCmdNoteList(s *state.State) *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List notes, newest first.",
		Long: heredoc.Doc(`
			Lists every note, or only the notes carrying --tag, sorted by last
			update. --since accepts most date formats, for example "2024-05-01"
			or "May 1, 2024 10:00".
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, flags.HandleTag(cmd), since)
		},
	}

	flags.AddTag(cmd, "Only list notes with this tag")
	cmd.Flags().StringVar(&since, "since", "", "Only list notes updated at or after this date")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, tag, since string) error {
	var cutoff time.Time
	if since != "" {
		t, err := dateparse.ParseLocal(since)
		if err != nil {
			return fmt.Errorf("invalid --since date %q: %w", since, err)
		}
		cutoff = t
	}

	ctrl, snap, err := cmdutil.Controller(cmd.Context(), s)
	if err != nil {
		return err
	}
	if tag != "" {
		if snap, err = cmdutil.Dispatch(cmd.Context(), ctrl, app.SelectTag(tag)); err != nil {
			return err
		}
	}

	list := snap.Notes
	if list.Err != nil {
		return list.Err
	}

	cards := FilterSince(list.Cards, cutoff)
	empty := list.Message
	if len(cards) == 0 && len(list.Cards) > 0 {
		empty = fmt.Sprintf("No notes updated since %s.", cutoff.Format("2006-01-02 15:04"))
	}

	cmdutil.PrintNotes(cmd.OutOrStdout(), cards, empty)
	return nil
}

// FilterSince keeps the cards updated at or after cutoff. A zero cutoff
// keeps everything.
func FilterSince(cards []views.NoteCard, cutoff time.Time) []views.NoteCard {
	if cutoff.IsZero() {
		return cards
	}
	out := make([]views.NoteCard, 0, len(cards))
	for _, c := range cards {
		if !c.UpdatedAt.Before(cutoff) {
			out = append(out, c)
		}
	}
	return out
}
