package notes

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/app"
	"github.com/Paintersrp/noteplan/internal/logging"
	"github.com/Paintersrp/noteplan/internal/state"
	notesui "github.com/Paintersrp/noteplan/internal/tui/notes"
)

func NewCmdNotes(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"ui"},
		Short:   "Open the interactive notes and todos view.",
		Long: heredoc.Doc(`
			Opens the tag sidebar, the note list and the todo list side by side.
			Changes written by other noteplan processes are picked up while it runs.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), s, "")
		},
	}

	return cmd
}

// Run starts the interactive view, opening the note with openID in the
// editor when it is not empty.
func Run(ctx context.Context, s *state.State, openID string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ctrl := app.New(s.Backend, app.WithLogger(logging.Component(s.Logger, "app")))
	m := notesui.New(ctrl, notesui.Options{
		Watcher:       s.Watcher,
		Heartbeat:     s.Config.UI.Heartbeat,
		GlamourStyle:  s.Config.UI.GlamourStyle,
		ConfirmDelete: s.Config.UI.ConfirmDelete,
		Logger:        logging.Component(s.Logger, "tui"),
	})
	m.OpenOnStart(openID)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
