package note

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/pkg/cmd/note/noteAdd"
	"github.com/Paintersrp/noteplan/pkg/cmd/note/noteEdit"
	"github.com/Paintersrp/noteplan/pkg/cmd/note/noteList"
	"github.com/Paintersrp/noteplan/pkg/cmd/note/noteOpen"
	"github.com/Paintersrp/noteplan/pkg/cmd/note/noteRemove"
	"github.com/Paintersrp/noteplan/pkg/cmd/note/noteShow"
)

func NewCmdNote(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"n"},
		Short:   "Create, list, show, edit and delete notes.",
		Long: heredoc.Doc(`
			Manage notes from the command line. Ids may be given as any unique
			prefix of the full id, as printed by 'noteplan note list'.
		`),
	}

	cmd.AddCommand(
		noteAdd.NewCmdNoteAdd(s),
		noteList.NewCmdNoteList(s),
		noteShow.NewCmdNoteShow(s),
		noteEdit.NewCmdNoteEdit(s),
		noteRemove.NewCmdNoteRemove(s),
		noteOpen.NewCmdNoteOpen(s),
	)

	return cmd
}
