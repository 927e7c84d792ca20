package todo

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/pkg/cmd/todo/todoAdd"
	"github.com/Paintersrp/noteplan/pkg/cmd/todo/todoList"
	"github.com/Paintersrp/noteplan/pkg/cmd/todo/todoRemove"
	"github.com/Paintersrp/noteplan/pkg/cmd/todo/todoToggle"
)

func NewCmdTodo(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todo",
		Aliases: []string{"td"},
		Short:   "Manage todos and daily todos.",
		Long: heredoc.Doc(`
			Daily todos are marked incomplete again once per calendar day, the
			first time noteplan runs that day.
		`),
	}

	cmd.AddCommand(
		todoAdd.NewCmdTodoAdd(s),
		todoList.NewCmdTodoList(s),
		todoToggle.NewCmdTodoToggle(s),
		todoRemove.NewCmdTodoRemove(s),
	)

	return cmd
}
