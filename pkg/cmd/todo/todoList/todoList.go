package todoList

import (
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/pkg/cmd/cmdutil"
)

func NewCmdTodoList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List todos, daily todos first.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, snap, err := cmdutil.Controller(cmd.Context(), s)
			if err != nil {
				return err
			}
			if snap.Todos.Err != nil {
				return snap.Todos.Err
			}

			cmdutil.PrintTodos(cmd.OutOrStdout(), snap.Todos)
			return nil
		},
	}

	return cmd
}
