package todoToggle

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/app"
	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/pkg/arg"
	"github.com/Paintersrp/noteplan/pkg/cmd/cmdutil"
)

func NewCmdTodoToggle(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "toggle [id]",
		Aliases: []string{"t", "done"},
		Short:   "Flip a todo between done and not done.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := arg.HandleID(args)
			if err != nil {
				return err
			}

			ctrl, _, err := cmdutil.Controller(cmd.Context(), s)
			if err != nil {
				return err
			}

			snap, err := cmdutil.Dispatch(cmd.Context(), ctrl, app.ToggleTodo(id))
			if err != nil {
				return err
			}

			for _, todo := range snap.Todos.Todos {
				if !strings.HasPrefix(todo.ID, id) {
					continue
				}
				status := "not done"
				if todo.Completed {
					status = "done"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", todo.Task, status)
				break
			}
			return nil
		},
	}

	return cmd
}
