package todoRemove

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/app"
	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/pkg/arg"
	"github.com/Paintersrp/noteplan/pkg/cmd/cmdutil"
)

func NewCmdTodoRemove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a todo.",
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

			if _, err := cmdutil.Dispatch(cmd.Context(), ctrl, app.DeleteTodo(id)); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Deleted todo.")
			return nil
		},
	}

	return cmd
}
