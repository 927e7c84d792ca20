package todoAdd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/app"
	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/pkg/cmd/cmdutil"
)

func NewCmdTodoAdd(s *state.State) *cobra.Command {
	var daily bool

	cmd := &cobra.Command{
		Use:     "add [task]",
		Aliases: []string{"a"},
		Short:   "Add a todo.",
		Example: `noteplan todo add "stretch" --daily`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := cmdutil.Controller(cmd.Context(), s)
			if err != nil {
				return err
			}

			snap, err := cmdutil.Dispatch(cmd.Context(), ctrl, app.AddTodo(args[0], daily))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added todo %s: %s\n", note.ShortID(snap.Created), strings.TrimSpace(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&daily, "daily", "d", false, "Reset the todo every day")
	return cmd
}
