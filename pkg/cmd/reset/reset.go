package reset

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/state"
)

func NewCmdReset(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Run the daily todo reset now.",
		Long: heredoc.Doc(`
			Marks daily todos incomplete if no reset has happened today. Running it
			again on the same day changes nothing.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !s.Loaded() {
				return errors.New("state configuration is not initialized")
			}

			changed, err := s.Backend.CheckAndResetDailyTodos(cmd.Context())
			if err != nil {
				return fmt.Errorf("daily reset failed: %w", err)
			}

			if changed {
				fmt.Fprintln(cmd.OutOrStdout(), "Daily todos reset.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to reset today.")
			}
			return nil
		},
	}

	return cmd
}
