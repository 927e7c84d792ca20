package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/pkg/cmd/cmdutil"
	"github.com/Paintersrp/noteplan/pkg/cmd/export"
	"github.com/Paintersrp/noteplan/pkg/cmd/note"
	"github.com/Paintersrp/noteplan/pkg/cmd/notes"
	"github.com/Paintersrp/noteplan/pkg/cmd/reset"
	"github.com/Paintersrp/noteplan/pkg/cmd/settings"
	"github.com/Paintersrp/noteplan/pkg/cmd/tags"
	"github.com/Paintersrp/noteplan/pkg/cmd/todo"
)

// persistentFlags maps each global flag to the config key it overrides.
var persistentFlags = []struct {
	name, key, usage string
}{
	{"backend", "backend.driver", "Storage backend: file, bolt or postgres"},
	{"data", "backend.path", "Data file for the file and bolt backends"},
	{"dsn", "backend.dsn", "Postgres connection string"},
	{"log-level", "log.level", "Log level: trace, debug, info, warn, error or disabled"},
}

// NewCmdRoot builds the command tree. s is filled from the config file, the
// environment and the global flags before any subcommand runs, unless a test
// has already loaded it.
func NewCmdRoot(s *state.State, v *viper.Viper) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "noteplan",
		Short: "Tagged notes and daily todos in the terminal.",
		Long: heredoc.Doc(`
			Keep notes with tags and a todo list whose daily items reset every day.
			Run without a command to open the interactive view.
		`),
		Example: heredoc.Doc(`
			noteplan
			noteplan note add "Groceries" -t "home, errands"
			noteplan todo add "stretch" --daily
		`),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if s.Config != nil {
				return nil
			}
			if cmd.Annotations[cmdutil.ConfigOnly] != "" {
				return s.LoadConfig(v)
			}
			return s.Load(cmd.Context(), v)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return notes.Run(cmd.Context(), s, "")
		},
	}

	for _, f := range persistentFlags {
		cmd.PersistentFlags().String(f.name, "", f.usage)
		if err := v.BindPFlag(f.key, cmd.PersistentFlags().Lookup(f.name)); err != nil {
			return nil, err
		}
	}

	cmd.AddCommand(
		notes.NewCmdNotes(s),
		note.NewCmdNote(s),
		todo.NewCmdTodo(s),
		tags.NewCmdTags(s),
		reset.NewCmdReset(s),
		export.NewCmdExport(s),
		settings.NewCmdSettings(s),
	)

	return cmd, nil
}
