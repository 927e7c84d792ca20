package settings

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/internal/tui/settings"
	"github.com/Paintersrp/noteplan/pkg/cmd/cmdutil"
)

func NewCmdSettings(s *state.State) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"s", "config"},
		Short:   "CLI settings menu",
		Long: heredoc.Doc(`
			This command allows you to adjust your settings directly from the CLI tool.
			With --show the effective configuration is printed instead, with the
			Postgres DSN masked.
		`),
		Example: heredoc.Doc(`
			noteplan settings
			noteplan settings --show
		`),
		Args:        cobra.NoArgs,
		Annotations: map[string]string{cmdutil.ConfigOnly: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if show {
				return printConfig(cmd, s)
			}
			return settings.Run(s.Config)
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the effective configuration")
	return cmd
}

func printConfig(cmd *cobra.Command, s *state.State) error {
	out, err := yaml.Marshal(s.Config.Redacted())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", s.Config.GetConfigPath(), out)
	return nil
}
