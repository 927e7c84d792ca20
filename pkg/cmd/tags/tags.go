/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package tags

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noteplan/internal/app"
	"github.com/Paintersrp/noteplan/internal/state"
	"github.com/Paintersrp/noteplan/pkg/cmd/cmdutil"
)

func NewCmdTags(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags [tag...]",
		Short: "Show the tag sidebar.",
		Long: heredoc.Doc(`
			Prints every tag with its note count. Each tag given as an argument is
			selected in turn and expanded to list its notes; the last one stays
			active.
		`),
		Example: heredoc.Doc(`
			noteplan tags
			noteplan tags go rust
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, snap, err := cmdutil.Controller(cmd.Context(), s)
			if err != nil {
				return err
			}

			for _, tag := range args {
				snap, err = cmdutil.Dispatch(cmd.Context(), ctrl, app.SelectTag(tag))
				if err != nil {
					return err
				}
			}

			cmdutil.PrintSidebar(cmd.OutOrStdout(), snap.Sidebar.Rows())
			return nil
		},
	}

	return cmd
}
