package flags

import (
	"github.com/spf13/cobra"
)

func AddYes(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func HandleYes(cmd *cobra.Command) bool {
	yes, _ := cmd.Flags().GetBool("yes")
	return yes
}

func AddTag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringP("tag", "t", "", usage)
}

func HandleTag(cmd *cobra.Command) string {
	tag, _ := cmd.Flags().GetString("tag")
	return tag
}
