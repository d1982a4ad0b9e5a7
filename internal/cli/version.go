package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modu-ai/claudekit/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the claudekit version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if getBoolFlag(cmd, "verbose") {
			_, _ = fmt.Fprintf(out, "claudekit %s\n", version.GetFullVersion())
			return nil
		}
		_, _ = fmt.Fprintf(out, "claudekit %s\n", version.GetVersion())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
