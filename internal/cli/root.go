package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modu-ai/claudekit/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "claudekit",
	Short: "Scaffold Claude Code guidance into Rails and Python projects",
	Long: `claudekit installs CLAUDE.md, a development journal, and a tree of
slash-command documents under .claude/commands into an existing project.

The project type is detected from its marker files (a Gemfile that uses
Rails, or a Python manifest) and selects the templates and the test, lint,
and format commands written into the documents.`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupDependencies,
}

// Execute runs the root command and prints any error in the CLI error style.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, symError()+" "+cliError.Render(err.Error()))
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("claudekit %s\n", version.GetVersion()))

	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "User config file (default: $XDG_CONFIG_HOME/claudekit/config.yaml)")
}

// setupDependencies builds the composition root from the global flags.
func setupDependencies(cmd *cobra.Command, _ []string) error {
	return InitDependencies(cmd.ErrOrStderr(), getBoolFlag(cmd, "verbose"), getStringFlag(cmd, "config"))
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
