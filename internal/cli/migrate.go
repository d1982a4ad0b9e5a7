package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modu-ai/claudekit/internal/core/project"
)

var migrateCursorCmd = &cobra.Command{
	Use:   "migrate-cursor",
	Short: "Convert .cursor/rules into .claude/commands documents",
	Long: `Convert every rule in .cursor/rules into a command document.

Front matter is removed. Rules whose file name mentions a workflow, process,
or flow go to workflows; names mentioning tests, linting, quality, review,
or security go to quality; everything else goes to conventions.`,
	Args: cobra.NoArgs,
	RunE: runMigrateCursor,
}

func init() {
	rootCmd.AddCommand(migrateCursorCmd)
}

func runMigrateCursor(cmd *cobra.Command, _ []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	migrated, err := project.MigrateCursor(root, deps.Logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(migrated) == 0 {
		_, _ = fmt.Fprintln(out, symWarning()+" "+cliWarn.Render("No rule files found in .cursor/rules"))
		return nil
	}

	pairs := make([]kvPair, 0, len(migrated))
	for _, m := range migrated {
		pairs = append(pairs, kvPair{m.Source, "→ " + m.Dest})
	}
	_, _ = fmt.Fprintln(out, renderSuccessCard(
		fmt.Sprintf("Migrated %d rule(s)", len(migrated)),
		renderKeyValueLines(pairs),
	))
	return nil
}
