package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modu-ai/claudekit/internal/core/project"
	"github.com/modu-ai/claudekit/pkg/models"
)

var addWorkflowCmd = &cobra.Command{
	Use:   "add-workflow NAME",
	Short: "Add one workflow document to .claude/commands/workflows",
	Long: `Copy a single workflow template into .claude/commands/workflows.

Use --list to see the available workflows.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAddWorkflow,
}

func init() {
	rootCmd.AddCommand(addWorkflowCmd)

	addWorkflowCmd.Flags().Bool("list", false, "List available workflows")
}

func runAddWorkflow(cmd *cobra.Command, args []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	// Workflows live in the shared tier, so an unrecognized project still
	// resolves them.
	opts, err := detectedOptions(ctx, root)
	if errors.Is(err, project.ErrIncompatibleProject) {
		opts = project.InitOptions{ProjectRoot: root, Type: models.ProjectTypeUnknown}
	} else if err != nil {
		return err
	}

	initializer, err := deps.NewInitializer("")
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	out := cmd.OutOrStdout()
	if getBoolFlag(cmd, "list") {
		var lines []string
		for _, entry := range initializer.Workflows(opts.Type) {
			pairs := renderKeyValueLines([]kvPair{{entry.Name, entry.Description}})
			lines = append(lines, pairs)
		}
		if len(lines) == 0 {
			lines = append(lines, cliMuted.Render("No workflows available"))
		}
		_, _ = fmt.Fprintln(out, renderCard("Workflows", strings.Join(lines, "\n")))
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("workflow name required; run claudekit add-workflow --list")
	}

	dest, err := initializer.AddWorkflow(ctx, opts, args[0])
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, renderSuccessCard("Workflow added", cliMuted.Render(dest)))
	return nil
}
