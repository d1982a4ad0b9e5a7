package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modu-ai/claudekit/internal/cli/wizard"
	"github.com/modu-ai/claudekit/internal/core/git"
	"github.com/modu-ai/claudekit/internal/core/project"
	"github.com/modu-ai/claudekit/pkg/models"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh the command documents from the templates",
	Long: `Back up .claude/commands to .claude/backups/commands-<timestamp> and
write the current command documents over it.

CLAUDE.md, the journal, and settings.json are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().String("templates", "", "Template pack directory (default: embedded templates)")
}

// runUpdate backs up and redeploys the commands tree of the current project.
func runUpdate(cmd *cobra.Command, _ []string) error {
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

	opts, err := detectedOptions(ctx, root)
	if err != nil {
		return err
	}

	initializer, err := deps.NewInitializer(getStringFlag(cmd, "templates"))
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	result, err := initializer.Update(ctx, opts)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	backup := "nothing to back up"
	if result.BackupPath != "" {
		backup = result.BackupPath
	}
	details := []string{
		renderKeyValueLines([]kvPair{
			{"Backup", backup},
			{"Updated", fmt.Sprintf("%d command documents", len(result.UpdatedFiles))},
		}),
	}
	for _, w := range result.Warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, renderSuccessCard("Commands updated", details...))
	return nil
}

// detectedOptions builds InitOptions for commands that work on an existing
// project without prompting. The type comes from detection, then the
// configured default.
func detectedOptions(ctx context.Context, root string) (project.InitOptions, error) {
	det := deps.Detector.Detect(root)
	pt := det.Type
	if !pt.IsKnown() {
		pt = deps.Config.ProjectType()
	}
	if !pt.IsKnown() {
		return project.InitOptions{}, fmt.Errorf("%w: %s is not a Rails or Python project", project.ErrIncompatibleProject, root)
	}

	fw := det.Framework
	if pt == models.ProjectTypePython && fw == models.FrameworkNone {
		fw = deps.Detector.DetectPythonFramework(root)
	}

	userName := git.ResolveUserName(ctx, "", deps.Config.UserName, root)
	if userName == "" {
		userName = wizard.DefaultUserName
	}

	return project.InitOptions{
		ProjectRoot: root,
		ProjectName: deps.Detector.DetectProjectName(root),
		UserName:    userName,
		Type:        pt,
		Framework:   fw,
	}, nil
}
