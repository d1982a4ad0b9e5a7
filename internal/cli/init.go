package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/modu-ai/claudekit/internal/cli/wizard"
	"github.com/modu-ai/claudekit/internal/core/git"
	"github.com/modu-ai/claudekit/internal/core/project"
	"github.com/modu-ai/claudekit/pkg/models"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Install Claude Code guidance into a project",
	Long: `Install CLAUDE.md, .claude/commands, and a development journal into a
Rails or Python project.

The project type is detected from marker files. Pass --type to force it.
Existing CLAUDE.md, journal, and settings files are never overwritten, so
running init again only refreshes the command documents.

Examples:
  claudekit init                       Initialize the current directory
  claudekit init ../api --type python  Initialize another directory as Python
  claudekit init --with-fastapi        Force the FastAPI documentation blocks`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateInitFlags,
	RunE:    runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("project-name", "", "Project name (default: pyproject name or directory name)")
	initCmd.Flags().String("user-name", "", "User display name (default: config, git user.name, $USER)")
	initCmd.Flags().String("type", "", "Project type: rails or python (default: auto-detect)")
	initCmd.Flags().Bool("with-oauth", false, "Include OAuth guidance (Rails)")
	initCmd.Flags().Bool("with-viewcomponents", false, "Include ViewComponent guidance (Rails)")
	initCmd.Flags().Bool("with-django", false, "Treat the project as Django (Python)")
	initCmd.Flags().Bool("with-fastapi", false, "Treat the project as FastAPI (Python)")
	initCmd.Flags().Bool("skip-journal", false, "Do not create docs/development_journal.md")
	initCmd.Flags().Bool("non-interactive", false, "Never prompt; use flags, config, and defaults")
	initCmd.Flags().String("templates", "", "Template pack directory (default: embedded templates)")
}

// validateInitFlags validates flag values before execution.
func validateInitFlags(cmd *cobra.Command, _ []string) error {
	forced := models.ProjectTypeUnknown
	if t := getStringFlag(cmd, "type"); t != "" {
		pt, err := models.ParseProjectType(t)
		if err != nil {
			return fmt.Errorf("invalid --type value %q: must be one of: rails, python", t)
		}
		forced = pt
	}

	django := getBoolFlag(cmd, "with-django")
	fastapi := getBoolFlag(cmd, "with-fastapi")
	if django && fastapi {
		return fmt.Errorf("%w: --with-django and --with-fastapi are mutually exclusive", project.ErrConflictingFrameworks)
	}
	if (django || fastapi) && forced == models.ProjectTypeRails {
		return fmt.Errorf("%w: framework flags apply to Python projects only", project.ErrConflictingFrameworks)
	}

	return nil
}

// forcedFramework returns the framework named by --with-django or --with-fastapi.
func forcedFramework(cmd *cobra.Command) models.Framework {
	switch {
	case getBoolFlag(cmd, "with-django"):
		return models.FrameworkDjango
	case getBoolFlag(cmd, "with-fastapi"):
		return models.FrameworkFastAPI
	}
	return models.FrameworkNone
}

// resolveRoot returns the absolute project root for an optional directory
// argument, creating the directory when it is missing.
func resolveRoot(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve project path %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("create project directory %q: %w", dir, err)
	}
	return abs, nil
}

// runInit executes the project initialization workflow.
func runInit(cmd *cobra.Command, args []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	opts, err := buildInitOptions(ctx, cmd, root)
	if err != nil {
		return err
	}

	initializer, err := deps.NewInitializer(getStringFlag(cmd, "templates"))
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	result, err := initializer.Init(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	details := []string{
		renderKeyValueLines([]kvPair{
			{"Project", opts.ProjectName},
			{"Type", result.Config.FrameworkName()},
			{"Tests", result.Config.TestCommand("")},
			{"Files", fmt.Sprintf("%d written, %d kept", len(result.CreatedFiles), len(result.SkippedFiles))},
		}),
	}
	for _, w := range result.Warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}
	if result.GitIgnoreUpdated {
		details = append(details, cliMuted.Render("Added the Claude Code stanza to .gitignore"))
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard("claudekit initialized", details...))
	_, _ = fmt.Fprintln(out, renderMarkdown(out, nextStepsMarkdown(opts.SkipJournal)))
	return nil
}

// buildInitOptions resolves type, framework, and names from flags,
// detection, configuration, and the wizard.
func buildInitOptions(ctx context.Context, cmd *cobra.Command, root string) (project.InitOptions, error) {
	cfg := deps.Config
	det := deps.Detector.Detect(root)
	deps.Logger.Debug("detected project", "root", root, "type", det.Type, "framework", det.Framework)

	interactive := !getBoolFlag(cmd, "non-interactive") && deps.Interactive != nil && deps.Interactive()

	pt := det.Type
	if t := getStringFlag(cmd, "type"); t != "" {
		forced, _ := models.ParseProjectType(t)
		if err := project.CheckCompatibility(det.Type, forced); err != nil {
			return project.InitOptions{}, err
		}
		pt = forced
	}

	projectName := getStringFlag(cmd, "project-name")
	userName := git.ResolveUserName(ctx, getStringFlag(cmd, "user-name"), cfg.UserName, root)

	if interactive {
		needs := wizard.Needs{
			ProjectType: !pt.IsKnown(),
			AskName:     projectName == "",
			ProjectName: deps.Detector.DetectProjectName(root),
			UserName:    userName == "",
		}
		if questions := wizard.Questions(needs); len(questions) > 0 {
			answers, err := wizard.Run(questions)
			if err != nil {
				if errors.Is(err, wizard.ErrCancelled) {
					return project.InitOptions{}, fmt.Errorf("initialization cancelled")
				}
				return project.InitOptions{}, err
			}
			if needs.ProjectType {
				pt, _ = models.ParseProjectType(answers.ProjectType)
			}
			if needs.AskName {
				projectName = answers.ProjectName
			}
			if needs.UserName {
				userName = answers.UserName
			}
		}
	}

	if !pt.IsKnown() {
		pt = cfg.ProjectType()
	}
	if !pt.IsKnown() {
		return project.InitOptions{}, fmt.Errorf("%w: no Gemfile with rails or Python manifest in %s; pass --type rails or --type python",
			project.ErrUnknownProjectType, root)
	}

	if projectName == "" {
		projectName = deps.Detector.DetectProjectName(root)
	}
	if userName == "" {
		userName = wizard.DefaultUserName
	}

	fw := models.FrameworkNone
	if pt == models.ProjectTypePython {
		fw = forcedFramework(cmd)
		if fw == models.FrameworkNone {
			fw = deps.Detector.DetectPythonFramework(root)
		}
	} else if forcedFramework(cmd) != models.FrameworkNone {
		return project.InitOptions{}, fmt.Errorf("%w: framework flags apply to Python projects only", project.ErrConflictingFrameworks)
	}

	oauth := getBoolFlag(cmd, "with-oauth")
	viewComponents := getBoolFlag(cmd, "with-viewcomponents")
	if pt != models.ProjectTypeRails && (oauth || viewComponents) {
		deps.Logger.Warn("--with-oauth and --with-viewcomponents only apply to Rails projects")
	}

	return project.InitOptions{
		ProjectRoot:        root,
		ProjectName:        projectName,
		UserName:           userName,
		Type:               pt,
		Framework:          fw,
		WithOAuth:          oauth,
		WithViewComponents: viewComponents,
		SkipJournal:        getBoolFlag(cmd, "skip-journal") || cfg.SkipJournal,
	}, nil
}

// nextStepsMarkdown lists what to do after init.
func nextStepsMarkdown(skipJournal bool) string {
	md := "## Next steps\n\n" +
		"1. Review `CLAUDE.md` and adapt it to the project's real conventions.\n" +
		"2. Commit `CLAUDE.md` and `.claude/commands/`; local Claude state stays ignored.\n" +
		"3. Run `claudekit doctor` to verify the setup.\n" +
		"4. Add more workflows with `claudekit add-workflow --list`.\n"
	if !skipJournal {
		md += "5. Record decisions as you go in `docs/development_journal.md`.\n"
	}
	return md
}
