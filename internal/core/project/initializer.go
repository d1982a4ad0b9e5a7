package project

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/modu-ai/claudekit/internal/defs"
	"github.com/modu-ai/claudekit/internal/template"
	"github.com/modu-ai/claudekit/pkg/models"
	"github.com/modu-ai/claudekit/pkg/version"
)

// InitOptions configures project initialization and updates.
type InitOptions struct {
	ProjectRoot        string             // Absolute or relative path to the project root.
	ProjectName        string             // Name rendered into the templates.
	UserName           string             // User display name.
	Type               models.ProjectType // Must be a known type.
	Framework          models.Framework   // Python framework, FrameworkNone otherwise.
	WithOAuth          bool               // Render OAuth documentation blocks (Rails).
	WithViewComponents bool               // Render ViewComponent documentation blocks (Rails).
	SkipJournal        bool               // Do not create docs/development_journal.md.
}

// InitResult summarizes the outcome of project initialization.
type InitResult struct {
	CreatedDirs      []string // Directories ensured before deployment.
	CreatedFiles     []string // Files written from templates.
	SkippedFiles     []string // Protected files that already existed.
	Warnings         []string // Non-fatal problems, e.g. templates missing from the pack.
	GitIgnoreUpdated bool     // Whether the ignore stanza was appended.
	Config           Config   // Resolved tool configuration.
}

// UpdateResult summarizes a template refresh.
type UpdateResult struct {
	BackupPath   string   // Relative path of the backup, empty when nothing was backed up.
	UpdatedFiles []string // Command documents rewritten.
	Warnings     []string
}

// Initializer handles project scaffolding and template refreshes.
type Initializer interface {
	// Init creates the directory layout, deploys templates, and updates the
	// ignore file. Re-running it never overwrites protected files.
	Init(ctx context.Context, opts InitOptions) (*InitResult, error)

	// Update backs up .claude/commands and redeploys the command documents.
	Update(ctx context.Context, opts InitOptions) (*UpdateResult, error)

	// AddWorkflow copies a single workflow document into the commands tree
	// and returns its path relative to the project root.
	AddWorkflow(ctx context.Context, opts InitOptions, name string) (string, error)

	// Workflows lists the workflow templates available for the project type.
	Workflows(pt models.ProjectType) []template.CatalogEntry
}

// projectInitializer is the concrete implementation of Initializer.
type projectInitializer struct {
	templates fs.FS
	probe     VersionProbe
	now       func() time.Time
	logger    *slog.Logger
}

// InitializerOption configures an Initializer.
type InitializerOption func(*projectInitializer)

// WithRuntimeProbe sets the probe used to fill RuntimeVersion.
func WithRuntimeProbe(p VersionProbe) InitializerOption {
	return func(i *projectInitializer) {
		i.probe = p
	}
}

// WithClock sets the time source used for journal dates and backup names.
func WithClock(now func() time.Time) InitializerOption {
	return func(i *projectInitializer) {
		i.now = now
	}
}

// NewInitializer creates an Initializer that deploys from the template pack
// in templates. A nil logger discards output.
func NewInitializer(templates fs.FS, logger *slog.Logger, opts ...InitializerOption) Initializer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	i := &projectInitializer{
		templates: templates,
		probe:     ExecVersionProbe,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Protected template destinations. They are written once and then left to the user.
var (
	claudeMDSpec = template.FileSpec{Name: defs.ClaudeMD, Dest: defs.ClaudeMD, Protected: true}
	settingsSpec = template.FileSpec{
		Name:      defs.SettingsJSON,
		Dest:      path.Join(defs.ClaudeDir, defs.SettingsJSON),
		Protected: true,
	}
	journalSpec = template.FileSpec{
		Name:      defs.JournalMD,
		Dest:      path.Join(defs.DocsDir, defs.JournalMD),
		Protected: true,
	}
)

// commandsDest is the commands root relative to the project root.
var commandsDest = path.Join(defs.ClaudeDir, defs.CommandsDir)

// commandDirSpecs maps every commands subdirectory to its destination.
func commandDirSpecs() []template.DirSpec {
	specs := make([]template.DirSpec, 0, len(defs.CommandSubdirs))
	for _, sub := range defs.CommandSubdirs {
		specs = append(specs, template.DirSpec{
			Name: path.Join(defs.CommandsDir, sub),
			Dest: path.Join(commandsDest, sub),
		})
	}
	return specs
}

// structuralDirs lists the directories that must exist before deployment.
func structuralDirs() []string {
	dirs := make([]string, 0, len(defs.CommandSubdirs)+2)
	for _, sub := range defs.CommandSubdirs {
		dirs = append(dirs, path.Join(commandsDest, sub))
	}
	return append(dirs, defs.TasksDir, defs.DocsDir)
}

// Init creates a new claudekit layout in opts.ProjectRoot.
func (i *projectInitializer) Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	opts.ProjectRoot = filepath.Clean(opts.ProjectRoot)
	if err := validateRoot(opts.ProjectRoot); err != nil {
		return nil, err
	}
	if !opts.Type.IsKnown() {
		return nil, fmt.Errorf("init %s: %w", opts.ProjectRoot, ErrUnknownProjectType)
	}

	i.logger.Info("initializing project",
		"root", opts.ProjectRoot,
		"name", opts.ProjectName,
		"type", opts.Type,
		"framework", opts.Framework,
	)

	cfg, tmplCtx := i.buildContext(ctx, opts)
	result := &InitResult{Config: cfg}

	// Step 1: structural directories
	for _, dir := range structuralDirs() {
		if err := os.MkdirAll(filepath.Join(opts.ProjectRoot, filepath.FromSlash(dir)), defs.DirPerm); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
		result.CreatedDirs = append(result.CreatedDirs, dir)
	}

	// Step 2: templates
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	plan := template.Plan{
		Files: []template.FileSpec{claudeMDSpec, settingsSpec},
		Dirs:  commandDirSpecs(),
	}
	if !opts.SkipJournal {
		plan.Files = append(plan.Files, journalSpec)
	}

	deployed, err := i.deployer(opts.Type).Deploy(ctx, opts.ProjectRoot, plan, tmplCtx)
	if err != nil {
		return nil, fmt.Errorf("deploy templates: %w", err)
	}
	result.CreatedFiles = deployed.Written
	result.SkippedFiles = deployed.Skipped
	for _, missing := range deployed.Missing {
		result.Warnings = append(result.Warnings, fmt.Sprintf("template %s not found, skipped", missing))
	}

	// Step 3: ignore file
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	updated, err := EnsureGitIgnore(opts.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", defs.GitIgnore, err)
	}
	result.GitIgnoreUpdated = updated

	i.logger.Info("project initialized",
		"dirs", len(result.CreatedDirs),
		"files", len(result.CreatedFiles),
		"skipped", len(result.SkippedFiles),
	)
	return result, nil
}

// Update backs up the commands tree and redeploys every command document.
// CLAUDE.md and the journal are never touched.
func (i *projectInitializer) Update(ctx context.Context, opts InitOptions) (*UpdateResult, error) {
	opts.ProjectRoot = filepath.Clean(opts.ProjectRoot)
	if err := validateRoot(opts.ProjectRoot); err != nil {
		return nil, err
	}
	if !opts.Type.IsKnown() {
		return nil, fmt.Errorf("update %s: %w", opts.ProjectRoot, ErrUnknownProjectType)
	}

	result := &UpdateResult{}

	backup, err := i.backupCommands(opts.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("backup commands: %w", err)
	}
	result.BackupPath = backup

	for _, dir := range structuralDirs() {
		if err := os.MkdirAll(filepath.Join(opts.ProjectRoot, filepath.FromSlash(dir)), defs.DirPerm); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	_, tmplCtx := i.buildContext(ctx, opts)
	deployed, err := i.deployer(opts.Type).Deploy(ctx, opts.ProjectRoot, template.Plan{Dirs: commandDirSpecs()}, tmplCtx)
	if err != nil {
		return nil, fmt.Errorf("deploy templates: %w", err)
	}
	result.UpdatedFiles = deployed.Written
	for _, missing := range deployed.Missing {
		result.Warnings = append(result.Warnings, fmt.Sprintf("template %s not found, skipped", missing))
	}

	i.logger.Info("commands updated", "files", len(result.UpdatedFiles), "backup", result.BackupPath)
	return result, nil
}

// Workflows lists the workflow templates available for pt.
func (i *projectInitializer) Workflows(pt models.ProjectType) []template.CatalogEntry {
	return template.NewResolver(i.templates, pt).Catalog(path.Join(defs.CommandsDir, defs.WorkflowsSubdir))
}

// AddWorkflow deploys one workflow document by name. The ".md" extension is optional.
func (i *projectInitializer) AddWorkflow(ctx context.Context, opts InitOptions, name string) (string, error) {
	opts.ProjectRoot = filepath.Clean(opts.ProjectRoot)
	if err := validateRoot(opts.ProjectRoot); err != nil {
		return "", err
	}

	want := strings.TrimSuffix(name, ".md")
	catalog := i.Workflows(opts.Type)

	var entry *template.CatalogEntry
	available := make([]string, 0, len(catalog))
	for idx := range catalog {
		available = append(available, catalog[idx].Name)
		if catalog[idx].Name == want {
			entry = &catalog[idx]
		}
	}
	if entry == nil {
		return "", &UnknownWorkflowError{Name: name, Available: available}
	}

	logical := path.Join(defs.CommandsDir, defs.WorkflowsSubdir, entry.File)
	dest := path.Join(commandsDest, defs.WorkflowsSubdir, entry.File)

	// An unknown project has no tool configuration to render, so the
	// document is copied as-is.
	cfg, tmplCtx := i.buildContext(ctx, opts)
	if cfg.Validate() != nil {
		tmplCtx = nil
	}
	plan := template.Plan{Files: []template.FileSpec{{Name: logical, Dest: dest}}}
	if _, err := i.deployer(opts.Type).Deploy(ctx, opts.ProjectRoot, plan, tmplCtx); err != nil {
		return "", fmt.Errorf("deploy workflow %s: %w", want, err)
	}
	return dest, nil
}

// deployer builds a template deployer for the given project type.
func (i *projectInitializer) deployer(pt models.ProjectType) template.Deployer {
	resolver := template.NewResolver(i.templates, pt)
	return template.NewDeployer(resolver, template.NewRenderer(i.templates), i.logger)
}

// buildContext resolves the tool configuration and the rendering context.
func (i *projectInitializer) buildContext(ctx context.Context, opts InitOptions) (Config, *template.TemplateContext) {
	cfg := NewConfig(opts.ProjectRoot, opts.Type, opts.Framework, WithVersionProbe(i.probe))

	name := opts.ProjectName
	if name == "" {
		name = filepath.Base(opts.ProjectRoot)
	}

	tmplCtx := template.NewTemplateContext(
		template.WithProject(name, opts.ProjectRoot),
		template.WithUser(opts.UserName),
		template.WithProjectInfo(cfg.TemplateInfo(ctx)),
		template.WithFeatures(opts.WithOAuth, opts.WithViewComponents),
		template.WithVersion(version.GetVersion()),
		template.WithDate(i.now().Format("2006-01-02")),
	)
	return cfg, tmplCtx
}

// backupCommands copies .claude/commands to a timestamped directory under
// .claude/backups. Runs within the same second get a numeric suffix. It
// returns "" when there is nothing to back up.
func (i *projectInitializer) backupCommands(root string) (string, error) {
	src := filepath.Join(root, filepath.FromSlash(commandsDest))
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("stat commands directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", commandsDest)
	}

	base := path.Join(defs.ClaudeDir, defs.BackupsDir, "commands-"+i.now().Format(defs.BackupTimestampFormat))
	rel := base
	for n := 2; pathExists(filepath.Join(root, filepath.FromSlash(rel))); n++ {
		rel = fmt.Sprintf("%s-%d", base, n)
	}
	dst := filepath.Join(root, filepath.FromSlash(rel))

	err = filepath.Walk(src, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, relPath)
		if info.IsDir() {
			return os.MkdirAll(target, defs.DirPerm)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		return os.WriteFile(target, data, info.Mode().Perm())
	})
	if err != nil {
		return "", err
	}

	i.logger.Debug("commands backed up", "path", rel)
	return rel, nil
}

// pathExists reports whether anything exists at p.
func pathExists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}
