package template

import (
	"github.com/modu-ai/claudekit/pkg/models"
)

// ProjectInfo is the subset of the project configuration rendered into
// templates. project.Config.TemplateInfo builds it.
type ProjectInfo struct {
	Type           models.ProjectType
	Framework      models.Framework
	FrameworkName  string
	TestCommand    string
	LintCommand    string
	FormatCommand  string
	PackageFile    string
	InstallCommand string
	RuntimeVersion string
}

// TemplateContext provides data for template rendering. It is the complete
// set of values a template can reference; templates cannot perform I/O.
type TemplateContext struct {
	// Project
	ProjectName string
	ProjectRoot string

	// User
	UserName string

	// Detection
	ProjectType   string // "rails", "python"
	Framework     string // "django", "fastapi", "flask", "generic", or ""
	FrameworkName string // "Rails", "Python", "Django", "FastAPI", "Flask"

	// Tooling
	TestCommand    string
	LintCommand    string
	FormatCommand  string
	PackageFile    string
	InstallCommand string
	RuntimeVersion string // e.g. "Python 3.12.1"; empty when unknown

	// Optional features
	WithOAuth          bool
	WithViewComponents bool

	// Meta
	Version string // claudekit version
	Date    string // YYYY-MM-DD of the run
}

// ContextOption configures a TemplateContext.
type ContextOption func(*TemplateContext)

// NewTemplateContext creates a TemplateContext and applies opts in order.
func NewTemplateContext(opts ...ContextOption) *TemplateContext {
	ctx := &TemplateContext{}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// IsRails reports whether the context describes a Rails project.
func (c *TemplateContext) IsRails() bool {
	return c.ProjectType == string(models.ProjectTypeRails)
}

// IsPython reports whether the context describes a Python project.
func (c *TemplateContext) IsPython() bool {
	return c.ProjectType == string(models.ProjectTypePython)
}

// WithProject sets project-related fields.
func WithProject(name, root string) ContextOption {
	return func(c *TemplateContext) {
		c.ProjectName = name
		c.ProjectRoot = root
	}
}

// WithUser sets the user name.
func WithUser(name string) ContextOption {
	return func(c *TemplateContext) {
		c.UserName = name
	}
}

// WithProjectInfo copies detection and tooling values.
func WithProjectInfo(info ProjectInfo) ContextOption {
	return func(c *TemplateContext) {
		c.ProjectType = string(info.Type)
		c.Framework = string(info.Framework)
		c.FrameworkName = info.FrameworkName
		c.TestCommand = info.TestCommand
		c.LintCommand = info.LintCommand
		c.FormatCommand = info.FormatCommand
		c.PackageFile = info.PackageFile
		c.InstallCommand = info.InstallCommand
		c.RuntimeVersion = info.RuntimeVersion
	}
}

// WithFeatures toggles optional documentation blocks.
func WithFeatures(oauth, viewComponents bool) ContextOption {
	return func(c *TemplateContext) {
		c.WithOAuth = oauth
		c.WithViewComponents = viewComponents
	}
}

// WithVersion sets the claudekit version.
func WithVersion(version string) ContextOption {
	return func(c *TemplateContext) {
		c.Version = version
	}
}

// WithDate sets the run date.
func WithDate(date string) ContextOption {
	return func(c *TemplateContext) {
		c.Date = date
	}
}
