package project

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/modu-ai/claudekit/internal/defs"
	"github.com/modu-ai/claudekit/internal/template"
	"github.com/modu-ai/claudekit/pkg/models"
)

// toolset is the set of quality tool commands for a project type.
type toolset struct {
	TestRunner string
	Linter     string
	Formatter  string
}

// toolsets maps each known project type to its tool commands.
var toolsets = map[models.ProjectType]toolset{
	models.ProjectTypeRails: {
		TestRunner: "bin/rspec",
		Linter:     "bin/rubocop",
		Formatter:  "bin/rubocop --autocorrect",
	},
	models.ProjectTypePython: {
		TestRunner: "pytest",
		Linter:     "ruff check",
		Formatter:  "black",
	},
}

// pythonPackageFiles is the priority order for the Python package manifest.
// The last entry is returned even when it does not exist.
var pythonPackageFiles = []string{
	defs.PyprojectTOML,
	defs.Pipfile,
	defs.SetupPy,
	defs.RequirementsTXT,
}

// poetryMarker identifies a Poetry-managed pyproject.toml.
const poetryMarker = "[tool.poetry]"

// runtimeCommands lists the command used to print the language runtime version.
var runtimeCommands = map[models.ProjectType][]string{
	models.ProjectTypeRails:  {"ruby", "--version"},
	models.ProjectTypePython: {"python3", "--version"},
}

// VersionProbe runs a command and returns its trimmed output.
type VersionProbe func(ctx context.Context, name string, args ...string) (string, error)

// ExecVersionProbe runs the command through os/exec.
func ExecVersionProbe(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Config holds the tool commands and package conventions for a project.
// It is a pure function of its inputs plus the files present in Root, and
// may be rebuilt at any time.
type Config struct {
	Root      string
	Type      models.ProjectType
	Framework models.Framework

	TestRunner string
	Linter     string
	Formatter  string

	probe VersionProbe
}

// ConfigOption configures a Config.
type ConfigOption func(*Config)

// WithVersionProbe replaces the runtime version probe.
func WithVersionProbe(p VersionProbe) ConfigOption {
	return func(c *Config) {
		c.probe = p
	}
}

// NewConfig builds the Config for the given project type and framework.
// An unknown type yields empty commands; see Validate.
func NewConfig(root string, pt models.ProjectType, fw models.Framework, opts ...ConfigOption) Config {
	ts := toolsets[pt]
	cfg := Config{
		Root:       filepath.Clean(root),
		Type:       pt,
		Framework:  fw,
		TestRunner: ts.TestRunner,
		Linter:     ts.Linter,
		Formatter:  ts.Formatter,
		probe:      ExecVersionProbe,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate reports ErrUnknownProjectType for configs that must not be rendered.
func (c Config) Validate() error {
	if !c.Type.IsKnown() {
		return ErrUnknownProjectType
	}
	return nil
}

// FrameworkName returns the display label for templates and output.
func (c Config) FrameworkName() string {
	if name := c.Framework.DisplayName(); name != "" {
		return name
	}
	return cases.Title(language.English).String(string(c.Type))
}

// TestCommand returns the test runner command, scoped to file when given.
func (c Config) TestCommand(file string) string {
	return withArg(c.TestRunner, file)
}

// LintCommand returns the linter command, scoped to file when given.
func (c Config) LintCommand(file string) string {
	return withArg(c.Linter, file)
}

// FormatCommand returns the formatter command. Python's formatter needs an
// explicit target and defaults to the current directory; Rails' does not.
func (c Config) FormatCommand(file string) string {
	if file == "" && c.Type == models.ProjectTypePython {
		file = "."
	}
	return withArg(c.Formatter, file)
}

// PackageFile returns the dependency manifest name for the project.
func (c Config) PackageFile() string {
	switch c.Type {
	case models.ProjectTypeRails:
		return defs.Gemfile
	case models.ProjectTypePython:
		for _, name := range pythonPackageFiles[:len(pythonPackageFiles)-1] {
			if fileExists(filepath.Join(c.Root, name)) {
				return name
			}
		}
		return pythonPackageFiles[len(pythonPackageFiles)-1]
	}
	return ""
}

// InstallCommand returns the dependency install command. For Python the
// package manager is chosen in order: Pipfile, Poetry pyproject.toml, pip.
func (c Config) InstallCommand() string {
	switch c.Type {
	case models.ProjectTypeRails:
		return "bundle install"
	case models.ProjectTypePython:
		if fileExists(filepath.Join(c.Root, defs.Pipfile)) {
			return "pipenv install"
		}
		if data, err := os.ReadFile(filepath.Join(c.Root, defs.PyprojectTOML)); err == nil &&
			strings.Contains(string(data), poetryMarker) {
			return "poetry install"
		}
		return "pip install -r " + defs.RequirementsTXT
	}
	return ""
}

// RuntimeVersion returns the language runtime version reported by the
// local toolchain, or "" when it cannot be determined.
func (c Config) RuntimeVersion(ctx context.Context) string {
	argv, ok := runtimeCommands[c.Type]
	if !ok || c.probe == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	out, err := c.probe(ctx, argv[0], argv[1:]...)
	if err != nil {
		return ""
	}
	return out
}

// TemplateInfo returns the values rendered into templates, probing the
// runtime version once.
func (c Config) TemplateInfo(ctx context.Context) template.ProjectInfo {
	return template.ProjectInfo{
		Type:           c.Type,
		Framework:      c.Framework,
		FrameworkName:  c.FrameworkName(),
		TestCommand:    c.TestCommand(""),
		LintCommand:    c.LintCommand(""),
		FormatCommand:  c.FormatCommand(""),
		PackageFile:    c.PackageFile(),
		InstallCommand: c.InstallCommand(),
		RuntimeVersion: c.RuntimeVersion(ctx),
	}
}

// withArg appends a single space and arg to base when both are non-empty.
func withArg(base, arg string) string {
	if base == "" || arg == "" {
		return base
	}
	return base + " " + arg
}
