// Package cli provides the Cobra command tree and dependency wiring for
// the claudekit CLI. This file defines the Dependencies struct (composition
// root) that wires the domain packages together.
package cli

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/modu-ai/claudekit/internal/config"
	"github.com/modu-ai/claudekit/internal/core/project"
	"github.com/modu-ai/claudekit/internal/template"
)

// Dependencies holds the services used by CLI commands. Concrete types are
// only instantiated here; commands reach them through the deps variable.
type Dependencies struct {
	Config   *config.Config
	Detector project.Detector
	Logger   *slog.Logger

	// Interactive reports whether prompts may be shown.
	Interactive func() bool
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies loads the user configuration and wires the domain
// packages. Log output goes to w.
func InitDependencies(w io.Writer, verbose bool, configPath string) error {
	logger := newLogger(w, verbose)

	cfg, err := config.NewLoader(logger).Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	deps = &Dependencies{
		Config:      cfg,
		Detector:    project.NewDetector(logger),
		Logger:      logger,
		Interactive: isInteractive,
	}
	return nil
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// newLogger returns a slog.Logger backed by a charmbracelet/log handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		Prefix:          "claudekit",
	})
	return slog.New(handler)
}

// isInteractive is the prompt check installed by InitDependencies.
var isInteractive = stdinIsTerminal

// stdinIsTerminal reports whether stdin is attached to a terminal.
func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TemplatePack returns the template pack selected by the --templates flag,
// then the configured templates_dir, then the embedded pack.
func (d *Dependencies) TemplatePack(flagDir string) (fs.FS, error) {
	dir := flagDir
	if dir == "" && d.Config != nil {
		dir = d.Config.TemplatesDir
	}
	if dir != "" {
		d.Logger.Debug("using on-disk template pack", "dir", dir)
	}
	return template.LoadTemplates(dir)
}

// NewInitializer builds a project initializer over the selected template pack.
func (d *Dependencies) NewInitializer(flagDir string) (project.Initializer, error) {
	pack, err := d.TemplatePack(flagDir)
	if err != nil {
		return nil, err
	}
	return project.NewInitializer(pack, d.Logger), nil
}
