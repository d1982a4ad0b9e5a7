package project

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/modu-ai/claudekit/internal/defs"
	"github.com/modu-ai/claudekit/pkg/models"
)

// railsMarker is the substring of a Gemfile that identifies a Rails dependency.
const railsMarker = "rails"

// pythonManifests lists the files whose presence marks a Python project.
var pythonManifests = []string{
	defs.RequirementsTXT,
	defs.PyprojectTOML,
	defs.SetupPy,
	defs.Pipfile,
}

// pythonEntryPoints lists the application entry-point files inspected for
// FastAPI and Flask detection.
var pythonEntryPoints = []string{defs.MainPy, defs.AppPy}

// pythonFrameworks maps requirement names to frameworks, checked in order.
var pythonFrameworks = []struct {
	Dependency string
	Framework  models.Framework
}{
	{"fastapi", models.FrameworkFastAPI},
	{"flask", models.FrameworkFlask},
}

// Detection is the result of inspecting a project directory.
type Detection struct {
	Type      models.ProjectType
	Framework models.Framework
}

// Detector identifies project characteristics from marker files.
// All methods are total: unreadable files count as absent.
type Detector interface {
	// Detect returns the project type and, for Python projects, the framework.
	Detect(root string) Detection

	// DetectProjectType classifies the project in root.
	DetectProjectType(root string) models.ProjectType

	// DetectPythonFramework classifies the Python framework used in root.
	DetectPythonFramework(root string) models.Framework

	// DetectProjectName returns a default project name for root.
	DetectProjectName(root string) string
}

// projectDetector is the concrete implementation of Detector.
type projectDetector struct {
	logger *slog.Logger
}

// NewDetector creates a Detector. A nil logger discards output.
func NewDetector(logger *slog.Logger) Detector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &projectDetector{logger: logger}
}

// Detect returns the project type and framework for root.
func (d *projectDetector) Detect(root string) Detection {
	pt := d.DetectProjectType(root)
	det := Detection{Type: pt, Framework: models.FrameworkNone}
	if pt == models.ProjectTypePython {
		det.Framework = d.DetectPythonFramework(root)
	}
	return det
}

// DetectProjectType checks for a Rails Gemfile first, then Python manifests.
func (d *projectDetector) DetectProjectType(root string) models.ProjectType {
	root = filepath.Clean(root)
	d.logger.Debug("detecting project type", "root", root)

	if data, err := os.ReadFile(filepath.Join(root, defs.Gemfile)); err == nil {
		if bytes.Contains(data, []byte(railsMarker)) {
			return models.ProjectTypeRails
		}
	}

	for _, name := range pythonManifests {
		if fileExists(filepath.Join(root, name)) {
			return models.ProjectTypePython
		}
	}

	return models.ProjectTypeUnknown
}

// DetectPythonFramework returns django when manage.py exists. Otherwise, if
// an entry point exists, requirements.txt decides between FastAPI and Flask.
func (d *projectDetector) DetectPythonFramework(root string) models.Framework {
	root = filepath.Clean(root)

	if fileExists(filepath.Join(root, defs.ManagePy)) {
		return models.FrameworkDjango
	}

	if !anyFileExists(root, pythonEntryPoints) {
		return models.FrameworkGeneric
	}

	data, err := os.ReadFile(filepath.Join(root, defs.RequirementsTXT))
	if err != nil {
		d.logger.Debug("no requirements manifest for framework detection", "error", err)
		return models.FrameworkGeneric
	}

	content := strings.ToLower(string(data))
	for _, fm := range pythonFrameworks {
		if strings.Contains(content, fm.Dependency) {
			return fm.Framework
		}
	}
	return models.FrameworkGeneric
}

// pyproject holds the name fields read from pyproject.toml.
type pyproject struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name string `toml:"name"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// DetectProjectName prefers the name declared in pyproject.toml and falls
// back to the directory name.
func (d *projectDetector) DetectProjectName(root string) string {
	root = filepath.Clean(root)

	if data, err := os.ReadFile(filepath.Join(root, defs.PyprojectTOML)); err == nil {
		var pp pyproject
		if err := toml.Unmarshal(data, &pp); err != nil {
			d.logger.Debug("failed to parse pyproject.toml", "error", err)
		} else if pp.Project.Name != "" {
			return pp.Project.Name
		} else if pp.Tool.Poetry.Name != "" {
			return pp.Tool.Poetry.Name
		}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	name := filepath.Base(abs)
	if name == "." || name == string(filepath.Separator) {
		return "my-project"
	}
	return name
}

// validateRoot checks that the root path is a valid, accessible directory.
func validateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRoot, root)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}
	return nil
}

// anyFileExists reports whether any of names exists as a file under root.
func anyFileExists(root string, names []string) bool {
	for _, name := range names {
		if fileExists(filepath.Join(root, name)) {
			return true
		}
	}
	return false
}

// dirExists checks if a path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// fileExists checks if a path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CheckCompatibility reports ErrIncompatibleProject when forced names a
// type that the project markers contradict. A root without markers accepts
// any known type.
func CheckCompatibility(detected, forced models.ProjectType) error {
	if !forced.IsKnown() || !detected.IsKnown() || detected == forced {
		return nil
	}
	return fmt.Errorf("%w: markers indicate %s, not %s", ErrIncompatibleProject, detected, forced)
}
