package project

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modu-ai/claudekit/internal/template"
	"github.com/modu-ai/claudekit/pkg/models"
)

// stubProbe returns a fixed version and records the command it was asked to run.
func stubProbe(out string, err error, calls *[]string) VersionProbe {
	return func(_ context.Context, name string, args ...string) (string, error) {
		if calls != nil {
			*calls = append(*calls, name)
		}
		return out, err
	}
}

func TestNewConfig_Toolsets(t *testing.T) {
	tests := []struct {
		pt                          models.ProjectType
		test, lint, format, display string
	}{
		{models.ProjectTypeRails, "bin/rspec", "bin/rubocop", "bin/rubocop --autocorrect", "Rails"},
		{models.ProjectTypePython, "pytest", "ruff check", "black .", "Python"},
		{models.ProjectTypeUnknown, "", "", "", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(string(tt.pt), func(t *testing.T) {
			cfg := NewConfig(t.TempDir(), tt.pt, models.FrameworkNone)
			assert.Equal(t, tt.test, cfg.TestCommand(""))
			assert.Equal(t, tt.lint, cfg.LintCommand(""))
			assert.Equal(t, tt.format, cfg.FormatCommand(""))
			assert.Equal(t, tt.display, cfg.FrameworkName())
		})
	}
}

func TestConfig_FileScopedCommands(t *testing.T) {
	rails := NewConfig(t.TempDir(), models.ProjectTypeRails, models.FrameworkNone)
	assert.Equal(t, "bin/rspec spec/models/user_spec.rb", rails.TestCommand("spec/models/user_spec.rb"))
	assert.Equal(t, "bin/rubocop app/models/user.rb", rails.LintCommand("app/models/user.rb"))
	assert.Equal(t, "bin/rubocop --autocorrect app/models/user.rb", rails.FormatCommand("app/models/user.rb"))

	python := NewConfig(t.TempDir(), models.ProjectTypePython, models.FrameworkGeneric)
	assert.Equal(t, "pytest tests/test_api.py", python.TestCommand("tests/test_api.py"))
	assert.Equal(t, "ruff check src/app.py", python.LintCommand("src/app.py"))
	assert.Equal(t, "black src/app.py", python.FormatCommand("src/app.py"))
}

func TestConfig_FrameworkName(t *testing.T) {
	tests := []struct {
		fw   models.Framework
		want string
	}{
		{models.FrameworkDjango, "Django"},
		{models.FrameworkFastAPI, "FastAPI"},
		{models.FrameworkFlask, "Flask"},
		{models.FrameworkGeneric, "Python"},
	}
	for _, tt := range tests {
		t.Run(string(tt.fw), func(t *testing.T) {
			cfg := NewConfig(t.TempDir(), models.ProjectTypePython, tt.fw)
			assert.Equal(t, tt.want, cfg.FrameworkName())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, NewConfig(".", models.ProjectTypeRails, models.FrameworkNone).Validate())
	err := NewConfig(".", models.ProjectTypeUnknown, models.FrameworkNone).Validate()
	assert.True(t, errors.Is(err, ErrUnknownProjectType))
}

func TestConfig_PackageFileAndInstall(t *testing.T) {
	tests := []struct {
		name        string
		pt          models.ProjectType
		files       map[string]string
		wantPackage string
		wantInstall string
	}{
		{
			name:        "rails",
			pt:          models.ProjectTypeRails,
			files:       map[string]string{"Gemfile": "gem 'rails'"},
			wantPackage: "Gemfile",
			wantInstall: "bundle install",
		},
		{
			name:        "pipfile",
			pt:          models.ProjectTypePython,
			files:       map[string]string{"Pipfile": "", "requirements.txt": ""},
			wantPackage: "Pipfile",
			wantInstall: "pipenv install",
		},
		{
			name:        "pipfile_beats_poetry",
			pt:          models.ProjectTypePython,
			files:       map[string]string{"Pipfile": "", "pyproject.toml": "[tool.poetry]\n"},
			wantPackage: "pyproject.toml",
			wantInstall: "pipenv install",
		},
		{
			name:        "poetry",
			pt:          models.ProjectTypePython,
			files:       map[string]string{"pyproject.toml": "[tool.poetry]\nname = \"x\"\n"},
			wantPackage: "pyproject.toml",
			wantInstall: "poetry install",
		},
		{
			name:        "plain_pyproject",
			pt:          models.ProjectTypePython,
			files:       map[string]string{"pyproject.toml": "[project]\nname = \"x\"\n"},
			wantPackage: "pyproject.toml",
			wantInstall: "pip install -r requirements.txt",
		},
		{
			name:        "setup_py_beats_requirements",
			pt:          models.ProjectTypePython,
			files:       map[string]string{"setup.py": "", "requirements.txt": ""},
			wantPackage: "setup.py",
			wantInstall: "pip install -r requirements.txt",
		},
		{
			name:        "requirements_fallback",
			pt:          models.ProjectTypePython,
			files:       map[string]string{},
			wantPackage: "requirements.txt",
			wantInstall: "pip install -r requirements.txt",
		},
		{
			name:        "unknown",
			pt:          models.ProjectTypeUnknown,
			files:       map[string]string{},
			wantPackage: "",
			wantInstall: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, tt.files)
			cfg := NewConfig(root, tt.pt, models.FrameworkNone)
			assert.Equal(t, tt.wantPackage, cfg.PackageFile())
			assert.Equal(t, tt.wantInstall, cfg.InstallCommand())
		})
	}
}

func TestConfig_RuntimeVersion(t *testing.T) {
	t.Run("python_probe", func(t *testing.T) {
		var calls []string
		cfg := NewConfig(".", models.ProjectTypePython, models.FrameworkGeneric,
			WithVersionProbe(stubProbe("Python 3.12.1", nil, &calls)))
		assert.Equal(t, "Python 3.12.1", cfg.RuntimeVersion(context.Background()))
		assert.Equal(t, []string{"python3"}, calls)
	})

	t.Run("probe_error_is_empty", func(t *testing.T) {
		cfg := NewConfig(".", models.ProjectTypeRails, models.FrameworkNone,
			WithVersionProbe(stubProbe("", errors.New("not installed"), nil)))
		assert.Empty(t, cfg.RuntimeVersion(context.Background()))
	})

	t.Run("unknown_type_never_probes", func(t *testing.T) {
		var calls []string
		cfg := NewConfig(".", models.ProjectTypeUnknown, models.FrameworkNone,
			WithVersionProbe(stubProbe("x", nil, &calls)))
		assert.Empty(t, cfg.RuntimeVersion(context.Background()))
		assert.Empty(t, calls)
	})
}

func TestConfig_TemplateInfo(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"requirements.txt": "fastapi\n", "main.py": ""})

	cfg := NewConfig(root, models.ProjectTypePython, models.FrameworkFastAPI,
		WithVersionProbe(stubProbe("Python 3.11.9", nil, nil)))

	want := template.ProjectInfo{
		Type:           models.ProjectTypePython,
		Framework:      models.FrameworkFastAPI,
		FrameworkName:  "FastAPI",
		TestCommand:    "pytest",
		LintCommand:    "ruff check",
		FormatCommand:  "black .",
		PackageFile:    "requirements.txt",
		InstallCommand: "pip install -r requirements.txt",
		RuntimeVersion: "Python 3.11.9",
	}
	got := cfg.TemplateInfo(context.Background())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TemplateInfo() mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, cfg.Validate())
}
