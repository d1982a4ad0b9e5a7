package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modu-ai/claudekit/internal/core/project"
	"github.com/modu-ai/claudekit/pkg/version"
)

func TestUpdateCmd(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{"Gemfile": "gem 'rails'\n"})

	_, err := executeIn(t, root, "init", "--user-name", "Sam")
	require.NoError(t, err)
	writeProjectFiles(t, root, map[string]string{".claude/commands/workflows/tdd.md": "stale\n"})

	out, err := executeIn(t, root, "update")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Commands updated")

	backups, err := os.ReadDir(filepath.Join(root, ".claude", "backups"))
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.True(t, strings.HasPrefix(backups[0].Name(), "commands-"))
	assert.NotEqual(t, "stale\n", readProjectFile(t, root, ".claude/commands/workflows/tdd.md"))
}

func TestUpdateCmd_UnrecognizedProject(t *testing.T) {
	_, err := executeIn(t, t.TempDir(), "update")
	assert.True(t, errors.Is(err, project.ErrIncompatibleProject))
}

func TestAddWorkflowCmd(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{"requirements.txt": ""})

	t.Run("list", func(t *testing.T) {
		out, err := executeIn(t, root, "add-workflow", "--list")
		require.NoError(t, err)
		assert.Contains(t, out, "feature-development")
		assert.Contains(t, out, "tdd")
	})

	t.Run("add", func(t *testing.T) {
		out, err := executeIn(t, root, "add-workflow", "refactoring")
		require.NoError(t, err)
		assert.Contains(t, out, "Workflow added")
		assert.FileExists(t, filepath.Join(root, ".claude", "commands", "workflows", "refactoring.md"))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := executeIn(t, root, "add-workflow", "deploy")
		var unknown *project.UnknownWorkflowError
		require.True(t, errors.As(err, &unknown))
		assert.Contains(t, err.Error(), "bug-fix")
	})

	t.Run("missing_name", func(t *testing.T) {
		_, err := executeIn(t, root, "add-workflow")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--list")
	})
}

func TestMigrateCursorCmd(t *testing.T) {
	t.Run("no_rules", func(t *testing.T) {
		_, err := executeIn(t, t.TempDir(), "migrate-cursor")
		assert.True(t, errors.Is(err, project.ErrNoCursorRules))
	})

	t.Run("migrates", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFiles(t, root, map[string]string{
			".cursor/rules/code-review.mdc": "---\ndescription: Review checklist\n---\nCheck tests.\n",
		})
		out, err := executeIn(t, root, "migrate-cursor")
		require.NoError(t, err)
		assert.Contains(t, out, "Migrated 1 rule(s)")
		assert.Equal(t, "# Review checklist\n\nCheck tests.\n", readProjectFile(t, root, ".claude/commands/quality/code-review.md"))
	})

	t.Run("empty_rules_dir", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".cursor", "rules"), 0o755))
		out, err := executeIn(t, root, "migrate-cursor")
		require.NoError(t, err)
		assert.Contains(t, out, "No rule files found")
	})
}

func TestDoctorCmd(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{"requirements.txt": "flask\n", "app.py": ""})

	_, err := executeIn(t, root, "doctor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem(s)")

	_, err = executeIn(t, root, "init", "--user-name", "Sam")
	require.NoError(t, err)

	out, err := executeIn(t, root, "doctor")
	require.NoError(t, err, out)
	assert.Contains(t, out, "CLAUDE.md")
}

func TestVersionCmd(t *testing.T) {
	out, err := executeIn(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "claudekit "+version.GetVersion()+"\n", out)

	out, err = executeIn(t, t.TempDir(), "version", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:")
}

func TestInitDependencies_InvalidConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("default_type: cobol\n"), 0o644))

	err := InitDependencies(os.Stderr, false, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
