package project

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCursor(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		".cursor/rules/release-process.mdc": "---\ndescription: How we ship\nglobs: \"\"\nalwaysApply: true\n---\nTag, build, deploy.\n",
		".cursor/rules/testing.mdc":         "---\ndescription: Test rules\nglobs: [\"spec/**\", \"test/**\"]\n---\n# Testing\n\nUse factories.\n",
		".cursor/rules/naming.md":           "Use snake_case for files.\n",
		".cursor/rules/python.mdc":          "---\ndescription: Python style\nglobs: *.py\n---\nFollow PEP 8.\n",
		".cursor/rules/notes.txt":           "ignored\n",
	})

	migrated, err := MigrateCursor(root, nil)
	require.NoError(t, err)
	require.Len(t, migrated, 4)

	byDest := make(map[string]MigratedRule, len(migrated))
	for _, m := range migrated {
		byDest[m.Dest] = m
	}

	release, ok := byDest[".claude/commands/workflows/release-process.md"]
	require.True(t, ok)
	assert.Equal(t, "workflows", release.Category)
	assert.True(t, release.Rule.AlwaysApply)
	assert.Equal(t, "# How we ship\n\nTag, build, deploy.\n", readFile(t, root, release.Dest))

	quality, ok := byDest[".claude/commands/quality/testing.md"]
	require.True(t, ok)
	assert.Equal(t, []string{"spec/**", "test/**"}, quality.Rule.GlobList())
	assert.Equal(t, "# Testing\n\nUse factories.\n", readFile(t, root, quality.Dest))

	assert.Equal(t, "Use snake_case for files.\n", readFile(t, root, ".claude/commands/conventions/naming.md"))

	// Unparseable front matter is still stripped.
	assert.Equal(t, "Follow PEP 8.\n", readFile(t, root, ".claude/commands/conventions/python.md"))

	assert.NoFileExists(t, filepath.Join(root, ".claude", "commands", "conventions", "notes.md"))
}

func TestMigrateCursor_NoRules(t *testing.T) {
	_, err := MigrateCursor(t.TempDir(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCursorRules))
}

func TestRouteRule(t *testing.T) {
	tests := map[string]string{
		"git-workflow":   "workflows",
		"review-process": "workflows",
		"DataFlow":       "workflows",
		"unit-tests":     "quality",
		"Linting":        "quality",
		"code-review":    "quality",
		"security":       "quality",
		"style":          "conventions",
	}
	for base, want := range tests {
		t.Run(base, func(t *testing.T) {
			assert.Equal(t, want, routeRule(base))
		})
	}
}

func TestCursorRule_GlobList(t *testing.T) {
	assert.Equal(t, []string{"app/**/*.rb", "lib/**"}, CursorRule{Globs: "app/**/*.rb, lib/**"}.GlobList())
	assert.Empty(t, CursorRule{}.GlobList())
}

func TestStripFrontMatter(t *testing.T) {
	assert.Equal(t, "body\n", string(stripFrontMatter([]byte("---\r\nglobs: *.py\r\n---\r\nbody\n"))))
	assert.Equal(t, "no matter\n", string(stripFrontMatter([]byte("no matter\n"))))
	assert.Equal(t, "---\nunterminated\n", string(stripFrontMatter([]byte("---\nunterminated\n"))))
}
