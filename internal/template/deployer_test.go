package template

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modu-ai/claudekit/pkg/models"
)

func newTestDeployer(fsys fstest.MapFS, pt models.ProjectType) Deployer {
	return NewDeployer(NewResolver(fsys, pt), NewRenderer(fsys), nil)
}

func readDest(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestDeploy_FilesAndDirs(t *testing.T) {
	root := t.TempDir()
	d := newTestDeployer(tieredPack(), models.ProjectTypeRails)
	data := NewTemplateContext(WithProject("shop", root))

	plan := Plan{
		Files: []FileSpec{
			{Name: "CLAUDE.md", Dest: "CLAUDE.md", Protected: true},
			{Name: "settings.json", Dest: ".claude/settings.json", Protected: true},
			{Name: "development_journal.md", Dest: "docs/development_journal.md", Protected: true},
		},
		Dirs: []DirSpec{
			{Name: "commands/conventions", Dest: ".claude/commands/conventions"},
			{Name: "commands/workflows", Dest: ".claude/commands/workflows"},
			{Name: "commands/context", Dest: ".claude/commands/context"},
			{Name: "commands/journal", Dest: ".claude/commands/journal"},
		},
	}

	result, err := d.Deploy(context.Background(), root, plan, data)
	require.NoError(t, err)

	assert.Equal(t, "rails shop", readDest(t, root, "CLAUDE.md"))
	assert.Equal(t, "{}", readDest(t, root, ".claude/settings.json"))
	assert.Equal(t, "rails conventions", readDest(t, root, ".claude/commands/conventions/rails.md"))
	assert.Equal(t, "general", readDest(t, root, ".claude/commands/conventions/general.md"))
	assert.Equal(t, "rails style", readDest(t, root, ".claude/commands/conventions/style.md"))
	assert.Equal(t, "nested", readDest(t, root, ".claude/commands/workflows/nested/x.md"))
	assert.Equal(t, "shop", readDest(t, root, ".claude/commands/context/overview.md"))

	assert.ElementsMatch(t, []string{"development_journal.md", "commands/journal"}, result.Missing)
	assert.Empty(t, result.Skipped)
	assert.Contains(t, result.Written, ".claude/commands/context/overview.md")
}

func TestDeploy_ProtectedFilesSkipped(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "CLAUDE.md"), []byte("mine"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".claude", "commands", "workflows"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".claude", "commands", "workflows", "tdd.md"), []byte("old"), 0o644))

	d := newTestDeployer(tieredPack(), models.ProjectTypePython)
	plan := Plan{
		Files: []FileSpec{{Name: "CLAUDE.md", Dest: "CLAUDE.md", Protected: true}},
		Dirs:  []DirSpec{{Name: "commands/workflows", Dest: ".claude/commands/workflows"}},
	}

	result, err := d.Deploy(context.Background(), root, plan, NewTemplateContext(WithProject("svc", root)))
	require.NoError(t, err)

	assert.Equal(t, "mine", readDest(t, root, "CLAUDE.md"))
	assert.Equal(t, []string{"CLAUDE.md"}, result.Skipped)
	assert.Contains(t, readDest(t, root, ".claude/commands/workflows/tdd.md"), "# TDD")
}

func TestDeploy_VerbatimCopy(t *testing.T) {
	root := t.TempDir()
	raw := "Literal {{ braces }} survive in plain files\n"
	fsys := fstest.MapFS{
		"shared/commands/quality/check.md": file(raw),
		"shared/run.sh":                    file("#!/bin/sh\necho ok\n"),
	}
	d := newTestDeployer(fsys, models.ProjectTypeRails)

	plan := Plan{
		Files: []FileSpec{{Name: "run.sh", Dest: "bin/run.sh"}},
		Dirs:  []DirSpec{{Name: "commands/quality", Dest: ".claude/commands/quality"}},
	}
	_, err := d.Deploy(context.Background(), root, plan, NewTemplateContext())
	require.NoError(t, err)

	assert.Equal(t, raw, readDest(t, root, ".claude/commands/quality/check.md"))

	info, err := os.Stat(filepath.Join(root, "bin", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestDeploy_WithoutRendererCopiesTemplates(t *testing.T) {
	root := t.TempDir()
	fsys := tieredPack()
	d := NewDeployer(NewResolver(fsys, models.ProjectTypeRails), nil, nil)

	_, err := d.Deploy(context.Background(), root, Plan{
		Files: []FileSpec{{Name: "CLAUDE.md", Dest: "CLAUDE.md"}},
	}, NewTemplateContext())
	require.NoError(t, err)
	assert.Equal(t, "rails {{.ProjectName}}", readDest(t, root, "CLAUDE.md"))
	assert.Equal(t, models.ProjectTypeRails, d.Resolver().ProjectType())
}

func TestDeploy_RenderErrorStops(t *testing.T) {
	fsys := fstest.MapFS{"shared/CLAUDE.md.tmpl": file("{{.Missing}}")}
	d := newTestDeployer(fsys, models.ProjectTypeRails)

	_, err := d.Deploy(context.Background(), t.TempDir(), Plan{
		Files: []FileSpec{{Name: "CLAUDE.md", Dest: "CLAUDE.md"}},
	}, NewTemplateContext())
	assert.True(t, errors.Is(err, ErrMissingTemplateKey))
}

func TestDeploy_PathTraversal(t *testing.T) {
	d := newTestDeployer(tieredPack(), models.ProjectTypeRails)
	for _, dest := range []string{"../escape.md", "/etc/passwd", "a/../../b"} {
		t.Run(dest, func(t *testing.T) {
			_, err := d.Deploy(context.Background(), t.TempDir(), Plan{
				Files: []FileSpec{{Name: "settings.json", Dest: dest}},
			}, nil)
			assert.True(t, errors.Is(err, ErrPathTraversal))
		})
	}
}

func TestDeploy_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := newTestDeployer(tieredPack(), models.ProjectTypeRails)
	_, err := d.Deploy(ctx, t.TempDir(), Plan{
		Files: []FileSpec{{Name: "CLAUDE.md", Dest: "CLAUDE.md"}},
	}, NewTemplateContext())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadTemplates(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		fsys, err := LoadTemplates("")
		require.NoError(t, err)
		r := NewResolver(fsys, models.ProjectTypePython)
		src, err := r.Resolve("CLAUDE.md")
		require.NoError(t, err)
		assert.Equal(t, "python/CLAUDE.md.tmpl", src.Path)
	})

	t.Run("missing_dir_is_empty_pack", func(t *testing.T) {
		fsys, err := LoadTemplates(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, NewResolver(fsys, models.ProjectTypeRails).ResolveDir("commands/workflows"))
	})

	t.Run("file_is_error", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "pack")
		require.NoError(t, os.WriteFile(p, nil, 0o644))
		_, err := LoadTemplates(p)
		assert.Error(t, err)
	})
}

func TestEmbeddedPack_RendersForEveryType(t *testing.T) {
	fsys, err := EmbeddedTemplates()
	require.NoError(t, err)

	frameworks := map[models.ProjectType][]models.Framework{
		models.ProjectTypeRails:  {models.FrameworkNone},
		models.ProjectTypePython: {models.FrameworkDjango, models.FrameworkFastAPI, models.FrameworkFlask, models.FrameworkGeneric},
	}
	for pt, fws := range frameworks {
		for _, fw := range fws {
			t.Run(string(pt)+"_"+string(fw), func(t *testing.T) {
				root := t.TempDir()
				d := NewDeployer(NewResolver(fsys, pt), NewRenderer(fsys), nil)
				data := NewTemplateContext(
					WithProject("demo", root),
					WithUser("Dev"),
					WithProjectInfo(ProjectInfo{Type: pt, Framework: fw, FrameworkName: "X", TestCommand: "t", LintCommand: "l", FormatCommand: "f"}),
					WithFeatures(true, true),
					WithVersion("v0.0.0"),
					WithDate("2026-01-02"),
				)
				plan := Plan{
					Files: []FileSpec{
						{Name: "CLAUDE.md", Dest: "CLAUDE.md"},
						{Name: "development_journal.md", Dest: "docs/development_journal.md"},
						{Name: "settings.json", Dest: ".claude/settings.json"},
					},
					Dirs: []DirSpec{
						{Name: "commands/workflows", Dest: ".claude/commands/workflows"},
						{Name: "commands/conventions", Dest: ".claude/commands/conventions"},
						{Name: "commands/context", Dest: ".claude/commands/context"},
						{Name: "commands/journal", Dest: ".claude/commands/journal"},
						{Name: "commands/quality", Dest: ".claude/commands/quality"},
					},
				}
				result, err := d.Deploy(context.Background(), root, plan, data)
				require.NoError(t, err)
				assert.Empty(t, result.Missing)
			})
		}
	}
}
