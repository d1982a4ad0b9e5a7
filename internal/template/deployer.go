package template

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

	"github.com/modu-ai/claudekit/internal/defs"
)

// FileSpec maps one logical template to a destination file.
type FileSpec struct {
	Name      string // logical template name, e.g. "CLAUDE.md"
	Dest      string // destination relative to the project root
	Protected bool   // skip when the destination already exists
}

// DirSpec maps a directory of templates to a destination directory.
// Files are merged across tiers and always overwritten.
type DirSpec struct {
	Name string // logical directory, e.g. "commands/workflows"
	Dest string // destination relative to the project root
}

// Plan lists everything a single Deploy call writes.
type Plan struct {
	Files []FileSpec
	Dirs  []DirSpec
}

// Result summarizes a deployment. Paths are relative to the project root.
type Result struct {
	Written []string // files written (created or overwritten)
	Skipped []string // protected files left untouched
	Missing []string // logical templates or directories absent from every tier
}

// Deployer resolves the templates named in a Plan, renders them, and writes
// them under a project root.
type Deployer interface {
	// Deploy executes plan against projectRoot using data for rendering.
	// Destination parent directories are created on demand.
	Deploy(ctx context.Context, projectRoot string, plan Plan, data *TemplateContext) (*Result, error)

	// Resolver returns the resolver used for template lookup.
	Resolver() *Resolver
}

// deployer is the concrete implementation of Deployer.
type deployer struct {
	resolver *Resolver
	renderer Renderer
	logger   *slog.Logger
}

// NewDeployer creates a Deployer. A nil renderer copies every file as-is.
func NewDeployer(resolver *Resolver, renderer Renderer, logger *slog.Logger) Deployer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &deployer{resolver: resolver, renderer: renderer, logger: logger}
}

// Resolver returns the resolver used for template lookup.
func (d *deployer) Resolver() *Resolver {
	return d.resolver
}

// Deploy writes the files in plan, then the directories.
func (d *deployer) Deploy(ctx context.Context, projectRoot string, plan Plan, data *TemplateContext) (*Result, error) {
	projectRoot = filepath.Clean(projectRoot)
	result := &Result{}

	for _, spec := range plan.Files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		src, err := d.resolver.Resolve(spec.Name)
		if err != nil {
			d.logger.Debug("template not found in any tier", "name", spec.Name)
			result.Missing = append(result.Missing, spec.Name)
			continue
		}
		if err := d.deployFile(projectRoot, src, spec.Dest, spec.Protected, data, result); err != nil {
			return result, err
		}
	}

	for _, spec := range plan.Dirs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		files := d.resolver.ResolveDir(spec.Name)
		if len(files) == 0 {
			d.logger.Debug("template directory not found in any tier", "dir", spec.Name)
			result.Missing = append(result.Missing, spec.Name)
			continue
		}
		d.logger.Debug("deploying template directory", "dir", spec.Name, "files", len(files))
		if err := d.deployDir(ctx, projectRoot, files, spec.Dest, data, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// deployDir writes every resolved file of a directory beneath dest.
func (d *deployer) deployDir(ctx context.Context, projectRoot string, files []DirFile, dest string, data *TemplateContext, result *Result) error {
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		fileDest := path.Join(filepath.ToSlash(dest), f.Rel)
		if err := d.deployFile(projectRoot, f.Source, fileDest, false, data, result); err != nil {
			return err
		}
	}
	return nil
}

// deployFile renders or copies one source file to dest.
func (d *deployer) deployFile(projectRoot string, src Source, dest string, protected bool, data *TemplateContext, result *Result) error {
	if err := validateDeployPath(projectRoot, dest); err != nil {
		return err
	}
	destPath := filepath.Join(projectRoot, filepath.FromSlash(dest))

	if protected {
		if _, err := os.Stat(destPath); err == nil {
			d.logger.Debug("protected file exists, skipping", "path", dest)
			result.Skipped = append(result.Skipped, dest)
			return nil
		}
	}

	content, err := d.content(src, data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(destPath), defs.DirPerm); err != nil {
		return fmt.Errorf("template deploy mkdir %q: %w", filepath.Dir(destPath), err)
	}

	perm := defs.FilePerm
	if strings.HasSuffix(dest, ".sh") {
		perm = 0o755
	}
	if err := os.WriteFile(destPath, content, perm); err != nil {
		return fmt.Errorf("template deploy write %q: %w", destPath, err)
	}

	d.logger.Debug("wrote template", "src", src.Path, "tier", src.Tier, "dest", dest)
	result.Written = append(result.Written, dest)
	return nil
}

// content returns the bytes to write for src: rendered for .tmpl sources
// when a renderer and data are available, raw otherwise.
func (d *deployer) content(src Source, data *TemplateContext) ([]byte, error) {
	if src.IsTemplate() && d.renderer != nil && data != nil {
		rendered, err := d.renderer.Render(src.Path, data)
		if err != nil {
			return nil, fmt.Errorf("template render %q: %w", src.Path, err)
		}
		return rendered, nil
	}

	raw, err := fs.ReadFile(d.resolver.FS(), src.Path)
	if err != nil {
		return nil, fmt.Errorf("template deploy read %q: %w", src.Path, err)
	}
	return raw, nil
}

// validateDeployPath ensures a destination path does not escape projectRoot.
func validateDeployPath(projectRoot, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}

	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absProjectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	absPath := filepath.Join(absProjectRoot, cleaned)
	if !strings.HasPrefix(absPath, absProjectRoot+string(filepath.Separator)) && absPath != absProjectRoot {
		return fmt.Errorf("%w: %q escapes project root", ErrPathTraversal, relPath)
	}

	return nil
}
