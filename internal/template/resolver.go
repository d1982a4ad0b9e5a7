package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/modu-ai/claudekit/pkg/models"
)

// SharedDir is the tier holding type-agnostic templates.
const SharedDir = "shared"

// tmplSuffix marks files that are rendered before being written.
const tmplSuffix = ".tmpl"

// Tier identifies which layer of the template pack a source came from.
type Tier int

const (
	// TierType is the project-type-specific layer, e.g. "rails/".
	TierType Tier = iota
	// TierShared is the type-agnostic layer under "shared/".
	TierShared
	// TierLegacy is the flat layout used when no tiered layout exists.
	TierLegacy
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierType:
		return "type"
	case TierShared:
		return "shared"
	case TierLegacy:
		return "legacy"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Source is a resolved template location inside the template filesystem.
type Source struct {
	Tier Tier
	Path string // slash-separated path within the template FS
}

// IsTemplate reports whether the source must be rendered.
func (s Source) IsTemplate() bool {
	return strings.HasSuffix(s.Path, tmplSuffix)
}

// CatalogEntry describes one template available in a resolved directory.
type CatalogEntry struct {
	Name        string // file name without extension
	File        string // destination file name (".tmpl" removed)
	Description string // "description" from YAML front matter, if any
}

// Resolver locates templates for one project type. Each logical template is
// decided independently, so a project can mix tiers across templates and
// within a directory.
type Resolver struct {
	fsys        fs.FS
	projectType models.ProjectType
	tiered      bool
}

// NewResolver creates a Resolver over fsys for the given project type.
// The legacy flat layout is used only when neither the type directory nor
// the shared directory exists.
func NewResolver(fsys fs.FS, pt models.ProjectType) *Resolver {
	return &Resolver{
		fsys:        fsys,
		projectType: pt,
		tiered:      isDir(fsys, string(pt)) || isDir(fsys, SharedDir),
	}
}

// FS returns the underlying template filesystem.
func (r *Resolver) FS() fs.FS {
	return r.fsys
}

// ProjectType returns the project type the resolver was built for.
func (r *Resolver) ProjectType() models.ProjectType {
	return r.projectType
}

// tierPrefix pairs a tier with its directory prefix in the template FS.
type tierPrefix struct {
	tier   Tier
	prefix string
}

// tiers returns the candidate prefixes in priority order.
func (r *Resolver) tiers() []tierPrefix {
	if !r.tiered {
		return []tierPrefix{{TierLegacy, ""}}
	}
	return []tierPrefix{
		{TierType, string(r.projectType)},
		{TierShared, SharedDir},
	}
}

// Resolve finds the logical template name, e.g. "CLAUDE.md". A rendered
// variant ("CLAUDE.md.tmpl") wins over a plain copy within the same tier.
func (r *Resolver) Resolve(name string) (Source, error) {
	name = path.Clean(name)
	for _, t := range r.tiers() {
		for _, candidate := range []string{name + tmplSuffix, name} {
			p := joinTier(t.prefix, candidate)
			if isFile(r.fsys, p) {
				return Source{Tier: t.tier, Path: p}, nil
			}
		}
	}
	return Source{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
}

// DirFile is one file of a resolved directory.
type DirFile struct {
	Source
	Rel string // destination path relative to the directory, ".tmpl" removed
}

// ResolveDir lists every file under dir across the tiers. Files are
// resolved one by one: a type-tier file replaces the shared file with the
// same destination name, and shared files without a type override are kept.
// The result is sorted by Rel and is empty when no tier has the directory.
func (r *Resolver) ResolveDir(dir string) []DirFile {
	dir = path.Clean(dir)
	tiers := r.tiers()

	byRel := make(map[string]DirFile)
	for idx := len(tiers) - 1; idx >= 0; idx-- {
		t := tiers[idx]
		root := joinTier(t.prefix, dir)
		if !isDir(r.fsys, root) {
			continue
		}
		_ = fs.WalkDir(r.fsys, root, func(p string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return nil
			}
			rel := strings.TrimSuffix(strings.TrimPrefix(p, root+"/"), tmplSuffix)
			if prev, ok := byRel[rel]; ok && prev.Tier == t.tier && prev.IsTemplate() {
				return nil
			}
			byRel[rel] = DirFile{Source: Source{Tier: t.tier, Path: p}, Rel: rel}
			return nil
		})
	}

	files := make([]DirFile, 0, len(byRel))
	for _, f := range byRel {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Rel < files[j].Rel })
	return files
}

// Catalog lists the templates directly inside the resolved directory dir,
// sorted by name.
func (r *Resolver) Catalog(dir string) []CatalogEntry {
	var catalog []CatalogEntry
	for _, f := range r.ResolveDir(dir) {
		if strings.Contains(f.Rel, "/") {
			continue
		}
		entry := CatalogEntry{
			Name: strings.TrimSuffix(f.Rel, path.Ext(f.Rel)),
			File: f.Rel,
		}
		if data, err := fs.ReadFile(r.fsys, f.Path); err == nil {
			entry.Description = describe(data)
		}
		catalog = append(catalog, entry)
	}
	return catalog
}

// describe returns the "description" front matter value of a document.
func describe(data []byte) string {
	var matter struct {
		Description string `yaml:"description"`
	}
	if _, err := frontmatter.Parse(bytes.NewReader(data), &matter); err != nil {
		return ""
	}
	return matter.Description
}

func joinTier(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func isDir(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}

func isFile(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}
