package template

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed all:templates
var embeddedTemplates embed.FS

// EmbeddedTemplates returns the template pack compiled into the binary.
func EmbeddedTemplates() (fs.FS, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	return sub, nil
}

// LoadTemplates returns an on-disk template pack when dir is set and the
// embedded pack otherwise. A missing directory yields an empty pack, so
// every lookup is skipped rather than failing.
func LoadTemplates(dir string) (fs.FS, error) {
	if dir == "" {
		return EmbeddedTemplates()
	}
	info, err := os.Stat(dir)
	if err == nil && !info.IsDir() {
		return nil, fmt.Errorf("templates directory %q: not a directory", dir)
	}
	return os.DirFS(dir), nil
}
