package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// unsafeFuncs lists sprig functions removed from the template sandbox.
// Templates are bundled content and must not read the environment, touch
// the network, or produce nondeterministic output.
var unsafeFuncs = []string{
	"env",
	"expandenv",
	"getHostByName",
	"now",
	"ago",
	"date",
	"dateInZone",
	"date_in_zone",
	"unixEpoch",
	"randAlpha",
	"randAlphaNum",
	"randAscii",
	"randNumeric",
	"randBytes",
	"randInt",
	"uuidv4",
	"shuffle",
	"bcrypt",
	"htpasswd",
	"genPrivateKey",
	"genCA",
	"genCAWithKey",
	"genSelfSignedCert",
	"genSelfSignedCertWithKey",
	"genSignedCert",
	"genSignedCertWithKey",
}

// templateFuncMap is the restricted function map available to all templates.
var templateFuncMap = sandboxedFuncMap()

func sandboxedFuncMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	for _, name := range unsafeFuncs {
		delete(funcs, name)
	}
	return funcs
}

// Renderer renders text/template files in strict mode.
type Renderer interface {
	// Render parses the named template from the template FS and executes it
	// with data. Returns ErrMissingTemplateKey if a key is missing.
	Render(templateName string, data any) ([]byte, error)
}

// renderer is the concrete implementation of Renderer.
type renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer backed by the given filesystem.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

// Render parses and executes a template with missingkey=error.
func (r *renderer) Render(templateName string, data any) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
	}
	return renderBytes(templateName, content, data)
}

// renderBytes executes content as a template. Content without any action
// delimiters is returned unchanged. Rendered output is not rescanned, so
// escaped literals such as {{`{{ user.name }}`}} and values containing
// braces are written as produced.
func renderBytes(name string, content []byte, data any) ([]byte, error) {
	if !bytes.Contains(content, []byte("{{")) {
		return content, nil
	}

	tmpl, err := template.New(name).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}

	return buf.Bytes(), nil
}
