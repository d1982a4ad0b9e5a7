// Package template resolves, renders, and deploys the claudekit template
// pack. Templates are looked up through three tiers (type-specific, shared,
// legacy) and rendered with text/template against a fixed TemplateContext.
package template

import "errors"

// Sentinel errors for the template package.
var (
	// ErrTemplateNotFound indicates no tier contains the requested template.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrMissingTemplateKey indicates the template referenced a key absent from the data.
	ErrMissingTemplateKey = errors.New("template: missing key")

	// ErrPathTraversal indicates a destination path escapes the project root.
	ErrPathTraversal = errors.New("template: path traversal detected")
)
