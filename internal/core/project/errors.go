// Package project provides project detection, configuration resolution,
// and scaffolding for claudekit. It implements the domain logic behind the
// init, update, add-workflow, migrate-cursor, and doctor commands.
package project

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the project package.
var (
	// ErrInvalidRoot indicates the given project root path is invalid or inaccessible.
	ErrInvalidRoot = errors.New("invalid project root path")

	// ErrUnknownProjectType indicates a configuration was requested for an
	// unrecognized project type.
	ErrUnknownProjectType = errors.New("unknown project type")

	// ErrIncompatibleProject indicates the project markers contradict the
	// requested operation.
	ErrIncompatibleProject = errors.New("incompatible project")

	// ErrNoCursorRules indicates migrate-cursor found no legacy rule directory.
	ErrNoCursorRules = errors.New("no .cursor/rules directory found")

	// ErrConflictingFrameworks indicates more than one framework was forced.
	ErrConflictingFrameworks = errors.New("conflicting framework options")
)

// UnknownWorkflowError reports a workflow name missing from the template
// catalog along with the valid alternatives.
type UnknownWorkflowError struct {
	Name      string
	Available []string
}

// Error implements the error interface.
func (e *UnknownWorkflowError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown workflow %q: no workflows available", e.Name)
	}
	return fmt.Sprintf("unknown workflow %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
