package models

import (
	"fmt"
	"slices"
	"strings"
)

// ProjectType represents the detected type of a project.
type ProjectType string

const (
	ProjectTypeRails   ProjectType = "rails"
	ProjectTypePython  ProjectType = "python"
	ProjectTypeUnknown ProjectType = "unknown"
)

// KnownProjectTypes returns the project types a user can select explicitly.
func KnownProjectTypes() []ProjectType {
	return []ProjectType{ProjectTypeRails, ProjectTypePython}
}

// IsKnown reports whether the project type is one of the supported types.
func (t ProjectType) IsKnown() bool {
	return slices.Contains(KnownProjectTypes(), t)
}

// String returns the string representation of the project type.
func (t ProjectType) String() string {
	return string(t)
}

// ParseProjectType converts a user-supplied value into a known ProjectType.
// Matching is case-insensitive.
func ParseProjectType(s string) (ProjectType, error) {
	pt := ProjectType(strings.ToLower(strings.TrimSpace(s)))
	if !pt.IsKnown() {
		names := make([]string, 0, 2)
		for _, known := range KnownProjectTypes() {
			names = append(names, string(known))
		}
		return ProjectTypeUnknown, fmt.Errorf("invalid project type %q: must be one of: %s", s, strings.Join(names, ", "))
	}
	return pt, nil
}

// Framework is the sub-classification of a Python project.
type Framework string

const (
	// FrameworkNone is used for every non-Python project.
	FrameworkNone    Framework = ""
	FrameworkDjango  Framework = "django"
	FrameworkFastAPI Framework = "fastapi"
	FrameworkFlask   Framework = "flask"
	FrameworkGeneric Framework = "generic"
)

// frameworkDisplayNames maps named frameworks to their canonical labels.
var frameworkDisplayNames = map[Framework]string{
	FrameworkDjango:  "Django",
	FrameworkFastAPI: "FastAPI",
	FrameworkFlask:   "Flask",
}

// DisplayName returns the canonical label of a named framework, or an
// empty string for generic and absent frameworks.
func (f Framework) DisplayName() string {
	return frameworkDisplayNames[f]
}

// IsNamed reports whether the framework has a canonical display name.
func (f Framework) IsNamed() bool {
	_, ok := frameworkDisplayNames[f]
	return ok
}

// String returns the string representation of the framework.
func (f Framework) String() string {
	return string(f)
}
