// Package models provides shared data models and types for claudekit.
//
// # Project Types
//
// Projects are classified into one of three types:
//   - Rails: a Gemfile that depends on rails
//   - Python: any of the canonical Python manifests
//   - Unknown: nothing recognized; the CLI asks the user to choose
//
// Use [ProjectType] and its constants:
//
//	pt, err := models.ParseProjectType("rails")
//	if err == nil && pt.IsKnown() {
//	    fmt.Println("type:", pt)
//	}
//
// # Frameworks
//
// Python projects carry a [Framework] sub-classification (Django, FastAPI,
// Flask, or generic). Rails and unknown projects always use [FrameworkNone].
package models
