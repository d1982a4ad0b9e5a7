package project

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"

	gitignore "github.com/denormal/go-gitignore"

	"github.com/modu-ai/claudekit/internal/defs"
	"github.com/modu-ai/claudekit/pkg/models"
)

// Check is the outcome of one doctor probe.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Report is the ordered list of checks for a project.
type Report struct {
	Root   string
	Type   models.ProjectType
	Checks []Check
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Failed returns the checks that did not pass.
func (r Report) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// Doctor inspects an initialized project. The checklist depends on the
// detected project type.
type Doctor struct {
	detector Detector
}

// NewDoctor creates a Doctor that classifies projects with detector.
func NewDoctor(detector Detector) *Doctor {
	return &Doctor{detector: detector}
}

// Run builds the report for root. Probe failures are reported as failed
// checks, never as errors.
func (d *Doctor) Run(root string) Report {
	root = filepath.Clean(root)
	pt := d.detector.DetectProjectType(root)
	report := Report{Root: root, Type: pt}

	add := func(name string, passed bool, detail string) {
		report.Checks = append(report.Checks, Check{Name: name, Passed: passed, Detail: detail})
	}

	for _, sub := range defs.CommandSubdirs {
		rel := path.Join(commandsDest, sub)
		add(rel+"/", dirExists(filepath.Join(root, filepath.FromSlash(rel))), "command directory")
	}
	add(defs.ClaudeMD, fileExists(filepath.Join(root, defs.ClaudeMD)), "project guidance")
	add(defs.TasksDir+"/", dirExists(filepath.Join(root, defs.TasksDir)), "task notes")

	journal := path.Join(defs.DocsDir, defs.JournalMD)
	add(journal, fileExists(filepath.Join(root, filepath.FromSlash(journal))), "development journal")

	report.Checks = append(report.Checks, gitIgnoreChecks(root)...)

	switch pt {
	case models.ProjectTypeRails:
		add(defs.Gemfile, fileExists(filepath.Join(root, defs.Gemfile)), "Ruby dependencies")
		conv := path.Join(commandsDest, defs.ConventionsSubdir, "rails.md")
		add(conv, fileExists(filepath.Join(root, filepath.FromSlash(conv))), "Rails conventions")
	case models.ProjectTypePython:
		pkg := NewConfig(root, pt, models.FrameworkNone).PackageFile()
		add(pkg, fileExists(filepath.Join(root, pkg)), "Python dependencies")
		conv := path.Join(commandsDest, defs.ConventionsSubdir, "python.md")
		add(conv, fileExists(filepath.Join(root, filepath.FromSlash(conv))), "Python conventions")
	default:
		add("project type", false, "no Rails or Python markers found")
	}

	return report
}

// gitIgnoreChecks verifies the stanza is present and that git would treat
// the Claude directories as intended.
func gitIgnoreChecks(root string) []Check {
	name := defs.GitIgnore + " stanza"
	data, err := os.ReadFile(filepath.Join(root, defs.GitIgnore))
	if err != nil {
		return []Check{{Name: name, Passed: false, Detail: "missing " + defs.GitIgnore}}
	}
	if !bytes.Contains(data, []byte(gitIgnoreMarker)) {
		return []Check{{Name: name, Passed: false, Detail: "run claudekit init to add it"}}
	}

	ignore := gitignore.New(bytes.NewReader(data), root, nil)
	local := path.Join(defs.ClaudeDir, defs.SettingsLocalJSON)

	return []Check{
		{Name: name, Passed: true, Detail: "present"},
		{
			Name:   local + " ignored",
			Passed: ignored(ignore, local, false),
			Detail: "local settings stay out of version control",
		},
		{
			Name:   commandsDest + "/ tracked",
			Passed: !ignored(ignore, commandsDest, true),
			Detail: "command documents are shared",
		},
	}
}

func ignored(ignore gitignore.GitIgnore, rel string, isDir bool) bool {
	if ignore == nil {
		return false
	}
	match := ignore.Relative(rel, isDir)
	return match != nil && match.Ignore()
}

// String renders a check as a single status line.
func (c Check) String() string {
	mark := "FAIL"
	if c.Passed {
		mark = "ok"
	}
	return fmt.Sprintf("[%s] %s: %s", mark, c.Name, c.Detail)
}
