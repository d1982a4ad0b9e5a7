package project

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/modu-ai/claudekit/internal/defs"
)

// cursorRuleExts lists the rule file extensions picked up by migration.
var cursorRuleExts = []string{".mdc", ".md"}

// Filename routing for migrated rules, checked in order.
var (
	workflowRulePattern = regexp.MustCompile(`workflow|process|flow`)
	qualityRulePattern  = regexp.MustCompile(`test|lint|quality|review|security`)
)

// CursorRule is the front matter of a legacy rule file.
type CursorRule struct {
	Description string `yaml:"description"`
	Globs       any    `yaml:"globs"`
	AlwaysApply bool   `yaml:"alwaysApply"`
}

// GlobList normalizes Globs, which rule files write either as a
// comma-separated string or as a list.
func (r CursorRule) GlobList() []string {
	var raw []string
	switch v := r.Globs.(type) {
	case string:
		raw = strings.Split(v, ",")
	case []any:
		for _, item := range v {
			raw = append(raw, fmt.Sprint(item))
		}
	}
	globs := make([]string, 0, len(raw))
	for _, g := range raw {
		if g = strings.TrimSpace(g); g != "" {
			globs = append(globs, g)
		}
	}
	return globs
}

// MigratedRule records one converted rule file.
type MigratedRule struct {
	Source   string // path relative to the project root
	Dest     string // path relative to the project root
	Category string // commands subdirectory the rule was routed to
	Rule     CursorRule
}

// MigrateCursor converts .cursor/rules into .claude/commands documents.
// Front matter is stripped and each file is routed to workflows, quality,
// or conventions by its name. Existing destinations are overwritten.
func MigrateCursor(root string, logger *slog.Logger) ([]MigratedRule, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	root = filepath.Clean(root)
	if err := validateRoot(root); err != nil {
		return nil, err
	}

	rulesDir := filepath.Join(root, filepath.FromSlash(defs.CursorRulesDir))
	if !dirExists(rulesDir) {
		return nil, fmt.Errorf("%w: %s", ErrNoCursorRules, rulesDir)
	}

	entries, err := os.ReadDir(rulesDir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", defs.CursorRulesDir, err)
	}

	var migrated []MigratedRule
	for _, entry := range entries {
		if entry.IsDir() || !hasRuleExt(entry.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(rulesDir, entry.Name()))
		if err != nil {
			return migrated, fmt.Errorf("read rule %s: %w", entry.Name(), err)
		}

		rule, body := parseCursorRule(data)
		if rule.Description == "" && len(body) == 0 {
			logger.Debug("skipping empty rule", "file", entry.Name())
			continue
		}

		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		category := routeRule(base)
		dest := path.Join(defs.ClaudeDir, defs.CommandsDir, category, base+".md")

		destPath := filepath.Join(root, filepath.FromSlash(dest))
		if err := os.MkdirAll(filepath.Dir(destPath), defs.DirPerm); err != nil {
			return migrated, fmt.Errorf("mkdir %s: %w", path.Dir(dest), err)
		}
		if err := os.WriteFile(destPath, renderRule(rule, body), defs.FilePerm); err != nil {
			return migrated, fmt.Errorf("write %s: %w", dest, err)
		}

		logger.Debug("migrated rule", "source", entry.Name(), "dest", dest)
		migrated = append(migrated, MigratedRule{
			Source:   path.Join(defs.CursorRulesDir, entry.Name()),
			Dest:     dest,
			Category: category,
			Rule:     rule,
		})
	}

	return migrated, nil
}

func hasRuleExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range cursorRuleExts {
		if ext == e {
			return true
		}
	}
	return false
}

// routeRule picks the commands subdirectory for a rule by its base name.
func routeRule(base string) string {
	name := strings.ToLower(base)
	switch {
	case workflowRulePattern.MatchString(name):
		return defs.WorkflowsSubdir
	case qualityRulePattern.MatchString(name):
		return defs.QualitySubdir
	default:
		return defs.ConventionsSubdir
	}
}

// parseCursorRule splits a rule file into its front matter and body.
// Glob values such as "*.py" are not valid YAML, so a block that fails to
// parse is dropped by its delimiters instead.
func parseCursorRule(data []byte) (CursorRule, []byte) {
	var rule CursorRule
	rest, err := frontmatter.Parse(bytes.NewReader(data), &rule)
	if err != nil {
		return CursorRule{}, bytes.TrimSpace(stripFrontMatter(data))
	}
	return rule, bytes.TrimSpace(rest)
}

// stripFrontMatter removes a leading "---" delimited block.
func stripFrontMatter(data []byte) []byte {
	lines := bytes.SplitAfter(data, []byte("\n"))
	if len(lines) == 0 || string(bytes.TrimSpace(lines[0])) != "---" {
		return data
	}
	offset := len(lines[0])
	for _, line := range lines[1:] {
		offset += len(line)
		if string(bytes.TrimSpace(line)) == "---" {
			return data[offset:]
		}
	}
	return data
}

// renderRule builds the command document for a migrated rule.
func renderRule(rule CursorRule, body []byte) []byte {
	var buf bytes.Buffer
	if rule.Description != "" && !hasHeading(body) {
		fmt.Fprintf(&buf, "# %s\n\n", rule.Description)
	}
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// hasHeading reports whether the first non-blank line is a Markdown heading.
func hasHeading(body []byte) bool {
	for _, line := range strings.Split(string(body), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return strings.HasPrefix(line, "#")
		}
	}
	return false
}
