// Package defs holds file, directory, and permission constants shared by
// the claudekit packages.
package defs

import "io/fs"

// Common file names used across the project.
const (
	// ClaudeMD is the main project guidance document.
	ClaudeMD = "CLAUDE.md"

	// SettingsJSON is the Claude Code project settings file.
	SettingsJSON = "settings.json"

	// SettingsLocalJSON is the per-user Claude Code settings override file.
	SettingsLocalJSON = "settings.local.json"

	// JournalMD is the development journal written under DocsDir.
	JournalMD = "development_journal.md"

	// GitIgnore is the ignore file updated by init.
	GitIgnore = ".gitignore"

	// Gemfile is the Ruby dependency manifest.
	Gemfile = "Gemfile"
)

// Python manifest and entry-point file names.
const (
	RequirementsTXT = "requirements.txt"
	PyprojectTOML   = "pyproject.toml"
	SetupPy         = "setup.py"
	Pipfile         = "Pipfile"

	ManagePy = "manage.py"
	MainPy   = "main.py"
	AppPy    = "app.py"
)

// Directory names relative to the project root.
const (
	ClaudeDir   = ".claude"
	CommandsDir = "commands"
	BackupsDir  = "backups"
	TasksDir    = "tasks"
	DocsDir     = "docs"

	// CursorRulesDir is the legacy rule directory converted by migrate-cursor.
	CursorRulesDir = ".cursor/rules"
)

// Command subdirectories under .claude/commands.
const (
	WorkflowsSubdir   = "workflows"
	ConventionsSubdir = "conventions"
	ContextSubdir     = "context"
	JournalSubdir     = "journal"
	QualitySubdir     = "quality"
)

// CommandSubdirs lists every subdirectory created under .claude/commands.
var CommandSubdirs = []string{
	WorkflowsSubdir,
	ConventionsSubdir,
	ContextSubdir,
	JournalSubdir,
	QualitySubdir,
}

// Permissions for created files and directories.
const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
)

// BackupTimestampFormat names backup directories created by update.
const BackupTimestampFormat = "20060102-150405"
