// Package wizard provides the interactive prompts used by claudekit init.
package wizard

import "errors"

// Result holds the answers collected by the init wizard.
type Result struct {
	ProjectType string // "rails" or "python"; empty when not asked
	ProjectName string
	UserName    string
}

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
)

// Question IDs.
const (
	IDProjectType = "project_type"
	IDProjectName = "project_name"
	IDUserName    = "user_name"
)

// Question defines a single wizard question.
type Question struct {
	ID          string       // Unique identifier
	Type        QuestionType // Select or Input
	Title       string       // Question title
	Description string       // Additional description
	Options     []Option     // Options for select questions
	Default     string       // Default value
	Required    bool         // Whether the field is required
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
)
