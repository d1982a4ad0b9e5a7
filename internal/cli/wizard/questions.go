package wizard

// DefaultUserName is offered when no name could be discovered.
const DefaultUserName = "Developer"

// Needs describes which answers the caller still lacks.
type Needs struct {
	ProjectType bool   // detection failed and no --type was given
	ProjectName string // default project name; ask only when AskName is set
	AskName     bool
	UserName    bool // no name from flag, config, git, or environment
}

// Questions builds the question list for the missing answers, in the order
// type, project name, user name.
func Questions(n Needs) []Question {
	var qs []Question

	if n.ProjectType {
		qs = append(qs, Question{
			ID:          IDProjectType,
			Type:        QuestionTypeSelect,
			Title:       "Project type",
			Description: "No Gemfile or Python manifest was found. Which templates should be installed?",
			Options: []Option{
				{Label: "Rails", Value: "rails", Desc: "RSpec, RuboCop, Rails conventions"},
				{Label: "Python", Value: "python", Desc: "pytest, ruff, black"},
			},
			Default:  "rails",
			Required: true,
		})
	}

	if n.AskName {
		qs = append(qs, Question{
			ID:          IDProjectName,
			Type:        QuestionTypeInput,
			Title:       "Project name",
			Description: "Used as the heading of CLAUDE.md",
			Default:     n.ProjectName,
			Required:    true,
		})
	}

	if n.UserName {
		qs = append(qs, Question{
			ID:          IDUserName,
			Type:        QuestionTypeInput,
			Title:       "Your name",
			Description: "Recorded as the author of journal entries",
			Default:     DefaultUserName,
		})
	}

	return qs
}
