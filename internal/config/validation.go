package config

import (
	"regexp"

	"github.com/modu-ai/claudekit/pkg/models"
)

// Dynamic token patterns that must not appear in configuration values.
var dynamicTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[^}]+\}`),   // ${VAR}
	regexp.MustCompile(`\{\{[^}]+\}\}`), // {{VAR}}
}

// Validate checks the configuration for correctness.
func Validate(cfg *Config) error {
	var errs []ValidationError

	if cfg.DefaultType != "" {
		if _, err := models.ParseProjectType(cfg.DefaultType); err != nil {
			errs = append(errs, ValidationError{
				Field:   "default_type",
				Message: "must be rails or python",
				Value:   cfg.DefaultType,
				Wrapped: ErrInvalidProjectType,
			})
		}
	}

	for _, f := range []struct{ name, value string }{
		{"user_name", cfg.UserName},
		{"templates_dir", cfg.TemplatesDir},
	} {
		for _, pattern := range dynamicTokenPatterns {
			if pattern.MatchString(f.value) {
				errs = append(errs, ValidationError{
					Field:   f.name,
					Message: "contains an unexpanded token",
					Value:   f.value,
					Wrapped: ErrInvalidConfig,
				})
				break
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// ProjectType returns the parsed default_type, or unknown when unset.
func (c *Config) ProjectType() models.ProjectType {
	pt, err := models.ParseProjectType(c.DefaultType)
	if err != nil {
		return models.ProjectTypeUnknown
	}
	return pt
}
