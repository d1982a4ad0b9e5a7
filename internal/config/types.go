package config

// Config is the user configuration shared by every command.
type Config struct {
	UserName     string `yaml:"user_name"`     // Name written into generated documents
	DefaultType  string `yaml:"default_type"`  // Type used when detection fails and no prompt is possible
	TemplatesDir string `yaml:"templates_dir"` // On-disk template pack; empty means the embedded pack
	SkipJournal  bool   `yaml:"skip_journal"`  // Default for init --skip-journal
}

// Environment variables that override file values.
const (
	EnvUserName     = "CLAUDEKIT_USER_NAME"
	EnvTemplatesDir = "CLAUDEKIT_TEMPLATES_DIR"
)
