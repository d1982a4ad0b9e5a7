package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads the user configuration.
type Loader struct {
	getenv func(string) string
	logger *slog.Logger
}

// NewLoader creates a Loader that reads overrides from the process environment.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{getenv: os.Getenv, logger: logger}
}

// Load reads path, or DefaultPath when path is empty, applies environment
// overrides, and validates the result. A missing file yields defaults.
func (l *Loader) Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := NewDefaultConfig()

	loaded, err := loadYAMLFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if !loaded {
		l.logger.Debug("no user config file, using defaults", "path", path)
	}

	l.applyEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with non-empty environment variables.
func (l *Loader) applyEnv(cfg *Config) {
	if v := strings.TrimSpace(l.getenv(EnvUserName)); v != "" {
		cfg.UserName = v
	}
	if v := strings.TrimSpace(l.getenv(EnvTemplatesDir)); v != "" {
		cfg.TemplatesDir = v
	}
}

// loadYAMLFile reads a YAML file and unmarshals it into target. Returns
// (true, nil) if the file was found and parsed, (false, nil) if the file
// does not exist, or (false, error) on failure.
func loadYAMLFile(path string, target any) (bool, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, ErrInvalidYAML)
	}

	return true, nil
}
