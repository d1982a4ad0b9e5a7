package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppDirName is the directory under the XDG config home.
const AppDirName = "claudekit"

// ConfigFileName is the user configuration file name.
const ConfigFileName = "config.yaml"

// NewDefaultConfig returns a Config with every field at its default.
func NewDefaultConfig() *Config {
	return &Config{}
}

// DefaultPath returns $XDG_CONFIG_HOME/claudekit/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}
