package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = ".sortforge.yml"

// Settings holds persistent CLI defaults loaded from a config file.
type Settings struct {
	Root         string        `yaml:"root"`          // directory to organize; defaults to cwd
	BackupDir    string        `yaml:"backup_dir"`    // relative to root unless absolute
	BackupPrefix string        `yaml:"backup_prefix"` // archive name prefix
	Pace         time.Duration `yaml:"pace"`          // pause between extension groups
	ShowErrors   *bool         `yaml:"show_errors,omitempty"`

	Watch *WatchConfig `yaml:"watch,omitempty"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce     time.Duration `yaml:"debounce"`
	Poll         bool          `yaml:"poll"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// LoadSettings reads a YAML config file into Settings.
// If the file does not exist, it returns zero-value Settings and nil error.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if s.Pace < 0 {
		return nil, fmt.Errorf("parse config %s: pace must not be negative", path)
	}

	return &s, nil
}

// ShowErrorList reports whether summaries list every error record.
// Unset means true.
func (s *Settings) ShowErrorList() bool {
	return s.ShowErrors == nil || *s.ShowErrors
}
