package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// TransferMode selects how bundle files reach their destination.
type TransferMode string

const (
	TransferCopy    TransferMode = "copy"
	TransferSymlink TransferMode = "symlink"
)

// Settings holds the optional per-user tool preferences. Every field
// has a default, so a missing settings file is fine; the bundle
// manifest stays the only required input.
type Settings struct {
	LogLevel  string       `yaml:"log_level"`
	LogFormat string       `yaml:"log_format"`
	Transfer  TransferMode `yaml:"transfer"`

	// TexmfDir replaces the platform TeX tree root, CompletionDir the
	// autocompletion destination. Empty keeps the platform default.
	TexmfDir      string `yaml:"texmf_dir"`
	CompletionDir string `yaml:"completion_dir"`
}

// DefaultPath returns the platform location of the settings file.
func DefaultPath() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		return filepath.Join(appData, "texbundle", "config.yaml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "texbundle", "config.yaml"), nil
}

// Load reads and parses the settings file. A missing file yields the
// defaults; a present but broken file is an error.
func Load(path string) (*Settings, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s := &Settings{}
			s.applyDefaults()
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	// Expand environment variables in string fields
	s.expandEnv()

	// Apply defaults
	s.applyDefaults()

	// Validate
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &s, nil
}

// expandEnv expands environment variables in the directory overrides.
func (s *Settings) expandEnv() {
	s.TexmfDir = os.ExpandEnv(s.TexmfDir)
	s.CompletionDir = os.ExpandEnv(s.CompletionDir)
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (s *Settings) applyDefaults() {
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.LogFormat == "" {
		s.LogFormat = "text"
	}
	if s.Transfer == "" {
		s.Transfer = TransferCopy
	}
}

// Validate checks the settings for errors.
func (s *Settings) Validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", s.LogLevel)
	}

	switch s.LogFormat {
	case "text", "json":
		// valid
	default:
		return fmt.Errorf("invalid log_format: %s (must be text or json)", s.LogFormat)
	}

	switch s.Transfer {
	case TransferCopy, TransferSymlink:
		// valid
	default:
		return fmt.Errorf("invalid transfer mode: %s (must be copy or symlink)", s.Transfer)
	}

	// Overrides must be absolute so runs do not depend on the working directory
	if s.TexmfDir != "" && !filepath.IsAbs(s.TexmfDir) {
		return fmt.Errorf("texmf_dir must be an absolute path: %s", s.TexmfDir)
	}
	if s.CompletionDir != "" && !filepath.IsAbs(s.CompletionDir) {
		return fmt.Errorf("completion_dir must be an absolute path: %s", s.CompletionDir)
	}

	return nil
}
