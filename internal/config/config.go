// Package config loads subssa settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
)

// Config holds the settings that shape exported scripts.
type Config struct {
	// Generator is the program name written in the script header comment.
	Generator string `toml:"generator"`
	// URL is written on the second header comment line.
	URL string `toml:"url"`
	// Encoding is the default output character encoding label.
	Encoding string `toml:"encoding"`
	// LineEnding is "lf" or "crlf".
	LineEnding string `toml:"line_ending"`

	// DefaultFont and DefaultFontSize style cues imported from SRT/VTT.
	DefaultFont     string  `toml:"default_font"`
	DefaultFontSize float64 `toml:"default_font_size"`
}

func Default() *Config {
	return &Config{
		Generator:       "subssa",
		URL:             "https://github.com/mgpai22/subssa",
		Encoding:        "utf-8",
		LineEnding:      LineEndingLF,
		DefaultFont:     "Arial",
		DefaultFontSize: 20,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/subssa/config.toml, or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "subssa", "config.toml"), nil
}

// Load reads path over the defaults. An empty path means DefaultPath; a
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.LineEnding {
	case LineEndingLF, LineEndingCRLF:
	default:
		return fmt.Errorf("line_ending must be %q or %q, got %q", LineEndingLF, LineEndingCRLF, c.LineEnding)
	}
	if c.DefaultFontSize <= 0 {
		return fmt.Errorf("default_font_size must be positive, got %g", c.DefaultFontSize)
	}
	return nil
}

// line terminator for the configured ending
func (c *Config) Newline() string {
	if c.LineEnding == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}
