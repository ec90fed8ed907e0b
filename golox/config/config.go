// Package config loads the configuration of the golox command from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Colour controls when coloured output is produced.
type Colour string

const (
	ColourAuto   Colour = "auto"   // Colour if stdout and stderr are terminals
	ColourAlways Colour = "always" // Always colour
	ColourNever  Colour = "never"  // Never colour
)

// Config is the configuration of the golox command.
type Config struct {
	// Prompt is printed before each line read by the REPL.
	Prompt string `yaml:"prompt"`
	// HistoryFile is where the REPL saves its history. No history is saved if it's empty.
	HistoryFile string `yaml:"history_file"`
	Colour      Colour `yaml:"colour"`
	// ShowSource controls whether errors are followed by the line of source code that they apply to.
	ShowSource bool `yaml:"show_source"`
	// LogLevel is the minimum level of the debug log, as accepted by [logrus.ParseLevel].
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration which is used when there's no configuration file.
func Default() *Config {
	cfg := &Config{
		Prompt:     ">>> ",
		Colour:     ColourAuto,
		ShowSource: true,
		LogLevel:   logrus.WarnLevel.String(),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(homeDir, ".lox_history")
	}
	return cfg
}

// DefaultPath returns the path of the configuration file which is loaded if none is given:
// $XDG_CONFIG_HOME/golox/config.yml, or the equivalent for the platform.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate default config: %w", err)
	}
	return filepath.Join(configDir, "golox", "config.yml"), nil
}

// Load reads the configuration file at path over the defaults. Fields which are missing from the file keep their
// default values.
// If path is empty then the file at [DefaultPath] is read, if it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, nil
		}
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Colour {
	case ColourAuto, ColourAlways, ColourNever:
	default:
		return fmt.Errorf("colour must be one of %q, %q or %q, got %q", ColourAuto, ColourAlways, ColourNever, c.Colour)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}
