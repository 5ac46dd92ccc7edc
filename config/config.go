// Package config holds the settings shared by the noa commands and the
// language server.
//
// Settings are layered: built-in defaults, then the first project file
// found by walking up from the working directory (.noa.yaml, .noa.yml or
// .noa.toml), then NOA_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/dhamidi/noa/diagnostic"
)

// ErrUnknownFormat is returned for a config file whose extension names no
// supported format.
var ErrUnknownFormat = errors.New("unknown config file format")

var (
	LogLevels     = []string{"error", "warning", "info", "debug"}
	OutputFormats = []string{"text", "json"}
	ColorModes    = []string{"auto", "always", "never"}
)

type Config struct {
	LogLevel string `yaml:"log_level" toml:"log_level"`
	LogFile  string `yaml:"log_file" toml:"log_file"`
	Format   string `yaml:"format" toml:"format"`
	Color    string `yaml:"color" toml:"color"`
	// Jobs bounds the number of files parsed at once.
	Jobs       int      `yaml:"jobs" toml:"jobs"`
	Extensions []string `yaml:"extensions" toml:"extensions"`
	// Exclude holds glob patterns matched against base names.
	Exclude []string `yaml:"exclude" toml:"exclude"`
	// Ignore holds diagnostic codes that are never reported.
	Ignore []string `yaml:"ignore" toml:"ignore"`

	// Path is the file the config was read from, if any.
	Path string `yaml:"-" toml:"-"`
}

func Default() *Config {
	return &Config{
		LogLevel:   "warning",
		Format:     "text",
		Color:      "auto",
		Jobs:       runtime.NumCPU(),
		Extensions: []string{".noa"},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	oneOf := func(field, value string, allowed []string) {
		if !slices.Contains(allowed, value) {
			errs = append(errs, fmt.Errorf("%s: %q is not one of %s", field, value, strings.Join(allowed, ", ")))
		}
	}
	oneOf("log_level", c.LogLevel, LogLevels)
	oneOf("format", c.Format, OutputFormats)
	oneOf("color", c.Color, ColorModes)

	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs: must be at least 1, got %d", c.Jobs))
	}
	if len(c.Extensions) == 0 {
		errs = append(errs, errors.New("extensions: at least one extension is required"))
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("extensions: %q must start with a dot", ext))
		}
	}
	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			errs = append(errs, fmt.Errorf("exclude: %q: %w", pattern, err))
		}
	}
	for _, code := range c.Ignore {
		if _, ok := diagnostic.Lookup(diagnostic.Code(code)); !ok {
			errs = append(errs, fmt.Errorf("ignore: unknown diagnostic code %q", code))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Excluded reports whether a file or directory named base is excluded.
func (c *Config) Excluded(base string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// Matches reports whether path has one of the configured extensions.
func (c *Config) Matches(path string) bool {
	return slices.Contains(c.Extensions, filepath.Ext(path))
}

// Verbosity maps the log level onto the commonlog verbosity scale.
func (c *Config) Verbosity() int {
	switch c.LogLevel {
	case "error":
		return -1
	case "info":
		return 1
	case "debug":
		return 2
	default:
		return 0
	}
}
