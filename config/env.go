package config

import (
	"fmt"

	"github.com/mstoykov/envconfig"
)

// envConfig lists the settings that can come from the environment. Empty
// values leave the file and default settings alone.
type envConfig struct {
	LogLevel string   `envconfig:"NOA_LOG_LEVEL"`
	LogFile  string   `envconfig:"NOA_LOG_FILE"`
	Format   string   `envconfig:"NOA_OUTPUT_FORMAT"`
	Color    string   `envconfig:"NOA_COLOR"`
	Jobs     int      `envconfig:"NOA_JOBS"`
	Ignore   []string `envconfig:"NOA_IGNORE"`
}

// ApplyEnv overlays the NOA_* variables found through lookup onto c.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var env envConfig
	if err := envconfig.Process("", &env, lookup); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	if env.LogLevel != "" {
		c.LogLevel = env.LogLevel
	}
	if env.LogFile != "" {
		c.LogFile = env.LogFile
	}
	if env.Format != "" {
		c.Format = env.Format
	}
	if env.Color != "" {
		c.Color = env.Color
	}
	if env.Jobs != 0 {
		c.Jobs = env.Jobs
	}
	if len(env.Ignore) > 0 {
		c.Ignore = append(c.Ignore, env.Ignore...)
	}
	return nil
}
