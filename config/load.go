package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileNames are the project config files, in order of preference.
var FileNames = []string{".noa.yaml", ".noa.yml", ".noa.toml"}

// Find walks up from dir and returns the first config file it meets, or ""
// if there is none.
func Find(fs afero.Fs, dir string) (string, error) {
	dir = filepath.Clean(dir)
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			ok, err := afero.Exists(fs, path)
			if err != nil {
				return "", fmt.Errorf("stat %s: %w", path, err)
			}
			if ok {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load builds the configuration for a run in workDir. An explicit path
// bypasses discovery. lookupEnv is usually os.LookupEnv.
func Load(fs afero.Fs, workDir, explicit string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	path := explicit
	if path == "" {
		found, err := Find(fs, workDir)
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path != "" {
		if err := cfg.ReadFile(fs, path); err != nil {
			return nil, err
		}
	}

	if lookupEnv != nil {
		if err := cfg.ApplyEnv(lookupEnv); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile overlays the settings of the file at path onto c. Unknown keys
// are rejected.
func (c *Config) ReadFile(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	c.Path = path
	return nil
}
