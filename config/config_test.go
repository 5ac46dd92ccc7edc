package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestFind(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/proj/.noa.toml", "")
	writeFile(t, fs, "/proj/sub/.noa.yml", "")
	writeFile(t, fs, "/proj/sub/.noa.yaml", "")
	require.NoError(t, fs.MkdirAll("/proj/src/deep", 0o755))

	tests := []struct {
		dir      string
		expected string
	}{
		{"/proj/src/deep", "/proj/.noa.toml"},
		{"/proj", "/proj/.noa.toml"},
		{"/proj/sub", "/proj/sub/.noa.yaml"},
		{"/elsewhere", ""},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			path, err := Find(fs, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "/work", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, []string{".noa"}, cfg.Extensions)
	assert.Positive(t, cfg.Jobs)
	assert.Empty(t, cfg.Path)
}

func TestLoadYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/work/.noa.yaml", `
format: json
jobs: 3
exclude: [vendor, "*.gen.noa"]
ignore: [NOA-SYN-007]
`)

	cfg, err := Load(fs, "/work/pkg", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "/work/.noa.yaml", cfg.Path)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, "warning", cfg.LogLevel)
	assert.Equal(t, []string{"NOA-SYN-007"}, cfg.Ignore)
	assert.True(t, cfg.Excluded("vendor"))
	assert.True(t, cfg.Excluded("x.gen.noa"))
	assert.False(t, cfg.Excluded("main.noa"))
}

func TestLoadTOML(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/work/.noa.toml", `
log_level = "debug"
color = "never"
extensions = [".noa", ".noax"]
`)

	cfg, err := Load(fs, "/work", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2, cfg.Verbosity())
	assert.Equal(t, "never", cfg.Color)
	assert.True(t, cfg.Matches("a/b.noax"))
	assert.False(t, cfg.Matches("a/b.txt"))
}

func TestLoadRejectsBadFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/a/.noa.toml", `colour = "never"`)
	writeFile(t, fs, "/b/.noa.yaml", "colour: never\n")
	writeFile(t, fs, "/c/settings.json", `{}`)
	writeFile(t, fs, "/d/.noa.yaml", "format: xml\ncolor: rainbow\n")

	_, err := Load(fs, "/a", "", nil)
	assert.ErrorContains(t, err, "colour")

	_, err = Load(fs, "/b", "", nil)
	assert.Error(t, err)

	_, err = Load(fs, "/c", "/c/settings.json", nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(fs, "/d", "", nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, `format: "xml"`)
	assert.ErrorContains(t, err, `color: "rainbow"`)

	_, err = Load(fs, "/", "/missing.yaml", nil)
	assert.Error(t, err)
}

func TestLoadEmptyYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/e/.noa.yml", "")
	cfg, err := Load(fs, "/e", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "/e/.noa.yml", cfg.Path)
}

func TestApplyEnv(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/w/.noa.yaml", "format: text\njobs: 2\n")

	cfg, err := Load(fs, "/w", "", envMap(map[string]string{
		"NOA_OUTPUT_FORMAT": "json",
		"NOA_JOBS":          "7",
		"NOA_IGNORE":        "NOA-SYN-007,NOA-LEX-001",
		"NOA_LOG_LEVEL":     "info",
	}))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 7, cfg.Jobs)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"NOA-SYN-007", "NOA-LEX-001"}, cfg.Ignore)
	assert.Equal(t, "auto", cfg.Color)
}

func TestApplyEnvErrors(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/", "", envMap(map[string]string{"NOA_JOBS": "many"}))
	assert.Error(t, err)

	_, err = Load(afero.NewMemMapFs(), "/", "", envMap(map[string]string{"NOA_COLOR": "sometimes"}))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"jobs", func(c *Config) { c.Jobs = 0 }, "jobs"},
		{"extension without dot", func(c *Config) { c.Extensions = []string{"noa"} }, "must start with a dot"},
		{"no extensions", func(c *Config) { c.Extensions = nil }, "at least one extension"},
		{"bad glob", func(c *Config) { c.Exclude = []string{"[a"} }, "exclude"},
		{"unknown code", func(c *Config) { c.Ignore = []string{"NOA-XYZ-999"} }, "unknown diagnostic code"},
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
