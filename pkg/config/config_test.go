package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, []string{".json"}, cfg.Scan.Extensions)
	assert.Equal(t, int64(0), cfg.Scan.MaxFileSize)
	assert.True(t, cfg.Exclude.Gitignore)
	assert.Contains(t, cfg.Exclude.Dirs, ".git")
	assert.False(t, cfg.Analysis.Strict)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 24, cfg.Cache.TTL)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 2, cfg.Output.Precision)
	assert.False(t, cfg.Output.ClassMetrics)
	assert.NoError(t, cfg.Validate())
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "tally.toml",
			content: `
[scan]
extensions = [".metrics"]

[analysis]
workers = 3
strict = true

[output]
format = "json"
class_metrics = true
`,
		},
		{
			name: "yaml",
			file: "tally.yaml",
			content: `
scan:
  extensions: [".metrics"]
analysis:
  workers: 3
  strict: true
output:
  format: json
  class_metrics: true
`,
		},
		{
			name:    "json",
			file:    "tally.json",
			content: `{"scan": {"extensions": [".metrics"]}, "analysis": {"workers": 3, "strict": true}, "output": {"format": "json", "class_metrics": true}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, tt.file, tt.content)
			cfg, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, []string{".metrics"}, cfg.Scan.Extensions)
			assert.Equal(t, 3, cfg.Analysis.Workers)
			assert.True(t, cfg.Analysis.Strict)
			assert.Equal(t, "json", cfg.Output.Format)
			assert.True(t, cfg.Output.ClassMetrics)

			// Unset keys keep their defaults.
			assert.Equal(t, 24, cfg.Cache.TTL)
			assert.Equal(t, 2, cfg.Output.Precision)
		})
	}
}

func TestLoad_ListReplacesDefault(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "tally.toml", `
[exclude]
patterns = ["skip.json"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"skip.json"}, cfg.Exclude.Patterns)
	assert.Equal(t, DefaultConfig().Exclude.Dirs, cfg.Exclude.Dirs)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := writeConfig(t, dir, "bad.toml", "[scan\nextensions = ")
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults when nothing found", func(t *testing.T) {
		result, err := LoadConfig(WithSearchDirs(t.TempDir()))
		require.NoError(t, err)
		assert.Empty(t, result.Source)
		assert.Equal(t, DefaultConfig(), result.Config)
	})

	t.Run("search order", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ".tally.toml", "[output]\nformat = \"markdown\"\n")
		writeConfig(t, dir, "tally.yaml", "output:\n  format: toon\n")

		result, err := LoadConfig(WithSearchDirs(dir))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "tally.yaml"), result.Source)
		assert.Equal(t, "toon", result.Config.Output.Format)
	})

	t.Run("explicit path", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "custom.toml", "[cache]\nenabled = true\n")
		result, err := LoadConfig(WithPath(path))
		require.NoError(t, err)
		assert.Equal(t, path, result.Source)
		assert.True(t, result.Config.Cache.Enabled)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "tally.toml", "[output]\nformat = \"html\"\n")
		_, err := LoadConfig(WithPath(path))
		assert.ErrorContains(t, err, "unknown format")
	})
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.Extensions = []string{"json"}
	cfg.Analysis.Workers = -1
	cfg.Output.Precision = 20

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must start with a dot")
	assert.Contains(t, err.Error(), "analysis.workers")
	assert.Contains(t, err.Error(), "output.precision")
}

func TestHasExtension(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.HasExtension("a/b/report.json"))
	assert.True(t, cfg.HasExtension("REPORT.JSON"))
	assert.False(t, cfg.HasExtension("report.txt"))
	assert.False(t, cfg.HasExtension("json"))
}

func TestShouldExcludeDir(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.ShouldExcludeDir("node_modules"))
	assert.False(t, cfg.ShouldExcludeDir("reports"))
}
