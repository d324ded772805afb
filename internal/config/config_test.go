package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	haystackerrors "github.com/haystackd/haystack/internal/errors"
	"github.com/haystackd/haystack/internal/searchtypes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 5000, cfg.Limits.MaxFiles)
	assert.Equal(t, 20000, cfg.Limits.MaxLinesPerFile)
	assert.Equal(t, 10000, cfg.Limits.MaxSearchMs)
	assert.Equal(t, 50, cfg.Limits.ProgressEvery)
	assert.Equal(t, "word", cfg.Search.Mode)
	assert.True(t, cfg.Search.RespectGitignore)
	assert.Empty(t, cfg.Include)
	assert.Contains(t, cfg.Exclude, "**/node_modules/**")
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".haystack.kdl"))
	require.NoError(t, err)
	assert.Equal(t, Default().Limits, cfg.Limits)
}

func TestLoadResolvesRelativeRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".haystack.kdl")
	content := `
project {
    root "src"
}
search {
    detect_artifacts false
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src"), cfg.Project.Root)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative max files", func(c *Config) { c.Limits.MaxFiles = -1 }, "limits.max_files"},
		{"negative max lines", func(c *Config) { c.Limits.MaxLinesPerFile = -5 }, "limits.max_lines_per_file"},
		{"negative search ms", func(c *Config) { c.Limits.MaxSearchMs = -100 }, "limits.max_search_ms"},
		{"bad mode", func(c *Config) { c.Search.Mode = "regex" }, "search.mode"},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMs = -1 }, "watch.debounce_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *haystackerrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestConfigRequest(t *testing.T) {
	cfg := Default()
	cfg.Limits.MaxFiles = 100
	cfg.Limits.MaxSearchMs = 2500
	cfg.Search.Mode = "substring"
	cfg.Search.Verbose = true

	req := cfg.Request("needle")

	assert.Equal(t, "needle", req.Query)
	assert.Equal(t, searchtypes.ModeSubstring, req.Mode)
	assert.Equal(t, 100, req.MaxFiles)
	assert.Equal(t, 2500*time.Millisecond, req.MaxSearchTime)
	assert.True(t, req.Verbose)
}
