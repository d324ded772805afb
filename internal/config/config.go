package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	haystackerrors "github.com/haystackd/haystack/internal/errors"
	"github.com/haystackd/haystack/internal/searchtypes"
)

type Config struct {
	Version int
	Project Project
	Limits  Limits
	Search  Search
	Watch   Watch
	Include []string
	Exclude []string
}

type Project struct {
	Root string
	Name string
}

// Limits are the per-request resource budgets. They are copied into an
// immutable Request at search start and never re-read mid-request.
type Limits struct {
	MaxFiles        int
	MaxLinesPerFile int
	MaxSearchMs     int
	ProgressEvery   int // files between progress diagnostics
}

type Search struct {
	Mode             string // "word" or "substring"
	Verbose          bool
	RespectGitignore bool // process .gitignore for additional exclusions
	DetectArtifacts  bool // derive excludes from build config files
}

type Watch struct {
	Enabled    bool
	DebounceMs int // debounce time for file change events
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	root, _ := os.Getwd()
	if root == "" {
		root = "."
	}
	return &Config{
		Version: 1,
		Project: Project{Root: root},
		Limits: Limits{
			MaxFiles:        5000,
			MaxLinesPerFile: 20000,
			MaxSearchMs:     10000,
			ProgressEvery:   50,
		},
		Search: Search{
			Mode:             "word",
			RespectGitignore: true,
			DetectArtifacts:  true,
		},
		Watch: Watch{
			Enabled:    false,
			DebounceMs: 300,
		},
		Include: []string{}, // no include patterns means include everything
		Exclude: []string{
			"**/.git/**",
			"**/node_modules/**",
			"**/vendor/**",
		},
	}
}

// Load reads configuration from the given .haystack.kdl path. A
// missing file is not an error: defaults are returned with the root
// resolved from the config path's directory.
func Load(path string) (*Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, haystackerrors.NewConfigError("path", path, err)
	}

	cfg, err = parseKDL(string(content))
	if err != nil {
		return nil, err
	}

	// Resolve a relative root against the config file's directory so
	// the config behaves the same regardless of the invocation cwd.
	if !filepath.IsAbs(cfg.Project.Root) {
		base := filepath.Dir(path)
		if abs, err := filepath.Abs(filepath.Join(base, cfg.Project.Root)); err == nil {
			cfg.Project.Root = abs
		}
	}
	cfg.Project.Root = filepath.Clean(cfg.Project.Root)

	if cfg.Search.DetectArtifacts {
		cfg.EnrichExclusionsWithBuildArtifacts()
	}
	return cfg, nil
}

// Validate checks that limit values are within usable ranges.
func (c *Config) Validate() error {
	if c.Limits.MaxFiles < 0 {
		return haystackerrors.NewConfigError("limits.max_files",
			fmt.Sprint(c.Limits.MaxFiles), fmt.Errorf("must not be negative"))
	}
	if c.Limits.MaxLinesPerFile < 0 {
		return haystackerrors.NewConfigError("limits.max_lines_per_file",
			fmt.Sprint(c.Limits.MaxLinesPerFile), fmt.Errorf("must not be negative"))
	}
	if c.Limits.MaxSearchMs < 0 {
		return haystackerrors.NewConfigError("limits.max_search_ms",
			fmt.Sprint(c.Limits.MaxSearchMs), fmt.Errorf("must not be negative"))
	}
	switch c.Search.Mode {
	case "word", "substring":
	default:
		return haystackerrors.NewConfigError("search.mode", c.Search.Mode,
			fmt.Errorf("must be word or substring"))
	}
	if c.Watch.DebounceMs < 0 {
		return haystackerrors.NewConfigError("watch.debounce_ms",
			fmt.Sprint(c.Watch.DebounceMs), fmt.Errorf("must not be negative"))
	}
	return nil
}

// Request builds the immutable per-request value handed to the engine.
func (c *Config) Request(query string) searchtypes.Request {
	mode := searchtypes.ModeWord
	if c.Search.Mode == "substring" {
		mode = searchtypes.ModeSubstring
	}
	return searchtypes.Request{
		Query:           query,
		Mode:            mode,
		MaxFiles:        c.Limits.MaxFiles,
		MaxLinesPerFile: c.Limits.MaxLinesPerFile,
		MaxSearchTime:   time.Duration(c.Limits.MaxSearchMs) * time.Millisecond,
		ProgressEvery:   c.Limits.ProgressEvery,
		Verbose:         c.Search.Verbose,
	}
}

// EnrichExclusionsWithBuildArtifacts appends build-output excludes
// detected from language configuration files under the project root.
func (c *Config) EnrichExclusionsWithBuildArtifacts() {
	detector := NewBuildArtifactDetector(c.Project.Root)
	c.Exclude = DeduplicatePatterns(append(c.Exclude, detector.DetectOutputDirectories()...))
}
