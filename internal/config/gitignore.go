package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GitignoreParser handles parsing and matching .gitignore files.
// It implements the common subset of gitignore semantics: comments,
// negation, directory-only patterns, and root-anchored patterns. The
// last matching pattern wins, as in git.
type GitignoreParser struct {
	patterns []GitignorePattern
}

type GitignorePattern struct {
	Pattern   string
	Negate    bool
	Directory bool
	Absolute  bool

	// glob is the doublestar pattern the path is matched against
	glob string
}

// NewGitignoreParser creates a new gitignore parser
func NewGitignoreParser() *GitignoreParser {
	return &GitignoreParser{
		patterns: make([]GitignorePattern, 0),
	}
}

// LoadGitignore loads patterns from the .gitignore file under rootPath.
// A missing file is fine and leaves the parser empty.
func (gp *GitignoreParser) LoadGitignore(rootPath string) error {
	gitignorePath := filepath.Join(rootPath, ".gitignore")

	file, err := os.Open(gitignorePath)
	if err != nil {
		return nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gp.AddPattern(line)
	}
	return scanner.Err()
}

// AddPattern adds a single gitignore pattern line to the parser.
func (gp *GitignoreParser) AddPattern(line string) {
	p := GitignorePattern{Pattern: line}

	if strings.HasPrefix(line, "!") {
		p.Negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.Directory = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		p.Absolute = true
		line = strings.TrimPrefix(line, "/")
	}

	switch {
	case p.Absolute:
		// Anchored to the root
		p.glob = line
	case strings.Contains(line, "/"):
		// A slash anywhere anchors the pattern relative to the root
		p.glob = line
	default:
		// Bare names match at any depth
		p.glob = "**/" + line
	}

	gp.patterns = append(gp.patterns, p)
}

// ShouldIgnore reports whether the slash-separated path relative to
// the gitignore's root is excluded. Directory-only patterns also
// exclude everything beneath the matched directory.
func (gp *GitignoreParser) ShouldIgnore(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	ignored := false

	for _, p := range gp.patterns {
		if p.Directory && !isDir && !gp.matchesParent(p, relPath) {
			continue
		}
		if gp.matches(p, relPath) {
			ignored = !p.Negate
		}
	}
	return ignored
}

func (gp *GitignoreParser) matches(p GitignorePattern, relPath string) bool {
	if ok, err := doublestar.Match(p.glob, relPath); err == nil && ok {
		return true
	}
	// A directory pattern matches any file under the directory
	if ok, err := doublestar.Match(p.glob+"/**", relPath); err == nil && ok {
		return true
	}
	return false
}

// matchesParent reports whether any ancestor directory of relPath
// matches the directory-only pattern.
func (gp *GitignoreParser) matchesParent(p GitignorePattern, relPath string) bool {
	dir := relPath
	for {
		parent := filepath.ToSlash(filepath.Dir(dir))
		if parent == "." || parent == "/" || parent == dir {
			return false
		}
		if ok, err := doublestar.Match(p.glob, parent); err == nil && ok {
			return true
		}
		dir = parent
	}
}
