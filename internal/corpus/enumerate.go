// Package corpus discovers the candidate file list a search scans.
// Enumeration is the host-side half of the engine boundary: the engine
// itself only ever sees the pre-enumerated list.
package corpus

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/haystackd/haystack/internal/config"
	"github.com/haystackd/haystack/internal/debug"
	haystackerrors "github.com/haystackd/haystack/internal/errors"
)

// binaryExtensions lists file extensions that are skipped outright.
// Undecodable content in other files is still scanned best-effort;
// this list only avoids reading obviously binary formats.
var binaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {}, ".bmp": {},
	".pdf": {}, ".zip": {}, ".gz": {}, ".tar": {}, ".bz2": {}, ".xz": {}, ".7z": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".bin": {}, ".o": {}, ".a": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {}, ".otf": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wav": {},
	".class": {}, ".jar": {}, ".wasm": {}, ".pyc": {},
}

// Enumerator walks the project root and produces the candidate file
// list, honoring include/exclude globs, gitignore, the binary skip
// list, and the configured file cap.
type Enumerator struct {
	cfg       *config.Config
	gitignore *config.GitignoreParser
}

// NewEnumerator creates an enumerator for the configured project root.
func NewEnumerator(cfg *config.Config) *Enumerator {
	e := &Enumerator{cfg: cfg}
	if cfg.Search.RespectGitignore {
		gp := config.NewGitignoreParser()
		if err := gp.LoadGitignore(cfg.Project.Root); err == nil {
			e.gitignore = gp
		}
	}
	return e
}

// Enumerate returns the candidate file paths in deterministic walk
// order, capped at Limits.MaxFiles. Failure to walk the root is fatal
// for the request; failures on individual entries are skipped.
func (e *Enumerator) Enumerate(ctx context.Context) ([]string, error) {
	root := e.cfg.Project.Root
	if _, err := os.Stat(root); err != nil {
		return nil, haystackerrors.NewEnumerationError(root, err)
	}

	var files []string
	maxFiles := e.cfg.Limits.MaxFiles

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if err != nil {
			debug.LogCorpus("skipping %s: %v\n", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if e.excludedDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if e.excludedFile(rel) {
			return nil
		}

		files = append(files, path)
		if maxFiles > 0 && len(files) >= maxFiles {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, haystackerrors.NewEnumerationError(root, err)
	}

	debug.LogCorpus("enumerated %d files under %s\n", len(files), root)
	return files, nil
}

// excludedDir decides whether a whole directory subtree can be pruned.
// Pruning is a fast path only: files under a non-pruned excluded
// directory are still filtered individually.
func (e *Enumerator) excludedDir(rel string) bool {
	if e.gitignore != nil && e.gitignore.ShouldIgnore(rel, true) {
		return true
	}
	// Probe a sentinel child so directory-spanning patterns like
	// "**/node_modules/**" prune at the directory itself.
	probe := rel + "/_"
	for _, pattern := range e.cfg.Exclude {
		if ok, err := doublestar.Match(pattern, probe); err == nil && ok {
			if !e.rescuedByInclude(rel) {
				return true
			}
		}
	}
	return false
}

// rescuedByInclude keeps a directory walkable when an include pattern
// could match something beneath it.
func (e *Enumerator) rescuedByInclude(rel string) bool {
	for _, pattern := range e.cfg.Include {
		if strings.HasPrefix(pattern, rel+"/") || strings.HasPrefix(pattern, "**") {
			return true
		}
	}
	return false
}

func (e *Enumerator) excludedFile(rel string) bool {
	ext := strings.ToLower(filepath.Ext(rel))
	if _, binary := binaryExtensions[ext]; binary {
		return true
	}

	for _, pattern := range e.cfg.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}

	if len(e.cfg.Include) > 0 {
		included := false
		for _, pattern := range e.cfg.Include {
			if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
				included = true
				break
			}
		}
		if !included {
			return true
		}
	}

	if e.gitignore != nil && e.gitignore.ShouldIgnore(rel, false) {
		return true
	}
	return false
}

// Prioritize moves the priority file to the front of the candidate
// list so it is scanned first, preserving the order of the rest. The
// list is returned unchanged when the file is not in it.
func Prioritize(files []string, priority string) []string {
	if priority == "" {
		return files
	}
	priority = filepath.Clean(priority)
	for i, f := range files {
		if filepath.Clean(f) == priority {
			reordered := make([]string, 0, len(files))
			reordered = append(reordered, files[i])
			reordered = append(reordered, files[:i]...)
			reordered = append(reordered, files[i+1:]...)
			return reordered
		}
	}
	return files
}
