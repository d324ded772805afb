// Package pathutil converts between absolute and relative paths.
//
// haystack uses absolute paths internally for consistency; user-facing
// output uses relative paths for readability. This package is the
// conversion layer between the two representations.
package pathutil

import (
	"path/filepath"
	"strings"

	"github.com/haystackd/haystack/internal/searchtypes"
)

// ToRelative converts an absolute path to relative based on a root
// directory. Falls back to the original path if conversion fails, the
// path is already relative, or the path lies outside the root.
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}
	if strings.HasPrefix(relPath, "..") {
		return absPath
	}
	return relPath
}

// ToRelativeHits converts hit paths from absolute to relative. A new
// slice is returned; the input is not modified, since hits may still
// be owned by a frozen result set.
func ToRelativeHits(hits []searchtypes.Hit, rootDir string) []searchtypes.Hit {
	if len(hits) == 0 {
		return hits
	}

	converted := make([]searchtypes.Hit, len(hits))
	copy(converted, hits)
	for i := range converted {
		converted[i].Path = ToRelative(converted[i].Path, rootDir)
	}
	return converted
}
