package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haystackd/haystack/internal/searchtypes"
)

func TestToRelative(t *testing.T) {
	root := filepath.FromSlash("/home/user/project")

	tests := []struct {
		name string
		abs  string
		want string
	}{
		{"inside root", filepath.FromSlash("/home/user/project/src/main.go"), filepath.FromSlash("src/main.go")},
		{"root itself", root, "."},
		{"outside root", filepath.FromSlash("/etc/passwd"), filepath.FromSlash("/etc/passwd")},
		{"already relative", filepath.FromSlash("src/main.go"), filepath.FromSlash("src/main.go")},
		{"empty path", "", ""},
		{"unclean path", filepath.FromSlash("/home/user/project/./src/../src/main.go"), filepath.FromSlash("src/main.go")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToRelative(tt.abs, root))
		})
	}
}

func TestToRelativeEmptyRoot(t *testing.T) {
	abs := filepath.FromSlash("/a/b/c.go")
	assert.Equal(t, abs, ToRelative(abs, ""))
}

func TestToRelativeHits(t *testing.T) {
	root := filepath.FromSlash("/proj")
	hits := []searchtypes.Hit{
		{Path: filepath.FromSlash("/proj/a.go"), Line: 1},
		{Path: filepath.FromSlash("/elsewhere/b.go"), Line: 2},
	}

	converted := ToRelativeHits(hits, root)

	assert.Equal(t, "a.go", converted[0].Path)
	assert.Equal(t, filepath.FromSlash("/elsewhere/b.go"), converted[1].Path)
	assert.Equal(t, filepath.FromSlash("/proj/a.go"), hits[0].Path, "input slice is not mutated")

	assert.Empty(t, ToRelativeHits(nil, root))
}
