package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitignoreBareNameMatchesAnyDepth(t *testing.T) {
	gp := NewGitignoreParser()
	gp.AddPattern("*.log")

	assert.True(t, gp.ShouldIgnore("debug.log", false))
	assert.True(t, gp.ShouldIgnore("deep/nested/trace.log", false))
	assert.False(t, gp.ShouldIgnore("changelog.md", false))
}

func TestGitignoreDirectoryOnlyPattern(t *testing.T) {
	gp := NewGitignoreParser()
	gp.AddPattern("build/")

	assert.True(t, gp.ShouldIgnore("build", true))
	assert.True(t, gp.ShouldIgnore("build/out.js", false))
	assert.True(t, gp.ShouldIgnore("sub/build/out.js", false))
	assert.False(t, gp.ShouldIgnore("build.rs", false), "directory pattern must not match a plain file")
}

func TestGitignoreRootAnchoredPattern(t *testing.T) {
	gp := NewGitignoreParser()
	gp.AddPattern("/secrets.env")

	assert.True(t, gp.ShouldIgnore("secrets.env", false))
	assert.False(t, gp.ShouldIgnore("config/secrets.env", false))
}

func TestGitignoreSlashAnchorsToRoot(t *testing.T) {
	gp := NewGitignoreParser()
	gp.AddPattern("docs/generated")

	assert.True(t, gp.ShouldIgnore("docs/generated", false))
	assert.True(t, gp.ShouldIgnore("docs/generated/api.md", false))
	assert.False(t, gp.ShouldIgnore("other/docs/generated", false))
}

func TestGitignoreNegationLastMatchWins(t *testing.T) {
	gp := NewGitignoreParser()
	gp.AddPattern("*.log")
	gp.AddPattern("!keep.log")

	assert.True(t, gp.ShouldIgnore("debug.log", false))
	assert.False(t, gp.ShouldIgnore("keep.log", false))

	// Re-ignoring after a negation flips it back.
	gp.AddPattern("keep.log")
	assert.True(t, gp.ShouldIgnore("keep.log", false))
}

func TestLoadGitignoreFile(t *testing.T) {
	dir := t.TempDir()
	content := "# comment\n\n*.tmp\nnode_modules/\n!important.tmp\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(content), 0644))

	gp := NewGitignoreParser()
	require.NoError(t, gp.LoadGitignore(dir))

	assert.True(t, gp.ShouldIgnore("scratch.tmp", false))
	assert.False(t, gp.ShouldIgnore("important.tmp", false))
	assert.True(t, gp.ShouldIgnore("node_modules/pkg/index.js", false))
	assert.False(t, gp.ShouldIgnore("#comment-looking-file", false))
}

func TestLoadGitignoreMissingFile(t *testing.T) {
	gp := NewGitignoreParser()
	require.NoError(t, gp.LoadGitignore(t.TempDir()))
	assert.False(t, gp.ShouldIgnore("anything.go", false))
}
