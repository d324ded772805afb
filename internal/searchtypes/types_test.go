package searchtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestNormalized(t *testing.T) {
	req := DefaultRequest("  needle\t")
	norm := req.Normalized()

	assert.Equal(t, "needle", norm.Query)
	assert.Equal(t, "  needle\t", req.Query, "Normalized returns a copy")
	assert.Equal(t, "", DefaultRequest(" \t ").Normalized().Query)
}

func TestCacheKeyDistinguishesModes(t *testing.T) {
	word := DefaultRequest("cat")
	sub := DefaultRequest("cat")
	sub.Mode = ModeSubstring

	assert.NotEqual(t, word.CacheKey(), sub.CacheKey())
	assert.Equal(t, "word:cat", word.CacheKey())
	assert.Equal(t, "substring:cat", sub.CacheKey())
}

func TestHitKey(t *testing.T) {
	a := Hit{Path: "f.go", Line: 3, Column: 7, Length: 6, Preview: "x"}
	b := Hit{Path: "f.go", Line: 3, Column: 7, Length: 6, Preview: "different preview"}
	c := Hit{Path: "f.go", Line: 3, Column: 8}

	assert.Equal(t, a.Key(), b.Key(), "identity ignores preview and length")
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestResultSetKeys(t *testing.T) {
	rs := ResultSet{Hits: []Hit{
		{Path: "a.go", Line: 1, Column: 2},
		{Path: "b.go", Line: 0, Column: 0},
	}}

	assert.Equal(t, []Key{
		{Path: "a.go", Line: 1, Column: 2},
		{Path: "b.go", Line: 0, Column: 0},
	}, rs.Keys())
	assert.Empty(t, ResultSet{}.Keys())
}
