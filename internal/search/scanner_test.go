package search

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haystackd/haystack/internal/searchtypes"
)

func writeTestFile(t *testing.T, dir, name, content string) searchtypes.Candidate {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return searchtypes.Candidate{Path: path, Size: int64(len(content))}
}

func testRequest(query string, mode searchtypes.Mode) searchtypes.Request {
	req := searchtypes.DefaultRequest(query)
	req.Mode = mode
	return req
}

func TestScanFileBuildsHits(t *testing.T) {
	cand := writeTestFile(t, t.TempDir(), "calc.js",
		"function calculateDiscount(price) {\n"+
			"  return price * 0.9;\n"+
			"}\n"+
			"const discountedPrice = calculateDiscount(totalPrice);\n")

	batch := scanFile(cand, testRequest("calculateDiscount", searchtypes.ModeWord), LexicalTokenizer{}, newRecordingDiag())

	require.Len(t, batch.Hits, 2)

	decl := batch.Hits[0]
	assert.Equal(t, cand.Path, decl.Path)
	assert.Equal(t, 0, decl.Line)
	assert.Equal(t, 9, decl.Column)
	assert.Equal(t, len("calculateDiscount"), decl.Length)
	assert.Contains(t, decl.Preview, "calculateDiscount")

	call := batch.Hits[1]
	assert.Equal(t, 3, call.Line)
	assert.Contains(t, call.Preview, "calculateDiscount")
	assert.Contains(t, call.Symbols, "discountedPrice")
	assert.Contains(t, call.Symbols, "totalPrice")
	assert.NotContains(t, call.Symbols, "calculateDiscount")
}

func TestScanFileNormalizesCRLF(t *testing.T) {
	cand := writeTestFile(t, t.TempDir(), "crlf.txt", "foo\r\nbar foo\r\n")

	batch := scanFile(cand, testRequest("foo", searchtypes.ModeSubstring), LexicalTokenizer{}, newRecordingDiag())

	require.Len(t, batch.Hits, 2)
	assert.Equal(t, 0, batch.Hits[0].Line)
	assert.Equal(t, 1, batch.Hits[1].Line)
	for _, hit := range batch.Hits {
		assert.NotContains(t, hit.Preview, "\r")
	}
}

func TestScanFileHitOrderIsLineThenColumn(t *testing.T) {
	cand := writeTestFile(t, t.TempDir(), "order.txt", "b a a\na b a\n")

	batch := scanFile(cand, testRequest("a", searchtypes.ModeWord), LexicalTokenizer{}, newRecordingDiag())

	require.Len(t, batch.Hits, 4)
	assert.Equal(t, []int{0, 0, 1, 1}, []int{batch.Hits[0].Line, batch.Hits[1].Line, batch.Hits[2].Line, batch.Hits[3].Line})
	assert.Less(t, batch.Hits[0].Column, batch.Hits[1].Column)
	assert.Less(t, batch.Hits[2].Column, batch.Hits[3].Column)
}

func TestScanFileTruncatesToMaxLines(t *testing.T) {
	content := strings.Repeat("needle\n", 100)
	cand := writeTestFile(t, t.TempDir(), "long.txt", content)

	req := testRequest("needle", searchtypes.ModeWord)
	req.MaxLinesPerFile = 10

	batch := scanFile(cand, req, LexicalTokenizer{}, newRecordingDiag())
	assert.Len(t, batch.Hits, 10)
}

func TestScanFileReadFailureYieldsEmptyBatch(t *testing.T) {
	cand := searchtypes.Candidate{Path: filepath.Join(t.TempDir(), "gone.txt")}
	diag := newRecordingDiag()

	batch := scanFile(cand, testRequest("x", searchtypes.ModeWord), LexicalTokenizer{}, diag)

	assert.Empty(t, batch.Hits)
	assert.Equal(t, cand.Path, batch.Path)
	assert.Equal(t, 1, diag.warningCount())
}

func TestScanFileBinaryContentBestEffort(t *testing.T) {
	// Undecodable bytes are scanned as ordinary text, never a failure.
	cand := writeTestFile(t, t.TempDir(), "bin.dat", "\x00\x01\xfe needle \xff\n")

	batch := scanFile(cand, testRequest("needle", searchtypes.ModeWord), LexicalTokenizer{}, newRecordingDiag())
	require.Len(t, batch.Hits, 1)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{"empty", "", nil},
		{"unix", "a\nb\nc", []string{"a", "b", "c"}},
		{"windows", "a\r\nb\r\n", []string{"a", "b", ""}},
		{"mixed", "a\nb\r\nc", []string{"a", "b", "c"}},
		{"no trailing newline", "only", []string{"only"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLines(tt.content))
		})
	}
}
