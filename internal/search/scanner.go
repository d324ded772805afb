package search

import (
	"os"
	"strings"

	haystackerrors "github.com/haystackd/haystack/internal/errors"
	"github.com/haystackd/haystack/internal/searchtypes"
)

// scanFile reads one file, splits it into logical lines, and applies
// the matcher, preview builder, and symbol extractor to every
// non-empty line. A read failure is recovered: the file contributes an
// empty batch and a warning, never aborting the group. Binary-looking
// content is treated as ordinary text best-effort.
func scanFile(cand searchtypes.Candidate, req searchtypes.Request, tok Tokenizer, diag Diagnostics) searchtypes.Batch {
	batch := searchtypes.Batch{Path: cand.Path}

	content, err := os.ReadFile(cand.Path)
	if err != nil {
		diag.FileWarning(cand.Path, haystackerrors.NewFileError("read", cand.Path, err))
		return batch
	}

	lines := SplitLines(string(content))
	if req.MaxLinesPerFile > 0 && len(lines) > req.MaxLinesPerFile {
		lines = lines[:req.MaxLinesPerFile]
	}

	for lineNum, line := range lines {
		if line == "" {
			continue
		}
		for _, col := range MatchLine(line, req.Query, req.Mode) {
			batch.Hits = append(batch.Hits, searchtypes.Hit{
				Path:    cand.Path,
				Line:    lineNum,
				Column:  col,
				Length:  len(req.Query),
				Preview: Preview(line, col, len(req.Query)),
				Symbols: ExtractSymbols(tok, line, req.Query),
			})
		}
	}
	return batch
}

// SplitLines splits content into logical lines, normalizing both \n
// and \r\n line endings.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
