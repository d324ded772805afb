package searchtypes

import (
	"strings"
	"time"
)

// Mode selects how a query is matched against a line.
type Mode string

const (
	// ModeWord matches the query only where it is not adjacent to an
	// identifier character on either side.
	ModeWord Mode = "word"
	// ModeSubstring matches the query anywhere, including overlapping
	// occurrences.
	ModeSubstring Mode = "substring"
)

// Request carries one search invocation's query and resource limits.
// It is immutable for the lifetime of the request; components never
// re-read configuration mid-scan.
type Request struct {
	Query           string
	Mode            Mode
	MaxFiles        int
	MaxLinesPerFile int
	MaxSearchTime   time.Duration
	ProgressEvery   int // files between progress diagnostics
	Verbose         bool
	SingleGroup     bool // skip size categorization, one pass at reduced concurrency
}

// DefaultRequest returns a request with the standard resource limits.
func DefaultRequest(query string) Request {
	return Request{
		Query:           query,
		Mode:            ModeWord,
		MaxFiles:        5000,
		MaxLinesPerFile: 20000,
		MaxSearchTime:   10 * time.Second,
		ProgressEvery:   50,
	}
}

// Normalized returns the request with its query trimmed of surrounding
// whitespace. An empty normalized query produces an empty result set.
func (r Request) Normalized() Request {
	r.Query = strings.TrimSpace(r.Query)
	return r
}

// CacheKey identifies a request's result set in the expansion cache.
// Mode is part of the key: the same query in word and substring mode
// yields different result sets.
func (r Request) CacheKey() string {
	return string(r.Mode) + ":" + r.Query
}

// Candidate is a file handle plus its byte size, known before content
// is read. Size 0 is used when the stat failed.
type Candidate struct {
	Path string
	Size int64
}

// Hit is a single occurrence of the query in the corpus.
// Line and Column are 0-based.
type Hit struct {
	Path    string   `json:"path"`
	Line    int      `json:"line"`
	Column  int      `json:"column"`
	Length  int      `json:"length"`
	Preview string   `json:"preview"`
	Symbols []string `json:"symbols,omitempty"`
}

// Key is the identity of a hit within one request. Duplicate keys from
// overlapping scan passes collapse to one hit.
type Key struct {
	Path   string
	Line   int
	Column int
}

// Key returns the hit's identity key.
func (h Hit) Key() Key {
	return Key{Path: h.Path, Line: h.Line, Column: h.Column}
}

// Batch is the ordered set of hits produced by scanning exactly one
// file. Batches are immutable once produced.
type Batch struct {
	Path string
	Hits []Hit
}

// ResultSet is the deduplicated union of all batches for one request.
// Complete is false when the search was truncated by the deadline;
// truncated result sets are never cached.
type ResultSet struct {
	Hits         []Hit         `json:"hits"`
	Complete     bool          `json:"complete"`
	FilesScanned int           `json:"files_scanned"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Keys returns the identity keys of all hits, in result order.
func (rs ResultSet) Keys() []Key {
	keys := make([]Key, len(rs.Hits))
	for i, h := range rs.Hits {
		keys[i] = h.Key()
	}
	return keys
}
