// Package search implements a budgeted, streaming literal search over
// a pre-enumerated file corpus. Every invocation performs a fresh
// scan: there is no precomputed index, and completeness is explicitly
// traded for bounded latency under the request's deadline.
package search

import (
	"context"

	"github.com/haystackd/haystack/internal/cache"
	"github.com/haystackd/haystack/internal/searchtypes"
)

// Engine coordinates one search request end to end: categorization,
// the two scheduling passes, streaming aggregation, and the deadline.
// An Engine is safe for sequential reuse across requests; per-request
// state lives on the stack of Search.
type Engine struct {
	diag      Diagnostics
	tokenizer Tokenizer
	cache     *cache.ResultCache
}

// Option configures an Engine.
type Option func(*Engine)

// WithDiagnostics injects the diagnostics sink consumed by every
// component. The default sink discards everything.
func WithDiagnostics(d Diagnostics) Option {
	return func(e *Engine) { e.diag = d }
}

// WithTokenizer substitutes the symbol extraction tokenizer.
func WithTokenizer(t Tokenizer) Option {
	return func(e *Engine) { e.tokenizer = t }
}

// WithCache attaches an expansion cache. Only fully completed result
// sets are inserted; deadline-truncated partial results are never
// cached.
func WithCache(c *cache.ResultCache) Option {
	return func(e *Engine) { e.cache = c }
}

// New creates an engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		diag:      NopDiagnostics{},
		tokenizer: LexicalTokenizer{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search scans the candidate files for the request's query and returns
// the deduplicated result set. Batches are streamed to onBatch (may be
// nil) in best-effort real time, at most once per file that produced
// net-new hits.
//
// Search never returns an error: every failure below enumeration is
// isolated per file or per callback invocation, and a deadline expiry
// is a designed degrade path that returns whatever accumulated. The
// only externally visible failure mode is fewer results than expected,
// signaled through diagnostics.
func (e *Engine) Search(ctx context.Context, req searchtypes.Request, files []string, onBatch func(searchtypes.Batch)) searchtypes.ResultSet {
	req = req.Normalized()
	if req.Query == "" {
		return searchtypes.ResultSet{Complete: true}
	}

	if e.cache != nil {
		if cached, ok := e.cache.Get(req.CacheKey()); ok {
			return cached
		}
	}

	if req.MaxFiles > 0 && len(files) > req.MaxFiles {
		files = files[:req.MaxFiles]
	}

	dl := newDeadline(req.MaxSearchTime)
	defer dl.Stop()

	// Translate external context cancellation into the cooperative flag.
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			dl.Cancel()
		case <-watchDone:
		}
	}()
	defer close(watchDone)

	e.diag.SearchStarted(req.Query, req.Mode, len(files))

	agg := newAggregator(req, len(files), onBatch, e.diag)
	batches := make(chan searchtypes.Batch, 64)
	aggDone := make(chan struct{})
	go func() {
		defer close(aggDone)
		for batch := range batches {
			agg.Add(batch)
		}
	}()

	if req.SingleGroup {
		// No categorization: every file scans in one pass at the
		// middle concurrency tier, sizes left unstated.
		group := make([]searchtypes.Candidate, len(files))
		for i, path := range files {
			group[i] = searchtypes.Candidate{Path: path}
		}
		runGroup(group, SingleGroupConcurrency, req, e.tokenizer, e.diag, dl, batches)
	} else {
		regular, large := Categorize(ctx, files, e.diag)
		runGroup(regular, RegularConcurrency, req, e.tokenizer, e.diag, dl, batches)
		runGroup(large, LargeConcurrency, req, e.tokenizer, e.diag, dl, batches)
	}

	close(batches)
	<-aggDone

	elapsed := dl.Elapsed()
	cancelled := dl.Cancelled()

	result := searchtypes.ResultSet{
		Hits:         agg.Results(),
		Complete:     !cancelled,
		FilesScanned: agg.FilesProcessed(),
		Elapsed:      elapsed,
	}

	if cancelled {
		e.diag.Aborted(elapsed, len(result.Hits))
	} else {
		e.diag.SearchCompleted(elapsed, result.FilesScanned, len(result.Hits))
		if e.cache != nil {
			e.cache.Put(req.CacheKey(), result)
		}
	}
	return result
}
