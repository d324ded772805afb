package search

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/haystackd/haystack/internal/searchtypes"
)

// aggregator folds per-file batches into the running result set for
// one request. It owns the seen-set and the result slice exclusively;
// workers only produce immutable batches, so no locking is needed as
// long as a single goroutine drains the batch channel.
type aggregator struct {
	req       searchtypes.Request
	diag      Diagnostics
	onBatch   func(searchtypes.Batch)
	seen      map[uint64]struct{}
	hits      []searchtypes.Hit
	processed int
	total     int
}

func newAggregator(req searchtypes.Request, total int, onBatch func(searchtypes.Batch), diag Diagnostics) *aggregator {
	return &aggregator{
		req:     req,
		diag:    diag,
		onBatch: onBatch,
		seen:    make(map[uint64]struct{}),
		total:   total,
	}
}

// hitKeyHash hashes a hit's (file, line, column) identity key.
// xxhash over the composite key keeps the seen-set at 8 bytes per
// entry instead of retaining every path string.
func hitKeyHash(h searchtypes.Hit) uint64 {
	buf := make([]byte, 0, len(h.Path)+24)
	buf = append(buf, h.Path...)
	buf = append(buf, 0)
	buf = strconv.AppendInt(buf, int64(h.Line), 10)
	buf = append(buf, 0)
	buf = strconv.AppendInt(buf, int64(h.Column), 10)
	return xxhash.Sum64(buf)
}

// Add folds one batch in: hits whose identity key was already seen for
// this request are discarded, the rest are appended to the running
// result set. If a batch callback was supplied it is invoked with the
// net-new hits; a panic raised by caller code is recovered and logged,
// never propagated into the scan loop.
func (a *aggregator) Add(batch searchtypes.Batch) {
	a.processed++

	var fresh []searchtypes.Hit
	for _, hit := range batch.Hits {
		key := hitKeyHash(hit)
		if _, dup := a.seen[key]; dup {
			continue
		}
		a.seen[key] = struct{}{}
		a.hits = append(a.hits, hit)
		fresh = append(fresh, hit)
	}

	if len(fresh) > 0 || a.req.Verbose {
		a.diag.FileHits(batch.Path, len(fresh))
	}
	if a.req.ProgressEvery > 0 && a.processed%a.req.ProgressEvery == 0 {
		a.diag.Progress(a.processed, a.total)
	}

	if a.onBatch != nil && len(fresh) > 0 {
		a.deliver(searchtypes.Batch{Path: batch.Path, Hits: fresh})
	}
}

func (a *aggregator) deliver(batch searchtypes.Batch) {
	defer func() {
		if r := recover(); r != nil {
			a.diag.CallbackWarning(batch.Path, r)
		}
	}()
	a.onBatch(batch)
}

// Results returns the accumulated hits. The slice is owned by the
// aggregator until the request finishes; callers receive it only after
// the result set is frozen.
func (a *aggregator) Results() []searchtypes.Hit {
	return a.hits
}

// FilesProcessed returns how many batches have been folded in.
func (a *aggregator) FilesProcessed() int {
	return a.processed
}
