package search

import (
	"sync"
	"sync/atomic"

	"github.com/haystackd/haystack/internal/searchtypes"
)

// runGroup scans one categorized file group with a bounded worker
// pool. All workers share a single atomically-incremented cursor over
// the group's file list; each claims the next unprocessed index,
// scans that file, emits its batch, then re-checks the wall-clock
// guard and the cancellation flag before claiming again.
//
// File processing order across workers is roughly enumeration order,
// subject to interleaving; the aggregator's deduplication makes that
// safe. Batches are immutable once sent.
func runGroup(files []searchtypes.Candidate, concurrency int, req searchtypes.Request, tok Tokenizer, diag Diagnostics, dl *deadline, batches chan<- searchtypes.Batch) {
	if len(files) == 0 || concurrency <= 0 {
		return
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	var cursor atomic.Int64
	var wg sync.WaitGroup
	wg.Add(concurrency)

	for w := 0; w < concurrency; w++ {
		go func() {
			defer wg.Done()
			for {
				if dl.Cancelled() {
					return
				}
				idx := int(cursor.Add(1)) - 1
				if idx >= len(files) {
					return
				}
				batches <- scanFile(files[idx], req, tok, diag)
				if dl.CheckElapsed() {
					return
				}
			}
		}()
	}
	wg.Wait()
}
