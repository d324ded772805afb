package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/haystackd/haystack/internal/searchtypes"
)

// ResultCache memoizes completed result sets by query so repeated
// expansion of the same symbol does not rescan the corpus. Entries
// persist for the life of the process with no eviction and no
// invalidation on file changes; growth is bounded in practice by the
// number of distinct symbols a user expands in one session.
type ResultCache struct {
	entries sync.Map // map[string]searchtypes.ResultSet

	// Atomic counters - simple interlocked operations
	hits    int64
	misses  int64
	puts    int64
	entryCt int64

	createdAt time.Time
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Puts      int64
	Entries   int64
	CreatedAt time.Time
}

// NewResultCache creates an empty cache.
func NewResultCache() *ResultCache {
	return &ResultCache{createdAt: time.Now()}
}

// Get retrieves the result set cached under key, if present.
func (rc *ResultCache) Get(key string) (searchtypes.ResultSet, bool) {
	value, ok := rc.entries.Load(key)
	if !ok {
		atomic.AddInt64(&rc.misses, 1)
		return searchtypes.ResultSet{}, false
	}
	atomic.AddInt64(&rc.hits, 1)
	return value.(searchtypes.ResultSet), true
}

// Put stores a result set under key. Callers must only insert fully
// completed result sets; a truncated set would serve wrong data on
// every later hit.
func (rc *ResultCache) Put(key string, result searchtypes.ResultSet) {
	if !result.Complete {
		return
	}
	if _, loaded := rc.entries.Swap(key, result); !loaded {
		atomic.AddInt64(&rc.entryCt, 1)
	}
	atomic.AddInt64(&rc.puts, 1)
}

// Stats returns a snapshot of the cache counters.
func (rc *ResultCache) Stats() Stats {
	return Stats{
		Hits:      atomic.LoadInt64(&rc.hits),
		Misses:    atomic.LoadInt64(&rc.misses),
		Puts:      atomic.LoadInt64(&rc.puts),
		Entries:   atomic.LoadInt64(&rc.entryCt),
		CreatedAt: rc.createdAt,
	}
}
