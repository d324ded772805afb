package search

import (
	"time"

	"github.com/haystackd/haystack/internal/debug"
	"github.com/haystackd/haystack/internal/searchtypes"
)

// Diagnostics is the injected observer for search progress and
// warnings. Every method is advisory: implementations may drop calls
// without affecting the functional contract, and the engine never
// depends on their behavior.
type Diagnostics interface {
	// SearchStarted is emitted once per request, before the first scan.
	SearchStarted(query string, mode searchtypes.Mode, fileCount int)
	// FileHits is emitted after a file's batch is folded in. Callers
	// only receive it for files with at least one hit unless the
	// request runs in verbose mode.
	FileHits(path string, count int)
	// Progress is emitted every Request.ProgressEvery processed files.
	Progress(processed, total int)
	// FileWarning reports a recovered per-file stat or read failure.
	FileWarning(path string, err error)
	// CallbackWarning reports a recovered panic in a host-supplied
	// batch callback.
	CallbackWarning(path string, recovered any)
	// Aborted is emitted when the deadline truncated the search.
	Aborted(elapsed time.Duration, hitsSoFar int)
	// SearchCompleted is emitted once per request, after the result
	// set is frozen.
	SearchCompleted(elapsed time.Duration, filesScanned, hits int)
}

// NopDiagnostics discards all diagnostics. It is the default sink so
// the engine is testable without a logging host.
type NopDiagnostics struct{}

func (NopDiagnostics) SearchStarted(string, searchtypes.Mode, int) {}
func (NopDiagnostics) FileHits(string, int)                        {}
func (NopDiagnostics) Progress(int, int)                           {}
func (NopDiagnostics) FileWarning(string, error)                   {}
func (NopDiagnostics) CallbackWarning(string, any)                 {}
func (NopDiagnostics) Aborted(time.Duration, int)                  {}
func (NopDiagnostics) SearchCompleted(time.Duration, int, int)     {}

// debugDiagnostics writes diagnostics through the debug package.
type debugDiagnostics struct{}

// DebugDiagnostics returns a sink backed by the debug log writer.
func DebugDiagnostics() Diagnostics {
	return debugDiagnostics{}
}

func (debugDiagnostics) SearchStarted(query string, mode searchtypes.Mode, fileCount int) {
	debug.LogSearch("start query=%q mode=%s files=%d\n", query, mode, fileCount)
}

func (debugDiagnostics) FileHits(path string, count int) {
	debug.LogSearch("hits file=%s count=%d\n", path, count)
}

func (debugDiagnostics) Progress(processed, total int) {
	debug.LogSearch("progress %d/%d files\n", processed, total)
}

func (debugDiagnostics) FileWarning(path string, err error) {
	debug.LogSearch("warning file=%s: %v\n", path, err)
}

func (debugDiagnostics) CallbackWarning(path string, recovered any) {
	debug.LogSearch("warning batch callback panicked for %s: %v\n", path, recovered)
}

func (debugDiagnostics) Aborted(elapsed time.Duration, hitsSoFar int) {
	debug.LogSearch("abort after %s with %d hits\n", elapsed, hitsSoFar)
}

func (debugDiagnostics) SearchCompleted(elapsed time.Duration, filesScanned, hits int) {
	debug.LogSearch("done in %s files=%d hits=%d\n", elapsed, filesScanned, hits)
}
