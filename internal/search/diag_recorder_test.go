package search

import (
	"sync"
	"time"

	"github.com/haystackd/haystack/internal/searchtypes"
)

// recordingDiag captures diagnostics for assertions. It is
// mutex-protected because categorization warnings arrive from
// concurrent stat goroutines.
type recordingDiag struct {
	mu               sync.Mutex
	started          int
	fileHits         map[string]int
	progress         []int
	fileWarnings     []string
	callbackWarnings []string
	aborted          bool
	completed        bool
}

func newRecordingDiag() *recordingDiag {
	return &recordingDiag{fileHits: make(map[string]int)}
}

func (r *recordingDiag) SearchStarted(string, searchtypes.Mode, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *recordingDiag) FileHits(path string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fileHits[path] = count
}

func (r *recordingDiag) Progress(processed, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, processed)
}

func (r *recordingDiag) FileWarning(path string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fileWarnings = append(r.fileWarnings, path)
}

func (r *recordingDiag) CallbackWarning(path string, _ any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbackWarnings = append(r.callbackWarnings, path)
}

func (r *recordingDiag) Aborted(time.Duration, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aborted = true
}

func (r *recordingDiag) SearchCompleted(time.Duration, int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = true
}

func (r *recordingDiag) warningCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fileWarnings)
}
