package search

// Search engine constants
const (
	// Worker concurrency tiers
	RegularConcurrency     = 16 // workers for files at or under the size threshold
	LargeConcurrency       = 4  // workers for files over the size threshold
	SingleGroupConcurrency = 8  // workers when size categorization is disabled

	// LargeFileThreshold separates regular from large files.
	// Rationale: files over 1 MiB risk excessive memory use when read
	// whole and split into lines at full concurrency, so they are
	// scanned with a reduced worker count.
	LargeFileThreshold = 1 << 20

	// StatBatchSize is how many candidate files are stat'ed per batch
	// during categorization.
	StatBatchSize = 100

	// StatConcurrency bounds concurrent stat calls within one batch.
	StatConcurrency = 16

	// PreviewRadius is the number of characters kept on each side of a
	// hit in its preview string.
	PreviewRadius = 40

	// MaxSymbolsPerLine caps the inline symbols extracted for one hit.
	MaxSymbolsPerLine = 20
)
