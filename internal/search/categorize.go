package search

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	haystackerrors "github.com/haystackd/haystack/internal/errors"
	"github.com/haystackd/haystack/internal/searchtypes"
)

// Categorize stats the candidate paths in fixed-size batches with
// bounded concurrency and partitions them by LargeFileThreshold into
// regular (at or under) and large (over) groups, preserving relative
// order within each group. A stat failure never aborts the search: the
// file's size defaults to 0, landing it in the regular group, and a
// warning is reported through the diagnostics sink.
func Categorize(ctx context.Context, paths []string, diag Diagnostics) (regular, large []searchtypes.Candidate) {
	if len(paths) == 0 {
		return nil, nil
	}

	sizes := make([]int64, len(paths))

	for batchStart := 0; batchStart < len(paths); batchStart += StatBatchSize {
		batchEnd := batchStart + StatBatchSize
		if batchEnd > len(paths) {
			batchEnd = len(paths)
		}

		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(StatConcurrency)
		for i := batchStart; i < batchEnd; i++ {
			i := i
			g.Go(func() error {
				info, err := os.Stat(paths[i])
				if err != nil {
					diag.FileWarning(paths[i], haystackerrors.NewFileError("stat", paths[i], err))
					sizes[i] = 0
					return nil
				}
				sizes[i] = info.Size()
				return nil
			})
		}
		// Workers never return errors; Wait only provides the batch barrier.
		_ = g.Wait()
	}

	for i, path := range paths {
		cand := searchtypes.Candidate{Path: path, Size: sizes[i]}
		if cand.Size > LargeFileThreshold {
			large = append(large, cand)
		} else {
			regular = append(regular, cand)
		}
	}
	return regular, large
}
