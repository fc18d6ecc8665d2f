package kernel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forEachRowRange splits [0,rows) into disjoint row ranges and runs fn
// concurrently over each, one goroutine per range. Spec §5 allows
// parallelizing the inner per-pixel loops of convolution/downsample/
// upsample/merge as long as row partitions are disjoint writes; this is
// the shared helper every such loop in this package uses.
func forEachRowRange(rows int, fn func(start, end int)) {
	if rows <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		fn(0, rows)
		return
	}

	chunk := (rows + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < rows; start += chunk {
		start := start
		end := start + chunk
		if end > rows {
			end = rows
		}
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
