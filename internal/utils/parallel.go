package utils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParallelFunc is a function that can be executed in parallel.
type ParallelFunc func(ctx context.Context) error

// RunParallel executes every function concurrently and waits for all of them.
// The returned slice is index-aligned with funcs; a nil entry means success.
// One failure never cancels the others, but cancelling ctx reaches all of them.
func RunParallel(ctx context.Context, funcs []ParallelFunc) []error {
	errs := make([]error, len(funcs))
	if len(funcs) == 0 {
		return errs
	}

	var g errgroup.Group
	for i, fn := range funcs {
		g.Go(func() error {
			errs[i] = fn(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return errs
}
