package corpus

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of converting one file.
type Result struct {
	Source      string
	Destination string
	Err         error
}

// Convert turns one source path into a destination file.
type Convert func(src string) (string, error)

// ProcessAll runs fn over paths with at most workers concurrent
// conversions. A failed file does not stop the others. Results keep the
// order of paths; files not started before ctx is done carry ctx's error.
func ProcessAll(ctx context.Context, paths []string, workers int, fn Convert) []Result {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(paths))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, src := range paths {
		results[i].Source = src
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			dst, err := fn(src)
			results[i].Destination = dst
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()
	return results
}
