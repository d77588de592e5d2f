package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach runs action for every element with at most limit goroutines in
// flight (limit <= 0 means one per element). It waits for all of them and
// returns the first error; the context passed to action is cancelled once
// any action fails.
func ForEach[T any](ctx context.Context, items []T, limit int, action func(context.Context, T) error) error {
	if len(items) == 0 {
		return nil
	}
	if limit == 1 {
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := action(ctx, item); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return action(gctx, item)
		})
	}
	return g.Wait()
}

// Chunk splits items into at most n contiguous parts of near-equal size.
func Chunk[T any](items []T, n int) [][]T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}
	out := make([][]T, 0, n)
	size, rest := len(items)/n, len(items)%n
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rest {
			end++
		}
		out = append(out, items[start:end])
		start = end
	}
	return out
}
