// Package aggregate fans out a named set of store sub-queries, runs them
// concurrently, and merges the results into a single mapping keyed by
// sub-query name. Detail pages and the dashboard are assembled this way:
// the merge is keyed by name, never by arrival order.
package aggregate

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Query is one named sub-query. Each runs on its own goroutine with a
// context that is canceled as soon as any sibling fails.
type Query func(ctx context.Context) (interface{}, error)

// Results maps sub-query names to their results.
type Results map[string]interface{}

// Run executes every query concurrently and waits for all of them. If any
// query fails, Run returns that error (first failure wins) and the partial
// results are discarded.
func Run(ctx context.Context, queries map[string]Query) (Results, error) {
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	results := make(Results, len(queries))

	for name, query := range queries {
		g.Go(func() error {
			result, err := query(gctx)
			if err != nil {
				return errors.WithStack(err)
			}
			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
