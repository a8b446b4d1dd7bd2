package fill

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent traversals over copies of one grid, one goroutine
// per copy. Run i uses seed cfg.Seed+i.
type Ensemble struct {
	base    *Grid
	cfg     Config
	numRuns int

	// NewMetrics, when set, supplies fresh metrics for each run.
	NewMetrics func(g *Grid) []Metric
}

func NewEnsemble(base *Grid, cfg Config, numRuns int) *Ensemble {
	return &Ensemble{base: base, cfg: cfg, numRuns: numRuns}
}

// Run returns one result per traversal, in seed order. The first failing run
// cancels the rest.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if e.numRuns < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRuns, e.numRuns)
	}
	results := make([]*Result, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			cfg := e.cfg
			cfg.Seed = e.cfg.Seed + int64(idx)

			grid := e.base.Clone()
			eng, err := New(grid, cfg)
			if err != nil {
				return err
			}
			if e.NewMetrics != nil {
				for _, m := range e.NewMetrics(grid) {
					eng.AddMetric(m)
				}
			}

			res, err := eng.Run(ctx, nil)
			results[idx] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
