// Package evaluator estimates the expected value of a freeze decision by
// Monte Carlo simulation over redeals.
package evaluator

import (
	"context"
	rand "math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokergrid/internal/grid"
	"github.com/lox/pokergrid/internal/joker"
	"github.com/lox/pokergrid/internal/randutil"
	"github.com/lox/pokergrid/internal/score"
)

// DefaultSamples is the sample count used when none is configured.
const DefaultSamples = 200

// Evaluator runs redeal simulations against a fixed scorer.
type Evaluator struct {
	scorer  *score.Scorer
	samples int
	workers int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithSamples sets the number of simulated redeals per estimate.
func WithSamples(n int) Option {
	return func(e *Evaluator) { e.samples = n }
}

// WithWorkers sets the parallelism of an estimate. Values below 2 run
// the samples on the calling goroutine.
func WithWorkers(n int) Option {
	return func(e *Evaluator) { e.workers = n }
}

// New creates an evaluator. A nil scorer uses score defaults.
func New(scorer *score.Scorer, opts ...Option) *Evaluator {
	if scorer == nil {
		scorer = score.NewScorer(nil, score.DefaultTopK)
	}
	e := &Evaluator{scorer: scorer, samples: DefaultSamples, workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Samples returns the configured sample count.
func (e *Evaluator) Samples() int { return e.samples }

// EvaluateFreeze estimates the mean top-K total when the cells in frozen
// keep their current cards and every other cell is redealt. The caller's
// grid and pipeline are never mutated; each sample runs against fresh
// clones so growing jokers cannot leak state between samples or back
// into live play. The same seed always produces the same estimate.
//
// Zero configured samples estimates 0. Cancelling ctx aborts the run and
// returns the context error.
func (e *Evaluator) EvaluateFreeze(ctx context.Context, g *grid.Grid, frozen []grid.CellRef, pipeline *joker.Pipeline, seed int64) (float64, error) {
	if e.samples <= 0 {
		return 0, nil
	}

	base := g.Clone()
	base.ClearFreezes()
	for _, ref := range frozen {
		base.Freeze(ref)
	}

	if e.workers < 2 {
		sum, err := e.run(ctx, base, pipeline, randutil.Stream(seed, 0), e.samples)
		if err != nil {
			return 0, err
		}
		return sum / float64(e.samples), nil
	}

	workers := min(e.workers, e.samples)
	sums := make([]float64, workers)

	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		// Spread the remainder over the first few workers.
		n := e.samples / workers
		if w < e.samples%workers {
			n++
		}
		eg.Go(func() error {
			sum, err := e.run(ctx, base, pipeline, randutil.Stream(seed, w), n)
			if err != nil {
				return err
			}
			sums[w] = sum
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	var total float64
	for _, s := range sums {
		total += s
	}
	return total / float64(e.samples), nil
}

// BestFreeze evaluates each candidate freeze set and returns the index
// of the highest estimate along with all estimates. Candidates are
// evaluated with decorrelated seeds derived from the base seed.
func (e *Evaluator) BestFreeze(ctx context.Context, g *grid.Grid, candidates [][]grid.CellRef, pipeline *joker.Pipeline, seed int64) (int, []float64, error) {
	if len(candidates) == 0 {
		return -1, nil, nil
	}
	evs := make([]float64, len(candidates))
	best := 0
	for i, cand := range candidates {
		ev, err := e.EvaluateFreeze(ctx, g, cand, pipeline, seed+int64(i))
		if err != nil {
			return -1, nil, err
		}
		evs[i] = ev
		if ev > evs[best] {
			best = i
		}
	}
	return best, evs, nil
}

func (e *Evaluator) run(ctx context.Context, base *grid.Grid, pipeline *joker.Pipeline, rng *rand.Rand, n int) (float64, error) {
	var sum float64
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		sample := base.Clone()
		sample.Deal(rng)

		var p *joker.Pipeline
		if pipeline != nil {
			p = pipeline.Clone()
		}
		sum += float64(e.scorer.ScoreGrid(sample, p).Total)
	}
	return sum, nil
}
