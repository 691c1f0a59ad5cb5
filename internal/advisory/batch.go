package advisory

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ComputeBatch computes advice for many scenarios in parallel. Results are
// index-aligned with the input. The first validation error aborts the batch,
// and cancellation of ctx discards any partial work.
func (e *Engine) ComputeBatch(ctx context.Context, scenarios []domain.TaxScenario) ([]*domain.AdvisoryResult, error) {
	results := make([]*domain.AdvisoryResult, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range scenarios {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.ComputeTaxAdvice(scenarios[i])
			if err != nil {
				return fmt.Errorf("scenario %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
