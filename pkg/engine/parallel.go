package engine

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/errors"
)

// Batch pairs an engine with one batch of experiences.
type Batch struct {
	Engine      *Engine
	Experiences []core.ExperienceRecord
}

// BatchResult is the outcome of one batch in a parallel run.
type BatchResult struct {
	Mode   string
	Result core.LearningResult
	Err    error
}

// LearnBatches runs independent batches on a bounded goroutine pool and
// returns results in batch order. Each engine still serializes its own Learn
// calls, so the same engine may appear in several batches.
func LearnBatches(ctx context.Context, batches []Batch, maxConcurrent int) []BatchResult {
	if maxConcurrent <= 0 {
		maxConcurrent = len(batches)
	}

	results := make([]BatchResult, len(batches))

	p := pool.New().WithMaxGoroutines(maxConcurrent)
	for i, batch := range batches {
		p.Go(func() {
			if batch.Engine == nil {
				results[i] = BatchResult{Err: errors.New(errors.InvalidInput, "batch has no engine")}
				return
			}
			result, err := batch.Engine.Learn(ctx, batch.Experiences)
			results[i] = BatchResult{
				Mode:   batch.Engine.Mode(),
				Result: result,
				Err:    err,
			}
		})
	}
	p.Wait()

	return results
}
