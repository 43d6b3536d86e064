package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/adapt-go/internal/testutil"
	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/errors"
)

func TestLearnBatchesPreservesOrder(t *testing.T) {
	batch := []core.ExperienceRecord{{Data: "hello", Confidence: core.Conf(0.8)}}

	batches := make([]Batch, 8)
	for i := range batches {
		batches[i] = Batch{
			Engine:      New(newTestSpec(), WithRandSource(&testutil.FixedSource{Value: 0.1})),
			Experiences: batch,
		}
	}

	results := LearnBatches(context.Background(), batches, 4)
	require.Len(t, results, 8)

	for i, res := range results {
		require.NoError(t, res.Err, "batch %d", i)
		assert.Equal(t, "test_mode", res.Mode)
		assert.InDelta(t, 0.806, res.Result.Confidence, 1e-9)
	}
}

func TestLearnBatchesSharedEngineSerializes(t *testing.T) {
	// Many concurrent batches on one engine; serialization means every run
	// completes and every task survives with a distinct id.
	e := New(newTestSpec(),
		WithRandSource(core.NewSeededRandSource(3)),
		WithTaskCapacity(100))

	batches := make([]Batch, 16)
	for i := range batches {
		batches[i] = Batch{
			Engine:      e,
			Experiences: []core.ExperienceRecord{{Data: "hello"}},
		}
	}

	results := LearnBatches(context.Background(), batches, 8)
	for i, res := range results {
		require.NoError(t, res.Err, "batch %d", i)
	}

	tasks := e.Tasks()
	assert.Len(t, tasks, 16)
	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
}

func TestLearnBatchesReportsPerBatchErrors(t *testing.T) {
	good := New(newTestSpec(), WithRandSource(&testutil.FixedSource{Value: 0.1}))
	broken := New(newTestSpec(), WithRandSource(&testutil.FailingSource{}))

	batch := []core.ExperienceRecord{{Data: "hello"}}
	results := LearnBatches(context.Background(), []Batch{
		{Engine: good, Experiences: batch},
		{Engine: broken, Experiences: batch},
		{Engine: nil},
	}, 0)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, errors.LearningFailed, errors.CodeOf(results[1].Err))
	assert.Equal(t, errors.InvalidInput, errors.CodeOf(results[2].Err))
}
