package modes

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/adapt-go/internal/testutil"
	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/engine"
)

func TestAllModesRegistered(t *testing.T) {
	registry := core.GetModeRegistry()

	for _, name := range []string{
		ActiveName, OnlineName, AdaptiveName,
		MetaName, TransferName, ReinforcementName,
	} {
		spec, err := registry.Create(name)
		require.NoError(t, err, "mode %s", name)
		assert.Equal(t, name, spec.Name)
		assert.NotEmpty(t, spec.Prefix)
		assert.NotNil(t, spec.Strategies)
		assert.NotNil(t, spec.NewEvent)
	}
}

func TestActiveLearningMixedBatch(t *testing.T) {
	// Ten text experiences, half labeled, must collapse into a single
	// uncertainty-family task with the labeled/unlabeled split preserved.
	var batch []core.ExperienceRecord
	for i := 0; i < 5; i++ {
		batch = append(batch, core.ExperienceRecord{Data: "sample", Confidence: core.Conf(0.8)})
	}
	for i := 0; i < 5; i++ {
		batch = append(batch, core.ExperienceRecord{Data: "sample"})
	}

	e := engine.New(Active(), engine.WithRandSource(&testutil.SequenceSource{
		Floats: []float64{0.9, 0.6, 0.6, 0.6},
		Ints:   []int{0, 1, 2},
	}))

	result, err := e.Learn(context.Background(), batch)
	require.NoError(t, err)
	assert.True(t, result.Success)

	require.Len(t, e.Tasks(), 1)
	task := e.Tasks()[0]
	assert.Equal(t, UncertaintySampling, task.Type)
	assert.True(t, strings.HasPrefix(task.ID, "al-"))
	assert.Len(t, task.Labeled, 5)
	assert.Len(t, task.Unlabeled, 5)

	// Labeled half is uniform at 0.8, so the pool reads stable and accurate
	// and selection lands on diversity sampling.
	require.Len(t, e.Performances(), 1)
	record := e.Performances()[0]
	assert.Equal(t, DiversityBased, record.StrategyType)

	// Gate draw 0.9 clears the 0.3 threshold and issues one query.
	require.Len(t, e.Events(), 1)
	query, ok := e.Events()[0].(*core.QueryResult)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, query.SelectedSamples)
	assert.Equal(t, 3, record.SamplesQueried)
	for _, idx := range query.SelectedSamples {
		assert.Less(t, idx, len(task.Unlabeled))
	}
}

func TestActiveLearningNoUnlabeledPool(t *testing.T) {
	// A fully labeled batch has nothing to query; the gate fires but no
	// event is produced.
	e := engine.New(Active(), engine.WithRandSource(&testutil.FixedSource{Value: 0.9}))

	_, err := e.Learn(context.Background(), []core.ExperienceRecord{
		{Data: "sample", Confidence: core.Conf(0.9)},
	})
	require.NoError(t, err)
	assert.Empty(t, e.Events())
}

func TestOnlineLearningTaskTyping(t *testing.T) {
	e := engine.New(Online(), engine.WithRandSource(&testutil.FixedSource{Value: 0.1}))

	_, err := e.Learn(context.Background(), []core.ExperienceRecord{
		{Data: "hello", Confidence: core.Conf(0.8)},
		{Data: []interface{}{1.0, 2.0, 3.0}},
	})
	require.NoError(t, err)

	tasks := e.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, StreamingClassification, tasks[0].Type)
	assert.Equal(t, AdaptiveClustering, tasks[1].Type)
	assert.Empty(t, e.Events())
}

func TestOnlineLearningDriftDegradesEfficiency(t *testing.T) {
	batch := []core.ExperienceRecord{{Data: "hello", Confidence: core.Conf(0.8)}}

	// Gate 0.9 clears the 0.5 threshold; Ints[0] picks concept drift.
	drifted := engine.New(Online(), engine.WithRandSource(&testutil.SequenceSource{
		Floats: []float64{0.9, 0.7, 0.8},
		Ints:   []int{0},
	}))
	_, err := drifted.Learn(context.Background(), batch)
	require.NoError(t, err)

	require.Len(t, drifted.Events(), 1)
	drift, ok := drifted.Events()[0].(*core.DriftDetection)
	require.True(t, ok)
	assert.Equal(t, core.ConceptDrift, drift.Type)
	assert.True(t, drift.AdaptationRequired)

	require.Len(t, drifted.Performances(), 1)
	record := drifted.Performances()[0]
	assert.Equal(t, IncrementalSGD, record.StrategyType)
	assert.Equal(t, 1, record.DriftsDetected)
	// 0.8 baseline * 0.75 strategy confidence * 0.85 drift penalty.
	assert.InDelta(t, 0.51, record.Efficiency(), 1e-9)

	// Same draws but Ints[3] lands on no_drift: no penalty, no counter.
	quiet := engine.New(Online(), engine.WithRandSource(&testutil.SequenceSource{
		Floats: []float64{0.9, 0.7, 0.8},
		Ints:   []int{3},
	}))
	_, err = quiet.Learn(context.Background(), batch)
	require.NoError(t, err)

	require.Len(t, quiet.Performances(), 1)
	assert.Equal(t, 0, quiet.Performances()[0].DriftsDetected)
	assert.InDelta(t, 0.6, quiet.Performances()[0].Efficiency(), 1e-9)
	assert.Greater(t, quiet.Performances()[0].Efficiency(), record.Efficiency())
}

func TestAdaptiveLearningAdaptationImprovesEfficiency(t *testing.T) {
	batch := []core.ExperienceRecord{{Data: "hello", Confidence: core.Conf(0.8)}}

	adapted := engine.New(Adaptive(), engine.WithRandSource(&testutil.SequenceSource{
		Floats: []float64{0.9, 0.7, 0.8},
		Ints:   []int{0},
	}))
	_, err := adapted.Learn(context.Background(), batch)
	require.NoError(t, err)

	require.Len(t, adapted.Events(), 1)
	event, ok := adapted.Events()[0].(*core.AdaptationEvent)
	require.True(t, ok)
	assert.Equal(t, core.ParameterUpdate, event.Type)
	assert.True(t, event.AdaptationRequired)

	require.Len(t, adapted.Performances(), 1)
	record := adapted.Performances()[0]
	assert.Equal(t, GradientAdaptation, record.StrategyType)
	assert.Equal(t, 1, record.Adaptations)
	// 0.8 baseline * 0.8 strategy confidence * 1.15 adaptation lift.
	assert.InDelta(t, 0.736, record.Efficiency(), 1e-9)

	// Below the 0.4 gate nothing fires and the record stays at baseline.
	quiet := engine.New(Adaptive(), engine.WithRandSource(&testutil.FixedSource{Value: 0.1}))
	_, err = quiet.Learn(context.Background(), batch)
	require.NoError(t, err)

	require.Len(t, quiet.Performances(), 1)
	assert.InDelta(t, 0.64, quiet.Performances()[0].Efficiency(), 1e-9)
	assert.Greater(t, record.Efficiency(), quiet.Performances()[0].Efficiency())
}

func TestMetaLearningSmallGroupPicksMetricLearner(t *testing.T) {
	e := engine.New(Meta(), engine.WithRandSource(&testutil.FixedSource{Value: 0.1}))

	_, err := e.Learn(context.Background(), []core.ExperienceRecord{
		{Data: "hello", Confidence: core.Conf(0.8)},
	})
	require.NoError(t, err)

	require.Len(t, e.Tasks(), 1)
	assert.Equal(t, FewShotAdaptation, e.Tasks()[0].Type)

	require.Len(t, e.Performances(), 1)
	assert.Equal(t, MetricLearning, e.Performances()[0].StrategyType)
}

func TestTransferLearningHighComplexityGoesAdversarial(t *testing.T) {
	e := engine.New(Transfer(), engine.WithRandSource(&testutil.FixedSource{Value: 0.1}))

	// A bulky unlabeled payload reads as a wide domain gap.
	_, err := e.Learn(context.Background(), []core.ExperienceRecord{
		{Data: strings.Repeat("x", 40)},
	})
	require.NoError(t, err)

	require.Len(t, e.Performances(), 1)
	assert.Equal(t, DomainAdversarial, e.Performances()[0].StrategyType)
}

func TestReinforcementLearningActionTagging(t *testing.T) {
	e := engine.New(Reinforcement(), engine.WithRandSource(&testutil.FixedSource{Value: 0.1}))

	_, err := e.Learn(context.Background(), []core.ExperienceRecord{
		{Data: map[string]interface{}{"pos": 1}, Action: "move_left"},
		{Data: 0.75},
	})
	require.NoError(t, err)

	tasks := e.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, PolicyLearning, tasks[0].Type)
	assert.Equal(t, ValueEstimation, tasks[1].Type)
}

func TestMetadataOverridesShape(t *testing.T) {
	e := engine.New(Online(), engine.WithRandSource(&testutil.FixedSource{Value: 0.1}))

	_, err := e.Learn(context.Background(), []core.ExperienceRecord{
		{Data: "hello", Metadata: map[string]interface{}{"taskType": string(ConceptTracking)}},
	})
	require.NoError(t, err)

	require.Len(t, e.Tasks(), 1)
	assert.Equal(t, ConceptTracking, e.Tasks()[0].Type)
}
