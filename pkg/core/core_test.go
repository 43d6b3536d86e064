package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPayload(t *testing.T) {
	tests := []struct {
		name string
		data interface{}
		want PayloadShape
	}{
		{"string", "hello", ShapeText},
		{"float", 3.14, ShapeNumeric},
		{"int", 42, ShapeNumeric},
		{"interface slice", []interface{}{1, 2, 3}, ShapeSequence},
		{"float slice", []float64{1, 2, 3}, ShapeSequence},
		{"string slice", []string{"a", "b"}, ShapeSequence},
		{"map", map[string]interface{}{"k": "v"}, ShapeUnknown},
		{"nil", nil, ShapeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPayload(tt.data))
		})
	}
}

func TestExperienceLabeled(t *testing.T) {
	labeled := ExperienceRecord{Data: "x", Confidence: Conf(0.7)}
	unlabeled := ExperienceRecord{Data: "x"}

	assert.True(t, labeled.Labeled())
	assert.False(t, unlabeled.Labeled())
	assert.Equal(t, 0.7, *labeled.Confidence)
}

func TestModeRegistry(t *testing.T) {
	registry := NewModeRegistry()

	spec := ModeSpec{Name: "test_mode", Prefix: "tm"}
	require.NoError(t, registry.Register("test_mode", func() ModeSpec { return spec }))

	created, err := registry.Create("test_mode")
	require.NoError(t, err)
	assert.Equal(t, "test_mode", created.Name)
	assert.Equal(t, "tm", created.Prefix)

	_, err = registry.Create("absent_mode")
	assert.Error(t, err)

	assert.Contains(t, registry.List(), "test_mode")
}

func TestModeRegistryRejectsInvalid(t *testing.T) {
	registry := NewModeRegistry()

	assert.Error(t, registry.Register("", func() ModeSpec { return ModeSpec{} }))
	assert.Error(t, registry.Register("x", nil))
}

func TestSeededRandSourceIsReproducible(t *testing.T) {
	a := NewSeededRandSource(99)
	b := NewSeededRandSource(99)

	for i := 0; i < 10; i++ {
		av, err := a.Float64()
		require.NoError(t, err)
		bv, err := b.Float64()
		require.NoError(t, err)
		assert.Equal(t, av, bv)

		ai, err := a.IntN(7)
		require.NoError(t, err)
		bi, err := b.IntN(7)
		require.NoError(t, err)
		assert.Equal(t, ai, bi)
		assert.GreaterOrEqual(t, ai, 0)
		assert.Less(t, ai, 7)
	}
}

func TestDrawEventConfidenceRange(t *testing.T) {
	r := NewSeededRandSource(1)
	for i := 0; i < 100; i++ {
		v, err := DrawEventConfidence(r)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.5)
		assert.Less(t, v, 1.0)
	}
}

func TestEventVariants(t *testing.T) {
	adaptation := &AdaptationEvent{ID: "e1", TaskID: "t1", Type: ParameterUpdate}
	drift := &DriftDetection{ID: "e2", TaskID: "t2", Type: ConceptDrift}
	query := &QueryResult{ID: "e3", TaskID: "t3"}

	assert.Equal(t, KindAdaptation, adaptation.Kind())
	assert.Equal(t, KindDrift, drift.Kind())
	assert.Equal(t, KindQuery, query.Kind())

	assert.Equal(t, "t1", adaptation.EventTaskID())
	assert.Equal(t, "e2", drift.EventID())
	assert.Equal(t, "t3", query.EventTaskID())
}
