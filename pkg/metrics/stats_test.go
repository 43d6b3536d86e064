package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		fallback float64
		want     float64
	}{
		{
			name:     "Empty uses fallback",
			values:   nil,
			fallback: 0.5,
			want:     0.5,
		},
		{
			name:     "Single value",
			values:   []float64{0.8},
			fallback: 0.5,
			want:     0.8,
		},
		{
			name:     "Multiple values",
			values:   []float64{0.2, 0.4, 0.6},
			fallback: 0.5,
			want:     0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Mean(tt.values, tt.fallback), 1e-9)
		})
	}
}

func TestVariance(t *testing.T) {
	assert.Equal(t, 0.0, Variance(nil))
	assert.Equal(t, 0.0, Variance([]float64{0.7}))
	assert.InDelta(t, 0.25, Variance([]float64{0, 1, 0, 1}), 1e-9)
	assert.Equal(t, 0.0, Variance([]float64{0.3, 0.3, 0.3}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.1))
	assert.Equal(t, 1.0, Clamp01(1.7))
	assert.Equal(t, 0.42, Clamp01(0.42))
	assert.Equal(t, 2.0, Clamp(5, 1, 2))
	assert.Equal(t, 1.0, Clamp(0.5, 1, 2))
}
