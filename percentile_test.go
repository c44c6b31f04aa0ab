package locusstats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentileInterpolateTwoPoints(t *testing.T) {
	sorted := []float64{10.0, 20.0}

	assert.InDelta(t, 10.5, PercentileInterpolate(sorted, 5), 1e-12)
	assert.InDelta(t, 19.5, PercentileInterpolate(sorted, 95), 1e-12)
}

func TestPercentileInterpolate(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		percent  float64
		expected float64
	}{
		{0, 1},
		{25, 2},
		{50, 3},
		{60, 3.4},
		{5, 1.2},
		{95, 4.8},
		{100, 5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, PercentileInterpolate(sorted, tt.percent), 1e-12, "percent %g", tt.percent)
	}
}

func TestPercentileInterpolateLastIndex(t *testing.T) {
	// k lands exactly on the final element, so there is no upper neighbor.
	assert.Equal(t, 7.0, PercentileInterpolate([]float64{3, 7}, 100))
	assert.Equal(t, 42.0, PercentileInterpolate([]float64{42}, 5))
	assert.Equal(t, 42.0, PercentileInterpolate([]float64{42}, 95))
}

func TestPercentileInterpolateEmpty(t *testing.T) {
	assert.True(t, math.IsNaN(PercentileInterpolate(nil, 50)))
}
