package locusstats

import "math"

// PercentileInterpolate returns the percent-th percentile (0-100) of sorted by
// linear interpolation between the closest ranks. sorted must be in ascending
// order. It returns NaN for an empty slice.
func PercentileInterpolate(sorted []float64, percent float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}

	k := float64(n-1) * (percent / 100)
	f := int(math.Floor(k))
	c := f + 1

	if c >= n {
		return sorted[f]
	}

	return sorted[f] + (sorted[c]-sorted[f])*(k-float64(f))
}
