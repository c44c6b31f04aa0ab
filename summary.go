package locusstats

import (
	"errors"
	"math/big"
	"sort"
)

// MinObservations is the smallest number of values a row needs for its sample
// variance and percentiles to be defined.
const MinObservations = 2

// ErrInsufficientData is returned when fewer than MinObservations values
// survive filtering.
var ErrInsufficientData = errors.New("not enough data")

// SummaryRecord is one line of the report.
type SummaryRecord struct {
	LocusID  string  `db:"locus_id"`
	N        int     `db:"n_observations"`
	Mean     float64 `db:"mean"`
	Variance float64 `db:"variance"`
	P5       float64 `db:"percentile_5"`
	P95      float64 `db:"percentile_95"`
}

// Summarize computes the mean, sample variance (n-1 divisor) and the 5th and
// 95th percentiles of values. values itself is left unsorted. The mean and
// variance are exact and rounded to float64 once, so a value whose decimal
// form ends in a tie is printed the same way whatever order the row arrives in.
func Summarize(locusID string, values ObservationSet) (SummaryRecord, error) {
	if len(values) < MinObservations {
		return SummaryRecord{}, ErrInsufficientData
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, variance := exactMoments(sorted)

	return SummaryRecord{
		LocusID:  locusID,
		N:        len(sorted),
		Mean:     mean,
		Variance: variance,
		P5:       PercentileInterpolate(sorted, 5),
		P95:      PercentileInterpolate(sorted, 95),
	}, nil
}

// exactMoments returns the mean and the n-1 sample variance of values, computed
// in rational arithmetic over the exact binary value of each element. values
// must hold at least two finite numbers.
func exactMoments(values []float64) (mean, variance float64) {
	xs := make([]*big.Rat, len(values))
	sum := new(big.Rat)
	for i, v := range values {
		xs[i] = new(big.Rat).SetFloat64(v)
		sum.Add(sum, xs[i])
	}

	m := new(big.Rat).Quo(sum, new(big.Rat).SetInt64(int64(len(xs))))

	ss := new(big.Rat)
	d := new(big.Rat)
	for _, x := range xs {
		d.Sub(x, m)
		ss.Add(ss, d.Mul(d, d))
	}
	ss.Quo(ss, new(big.Rat).SetInt64(int64(len(xs)-1)))

	mean, _ = m.Float64()
	variance, _ = ss.Float64()
	return mean, variance
}
