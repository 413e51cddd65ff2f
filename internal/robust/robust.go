// internal/robust/robust.go
// Package robust holds the outlier filtering and summary statistics shared by
// every analysis entry point.
//
// Standard deviations are sample standard deviations (n-1 denominator)
// everywhere in this package. A single value has a standard deviation of 0.
package robust

import (
	"math"

	mstats "github.com/montanaflynn/stats"

	"github.com/aclements/go-moremath/stats"
)

// DefaultSigma is the outlier cut-off, in standard deviations from the mean,
// used when the caller does not configure one.
const DefaultSigma = 4.0

// AggregateStat summarizes a filtered sample set.
type AggregateStat struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stdev" yaml:"stdev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Median float64 `json:"median" yaml:"median"`
	N      int     `json:"n" yaml:"n"`
}

// Cleaned is the outcome of Clean: the surviving samples plus what was
// removed on the way.
type Cleaned struct {
	Samples     []float64
	NonPositive int
	Outliers    int
	// FellBack is set when the sigma filter rejected every sample and the
	// positive-only set was kept instead.
	FellBack bool
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stats.Mean(xs)
}

// StdDev returns the sample standard deviation of xs. Empty and
// single-element inputs yield 0.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stats.StdDev(xs)
}

// PositiveOnly returns the values of xs that are strictly greater than zero,
// in their original order. Counter wrap-around produces non-positive deltas
// that would otherwise bias the mean.
func PositiveOnly(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if x > 0 {
			out = append(out, x)
		}
	}
	return out
}

// Filter keeps exactly the samples with |x-mean| <= sigma*stdev, preserving
// order. When the standard deviation is zero every sample passes. If nothing
// would survive, the unfiltered input is returned.
func Filter(xs []float64, sigma float64) []float64 {
	out, _ := filter(xs, sigma)
	return out
}

func filter(xs []float64, sigma float64) ([]float64, bool) {
	if len(xs) == 0 {
		return []float64{}, false
	}
	mean := Mean(xs)
	sd := StdDev(xs)
	if sd == 0 {
		return append([]float64(nil), xs...), false
	}
	limit := sigma * sd
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if math.Abs(x-mean) <= limit {
			out = append(out, x)
		}
	}
	if len(out) == 0 {
		return append([]float64(nil), xs...), true
	}
	return out, false
}

// Clean drops non-positive samples and then applies the sigma filter.
func Clean(xs []float64, sigma float64) Cleaned {
	positive := PositiveOnly(xs)
	filtered, fellBack := filter(positive, sigma)
	return Cleaned{
		Samples:     filtered,
		NonPositive: len(xs) - len(positive),
		Outliers:    len(positive) - len(filtered),
		FellBack:    fellBack,
	}
}

// Summarize computes the aggregate statistics of xs. It reports false for an
// empty input instead of producing NaN fields.
func Summarize(xs []float64) (AggregateStat, bool) {
	if len(xs) == 0 {
		return AggregateStat{}, false
	}
	lo, hi := stats.Bounds(xs)
	median, err := mstats.Median(xs)
	if err != nil {
		median = lo
	}
	return AggregateStat{
		Mean:   Mean(xs),
		StdDev: StdDev(xs),
		Min:    lo,
		Max:    hi,
		Median: median,
		N:      len(xs),
	}, true
}
