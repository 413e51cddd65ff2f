// internal/signal/ratio.go
// Package signal turns pairs of filtered sample sets into the timing ratio
// that measures how well two rendering patterns separate, and grades that
// ratio into quality bands.
package signal

import (
	"math"

	"github.com/simani23/gpu-zip/internal/robust"
	"github.com/simani23/gpu-zip/internal/timing"
)

// Comparison is the outcome of comparing a signal pattern against the
// baseline pattern for one configuration.
type Comparison struct {
	BlackTime float64 `json:"blackTime" yaml:"blackTime"`
	WhiteTime float64 `json:"whiteTime" yaml:"whiteTime"`
	Ratio     float64 `json:"ratio" yaml:"ratio"`
}

// Evaluate computes blackTime = mean(baseline), whiteTime = mean(signal) and
// their ratio. It reports false when no ratio exists: an empty baseline, a
// zero or non-finite baseline mean, or an empty signal set.
func Evaluate(baseline, signal []float64) (Comparison, bool) {
	if len(baseline) == 0 || len(signal) == 0 {
		return Comparison{}, false
	}
	black := robust.Mean(baseline)
	white := robust.Mean(signal)
	return FromMeans(black, white)
}

// FromMeans builds a Comparison from precomputed means.
func FromMeans(blackTime, whiteTime float64) (Comparison, bool) {
	if blackTime == 0 || !finite(blackTime) || !finite(whiteTime) {
		return Comparison{}, false
	}
	ratio := whiteTime / blackTime
	if !finite(ratio) {
		return Comparison{}, false
	}
	return Comparison{BlackTime: blackTime, WhiteTime: whiteTime, Ratio: ratio}, true
}

// Labeled is a named, already filtered sample set.
type Labeled struct {
	Label   string
	Samples []float64
}

// LabeledComparison is a Comparison of one label against the baseline label.
type LabeledComparison struct {
	Baseline string     `json:"baseline" yaml:"baseline"`
	Label    string     `json:"label" yaml:"label"`
	Result   Comparison `json:"result" yaml:"result"`
	Quality  Quality    `json:"quality" yaml:"quality"`
}

// EvaluateAll compares every entry of others against baseline, in order.
// Entries without a ratio are left out.
func EvaluateAll(baseline Labeled, others []Labeled, bands Bands) []LabeledComparison {
	out := make([]LabeledComparison, 0, len(others))
	for _, o := range others {
		if o.Label == baseline.Label {
			continue
		}
		cmp, ok := Evaluate(baseline.Samples, o.Samples)
		if !ok {
			continue
		}
		out = append(out, LabeledComparison{
			Baseline: baseline.Label,
			Label:    o.Label,
			Result:   cmp,
			Quality:  bands.Classify(cmp.Ratio),
		})
	}
	return out
}

// EvaluateSet compares every label of set against the baseline pattern
// carrying the same stressor count, so "Random@4" is measured against
// "Black@4". Labels without a matching baseline are left out. The set is
// expected to be filtered already.
func EvaluateSet(set *timing.SampleSet, baseline string, bands Bands) []LabeledComparison {
	var out []LabeledComparison
	for _, label := range set.Labels() {
		pattern, stressors := timing.SplitLabel(label)
		if pattern == baseline {
			continue
		}
		base := timing.Label(baseline, stressors)
		out = append(out, EvaluateAll(
			Labeled{Label: base, Samples: set.Samples(base)},
			[]Labeled{{Label: label, Samples: set.Samples(label)}},
			bands,
		)...)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
