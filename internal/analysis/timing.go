// internal/analysis/timing.go
package analysis

import (
	"github.com/simani23/gpu-zip/internal/chart"
	"github.com/simani23/gpu-zip/internal/logging"
	"github.com/simani23/gpu-zip/internal/robust"
	"github.com/simani23/gpu-zip/internal/signal"
	"github.com/simani23/gpu-zip/internal/timing"
)

// LabelSummary is the cleaned view of one label's samples.
type LabelSummary struct {
	Label       string               `json:"label" yaml:"label"`
	Raw         int                  `json:"raw" yaml:"raw"`
	NonPositive int                  `json:"nonPositive" yaml:"nonPositive"`
	Outliers    int                  `json:"outliers" yaml:"outliers"`
	FellBack    bool                 `json:"fellBack,omitempty" yaml:"fellBack,omitempty"`
	Stat        robust.AggregateStat `json:"stat" yaml:"stat"`
}

// TimingAnalysis is everything derived from a batch of raw timing logs.
type TimingAnalysis struct {
	Unit        string                     `json:"unit" yaml:"unit"`
	Sigma       float64                    `json:"sigma" yaml:"sigma"`
	Baseline    string                     `json:"baseline" yaml:"baseline"`
	Labels      []LabelSummary             `json:"labels" yaml:"labels"`
	Comparisons []signal.LabeledComparison `json:"comparisons" yaml:"comparisons"`
	Problems    []string                   `json:"problems,omitempty" yaml:"problems,omitempty"`

	cleaned *timing.SampleSet
}

// Cleaned returns the filtered samples the analysis was computed from.
func (a TimingAnalysis) Cleaned() *timing.SampleSet { return a.cleaned }

// AnalyzeTiming cleans every label of set and compares each label with the
// baseline carrying the same stressor count. The baseline pattern is
// Compressible when present and Black otherwise. problems are the files that
// could not be loaded; they are reported, never fatal.
func AnalyzeTiming(set *timing.SampleSet, problems []timing.FileError, opts Options) (TimingAnalysis, error) {
	opts = opts.withDefaults()
	a := TimingAnalysis{Unit: opts.Unit, Sigma: opts.Sigma, Baseline: timing.Black, cleaned: timing.NewSampleSet()}
	for _, p := range problems {
		a.Problems = append(a.Problems, p.Error())
		logging.LogStage("load", p.Path, p.Err)
	}
	if set == nil || set.Len() == 0 {
		return a, ErrNothingToAnalyze
	}

	total := 0
	for _, label := range set.Labels() {
		raw := set.Samples(label)
		cleaned := robust.Clean(raw, opts.Sigma)
		summary := LabelSummary{
			Label:       label,
			Raw:         len(raw),
			NonPositive: cleaned.NonPositive,
			Outliers:    cleaned.Outliers,
			FellBack:    cleaned.FellBack,
		}
		summary.Stat, _ = robust.Summarize(cleaned.Samples)
		a.Labels = append(a.Labels, summary)
		a.cleaned.Add(label, cleaned.Samples...)
		total += len(cleaned.Samples)
		logging.LogStage("clean", label, summary)
	}
	if total == 0 {
		return a, ErrNothingToAnalyze
	}

	a.Baseline = baselinePattern(set.Labels())
	a.Comparisons = signal.EvaluateSet(a.cleaned, a.Baseline, opts.Bands)
	logging.LogStage("compare", a.Baseline, a.Comparisons)
	return a, nil
}

// baselinePattern picks the compressible pattern the other labels are
// measured against: Compressible when any label uses it, Black otherwise.
func baselinePattern(labels []string) string {
	baseline := timing.Black
	for _, label := range labels {
		pattern, _ := timing.SplitLabel(label)
		if timing.IsBaseline(pattern) && pattern != timing.Black {
			baseline = pattern
		}
	}
	return baseline
}

func (a TimingAnalysis) chartSeries() []chart.Series {
	if a.cleaned == nil {
		return nil
	}
	out := make([]chart.Series, 0, a.cleaned.Len())
	for _, label := range a.cleaned.Labels() {
		out = append(out, chart.Series{Label: label, Samples: a.cleaned.Samples(label)})
	}
	return out
}
