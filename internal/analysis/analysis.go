// internal/analysis/analysis.go
// Package analysis runs the characterization engine end to end: it loads the
// inputs, computes every aggregate and verdict, and hands plain data to the
// report, export and chart sinks.
package analysis

import (
	"errors"

	"github.com/simani23/gpu-zip/internal/logging"
	"github.com/simani23/gpu-zip/internal/robust"
	"github.com/simani23/gpu-zip/internal/selector"
	"github.com/simani23/gpu-zip/internal/signal"
	"github.com/simani23/gpu-zip/internal/sweep"
)

// ErrNothingToAnalyze is returned when the input holds no valid record or
// sample at all.
var ErrNothingToAnalyze = errors.New("nothing to analyze")

// Options captures the inputs and policy knobs of an analysis run. Zero
// values select the defaults, so a Sigma of 0 means robust.DefaultSigma.
type Options struct {
	InputPath        string
	AnalysisPath     string
	OutputDir        string
	Plots            bool
	TopN             int
	StressTopN       int
	Sigma            float64
	Bands            signal.Bands
	GoodRatio        float64
	StressKey        string
	Tolerance        float64
	Unit             string
	Color            bool
	// PrepareOutputDir, when set, is called with OutputDir once the inputs
	// are loaded and before any chart is written.
	PrepareOutputDir func(dir string) error
}

const defaultStressTopN = 5

func (o Options) prepareOutput() error {
	if !o.Plots || o.OutputDir == "" || o.PrepareOutputDir == nil {
		return nil
	}
	return o.PrepareOutputDir(o.OutputDir)
}

func (o Options) withDefaults() Options {
	if o.Sigma <= 0 {
		o.Sigma = robust.DefaultSigma
	}
	if o.Bands == (signal.Bands{}) {
		o.Bands = signal.DefaultBands
	}
	if o.GoodRatio <= 0 {
		o.GoodRatio = o.Bands.Good
	}
	if o.StressKey == "" {
		o.StressKey = selector.DefaultStressKey
	}
	if o.Tolerance <= 0 {
		o.Tolerance = selector.DefaultTolerance
	}
	if o.StressTopN <= 0 {
		o.StressTopN = defaultStressTopN
	}
	if o.Unit == "" {
		o.Unit = "cycles"
	}
	return o
}

// BestConfig is the winning record with its grade.
type BestConfig struct {
	Result  sweep.ConfigResult `json:"result" yaml:"result"`
	Quality signal.Quality     `json:"quality" yaml:"quality"`
}

// ResultsAnalysis is everything derived from one results file.
type ResultsAnalysis struct {
	Source         string                     `json:"source,omitempty" yaml:"source,omitempty"`
	Summary        sweep.Summary              `json:"summary" yaml:"summary"`
	Top            []selector.Ranked          `json:"top" yaml:"top"`
	Best           BestConfig                 `json:"best" yaml:"best"`
	Effects        []sweep.ParameterEffect    `json:"effects" yaml:"effects"`
	Interesting    []string                   `json:"interesting" yaml:"interesting"`
	Importance     []sweep.RankedParam        `json:"importance" yaml:"importance"`
	Interaction    *sweep.Grid                `json:"interaction,omitempty" yaml:"interaction,omitempty"`
	Patterns       sweep.PatternReport        `json:"patterns" yaml:"patterns"`
	Stress         *selector.StressComparison `json:"stress,omitempty" yaml:"stress,omitempty"`
	Recommendation selector.Recommendation    `json:"recommendation" yaml:"recommendation"`
	Bands          signal.Bands               `json:"bands" yaml:"bands"`
}

// AnalyzeResults computes the results report. It returns ErrNothingToAnalyze,
// together with the record counts, when no record is valid.
func AnalyzeResults(results []sweep.ConfigResult, opts Options) (ResultsAnalysis, error) {
	opts = opts.withDefaults()
	summary, ok := sweep.Overview(results)
	a := ResultsAnalysis{Source: opts.InputPath, Summary: summary, Bands: opts.Bands}
	logging.LogStage("overview", opts.InputPath, summary)
	if !ok {
		return a, ErrNothingToAnalyze
	}

	best, err := selector.Best(results)
	if err != nil {
		return a, ErrNothingToAnalyze
	}
	a.Best = BestConfig{Result: best, Quality: opts.Bands.Classify(best.Ratio())}
	a.Top = selector.Top(results, opts.TopN)

	for _, param := range sweep.Params(results) {
		if effect, ok := sweep.Effect(results, param); ok {
			a.Effects = append(a.Effects, effect)
		}
	}
	a.Interesting = sweep.Interesting(results)
	a.Importance = sweep.RankImportance(results)
	if len(a.Importance) >= 2 {
		if grid, ok := sweep.Interaction(results, a.Importance[0].Param, a.Importance[1].Param); ok {
			a.Interaction = &grid
		}
	}
	logging.LogStage("importance", opts.InputPath, a.Importance)

	a.Patterns = sweep.Patterns(results, opts.GoodRatio)
	if cmp, err := selector.CompareStress(results, opts.StressKey, opts.Tolerance); err == nil {
		a.Stress = &cmp
	} else {
		logging.LogStage("stress", opts.StressKey, err)
	}
	a.Recommendation = selector.Recommend(best.Ratio(), opts.Bands)
	return a, nil
}

// interestingEffects returns the effects of the parameters worth plotting,
// in the order Interesting lists them.
func (a ResultsAnalysis) interestingEffects() []sweep.ParameterEffect {
	byParam := make(map[string]sweep.ParameterEffect, len(a.Effects))
	for _, e := range a.Effects {
		byParam[e.Param] = e
	}
	out := make([]sweep.ParameterEffect, 0, len(a.Interesting))
	for _, p := range a.Interesting {
		if e, ok := byParam[p]; ok {
			out = append(out, e)
		}
	}
	return out
}
