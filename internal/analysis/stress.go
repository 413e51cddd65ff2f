// internal/analysis/stress.go
package analysis

import (
	"errors"

	"github.com/simani23/gpu-zip/internal/logging"
	"github.com/simani23/gpu-zip/internal/selector"
	"github.com/simani23/gpu-zip/internal/sweep"
)

// VarietyParams are the stress knobs whose coverage the stress report checks.
var VarietyParams = []string{"num_workers", "bigint_digits"}

// unknownValue stands in for a stress knob a record does not carry.
var unknownValue = sweep.String("unknown")

// Variety lists the distinct values one stress knob took across the stress
// runs.
type Variety struct {
	Param  string        `json:"param" yaml:"param"`
	Values []sweep.Value `json:"values" yaml:"values"`
	// NeedsVariety is set when only a single value was tried. Runs without
	// the knob count as the value "unknown".
	NeedsVariety bool `json:"needsVariety" yaml:"needsVariety"`
}

// StressAnalysis is the stress-effectiveness view of a results file.
type StressAnalysis struct {
	Source         string                     `json:"source,omitempty" yaml:"source,omitempty"`
	Summary        sweep.Summary              `json:"summary" yaml:"summary"`
	Comparison     *selector.StressComparison `json:"comparison,omitempty" yaml:"comparison,omitempty"`
	Warning        string                     `json:"warning,omitempty" yaml:"warning,omitempty"`
	TopStress      []selector.Ranked          `json:"topStress" yaml:"topStress"`
	Variety        []Variety                  `json:"variety" yaml:"variety"`
	Top            []selector.Ranked          `json:"top" yaml:"top"`
	StressKey      string                     `json:"stressKey" yaml:"stressKey"`
	Recommendation selector.Recommendation    `json:"recommendation" yaml:"recommendation"`
}

// AnalyzeStress compares stress runs with control runs. A missing side is
// reported as a warning; the remaining sections are still computed.
func AnalyzeStress(results []sweep.ConfigResult, opts Options) (StressAnalysis, error) {
	opts = opts.withDefaults()
	summary, ok := sweep.Overview(results)
	a := StressAnalysis{Source: opts.InputPath, Summary: summary, StressKey: opts.StressKey}
	if !ok {
		return a, ErrNothingToAnalyze
	}

	cmp, err := selector.CompareStress(results, opts.StressKey, opts.Tolerance)
	switch {
	case err == nil:
		a.Comparison = &cmp
	case errors.Is(err, selector.ErrNoStressRuns):
		a.Warning = "No tests with " + opts.StressKey + "=1 found; memory stress may not have been tested."
	case errors.Is(err, selector.ErrNoControlRuns):
		a.Warning = "No tests without stress found; cannot compare stress effectiveness."
	default:
		return a, err
	}
	logging.LogStage("stress", opts.StressKey, cmp)

	part := selector.Partition(results, opts.StressKey)
	a.TopStress = selector.Top(part.Stress, opts.StressTopN)
	if len(part.Stress) > 0 {
		for _, param := range VarietyParams {
			values := varietyValues(part.Stress, param)
			a.Variety = append(a.Variety, Variety{
				Param:        param,
				Values:       values,
				NeedsVariety: len(values) <= 1,
			})
		}
	}
	a.Top = selector.Top(results, opts.TopN)

	best, err := selector.Best(results)
	if err != nil {
		return a, ErrNothingToAnalyze
	}
	a.Recommendation = selector.Recommend(best.Ratio(), opts.Bands)
	return a, nil
}

// varietyValues returns the distinct values of param across the stress runs,
// counting runs without param as the value "unknown".
func varietyValues(stress []sweep.ConfigResult, param string) []sweep.Value {
	values := sweep.Distinct(stress, param)
	for _, r := range stress {
		if _, ok := r.Config.Get(param); !ok {
			return append(values, unknownValue)
		}
	}
	return values
}
