// internal/sweep/overview.go
package sweep

import "github.com/simani23/gpu-zip/internal/robust"

// Summary is the headline view of a results file.
type Summary struct {
	Total     int                  `json:"total" yaml:"total"`
	Valid     int                  `json:"valid" yaml:"valid"`
	Failed    int                  `json:"failed" yaml:"failed"`
	Ratio     robust.AggregateStat `json:"ratio" yaml:"ratio"`
	BlackTime robust.AggregateStat `json:"blackTime" yaml:"blackTime"`
	WhiteTime robust.AggregateStat `json:"whiteTime" yaml:"whiteTime"`
	// HasStdDev is false when a single valid record makes the ratio spread
	// meaningless.
	HasStdDev bool `json:"hasStdDev" yaml:"hasStdDev"`
}

// Overview counts the records and summarizes the valid ones. It reports
// false when nothing is valid; the counts are filled in either way.
func Overview(results []ConfigResult) (Summary, bool) {
	s := Summary{Total: len(results)}
	var ratios, black, white []float64
	for _, r := range results {
		if !r.Valid() {
			continue
		}
		ratios = append(ratios, r.Ratio())
		black = append(black, r.Results.BlackTime)
		white = append(white, r.Results.WhiteTime)
	}
	s.Valid = len(ratios)
	s.Failed = s.Total - s.Valid
	if s.Valid == 0 {
		return s, false
	}
	s.Ratio, _ = robust.Summarize(ratios)
	s.BlackTime, _ = robust.Summarize(black)
	s.WhiteTime, _ = robust.Summarize(white)
	s.HasStdDev = s.Valid > 1
	return s, true
}

// Pattern describes one numeric parameter across the well-separating
// configurations.
type Pattern struct {
	Param string  `json:"param" yaml:"param"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
}

// PatternReport lists the common patterns among configurations whose ratio
// reaches a threshold.
type PatternReport struct {
	MinRatio float64   `json:"minRatio" yaml:"minRatio"`
	Count    int       `json:"count" yaml:"count"`
	Params   []Pattern `json:"params" yaml:"params"`
}

// Patterns summarizes the numeric parameters of valid records with
// ratio >= minRatio. Parameters follow the key order of the first such
// record; a parameter with any non-numeric value among them is skipped.
func Patterns(results []ConfigResult, minRatio float64) PatternReport {
	report := PatternReport{MinRatio: minRatio}
	var good []ConfigResult
	for _, r := range results {
		if r.Valid() && r.Ratio() >= minRatio {
			good = append(good, r)
		}
	}
	report.Count = len(good)
	if len(good) == 0 {
		return report
	}
	for _, param := range good[0].Config.Params() {
		var values []float64
		numeric := true
		for _, r := range good {
			v, ok := r.Config.Get(param)
			if !ok {
				continue
			}
			n, isNum := v.Number()
			if !isNum {
				numeric = false
				break
			}
			values = append(values, n)
		}
		if !numeric || len(values) == 0 {
			continue
		}
		stat, _ := robust.Summarize(values)
		report.Params = append(report.Params, Pattern{Param: param, Mean: stat.Mean, Min: stat.Min, Max: stat.Max})
	}
	return report
}
