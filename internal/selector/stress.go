// internal/selector/stress.go
package selector

import (
	"math"

	"github.com/simani23/gpu-zip/internal/sweep"
)

const (
	// DefaultStressKey is the configuration flag that marks stress runs.
	DefaultStressKey = "stress"
	// DefaultTolerance is how close to 1.0 a ratio must be to count as no
	// separation.
	DefaultTolerance = 0.01
)

// Partitioned splits records by the stress flag.
type Partitioned struct {
	Stress  []sweep.ConfigResult
	Control []sweep.ConfigResult
}

// Partition splits results on key. The flag is read as the number 1 or 0, or
// as a boolean; records without it, or with any other value, land in neither
// subset. Invalid records are kept so callers can inspect what was tried.
func Partition(results []sweep.ConfigResult, key string) Partitioned {
	var p Partitioned
	for _, r := range results {
		on, ok := stressFlag(r, key)
		if !ok {
			continue
		}
		if on {
			p.Stress = append(p.Stress, r)
		} else {
			p.Control = append(p.Control, r)
		}
	}
	return p
}

func stressFlag(r sweep.ConfigResult, key string) (on, ok bool) {
	v, present := r.Config.Get(key)
	if !present {
		return false, false
	}
	if n, isNum := v.Number(); isNum {
		switch n {
		case 1:
			return true, true
		case 0:
			return false, true
		}
		return false, false
	}
	if b, isBool := v.Bool(); isBool {
		return b, true
	}
	return false, false
}

// Subset summarizes the ratios of one side of a partition.
type Subset struct {
	Count int     `json:"count" yaml:"count"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	// NoSeparation is set when every ratio lies strictly within tolerance
	// of 1.0. An empty subset is never flagged.
	NoSeparation bool `json:"noSeparation" yaml:"noSeparation"`
}

// Summarize computes the Subset view over the valid records of subset.
func Summarize(subset []sweep.ConfigResult, tolerance float64) Subset {
	ratios := sweep.Ratios(subset)
	s := Subset{Count: len(ratios)}
	if len(ratios) == 0 {
		return s
	}
	sum := 0.0
	s.Min, s.Max = ratios[0], ratios[0]
	near := 0
	for _, r := range ratios {
		sum += r
		if r < s.Min {
			s.Min = r
		}
		if r > s.Max {
			s.Max = r
		}
		if math.Abs(r-1.0) < tolerance {
			near++
		}
	}
	s.Mean = sum / float64(len(ratios))
	s.NoSeparation = near == len(ratios)
	return s
}

// Direction is the verdict of comparing stress runs against control runs.
type Direction int

const (
	NoEffect Direction = iota
	Helping
	Hurting
)

func (d Direction) String() string {
	switch d {
	case Helping:
		return "helping"
	case Hurting:
		return "hurting"
	}
	return "no effect"
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func direction(stress, control float64) Direction {
	switch {
	case stress > control:
		return Helping
	case stress < control:
		return Hurting
	}
	return NoEffect
}

// StressComparison contrasts the stress subset with the control subset.
type StressComparison struct {
	Key     string `json:"key" yaml:"key"`
	Stress  Subset `json:"stress" yaml:"stress"`
	Control Subset `json:"control" yaml:"control"`
	// MaxEffect compares the best ratios; MaxChangePercent is the change of
	// the stress maximum relative to the control maximum, negative when
	// stress hurts.
	MaxEffect        Direction `json:"maxEffect" yaml:"maxEffect"`
	MaxChangePercent float64   `json:"maxChangePercent" yaml:"maxChangePercent"`
	// MeanEffect compares the average ratios; MeanDelta is stress minus
	// control.
	MeanEffect Direction `json:"meanEffect" yaml:"meanEffect"`
	MeanDelta  float64   `json:"meanDelta" yaml:"meanDelta"`
}

// CompareStress partitions the valid records on key and compares the two
// sides. Either side being empty is an error.
func CompareStress(results []sweep.ConfigResult, key string, tolerance float64) (StressComparison, error) {
	p := Partition(sweep.ValidOnly(results), key)
	cmp := StressComparison{
		Key:     key,
		Stress:  Summarize(p.Stress, tolerance),
		Control: Summarize(p.Control, tolerance),
	}
	if cmp.Stress.Count == 0 {
		return cmp, ErrNoStressRuns
	}
	if cmp.Control.Count == 0 {
		return cmp, ErrNoControlRuns
	}
	cmp.MaxEffect = direction(cmp.Stress.Max, cmp.Control.Max)
	cmp.MaxChangePercent = (cmp.Stress.Max - cmp.Control.Max) / cmp.Control.Max * 100
	cmp.MeanEffect = direction(cmp.Stress.Mean, cmp.Control.Mean)
	cmp.MeanDelta = cmp.Stress.Mean - cmp.Control.Mean
	return cmp, nil
}
