// internal/selector/selector.go
// Package selector ranks configurations by ratio and compares the
// stress-enabled runs against the control runs.
package selector

import (
	"errors"
	"sort"

	"github.com/simani23/gpu-zip/internal/sweep"
)

var (
	// ErrNoValidConfig is returned when no record carries a usable ratio.
	ErrNoValidConfig = errors.New("no valid configuration")
	// ErrNoStressRuns is returned when no valid record has the stress flag set.
	ErrNoStressRuns = errors.New("no runs with stress enabled")
	// ErrNoControlRuns is returned when no valid record has the stress flag cleared.
	ErrNoControlRuns = errors.New("no runs without stress")
)

// Ranked is a valid record and its 1-based position in the ranking.
type Ranked struct {
	Rank   int                `json:"rank" yaml:"rank"`
	Result sweep.ConfigResult `json:"result" yaml:"result"`
}

// Rank orders the valid records by ratio, highest first. Equal ratios keep
// their input order.
func Rank(results []sweep.ConfigResult) []Ranked {
	valid := sweep.ValidOnly(results)
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Ratio() > valid[j].Ratio()
	})
	out := make([]Ranked, len(valid))
	for i, r := range valid {
		out[i] = Ranked{Rank: i + 1, Result: r}
	}
	return out
}

// Top returns at most n entries of the ranking. n <= 0 means all.
func Top(results []sweep.ConfigResult, n int) []Ranked {
	ranked := Rank(results)
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Best returns the highest-ratio valid record. The first one wins a tie.
func Best(results []sweep.ConfigResult) (sweep.ConfigResult, error) {
	var best sweep.ConfigResult
	found := false
	for _, r := range results {
		if !r.Valid() {
			continue
		}
		if !found || r.Ratio() > best.Ratio() {
			best = r
			found = true
		}
	}
	if !found {
		return sweep.ConfigResult{}, ErrNoValidConfig
	}
	return best, nil
}
