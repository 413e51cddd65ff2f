// internal/sweep/effect.go
package sweep

import (
	"sort"

	"github.com/simani23/gpu-zip/internal/robust"
)

// Group is the set of valid records sharing one value of a parameter.
type Group struct {
	Value  Value                `json:"value" yaml:"value"`
	Stat   robust.AggregateStat `json:"stat" yaml:"stat"`
	Ratios []float64            `json:"-" yaml:"-"`
}

// ParameterEffect holds one parameter's groups, ordered by value.
type ParameterEffect struct {
	Param  string  `json:"param" yaml:"param"`
	Groups []Group `json:"groups" yaml:"groups"`
}

// Effect groups valid records by the value of param and summarizes the
// ratios of each group. Records without the key are left out. It reports
// false when no valid record carries param.
func Effect(results []ConfigResult, param string) (ParameterEffect, bool) {
	effect := ParameterEffect{Param: param}
	index := make(map[string]int)
	for _, r := range results {
		if !r.Valid() {
			continue
		}
		v, ok := r.Config.Get(param)
		if !ok {
			continue
		}
		key := valueKey(v)
		i, seen := index[key]
		if !seen {
			i = len(effect.Groups)
			index[key] = i
			effect.Groups = append(effect.Groups, Group{Value: v})
		}
		effect.Groups[i].Ratios = append(effect.Groups[i].Ratios, r.Ratio())
	}
	if len(effect.Groups) == 0 {
		return ParameterEffect{}, false
	}
	sort.SliceStable(effect.Groups, func(i, j int) bool {
		return Compare(effect.Groups[i].Value, effect.Groups[j].Value) < 0
	})
	for i := range effect.Groups {
		effect.Groups[i].Stat, _ = robust.Summarize(effect.Groups[i].Ratios)
	}
	return effect, true
}

func valueKey(v Value) string {
	return v.Kind().String() + ":" + v.String()
}

// Params lists every parameter key seen on valid records, in first-seen
// order.
func Params(results []ConfigResult) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range results {
		if !r.Valid() {
			continue
		}
		for _, k := range r.Config.Params() {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}

// Interesting returns the parameters worth plotting: numeric on every valid
// record that carries them, with more than one distinct value.
func Interesting(results []ConfigResult) []string {
	var out []string
	for _, param := range Params(results) {
		numeric := true
		distinct := make(map[float64]struct{})
		for _, r := range results {
			if !r.Valid() {
				continue
			}
			v, ok := r.Config.Get(param)
			if !ok {
				continue
			}
			n, isNum := v.Number()
			if !isNum {
				numeric = false
				break
			}
			distinct[n] = struct{}{}
		}
		if numeric && len(distinct) > 1 {
			out = append(out, param)
		}
	}
	return out
}

// Importance is the spread between the best and worst group mean.
func Importance(effect ParameterEffect) float64 {
	if len(effect.Groups) == 0 {
		return 0
	}
	lo, hi := effect.Groups[0].Stat.Mean, effect.Groups[0].Stat.Mean
	for _, g := range effect.Groups[1:] {
		if g.Stat.Mean < lo {
			lo = g.Stat.Mean
		}
		if g.Stat.Mean > hi {
			hi = g.Stat.Mean
		}
	}
	return hi - lo
}

// RankedParam is an interesting parameter with its importance.
type RankedParam struct {
	Param      string  `json:"param" yaml:"param"`
	Importance float64 `json:"importance" yaml:"importance"`
}

// RankImportance orders the interesting parameters by importance, highest
// first. Ties keep first-seen order.
func RankImportance(results []ConfigResult) []RankedParam {
	var out []RankedParam
	for _, param := range Interesting(results) {
		effect, ok := Effect(results, param)
		if !ok {
			continue
		}
		out = append(out, RankedParam{Param: param, Importance: Importance(effect)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Importance > out[j].Importance
	})
	return out
}

// Cell is one (x, y) bucket of an interaction grid.
type Cell struct {
	Stat robust.AggregateStat `json:"stat" yaml:"stat"`
	OK   bool                 `json:"ok" yaml:"ok"`
}

// Grid summarizes ratios over every combination of two parameters.
// Cells[i][j] belongs to XValues[i] and YValues[j].
type Grid struct {
	X       string   `json:"x" yaml:"x"`
	Y       string   `json:"y" yaml:"y"`
	XValues []Value  `json:"xValues" yaml:"xValues"`
	YValues []Value  `json:"yValues" yaml:"yValues"`
	Cells   [][]Cell `json:"cells" yaml:"cells"`
}

// Interaction builds the grid for parameters x and y from valid records that
// carry both. It reports false when no record does.
func Interaction(results []ConfigResult, x, y string) (Grid, bool) {
	type pair struct{ x, y string }
	buckets := make(map[pair][]float64)
	var xs, ys []Value
	xSeen := make(map[string]bool)
	ySeen := make(map[string]bool)
	for _, r := range results {
		if !r.Valid() {
			continue
		}
		xv, okX := r.Config.Get(x)
		yv, okY := r.Config.Get(y)
		if !okX || !okY {
			continue
		}
		xk, yk := valueKey(xv), valueKey(yv)
		if !xSeen[xk] {
			xSeen[xk] = true
			xs = append(xs, xv)
		}
		if !ySeen[yk] {
			ySeen[yk] = true
			ys = append(ys, yv)
		}
		buckets[pair{xk, yk}] = append(buckets[pair{xk, yk}], r.Ratio())
	}
	if len(buckets) == 0 {
		return Grid{}, false
	}
	sortValues(xs)
	sortValues(ys)

	grid := Grid{X: x, Y: y, XValues: xs, YValues: ys, Cells: make([][]Cell, len(xs))}
	for i, xv := range xs {
		grid.Cells[i] = make([]Cell, len(ys))
		for j, yv := range ys {
			ratios, ok := buckets[pair{valueKey(xv), valueKey(yv)}]
			if !ok {
				continue
			}
			stat, ok := robust.Summarize(ratios)
			grid.Cells[i][j] = Cell{Stat: stat, OK: ok}
		}
	}
	return grid, true
}

func sortValues(vs []Value) {
	sort.SliceStable(vs, func(i, j int) bool { return Compare(vs[i], vs[j]) < 0 })
}

// Distinct returns the sorted distinct values of param over every record,
// valid or not, that carries it.
func Distinct(results []ConfigResult, param string) []Value {
	var out []Value
	seen := make(map[string]bool)
	for _, r := range results {
		v, ok := r.Config.Get(param)
		if !ok {
			continue
		}
		k := valueKey(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	sortValues(out)
	return out
}
