package selector

import (
	"errors"
	"math"
	"testing"

	"github.com/simani23/gpu-zip/internal/signal"
	"github.com/simani23/gpu-zip/internal/sweep"
)

func record(name string, ratio float64, params ...interface{}) sweep.ConfigResult {
	var c sweep.Config
	c.Set(sweep.NameKey, sweep.String(name))
	for i := 0; i+1 < len(params); i += 2 {
		key := params[i].(string)
		switch v := params[i+1].(type) {
		case int:
			c.Set(key, sweep.Number(float64(v)))
		case bool:
			c.Set(key, sweep.Bool(v))
		case string:
			c.Set(key, sweep.String(v))
		}
	}
	r := ratio
	return sweep.ConfigResult{Config: c, Results: &sweep.Results{Ratio: &r}}
}

func failed(name string, params ...interface{}) sweep.ConfigResult {
	rec := record(name, 0, params...)
	rec.Results = nil
	return rec
}

func TestScenarioBestConfig(t *testing.T) {
	results := []sweep.ConfigResult{record("a", 1.05), record("b", 2.1), failed("c")}
	best, err := Best(results)
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	if best.Name() != "b" || best.Ratio() != 2.1 {
		t.Fatalf("unexpected best %+v", best)
	}
	if got := len(Rank(results)); got != 2 {
		t.Fatalf("expected 2 ranked records, got %d", got)
	}
	rec := Recommend(best.Ratio(), signal.DefaultBands)
	if rec.Level != LevelGood || rec.Quality < signal.Good {
		t.Fatalf("expected good recommendation, got %+v", rec)
	}
}

func TestBestNoValid(t *testing.T) {
	if _, err := Best([]sweep.ConfigResult{failed("x")}); !errors.Is(err, ErrNoValidConfig) {
		t.Fatalf("expected ErrNoValidConfig, got %v", err)
	}
	if _, err := Best(nil); !errors.Is(err, ErrNoValidConfig) {
		t.Fatalf("expected ErrNoValidConfig on empty input, got %v", err)
	}
}

func TestRankStable(t *testing.T) {
	results := []sweep.ConfigResult{
		record("first", 1.5),
		record("top", 3.0),
		record("second", 1.5),
		failed("gone"),
		record("third", 1.5),
	}
	ranked := Rank(results)
	want := []string{"top", "first", "second", "third"}
	if len(ranked) != len(want) {
		t.Fatalf("unexpected ranking %+v", ranked)
	}
	for i, name := range want {
		if ranked[i].Result.Name() != name || ranked[i].Rank != i+1 {
			t.Fatalf("position %d: got %s (rank %d), want %s", i, ranked[i].Result.Name(), ranked[i].Rank, name)
		}
	}
	if top := Top(results, 2); len(top) != 2 || top[1].Result.Name() != "first" {
		t.Fatalf("unexpected top 2 %+v", top)
	}
	if all := Top(results, 0); len(all) != 4 {
		t.Fatalf("Top(0) should return everything, got %d", len(all))
	}
}

func TestPartition(t *testing.T) {
	results := []sweep.ConfigResult{
		record("n1", 1.2, "stress", 0),
		record("s1", 1.8, "stress", 1),
		record("s2", 1.9, "stress", true),
		record("odd", 1.9, "stress", 2),
		record("none", 1.9),
		failed("sf", "stress", 1),
	}
	p := Partition(results, "stress")
	if len(p.Stress) != 3 || len(p.Control) != 1 {
		t.Fatalf("unexpected partition stress=%d control=%d", len(p.Stress), len(p.Control))
	}
}

func TestScenarioStressHelping(t *testing.T) {
	results := []sweep.ConfigResult{
		record("s1", 1.8, "stress", 1),
		record("n1", 1.2, "stress", 0),
		record("s2", 2.0, "stress", 1),
		record("n2", 1.4, "stress", 0),
	}
	cmp, err := CompareStress(results, DefaultStressKey, DefaultTolerance)
	if err != nil {
		t.Fatalf("CompareStress: %v", err)
	}
	if cmp.MaxEffect != Helping || cmp.MeanEffect != Helping {
		t.Fatalf("expected stress to help, got %+v", cmp)
	}
	if math.Abs(cmp.MaxChangePercent-42.857142857) > 1e-6 {
		t.Fatalf("unexpected improvement %v", cmp.MaxChangePercent)
	}
	if math.Abs(cmp.MeanDelta-0.6) > 1e-9 {
		t.Fatalf("unexpected mean delta %v", cmp.MeanDelta)
	}
}

func TestCompareStressDirections(t *testing.T) {
	hurting := []sweep.ConfigResult{record("s", 1.2, "stress", 1), record("n", 1.5, "stress", 0)}
	cmp, err := CompareStress(hurting, "stress", DefaultTolerance)
	if err != nil || cmp.MaxEffect != Hurting || cmp.MaxChangePercent >= 0 {
		t.Fatalf("expected hurting, got %+v err=%v", cmp, err)
	}
	equal := []sweep.ConfigResult{record("s", 1.5, "stress", 1), record("n", 1.5, "stress", 0)}
	cmp, err = CompareStress(equal, "stress", DefaultTolerance)
	if err != nil || cmp.MaxEffect != NoEffect || cmp.MeanEffect != NoEffect {
		t.Fatalf("expected no effect, got %+v err=%v", cmp, err)
	}
}

func TestCompareStressMissingSide(t *testing.T) {
	onlyControl := []sweep.ConfigResult{record("n", 1.5, "stress", 0), failed("s", "stress", 1)}
	if _, err := CompareStress(onlyControl, "stress", DefaultTolerance); !errors.Is(err, ErrNoStressRuns) {
		t.Fatalf("expected ErrNoStressRuns, got %v", err)
	}
	onlyStress := []sweep.ConfigResult{record("s", 1.5, "stress", 1)}
	if _, err := CompareStress(onlyStress, "stress", DefaultTolerance); !errors.Is(err, ErrNoControlRuns) {
		t.Fatalf("expected ErrNoControlRuns, got %v", err)
	}
}

func TestScenarioNoSeparation(t *testing.T) {
	subset := []sweep.ConfigResult{record("a", 1.003), record("b", 1.003)}
	s := Summarize(subset, DefaultTolerance)
	if !s.NoSeparation {
		t.Fatalf("expected no separation, got %+v", s)
	}
	mixed := append(subset, record("c", 1.2))
	if Summarize(mixed, DefaultTolerance).NoSeparation {
		t.Fatal("a separating ratio must clear the flag")
	}
	if Summarize(nil, DefaultTolerance).NoSeparation {
		t.Fatal("an empty subset must not be flagged")
	}
	edge := []sweep.ConfigResult{record("e", 1.01)}
	if Summarize(edge, DefaultTolerance).NoSeparation {
		t.Fatal("tolerance is strict")
	}
}

func TestRecommendTiers(t *testing.T) {
	cases := []struct {
		ratio float64
		want  Level
	}{
		{0, LevelCritical},
		{1.05, LevelCritical},
		{1.1, LevelMarginal},
		{1.29, LevelMarginal},
		{1.3, LevelFair},
		{1.5, LevelGood},
		{3.5, LevelGood},
	}
	for _, tc := range cases {
		rec := Recommend(tc.ratio, signal.DefaultBands)
		if rec.Level != tc.want {
			t.Fatalf("Recommend(%v) = %s, want %s", tc.ratio, rec.Level, tc.want)
		}
		if rec.Headline == "" {
			t.Fatalf("Recommend(%v) has no headline", tc.ratio)
		}
	}
}
