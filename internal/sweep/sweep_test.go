package sweep

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"
)

const sampleResults = `[
  {"config": {"name": "a", "div_size": 16, "layer": 2, "stress": 0, "method": "pp"}, "results": {"ratio": 1.2, "blackTime": 10, "whiteTime": 12}},
  {"config": {"name": "b", "div_size": 32, "layer": 2, "stress": 1, "method": "pp"}, "results": {"ratio": 2.0, "blackTime": 10, "whiteTime": 20}},
  {"config": {"name": "c", "div_size": 16, "layer": 4, "stress": 1, "method": "cache"}, "results": {"ratio": 1.6, "blackTime": 10, "whiteTime": 16}},
  {"config": {"name": "d", "div_size": 32, "layer": 4, "stress": 0}, "results": null},
  {"config": {"name": "e", "layer": 4, "stress": 0, "method": "pp"}, "results": {"ratio": 1.4, "blackTime": 10, "whiteTime": 14}}
]`

func mustParse(t *testing.T, data string) []ConfigResult {
	t.Helper()
	results, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return results
}

func TestParseKeepsConfigOrder(t *testing.T) {
	results := mustParse(t, sampleResults)
	if len(results) != 5 {
		t.Fatalf("expected 5 records, got %d", len(results))
	}
	keys := results[0].Config.Keys()
	want := []string{"name", "div_size", "layer", "stress", "method"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected key order %v", keys)
	}
	if results[3].Valid() || results[3].Index != 3 {
		t.Fatalf("failed record mishandled: %+v", results[3])
	}
	if results[1].Name() != "b" || results[1].Ratio() != 2.0 {
		t.Fatalf("unexpected record %+v", results[1])
	}
	v, _ := results[0].Config.Get("method")
	if v.Kind() != KindString || v.String() != "pp" {
		t.Fatalf("unexpected method value %v", v)
	}
	if _, ok := v.Number(); ok {
		t.Fatal("string value must not be numeric")
	}
}

func TestParseScenarioValidCount(t *testing.T) {
	results := mustParse(t, `[
	  {"config":{"name":"a"},"results":{"ratio":1.05}},
	  {"config":{"name":"b"},"results":{"ratio":2.1}},
	  {"config":{"name":"c"},"results":null}
	]`)
	if got := len(ValidOnly(results)); got != 2 {
		t.Fatalf("expected 2 valid records, got %d", got)
	}
}

func TestValidRejectsBadRatios(t *testing.T) {
	zero, inf := 0.0, math.Inf(1)
	for _, r := range []ConfigResult{
		{},
		{Results: &Results{}},
		{Results: &Results{Ratio: &zero}},
		{Results: &Results{Ratio: &inf}},
	} {
		if r.Valid() {
			t.Fatalf("record %+v should be invalid", r)
		}
	}
}

func TestParseSchemaError(t *testing.T) {
	_, err := Parse([]byte(`[{"results": {"ratio": "high"}}]`))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(se.Fields) < 2 {
		t.Fatalf("expected missing config and bad ratio to be reported, got %+v", se.Fields)
	}
	if !strings.Contains(se.Error(), "ratio") {
		t.Fatalf("error should name the field: %s", se.Error())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestEffectGroupsAndOrder(t *testing.T) {
	results := mustParse(t, sampleResults)
	effect, ok := Effect(results, "div_size")
	if !ok {
		t.Fatal("expected an effect for div_size")
	}
	if len(effect.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %+v", effect.Groups)
	}
	if n, _ := effect.Groups[0].Value.Number(); n != 16 {
		t.Fatalf("groups should be ordered numerically, got %v first", effect.Groups[0].Value)
	}
	if effect.Groups[0].Stat.N != 2 || math.Abs(effect.Groups[0].Stat.Mean-1.4) > 1e-9 {
		t.Fatalf("unexpected 16 group %+v", effect.Groups[0].Stat)
	}
	if effect.Groups[1].Stat.N != 1 || effect.Groups[1].Stat.StdDev != 0 {
		t.Fatalf("failed record leaked into the 32 group: %+v", effect.Groups[1].Stat)
	}
	if _, ok := Effect(results, "nope"); ok {
		t.Fatal("unknown parameter must not produce an effect")
	}
}

func TestEffectMixedKinds(t *testing.T) {
	var a, b, c Config
	a.Set("mode", String("zeta"))
	b.Set("mode", Number(3))
	c.Set("mode", String("alpha"))
	r := 1.5
	results := []ConfigResult{
		{Config: a, Results: &Results{Ratio: &r}},
		{Config: b, Results: &Results{Ratio: &r}},
		{Config: c, Results: &Results{Ratio: &r}},
	}
	effect, _ := Effect(results, "mode")
	var got []string
	for _, g := range effect.Groups {
		got = append(got, g.Value.String())
	}
	if strings.Join(got, ",") != "3,alpha,zeta" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestInterestingAndImportance(t *testing.T) {
	results := mustParse(t, sampleResults)
	got := Interesting(results)
	if strings.Join(got, ",") != "div_size,layer,stress" {
		t.Fatalf("unexpected interesting params %v", got)
	}
	ranked := RankImportance(results)
	if len(ranked) != 3 {
		t.Fatalf("unexpected ranking %+v", ranked)
	}
	// stress: (2.0+1.6)/2 - (1.2+1.4)/2 = 0.5; div_size: 2.0 - 1.4 = 0.6; layer: 1.6 - 1.5 = 0.1
	if ranked[0].Param != "div_size" || ranked[1].Param != "stress" || ranked[2].Param != "layer" {
		t.Fatalf("unexpected ranking order %+v", ranked)
	}
	if math.Abs(ranked[0].Importance-0.6) > 1e-9 {
		t.Fatalf("unexpected importance %v", ranked[0].Importance)
	}
}

func TestInteractionGrid(t *testing.T) {
	results := mustParse(t, sampleResults)
	grid, ok := Interaction(results, "div_size", "layer")
	if !ok {
		t.Fatal("expected a grid")
	}
	if len(grid.XValues) != 2 || len(grid.YValues) != 2 {
		t.Fatalf("unexpected axes %v %v", grid.XValues, grid.YValues)
	}
	if !grid.Cells[0][0].OK || grid.Cells[0][0].Stat.Mean != 1.2 {
		t.Fatalf("unexpected (16,2) cell %+v", grid.Cells[0][0])
	}
	if grid.Cells[1][1].OK {
		t.Fatal("(32,4) only has a failed run and must be empty")
	}
	if _, ok := Interaction(results, "div_size", "missing"); ok {
		t.Fatal("expected no grid for an absent parameter")
	}
}

func TestOverview(t *testing.T) {
	results := mustParse(t, sampleResults)
	s, ok := Overview(results)
	if !ok {
		t.Fatal("expected an overview")
	}
	if s.Total != 5 || s.Valid != 4 || s.Failed != 1 {
		t.Fatalf("unexpected counts %+v", s)
	}
	if math.Abs(s.Ratio.Median-1.5) > 1e-9 || s.Ratio.Max != 2.0 || s.Ratio.Min != 1.2 {
		t.Fatalf("unexpected ratio stats %+v", s.Ratio)
	}
	if !s.HasStdDev {
		t.Fatal("four valid ratios should report a spread")
	}
	empty, ok := Overview([]ConfigResult{{}})
	if ok || empty.Failed != 1 {
		t.Fatalf("expected short-circuit on no valid data, got %+v", empty)
	}
}

func TestPatterns(t *testing.T) {
	results := mustParse(t, sampleResults)
	report := Patterns(results, 1.5)
	if report.Count != 2 {
		t.Fatalf("expected 2 good configs, got %d", report.Count)
	}
	var names []string
	for _, p := range report.Params {
		names = append(names, p.Param)
	}
	if strings.Join(names, ",") != "div_size,layer,stress" {
		t.Fatalf("unexpected pattern params %v", names)
	}
	if report.Params[0].Mean != 24 || report.Params[0].Min != 16 || report.Params[0].Max != 32 {
		t.Fatalf("unexpected div_size pattern %+v", report.Params[0])
	}
	if none := Patterns(results, 5); none.Count != 0 || len(none.Params) != 0 {
		t.Fatalf("expected no patterns, got %+v", none)
	}
}

func TestDistinct(t *testing.T) {
	results := mustParse(t, sampleResults)
	got := Distinct(results, "layer")
	if len(got) != 2 || got[0].String() != "2" || got[1].String() != "4" {
		t.Fatalf("unexpected distinct values %v", got)
	}
}

func TestConfigMarshalKeepsOrder(t *testing.T) {
	var c Config
	c.Set("name", String("x"))
	c.Set("z", Number(1))
	c.Set("a", Bool(true))
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"name":"x","z":1,"a":true}` {
		t.Fatalf("unexpected json %s", data)
	}
	out, err := yaml.Marshal(c)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if string(out) != "name: x\nz: 1\na: true\n" {
		t.Fatalf("unexpected yaml %q", out)
	}
}
