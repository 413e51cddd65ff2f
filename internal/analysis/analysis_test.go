// internal/analysis/analysis_test.go
package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/simani23/gpu-zip/internal/chart"
	"github.com/simani23/gpu-zip/internal/selector"
	"github.com/simani23/gpu-zip/internal/signal"
	"github.com/simani23/gpu-zip/internal/sweep"
	"github.com/simani23/gpu-zip/internal/timing"
)

const resultsJSON = `[
  {"config": {"name": "a", "div_size": 16, "layer": 1, "stress": 1, "num_workers": 4, "bigint_digits": 1000},
   "results": {"blackTime": 10, "whiteTime": 12, "ratio": 1.2}},
  {"config": {"name": "b", "div_size": 32, "layer": 1, "stress": 0},
   "results": {"blackTime": 10, "whiteTime": 21, "ratio": 2.1}},
  {"config": {"name": "c", "div_size": 32, "layer": 2, "stress": 1, "num_workers": 4, "bigint_digits": 1000},
   "results": {"blackTime": 10, "whiteTime": 16, "ratio": 1.6}},
  {"config": {"name": "d", "div_size": 64, "layer": 1, "stress": 0}, "results": null},
  {"config": {"name": "e", "div_size": 16, "layer": 2, "stress": 0},
   "results": {"blackTime": 10, "whiteTime": 10, "ratio": 1.0}}
]`

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func loadSample(t *testing.T) []sweep.ConfigResult {
	t.Helper()
	results, err := sweep.Parse([]byte(resultsJSON))
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	return results
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestAnalyzeResults(t *testing.T) {
	a, err := AnalyzeResults(loadSample(t), Options{TopN: 3})
	if err != nil {
		t.Fatalf("AnalyzeResults: %v", err)
	}
	if a.Summary.Total != 5 || a.Summary.Valid != 4 || a.Summary.Failed != 1 {
		t.Fatalf("unexpected counts %+v", a.Summary)
	}
	if a.Best.Result.Name() != "b" || a.Best.Quality != signal.Excellent {
		t.Fatalf("unexpected best %s %v", a.Best.Result.Name(), a.Best.Quality)
	}
	if len(a.Top) != 3 || a.Top[0].Result.Name() != "b" || a.Top[2].Result.Name() != "a" {
		t.Fatalf("unexpected top %+v", a.Top)
	}
	if len(a.Effects) != 5 {
		t.Fatalf("expected an effect per parameter, got %d", len(a.Effects))
	}
	if strings.Join(a.Interesting, ",") != "div_size,layer,stress" {
		t.Fatalf("unexpected interesting params %v", a.Interesting)
	}
	if a.Importance[0].Param != "div_size" || !near(a.Importance[0].Importance, 0.75) {
		t.Fatalf("unexpected importance %+v", a.Importance)
	}
	if a.Interaction == nil || a.Interaction.X != "div_size" || a.Interaction.Y != "layer" {
		t.Fatalf("unexpected interaction %+v", a.Interaction)
	}
	if a.Patterns.Count != 2 || a.Patterns.Params[0].Param != "div_size" || !near(a.Patterns.Params[0].Mean, 32) {
		t.Fatalf("unexpected patterns %+v", a.Patterns)
	}
	if a.Stress == nil || a.Stress.MaxEffect != selector.Hurting {
		t.Fatalf("unexpected stress comparison %+v", a.Stress)
	}
	if a.Recommendation.Level != selector.LevelGood {
		t.Fatalf("expected good recommendation, got %v", a.Recommendation.Level)
	}
	if got := a.interestingEffects(); len(got) != 3 || got[2].Param != "stress" {
		t.Fatalf("unexpected plotted effects %+v", got)
	}
}

func TestAnalyzeResultsNothingValid(t *testing.T) {
	results, err := sweep.Parse([]byte(`[{"config": {"name": "x"}, "results": null}]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a, err := AnalyzeResults(results, Options{})
	if !errors.Is(err, ErrNothingToAnalyze) {
		t.Fatalf("expected ErrNothingToAnalyze, got %v", err)
	}
	if a.Summary.Total != 1 || a.Summary.Failed != 1 {
		t.Fatalf("counts should still be filled, got %+v", a.Summary)
	}

	var buf bytes.Buffer
	WriteResultsReport(&buf, a, false)
	if !strings.Contains(buf.String(), "No valid results to analyze!") {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}

func TestAnalyzeStress(t *testing.T) {
	a, err := AnalyzeStress(loadSample(t), Options{StressTopN: 1})
	if err != nil {
		t.Fatalf("AnalyzeStress: %v", err)
	}
	if a.Comparison == nil {
		t.Fatal("expected a comparison")
	}
	if !near(a.Comparison.MaxChangePercent, (1.6-2.1)/2.1*100) {
		t.Fatalf("unexpected max change %v", a.Comparison.MaxChangePercent)
	}
	if len(a.TopStress) != 1 || a.TopStress[0].Result.Name() != "c" {
		t.Fatalf("unexpected top stress %+v", a.TopStress)
	}
	if len(a.Variety) != 2 || !a.Variety[0].NeedsVariety || a.Variety[0].Values[0].String() != "4" {
		t.Fatalf("unexpected variety %+v", a.Variety)
	}

	var buf bytes.Buffer
	WriteStressReport(&buf, a, false)
	out := buf.String()
	for _, want := range []string{"Stress is HURTING", "Only 4 num_workers tested", "Workers: 4, Digits: 1000", "Good separation found"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestAnalyzeStressWithoutStressRuns(t *testing.T) {
	results, err := sweep.Parse([]byte(`[{"config": {"name": "x", "stress": 0}, "results": {"blackTime": 1, "whiteTime": 1.2, "ratio": 1.2}}]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a, err := AnalyzeStress(results, Options{})
	if err != nil {
		t.Fatalf("AnalyzeStress: %v", err)
	}
	if a.Comparison != nil || !strings.Contains(a.Warning, "stress=1") {
		t.Fatalf("expected a warning, got %+v", a)
	}
	if a.Recommendation.Level != selector.LevelMarginal {
		t.Fatalf("expected marginal tier, got %v", a.Recommendation.Level)
	}
}

func TestAnalyzeTiming(t *testing.T) {
	set := timing.NewSampleSet()
	set.Add("Black@2", 10, 10, -5, 10)
	set.Add("Random@2", 20, 20, 20)
	set.Add("Skew@8", 30)

	problems := []timing.FileError{{Label: "Gradient@2", Path: "missing.txt", Err: timing.ErrNoData}}
	a, err := AnalyzeTiming(set, problems, Options{})
	if err != nil {
		t.Fatalf("AnalyzeTiming: %v", err)
	}
	if a.Baseline != timing.Black {
		t.Fatalf("expected Black baseline, got %q", a.Baseline)
	}
	if a.Labels[0].NonPositive != 1 || a.Labels[0].Stat.N != 3 {
		t.Fatalf("unexpected black summary %+v", a.Labels[0])
	}
	if len(a.Comparisons) != 1 || a.Comparisons[0].Label != "Random@2" || !near(a.Comparisons[0].Result.Ratio, 2) {
		t.Fatalf("unexpected comparisons %+v", a.Comparisons)
	}
	if len(a.Problems) != 1 {
		t.Fatalf("expected the missing file to be reported, got %v", a.Problems)
	}
	if got := a.chartSeries(); len(got) != 3 || len(got[0].Samples) != 3 {
		t.Fatalf("unexpected chart series %+v", got)
	}
}

func TestAnalyzeTimingCompressiblePair(t *testing.T) {
	set := timing.NewSampleSet()
	set.Add(timing.Compressible, 10, 10)
	set.Add(timing.NonCompressible, 15, 15)
	a, err := AnalyzeTiming(set, nil, Options{})
	if err != nil {
		t.Fatalf("AnalyzeTiming: %v", err)
	}
	if a.Baseline != timing.Compressible || len(a.Comparisons) != 1 || a.Comparisons[0].Quality != signal.Good {
		t.Fatalf("unexpected analysis %+v", a)
	}

	var buf bytes.Buffer
	WriteTimingReport(&buf, a, false)
	if !strings.Contains(buf.String(), "Ratio: 1.500 (GOOD (should work))") {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}

func TestAnalyzeTimingEmpty(t *testing.T) {
	if _, err := AnalyzeTiming(timing.NewSampleSet(), nil, Options{}); !errors.Is(err, ErrNothingToAnalyze) {
		t.Fatalf("expected ErrNothingToAnalyze, got %v", err)
	}
}

func TestRunResultsWritesChartsAndYAML(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "results.json")
	writeFile(t, input, resultsJSON)
	export := filepath.Join(dir, "out", "analysis.yaml")
	plots := filepath.Join(dir, "plots")

	var buf bytes.Buffer
	opts := Options{InputPath: input, AnalysisPath: export, OutputDir: plots, Plots: true, TopN: 10}
	if err := RunResults(opts, &buf); err != nil {
		t.Fatalf("RunResults: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"BASIC STATISTICS", "Effect of DIV_SIZE:", "Name: b", "Saved plot to:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	for _, name := range []string{chart.ParameterFile, chart.InteractionFile} {
		if _, err := os.Stat(filepath.Join(plots, name)); err != nil {
			t.Fatalf("expected chart %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(export)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not YAML: %v", err)
	}
	best, ok := doc["best"].(map[string]any)
	if !ok || best["quality"] != "EXCELLENT" {
		t.Fatalf("unexpected best section %v", doc["best"])
	}
}

func TestRunStressJSONExport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "results.json")
	writeFile(t, input, resultsJSON)
	export := filepath.Join(dir, "stress.json")

	var buf bytes.Buffer
	if err := RunStress(Options{InputPath: input, AnalysisPath: export}, &buf); err != nil {
		t.Fatalf("RunStress: %v", err)
	}
	data, err := os.ReadFile(export)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc struct {
		Comparison struct {
			MaxEffect string `json:"maxEffect"`
		} `json:"comparison"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if doc.Comparison.MaxEffect != "hurting" {
		t.Fatalf("unexpected max effect %q", doc.Comparison.MaxEffect)
	}
}

func TestRunResultsMissingInput(t *testing.T) {
	var buf bytes.Buffer
	err := RunResults(Options{InputPath: filepath.Join(t.TempDir(), "nope.json")}, &buf)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}

func TestRunTiming(t *testing.T) {
	dir := t.TempDir()
	black := filepath.Join(dir, "black.txt")
	random := filepath.Join(dir, "random.txt")
	writeFile(t, black, "100\n110\n200\n210\n")
	writeFile(t, random, "100\n120\n200\n220\n")
	files := []timing.LabeledFile{
		{Label: timing.Black, Path: black},
		{Label: timing.Random, Path: random},
		{Label: timing.Skew, Path: filepath.Join(dir, "skew.txt")},
	}

	var buf bytes.Buffer
	opts := Options{OutputDir: filepath.Join(dir, "plots"), Plots: true}
	if err := RunTiming(opts, files, timing.Conversion{Unit: timing.Cycles}, &buf); err != nil {
		t.Fatalf("RunTiming: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"skipped", "Random vs Black", "Ratio: 2.000", "cycles"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "plots", chart.HistogramFile)); err != nil {
		t.Fatalf("expected histogram: %v", err)
	}

	if err := RunTiming(opts, nil, timing.Conversion{}, &buf); !errors.Is(err, ErrNothingToAnalyze) {
		t.Fatalf("expected ErrNothingToAnalyze, got %v", err)
	}
}

func TestAnalyzeStressCountsMissingKnobsAsUnknown(t *testing.T) {
	results, err := sweep.Parse([]byte(`[
  {"config": {"name": "w", "stress": 1, "num_workers": 4}, "results": {"blackTime": 10, "whiteTime": 15, "ratio": 1.5}},
  {"config": {"name": "x", "stress": 1}, "results": {"blackTime": 10, "whiteTime": 14, "ratio": 1.4}},
  {"config": {"name": "y", "stress": 0}, "results": {"blackTime": 10, "whiteTime": 12, "ratio": 1.2}}
]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a, err := AnalyzeStress(results, Options{})
	if err != nil {
		t.Fatalf("AnalyzeStress: %v", err)
	}
	if len(a.Variety) != 2 {
		t.Fatalf("expected two variety entries, got %+v", a.Variety)
	}

	workers := a.Variety[0]
	if workers.Param != "num_workers" || len(workers.Values) != 2 || workers.Values[1].String() != "unknown" {
		t.Fatalf("expected 4 and unknown workers, got %+v", workers)
	}
	if workers.NeedsVariety {
		t.Fatal("two distinct worker values should not need more variety")
	}

	digits := a.Variety[1]
	if len(digits.Values) != 1 || digits.Values[0].String() != "unknown" || !digits.NeedsVariety {
		t.Fatalf("expected a single unknown digit count, got %+v", digits)
	}

	var buf bytes.Buffer
	WriteStressReport(&buf, a, false)
	if !strings.Contains(buf.String(), "Only unknown bigint_digits tested") {
		t.Fatalf("expected the variety warning in report:\n%s", buf.String())
	}
}

func TestBaselinePattern(t *testing.T) {
	cases := []struct {
		labels []string
		want   string
	}{
		{[]string{timing.Black, timing.Random}, timing.Black},
		{[]string{timing.Label(timing.Black, "4"), timing.Label(timing.Compressible, "4"), timing.NonCompressible}, timing.Compressible},
		{[]string{timing.Random, timing.Skew}, timing.Black},
	}
	for _, tc := range cases {
		if got := baselinePattern(tc.labels); got != tc.want {
			t.Errorf("baselinePattern(%v) = %q, want %q", tc.labels, got, tc.want)
		}
	}
}

func TestRunResultsPreparesOutputAfterLoading(t *testing.T) {
	dir := t.TempDir()
	plots := filepath.Join(dir, "plots")
	input := filepath.Join(plots, "results.json")
	if err := os.MkdirAll(plots, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, input, resultsJSON)

	var prepared []string
	opts := Options{
		InputPath: input,
		OutputDir: plots,
		Plots:     true,
		PrepareOutputDir: func(dir string) error {
			prepared = append(prepared, dir)
			return os.RemoveAll(dir)
		},
	}
	var buf bytes.Buffer
	if err := RunResults(opts, &buf); err != nil {
		t.Fatalf("RunResults: %v", err)
	}
	if len(prepared) != 1 || prepared[0] != plots {
		t.Fatalf("expected one prepare call for %s, got %v", plots, prepared)
	}
	if _, err := os.Stat(filepath.Join(plots, chart.ParameterFile)); err != nil {
		t.Fatalf("expected chart after the directory was cleared: %v", err)
	}
}

func TestRunResultsPrepareErrorStopsRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "results.json")
	writeFile(t, input, resultsJSON)
	refused := errors.New("refused")

	var buf bytes.Buffer
	opts := Options{
		InputPath:        input,
		OutputDir:        filepath.Join(dir, "plots"),
		Plots:            true,
		PrepareOutputDir: func(string) error { return refused },
	}
	if err := RunResults(opts, &buf); !errors.Is(err, refused) {
		t.Fatalf("expected the prepare error, got %v", err)
	}
	if strings.Contains(buf.String(), "BASIC STATISTICS") {
		t.Fatalf("report should not be printed when the output directory is refused:\n%s", buf.String())
	}
}
