// internal/analysis/entry.go
package analysis

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/simani23/gpu-zip/internal/chart"
	"github.com/simani23/gpu-zip/internal/logging"
	"github.com/simani23/gpu-zip/internal/sweep"
	"github.com/simani23/gpu-zip/internal/timing"
)

// RunResults loads the results file, prints the report, and writes the
// optional export and charts.
func RunResults(opts Options, out io.Writer) error {
	fmt.Fprintf(out, "Loading results from: %s\n", opts.InputPath)
	results, err := sweep.Load(opts.InputPath)
	if err != nil {
		return err
	}
	if err := opts.prepareOutput(); err != nil {
		return err
	}

	a, err := AnalyzeResults(results, opts)
	WriteResultsReport(out, a, opts.Color)
	if err != nil {
		return err
	}

	if opts.Plots && opts.OutputDir != "" {
		if err := writeResultsCharts(opts.OutputDir, a, out); err != nil {
			return err
		}
	}
	if opts.AnalysisPath != "" {
		if err := writeAnalysis(opts.AnalysisPath, a); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nAnalysis written to %s\n", opts.AnalysisPath)
	}
	return nil
}

func writeResultsCharts(dir string, a ResultsAnalysis, out io.Writer) error {
	effects := a.interestingEffects()
	if len(effects) == 0 {
		fmt.Fprintln(out, "\nNo varying numeric parameters to plot")
		return nil
	}
	path := filepath.Join(dir, chart.ParameterFile)
	if err := chart.ParameterGrid(path, effects, a.Bands); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nSaved plot to: %s\n", path)

	if a.Interaction == nil {
		return nil
	}
	path = filepath.Join(dir, chart.InteractionFile)
	if err := chart.InteractionMap(path, *a.Interaction); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			return nil
		}
		return err
	}
	fmt.Fprintf(out, "Saved plot to: %s\n", path)
	return nil
}

// RunStress loads the results file and prints the stress report.
func RunStress(opts Options, out io.Writer) error {
	fmt.Fprintf(out, "Loading results from: %s\n", opts.InputPath)
	results, err := sweep.Load(opts.InputPath)
	if err != nil {
		return err
	}

	a, err := AnalyzeStress(results, opts)
	WriteStressReport(out, a, opts.Color)
	if err != nil {
		return err
	}
	if opts.AnalysisPath != "" {
		if err := writeAnalysis(opts.AnalysisPath, a); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nAnalysis written to %s\n", opts.AnalysisPath)
	}
	return nil
}

// RunTiming loads the labelled logs, prints the timing report, and draws
// the histogram when plotting is on. Unreadable logs are reported and
// skipped.
func RunTiming(opts Options, files []timing.LabeledFile, conv timing.Conversion, out io.Writer) error {
	if len(files) == 0 {
		return fmt.Errorf("no timing logs given: %w", ErrNothingToAnalyze)
	}
	if opts.Unit == "" {
		opts.Unit = string(conv.Unit)
	}
	set, problems := timing.LoadSet(files, conv)
	for _, p := range problems {
		logging.LogEvent("skipping %s: %v", p.Path, p.Err)
	}
	if err := opts.prepareOutput(); err != nil {
		return err
	}

	a, err := AnalyzeTiming(set, problems, opts)
	WriteTimingReport(out, a, opts.Color)
	if err != nil {
		return err
	}

	if opts.Plots && opts.OutputDir != "" {
		path := filepath.Join(opts.OutputDir, chart.HistogramFile)
		switch err := chart.Histogram(path, a.chartSeries(), a.Unit); {
		case err == nil:
			fmt.Fprintf(out, "\nSaved plot to: %s\n", path)
		case !errors.Is(err, chart.ErrNoData):
			return err
		}
	}
	if opts.AnalysisPath != "" {
		if err := writeAnalysis(opts.AnalysisPath, a); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nAnalysis written to %s\n", opts.AnalysisPath)
	}
	return nil
}
