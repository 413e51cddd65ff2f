package gpuzip

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/simani23/gpu-zip/internal/analysis"
)

func runAnalyzeResults(cmd *cobra.Command, opts analyzeResultsOptions) error {
	aopts := analysisOptions(GetConfig())
	aopts.InputPath = opts.inputPath
	aopts.AnalysisPath = opts.analysisPath
	if opts.topN > 0 {
		aopts.TopN = opts.topN
	}
	if cmd.Flags().Changed("output-dir") {
		aopts.OutputDir = opts.outputDir
		aopts.Plots = opts.outputDir != ""
	}
	aopts.PrepareOutputDir = func(dir string) error {
		return prepareOutputDir(dir, opts.inputPath)
	}

	err := analysis.RunResults(aopts, cmd.OutOrStdout())
	if errors.Is(err, analysis.ErrNothingToAnalyze) {
		return nil
	}
	return err
}
