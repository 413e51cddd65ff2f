package gpuzip

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/simani23/gpu-zip/internal/analysis"
)

func runAnalyzeStress(cmd *cobra.Command, opts analyzeStressOptions) error {
	aopts := analysisOptions(GetConfig())
	aopts.InputPath = opts.inputPath
	aopts.AnalysisPath = opts.analysisPath
	if opts.topN > 0 {
		aopts.TopN = opts.topN
		aopts.StressTopN = opts.topN
	}

	err := analysis.RunStress(aopts, cmd.OutOrStdout())
	if errors.Is(err, analysis.ErrNothingToAnalyze) {
		return nil
	}
	return err
}
