// internal/cli/analyze_stress.go
package gpuzip

import (
	"github.com/spf13/cobra"
)

type analyzeStressOptions struct {
	inputPath    string
	analysisPath string
	topN         int
}

var analyzeStressOpts analyzeStressOptions

// analyzeStressCmd checks whether the stress workload helps separation.
var analyzeStressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Compare stress runs against control runs",
	Long: `Split the sweep results into stress and control runs, compare their
ratios, flag a subset that never separates, and report how much variety
the stress configurations cover.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyzeStress(cmd, analyzeStressOpts)
	},
}

func init() {
	analyzeStressCmd.Flags().StringVar(&analyzeStressOpts.inputPath, "input", "results.json", "Path to the sweep results JSON")
	analyzeStressCmd.Flags().StringVar(&analyzeStressOpts.analysisPath, "analysis-output", "", "Optional path to write the analysis (.json, .yaml or .yml)")
	analyzeStressCmd.Flags().IntVar(&analyzeStressOpts.topN, "top", 0, "Number of configurations to list per subset (default from config)")

	analyzeCmd.AddCommand(analyzeStressCmd)
}
