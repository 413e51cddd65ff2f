// internal/cli/analyze_results.go
package gpuzip

import (
	"github.com/spf13/cobra"
)

type analyzeResultsOptions struct {
	inputPath    string
	outputDir    string
	analysisPath string
	topN         int
}

var analyzeResultsOpts analyzeResultsOptions

// analyzeResultsCmd characterizes a parameter sweep results file.
var analyzeResultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Rank sweep configurations and report parameter effects",
	Long: `Read a parameter sweep results file, rank every valid configuration by
its white/black ratio, break the ratio down per parameter, compare stress
against control runs, and print a recommendation. With --output-dir (or
plots enabled in the config) the parameter and interaction charts are
written as PNG files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyzeResults(cmd, analyzeResultsOpts)
	},
}

func init() {
	analyzeResultsCmd.Flags().StringVar(&analyzeResultsOpts.inputPath, "input", "results.json", "Path to the sweep results JSON")
	analyzeResultsCmd.Flags().StringVar(&analyzeResultsOpts.outputDir, "output-dir", "", "Directory for charts; cleared and recreated on every run")
	analyzeResultsCmd.Flags().StringVar(&analyzeResultsOpts.analysisPath, "analysis-output", "", "Optional path to write the analysis (.json, .yaml or .yml)")
	analyzeResultsCmd.Flags().IntVar(&analyzeResultsOpts.topN, "top", 0, "Number of ranked configurations to list (default from config)")

	analyzeCmd.AddCommand(analyzeResultsCmd)
}
