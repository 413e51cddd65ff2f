// internal/cli/analyze_timing.go
package gpuzip

import (
	"fmt"

	"github.com/spf13/cobra"
)

type analyzeTimingOptions struct {
	black        string
	random       string
	gradient     string
	skew         string
	dir          string
	outputDir    string
	analysisPath string
}

var analyzeTimingOpts analyzeTimingOptions

// analyzeTimingCmd characterizes raw per-frame timing logs.
var analyzeTimingCmd = &cobra.Command{
	Use:   "timing [compressible-log non-compressible-log]",
	Short: "Clean raw timing logs and report pattern separation",
	Long: `Read raw timing logs (one integer start/end pair per line), drop outliers
beyond the configured sigma, and compare every pattern against the
compressible baseline. Logs are given per pattern with --black, --random,
--gradient and --skew, as a Compressible/Non-compressible pair of
positional arguments, or discovered under --dir from their file names.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected 0 or 2 log files, got %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyzeTiming(cmd, analyzeTimingOpts, args)
	},
}

func init() {
	analyzeTimingCmd.Flags().StringVar(&analyzeTimingOpts.black, "black", "", "Log captured with the black (compressible) pattern")
	analyzeTimingCmd.Flags().StringVar(&analyzeTimingOpts.random, "random", "", "Log captured with the random pattern")
	analyzeTimingCmd.Flags().StringVar(&analyzeTimingOpts.gradient, "gradient", "", "Log captured with the gradient pattern")
	analyzeTimingCmd.Flags().StringVar(&analyzeTimingOpts.skew, "skew", "", "Log captured with the skew pattern")
	analyzeTimingCmd.Flags().StringVar(&analyzeTimingOpts.dir, "dir", "", "Directory of logs named by the capture convention")
	analyzeTimingCmd.Flags().StringVar(&analyzeTimingOpts.outputDir, "output-dir", "", "Directory for the histogram; cleared and recreated on every run")
	analyzeTimingCmd.Flags().StringVar(&analyzeTimingOpts.analysisPath, "analysis-output", "", "Optional path to write the analysis (.json, .yaml or .yml)")

	analyzeCmd.AddCommand(analyzeTimingCmd)
}
