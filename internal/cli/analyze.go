// internal/cli/analyze.go
package gpuzip

import (
	"github.com/spf13/cobra"
)

// analyzeCmd represents the 'analyze' command group.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Group commands for analyzing timing logs and sweep results",
	Long:  `The 'analyze' command groups subcommands that characterize raw timing logs, parameter sweep results and stress effectiveness.`,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
