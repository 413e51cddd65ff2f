// internal/cli/browse.go
package gpuzip

import (
	"github.com/spf13/cobra"
)

type browseOptions struct {
	inputPath string
}

var browseOpts browseOptions

// browseCmd opens the interactive ranking browser.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse ranked sweep configurations interactively",
	Long:  `Open a terminal browser over the ranked configurations of a results file. Arrow keys move, s toggles the stress-only view and q quits.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd, browseOpts)
	},
}

func init() {
	browseCmd.Flags().StringVar(&browseOpts.inputPath, "input", "results.json", "Path to the sweep results JSON")

	rootCmd.AddCommand(browseCmd)
}
