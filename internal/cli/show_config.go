// internal/cli/show_config.go
package gpuzip

import (
	"github.com/spf13/cobra"
)

var showConfigRaw bool

// showConfigCmd implements 'show config', which prints the merged settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags accordingly.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runShowConfig(cmd, showConfigRaw)
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showConfigRaw, "raw", false, "Dump the merged configuration struct")

	showCmd.AddCommand(showConfigCmd)
}
