package gpuzip

import (
	"github.com/spf13/cobra"

	"github.com/simani23/gpu-zip/internal/appconfig"
)

func runShowConfig(cmd *cobra.Command, raw bool) {
	cfg := GetConfig()
	appconfig.ShowConfig(cmd.OutOrStdout(), cfg.ConfigPath, cfg, raw)
}
