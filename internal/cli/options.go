// internal/cli/options.go
package gpuzip

import (
	"github.com/fatih/color"

	"github.com/simani23/gpu-zip/internal/analysis"
	"github.com/simani23/gpu-zip/internal/appconfig"
)

// analysisOptions maps the merged configuration onto the engine's options.
// Colour is used only when the config allows it and stdout is a terminal.
func analysisOptions(cfg *appconfig.Config) analysis.Options {
	return analysis.Options{
		Plots:      cfg.Plots,
		OutputDir:  cfg.PlotDir(),
		TopN:       cfg.TopN(),
		StressTopN: cfg.StressTopN(),
		Sigma:      cfg.Sigma(),
		Bands:      cfg.Bands(),
		GoodRatio:  cfg.GoodRatio(),
		StressKey:  cfg.StressKey(),
		Tolerance:  cfg.Tolerance(),
		Unit:       cfg.Unit,
		Color:      !cfg.NoColor && !color.NoColor,
	}
}
