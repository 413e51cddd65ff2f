package gpuzip

import (
	"github.com/spf13/cobra"

	"github.com/simani23/gpu-zip/internal/logging"
	"github.com/simani23/gpu-zip/internal/sweep"
	"github.com/simani23/gpu-zip/internal/tui"
)

// startBrowser is swapped out in tests.
var startBrowser = func(results []sweep.ConfigResult, opts tui.Options) error {
	return tui.Run(results, opts)
}

func runBrowse(cmd *cobra.Command, opts browseOptions) error {
	results, err := sweep.Load(opts.inputPath)
	if err != nil {
		return err
	}
	cfg := GetConfig()
	logging.LogEvent("browsing %d records from %s", len(results), opts.inputPath)
	return startBrowser(results, tui.Options{
		Source:    opts.inputPath,
		Bands:     cfg.Bands(),
		StressKey: cfg.StressKey(),
	})
}
