package gpuzip

import (
	"github.com/spf13/cobra"

	"github.com/simani23/gpu-zip/internal/analysis"
	"github.com/simani23/gpu-zip/internal/logging"
	"github.com/simani23/gpu-zip/internal/timing"
)

func runAnalyzeTiming(cmd *cobra.Command, opts analyzeTimingOptions, args []string) error {
	cfg := GetConfig()
	conv, err := cfg.Conversion()
	if err != nil {
		return err
	}

	files := namedTimingFiles(opts, args)
	if opts.dir != "" {
		found, skipped, err := timing.DefaultConvention.ScanDir(opts.dir)
		if err != nil {
			return err
		}
		for _, path := range skipped {
			logging.LogEvent("ignoring %s: name does not match the log convention", path)
		}
		files = append(files, found...)
	}

	aopts := analysisOptions(cfg)
	aopts.AnalysisPath = opts.analysisPath
	if cmd.Flags().Changed("output-dir") {
		aopts.OutputDir = opts.outputDir
		aopts.Plots = opts.outputDir != ""
	}
	aopts.PrepareOutputDir = func(dir string) error {
		return prepareOutputDir(dir, timingInputs(files, opts.dir)...)
	}

	return analysis.RunTiming(aopts, files, conv, cmd.OutOrStdout())
}

// namedTimingFiles collects the logs passed by flag or as the positional
// Compressible/Non-compressible pair.
func namedTimingFiles(opts analyzeTimingOptions, args []string) []timing.LabeledFile {
	var files []timing.LabeledFile
	for _, f := range []timing.LabeledFile{
		{Label: timing.Black, Path: opts.black},
		{Label: timing.Random, Path: opts.random},
		{Label: timing.Gradient, Path: opts.gradient},
		{Label: timing.Skew, Path: opts.skew},
	} {
		if f.Path != "" {
			files = append(files, f)
		}
	}
	if len(args) == 2 {
		files = append(files,
			timing.LabeledFile{Label: timing.Compressible, Path: args[0]},
			timing.LabeledFile{Label: timing.NonCompressible, Path: args[1]},
		)
	}
	return files
}

// timingInputs lists every path the timing run reads from.
func timingInputs(files []timing.LabeledFile, dir string) []string {
	inputs := make([]string, 0, len(files)+1)
	for _, f := range files {
		inputs = append(inputs, f.Path)
	}
	if dir != "" {
		inputs = append(inputs, dir)
	}
	return inputs
}
