package appconfig

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp"
)

// ShowConfig prints the current configuration summary. With raw set, the
// merged struct is dumped as-is instead.
func ShowConfig(out io.Writer, file string, cfg *Config, raw bool) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &Config{}
	}
	if raw {
		pp.Fprintln(out, *cfg)
		return
	}

	bands := cfg.Bands()
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:        %s\n", valueOr(cfg.LogFilePath(), "(none)"))
	fmt.Fprintf(out, "  Color Output:    %v\n", !cfg.NoColor)
	fmt.Fprintf(out, "  Sigma:           %g\n", cfg.Sigma())
	fmt.Fprintf(out, "  Top N:           %d\n", cfg.TopN())
	fmt.Fprintf(out, "  Unit:            %s\n", valueOr(cfg.Unit, "cycles"))
	if cfg.Frequency > 0 {
		fmt.Fprintf(out, "  Frequency:       %g GHz\n", cfg.Frequency)
	}
	fmt.Fprintf(out, "  Plots:           %v\n", cfg.Plots)
	fmt.Fprintf(out, "  Output Dir:      %s\n", cfg.PlotDir())
	fmt.Fprintf(out, "  Stress Key:      %s\n", cfg.StressKey())
	fmt.Fprintf(out, "  No-Separation Tolerance: %g\n", cfg.Tolerance())
	fmt.Fprintf(out, "  Good Threshold:  %g\n", cfg.GoodRatio())
	fmt.Fprintf(out, "  Bands:           marginal=%g fair=%g good=%g excellent=%g outstanding=%g\n",
		bands.Marginal, bands.Fair, bands.Good, bands.Excellent, bands.Outstanding)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
