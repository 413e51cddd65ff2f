// internal/analysis/report.go
package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/simani23/gpu-zip/internal/robust"
	"github.com/simani23/gpu-zip/internal/selector"
	"github.com/simani23/gpu-zip/internal/signal"
	"github.com/simani23/gpu-zip/internal/sweep"
)

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

// styles holds the markers of one report. With colour off every marker
// prints plain text.
type styles struct {
	color bool
	good  func(a ...interface{}) string
	bad   func(a ...interface{}) string
	warn  func(a ...interface{}) string
}

func newStyles(enabled bool) styles {
	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	warn := color.New(color.FgYellow)
	if enabled {
		good.EnableColor()
		bad.EnableColor()
		warn.EnableColor()
	} else {
		good.DisableColor()
		bad.DisableColor()
		warn.DisableColor()
	}
	return styles{
		color: enabled,
		good:  good.SprintFunc(),
		bad:   bad.SprintFunc(),
		warn:  warn.SprintFunc(),
	}
}

func (s styles) banner(w io.Writer, title string) {
	rule := strings.Repeat("=", 60)
	if s.color {
		title = bannerStyle.Render(title)
	}
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
}

func (s styles) quality(q signal.Quality) string {
	switch {
	case q >= signal.Good:
		return s.good(q.Label())
	case q >= signal.Fair:
		return s.warn(q.Label())
	}
	return s.bad(q.Label())
}

func (s styles) direction(d selector.Direction, text string) string {
	switch d {
	case selector.Helping:
		return s.good("[+] " + text)
	case selector.Hurting:
		return s.bad("[-] " + text)
	}
	return s.warn("[!] " + text)
}

func (s styles) recommendation(w io.Writer, rec selector.Recommendation) {
	s.banner(w, "RECOMMENDATIONS")
	switch rec.Level {
	case selector.LevelGood:
		fmt.Fprintf(w, "\n%s\n", s.good("[+] "+rec.Headline))
	case selector.LevelCritical:
		fmt.Fprintf(w, "\n%s\n", s.bad("[-] "+rec.Headline))
	default:
		fmt.Fprintf(w, "\n%s\n", s.warn("[!] "+rec.Headline))
	}
	for i, line := range rec.Advice {
		fmt.Fprintf(w, "   %d. %s\n", i+1, line)
	}
}

// WriteResultsReport prints the results analysis as text.
func WriteResultsReport(w io.Writer, a ResultsAnalysis, colored bool) {
	s := newStyles(colored)

	s.banner(w, "BASIC STATISTICS")
	fmt.Fprintf(w, "\nTotal tests: %d\n", a.Summary.Total)
	fmt.Fprintf(w, "Successful: %d\n", a.Summary.Valid)
	fmt.Fprintf(w, "Failed: %d\n", a.Summary.Failed)
	if a.Summary.Valid == 0 {
		fmt.Fprintln(w, s.warn("\nNo valid results to analyze!"))
		return
	}
	r := a.Summary.Ratio
	fmt.Fprintf(w, "\nRatio Statistics:\n")
	fmt.Fprintf(w, "  Mean: %.3f\n  Median: %.3f\n  Min: %.3f\n  Max: %.3f\n", r.Mean, r.Median, r.Min, r.Max)
	if a.Summary.HasStdDev {
		fmt.Fprintf(w, "  Std Dev: %.3f\n", r.StdDev)
	} else {
		fmt.Fprintln(w, "  Std Dev: N/A")
	}
	writeTimeStat(w, "Black", a.Summary.BlackTime)
	writeTimeStat(w, "White", a.Summary.WhiteTime)

	s.banner(w, fmt.Sprintf("TOP %d CONFIGURATIONS (by ratio)", len(a.Top)))
	for _, ranked := range a.Top {
		writeRanked(w, s, ranked, a.Bands)
	}

	s.banner(w, "PARAMETER ANALYSIS")
	for _, effect := range a.Effects {
		writeEffect(w, effect)
	}
	if len(a.Importance) > 0 {
		fmt.Fprintln(w, "\nParameter importance (spread of group means):")
		for _, p := range a.Importance {
			fmt.Fprintf(w, "  %-16s %.3f\n", p.Param, p.Importance)
		}
	}
	if a.Interaction != nil {
		writeInteraction(w, *a.Interaction)
	}

	if a.Stress != nil {
		writeStressComparison(w, s, *a.Stress)
	}

	s.banner(w, "BEST CONFIGURATION FOUND")
	best := a.Best.Result
	fmt.Fprintf(w, "\nName: %s\n", best.Name())
	fmt.Fprintf(w, "Ratio: %.3f (%s)\n", best.Ratio(), s.quality(a.Best.Quality))
	fmt.Fprintln(w, "\nRecommended parameters:")
	writeParams(w, best.Config, "  ")

	if a.Patterns.Count > 0 {
		fmt.Fprintf(w, "\n%d configurations achieve GOOD or better separation (ratio >= %.2f)\n", a.Patterns.Count, a.Patterns.MinRatio)
		fmt.Fprintln(w, "\nCommon patterns in successful configurations:")
		for _, p := range a.Patterns.Params {
			fmt.Fprintf(w, "  %s: avg=%.1f, range=[%g, %g]\n", p.Param, p.Mean, p.Min, p.Max)
		}
	} else {
		fmt.Fprintln(w, s.warn(fmt.Sprintf("\nWARNING: No configurations achieved GOOD separation (ratio >= %.2f)", a.Patterns.MinRatio)))
		fmt.Fprintln(w, "Consider:")
		for i, line := range selector.FallbackAdvice {
			fmt.Fprintf(w, "  %d. %s\n", i+1, line)
		}
	}

	s.recommendation(w, a.Recommendation)
}

func writeTimeStat(w io.Writer, name string, stat robust.AggregateStat) {
	fmt.Fprintf(w, "\n%s Time Statistics:\n", name)
	fmt.Fprintf(w, "  Mean: %.2f\n  Min: %.2f\n  Max: %.2f\n", stat.Mean, stat.Min, stat.Max)
}

func writeRanked(w io.Writer, s styles, ranked selector.Ranked, bands signal.Bands) {
	r := ranked.Result
	fmt.Fprintf(w, "\n%d. %s\n", ranked.Rank, r.Name())
	fmt.Fprintf(w, "   Ratio: %.3f (%s)\n", r.Ratio(), s.quality(bands.Classify(r.Ratio())))
	fmt.Fprintf(w, "   Black: %.2f, White: %.2f\n", r.Results.BlackTime, r.Results.WhiteTime)
	fmt.Fprintln(w, "   Parameters:")
	writeParams(w, r.Config, "     ")
}

func writeParams(w io.Writer, cfg sweep.Config, indent string) {
	for _, key := range cfg.Params() {
		v, _ := cfg.Get(key)
		fmt.Fprintf(w, "%s%s: %s\n", indent, key, v)
	}
}

func writeEffect(w io.Writer, effect sweep.ParameterEffect) {
	fmt.Fprintf(w, "\nEffect of %s:\n", strings.ToUpper(effect.Param))
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, g := range effect.Groups {
		fmt.Fprintf(w, "  %10s: avg=%.3f, max=%.3f, min=%.3f (%d tests)\n",
			g.Value, g.Stat.Mean, g.Stat.Max, g.Stat.Min, g.Stat.N)
	}
}

func writeInteraction(w io.Writer, grid sweep.Grid) {
	fmt.Fprintf(w, "\nInteraction of %s (rows) and %s (columns), mean ratio:\n", grid.X, grid.Y)
	fmt.Fprintf(w, "  %10s", "")
	for _, y := range grid.YValues {
		fmt.Fprintf(w, " %8s", y)
	}
	fmt.Fprintln(w)
	for i, x := range grid.XValues {
		fmt.Fprintf(w, "  %10s", x)
		for _, cell := range grid.Cells[i] {
			if !cell.OK {
				fmt.Fprintf(w, " %8s", "-")
				continue
			}
			fmt.Fprintf(w, " %8.3f", cell.Stat.Mean)
		}
		fmt.Fprintln(w)
	}
}

func writeSubset(w io.Writer, name string, sub selector.Subset) {
	fmt.Fprintf(w, "  %s:\n", name)
	fmt.Fprintf(w, "    Mean: %.3f\n    Max:  %.3f\n    Min:  %.3f\n", sub.Mean, sub.Max, sub.Min)
}

func writeStressComparison(w io.Writer, s styles, cmp selector.StressComparison) {
	s.banner(w, "STRESS EFFECTIVENESS")
	fmt.Fprintf(w, "\n  With stress enabled: %d\n  Without stress: %d\n", cmp.Stress.Count, cmp.Control.Count)
	fmt.Fprintln(w, "\nRatio Statistics:")
	writeSubset(w, "With stress", cmp.Stress)
	writeSubset(w, "Without stress", cmp.Control)
	fmt.Fprintln(w)

	switch cmp.MaxEffect {
	case selector.Helping:
		fmt.Fprintln(w, s.direction(cmp.MaxEffect, fmt.Sprintf("Stress is HELPING: best with stress (%.3f) is %.1f%% better than without (%.3f)",
			cmp.Stress.Max, cmp.MaxChangePercent, cmp.Control.Max)))
	case selector.Hurting:
		fmt.Fprintln(w, s.direction(cmp.MaxEffect, fmt.Sprintf("Stress is HURTING: best with stress (%.3f) is %.1f%% worse than without (%.3f)",
			cmp.Stress.Max, -cmp.MaxChangePercent, cmp.Control.Max)))
	default:
		fmt.Fprintln(w, s.direction(cmp.MaxEffect, fmt.Sprintf("Stress has NO EFFECT: both have the same max ratio (%.3f)", cmp.Stress.Max)))
	}
	switch cmp.MeanEffect {
	case selector.Helping:
		fmt.Fprintln(w, s.direction(cmp.MeanEffect, fmt.Sprintf("Stress improves average ratio (%+.3f)", cmp.MeanDelta)))
	case selector.Hurting:
		fmt.Fprintln(w, s.direction(cmp.MeanEffect, fmt.Sprintf("Stress reduces average ratio (%+.3f)", cmp.MeanDelta)))
	default:
		fmt.Fprintln(w, s.direction(cmp.MeanEffect, "Stress has no effect on average ratio"))
	}

	if cmp.Stress.NoSeparation || cmp.Control.NoSeparation {
		s.banner(w, "SEPARATION QUALITY")
	}
	if cmp.Stress.NoSeparation {
		fmt.Fprintln(w, s.bad(fmt.Sprintf("CRITICAL: All %d stress tests have ratio ~ 1.0 (NO SEPARATION)", cmp.Stress.Count)))
		fmt.Fprintln(w, "   Memory stress workers may not be running, or stress does not affect GPU timing on this hardware.")
	}
	if cmp.Control.NoSeparation {
		fmt.Fprintln(w, s.bad(fmt.Sprintf("CRITICAL: All %d no-stress tests have ratio ~ 1.0 (NO SEPARATION)", cmp.Control.Count)))
	}
}

// WriteStressReport prints the stress analysis as text.
func WriteStressReport(w io.Writer, a StressAnalysis, colored bool) {
	s := newStyles(colored)
	s.banner(w, "MEMORY STRESS EFFECTIVENESS ANALYSIS")
	fmt.Fprintf(w, "\nTotal valid tests: %d\n", a.Summary.Valid)
	if a.Summary.Valid == 0 {
		fmt.Fprintln(w, s.warn("No valid results to analyze!"))
		return
	}
	if a.Warning != "" {
		fmt.Fprintln(w, s.warn("\nWARNING: "+a.Warning))
	}
	if a.Comparison != nil {
		writeStressComparison(w, s, *a.Comparison)
	}

	if len(a.TopStress) > 0 {
		s.banner(w, fmt.Sprintf("TOP %d STRESS CONFIGURATIONS", len(a.TopStress)))
		for _, ranked := range a.TopStress {
			r := ranked.Result
			fmt.Fprintf(w, "\n%d. Ratio: %.3f (Black: %.2f, White: %.2f)\n", ranked.Rank, r.Ratio(), r.Results.BlackTime, r.Results.WhiteTime)
			fmt.Fprintf(w, "   Workers: %s, Digits: %s\n", paramOr(r.Config, "num_workers"), paramOr(r.Config, "bigint_digits"))
			fmt.Fprintf(w, "   div_size: %s, layer: %s\n", paramOr(r.Config, "div_size"), paramOr(r.Config, "layer"))
		}
	}

	s.banner(w, "STRESS CONFIGURATION VARIETY")
	if len(a.Variety) == 0 {
		fmt.Fprintln(w, s.bad("\nNo stress configurations found!"))
	}
	for _, v := range a.Variety {
		names := make([]string, len(v.Values))
		for i, val := range v.Values {
			names[i] = val.String()
		}
		fmt.Fprintf(w, "\n%s tested: [%s]\n", v.Param, strings.Join(names, ", "))
		if v.NeedsVariety {
			only := "none"
			if len(names) == 1 {
				only = names[0]
			}
			fmt.Fprintln(w, s.warn(fmt.Sprintf("Only %s %s tested, may need more variety", only, v.Param)))
		}
	}

	s.banner(w, fmt.Sprintf("TOP %d CONFIGURATIONS (ALL)", len(a.Top)))
	for _, ranked := range a.Top {
		r := ranked.Result
		stress := " | No stress"
		if on, _ := r.Config.Get(a.StressKey); on.String() == "1" || on.String() == "true" {
			stress = fmt.Sprintf(" | Stress: %s workers, %s digits", paramOr(r.Config, "num_workers"), paramOr(r.Config, "bigint_digits"))
		}
		fmt.Fprintf(w, "\n%d. Ratio: %.3f (Black: %.2f, White: %.2f)\n", ranked.Rank, r.Ratio(), r.Results.BlackTime, r.Results.WhiteTime)
		fmt.Fprintf(w, "   div_size: %s, layer: %s%s\n", paramOr(r.Config, "div_size"), paramOr(r.Config, "layer"), stress)
	}

	s.recommendation(w, a.Recommendation)
}

func paramOr(cfg sweep.Config, key string) string {
	if v, ok := cfg.Get(key); ok {
		return v.String()
	}
	return "N/A"
}

// WriteTimingReport prints the timing analysis as text.
func WriteTimingReport(w io.Writer, a TimingAnalysis, colored bool) {
	s := newStyles(colored)
	for _, p := range a.Problems {
		fmt.Fprintln(w, s.warn("skipped "+p))
	}

	s.banner(w, "TIMING SAMPLES")
	for _, l := range a.Labels {
		fmt.Fprintf(w, "\n%s: %d samples (%d kept", l.Label, l.Raw, l.Stat.N)
		if l.NonPositive > 0 {
			fmt.Fprintf(w, ", %d non-positive", l.NonPositive)
		}
		if l.Outliers > 0 {
			fmt.Fprintf(w, ", %d beyond %gσ", l.Outliers, a.Sigma)
		}
		fmt.Fprintln(w, ")")
		if l.FellBack {
			fmt.Fprintln(w, s.warn("  outlier filter rejected every sample; using unfiltered positive samples"))
		}
		if l.Stat.N == 0 {
			continue
		}
		fmt.Fprintf(w, "  Mean: %.3f %s, Std Dev: %.3f, Min: %.3f, Max: %.3f\n", l.Stat.Mean, a.Unit, l.Stat.StdDev, l.Stat.Min, l.Stat.Max)
	}

	s.banner(w, "SIGNAL QUALITY")
	if len(a.Comparisons) == 0 {
		fmt.Fprintln(w, s.warn(fmt.Sprintf("\nNo %s baseline to compare against.", a.Baseline)))
		return
	}
	for _, c := range a.Comparisons {
		fmt.Fprintf(w, "\n%s vs %s\n", c.Label, c.Baseline)
		fmt.Fprintf(w, "  %s time: %.3f %s\n  %s time: %.3f %s\n", c.Baseline, c.Result.BlackTime, a.Unit, c.Label, c.Result.WhiteTime, a.Unit)
		fmt.Fprintf(w, "  Ratio: %.3f (%s)\n", c.Result.Ratio, s.quality(c.Quality))
	}
}
