// internal/selector/recommend.go
package selector

import (
	"fmt"

	"github.com/simani23/gpu-zip/internal/signal"
)

// Level is the recommendation tier derived from the best ratio.
type Level int

const (
	LevelCritical Level = iota
	LevelMarginal
	LevelFair
	LevelGood
)

func (l Level) String() string {
	switch l {
	case LevelMarginal:
		return "marginal"
	case LevelFair:
		return "fair"
	case LevelGood:
		return "good"
	}
	return "critical"
}

func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// Recommendation is the closing advice of a stress or results analysis.
type Recommendation struct {
	Level     Level          `json:"level" yaml:"level"`
	BestRatio float64        `json:"bestRatio" yaml:"bestRatio"`
	Quality   signal.Quality `json:"quality" yaml:"quality"`
	Headline  string         `json:"headline" yaml:"headline"`
	Advice    []string       `json:"advice,omitempty" yaml:"advice,omitempty"`
}

// Recommend picks the advice tier for the best observed ratio. A best ratio
// of 0 stands for "no valid configuration" and is critical.
func Recommend(bestRatio float64, bands signal.Bands) Recommendation {
	rec := Recommendation{
		Level:     classifyLevel(bestRatio, bands),
		BestRatio: bestRatio,
		Quality:   bands.Classify(bestRatio),
	}
	switch rec.Level {
	case LevelCritical:
		rec.Headline = fmt.Sprintf("No usable separation found (best ratio < %.1f)", bands.Marginal)
		rec.Advice = []string{
			"Verify the memory stress workers are actually running during capture",
			"Try a different GPU (integrated vs discrete)",
			"Check whether this attack method works on the target hardware",
			"Try the alternate capture method (cache vs pixel-pipeline)",
		}
	case LevelMarginal:
		rec.Headline = fmt.Sprintf("Marginal separation (best ratio < %.1f), attack may be unreliable", bands.Fair)
		rec.Advice = []string{
			"Test more extreme parameter values",
			"Increase memory stress (more workers, more digits)",
			"Lengthen time_collect and repetition",
		}
	case LevelFair:
		rec.Headline = fmt.Sprintf("Fair separation (best ratio < %.1f), attack might work but could be unreliable", bands.Good)
	default:
		rec.Headline = fmt.Sprintf("Good separation found (best ratio %.3f), attack should be usable", bestRatio)
	}
	return rec
}

// classifyLevel folds the quality bands into the four advice tiers.
func classifyLevel(ratio float64, bands signal.Bands) Level {
	switch {
	case !(ratio >= bands.Marginal):
		return LevelCritical
	case ratio < bands.Fair:
		return LevelMarginal
	case ratio < bands.Good:
		return LevelFair
	default:
		return LevelGood
	}
}

// FallbackAdvice is printed when no configuration reaches the GOOD band.
var FallbackAdvice = []string{
	"Test more extreme parameter values",
	"Enable memory stress if it is not already enabled",
	"Verify the GPU type (integrated GPUs separate better than discrete ones)",
	"Try the alternate capture method (cache vs pixel-pipeline)",
}
