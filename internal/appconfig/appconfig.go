// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/simani23/gpu-zip/internal/robust"
	"github.com/simani23/gpu-zip/internal/selector"
	"github.com/simani23/gpu-zip/internal/signal"
	"github.com/simani23/gpu-zip/internal/timing"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultTopN is how many ranked configurations the reports list.
	defaultTopN = 10
	// defaultStressTopN is how many stress configurations the stress report lists.
	defaultStressTopN = 5
	// defaultOutputDir is where charts are written when plotting is enabled.
	defaultOutputDir = "plots"
)

// Config represents the top-level application configuration.
type Config struct {
	Debug                 bool         `json:"debug" mapstructure:"debug"`
	LogFile               string       `json:"logFile,omitempty" mapstructure:"logFile"`
	NoColor               bool         `json:"noColor,omitempty" mapstructure:"noColor"`
	// SigmaCut is the outlier cut-off; 0 (or unset) means robust.DefaultSigma.
	SigmaCut              float64      `json:"sigma,omitempty" mapstructure:"sigma"`
	TopCount              int          `json:"topN,omitempty" mapstructure:"topN"`
	Unit                  string       `json:"unit,omitempty" mapstructure:"unit"`
	Frequency             float64      `json:"frequency,omitempty" mapstructure:"frequency"`
	OutputDir             string       `json:"outputDir,omitempty" mapstructure:"outputDir"`
	Plots                 bool         `json:"plots" mapstructure:"plots"`
	StressFlag            string       `json:"stressKey,omitempty" mapstructure:"stressKey"`
	// NoSeparationTolerance is the distance from 1.0 under which every ratio
	// of a subset must fall for the subset to count as not separating.
	NoSeparationTolerance float64      `json:"noSeparationTolerance,omitempty" mapstructure:"noSeparationTolerance"`
	GoodThreshold         float64      `json:"goodThreshold,omitempty" mapstructure:"goodThreshold"`
	QualityBands          signal.Bands `json:"bands" mapstructure:"bands"`
	ConfigPath            string       `json:"-" mapstructure:"-"`
}

// Sigma returns the outlier cut-off. A zero SigmaCut is indistinguishable from
// an unset one and selects robust.DefaultSigma.
func (c Config) Sigma() float64 {
	if c.SigmaCut <= 0 {
		return robust.DefaultSigma
	}
	return c.SigmaCut
}

// TopN returns the number of ranked configurations to report.
func (c Config) TopN() int {
	if c.TopCount <= 0 {
		return defaultTopN
	}
	return c.TopCount
}

// StressTopN returns how many stress configurations the stress report lists.
func (c Config) StressTopN() int {
	if c.TopCount > 0 && c.TopCount < defaultStressTopN {
		return c.TopCount
	}
	return defaultStressTopN
}

// Conversion returns the sample unit conversion described by unit and frequency.
func (c Config) Conversion() (timing.Conversion, error) {
	unit, err := timing.ParseUnit(c.Unit)
	if err != nil {
		return timing.Conversion{}, err
	}
	conv := timing.Conversion{Unit: unit, FrequencyGHz: c.Frequency}
	if err := conv.Validate(); err != nil {
		return timing.Conversion{}, err
	}
	return conv, nil
}

// PlotDir returns the chart output directory, applying a default if not set.
func (c Config) PlotDir() string {
	if dir := strings.TrimSpace(c.OutputDir); dir != "" {
		return dir
	}
	return defaultOutputDir
}

// StressKey returns the configuration key that marks stress runs.
func (c Config) StressKey() string {
	if key := strings.TrimSpace(c.StressFlag); key != "" {
		return key
	}
	return selector.DefaultStressKey
}

// Tolerance returns the no-separation tolerance around a ratio of 1.0.
func (c Config) Tolerance() float64 {
	if c.NoSeparationTolerance <= 0 {
		return selector.DefaultTolerance
	}
	return c.NoSeparationTolerance
}

// Bands returns the quality breakpoints, using signal.DefaultBands when none
// are configured.
func (c Config) Bands() signal.Bands {
	if c.QualityBands == (signal.Bands{}) {
		return signal.DefaultBands
	}
	return c.QualityBands
}

// GoodRatio is the ratio from which a configuration counts as working well
// enough to mine for common patterns. It defaults to the GOOD breakpoint.
func (c Config) GoodRatio() float64 {
	if c.GoodThreshold > 0 {
		return c.GoodThreshold
	}
	return c.Bands().Good
}

// LogFilePath returns the path to the application log file, or "" when file
// logging is off.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// Validate rejects settings the analysis cannot run with. Zero numeric
// settings are accepted and mean "use the default".
func (c Config) Validate() error {
	var problems []string
	if c.SigmaCut < 0 {
		problems = append(problems, fmt.Sprintf("sigma must not be negative (got %g)", c.SigmaCut))
	}
	if c.NoSeparationTolerance < 0 {
		problems = append(problems, fmt.Sprintf("noSeparationTolerance must not be negative (got %g)", c.NoSeparationTolerance))
	}
	if err := c.Bands().Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := c.Conversion(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Locate resolves the configuration file to read. An empty path means the
// default location, falling back to the legacy config.json; when neither
// exists Locate returns "" and no error so defaults apply. A named path that
// does not exist is an error.
func Locate(path string) (string, error) {
	if path != "" {
		if err := exists(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("no configuration file found at %q: %w", path, err)
			}
			return "", fmt.Errorf("could not read config file %q: %w", path, err)
		}
		return path, nil
	}

	for _, candidate := range []string{DefaultConfigPath, legacyConfigPath} {
		err := exists(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("could not read config file %q: %w", candidate, err)
		}
	}
	return "", nil
}

func exists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
