// internal/signal/quality.go
package signal

import (
	"fmt"
	"strings"
)

// Quality is the ordered verdict band assigned to a ratio. Larger values are
// better bands.
type Quality int

const (
	Poor Quality = iota
	Marginal
	Fair
	Good
	Excellent
	Outstanding
)

var qualityNames = [...]string{"POOR", "MARGINAL", "FAIR", "GOOD", "EXCELLENT", "OUTSTANDING"}

var qualityVerdicts = [...]string{
	"not usable",
	"unreliable",
	"might work",
	"should work",
	"very reliable",
	"perfect separation",
}

// String returns the band name, e.g. "GOOD".
func (q Quality) String() string {
	if q < Poor || q > Outstanding {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityNames[q]
}

// Verdict returns the short human description of the band.
func (q Quality) Verdict() string {
	if q < Poor || q > Outstanding {
		return ""
	}
	return qualityVerdicts[q]
}

// Label combines name and verdict: "GOOD (should work)".
func (q Quality) Label() string {
	return fmt.Sprintf("%s (%s)", q, q.Verdict())
}

// MarshalText encodes the band by name.
func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText decodes a band name, case-insensitively.
func (q *Quality) UnmarshalText(text []byte) error {
	name := strings.ToUpper(strings.TrimSpace(string(text)))
	for i, n := range qualityNames {
		if n == name {
			*q = Quality(i)
			return nil
		}
	}
	return fmt.Errorf("unknown quality band %q", string(text))
}

// Bands holds the lower breakpoint of every band above POOR. Each band is
// inclusive at its lower edge and exclusive at the next one.
type Bands struct {
	Marginal    float64 `json:"marginal" mapstructure:"marginal"`
	Fair        float64 `json:"fair" mapstructure:"fair"`
	Good        float64 `json:"good" mapstructure:"good"`
	Excellent   float64 `json:"excellent" mapstructure:"excellent"`
	Outstanding float64 `json:"outstanding" mapstructure:"outstanding"`
}

// DefaultBands are the empirically tuned breakpoints.
var DefaultBands = Bands{
	Marginal:    1.1,
	Fair:        1.3,
	Good:        1.5,
	Excellent:   2.0,
	Outstanding: 3.0,
}

// Validate checks that the breakpoints are strictly increasing.
func (b Bands) Validate() error {
	edges := b.edges()
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return fmt.Errorf("quality band %s (%g) must be above %s (%g)",
				Quality(i+1), edges[i], Quality(i), edges[i-1])
		}
	}
	return nil
}

// Lower returns the inclusive lower edge of q. POOR has no lower edge and
// returns 0.
func (b Bands) Lower(q Quality) float64 {
	if q <= Poor {
		return 0
	}
	edges := b.edges()
	if int(q) > len(edges) {
		return edges[len(edges)-1]
	}
	return edges[q-1]
}

// Classify maps a ratio onto its band. It is total: NaN and anything below
// the MARGINAL edge are POOR.
func (b Bands) Classify(ratio float64) Quality {
	q := Poor
	for i, edge := range b.edges() {
		if ratio >= edge {
			q = Quality(i + 1)
		}
	}
	return q
}

func (b Bands) edges() []float64 {
	return []float64{b.Marginal, b.Fair, b.Good, b.Excellent, b.Outstanding}
}

// Classify maps a ratio onto a band using DefaultBands.
func Classify(ratio float64) Quality {
	return DefaultBands.Classify(ratio)
}
