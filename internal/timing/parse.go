// internal/timing/parse.go
// Package timing reads the raw begin/end counter logs written by the capture
// harness and turns them into duration samples.
package timing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoData is returned (wrapped) when an input log does not exist.
var ErrNoData = errors.New("no data")

// Unit selects the output unit of parsed samples.
type Unit string

const (
	// Cycles keeps raw counter deltas.
	Cycles Unit = "cycles"
	// Micros converts deltas to microseconds.
	Micros Unit = "us"
	// Millis converts deltas to milliseconds.
	Millis Unit = "ms"
)

// ParseUnit resolves a unit name. An empty name means Cycles.
func ParseUnit(name string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(name))) {
	case "", Cycles:
		return Cycles, nil
	case Micros:
		return Micros, nil
	case Millis:
		return Millis, nil
	}
	return "", fmt.Errorf("unknown unit %q (want cycles, us or ms)", name)
}

// scale is the divisor applied on top of the clock frequency in GHz.
func (u Unit) scale() float64 {
	switch u {
	case Micros:
		return 1e3
	case Millis:
		return 1e6
	}
	return 1
}

// Conversion describes how counter deltas become samples. FrequencyGHz is
// supplied by the caller; it is only consulted for wall-clock units.
type Conversion struct {
	Unit         Unit
	FrequencyGHz float64
}

// Validate reports whether the conversion can be applied.
func (c Conversion) Validate() error {
	if c.Unit == "" || c.Unit == Cycles {
		return nil
	}
	if _, err := ParseUnit(string(c.Unit)); err != nil {
		return err
	}
	if !(c.FrequencyGHz > 0) {
		return fmt.Errorf("unit %s needs a clock frequency, got %g GHz", c.Unit, c.FrequencyGHz)
	}
	return nil
}

// Convert turns one counter delta into a sample.
func (c Conversion) Convert(delta int64) float64 {
	if c.Unit == "" || c.Unit == Cycles {
		return float64(delta)
	}
	return float64(delta) / (c.Unit.scale() * c.FrequencyGHz)
}

// A SyntaxError reports a malformed line in a counter log.
type SyntaxError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	name := e.File
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d: invalid counter %q: %v", name, e.Line, e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ParseLog reads alternating begin/end lines from r. Parsing stops without
// error at end of input, when an end line is missing, or when a line is
// blank. Non-positive deltas are kept; excluding them is up to the caller.
func ParseLog(r io.Reader, conv Conversion) ([]float64, error) {
	return parseLog(r, "", conv)
}

func parseLog(r io.Reader, name string, conv Conversion) ([]float64, error) {
	if err := conv.Validate(); err != nil {
		return nil, err
	}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var samples []float64
	line := 0
	next := func() (uint64, bool, error) {
		if !s.Scan() {
			return 0, false, nil
		}
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return 0, false, nil
		}
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok {
				err = ne.Err
			}
			return 0, false, &SyntaxError{File: name, Line: line, Text: text, Err: err}
		}
		return v, true, nil
	}

	for {
		begin, ok, err := next()
		if err != nil {
			return samples, err
		}
		if !ok {
			break
		}
		end, ok, err := next()
		if err != nil {
			return samples, err
		}
		if !ok {
			break
		}
		samples = append(samples, conv.Convert(int64(end-begin)))
	}
	if err := s.Err(); err != nil {
		return samples, fmt.Errorf("read %s: %w", displayName(name), err)
	}
	return samples, nil
}

// ReadLog parses the log at path. A missing file yields an error wrapping
// ErrNoData.
func ReadLog(path string, conv Conversion) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoData)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parseLog(f, path, conv)
}

func displayName(name string) string {
	if name == "" {
		return "<input>"
	}
	return name
}
