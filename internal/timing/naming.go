// internal/timing/naming.go
package timing

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
)

// Pattern labels written by the capture harness.
const (
	Black           = "Black"
	Random          = "Random"
	Gradient        = "Gradient"
	Skew            = "Skew"
	Compressible    = "Compressible"
	NonCompressible = "Non-compressible"
)

// patternCodes maps the numeric pattern token in a log name to its label.
var patternCodes = map[float64]string{
	0:   Black,
	1:   Random,
	100: Gradient,
	101: Skew,
}

// IsBaseline reports whether a pattern label is a compressible baseline.
func IsBaseline(pattern string) bool {
	return pattern == Black || pattern == Compressible
}

// Convention describes how a log path encodes its pattern and stressor count.
type Convention struct {
	// PatternToken is the position, counted from the end starting at 1, of
	// the "_"-separated file-name token holding the pattern code.
	PatternToken int
	// Ext is the log file extension, including the dot.
	Ext string
}

// DefaultConvention matches names like time_2_3000_1.0_100.txt, where the
// second to last token is the pattern code.
var DefaultConvention = Convention{PatternToken: 2, Ext: ".txt"}

// Label builds a label from a pattern and an optional stressor count.
func Label(pattern, stressors string) string {
	if stressors == "" {
		return pattern
	}
	return pattern + "@" + stressors
}

// SplitLabel undoes Label.
func SplitLabel(label string) (pattern, stressors string) {
	if i := strings.LastIndex(label, "@"); i >= 0 {
		return label[:i], label[i+1:]
	}
	return label, ""
}

// Classify derives the label of a log from its path. It reports false when
// the name does not follow the convention.
func (c Convention) Classify(path string) (string, bool) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	tokens := strings.Split(base, "_")
	pos := c.PatternToken
	if pos <= 0 {
		pos = 1
	}
	if len(tokens) < pos {
		return "", false
	}
	code, err := strconv.ParseFloat(tokens[len(tokens)-pos], 64)
	if err != nil {
		return "", false
	}
	pattern, ok := patternCodes[code]
	if !ok {
		return "", false
	}
	return Label(pattern, trailingDigits(filepath.Base(filepath.Dir(path)))), true
}

func trailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[i:]
}

// ScanDir walks dir and classifies every log file in it. Names that do not
// follow the convention are returned in skipped.
func (c Convention) ScanDir(dir string) (files []LabeledFile, skipped []string, err error) {
	ext := c.Ext
	if ext == "" {
		ext = DefaultConvention.Ext
	}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}
		label, ok := c.Classify(path)
		if !ok {
			skipped = append(skipped, path)
			return nil
		}
		files = append(files, LabeledFile{Label: label, Path: path})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return files, skipped, nil
}
