// internal/timing/set.go
package timing

// SampleSet maps pattern labels to their samples. Labels keep the order in
// which they were first added.
type SampleSet struct {
	labels  []string
	samples map[string][]float64
}

// NewSampleSet returns an empty set.
func NewSampleSet() *SampleSet {
	return &SampleSet{samples: make(map[string][]float64)}
}

// Add appends samples to label. Samples from several files are concatenated.
func (s *SampleSet) Add(label string, samples ...float64) {
	if s.samples == nil {
		s.samples = make(map[string][]float64)
	}
	if _, ok := s.samples[label]; !ok {
		s.labels = append(s.labels, label)
		s.samples[label] = []float64{}
	}
	s.samples[label] = append(s.samples[label], samples...)
}

// Labels returns labels in insertion order.
func (s *SampleSet) Labels() []string {
	return append([]string(nil), s.labels...)
}

// Samples returns the samples recorded for label.
func (s *SampleSet) Samples(label string) []float64 {
	return s.samples[label]
}

// Len reports the number of labels.
func (s *SampleSet) Len() int { return len(s.labels) }

// LabeledFile ties an input log to the label its samples belong to.
type LabeledFile struct {
	Label string
	Path  string
}

// FileError records a log that could not be used. It never aborts a batch.
type FileError struct {
	Label string
	Path  string
	Err   error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error { return e.Err }

// LoadSet parses every file into a SampleSet. Files that are missing or
// malformed are skipped and reported; the remaining files still load.
func LoadSet(files []LabeledFile, conv Conversion) (*SampleSet, []FileError) {
	set := NewSampleSet()
	var problems []FileError
	for _, f := range files {
		samples, err := ReadLog(f.Path, conv)
		if err != nil {
			problems = append(problems, FileError{Label: f.Label, Path: f.Path, Err: err})
			continue
		}
		set.Add(f.Label, samples...)
	}
	return set, problems
}
