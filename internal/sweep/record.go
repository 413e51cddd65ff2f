// internal/sweep/record.go
package sweep

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"go.yaml.in/yaml/v3"
)

// NameKey is the configuration key holding a run's display name. It is never
// treated as a parameter.
const NameKey = "name"

// Config is the parameter mapping a run was executed under. Keys keep the
// order in which they appear in the results file.
type Config struct {
	keys   []string
	values map[string]Value
}

// Set adds or replaces a parameter. New keys go to the end.
func (c *Config) Set(key string, v Value) {
	if c.values == nil {
		c.values = make(map[string]Value)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = v
}

// Get returns the value for key and whether the record carries it.
func (c Config) Get(key string) (Value, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns every key in file order, including the name.
func (c Config) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Params returns the parameter keys in file order, without the name.
func (c Config) Params() []string {
	out := make([]string, 0, len(c.keys))
	for _, k := range c.keys {
		if k != NameKey {
			out = append(out, k)
		}
	}
	return out
}

// Name returns the configuration's display name, or "" when absent.
func (c Config) Name() string {
	v, ok := c.values[NameKey]
	if !ok || v.Kind() == KindNull {
		return ""
	}
	return v.String()
}

func (c *Config) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("config must be an object")
	}
	*c = Config{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("config key %v is not a string", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("config %q: %w", key, err)
		}
		v, err := parseValue(raw)
		if err != nil {
			return fmt.Errorf("config %q: %w", key, err)
		}
		c.Set(key, v)
	}
	_, err = dec.Token()
	return err
}

func (c Config) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := c.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits an ordered mapping node.
func (c Config) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range c.keys {
		var val yaml.Node
		native, err := c.values[k].MarshalYAML()
		if err != nil {
			return nil, err
		}
		if err := val.Encode(native); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, &val)
	}
	return node, nil
}

// Results is the measured outcome of one run.
type Results struct {
	BlackTime float64  `json:"blackTime" yaml:"blackTime"`
	WhiteTime float64  `json:"whiteTime" yaml:"whiteTime"`
	Ratio     *float64 `json:"ratio" yaml:"ratio"`
}

// ConfigResult is one record of a results file. Results is nil for a failed
// run.
type ConfigResult struct {
	Config  Config   `json:"config" yaml:"config"`
	Results *Results `json:"results" yaml:"results"`
	// Index is the record's position in its input file.
	Index int `json:"-" yaml:"-"`
}

// Valid reports whether the record carries a finite, positive ratio.
func (r ConfigResult) Valid() bool {
	if r.Results == nil || r.Results.Ratio == nil {
		return false
	}
	v := *r.Results.Ratio
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Ratio returns the record's ratio, or 0 for an invalid record.
func (r ConfigResult) Ratio() float64 {
	if !r.Valid() {
		return 0
	}
	return *r.Results.Ratio
}

// Name is shorthand for r.Config.Name().
func (r ConfigResult) Name() string { return r.Config.Name() }

// ValidOnly returns the valid records, in input order.
func ValidOnly(results []ConfigResult) []ConfigResult {
	out := make([]ConfigResult, 0, len(results))
	for _, r := range results {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// Ratios returns the ratios of the valid records, in input order.
func Ratios(results []ConfigResult) []float64 {
	out := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Valid() {
			out = append(out, *r.Results.Ratio)
		}
	}
	return out
}
