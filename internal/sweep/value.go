// internal/sweep/value.go
// Package sweep models the result records of a parameter grid search and
// aggregates their ratios per parameter.
package sweep

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind is the JSON type of a configuration value.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindOther:
		return "other"
	}
	return "null"
}

// Value is one configuration parameter value. Only JSON numbers are numeric;
// booleans and numeric-looking strings are not.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	raw  json.RawMessage
}

// Number returns a numeric value.
func Number(v float64) Value { return Value{kind: KindNumber, num: v} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind reports the value's JSON type.
func (v Value) Kind() Kind { return v.kind }

// Number returns the numeric value and whether the value is a number.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Bool returns the boolean value and whether the value is a boolean.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// String renders the value for reports.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindOther:
		return string(v.raw)
	}
	return "null"
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.String() == o.String()
}

// Compare orders numbers numerically first, then strings lexically, then
// booleans, then everything else by its JSON text.
func Compare(a, b Value) int {
	ra, rb := kindRank(a.kind), kindRank(b.kind)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch a.kind {
	case KindNumber:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	case KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		}
		return 1
	}
	as, bs := a.String(), b.String()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func kindRank(k Kind) int {
	switch k {
	case KindNumber:
		return 0
	case KindString:
		return 1
	case KindBool:
		return 2
	case KindOther:
		return 3
	}
	return 4
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindString:
		return json.Marshal(v.str)
	case KindBool:
		return json.Marshal(v.b)
	case KindOther:
		return v.raw, nil
	}
	return []byte("null"), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := parseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML emits the native Go value.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case KindNumber:
		return v.num, nil
	case KindString:
		return v.str, nil
	case KindBool:
		return v.b, nil
	case KindOther:
		var out interface{}
		if err := json.Unmarshal(v.raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, nil
}

func parseValue(data []byte) (Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Value{}, fmt.Errorf("empty value")
	}
	switch trimmed[0] {
	case 'n':
		return Value{kind: KindNull}, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Value{}, err
		}
		return String(s), nil
	case '{', '[':
		raw := make(json.RawMessage, len(trimmed))
		copy(raw, trimmed)
		return Value{kind: KindOther, raw: raw}, nil
	}
	f, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %s: %w", trimmed, err)
	}
	return Number(f), nil
}
