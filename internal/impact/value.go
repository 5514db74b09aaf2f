package impact

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is a number that may be undefined, such as a ratio whose denominator is zero.
// The zero Value is Undefined.
type Value struct {
	v       float64
	defined bool
}

// Defined wraps a finite number.
func Defined(v float64) Value {
	return Value{v: v, defined: true}
}

// Undefined returns the marker for a result that has no meaningful number.
func Undefined() Value {
	return Value{}
}

// Get returns the number and whether it is defined.
func (v Value) Get() (float64, bool) {
	return v.v, v.defined
}

// IsDefined reports whether the value carries a number.
func (v Value) IsDefined() bool {
	return v.defined
}

func (v Value) String() string {
	if !v.defined {
		return "n/a"
	}
	return strconv.FormatFloat(v.v, 'f', -1, 64)
}

// MarshalJSON encodes undefined values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.defined {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Undefined()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Defined(f)
	return nil
}

// MarshalYAML encodes undefined values as null.
func (v Value) MarshalYAML() (interface{}, error) {
	if !v.defined {
		return nil, nil
	}
	return v.v, nil
}
