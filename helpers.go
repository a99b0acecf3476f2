package schemacontract

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
)

// DecodeJSON decodes a JSON document into the generic value model consumed
// by FromProfile. Numbers are decoded as json.Number to preserve integer
// intent.
func DecodeJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); err == nil {
		return nil, errors.New("invalid JSON: trailing data")
	}
	return v, nil
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// asIntShaped reports whether v is an integer-shaped scalar: a Go integer,
// an integral float, or an integral json.Number.
func asIntShaped(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// asBoolShaped reports whether v is a boolean-like scalar: a bool, or an
// integer-shaped 0 or 1.
func asBoolShaped(v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	if n, ok := asIntShaped(v); ok && (n == 0 || n == 1) {
		return n == 1, true
	}
	return false, false
}

// bool01 maps a bool onto the value model, which has no boolean: 0 or 1.
func bool01(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
