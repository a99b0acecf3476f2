// Package canonical implements deterministic text encodings over a generic
// nested value model: nil, integer (int or int64), string, []any, and
// map[string]any.
//
// Maps are logically unordered. Key order in the output is imposed by a
// KeyOrder table indexed by path shape, never by the map's native iteration
// order, so byte-identical output is guaranteed for logically identical
// input. Any value outside the supported model is a fatal encoding error.
package canonical

import (
	"fmt"
	"sort"
	"strconv"
)

// KeyOrder maps a path shape to the priority order of keys at that shape.
//
// A path shape is the dot-joined sequence of map keys from the root, with
// list indices elided: the columns list's elements and the element maps
// themselves share the shape "columns". Keys present in the map but absent
// from the priority list follow it in lexical order; a shape with no entry
// orders all keys lexically.
type KeyOrder map[string][]string

// UnsupportedTypeError indicates a value outside the supported model was
// encountered during encoding.
type UnsupportedTypeError struct {
	Path  string
	Value any
}

func (e *UnsupportedTypeError) Error() string {
	if e == nil {
		return "unsupported value type"
	}
	if e.Path == "" {
		return fmt.Sprintf("unsupported value type %T", e.Value)
	}
	return fmt.Sprintf("unsupported value type %T at %s", e.Value, e.Path)
}

// sortedKeys returns m's keys with the priority list first (only those
// present), then the remainder in lexical order.
func sortedKeys(m map[string]any, priority []string) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]struct{}, len(priority))
	for _, k := range priority {
		if _, ok := m[k]; ok {
			out = append(out, k)
			seen[k] = struct{}{}
		}
	}
	rest := make([]string, 0, len(m))
	for k := range m {
		if _, ok := seen[k]; ok {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func childShape(shape, key string) string {
	if shape == "" {
		return key
	}
	return shape + "." + key
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// asInt reports whether v is an integer-shaped scalar of the value model.
func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	}
	return 0, false
}
