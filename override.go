package schemacontract

import (
	"fmt"
	"sort"

	"github.com/schemacontract/schemacontract-go/typetag"
)

// Override fields allowed in v1.
var allowedOverrideFields = map[string]struct{}{
	"type":     {},
	"nullable": {},
	"name":     {},
	"length":   {},
}

// parseOverrides validates a raw overrides value and merges the requests by
// column index. Later requests for the same column overwrite earlier ones
// field by field. The returned field values are canonical: "type" a string,
// "nullable" a bool, "name" a string or nil, "length" a map with int64
// min/max.
func parseOverrides(v any) (map[int64]map[string]any, error) {
	entries, ok := asSlice(v)
	if !ok {
		return nil, &OverrideError{Message: "overrides must be list-shaped"}
	}

	merged := make(map[int64]map[string]any)
	for i, raw := range entries {
		path := fmt.Sprintf("overrides[%d]", i)
		em, ok := asMap(raw)
		if !ok {
			return nil, &OverrideError{Path: path, Message: "must be map-shaped"}
		}
		for k := range em {
			if k != "column_index" && k != "set" {
				return nil, &OverrideError{Path: path, Message: fmt.Sprintf("unknown field %q", k)}
			}
		}
		idxRaw, ok := em["column_index"]
		if !ok {
			return nil, &OverrideError{Path: path, Message: "column_index: required"}
		}
		idx, ok := asIntShaped(idxRaw)
		if !ok {
			return nil, &OverrideError{Path: path + ".column_index", Message: "must be an integer"}
		}
		setRaw, ok := em["set"]
		if !ok {
			return nil, &OverrideError{Path: path, Message: "set: required"}
		}
		set, ok := asMap(setRaw)
		if !ok {
			return nil, &OverrideError{Path: path + ".set", Message: "must be map-shaped"}
		}

		fields := merged[idx]
		if fields == nil {
			fields = make(map[string]any)
			merged[idx] = fields
		}
		for field, value := range set {
			fp := fmt.Sprintf("%s.set.%s", path, field)
			if _, ok := allowedOverrideFields[field]; !ok {
				return nil, &OverrideError{Path: path + ".set", Message: fmt.Sprintf("unknown field %q", field)}
			}
			canon, err := canonicalOverrideValue(field, value, fp)
			if err != nil {
				return nil, err
			}
			fields[field] = canon
		}
	}
	return merged, nil
}

func canonicalOverrideValue(field string, value any, path string) (any, error) {
	switch field {
	case "type":
		s, ok := value.(string)
		if !ok {
			return nil, &OverrideError{Path: path, Message: "must be a string"}
		}
		return s, nil
	case "nullable":
		b, ok := asBoolShaped(value)
		if !ok {
			return nil, &OverrideError{Path: path, Message: "must be a boolean-like scalar"}
		}
		return b, nil
	case "name":
		if value == nil {
			return nil, nil
		}
		s, ok := value.(string)
		if !ok {
			return nil, &OverrideError{Path: path, Message: "must be a string or null"}
		}
		return s, nil
	case "length":
		m, ok := asMap(value)
		if !ok {
			return nil, &OverrideError{Path: path, Message: "must be map-shaped"}
		}
		out := make(map[string]any, len(m))
		for k, v := range m {
			if k != "min" && k != "max" {
				return nil, &OverrideError{Path: path, Message: fmt.Sprintf("unknown field %q", k)}
			}
			n, ok := asIntShaped(v)
			if !ok || n < 0 {
				return nil, &OverrideError{Path: path + "." + k, Message: "must be a non-negative integer"}
			}
			out[k] = n
		}
		return out, nil
	}
	return nil, &OverrideError{Path: path, Message: fmt.Sprintf("unknown field %q", field)}
}

// applyOverrides applies the merged override sets to the columns, in
// ascending column index order, fields in sorted name order. Conflicts are
// computed against the running value, which may itself be the result of an
// earlier request in the same batch.
func applyOverrides(cols []Column, merged map[int64]map[string]any) ([]Issue, error) {
	byIndex := make(map[int64]int, len(cols))
	for i := range cols {
		byIndex[cols[i].Index] = i
	}

	indices := make([]int64, 0, len(merged))
	for idx := range merged {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	var issues []Issue
	for _, idx := range indices {
		pos, ok := byIndex[idx]
		if !ok {
			return nil, &OverrideError{Message: fmt.Sprintf("unknown column_index %d", idx)}
		}
		c := &cols[pos]

		set := merged[idx]
		fields := make([]string, 0, len(set))
		for f := range set {
			fields = append(fields, f)
		}
		sort.Strings(fields)

		for _, field := range fields {
			value := set[field]
			switch field {
			case "length":
				lm := value.(map[string]any)
				if c.Length != nil {
					prior := lengthValue(c.Length)
					if renderValue(prior) != renderValue(lm) {
						issues = append(issues, conflictIssue(idx, field, renderValue(lm), renderValue(prior)))
					}
				}
				c.Length = lengthFromMap(lm)
				setOverride(c, field, copyValueMap(lm))
			case "type":
				s := value.(string)
				prior := string(c.Type)
				if scalarDiffers(prior, s) {
					issues = append(issues, conflictIssue(idx, field, s, prior))
				}
				c.Type = typetag.Tag(s)
				setOverride(c, field, s)
			case "nullable":
				b := value.(bool)
				prior := bool01(c.Nullable)
				next := bool01(b)
				if prior != next {
					issues = append(issues, conflictIssue(idx, field, next, prior))
				}
				c.Nullable = b
				setOverride(c, field, next)
			case "name":
				var prior any
				if c.Name != nil {
					prior = *c.Name
				}
				if scalarDiffers(prior, value) {
					issues = append(issues, conflictIssue(idx, field, value, prior))
				}
				if value == nil {
					c.Name = nil
				} else {
					s := value.(string)
					c.Name = &s
				}
				setOverride(c, field, value)
			}
		}

		if len(fields) > 0 {
			c.Provenance.Overrides = append([]string(nil), fields...)
			colIdx := idx
			issues = append(issues, Issue{
				Level:       LevelInfo,
				Code:        CodeOverrideApplied,
				Message:     "override applied",
				ColumnIndex: &colIdx,
				Details:     map[string]any{"fields": stringList(fields)},
			})
		}
	}
	return issues, nil
}

// scalarDiffers compares a prior scalar to an override value: both-null is
// equal, one-null-one-set differs, otherwise string comparison.
func scalarDiffers(prior, next any) bool {
	if prior == nil && next == nil {
		return false
	}
	if prior == nil || next == nil {
		return true
	}
	return renderValue(prior) != renderValue(next)
}

func conflictIssue(idx int64, field string, overridden, inferred any) Issue {
	colIdx := idx
	return Issue{
		Level:       LevelWarning,
		Code:        CodeOverrideConflict,
		Message:     fmt.Sprintf("override for %s replaces a differing prior value", field),
		ColumnIndex: &colIdx,
		Details: map[string]any{
			"field":            field,
			"overridden_value": overridden,
			"inferred_value":   inferred,
		},
	}
}

func setOverride(c *Column, field string, value any) {
	if c.Overrides == nil {
		c.Overrides = make(map[string]any)
	}
	c.Overrides[field] = value
}

func lengthFromMap(m map[string]any) *LengthRange {
	lr := &LengthRange{}
	if v, ok := m["min"]; ok {
		n := v.(int64)
		lr.Min = &n
	}
	if v, ok := m["max"]; ok {
		n := v.(int64)
		lr.Max = &n
	}
	return lr
}

func lengthValue(lr *LengthRange) map[string]any {
	m := make(map[string]any, 2)
	if lr.Min != nil {
		m["min"] = *lr.Min
	}
	if lr.Max != nil {
		m["max"] = *lr.Max
	}
	return m
}

func copyValueMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
