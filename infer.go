package schemacontract

import (
	"fmt"
	"sort"

	"github.com/schemacontract/schemacontract-go/typetag"
)

// inferType derives a column type from validated type evidence. Issues are
// returned without a column index; the builder fills it in.
func inferType(evidence map[typetag.Tag]int64) (typetag.Tag, []Issue) {
	var temporal, other []string
	for tag, count := range evidence {
		if count <= 0 {
			continue
		}
		if typetag.IsTemporal(tag) {
			temporal = append(temporal, string(tag))
		} else {
			other = append(other, string(tag))
		}
	}
	sort.Strings(temporal)
	sort.Strings(other)

	if len(temporal) == 0 && len(other) == 0 {
		return typetag.String, nil
	}

	if len(temporal) > 0 && len(other) > 0 {
		return typetag.String, []Issue{{
			Level:   LevelWarning,
			Code:    CodeTemporalConflict,
			Message: "temporal and non-temporal evidence conflict; widened to string",
			Details: map[string]any{
				"temporal_candidates": stringList(temporal),
				"other_candidates":    stringList(other),
				"chosen":              string(typetag.String),
			},
		}}
	}

	if len(temporal) > 0 {
		hasDateTime := false
		for _, s := range temporal {
			if typetag.Tag(s) == typetag.DateTime {
				hasDateTime = true
			}
		}
		if !hasDateTime {
			return typetag.Date, nil
		}
		if len(temporal) == 1 {
			return typetag.DateTime, nil
		}
		return typetag.DateTime, []Issue{{
			Level:   LevelInfo,
			Code:    CodeTypeWidened,
			Message: "date evidence widened to datetime",
			Details: map[string]any{
				"from": string(typetag.Date),
				"to":   string(typetag.DateTime),
			},
		}}
	}

	chosen := typetag.Tag(other[0])
	for _, s := range other[1:] {
		chosen = typetag.Widen(chosen, typetag.Tag(s))
	}
	if len(other) == 1 {
		return chosen, nil
	}
	return chosen, []Issue{{
		Level:   LevelWarning,
		Code:    CodeMixedTypeEvidence,
		Message: fmt.Sprintf("mixed type evidence; widened to %s", chosen),
		Details: map[string]any{
			"candidates": stringList(other),
			"chosen":     string(chosen),
		},
	}}
}

// applyNullability derives each column's nullable flag from its provenance
// counts and emits the nullability issues, including the report-wide
// no_rows_profiled check.
func applyNullability(cols []Column, rowsProfiled *int64) []Issue {
	var issues []Issue
	anyRows := false

	for i := range cols {
		c := &cols[i]
		rows := c.Provenance.RowsObserved
		nulls := c.Provenance.NullCount
		if rows == 0 {
			c.Nullable = true
			continue
		}
		anyRows = true
		c.Nullable = nulls > 0
		if nulls == rows {
			idx := c.Index
			issues = append(issues, Issue{
				Level:       LevelWarning,
				Code:        CodeAllNullColumn,
				Message:     "all observed values are null",
				ColumnIndex: &idx,
				Details: map[string]any{
					"null_count":    nulls,
					"rows_observed": rows,
				},
			})
		}
	}

	noRows := false
	if rowsProfiled != nil {
		noRows = *rowsProfiled == 0
	} else {
		noRows = !anyRows
	}
	if noRows {
		issues = append(issues, Issue{
			Level:   LevelWarning,
			Code:    CodeNoRowsProfiled,
			Message: "no rows were profiled; nullability defaults to true",
		})
	}
	return issues
}

// stringList copies a []string into the generic value model.
func stringList(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
