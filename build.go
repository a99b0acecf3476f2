package schemacontract

import (
	"fmt"
	"sort"

	"github.com/schemacontract/schemacontract-go/typetag"
)

// columnEvidence is the validated per-column view of the input report.
type columnEvidence struct {
	index        int64
	name         *string
	rowsObserved int64
	nullCount    int64
	evidence     map[typetag.Tag]int64
}

// FromProfile builds a schema contract from a profile report, optionally
// applying a list of override requests. Both arguments are generic decoded
// values (see DecodeJSON); pass nil overrides for none.
//
// The build is a single synchronous pass: shape validation, column sort by
// index, type inference, nullability inference, override merge, and the
// canonical issue sort. Any malformed input aborts with a ReportError or
// OverrideError and no partial schema is returned.
func FromProfile(profile any, overrides any) (*Schema, error) {
	if profile == nil {
		return nil, &ReportError{Message: "profile is missing"}
	}
	pm, ok := asMap(profile)
	if !ok {
		return nil, &ReportError{Message: "profile must be map-shaped"}
	}

	meta, err := parseProfileMeta(pm)
	if err != nil {
		return nil, err
	}

	colsRaw, ok := asSlice(pm["columns"])
	if !ok {
		return nil, &ReportError{Path: "columns", Message: "must be list-shaped"}
	}

	evs := make([]columnEvidence, 0, len(colsRaw))
	seen := make(map[int64]struct{}, len(colsRaw))
	for i, raw := range colsRaw {
		ev, err := parseColumnEvidence(raw, fmt.Sprintf("columns[%d]", i))
		if err != nil {
			return nil, err
		}
		if _, dup := seen[ev.index]; dup {
			return nil, &ReportError{
				Path:    fmt.Sprintf("columns[%d].index", i),
				Message: fmt.Sprintf("duplicate index %d", ev.index),
			}
		}
		seen[ev.index] = struct{}{}
		evs = append(evs, ev)
	}
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].index < evs[j].index })

	var issues []Issue
	cols := make([]Column, 0, len(evs))
	for _, ev := range evs {
		typ, typeIssues := inferType(ev.evidence)
		for k := range typeIssues {
			idx := ev.index
			typeIssues[k].ColumnIndex = &idx
		}
		issues = append(issues, typeIssues...)

		cols = append(cols, Column{
			Index: ev.index,
			Name:  ev.name,
			Type:  typ,
			// Placeholder until the nullability pass, which needs the
			// aggregate view for the report-wide check.
			Nullable: true,
			Provenance: Provenance{
				Basis:        "profile",
				RowsObserved: ev.rowsObserved,
				NullCount:    ev.nullCount,
				NullRate:     NullRate{Num: ev.nullCount, Den: ev.rowsObserved},
			},
		})
	}

	issues = append(issues, applyNullability(cols, meta.RowsProfiled)...)

	if overrides != nil {
		merged, err := parseOverrides(overrides)
		if err != nil {
			return nil, err
		}
		overrideIssues, err := applyOverrides(cols, merged)
		if err != nil {
			return nil, err
		}
		issues = append(issues, overrideIssues...)
	}

	SortIssues(issues)

	return &Schema{
		SchemaVersion: SchemaVersion,
		Generator:     Generator{Name: GeneratorName, Version: GeneratorVersion},
		Profile:       meta,
		Columns:       cols,
		Issues:        issues,
	}, nil
}

func parseProfileMeta(pm map[string]any) (ProfileMeta, error) {
	var meta ProfileMeta

	rv, ok := pm["report_version"]
	if !ok {
		return meta, &ReportError{Path: "report_version", Message: "required"}
	}
	n, ok := asIntShaped(rv)
	if !ok {
		return meta, &ReportError{Path: "report_version", Message: "must be an integer"}
	}
	if !IsSupportedReportVersion(n) {
		return meta, &ReportError{Path: "report_version", Message: fmt.Sprintf("must be >= %d, got %d", MinReportVersion, n)}
	}
	meta.ReportVersion = n

	if v, ok := pm["rows_profiled"]; ok {
		n, ok := asIntShaped(v)
		if !ok || n < 0 {
			return meta, &ReportError{Path: "rows_profiled", Message: "must be a non-negative integer"}
		}
		meta.RowsProfiled = &n
	}
	if v, ok := pm["null_empty"]; ok {
		b, ok := asBoolShaped(v)
		if !ok {
			return meta, &ReportError{Path: "null_empty", Message: "must be a boolean-like scalar"}
		}
		meta.NullEmpty = &b
	}
	if v, ok := pm["null_tokens"]; ok {
		items, ok := asSlice(v)
		if !ok {
			return meta, &ReportError{Path: "null_tokens", Message: "must be list-shaped"}
		}
		tokens := make([]string, 0, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return meta, &ReportError{Path: fmt.Sprintf("null_tokens[%d]", i), Message: "must be a string"}
			}
			tokens = append(tokens, s)
		}
		meta.NullTokens = tokens
	}
	return meta, nil
}

func parseColumnEvidence(raw any, path string) (columnEvidence, error) {
	var ev columnEvidence

	cm, ok := asMap(raw)
	if !ok {
		return ev, &ReportError{Path: path, Message: "must be map-shaped"}
	}

	idxRaw, ok := cm["index"]
	if !ok {
		return ev, &ReportError{Path: path + ".index", Message: "required"}
	}
	idx, ok := asIntShaped(idxRaw)
	if !ok || idx < 0 {
		return ev, &ReportError{Path: path + ".index", Message: "must be a non-negative integer"}
	}
	ev.index = idx

	if v, ok := cm["name"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return ev, &ReportError{Path: path + ".name", Message: "must be a string or null"}
		}
		ev.name = &s
	}

	for _, key := range []string{"rows_observed", "null_count"} {
		v, ok := cm[key]
		if !ok {
			continue
		}
		n, ok := asIntShaped(v)
		if !ok || n < 0 {
			return ev, &ReportError{Path: path + "." + key, Message: "must be a non-negative integer"}
		}
		if key == "rows_observed" {
			ev.rowsObserved = n
		} else {
			ev.nullCount = n
		}
	}

	if v, ok := cm["type_evidence"]; ok && v != nil {
		tm, ok := asMap(v)
		if !ok {
			return ev, &ReportError{Path: path + ".type_evidence", Message: "must be map-shaped"}
		}
		ev.evidence = make(map[typetag.Tag]int64, len(tm))
		for k, cv := range tm {
			tag, err := typetag.Parse(k)
			if err != nil {
				return ev, &ReportError{Path: path + ".type_evidence", Message: fmt.Sprintf("unknown type tag %q", k)}
			}
			n, ok := asIntShaped(cv)
			if !ok || n < 0 {
				return ev, &ReportError{Path: fmt.Sprintf("%s.type_evidence.%s", path, k), Message: "must be a non-negative integer"}
			}
			ev.evidence[tag] = n
		}
	}
	return ev, nil
}
