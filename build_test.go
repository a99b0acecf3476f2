package schemacontract

import (
	"errors"
	"testing"
)

func TestFromProfile_MinimalReport(t *testing.T) {
	s := mustFromProfile(t, profileWith(), nil)
	if s.SchemaVersion != 1 {
		t.Fatalf("schema_version = %d", s.SchemaVersion)
	}
	if s.Generator.Name != GeneratorName || s.Generator.Version != GeneratorVersion {
		t.Fatalf("generator = %+v", s.Generator)
	}
	if s.Profile.ReportVersion != 1 {
		t.Fatalf("report_version = %d", s.Profile.ReportVersion)
	}
	if len(s.Columns) != 0 {
		t.Fatalf("columns = %v", s.Columns)
	}
	// No columns and no rows_profiled: the report covered nothing.
	if len(issuesByCode(s, CodeNoRowsProfiled)) != 1 {
		t.Fatalf("issues = %v", s.Issues)
	}
}

func TestFromProfile_ColumnsSortedByIndex(t *testing.T) {
	s := mustFromProfile(t, profileWith(
		evidenceColumn(1, "b", 1, 0, nil),
		evidenceColumn(0, "a", 1, 0, nil),
		evidenceColumn(5, "c", 1, 0, nil),
	), nil)
	got := []int64{s.Columns[0].Index, s.Columns[1].Index, s.Columns[2].Index}
	if got[0] != 0 || got[1] != 1 || got[2] != 5 {
		t.Fatalf("column order = %v", got)
	}
}

func TestFromProfile_ProvenanceAndNullRate(t *testing.T) {
	s := mustFromProfile(t, profileWith(
		evidenceColumn(0, "a", 10, 3, nil),
	), nil)
	p := mustColumn(t, s, 0).Provenance
	if p.Basis != "profile" {
		t.Fatalf("basis = %q", p.Basis)
	}
	if p.RowsObserved != 10 || p.NullCount != 3 {
		t.Fatalf("provenance = %+v", p)
	}
	if p.NullRate.Num != 3 || p.NullRate.Den != 10 {
		t.Fatalf("null_rate = %+v", p.NullRate)
	}
}

func TestFromProfile_DefaultsAndOptionalName(t *testing.T) {
	s := mustFromProfile(t, profileWith(
		map[string]any{"index": 0},
	), nil)
	c := mustColumn(t, s, 0)
	if c.Name != nil {
		t.Fatalf("name = %v, want nil", *c.Name)
	}
	if string(c.Type) != "string" {
		t.Fatalf("type = %s, want string (no evidence)", c.Type)
	}
	if !c.Nullable {
		t.Fatalf("zero observed rows: nullable should default to true")
	}
	if c.Provenance.RowsObserved != 0 || c.Provenance.NullCount != 0 {
		t.Fatalf("counts should default to 0: %+v", c.Provenance)
	}
}

func TestFromProfile_ProfileMetadataCopied(t *testing.T) {
	profile := map[string]any{
		"report_version": 2,
		"rows_profiled":  100,
		"null_empty":     true,
		"null_tokens":    []any{"", "NA", "null"},
		"unrecognized":   "dropped",
		"columns":        []any{},
	}
	s := mustFromProfile(t, profile, nil)
	if s.Profile.ReportVersion != 2 {
		t.Fatalf("report_version = %d", s.Profile.ReportVersion)
	}
	if s.Profile.RowsProfiled == nil || *s.Profile.RowsProfiled != 100 {
		t.Fatalf("rows_profiled = %v", s.Profile.RowsProfiled)
	}
	if s.Profile.NullEmpty == nil || !*s.Profile.NullEmpty {
		t.Fatalf("null_empty = %v", s.Profile.NullEmpty)
	}
	if len(s.Profile.NullTokens) != 3 || s.Profile.NullTokens[1] != "NA" {
		t.Fatalf("null_tokens = %v", s.Profile.NullTokens)
	}
	if v, ok := s.Value()["profile"].(map[string]any)["unrecognized"]; ok {
		t.Fatalf("unrecognized metadata copied: %v", v)
	}
}

func TestFromProfile_NullEmptyCoercedFromInteger(t *testing.T) {
	profile := map[string]any{
		"report_version": 1,
		"null_empty":     1,
		"columns":        []any{},
	}
	s := mustFromProfile(t, profile, nil)
	if s.Profile.NullEmpty == nil || !*s.Profile.NullEmpty {
		t.Fatalf("null_empty = %v", s.Profile.NullEmpty)
	}
}

func TestFromProfile_ZeroRowsEdge(t *testing.T) {
	profile := map[string]any{
		"report_version": 1,
		"rows_profiled":  0,
		"columns": []any{
			evidenceColumn(0, "a", 0, 0, nil),
			evidenceColumn(1, "b", 0, 0, nil),
		},
	}
	s := mustFromProfile(t, profile, nil)
	if len(issuesByCode(s, CodeNoRowsProfiled)) != 1 {
		t.Fatalf("issues = %v", s.Issues)
	}
	for _, c := range s.Columns {
		if !c.Nullable {
			t.Fatalf("column %d: nullable should be true", c.Index)
		}
	}
}

func TestFromProfile_AllNullColumn(t *testing.T) {
	s := mustFromProfile(t, profileWith(
		evidenceColumn(0, "a", 5, 5, nil),
	), nil)
	c := mustColumn(t, s, 0)
	if !c.Nullable {
		t.Fatalf("all-null column should be nullable")
	}
	if len(issuesByCode(s, CodeAllNullColumn)) != 1 {
		t.Fatalf("issues = %v", s.Issues)
	}
}

func TestFromProfile_TypeIssuesTaggedWithColumnIndex(t *testing.T) {
	s := mustFromProfile(t, profileWith(
		evidenceColumn(4, "m", 2, 0, map[string]any{"integer": 1, "number": 1}),
	), nil)
	mixed := issuesByCode(s, CodeMixedTypeEvidence)
	if len(mixed) != 1 {
		t.Fatalf("issues = %v", s.Issues)
	}
	if mixed[0].ColumnIndex == nil || *mixed[0].ColumnIndex != 4 {
		t.Fatalf("column index = %v", mixed[0].ColumnIndex)
	}
}

func TestFromProfile_IssuesCanonicallySorted(t *testing.T) {
	profile := profileWith(
		evidenceColumn(2, "b", 3, 3, nil),
		evidenceColumn(0, "a", 2, 0, map[string]any{"integer": 1, "number": 1}),
	)
	overrides := []any{overrideEntry(0, map[string]any{"name": "renamed"})}
	s := mustFromProfile(t, profile, overrides)

	sorted := append([]Issue(nil), s.Issues...)
	SortIssues(sorted)
	for i := range sorted {
		if sorted[i].Code != s.Issues[i].Code {
			t.Fatalf("issues not canonically sorted: %v", s.Issues)
		}
	}
	// info issues precede warnings.
	if s.Issues[0].Code != CodeOverrideApplied {
		t.Fatalf("first issue = %+v", s.Issues[0])
	}
}

func TestFromProfile_FatalReportShapes(t *testing.T) {
	tests := []struct {
		name    string
		profile any
	}{
		{"missing profile", nil},
		{"profile not map", []any{}},
		{"missing report_version", map[string]any{"columns": []any{}}},
		{"report_version not integer", map[string]any{"report_version": "1", "columns": []any{}}},
		{"report_version below minimum", map[string]any{"report_version": 0, "columns": []any{}}},
		{"missing columns", map[string]any{"report_version": 1}},
		{"columns not list", map[string]any{"report_version": 1, "columns": map[string]any{}}},
		{"column not map", profileWith("x")},
		{"column missing index", profileWith(map[string]any{"name": "a"})},
		{"column index negative", profileWith(map[string]any{"index": -1})},
		{"column index not integer", profileWith(map[string]any{"index": "0"})},
		{"duplicate index", profileWith(map[string]any{"index": 1}, map[string]any{"index": 1})},
		{"name not string", profileWith(map[string]any{"index": 0, "name": 5})},
		{"rows_observed negative", profileWith(map[string]any{"index": 0, "rows_observed": -1})},
		{"type_evidence not map", profileWith(map[string]any{"index": 0, "type_evidence": []any{}})},
		{"type_evidence unknown tag", profileWith(map[string]any{"index": 0, "type_evidence": map[string]any{"uuid": 1}})},
		{"type_evidence negative count", profileWith(map[string]any{"index": 0, "type_evidence": map[string]any{"integer": -2}})},
		{"rows_profiled negative", map[string]any{"report_version": 1, "rows_profiled": -1, "columns": []any{}}},
		{"null_empty not boolean-like", map[string]any{"report_version": 1, "null_empty": "yes", "columns": []any{}}},
		{"null_tokens not list", map[string]any{"report_version": 1, "null_tokens": "NA", "columns": []any{}}},
		{"null_token not string", map[string]any{"report_version": 1, "null_tokens": []any{1}, "columns": []any{}}},
	}
	for _, tc := range tests {
		_, err := FromProfile(tc.profile, nil)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		var re *ReportError
		if !errors.As(err, &re) {
			t.Errorf("%s: expected ReportError, got %T: %v", tc.name, err, err)
		}
	}
}

func TestFromProfile_OverridesMustBeListShaped(t *testing.T) {
	_, err := FromProfile(profileWith(), map[string]any{})
	if err == nil {
		t.Fatalf("expected error")
	}
	var oe *OverrideError
	if !errors.As(err, &oe) {
		t.Fatalf("expected OverrideError, got %T", err)
	}
}

func TestFromProfile_InputNotMutated(t *testing.T) {
	evidence := map[string]any{"integer": 2, "number": 1}
	col := evidenceColumn(0, "a", 3, 1, evidence)
	profile := profileWith(col)

	mustFromProfile(t, profile, []any{overrideEntry(0, map[string]any{"name": "renamed"})})

	if col["name"] != "a" {
		t.Fatalf("input column mutated: %v", col)
	}
	if evidence["integer"] != 2 || len(evidence) != 2 {
		t.Fatalf("input evidence mutated: %v", evidence)
	}
}
