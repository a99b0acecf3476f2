package schemacontract

import (
	"testing"
)

func mustFromProfile(t *testing.T, profile any, overrides any) *Schema {
	t.Helper()
	s, err := FromProfile(profile, overrides)
	if err != nil {
		t.Fatalf("FromProfile: %v", err)
	}
	return s
}

func mustColumn(t *testing.T, s *Schema, index int64) *Column {
	t.Helper()
	c, ok := s.Column(index)
	if !ok {
		t.Fatalf("no column with index %d", index)
	}
	return c
}

func issuesByCode(s *Schema, code string) []Issue {
	var out []Issue
	for _, is := range s.Issues {
		if is.Code == code {
			out = append(out, is)
		}
	}
	return out
}

func intPtr(n int64) *int64 { return &n }

func strPtr(s string) *string { return &s }

// profileWith builds a minimal valid report around the given columns.
func profileWith(columns ...any) map[string]any {
	return map[string]any{
		"report_version": 1,
		"columns":        columns,
	}
}

func evidenceColumn(index int64, name string, rows, nulls int64, evidence map[string]any) map[string]any {
	col := map[string]any{
		"index":         index,
		"name":          name,
		"rows_observed": rows,
		"null_count":    nulls,
	}
	if evidence != nil {
		col["type_evidence"] = evidence
	}
	return col
}
