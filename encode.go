package schemacontract

import (
	"errors"

	"github.com/schemacontract/schemacontract-go/canonical"
)

// schemaKeyOrder fixes the canonical key order of every known path shape in
// a serialized schema. Unrecognized keys follow the listed ones in lexical
// order; shapes without an entry (column overrides, issue details) are
// fully lexical.
var schemaKeyOrder = canonical.KeyOrder{
	"":                             {"schema_version", "generator", "profile", "columns", "issues"},
	"generator":                    {"name", "version"},
	"profile":                      {"report_version", "rows_profiled", "null_empty", "null_tokens"},
	"columns":                      {"index", "name", "type", "nullable", "length", "overrides", "provenance"},
	"columns.length":               {"min", "max"},
	"columns.provenance":           {"basis", "rows_observed", "null_count", "null_rate", "overrides"},
	"columns.provenance.null_rate": {"num", "den"},
	"issues":                       {"level", "code", "message", "column_index", "details"},
}

// ToJSON renders the schema in the deterministic JSON-like encoding:
// minimal single-line form with canonical key order. Byte-identical output
// is guaranteed for logically identical schemas.
func ToJSON(s *Schema) (string, error) {
	if s == nil {
		return "", errors.New("schema is missing")
	}
	b, err := canonical.EncodeJSON(s.Value(), schemaKeyOrder)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToYAML renders the schema in the deterministic YAML-like encoding: block
// style, two-space indent, canonical key order.
func ToYAML(s *Schema) (string, error) {
	if s == nil {
		return "", errors.New("schema is missing")
	}
	b, err := canonical.EncodeYAML(s.Value(), schemaKeyOrder)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Value returns the schema as a generic value tree (nil, int64, string,
// []any, map[string]any), the form the canonical encoders consume. Booleans
// are projected onto 0/1; the value model has no boolean.
func (s *Schema) Value() map[string]any {
	profile := map[string]any{
		"report_version": s.Profile.ReportVersion,
	}
	if s.Profile.RowsProfiled != nil {
		profile["rows_profiled"] = *s.Profile.RowsProfiled
	}
	if s.Profile.NullEmpty != nil {
		profile["null_empty"] = bool01(*s.Profile.NullEmpty)
	}
	if s.Profile.NullTokens != nil {
		profile["null_tokens"] = stringList(s.Profile.NullTokens)
	}

	columns := make([]any, 0, len(s.Columns))
	for i := range s.Columns {
		columns = append(columns, columnValue(&s.Columns[i]))
	}

	issues := make([]any, 0, len(s.Issues))
	for i := range s.Issues {
		issues = append(issues, issueValue(&s.Issues[i]))
	}

	return map[string]any{
		"schema_version": s.SchemaVersion,
		"generator": map[string]any{
			"name":    s.Generator.Name,
			"version": s.Generator.Version,
		},
		"profile": profile,
		"columns": columns,
		"issues":  issues,
	}
}

func columnValue(c *Column) map[string]any {
	out := map[string]any{
		"index":    c.Index,
		"name":     nil,
		"type":     string(c.Type),
		"nullable": bool01(c.Nullable),
	}
	if c.Name != nil {
		out["name"] = *c.Name
	}
	if c.Length != nil {
		out["length"] = lengthValue(c.Length)
	}
	if c.Overrides != nil {
		out["overrides"] = copyValueMap(c.Overrides)
	}

	prov := map[string]any{
		"basis":         c.Provenance.Basis,
		"rows_observed": c.Provenance.RowsObserved,
		"null_count":    c.Provenance.NullCount,
		"null_rate": map[string]any{
			"num": c.Provenance.NullRate.Num,
			"den": c.Provenance.NullRate.Den,
		},
	}
	if c.Provenance.Overrides != nil {
		prov["overrides"] = stringList(c.Provenance.Overrides)
	}
	out["provenance"] = prov
	return out
}

func issueValue(is *Issue) map[string]any {
	out := map[string]any{
		"level":        string(is.Level),
		"code":         is.Code,
		"message":      is.Message,
		"column_index": nil,
	}
	if is.ColumnIndex != nil {
		out["column_index"] = *is.ColumnIndex
	}
	if len(is.Details) > 0 {
		out["details"] = copyValueMap(is.Details)
	}
	return out
}
