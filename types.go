package schemacontract

import (
	"github.com/schemacontract/schemacontract-go/typetag"
)

// IssueLevel is the severity of a diagnostic issue. There is no error
// level; anything that severe is a fatal construction error instead.
type IssueLevel string

const (
	// LevelInfo marks a non-blocking, informational decision record.
	LevelInfo IssueLevel = "info"
	// LevelWarning marks a decision a human should review; the build still
	// succeeded.
	LevelWarning IssueLevel = "warning"
)

// Issue codes form a fixed vocabulary.
const (
	// CodeMixedTypeEvidence: several non-temporal tags observed; the most
	// general one was chosen.
	CodeMixedTypeEvidence = "mixed_type_evidence"
	// CodeTypeWidened: both date and datetime observed; widened to datetime.
	CodeTypeWidened = "type_widened"
	// CodeTemporalConflict: temporal and non-temporal evidence on the same
	// column; widened to string.
	CodeTemporalConflict = "temporal_conflict_widened_to_string"
	// CodeAllNullColumn: a column with rows was entirely null.
	CodeAllNullColumn = "all_null_column"
	// CodeNoRowsProfiled: the report covered zero rows.
	CodeNoRowsProfiled = "no_rows_profiled"
	// CodeOverrideApplied: at least one override field was applied to a column.
	CodeOverrideApplied = "override_applied"
	// CodeOverrideConflict: an override replaced a differing prior value.
	CodeOverrideConflict = "override_conflicts_with_profile"
)

// Issue is a non-fatal diagnostic explaining an inference or override
// decision. ColumnIndex is nil for report-wide issues.
type Issue struct {
	Level       IssueLevel
	Code        string
	Message     string
	ColumnIndex *int64
	Details     map[string]any
}

// NullRate is the observed null ratio of a column: Num nulls out of Den
// observed rows. It reflects observation only and is never mutated by
// overrides.
type NullRate struct {
	Num int64
	Den int64
}

// Provenance records the observation a column's inferred values came from.
type Provenance struct {
	// Basis is always "profile" in v1.
	Basis        string
	RowsObserved int64
	NullCount    int64
	NullRate     NullRate
	// Overrides lists the field names that were overridden, sorted. Nil when
	// no override touched the column.
	Overrides []string
}

// LengthRange bounds a column's value length. Never inferred in v1; set
// only through overrides. Min and Max are each optional.
type LengthRange struct {
	Min *int64
	Max *int64
}

// Column is one derived schema column. Index is the immutable identity key
// taken from the input evidence; Name, Type, Nullable, and Length are
// mutable only through overrides.
type Column struct {
	Index    int64
	Name     *string
	Type     typetag.Tag
	Nullable bool
	Length   *LengthRange
	// Overrides maps applied override field names to the applied values.
	// Nil unless at least one override applied to this column.
	Overrides  map[string]any
	Provenance Provenance
}

// ProfileMeta is the filtered copy of report-level metadata carried on the
// schema. Only recognized keys are copied.
type ProfileMeta struct {
	ReportVersion int64
	RowsProfiled  *int64
	NullEmpty     *bool
	NullTokens    []string
}

// Generator identifies the producer of a schema.
type Generator struct {
	Name    string
	Version string
}

// Schema is the derived schema contract. It is built in full by FromProfile
// and immutable once returned; serialization consumes it read-only.
type Schema struct {
	SchemaVersion int
	Generator     Generator
	Profile       ProfileMeta
	// Columns is sorted ascending by Index.
	Columns []Column
	// Issues is canonically sorted; see SortIssues for the order.
	Issues []Issue
}

// Column returns the schema column with the given index.
func (s *Schema) Column(index int64) (*Column, bool) {
	for i := range s.Columns {
		if s.Columns[i].Index == index {
			return &s.Columns[i], true
		}
	}
	return nil, false
}
