package schemacontract

import "fmt"

// ReportError indicates a malformed profile report. Construction aborts and
// no partial schema is produced.
type ReportError struct {
	Path    string
	Message string
}

func (e *ReportError) Error() string {
	if e == nil {
		return "invalid profile report"
	}
	if e.Path == "" {
		return fmt.Sprintf("invalid profile report: %s", e.Message)
	}
	return fmt.Sprintf("invalid profile report at %s: %s", e.Path, e.Message)
}

// OverrideError indicates a malformed override request or an override
// referencing an unknown column. Construction aborts and no partial schema
// is produced.
type OverrideError struct {
	Path    string
	Message string
}

func (e *OverrideError) Error() string {
	if e == nil {
		return "invalid override"
	}
	if e.Path == "" {
		return fmt.Sprintf("invalid override: %s", e.Message)
	}
	return fmt.Sprintf("invalid override at %s: %s", e.Path, e.Message)
}
