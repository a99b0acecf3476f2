package schemacontract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// levelRank orders issue levels for the canonical sort. Unknown levels rank
// last; they should not occur.
func levelRank(l IssueLevel) int {
	switch l {
	case LevelInfo:
		return 0
	case LevelWarning:
		return 1
	}
	return 9
}

// SortIssues sorts issues into the canonical total order: level rank, then
// code, then column index (report-wide issues last), then message, then the
// stable string rendering of details as the final tiebreaker. The order is
// stable under repeated runs regardless of the order issues were appended.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issueLess(&issues[i], &issues[j])
	})
}

func issueLess(a, b *Issue) bool {
	if ra, rb := levelRank(a.Level), levelRank(b.Level); ra != rb {
		return ra < rb
	}
	if a.Code != b.Code {
		return a.Code < b.Code
	}
	switch {
	case a.ColumnIndex == nil && b.ColumnIndex != nil:
		return false
	case a.ColumnIndex != nil && b.ColumnIndex == nil:
		return true
	case a.ColumnIndex != nil && b.ColumnIndex != nil && *a.ColumnIndex != *b.ColumnIndex:
		return *a.ColumnIndex < *b.ColumnIndex
	}
	if a.Message != b.Message {
		return a.Message < b.Message
	}
	return stableDetails(a.Details) < stableDetails(b.Details)
}

// stableDetails renders a details map as a deterministic tiebreaker string:
// keys sorted lexically, entries joined with ";". It is never shown to the
// user.
func stableDetails(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+renderValue(m[k]))
	}
	return strings.Join(parts, ";")
}

// renderValue renders a single nested value for the stable details string:
// scalars literally, nulls as the empty string, maps as {k=v,...} with
// sorted keys, lists as [v,v,...].
func renderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = renderValue(item)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+renderValue(x[k]))
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
	if n, ok := asIntShaped(v); ok {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprintf("%v", v)
}
