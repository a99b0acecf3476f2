// Package schemacontract derives a canonical, deterministic schema contract
// from a tabular-data profiling report.
//
// A profile report describes per-column evidence (observed type counts, null
// counts, row counts). FromProfile infers a column type and nullability for
// every column, merges optional user-supplied overrides, records every
// inference decision or conflict as a structured issue, and returns an
// immutable Schema.
//
// # Quick Start
//
//	profile, err := schemacontract.DecodeJSON(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	schema, err := schemacontract.FromProfile(profile, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, _ := schemacontract.ToJSON(schema)
//	fmt.Println(out)
//
// # Determinism
//
// Identical logical input always serializes to byte-identical output. The
// schema's map-like fields are logically unordered; ToJSON and ToYAML impose
// order through path-keyed priority tables (see the canonical subpackage),
// and the issues list carries a total canonical order of its own. Input
// column order never affects output: columns are sorted by index before
// anything else looks at them.
//
// # Failure Classes
//
// There are exactly two. Malformed reports, malformed overrides, unknown
// override targets, and unsupported value shapes during encoding are fatal:
// the operation aborts with a typed error (ReportError, OverrideError,
// canonical.UnsupportedTypeError) and no partial schema is ever returned.
// Everything softer is an Issue recorded on the returned schema at level
// info or warning; there is no error-level issue.
//
// # Concurrency
//
// The pipeline is pure and single-threaded. FromProfile never mutates its
// input, and a returned Schema is safe for concurrent read access.
//
// # Subpackages
//
//   - canonical: deterministic JSON-like and YAML-like encoders over a
//     generic value model
//   - typetag: the v1 type-tag vocabulary and widening lattice
package schemacontract
