// Package units defines the fixed catalog of measurement categories and units
// known to uconv. It contains:
//
//   - Category: a named, ordered set of units sharing one base unit
//   - Unit: a unit label plus the rule used to convert it (linear or temperature)
//   - MultiInput: marks units normally populated from length x width (x height)
//
// The default registry is built once at init, validated, and never mutated, so
// it is safe for concurrent use.
package units
