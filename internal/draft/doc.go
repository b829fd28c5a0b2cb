// Package draft implements structural-sharing updates over plain state trees
// (map[string]any, []any, scalars).
//
// A handler expresses an update by mutating a draft of the base value; Apply
// commits the draft into a new tree in which every unmodified substructure is
// reference-identical to the base tree. The base value itself is never
// mutated. A draft with no effective writes commits the base value itself,
// so callers can detect no-op updates with a cheap identity comparison.
//
// The package is stdlib-only and independently testable; the dispatch engine
// depends only on the Apply contract.
package draft
