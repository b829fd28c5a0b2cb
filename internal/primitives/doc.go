// Package primitives provides the foundational, zero-dependency data structures
// for the state-container engine.
//
// This package uses ONLY the Go standard library. No external dependencies are
// permitted in the primitives tier to achieve:
// - Minimal binary size
// - Zero vendor bloat
// - Deterministic builds
// - Sub-microsecond hot paths
//
// Core invariants:
// - Immutability where possible (Action)
// - Value types on the dispatch hot path (zero-allocation creation)
//
// See ../../DESIGN.md for the complete design rationale.
package primitives
