// SPDX-License-Identifier: MIT

// Package symbols harmonizes raw gene identifiers against a curated lookup
// of approved gene symbols.
//
// A Lookup is built once from two read-only mappings — raw symbol →
// canonical approved symbol, and canonical symbol → NCBI integer gene ID —
// and is immutable afterwards. It is always passed explicitly; there is no
// package-level table, so every caller's dependencies stay visible and
// testable in isolation.
//
// MapRows relabels matrix rows to canonical symbols, drops rows whose raw
// label the lookup does not know, and mean-merges rows that collide on the
// same canonical symbol. Because a merge can itself expose new raw labels
// to remapping, MapToFixedPoint iterates MapRows until the row count
// stabilizes — under a hard iteration cap, with the row count asserted to
// be monotonically non-increasing, so a malformed lookup surfaces as
// ErrRemapDiverged instead of an unbounded loop.
package symbols
