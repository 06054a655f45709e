// SPDX-License-Identifier: MIT

// Package setoverlap scores every pair drawn from two gene-set libraries
// against a shared gene universe.
//
// For each pair (a ∈ A, b ∈ B) over a universe of size n it computes the
// 2×2 contingency table (intersection, a-only, b-only, neither), the
// Jaccard index, the two-tailed Fisher exact p-value, and a rank-adjusted
// q-value q = p·N/rank(p) over all N = |A|·|B| pairs
// (Benjamini–Hochberg-style). TopK extracts the strongest associations —
// Jaccard descending, ties broken by q ascending — annotated with the
// intersecting gene lists.
//
// The p×q pair loop is embarrassingly parallel: chunks of A-rows fan out
// over an errgroup against read-only inputs, each worker filling a
// disjoint slice range, with a single concatenate-free reduce at the end.
//
// Empty libraries yield an empty, valid Result — downstream serialization
// must still run. Numeric degeneracy (empty union) resolves to Jaccard 0
// by policy, never an error.
package setoverlap
