// SPDX-License-Identifier: MIT

// Package similarity computes symmetric pairwise similarity matrices over
// the rows or columns of a labeled matrix.
//
// Two metrics are provided:
//   - Cosine — standard cosine similarity between real-valued vectors;
//     zero-norm vectors contribute 0 (numeric degeneracy policy).
//   - Jaccard — intersection over union of the nonzero supports, for
//     binary/ternary matrices; zero-union pairs contribute 0.
//
// The output is a square Dense indexed by the input labels in input order
// on both axes, with S[i,j] == S[j,i] and a defined diagonal of 1.
//
// Pairwise computation is embarrassingly parallel: rows of the output are
// fanned out in chunks over an errgroup, each worker writing a disjoint
// row range of a preallocated result — no shared mutable state, no locks.
// The sparse Jaccard path replaces the dense O(n²·m) scan with sorted
// nonzero-index merges, the dominant win on ternary gene matrices.
package similarity
