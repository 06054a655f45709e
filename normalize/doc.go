// SPDX-License-Identifier: MIT

// Package normalize implements the fixed transformation chain that turns a
// raw gene-by-sample expression matrix into comparable, standardized form:
//
//  1. FilterImpute — drop rows/columns that are mostly missing, impute the
//     remaining gaps (row-mean by default).
//  2. Log2 — elementwise log2(x+ε), guarded against zero/negative input.
//  3. QuantileNormalizeColumns — classic rank/mean/reassign quantile
//     normalization; afterwards every column shares one empirical
//     distribution.
//  4. ZScoreRows — per-row standardization; zero-variance rows become
//     all-zero rather than raising.
//  5. Ternarize — threshold z-scores into {-1, 0, +1} (down/neutral/up).
//
// Every stage is a pure, total function: input Dense → freshly allocated
// Dense, no mutation, no failure on well-formed finite input. The order is
// fixed — z-scoring must follow quantile normalization, ternarization must
// follow z-scoring — and Chain encodes exactly that order, tagging any
// error with the stage that produced it.
//
// Numeric degeneracy (zero-variance rows, empty matrices) is resolved by
// explicit policy, never by error: the pipeline downstream must keep
// running on empty-but-valid results.
package normalize
