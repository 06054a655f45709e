// SPDX-License-Identifier: MIT
// Package setoverlap: Fisher's exact test for 2×2 contingency tables.
//
// The two-tailed p-value follows the standard convention (R fisher.test,
// SciPy): sum the hypergeometric point probabilities of every table with
// the same margins whose probability does not exceed the observed table's,
// within a small relative tolerance for floating-point equality.
//
// All mass terms are computed in log space via gonum's log-binomial, so
// tables with counts in the tens of thousands stay finite.

package setoverlap

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// fisherTolerance absorbs floating noise when comparing point
// probabilities of equal mass across the two tails.
const fisherTolerance = 1e-7

// FisherExact returns the two-tailed Fisher exact p-value of the table
//
//	[[a, b],
//	 [c, d]]
//
// Implementation:
//   - Stage 1: fix margins r1=a+b, c1=a+c, n=a+b+c+d; enumerate every
//     admissible top-left cell k ∈ [max(0, c1-r2), min(r1, c1)].
//   - Stage 2: logP(k) = lC(r1,k) + lC(r2,c1-k) − lC(n,c1).
//   - Stage 3: p = Σ exp(logP(k)) over k with P(k) ≤ P(a)·(1+tol).
//
// Behavior highlights:
//   - Symmetric in rows and columns: transposing the table (swapping the
//     two libraries) yields the same p-value.
//   - Degenerate margins (an empty row or column) leave only one
//     admissible table, so p == 1.
//   - The result is clamped to [0,1] against summation noise.
//
// Complexity: O(min(r1,c1)) time, O(1) memory.
func FisherExact(a, b, c, d int) float64 {
	r1 := a + b
	r2 := c + d
	c1 := a + c
	n := r1 + r2
	if n == 0 {
		return 1 // empty universe: nothing to test
	}

	lo := 0
	if c1-r2 > lo {
		lo = c1 - r2
	}
	hi := r1
	if c1 < hi {
		hi = c1
	}

	logDenom := logChoose(n, c1)
	logObs := logChoose(r1, a) + logChoose(r2, c1-a) - logDenom
	cutoff := logObs + math.Log1p(fisherTolerance)

	p := 0.0
	for k := lo; k <= hi; k++ { // fixed ascending order, deterministic sum
		logP := logChoose(r1, k) + logChoose(r2, c1-k) - logDenom
		if logP <= cutoff {
			p += math.Exp(logP)
		}
	}
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}

	return p
}

// logChoose is ln C(n,k) with the out-of-range convention ln 0 = -Inf.
func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}

	return combin.LogGeneralizedBinomial(float64(n), float64(k))
}
