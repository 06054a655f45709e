// SPDX-License-Identifier: MIT
// Package normalize: quantile normalization of columns.
//
// Standard algorithm: sort every column, average the k-th smallest value
// across columns into a reference distribution, then hand each column's
// rank-k entry the k-th reference value, back in original row order. After
// the transform every column shares one empirical distribution exactly.

package normalize

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/genelab/matrix"
	"gonum.org/v1/gonum/floats"
)

// QuantileNormalizeColumns replaces every column's values with the
// across-column mean of the sorted value at each rank.
//
// Implementation:
//   - Stage 1: per column, record the row order that sorts the column
//     ascending (ties broken by row index for determinism).
//   - Stage 2: reference[k] = mean over columns of each column's k-th
//     smallest value.
//   - Stage 3: write reference[k] back to the row holding each column's
//     rank-k value; runs of tied input values within a column receive the
//     mean of their reference slots, so equal inputs stay equal outputs.
//
// Behavior highlights:
//   - Empty matrix → identical copy; no error.
//   - Post-condition (tested): all columns have identical sorted value
//     sequences within floating tolerance.
//
// Errors: matrix.ErrNilMatrix only.
// Complexity: O(c * r log r) time, O(r*c) memory.
func QuantileNormalizeColumns(m *matrix.Dense) (*matrix.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("normalize: QuantileNormalizeColumns: %w", matrix.ErrNilMatrix)
	}

	r, c := m.Rows(), m.Cols()
	if r == 0 || c == 0 {
		return m.Clone(), nil
	}

	// Stage 1 (Rank): sort order per column, stable under ties.
	order := make([][]int, c)
	cols := make([][]float64, c)
	for j := 0; j < c; j++ {
		col, err := m.Col(j)
		if err != nil {
			return nil, fmt.Errorf("normalize: QuantileNormalizeColumns: %w", err)
		}
		idx := make([]int, r)
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return col[idx[a]] < col[idx[b]] })
		order[j] = idx
		cols[j] = col
	}

	// Stage 2 (Reference): mean of the k-th smallest value across columns.
	reference := make([]float64, r)
	rank := make([]float64, c) // scratch: k-th smallest per column
	for k := 0; k < r; k++ {
		for j := 0; j < c; j++ {
			rank[j] = cols[j][order[j][k]]
		}
		reference[k] = floats.Sum(rank) / float64(c)
	}

	// Stage 3 (Reassign): reference values back in original row order,
	// averaging the reference slots of tied input runs.
	out := matrix.NewZeros(m.RowLabels(), m.ColLabels())
	for j := 0; j < c; j++ {
		idx := order[j]
		for start := 0; start < r; {
			end := start + 1
			for end < r && cols[j][idx[end]] == cols[j][idx[start]] {
				end++ // extend the tied run
			}
			v := floats.Sum(reference[start:end]) / float64(end-start)
			for k := start; k < end; k++ {
				_ = out.Set(idx[k], j, v)
			}
			start = end
		}
	}

	return out, nil
}
