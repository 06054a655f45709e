// SPDX-License-Identifier: MIT

package normalize

import (
	"fmt"
	"math"

	"github.com/katalvlaran/genelab/matrix"
)

// FilterStats reports what FilterImpute removed and repaired.
type FilterStats struct {
	RowsDropped  int
	ColsDropped  int
	CellsImputed int
}

// FilterImpute drops rows and columns whose missing fraction strictly
// exceeds the cutoff, then imputes every surviving NaN cell.
//
// Implementation:
//   - Stage 1: measure missing fractions per column and per row on the
//     input, then drop both (fractions are judged once, on the original
//     matrix, so row and column filtering do not interact).
//   - Stage 2: impute remaining NaNs per the configured strategy. A vector
//     with no finite values at all (possible only after the orthogonal axis
//     was cut) imputes to 0 — explicit degeneracy policy, not an error.
//
// Behavior highlights:
//   - Empty input → empty, valid output; never an error.
//   - Output contains no NaN; downstream stages assume finite data.
//
// Errors: matrix.ErrNilMatrix only.
// Complexity: O(r*c) time, O(r*c) memory.
func FilterImpute(m *matrix.Dense, opts ...Option) (*matrix.Dense, FilterStats, error) {
	if m == nil {
		return nil, FilterStats{}, fmt.Errorf("normalize: FilterImpute: %w", matrix.ErrNilMatrix)
	}
	o := gatherOptions(opts...)

	r, c := m.Rows(), m.Cols()
	var stats FilterStats

	// Stage 1 (Measure): missing fractions on the original matrix.
	keepCols := make([]int, 0, c)
	for j := 0; j < c; j++ {
		f, err := m.MissingFraction(matrix.Cols, j)
		if err != nil {
			return nil, FilterStats{}, fmt.Errorf("normalize: FilterImpute: %w", err)
		}
		if f > o.missingCutoff {
			stats.ColsDropped++
			continue
		}
		keepCols = append(keepCols, j)
	}
	keepRows := make([]int, 0, r)
	for i := 0; i < r; i++ {
		f, err := m.MissingFraction(matrix.Rows, i)
		if err != nil {
			return nil, FilterStats{}, fmt.Errorf("normalize: FilterImpute: %w", err)
		}
		if f > o.missingCutoff {
			stats.RowsDropped++
			continue
		}
		keepRows = append(keepRows, i)
	}

	// Stage 1 (Drop): subset rows, then columns via the transpose kernel.
	sub, err := m.SelectRows(keepRows)
	if err != nil {
		return nil, FilterStats{}, fmt.Errorf("normalize: FilterImpute: %w", err)
	}
	subT, err := sub.Transpose().SelectRows(keepCols)
	if err != nil {
		return nil, FilterStats{}, fmt.Errorf("normalize: FilterImpute: %w", err)
	}
	out := subT.Transpose()

	// Stage 2 (Impute): fill surviving gaps; fixed i→j traversal.
	rr, cc := out.Rows(), out.Cols()
	rowMeans := finiteMeans(out, matrix.Rows)
	colMeans := finiteMeans(out, matrix.Cols)
	for i := 0; i < rr; i++ {
		for j := 0; j < cc; j++ {
			v, _ := out.At(i, j)
			if !math.IsNaN(v) {
				continue
			}
			fill := rowMeans[i]
			if o.impute == ColumnMean {
				fill = colMeans[j]
			}
			if math.IsNaN(fill) {
				fill = 0 // no finite values on the vector: degeneracy policy
			}
			_ = out.Set(i, j, fill)
			stats.CellsImputed++
		}
	}

	return out, stats, nil
}

// finiteMeans computes the mean of finite values per row or column.
// Vectors without finite values yield NaN; callers apply the zero policy.
func finiteMeans(m *matrix.Dense, axis matrix.Axis) []float64 {
	n := m.Rows()
	if axis == matrix.Cols {
		n = m.Cols()
	}
	means := make([]float64, n)
	for k := 0; k < n; k++ {
		var vec []float64
		if axis == matrix.Rows {
			vec, _ = m.Row(k)
		} else {
			vec, _ = m.Col(k)
		}
		sum, cnt := 0.0, 0
		for _, v := range vec {
			if math.IsNaN(v) {
				continue
			}
			sum += v
			cnt++
		}
		if cnt == 0 {
			means[k] = math.NaN()
		} else {
			means[k] = sum / float64(cnt)
		}
	}

	return means
}
