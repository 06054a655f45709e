// SPDX-License-Identifier: MIT

package normalize

import (
	"fmt"

	"github.com/katalvlaran/genelab/matrix"
	"gonum.org/v1/gonum/stat"
)

// ZScoreRows standardizes every gene row: subtract the row mean, divide by
// the sample standard deviation.
//
// Behavior highlights:
//   - Zero-variance rows (and single-column matrices, where the sample
//     standard deviation is undefined) become all-zero rows — the numeric
//     degeneracy policy, reported via the second return value, never an
//     error.
//   - Post-condition (tested): rows with nonzero variance have mean ≈ 0
//     and standard deviation ≈ 1.
//
// Returns the standardized matrix and the count of degenerate rows.
// Errors: matrix.ErrNilMatrix only.
// Complexity: O(r*c).
func ZScoreRows(m *matrix.Dense) (*matrix.Dense, int, error) {
	if m == nil {
		return nil, 0, fmt.Errorf("normalize: ZScoreRows: %w", matrix.ErrNilMatrix)
	}

	r, c := m.Rows(), m.Cols()
	out := matrix.NewZeros(m.RowLabels(), m.ColLabels())
	degenerate := 0
	for i := 0; i < r; i++ { // fixed row order
		row, err := m.Row(i)
		if err != nil {
			return nil, 0, fmt.Errorf("normalize: ZScoreRows: %w", err)
		}
		mean, std := stat.MeanStdDev(row, nil)
		if !(std > 0) { // covers std == 0 and NaN (c < 2)
			degenerate++
			continue // row stays all-zero by allocation
		}
		inv := 1.0 / std
		for j := 0; j < c; j++ {
			_ = out.Set(i, j, (row[j]-mean)*inv)
		}
	}

	return out, degenerate, nil
}
