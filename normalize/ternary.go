// SPDX-License-Identifier: MIT

package normalize

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/genelab/matrix"
)

// Ternarize discretizes a z-scored matrix into {-1, 0, +1}
// (down/neutral/up association).
//
// Two modes, selected by options:
//   - Fixed magnitude (default): z ≥ +cut → +1, z ≤ -cut → -1, else 0.
//   - Per-column quantile (WithTernaryQuantile): each column's top q
//     fraction maps to +1 and bottom q fraction to -1, using the column's
//     empirical quantiles as cuts. After quantile normalization the
//     columns share one distribution, so the cuts agree across columns.
//
// Behavior highlights:
//   - Output values are exactly -1, 0 or +1 (tested), encoded as float64
//     so ternary matrices flow through the same Dense machinery.
//   - Empty matrix → identical (empty) copy.
//
// Errors: matrix.ErrNilMatrix only.
// Complexity: O(r*c) fixed mode; O(c * r log r) quantile mode.
func Ternarize(m *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("normalize: Ternarize: %w", matrix.ErrNilMatrix)
	}
	o := gatherOptions(opts...)

	r, c := m.Rows(), m.Cols()
	out := matrix.NewZeros(m.RowLabels(), m.ColLabels())

	if o.ternaryQuantile > 0 {
		// Quantile mode: per-column empirical cuts.
		for j := 0; j < c; j++ {
			col, err := m.Col(j)
			if err != nil {
				return nil, fmt.Errorf("normalize: Ternarize: %w", err)
			}
			lo, hi := columnCuts(col, o.ternaryQuantile)
			for i := 0; i < r; i++ {
				switch {
				case col[i] > hi:
					_ = out.Set(i, j, 1)
				case col[i] < lo:
					_ = out.Set(i, j, -1)
				}
			}
		}

		return out, nil
	}

	// Fixed-magnitude mode.
	for i := 0; i < r; i++ { // fixed i→j traversal
		for j := 0; j < c; j++ {
			v, _ := m.At(i, j)
			switch {
			case v >= o.ternaryCut:
				_ = out.Set(i, j, 1)
			case v <= -o.ternaryCut:
				_ = out.Set(i, j, -1)
			}
		}
	}

	return out, nil
}

// columnCuts returns the lower and upper empirical q-cuts of one column.
// Degenerate columns (all equal) produce lo == hi and ternarize to all-zero.
func columnCuts(col []float64, q float64) (lo, hi float64) {
	if len(col) == 0 {
		return math.Inf(-1), math.Inf(1)
	}
	sorted := append([]float64(nil), col...)
	sort.Float64s(sorted)
	n := len(sorted)
	loIdx := int(math.Floor(q * float64(n)))
	hiIdx := n - 1 - loIdx
	if loIdx >= n {
		loIdx = n - 1
	}
	if hiIdx < 0 {
		hiIdx = 0
	}

	return sorted[loIdx], sorted[hiIdx]
}
