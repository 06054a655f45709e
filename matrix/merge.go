// SPDX-License-Identifier: MIT
// Package matrix: duplicate-label merge.
//
// Merge collapses rows (or columns) sharing an identical label into a single
// row (or column) holding the element-wise mean of the duplicates. Symbol
// harmonization routinely maps distinct raw identifiers onto one canonical
// gene symbol, so the merge step is what restores the unique-label invariant
// required by every downstream stage.

package matrix

import (
	"fmt"
	"math"
)

// Merge returns a copy of m in which groups of rows/columns sharing a label
// are reduced to one row/column of that label, positioned at the group's
// first occurrence, holding the per-cell mean over the group.
//
// Behavior highlights:
//   - NaN cells are excluded from the mean; a cell missing in every
//     duplicate stays NaN.
//   - A matrix with already-unique labels is returned as an identical copy,
//     so Merge is idempotent.
//   - Label order is first-occurrence order, keeping output deterministic.
//
// Errors:
//   - ErrNilMatrix, ErrBadAxis.
//
// Complexity: O(r*c) time, O(r*c) memory for the output.
func Merge(m *Dense, axis Axis) (*Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("matrix: Merge: %w", ErrNilMatrix)
	}
	switch axis {
	case Rows:
		return mergeRows(m), nil
	case Cols:
		// Column merge reuses the row kernel through a double transpose;
		// both transposes are O(r*c) and keep one canonical implementation.
		return mergeRows(m.Transpose()).Transpose(), nil
	default:
		return nil, fmt.Errorf("matrix: Merge(%v): %w", axis, ErrBadAxis)
	}
}

// mergeRows is the canonical merge kernel over gene rows.
// Stage 1 (Group): bucket row indices by label in first-occurrence order.
// Stage 2 (Reduce): per group and column, mean over non-NaN members.
func mergeRows(m *Dense) *Dense {
	r, c := m.Rows(), m.Cols()

	// Stage 1 (Group): first-occurrence order keeps output stable.
	order := make([]string, 0, r)
	groups := make(map[string][]int, r)
	for i, label := range m.rowLabels {
		if _, seen := groups[label]; !seen {
			order = append(order, label)
		}
		groups[label] = append(groups[label], i)
	}

	// Fast path: nothing to merge, return a plain copy.
	if len(order) == r {
		return m.Clone()
	}

	// Stage 2 (Reduce): mean over non-missing duplicates per cell.
	out := NewZeros(order, m.colLabels)
	for oi, label := range order {
		members := groups[label]
		for j := 0; j < c; j++ {
			sum, n := 0.0, 0
			for _, i := range members {
				v := m.at(i, j)
				if math.IsNaN(v) {
					continue // missing cells do not dilute the mean
				}
				sum += v
				n++
			}
			if n == 0 {
				out.set(oi, j, math.NaN())
			} else {
				out.set(oi, j, sum/float64(n))
			}
		}
	}

	return out
}
