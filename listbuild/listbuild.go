// SPDX-License-Identifier: MIT

package listbuild

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/genelab/matrix"
	"github.com/katalvlaran/genelab/symbols"
)

// ErrBadDirection reports a Direction outside {Up, Down}.
var ErrBadDirection = errors.New("listbuild: invalid direction")

// Direction selects which sign of a cell places its opposite-axis label
// into a set.
type Direction int

const (
	// Up collects labels whose cell value is strictly positive.
	Up Direction = iota
	// Down collects labels whose cell value is strictly negative.
	Down
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is a defined direction.
func (d Direction) Valid() bool { return d == Up || d == Down }

// GeneRow is one line of the gene list artifact.
type GeneRow struct {
	Symbol string
	GeneID int64 // valid only when HasID
	HasID  bool
}

// AttributeRow is one line of the attribute list artifact.
type AttributeRow struct {
	Name         string
	Associations int // count of nonzero cells in the column
}

// SetEntry is one named member set of a built library. Members keep the
// matrix label order of the opposite axis.
type SetEntry struct {
	Name    string
	Members []string
}

// Edge is one nonzero cell of the matrix, read as a weighted
// gene–attribute link.
type Edge struct {
	Gene      string
	Attribute string
	Weight    float64
}

// GeneList returns one GeneRow per matrix row, in row order.
//
// Implementation:
//   - Stage 1 (Validate): reject a nil matrix; a nil lookup is legal and
//     simply resolves no IDs.
//   - Stage 2 (Execute): for each row label, consult lk.GeneID; absent
//     IDs keep the row with HasID=false.
//
// Errors: matrix.ErrNilMatrix only.
// Complexity: O(rows).
func GeneList(m *matrix.Dense, lk *symbols.Lookup) ([]GeneRow, error) {
	if m == nil {
		return nil, fmt.Errorf("listbuild: GeneList: %w", matrix.ErrNilMatrix)
	}

	labels := m.RowLabels()
	rows := make([]GeneRow, len(labels))
	for i, sym := range labels {
		row := GeneRow{Symbol: sym}
		if lk != nil {
			if id, ok := lk.GeneID(sym); ok {
				row.GeneID = id
				row.HasID = true
			}
		}
		rows[i] = row
	}

	return rows, nil
}

// AttributeList returns one AttributeRow per matrix column, in column
// order, counting the nonzero cells of each column.
//
// Errors: matrix.ErrNilMatrix only.
// Complexity: O(rows·cols).
func AttributeList(m *matrix.Dense) ([]AttributeRow, error) {
	if m == nil {
		return nil, fmt.Errorf("listbuild: AttributeList: %w", matrix.ErrNilMatrix)
	}

	labels := m.ColLabels()
	r, c := m.Rows(), m.Cols()
	out := make([]AttributeRow, c)
	for j := 0; j < c; j++ {
		n := 0
		for i := 0; i < r; i++ {
			v, _ := m.At(i, j) // indices are in range by construction
			if v != 0 && !math.IsNaN(v) {
				n++
			}
		}
		out[j] = AttributeRow{Name: labels[j], Associations: n}
	}

	return out, nil
}

// SetLibrary builds one SetEntry per row (axis == Rows) or per column
// (axis == Cols): the opposite-axis labels whose cell value is strictly
// positive (Up) or strictly negative (Down).
//
// Behavior highlights:
//   - Entries follow matrix label order; members follow opposite-axis
//     label order. Output is deterministic.
//   - Empty sets are retained so the library stays 1:1 with the
//     corresponding list artifact.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrBadAxis, ErrBadDirection.
// Complexity: O(rows·cols).
func SetLibrary(m *matrix.Dense, axis matrix.Axis, dir Direction) ([]SetEntry, error) {
	if m == nil {
		return nil, fmt.Errorf("listbuild: SetLibrary: %w", matrix.ErrNilMatrix)
	}
	if !axis.Valid() {
		return nil, fmt.Errorf("listbuild: SetLibrary: %w: %d", matrix.ErrBadAxis, int(axis))
	}
	if !dir.Valid() {
		return nil, fmt.Errorf("listbuild: SetLibrary: %w: %d", ErrBadDirection, int(dir))
	}
	if axis == matrix.Cols {
		return SetLibrary(m.Transpose(), matrix.Rows, dir)
	}

	names := m.RowLabels()
	members := m.ColLabels()
	r, c := m.Rows(), m.Cols()
	out := make([]SetEntry, r)
	for i := 0; i < r; i++ {
		set := make([]string, 0, c)
		for j := 0; j < c; j++ {
			v, _ := m.At(i, j)
			if (dir == Up && v > 0) || (dir == Down && v < 0) {
				set = append(set, members[j])
			}
		}
		out[i] = SetEntry{Name: names[i], Members: set}
	}

	return out, nil
}

// EdgeList returns one Edge per nonzero cell, scanning rows outer and
// columns inner so the order is deterministic.
//
// Errors: matrix.ErrNilMatrix only.
// Complexity: O(rows·cols) time, O(nonzero) memory.
func EdgeList(m *matrix.Dense) ([]Edge, error) {
	if m == nil {
		return nil, fmt.Errorf("listbuild: EdgeList: %w", matrix.ErrNilMatrix)
	}

	genes := m.RowLabels()
	attrs := m.ColLabels()
	r, c := m.Rows(), m.Cols()
	edges := make([]Edge, 0, r) // grows as needed; nonzero count unknown upfront
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, _ := m.At(i, j)
			if v == 0 || math.IsNaN(v) {
				continue
			}
			edges = append(edges, Edge{Gene: genes[i], Attribute: attrs[j], Weight: v})
		}
	}

	return edges, nil
}
