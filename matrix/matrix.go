// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Axis selects the orientation of an operation: gene rows or
// sample/attribute columns.
type Axis int

const (
	// Rows applies the operation across gene rows.
	Rows Axis = iota

	// Cols applies the operation across sample/attribute columns.
	Cols
)

// String implements fmt.Stringer for log and error messages.
func (a Axis) String() string {
	switch a {
	case Rows:
		return "rows"
	case Cols:
		return "cols"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Valid reports whether a is one of the two defined axes.
func (a Axis) Valid() bool { return a == Rows || a == Cols }

// Dense is a row-major labeled matrix of float64 values.
// rowLabels[i] names row i (a gene symbol), colLabels[j] names column j
// (a sample or attribute). data holds r*c elements in row-major order.
// NaN encodes a missing cell.
type Dense struct {
	rowLabels []string
	colLabels []string
	data      []float64 // flat backing storage, length == len(rowLabels)*len(colLabels)
}

// New creates a Dense from labels and row-major data.
// Stage 1 (Validate): data length must equal len(rowLabels)*len(colLabels).
// Stage 2 (Finalize): labels and data are copied; the caller keeps ownership
// of its slices.
// Complexity: O(r*c) time and memory.
func New(rowLabels, colLabels []string, data []float64) (*Dense, error) {
	r, c := len(rowLabels), len(colLabels)
	if len(data) != r*c {
		return nil, fmt.Errorf("matrix: New: %d values for %dx%d: %w", len(data), r, c, ErrBadShape)
	}
	m := &Dense{
		rowLabels: append([]string(nil), rowLabels...),
		colLabels: append([]string(nil), colLabels...),
		data:      append([]float64(nil), data...),
	}

	return m, nil
}

// NewZeros creates an all-zero Dense with the given labels.
// Complexity: O(r*c).
func NewZeros(rowLabels, colLabels []string) *Dense {
	return &Dense{
		rowLabels: append([]string(nil), rowLabels...),
		colLabels: append([]string(nil), colLabels...),
		data:      make([]float64, len(rowLabels)*len(colLabels)),
	}
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return len(m.rowLabels) }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return len(m.colLabels) }

// RowLabels returns a copy of the row label slice.
func (m *Dense) RowLabels() []string { return append([]string(nil), m.rowLabels...) }

// ColLabels returns a copy of the column label slice.
func (m *Dense) ColLabels() []string { return append([]string(nil), m.colLabels...) }

// Labels returns a copy of the labels along the requested axis.
func (m *Dense) Labels(axis Axis) ([]string, error) {
	switch axis {
	case Rows:
		return m.RowLabels(), nil
	case Cols:
		return m.ColLabels(), nil
	default:
		return nil, fmt.Errorf("matrix: Labels(%v): %w", axis, ErrBadAxis)
	}
}

// At retrieves the element at (row, col).
// Public indexer: bounds-checked, returns ErrOutOfRange instead of panicking.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	if row < 0 || row >= m.Rows() || col < 0 || col >= m.Cols() {
		return 0, fmt.Errorf("matrix: At(%d,%d): %w", row, col, ErrOutOfRange)
	}

	return m.data[row*m.Cols()+col], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	if row < 0 || row >= m.Rows() || col < 0 || col >= m.Cols() {
		return fmt.Errorf("matrix: Set(%d,%d): %w", row, col, ErrOutOfRange)
	}
	m.data[row*m.Cols()+col] = v

	return nil
}

// at is the unchecked fast-path accessor for package-internal tight loops.
// Callers guarantee bounds; this mirrors the Dense flat-buffer fast paths
// used throughout the package.
func (m *Dense) at(row, col int) float64 { return m.data[row*len(m.colLabels)+col] }

// set is the unchecked fast-path mutator for package-internal tight loops.
func (m *Dense) set(row, col int, v float64) { m.data[row*len(m.colLabels)+col] = v }

// Row returns a copy of row i.
// Complexity: O(c).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.Rows() {
		return nil, fmt.Errorf("matrix: Row(%d): %w", i, ErrOutOfRange)
	}
	c := m.Cols()
	out := make([]float64, c)
	copy(out, m.data[i*c:(i+1)*c])

	return out, nil
}

// Col returns a copy of column j.
// Complexity: O(r).
func (m *Dense) Col(j int) ([]float64, error) {
	if j < 0 || j >= m.Cols() {
		return nil, fmt.Errorf("matrix: Col(%d): %w", j, ErrOutOfRange)
	}
	r, c := m.Rows(), m.Cols()
	out := make([]float64, r)
	for i := 0; i < r; i++ { // deterministic row order
		out[i] = m.data[i*c+j]
	}

	return out, nil
}

// RowIndex returns the index of the first row carrying label, or
// ErrUnknownLabel. Duplicate labels (pre-Merge matrices) resolve to the
// first occurrence.
// Complexity: O(r).
func (m *Dense) RowIndex(label string) (int, error) {
	for i, l := range m.rowLabels {
		if l == label {
			return i, nil
		}
	}

	return 0, fmt.Errorf("matrix: RowIndex(%q): %w", label, ErrUnknownLabel)
}

// Clone returns a deep copy of m.
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	return &Dense{
		rowLabels: append([]string(nil), m.rowLabels...),
		colLabels: append([]string(nil), m.colLabels...),
		data:      append([]float64(nil), m.data...),
	}
}

// Transpose returns a new Dense with rows and columns (and their labels)
// exchanged. The input is not mutated.
// Complexity: O(r*c).
func (m *Dense) Transpose() *Dense {
	r, c := m.Rows(), m.Cols()
	t := NewZeros(m.colLabels, m.rowLabels)
	for i := 0; i < r; i++ { // fixed i→j traversal
		for j := 0; j < c; j++ {
			t.data[j*r+i] = m.data[i*c+j]
		}
	}

	return t
}

// WithRowLabels returns a copy of m whose row labels are replaced by labels.
// Used by symbol mapping, where values survive but identifiers change.
func (m *Dense) WithRowLabels(labels []string) (*Dense, error) {
	if len(labels) != m.Rows() {
		return nil, fmt.Errorf("matrix: WithRowLabels: %d labels for %d rows: %w",
			len(labels), m.Rows(), ErrLabelMismatch)
	}
	out := m.Clone()
	out.rowLabels = append([]string(nil), labels...)

	return out, nil
}

// SelectRows returns a copy of m containing only the rows whose indices are
// listed in keep, in the order given.
// Complexity: O(len(keep)*c).
func (m *Dense) SelectRows(keep []int) (*Dense, error) {
	c := m.Cols()
	labels := make([]string, 0, len(keep))
	data := make([]float64, 0, len(keep)*c)
	for _, i := range keep {
		if i < 0 || i >= m.Rows() {
			return nil, fmt.Errorf("matrix: SelectRows(%d): %w", i, ErrOutOfRange)
		}
		labels = append(labels, m.rowLabels[i])
		data = append(data, m.data[i*c:(i+1)*c]...)
	}

	return &Dense{rowLabels: labels, colLabels: m.ColLabels(), data: data}, nil
}

// MissingFraction returns the NaN fraction of row/column idx along axis.
// An empty vector reports 1.0 (fully missing) so degenerate shapes are
// filtered rather than divided by zero.
func (m *Dense) MissingFraction(axis Axis, idx int) (float64, error) {
	var vec []float64
	var err error
	switch axis {
	case Rows:
		vec, err = m.Row(idx)
	case Cols:
		vec, err = m.Col(idx)
	default:
		return 0, fmt.Errorf("matrix: MissingFraction(%v): %w", axis, ErrBadAxis)
	}
	if err != nil {
		return 0, err
	}
	if len(vec) == 0 {
		return 1.0, nil
	}
	missing := 0
	for _, v := range vec {
		if math.IsNaN(v) {
			missing++
		}
	}

	return float64(missing) / float64(len(vec)), nil
}

// String implements fmt.Stringer for debugging: a header line of column
// labels followed by one labeled line per row.
// Complexity: O(r*c) string construction.
func (m *Dense) String() string {
	var b strings.Builder
	b.WriteString("\t" + strings.Join(m.colLabels, "\t") + "\n")
	c := m.Cols()
	for i, label := range m.rowLabels {
		b.WriteString(label)
		for j := 0; j < c; j++ {
			fmt.Fprintf(&b, "\t%g", m.data[i*c+j])
		}
		b.WriteByte('\n')
	}

	return b.String()
}
