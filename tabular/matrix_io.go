// SPDX-License-Identifier: MIT

package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/katalvlaran/genelab/matrix"
)

var (
	// ErrBadHeader indicates a missing or malformed header row.
	ErrBadHeader = errors.New("tabular: malformed header")

	// ErrBadRow indicates a data row whose field count does not match the
	// header.
	ErrBadRow = errors.New("tabular: malformed row")

	// ErrBadCell indicates a numeric cell that failed to parse.
	ErrBadCell = errors.New("tabular: malformed cell")
)

// missing is the canonical encoding of a NaN cell on output.
const missing = "NA"

// ReadMatrix decodes a labeled TSV matrix.
//
// Stage 1 (Header): the first record must hold the corner cell plus one
// label per column; zero columns is legal (label-only matrix).
// Stage 2 (Rows): each record carries the row label and exactly one cell
// per column. "", "NA", and "NaN" decode to NaN.
//
// Empty input yields an empty, valid matrix.
//
// Errors: ErrBadHeader, ErrBadRow, ErrBadCell (all line-numbered), plus
// matrix construction errors on duplicate handling upstream.
func ReadMatrix(r io.Reader) (*matrix.Dense, error) {
	cr := newTSVReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return matrix.NewZeros(nil, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if len(header) < 1 {
		return nil, fmt.Errorf("%w: empty header record", ErrBadHeader)
	}
	colLabels := header[1:]

	var (
		rowLabels []string
		data      []float64
		line      = 1
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRow, line, err)
		}
		if len(rec) != len(colLabels)+1 {
			return nil, fmt.Errorf("%w: line %d: got %d fields, want %d",
				ErrBadRow, line, len(rec), len(colLabels)+1)
		}
		rowLabels = append(rowLabels, rec[0])
		for _, cell := range rec[1:] {
			v, perr := parseCell(cell)
			if perr != nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrBadCell, line, cell)
			}
			data = append(data, v)
		}
	}

	return matrix.New(rowLabels, colLabels, data)
}

// WriteMatrix encodes m in the layout ReadMatrix decodes. NaN cells
// encode as "NA".
func WriteMatrix(w io.Writer, m *matrix.Dense) error {
	if m == nil {
		return fmt.Errorf("tabular: WriteMatrix: %w", matrix.ErrNilMatrix)
	}
	cw := newTSVWriter(w)

	header := append([]string{""}, m.ColLabels()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("tabular: WriteMatrix: %w", err)
	}
	rowLabels := m.RowLabels()
	rec := make([]string, m.Cols()+1)
	for i := 0; i < m.Rows(); i++ {
		rec[0] = rowLabels[i]
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j)
			rec[j+1] = formatCell(v)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("tabular: WriteMatrix: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// parseCell decodes one numeric cell; the three missing encodings map
// to NaN.
func parseCell(s string) (float64, error) {
	switch s {
	case "", "NA", "NaN":
		return math.NaN(), nil
	}

	return strconv.ParseFloat(s, 64)
}

// formatCell is the inverse of parseCell: shortest exact float form,
// NaN as "NA".
func formatCell(v float64) string {
	if math.IsNaN(v) {
		return missing
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

func newTSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1 // length validated per layout, not globally
	cr.LazyQuotes = true

	return cr
}

func newTSVWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	return cw
}
