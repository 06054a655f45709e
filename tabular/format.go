// SPDX-License-Identifier: MIT

package tabular

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/genelab/matrix"
)

// ErrBadFormat reports an unknown matrix input format.
var ErrBadFormat = errors.New("tabular: unknown matrix format")

// Format enumerates the supported matrix input schemas. Each variant
// binds a fixed field mapping chosen once at load time; there is no
// per-cell dispatch.
type Format int

const (
	// FormatTSV is the plain labeled layout ReadMatrix decodes.
	FormatTSV Format = iota

	// FormatGCT is the GCT 1.2 layout: a "#1.2" version line, a
	// rows/columns dimension line, then a header of
	// Name, Description, sample labels. The Description column is
	// discarded on load.
	FormatGCT
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatTSV:
		return "tsv"
	case FormatGCT:
		return "gct"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a config/flag string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "tsv":
		return FormatTSV, nil
	case "gct":
		return FormatGCT, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}
}

// ReadMatrixFormat decodes a matrix in the given schema. The schema is
// fixed for the whole read; mixed layouts are malformed input.
//
// Errors: ErrBadFormat, plus the per-schema decode errors.
func ReadMatrixFormat(r io.Reader, f Format) (*matrix.Dense, error) {
	switch f {
	case FormatTSV:
		return ReadMatrix(r)
	case FormatGCT:
		return readGCT(r)
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, int(f))
	}
}

// readGCT decodes the GCT 1.2 schema.
//
// Stage 1 (Preamble): require the "#1.2" version line and the
// rows<TAB>cols dimension line.
// Stage 2 (Header): Name, Description, then one label per sample.
// Stage 3 (Rows): row label, discarded description, then the cells.
// The declared dimensions are validated against the parsed data.
func readGCT(r io.Reader) (*matrix.Dense, error) {
	cr := newTSVReader(r)

	version, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing GCT version line: %v", ErrBadHeader, err)
	}
	if !strings.HasPrefix(version[0], "#1.2") {
		return nil, fmt.Errorf("%w: want GCT version #1.2, got %q", ErrBadHeader, version[0])
	}

	dims, err := cr.Read()
	if err != nil || len(dims) != 2 {
		return nil, fmt.Errorf("%w: malformed GCT dimension line", ErrBadHeader)
	}
	wantRows, err1 := strconv.Atoi(dims[0])
	wantCols, err2 := strconv.Atoi(dims[1])
	if err1 != nil || err2 != nil || wantRows < 0 || wantCols < 0 {
		return nil, fmt.Errorf("%w: malformed GCT dimensions %q x %q", ErrBadHeader, dims[0], dims[1])
	}

	header, err := cr.Read()
	if err != nil || len(header) != wantCols+2 {
		return nil, fmt.Errorf("%w: GCT header wants %d fields", ErrBadHeader, wantCols+2)
	}
	colLabels := header[2:]

	var (
		rowLabels []string
		data      []float64
		line      = 3
	)
	for {
		rec, rerr := cr.Read()
		if errors.Is(rerr, io.EOF) {
			break
		}
		line++
		if rerr != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRow, line, rerr)
		}
		if len(rec) != wantCols+2 {
			return nil, fmt.Errorf("%w: line %d: got %d fields, want %d",
				ErrBadRow, line, len(rec), wantCols+2)
		}
		rowLabels = append(rowLabels, rec[0])
		for _, cell := range rec[2:] { // rec[1] is the discarded description
			v, perr := parseCell(cell)
			if perr != nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrBadCell, line, cell)
			}
			data = append(data, v)
		}
	}
	if len(rowLabels) != wantRows {
		return nil, fmt.Errorf("%w: declared %d rows, parsed %d", ErrBadRow, wantRows, len(rowLabels))
	}

	return matrix.New(rowLabels, colLabels, data)
}
