// SPDX-License-Identifier: MIT

package tabular

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/genelab/symbols"
)

// ReadLookup decodes a symbol lookup table: raw_symbol, canonical_symbol,
// optional gene-ID column (empty cell means no ID). Blank raw or
// canonical fields are malformed; duplicate raw symbols keep the last
// entry, matching plain map semantics.
//
// Empty input yields an empty, valid lookup.
//
// Errors: ErrBadRow, ErrBadCell (line-numbered).
func ReadLookup(r io.Reader) (*symbols.Lookup, error) {
	cr := newTSVReader(r)

	canonical := make(map[string]string)
	geneID := make(map[string]int64)
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRow, line, err)
		}
		if len(rec) < 2 || len(rec) > 3 {
			return nil, fmt.Errorf("%w: line %d: got %d fields, want 2 or 3",
				ErrBadRow, line, len(rec))
		}
		raw, canon := rec[0], rec[1]
		if raw == "" || canon == "" {
			return nil, fmt.Errorf("%w: line %d: blank symbol", ErrBadRow, line)
		}
		canonical[raw] = canon
		if len(rec) == 3 && rec[2] != "" {
			id, perr := strconv.ParseInt(rec[2], 10, 64)
			if perr != nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrBadCell, line, rec[2])
			}
			geneID[canon] = id
		}
	}

	return symbols.NewLookup(canonical, geneID), nil
}
