// SPDX-License-Identifier: MIT

package genesets

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseGMT reads a GMT-style tab-delimited stream:
//
//	set_name<TAB>description<TAB>gene_1<TAB>gene_2...
//
// Implementation:
//   - Stage 1: scan lines, skipping blank lines.
//   - Stage 2: a line with fewer than 3 fields fails fast with
//     ErrBadRecord naming the 1-based line number — malformed vendor
//     files must never silently shrink a library.
//   - Stage 3: build GeneSets (dedup + sort) and Add them, so duplicate
//     set names also fail with the line number.
//
// An empty stream yields an empty, valid Library.
//
// Errors: ErrBadRecord, ErrDuplicateSet, scanner IO errors.
// Complexity: O(total input).
func ParseGMT(r io.Reader) (*Library, error) {
	lib := NewLibrary()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024) // gene-set lines can run long

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("genesets: ParseGMT: line %d has %d tab-delimited fields, need >= 3: %w",
				lineNo, len(fields), ErrBadRecord)
		}
		set := NewGeneSet(fields[0], fields[1], fields[2:])
		if err := lib.Add(set); err != nil {
			return nil, fmt.Errorf("genesets: ParseGMT: line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("genesets: ParseGMT: %w", err)
	}

	return lib, nil
}
