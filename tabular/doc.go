// SPDX-License-Identifier: MIT

// Package tabular reads and writes the pipeline's file surfaces as
// tab-separated values.
//
// Matrix layout: one header row (empty corner cell, then column labels),
// then one row per gene (row label, then values). On input the cell
// encodings "", "NA", and "NaN" all decode to a missing value; on output
// missing cells encode as "NA". Floats round-trip via the shortest
// representation that parses back exactly.
//
// Lookup layout: raw_symbol, canonical_symbol, and an optional third
// gene-ID column (empty means no ID).
//
// Artifact writers emit the gene/attribute lists, set libraries (GMT
// lines compatible with the genesets parser), edge lists, and overlap
// pair tables. All writers preserve input order, so output is
// byte-stable.
//
// Only cmd/genelab imports this package; the core pipeline works on
// in-memory values.
package tabular
