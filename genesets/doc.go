// SPDX-License-Identifier: MIT

// Package genesets defines named collections of gene symbols and the
// tab-delimited (GMT-style) parser that loads them.
//
// A GeneSet is a named, deduplicated, sorted set of gene symbols; a
// Library maps set names to GeneSets while preserving insertion order so
// every derived table is deterministic. Universe computes the distinct
// union of genes across libraries — the background population for the
// overlap statistics in package setoverlap.
//
// Parsing fails fast: a record with fewer than three tab-delimited fields
// (name, description, at least one gene) aborts with ErrBadRecord wrapped
// with the offending 1-based line number. An empty input is not an error;
// it yields an empty, valid Library.
package genesets
