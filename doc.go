// Package genelab is a batch ETL toolkit for functional genomics data:
// it converts gene-expression matrices and curated gene-set libraries
// into the derived artifacts downstream resources are built from.
//
// 🚀 What is genelab?
//
//	A deterministic processing library organized as two tracks:
//		• Matrix track: canonical symbol mapping (fixed-point), missing-data
//		  filtering + imputation, log2 / quantile / z-score normalization,
//		  ternarization, gene & attribute similarity, list / set-library /
//		  edge-list derivation
//		• Set track: pairwise overlap of two gene-set libraries — Jaccard
//		  indices, two-tailed Fisher exact tests, rank-adjusted q-values,
//		  top-K associations
//
// ✨ Why choose genelab?
//
//   - Deterministic – same inputs, byte-identical artifacts, every run
//   - Explicit policies – empty inputs and numeric degeneracy resolve to
//     documented values, never to silent errors
//   - Composable – every stage is a pure function Matrix → new Matrix,
//     orchestrated (but never hidden) by the pipeline package
//
// Everything is organized under focused subpackages:
//
//	matrix/     — labeled dense float64 matrix, mean-merge of duplicate labels
//	symbols/    — raw→canonical symbol lookups, bounded fixed-point remapping
//	normalize/  — filter/impute, log2, quantile, z-score, ternarize
//	similarity/ — cosine & Jaccard over rows or columns, parallel kernels
//	genesets/   — gene sets, libraries, GMT parsing, universe derivation
//	setoverlap/ — Jaccard / Fisher exact / q-value pair scoring
//	listbuild/  — gene & attribute lists, set libraries, edge lists
//	pipeline/   — the matrix track end to end, one Artifacts struct out
//	tabular/    — TSV/GMT readers and writers for every file surface
//	cmd/genelab — the command-line front end (process, overlap)
//
//	go get github.com/katalvlaran/genelab
package genelab
