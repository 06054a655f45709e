// SPDX-License-Identifier: MIT

package normalize

import (
	"fmt"

	"github.com/katalvlaran/genelab/matrix"
)

// Stage names used in wrapped errors and pipeline logs, so a failed run
// always identifies which transform halted it.
const (
	StageFilterImpute = "filter-impute"
	StageLog2         = "log2"
	StageQuantile     = "quantile-normalize"
	StageZScore       = "zscore"
	StageTernarize    = "ternarize"
)

// Result carries the named checkpoints of one normalization run.
type Result struct {
	// Filtered is the matrix after missing-data filtering + imputation
	// (the "filtered" checkpoint persisted by the pipeline).
	Filtered *matrix.Dense

	// Normalized is the matrix after log transform and quantile
	// normalization: all columns share one empirical distribution.
	Normalized *matrix.Dense

	// Standardized is the row z-scored matrix.
	Standardized *matrix.Dense

	// Stats aggregates per-stage bookkeeping for logging.
	Stats ChainStats
}

// ChainStats aggregates the degeneracy/filter bookkeeping of a run.
type ChainStats struct {
	Filter         FilterStats
	DegenerateRows int // zero-variance rows zeroed by ZScoreRows
}

// Chain runs stages 1–4 in their fixed order. Ternarization is derived
// separately from Result.Standardized (via Ternarize) because downstream
// consumers need both the continuous and the discretized form.
//
// The order is not configurable: z-scoring must see quantile-normalized
// columns, and quantile normalization must see log-scaled values, or the
// downstream semantics change silently.
//
// Any stage failure halts the chain and is wrapped with the stage name; no
// partial Result is returned.
//
// Complexity: dominated by quantile normalization, O(c * r log r).
func Chain(m *matrix.Dense, opts ...Option) (Result, error) {
	var res Result

	filtered, fstats, err := FilterImpute(m, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("normalize: %s: %w", StageFilterImpute, err)
	}
	res.Filtered = filtered
	res.Stats.Filter = fstats

	logged, err := Log2(filtered, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("normalize: %s: %w", StageLog2, err)
	}

	normalized, err := QuantileNormalizeColumns(logged)
	if err != nil {
		return Result{}, fmt.Errorf("normalize: %s: %w", StageQuantile, err)
	}
	res.Normalized = normalized

	standardized, degenerate, err := ZScoreRows(normalized)
	if err != nil {
		return Result{}, fmt.Errorf("normalize: %s: %w", StageZScore, err)
	}
	res.Standardized = standardized
	res.Stats.DegenerateRows = degenerate

	return res, nil
}
