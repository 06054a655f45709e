// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/genelab/listbuild"
	"github.com/katalvlaran/genelab/matrix"
	"github.com/katalvlaran/genelab/normalize"
	"github.com/katalvlaran/genelab/similarity"
	"github.com/katalvlaran/genelab/symbols"
)

// Stage names used in wrapped errors and structured logs.
const (
	StageRemap      = "remap"
	StageNormalize  = "normalize"
	StageTernarize  = "ternarize"
	StageSimilarity = "similarity"
	StageLists      = "lists"
	StageSets       = "sets"
	StageEdges      = "edges"
)

// Artifacts is the complete output surface of one processing run.
type Artifacts struct {
	// Matrix checkpoints, in stage order.
	Unfiltered   *matrix.Dense // after symbol remapping, before filtering
	Filtered     *matrix.Dense // after missing-data filter + imputation
	Standardized *matrix.Dense // after log2 / quantile / row z-score
	Ternary      *matrix.Dense // thresholded {-1,0,1} view of Standardized

	// Row/column tables.
	Genes      []listbuild.GeneRow
	Attributes []listbuild.AttributeRow

	// Square similarity matrices: gene×gene over rows, attribute×attribute
	// over columns.
	GeneSimilarity      *matrix.Dense
	AttributeSimilarity *matrix.Dense

	// Per-attribute gene-set libraries from the ternary matrix: genes with
	// value +1 (UpSets) or -1 (DownSets). Entries stay 1:1 with Attributes.
	UpSets   []listbuild.SetEntry
	DownSets []listbuild.SetEntry

	// Edges holds one weighted gene–attribute edge per nonzero ternary cell.
	Edges []listbuild.Edge

	// Remap bookkeeping.
	DroppedSymbols  int
	RemapIterations int
}

// Option configures Run.
type Option func(*options)

type options struct {
	logger         zerolog.Logger
	metric         similarity.Metric
	normalizeOpts  []normalize.Option
	symbolOpts     []symbols.Option
	similarityOpts []similarity.Option
}

// WithLogger routes stage progress through the given zerolog logger.
func WithLogger(lg zerolog.Logger) Option {
	return func(o *options) { o.logger = lg }
}

// WithSimilarityMetric selects the metric for both similarity matrices.
// Cosine (the default) runs over the standardized matrix; Jaccard runs
// over the ternary matrix, where nonzero support is meaningful.
func WithSimilarityMetric(m similarity.Metric) Option {
	return func(o *options) { o.metric = m }
}

// WithNormalizeOptions forwards options to the normalization chain and
// the ternarization stage.
func WithNormalizeOptions(opts ...normalize.Option) Option {
	return func(o *options) { o.normalizeOpts = append(o.normalizeOpts, opts...) }
}

// WithSymbolOptions forwards options to the fixed-point remap stage.
func WithSymbolOptions(opts ...symbols.Option) Option {
	return func(o *options) { o.symbolOpts = append(o.symbolOpts, opts...) }
}

// WithSimilarityOptions forwards options (workers, sparse path) to both
// similarity computations.
func WithSimilarityOptions(opts ...similarity.Option) Option {
	return func(o *options) { o.similarityOpts = append(o.similarityOpts, opts...) }
}

// Run executes the full matrix track over one expression matrix and one
// symbol lookup.
//
// Implementation (fixed stage order):
//   - Stage 1 (remap): fixed-point canonical-symbol mapping; duplicate
//     rows mean-merged, unmapped rows dropped and counted.
//   - Stage 2 (normalize): filter/impute → log2 → quantile → z-score.
//   - Stage 3 (ternarize): threshold z-scores into {-1,0,1}.
//   - Stage 4 (similarity): gene×gene and attribute×attribute matrices.
//   - Stages 5–7 (lists/sets/edges): tabular and set-shaped artifacts
//     from the ternary matrix.
//
// Behavior highlights:
//   - Any stage failure halts the run, wrapped "pipeline: <stage>: ...";
//     no partial Artifacts escape.
//   - An empty matrix flows through as empty, valid artifacts.
//   - Output is deterministic: label order in, label order out.
//
// Errors: stage errors only; see the per-package sentinels.
// Complexity: dominated by similarity, O(r²·c + c²·r).
func Run(m *matrix.Dense, lk *symbols.Lookup, opts ...Option) (*Artifacts, error) {
	o := options{logger: zerolog.Nop(), metric: similarity.Cosine}
	for _, set := range opts {
		set(&o)
	}
	lg := o.logger

	art := &Artifacts{}

	// Stage 1 (remap).
	start := time.Now()
	remapped, err := symbols.MapToFixedPoint(m, lk, o.symbolOpts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", StageRemap, err)
	}
	art.Unfiltered = remapped.Matrix
	art.DroppedSymbols = remapped.Dropped
	art.RemapIterations = remapped.Iterations
	lg.Info().
		Str("stage", StageRemap).
		Int("rows_in", m.Rows()).
		Int("rows_out", remapped.Matrix.Rows()).
		Int("dropped", remapped.Dropped).
		Int("iterations", remapped.Iterations).
		Dur("took", time.Since(start)).
		Msg("symbols remapped")

	// Stage 2 (normalize).
	start = time.Now()
	chain, err := normalize.Chain(art.Unfiltered, o.normalizeOpts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", StageNormalize, err)
	}
	art.Filtered = chain.Filtered
	art.Standardized = chain.Standardized
	lg.Info().
		Str("stage", StageNormalize).
		Int("rows_dropped", chain.Stats.Filter.RowsDropped).
		Int("cols_dropped", chain.Stats.Filter.ColsDropped).
		Int("cells_imputed", chain.Stats.Filter.CellsImputed).
		Int("degenerate_rows", chain.Stats.DegenerateRows).
		Dur("took", time.Since(start)).
		Msg("matrix normalized")

	// Stage 3 (ternarize).
	start = time.Now()
	ternary, err := normalize.Ternarize(art.Standardized, o.normalizeOpts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", StageTernarize, err)
	}
	art.Ternary = ternary
	lg.Info().
		Str("stage", StageTernarize).
		Dur("took", time.Since(start)).
		Msg("matrix ternarized")

	// Stage 4 (similarity). Cosine reads the continuous matrix; Jaccard
	// reads nonzero support, which only the ternary matrix carries.
	simInput := art.Standardized
	if o.metric == similarity.Jaccard {
		simInput = art.Ternary
	}
	start = time.Now()
	geneSim, err := similarity.Similarity(simInput, matrix.Rows, o.metric, o.similarityOpts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", StageSimilarity, err)
	}
	attrSim, err := similarity.Similarity(simInput, matrix.Cols, o.metric, o.similarityOpts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", StageSimilarity, err)
	}
	art.GeneSimilarity = geneSim
	art.AttributeSimilarity = attrSim
	lg.Info().
		Str("stage", StageSimilarity).
		Str("metric", o.metric.String()).
		Int("genes", geneSim.Rows()).
		Int("attributes", attrSim.Rows()).
		Dur("took", time.Since(start)).
		Msg("similarity matrices computed")

	// Stage 5 (lists).
	start = time.Now()
	genes, err := listbuild.GeneList(art.Ternary, lk)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", StageLists, err)
	}
	attrs, err := listbuild.AttributeList(art.Ternary)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", StageLists, err)
	}
	art.Genes = genes
	art.Attributes = attrs

	// Stage 6 (sets): per-attribute gene sets, 1:1 with the attribute list.
	up, err := listbuild.SetLibrary(art.Ternary, matrix.Cols, listbuild.Up)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", StageSets, err)
	}
	down, err := listbuild.SetLibrary(art.Ternary, matrix.Cols, listbuild.Down)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", StageSets, err)
	}
	art.UpSets = up
	art.DownSets = down

	// Stage 7 (edges).
	edges, err := listbuild.EdgeList(art.Ternary)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", StageEdges, err)
	}
	art.Edges = edges
	lg.Info().
		Str("stage", StageEdges).
		Int("genes", len(genes)).
		Int("attributes", len(attrs)).
		Int("edges", len(edges)).
		Dur("took", time.Since(start)).
		Msg("artifacts built")

	return art, nil
}
