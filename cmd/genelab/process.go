// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/genelab/matrix"
	"github.com/katalvlaran/genelab/normalize"
	"github.com/katalvlaran/genelab/pipeline"
	"github.com/katalvlaran/genelab/similarity"
	"github.com/katalvlaran/genelab/symbols"
	"github.com/katalvlaran/genelab/tabular"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the matrix track: normalize an expression matrix and derive its artifacts",
	RunE:  runProcess,
}

func init() {
	f := processCmd.Flags()
	f.String("matrix", "", "input expression matrix (required unless configured)")
	f.String("format", "", "input matrix format: tsv | gct")
	f.String("lookup", "", "symbol lookup TSV (default: identity mapping)")
	f.String("out", "", "output directory")
	f.String("metric", "", "similarity metric: cosine | jaccard")
	f.Int("workers", 0, "parallel workers for similarity")
}

func runProcess(cmd *cobra.Command, args []string) error {
	p := &cfg.Process
	overrideString(cmd, "matrix", &p.Matrix)
	overrideString(cmd, "format", &p.Format)
	overrideString(cmd, "lookup", &p.Lookup)
	overrideString(cmd, "out", &p.OutDir)
	overrideString(cmd, "metric", &p.Metric)
	overrideInt(cmd, "workers", &p.Workers)
	if p.Matrix == "" {
		return fmt.Errorf("process: no input matrix (flag --matrix or process.matrix)")
	}

	format, err := tabular.ParseFormat(p.Format)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}
	m, err := readMatrixFile(p.Matrix, format)
	if err != nil {
		return err
	}
	lk, err := readLookupFile(p.Lookup, m)
	if err != nil {
		return err
	}

	opts, err := processOptions(p)
	if err != nil {
		return err
	}
	art, err := pipeline.Run(m, lk, opts...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.OutDir, 0o755); err != nil {
		return fmt.Errorf("process: %w", err)
	}
	outputs := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"unfiltered_matrix.tsv", func(w io.Writer) error { return tabular.WriteMatrix(w, art.Unfiltered) }},
		{"filtered_matrix.tsv", func(w io.Writer) error { return tabular.WriteMatrix(w, art.Filtered) }},
		{"standardized_matrix.tsv", func(w io.Writer) error { return tabular.WriteMatrix(w, art.Standardized) }},
		{"ternary_matrix.tsv", func(w io.Writer) error { return tabular.WriteMatrix(w, art.Ternary) }},
		{"gene_similarity.tsv", func(w io.Writer) error { return tabular.WriteMatrix(w, art.GeneSimilarity) }},
		{"attribute_similarity.tsv", func(w io.Writer) error { return tabular.WriteMatrix(w, art.AttributeSimilarity) }},
		{"gene_list.tsv", func(w io.Writer) error { return tabular.WriteGeneList(w, art.Genes) }},
		{"attribute_list.tsv", func(w io.Writer) error { return tabular.WriteAttributeList(w, art.Attributes) }},
		{"gene_set_library_up.gmt", func(w io.Writer) error { return tabular.WriteSetLibrary(w, art.UpSets, "up") }},
		{"gene_set_library_dn.gmt", func(w io.Writer) error { return tabular.WriteSetLibrary(w, art.DownSets, "dn") }},
		{"edge_list.tsv", func(w io.Writer) error { return tabular.WriteEdgeList(w, art.Edges) }},
	}
	for _, out := range outputs {
		if err := writeFile(filepath.Join(p.OutDir, out.name), out.write); err != nil {
			return err
		}
	}

	logger.Info().
		Int("genes", len(art.Genes)).
		Int("attributes", len(art.Attributes)).
		Int("edges", len(art.Edges)).
		Int("dropped_symbols", art.DroppedSymbols).
		Str("out", p.OutDir).
		Msg("process complete")

	return nil
}

// processOptions translates the flat CLI config into pipeline options.
// The option constructors treat bad values as programmer errors and
// panic, so user-supplied config is range-checked here first.
func processOptions(p *ProcessConfig) ([]pipeline.Option, error) {
	if p.MissingCutoff <= 0 || p.MissingCutoff > 1 {
		return nil, fmt.Errorf("process: missing_cutoff %v outside (0,1]", p.MissingCutoff)
	}
	if p.LogEpsilon <= 0 {
		return nil, fmt.Errorf("process: log_epsilon %v must be > 0", p.LogEpsilon)
	}
	if p.TernaryCut <= 0 {
		return nil, fmt.Errorf("process: ternary_cut %v must be > 0", p.TernaryCut)
	}

	nopts := []normalize.Option{
		normalize.WithMissingCutoff(p.MissingCutoff),
		normalize.WithLogEpsilon(p.LogEpsilon),
		normalize.WithTernaryCut(p.TernaryCut),
	}
	switch p.Impute {
	case "", "row-mean":
		nopts = append(nopts, normalize.WithImputeStrategy(normalize.RowMean))
	case "column-mean":
		nopts = append(nopts, normalize.WithImputeStrategy(normalize.ColumnMean))
	default:
		return nil, fmt.Errorf("process: unknown impute strategy %q", p.Impute)
	}

	var metric similarity.Metric
	switch p.Metric {
	case "", "cosine":
		metric = similarity.Cosine
	case "jaccard":
		metric = similarity.Jaccard
	default:
		return nil, fmt.Errorf("process: unknown metric %q", p.Metric)
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithNormalizeOptions(nopts...),
		pipeline.WithSimilarityMetric(metric),
	}
	if p.Workers > 0 {
		opts = append(opts, pipeline.WithSimilarityOptions(similarity.WithWorkers(p.Workers)))
	}

	return opts, nil
}

func readMatrixFile(path string, format tabular.Format) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}
	defer f.Close()

	m, err := tabular.ReadMatrixFormat(f, format)
	if err != nil {
		return nil, fmt.Errorf("process: %s: %w", path, err)
	}

	return m, nil
}

// readLookupFile loads the symbol lookup; an empty path yields an
// identity lookup over the matrix's own row labels, so every symbol is
// treated as already canonical.
func readLookupFile(path string, m *matrix.Dense) (*symbols.Lookup, error) {
	if path == "" {
		identity := make(map[string]string, m.Rows())
		for _, sym := range m.RowLabels() {
			identity[sym] = sym
		}

		return symbols.NewLookup(identity, nil), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}
	defer f.Close()

	lk, err := tabular.ReadLookup(f)
	if err != nil {
		return nil, fmt.Errorf("process: %s: %w", path, err)
	}

	return lk, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}

func overrideString(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetString(name)
	}
}

func overrideInt(cmd *cobra.Command, name string, dst *int) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetInt(name)
	}
}
