// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/genelab/genesets"
	"github.com/katalvlaran/genelab/setoverlap"
	"github.com/katalvlaran/genelab/tabular"
)

var overlapCmd = &cobra.Command{
	Use:   "overlap",
	Short: "Score every pair of two gene-set libraries (Jaccard, Fisher exact, q-values)",
	RunE:  runOverlap,
}

func init() {
	f := overlapCmd.Flags()
	f.String("library-a", "", "first gene-set library (GMT)")
	f.String("library-b", "", "second gene-set library (GMT)")
	f.String("out", "", "output directory")
	f.Int("universe", 0, "background gene universe size (0 = derive from the libraries)")
	f.Int("top-k", 0, "ranked association table size")
	f.Int("workers", 0, "parallel workers")
}

func runOverlap(cmd *cobra.Command, args []string) error {
	o := &cfg.Overlap
	overrideString(cmd, "library-a", &o.LibraryA)
	overrideString(cmd, "library-b", &o.LibraryB)
	overrideString(cmd, "out", &o.Out)
	overrideInt(cmd, "universe", &o.Universe)
	overrideInt(cmd, "top-k", &o.TopK)
	overrideInt(cmd, "workers", &o.Workers)
	if o.LibraryA == "" || o.LibraryB == "" {
		return fmt.Errorf("overlap: two libraries required (--library-a, --library-b)")
	}

	a, err := readLibraryFile(o.LibraryA)
	if err != nil {
		return err
	}
	b, err := readLibraryFile(o.LibraryB)
	if err != nil {
		return err
	}

	opts := []setoverlap.Option{}
	if o.Universe > 0 {
		opts = append(opts, setoverlap.WithUniverseSize(o.Universe))
	}
	if o.TopK > 0 {
		opts = append(opts, setoverlap.WithTopK(o.TopK))
	}
	if o.Workers > 0 {
		opts = append(opts, setoverlap.WithWorkers(o.Workers))
	}

	res, err := setoverlap.Overlap(a, b, opts...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(o.Out, 0o755); err != nil {
		return fmt.Errorf("overlap: %w", err)
	}
	outputs := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"pairs.tsv", func(w io.Writer) error { return tabular.WritePairs(w, res.Pairs) }},
		{"top_associations.tsv", func(w io.Writer) error { return tabular.WritePairs(w, res.Top) }},
		{"jaccard_matrix.tsv", func(w io.Writer) error { return tabular.WriteMatrix(w, res.JaccardMatrix) }},
		{"pvalue_matrix.tsv", func(w io.Writer) error { return tabular.WriteMatrix(w, res.PValueMatrix) }},
	}
	for _, out := range outputs {
		if err := writeFile(filepath.Join(o.Out, out.name), out.write); err != nil {
			return err
		}
	}

	logger.Info().
		Int("sets_a", a.Len()).
		Int("sets_b", b.Len()).
		Int("pairs", len(res.Pairs)).
		Int("universe", res.UniverseSize).
		Str("out", o.Out).
		Msg("overlap complete")

	return nil
}

func readLibraryFile(path string) (*genesets.Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("overlap: %w", err)
	}
	defer f.Close()

	lib, err := genesets.ParseGMT(f)
	if err != nil {
		return nil, fmt.Errorf("overlap: %s: %w", path, err)
	}

	return lib, nil
}
