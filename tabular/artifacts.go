// SPDX-License-Identifier: MIT

package tabular

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/genelab/listbuild"
	"github.com/katalvlaran/genelab/setoverlap"
)

// WriteGeneList emits the gene table: symbol, gene_id (empty when
// unresolved).
func WriteGeneList(w io.Writer, rows []listbuild.GeneRow) error {
	cw := newTSVWriter(w)
	if err := cw.Write([]string{"symbol", "gene_id"}); err != nil {
		return fmt.Errorf("tabular: WriteGeneList: %w", err)
	}
	for _, r := range rows {
		id := ""
		if r.HasID {
			id = strconv.FormatInt(r.GeneID, 10)
		}
		if err := cw.Write([]string{r.Symbol, id}); err != nil {
			return fmt.Errorf("tabular: WriteGeneList: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteAttributeList emits the attribute table: name, associations.
func WriteAttributeList(w io.Writer, rows []listbuild.AttributeRow) error {
	cw := newTSVWriter(w)
	if err := cw.Write([]string{"name", "associations"}); err != nil {
		return fmt.Errorf("tabular: WriteAttributeList: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Name, strconv.Itoa(r.Associations)}); err != nil {
			return fmt.Errorf("tabular: WriteAttributeList: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteSetLibrary emits one GMT line per entry: name, description, then
// one member per field. Empty sets still emit a line (with an empty
// member field) so the library stays parseable and 1:1 with its list.
func WriteSetLibrary(w io.Writer, sets []listbuild.SetEntry, description string) error {
	bw := bufio.NewWriter(w)
	for _, s := range sets {
		fields := append([]string{s.Name, description}, s.Members...)
		if len(s.Members) == 0 {
			fields = append(fields, "") // keep >= 3 GMT fields
		}
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return fmt.Errorf("tabular: WriteSetLibrary: %w", err)
		}
	}

	return bw.Flush()
}

// WriteEdgeList emits the weighted edge table: gene, attribute, weight.
func WriteEdgeList(w io.Writer, edges []listbuild.Edge) error {
	cw := newTSVWriter(w)
	if err := cw.Write([]string{"gene", "attribute", "weight"}); err != nil {
		return fmt.Errorf("tabular: WriteEdgeList: %w", err)
	}
	for _, e := range edges {
		if err := cw.Write([]string{e.Gene, e.Attribute, formatCell(e.Weight)}); err != nil {
			return fmt.Errorf("tabular: WriteEdgeList: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WritePairs emits the scored overlap table: set names, intersection
// size and members (comma-joined), per-side exclusives, Jaccard, p, q.
func WritePairs(w io.Writer, pairs []setoverlap.Pair) error {
	cw := newTSVWriter(w)
	header := []string{"a", "b", "intersection", "genes", "only_a", "only_b", "jaccard", "p", "q"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("tabular: WritePairs: %w", err)
	}
	for _, p := range pairs {
		rec := []string{
			p.A, p.B,
			strconv.Itoa(len(p.Intersection)),
			strings.Join(p.Intersection, ","),
			strconv.Itoa(p.OnlyA),
			strconv.Itoa(p.OnlyB),
			formatCell(p.Jaccard),
			formatCell(p.P),
			formatCell(p.Q),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("tabular: WritePairs: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}
