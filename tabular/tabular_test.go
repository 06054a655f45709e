package tabular_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/genelab/genesets"
	"github.com/katalvlaran/genelab/listbuild"
	"github.com/katalvlaran/genelab/matrix"
	"github.com/katalvlaran/genelab/setoverlap"
	"github.com/katalvlaran/genelab/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadMatrix_MissingEncodings verifies all three missing-cell
// encodings decode to NaN.
func TestReadMatrix_MissingEncodings(t *testing.T) {
	src := "\ts1\ts2\ts3\n" +
		"TP53\t1.5\tNA\t2\n" +
		"BRCA1\tNaN\t\t-0.25\n"

	m, err := tabular.ReadMatrix(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"TP53", "BRCA1"}, m.RowLabels())
	assert.Equal(t, []string{"s1", "s2", "s3"}, m.ColLabels())

	v, _ := m.At(0, 0)
	assert.Equal(t, 1.5, v)
	for _, c := range []struct{ i, j int }{{0, 1}, {1, 0}, {1, 1}} {
		v, _ = m.At(c.i, c.j)
		assert.True(t, math.IsNaN(v), "cell (%d,%d) must be missing", c.i, c.j)
	}
}

// TestReadMatrix_EmptyInput verifies empty input is a valid empty matrix.
func TestReadMatrix_EmptyInput(t *testing.T) {
	m, err := tabular.ReadMatrix(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Rows())
	assert.Equal(t, 0, m.Cols())
}

// TestReadMatrix_RaggedRowFails verifies the field-count check names the
// line.
func TestReadMatrix_RaggedRowFails(t *testing.T) {
	src := "\ts1\ts2\n" +
		"TP53\t1\t2\n" +
		"BRCA1\t3\n"

	_, err := tabular.ReadMatrix(strings.NewReader(src))
	require.ErrorIs(t, err, tabular.ErrBadRow)
	assert.Contains(t, err.Error(), "line 3")
}

// TestReadMatrix_BadCellFails verifies unparseable numerics are rejected.
func TestReadMatrix_BadCellFails(t *testing.T) {
	src := "\ts1\n" + "TP53\tbogus\n"

	_, err := tabular.ReadMatrix(strings.NewReader(src))
	require.ErrorIs(t, err, tabular.ErrBadCell)
	assert.Contains(t, err.Error(), "bogus")
}

// TestMatrix_RoundTrip verifies Write → Read is the identity for finite
// matrices and that NaN survives as a missing cell.
func TestMatrix_RoundTrip(t *testing.T) {
	m, err := matrix.New(
		[]string{"g1", "g2"},
		[]string{"a", "b"},
		[]float64{0.125, -3, 1e-9, 42})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tabular.WriteMatrix(&buf, m))
	back, err := tabular.ReadMatrix(&buf)
	require.NoError(t, err)
	assert.Equal(t, m, back)

	// NaN cannot survive assert.Equal; check it explicitly.
	withNaN, err := matrix.New([]string{"g"}, []string{"a"}, []float64{math.NaN()})
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, tabular.WriteMatrix(&buf, withNaN))
	assert.Contains(t, buf.String(), "NA")
	back, err = tabular.ReadMatrix(&buf)
	require.NoError(t, err)
	v, _ := back.At(0, 0)
	assert.True(t, math.IsNaN(v))
}

// TestReadLookup verifies two- and three-column rows, the optional ID,
// and validation failures.
func TestReadLookup(t *testing.T) {
	src := "p53\tTP53\t7157\n" +
		"brca1\tBRCA1\t\n" +
		"egfr\tEGFR\n"

	lk, err := tabular.ReadLookup(strings.NewReader(src))
	require.NoError(t, err)

	sym, ok := lk.Canonical("p53")
	require.True(t, ok)
	assert.Equal(t, "TP53", sym)

	id, ok := lk.GeneID("TP53")
	require.True(t, ok)
	assert.EqualValues(t, 7157, id)
	_, ok = lk.GeneID("BRCA1")
	assert.False(t, ok, "empty ID cell means no ID")

	_, err = tabular.ReadLookup(strings.NewReader("p53\tTP53\tbogus\n"))
	assert.ErrorIs(t, err, tabular.ErrBadCell)

	_, err = tabular.ReadLookup(strings.NewReader("\tTP53\n"))
	assert.ErrorIs(t, err, tabular.ErrBadRow)
}

// TestWriteSetLibrary_ParsesBackAsGMT verifies the writer emits lines the
// GMT parser accepts, including empty sets.
func TestWriteSetLibrary_ParsesBackAsGMT(t *testing.T) {
	sets := []listbuild.SetEntry{
		{Name: "s1_up", Members: []string{"TP53", "BRCA1"}},
		{Name: "s2_up", Members: nil},
	}

	var buf bytes.Buffer
	require.NoError(t, tabular.WriteSetLibrary(&buf, sets, "ternary up"))

	lib, err := genesets.ParseGMT(&buf)
	require.NoError(t, err)
	require.Equal(t, 2, lib.Len())

	s, ok := lib.Get("s1_up")
	require.True(t, ok)
	assert.Equal(t, []string{"BRCA1", "TP53"}, s.Genes)
	assert.Equal(t, "ternary up", s.Description)

	empty, ok := lib.Get("s2_up")
	require.True(t, ok)
	assert.Equal(t, 0, empty.Len(), "empty set survives the round trip")
}

// TestWriteGeneList verifies the header and the unresolved-ID encoding.
func TestWriteGeneList(t *testing.T) {
	rows := []listbuild.GeneRow{
		{Symbol: "TP53", GeneID: 7157, HasID: true},
		{Symbol: "NOVEL1"},
	}

	var buf bytes.Buffer
	require.NoError(t, tabular.WriteGeneList(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "symbol\tgene_id", lines[0])
	assert.Equal(t, "TP53\t7157", lines[1])
	assert.Equal(t, "NOVEL1\t", lines[2])
}

// TestWriteEdgeList verifies weight formatting round-trips exactly.
func TestWriteEdgeList(t *testing.T) {
	edges := []listbuild.Edge{
		{Gene: "TP53", Attribute: "s1", Weight: 1},
		{Gene: "TP53", Attribute: "s3", Weight: -1},
	}

	var buf bytes.Buffer
	require.NoError(t, tabular.WriteEdgeList(&buf, edges))
	assert.Contains(t, buf.String(), "TP53\ts1\t1\n")
	assert.Contains(t, buf.String(), "TP53\ts3\t-1\n")
}

// TestWritePairs verifies the scored-pair table layout.
func TestWritePairs(t *testing.T) {
	pairs := []setoverlap.Pair{{
		A: "left", B: "right",
		Intersection: []string{"B", "C"},
		OnlyA:        1, OnlyB: 1,
		Jaccard: 0.5, P: 0.2, Q: 0.4,
	}}

	var buf bytes.Buffer
	require.NoError(t, tabular.WritePairs(&buf, pairs))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a\tb\tintersection\tgenes\tonly_a\tonly_b\tjaccard\tp\tq", lines[0])
	assert.Equal(t, "left\tright\t2\tB,C\t1\t1\t0.5\t0.2\t0.4", lines[1])
}
