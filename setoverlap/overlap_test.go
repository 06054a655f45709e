package setoverlap_test

import (
	"testing"

	"github.com/katalvlaran/genelab/genesets"
	"github.com/katalvlaran/genelab/setoverlap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func libOf(t *testing.T, sets ...genesets.GeneSet) *genesets.Library {
	t.Helper()
	lib := genesets.NewLibrary()
	for _, s := range sets {
		require.NoError(t, lib.Add(s))
	}

	return lib
}

// TestOverlap_ScenarioJaccardHalf is end-to-end scenario 1: {A,B,C} vs
// {B,C,D} over a universe of 4 must score Jaccard = 2/4 = 0.5.
func TestOverlap_ScenarioJaccardHalf(t *testing.T) {
	a := libOf(t, genesets.NewGeneSet("left", "", []string{"A", "B", "C"}))
	b := libOf(t, genesets.NewGeneSet("right", "", []string{"B", "C", "D"}))

	res, err := setoverlap.Overlap(a, b)
	require.NoError(t, err)

	assert.Equal(t, 4, res.UniverseSize)
	require.Len(t, res.Pairs, 1)
	pr := res.Pairs[0]
	assert.Equal(t, 0.5, pr.Jaccard)
	assert.Equal(t, []string{"B", "C"}, pr.Intersection)
	assert.Equal(t, 1, pr.OnlyA)
	assert.Equal(t, 1, pr.OnlyB)

	v, _ := res.JaccardMatrix.At(0, 0)
	assert.Equal(t, 0.5, v)
}

// TestOverlap_JaccardBounds verifies 0 ≤ J ≤ 1 everywhere and J(a,a) = 1.
func TestOverlap_JaccardBounds(t *testing.T) {
	a := libOf(t,
		genesets.NewGeneSet("s1", "", []string{"A", "B"}),
		genesets.NewGeneSet("s2", "", []string{"C"}),
	)
	b := libOf(t,
		genesets.NewGeneSet("s1", "", []string{"A", "B"}),
		genesets.NewGeneSet("t2", "", []string{"D", "E"}),
	)

	res, err := setoverlap.Overlap(a, b)
	require.NoError(t, err)

	for _, pr := range res.Pairs {
		assert.GreaterOrEqual(t, pr.Jaccard, 0.0)
		assert.LessOrEqual(t, pr.Jaccard, 1.0)
		if pr.A == "s1" && pr.B == "s1" {
			assert.Equal(t, 1.0, pr.Jaccard, "identical sets must score 1")
		}
	}
}

// TestFisherExact_Symmetry verifies swapping the libraries (transposing
// the 2×2 table) yields the same two-tailed p-value.
func TestFisherExact_Symmetry(t *testing.T) {
	cases := [][4]int{
		{2, 1, 1, 0},
		{5, 3, 2, 10},
		{0, 4, 6, 12},
		{8, 0, 0, 8},
	}
	for _, c := range cases {
		p1 := setoverlap.FisherExact(c[0], c[1], c[2], c[3])
		p2 := setoverlap.FisherExact(c[0], c[2], c[1], c[3])
		assert.InDelta(t, p1, p2, 1e-12, "table %v transpose symmetry", c)
		assert.GreaterOrEqual(t, p1, 0.0)
		assert.LessOrEqual(t, p1, 1.0)
	}
}

// TestFisherExact_KnownValue checks a hand-computable table. For
// [[1,9],[11,3]] the classic two-tailed result is ≈ 0.002759, the
// textbook tea-tasting-scale example used to validate implementations.
func TestFisherExact_KnownValue(t *testing.T) {
	p := setoverlap.FisherExact(1, 9, 11, 3)
	assert.InDelta(t, 0.00275946, p, 1e-7)

	// Independence: uniform margins give p == 1.
	assert.InDelta(t, 1.0, setoverlap.FisherExact(5, 5, 5, 5), 1e-12)
}

// TestFisherExact_DegenerateMargins verifies empty rows/columns yield 1.
func TestFisherExact_DegenerateMargins(t *testing.T) {
	assert.Equal(t, 1.0, setoverlap.FisherExact(0, 0, 0, 0))
	assert.InDelta(t, 1.0, setoverlap.FisherExact(0, 0, 3, 7), 1e-12)
	assert.InDelta(t, 1.0, setoverlap.FisherExact(0, 5, 0, 7), 1e-12)
}

// TestOverlap_QValueAdjustment verifies q = p·N/rank on a multi-pair run
// and the q-ascending ordering of Pairs.
func TestOverlap_QValueAdjustment(t *testing.T) {
	a := libOf(t,
		genesets.NewGeneSet("a1", "", []string{"A", "B", "C"}),
		genesets.NewGeneSet("a2", "", []string{"X"}),
	)
	b := libOf(t,
		genesets.NewGeneSet("b1", "", []string{"A", "B", "C"}),
		genesets.NewGeneSet("b2", "", []string{"Y", "Z"}),
	)

	res, err := setoverlap.Overlap(a, b)
	require.NoError(t, err)
	require.Len(t, res.Pairs, 4)

	for i := 1; i < len(res.Pairs); i++ {
		assert.LessOrEqual(t, res.Pairs[i-1].Q, res.Pairs[i].Q, "Pairs sorted by q ascending")
	}
	// The strongest overlap (a1,b1) must carry the smallest q and satisfy
	// the rank formula: q = p·N/1 for the best-ranked pair.
	best := res.Pairs[0]
	assert.Equal(t, "a1", best.A)
	assert.Equal(t, "b1", best.B)
	assert.InDelta(t, best.P*4.0, best.Q, 1e-12)
}

// TestOverlap_TopKRanking verifies Jaccard-descending ranking with the q
// tie-break and the K bound.
func TestOverlap_TopKRanking(t *testing.T) {
	a := libOf(t,
		genesets.NewGeneSet("exact", "", []string{"A", "B"}),
		genesets.NewGeneSet("half", "", []string{"A", "C"}),
		genesets.NewGeneSet("none", "", []string{"X", "Y"}),
	)
	b := libOf(t, genesets.NewGeneSet("ref", "", []string{"A", "B"}))

	res, err := setoverlap.Overlap(a, b, setoverlap.WithTopK(2))
	require.NoError(t, err)

	require.Len(t, res.Top, 2)
	assert.Equal(t, "exact", res.Top[0].A, "perfect match ranks first")
	assert.Equal(t, 1.0, res.Top[0].Jaccard)
	assert.Equal(t, "half", res.Top[1].A)
}

// TestOverlap_EmptyLibraryPolicy verifies empty inputs yield empty valid
// results, never an error.
func TestOverlap_EmptyLibraryPolicy(t *testing.T) {
	empty := genesets.NewLibrary()
	full := libOf(t, genesets.NewGeneSet("s", "", []string{"A"}))

	res, err := setoverlap.Overlap(empty, full)
	require.NoError(t, err)
	assert.Empty(t, res.Pairs)
	assert.Empty(t, res.Top)
	assert.Equal(t, 0, res.JaccardMatrix.Rows())

	_, err = setoverlap.Overlap(nil, full)
	assert.Error(t, err, "nil is a programming error, unlike empty")
}

// TestOverlap_ZeroUnionPolicy verifies the empty-set pair resolves to
// Jaccard 0 by policy.
func TestOverlap_ZeroUnionPolicy(t *testing.T) {
	a := libOf(t, genesets.NewGeneSet("e1", "", nil))
	b := libOf(t, genesets.NewGeneSet("e2", "", nil))

	res, err := setoverlap.Overlap(a, b, setoverlap.WithUniverseSize(10))
	require.NoError(t, err)
	require.Len(t, res.Pairs, 1)
	assert.Equal(t, 0.0, res.Pairs[0].Jaccard, "zero-union policy")
	assert.Equal(t, 10, res.UniverseSize)
}

// TestOverlap_ParallelDeterminism verifies worker count does not change
// results.
func TestOverlap_ParallelDeterminism(t *testing.T) {
	a := genesets.NewLibrary()
	b := genesets.NewLibrary()
	genes := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	for i := 0; i < 6; i++ {
		require.NoError(t, a.Add(genesets.NewGeneSet(
			"a"+string(rune('0'+i)), "", genes[i%4:i%4+3])))
		require.NoError(t, b.Add(genesets.NewGeneSet(
			"b"+string(rune('0'+i)), "", genes[i%5:i%5+2])))
	}

	one, err := setoverlap.Overlap(a, b, setoverlap.WithWorkers(1))
	require.NoError(t, err)
	many, err := setoverlap.Overlap(a, b, setoverlap.WithWorkers(8))
	require.NoError(t, err)

	require.Equal(t, len(one.Pairs), len(many.Pairs))
	for i := range one.Pairs {
		assert.Equal(t, one.Pairs[i], many.Pairs[i], "pair %d differs across worker counts", i)
	}
}
