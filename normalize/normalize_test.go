package normalize_test

import (
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/genelab/matrix"
	"github.com/katalvlaran/genelab/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFilterImpute_DropsMostlyMissing verifies rows and columns above the
// cutoff disappear and survivors are imputed.
func TestFilterImpute_DropsMostlyMissing(t *testing.T) {
	nan := math.NaN()
	m, err := matrix.New(
		[]string{"dead", "alive"},
		[]string{"s1", "s2", "s3"},
		[]float64{
			nan, nan, nan, // 100% missing → dropped
			1, nan, 3, // 33% missing → kept, gap imputed
		})
	require.NoError(t, err)

	out, stats, err := normalize.FilterImpute(m)
	require.NoError(t, err)

	assert.Equal(t, []string{"alive"}, out.RowLabels())
	assert.Equal(t, 1, stats.RowsDropped)
	assert.Equal(t, 0, stats.ColsDropped)
	assert.Equal(t, 1, stats.CellsImputed)

	v, _ := out.At(0, 1)
	assert.Equal(t, 2.0, v, "row-mean imputation of (1+3)/2")
}

// TestFilterImpute_ColumnMeanStrategy verifies the alternate strategy.
func TestFilterImpute_ColumnMeanStrategy(t *testing.T) {
	nan := math.NaN()
	m, err := matrix.New(
		[]string{"g1", "g2", "g3"},
		[]string{"s1"},
		[]float64{2, nan, 4})
	require.NoError(t, err)

	out, _, err := normalize.FilterImpute(m, normalize.WithImputeStrategy(normalize.ColumnMean))
	require.NoError(t, err)

	v, _ := out.At(1, 0)
	assert.Equal(t, 3.0, v, "column-mean imputation of (2+4)/2")
}

// TestFilterImpute_EmptyInput verifies the empty-but-valid policy.
func TestFilterImpute_EmptyInput(t *testing.T) {
	m := matrix.NewZeros(nil, nil)

	out, stats, err := normalize.FilterImpute(m)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Rows())
	assert.Equal(t, FilterZero, stats)
}

// FilterZero is the zero-value stats expectation shared by empty-input tests.
var FilterZero = normalize.FilterStats{}

// TestLog2_GuardsZeroAndNegative verifies the transform never emits -Inf.
func TestLog2_GuardsZeroAndNegative(t *testing.T) {
	m, err := matrix.New([]string{"g"}, []string{"a", "b", "c"}, []float64{0, -5, 8})
	require.NoError(t, err)

	out, err := normalize.Log2(m)
	require.NoError(t, err)

	v, _ := out.At(0, 0)
	assert.False(t, math.IsInf(v, -1), "log2 at zero must stay finite")
	neg, _ := out.At(0, 1)
	assert.Equal(t, v, neg, "negative input clamps to the zero image")
	v, _ = out.At(0, 2)
	assert.InDelta(t, 3.0, v, 1e-6, "log2(8+eps) ≈ 3")
}

// TestQuantileNormalize_ColumnsShareDistribution verifies the defining
// post-condition: identical sorted value sequences in every column.
func TestQuantileNormalize_ColumnsShareDistribution(t *testing.T) {
	m, err := matrix.New(
		[]string{"g1", "g2", "g3"},
		[]string{"A", "B"},
		[]float64{
			5, 4,
			2, 1,
			3, 6,
		})
	require.NoError(t, err)

	out, err := normalize.QuantileNormalizeColumns(m)
	require.NoError(t, err)

	colA, _ := out.Col(0)
	colB, _ := out.Col(1)
	sort.Float64s(colA)
	sort.Float64s(colB)
	require.Len(t, colA, 3)
	for k := range colA {
		assert.InDelta(t, colA[k], colB[k], 1e-12, "sorted sequences must agree at rank %d", k)
	}
	assert.InDelta(t, 1.5, colA[0], 1e-12, "reference rank 0 = mean(2,1)")
	assert.InDelta(t, 3.5, colA[1], 1e-12, "reference rank 1 = mean(3,4)")
	assert.InDelta(t, 5.5, colA[2], 1e-12, "reference rank 2 = mean(5,6)")

	// Rank order inside each column is preserved.
	v, _ := out.At(0, 0)
	assert.InDelta(t, 5.5, v, 1e-12, "largest of column A keeps the top slot")
}

// TestQuantileNormalize_TiesStayEqual verifies equal inputs in one column
// receive equal outputs.
func TestQuantileNormalize_TiesStayEqual(t *testing.T) {
	m, err := matrix.New(
		[]string{"g1", "g2", "g3"},
		[]string{"A", "B"},
		[]float64{
			7, 1,
			7, 2,
			1, 3,
		})
	require.NoError(t, err)

	out, err := normalize.QuantileNormalizeColumns(m)
	require.NoError(t, err)

	a0, _ := out.At(0, 0)
	a1, _ := out.At(1, 0)
	assert.Equal(t, a0, a1, "tied inputs must map to one output value")
}

// TestZScoreRows_MeanZeroStdOne verifies the standardization contract on a
// nonzero-variance row.
func TestZScoreRows_MeanZeroStdOne(t *testing.T) {
	m, err := matrix.New([]string{"g"}, []string{"a", "b", "c", "d"},
		[]float64{2, 4, 6, 8})
	require.NoError(t, err)

	out, degenerate, err := normalize.ZScoreRows(m)
	require.NoError(t, err)
	assert.Equal(t, 0, degenerate)

	row, _ := out.Row(0)
	var mean float64
	for _, v := range row {
		mean += v
	}
	mean /= float64(len(row))
	assert.InDelta(t, 0, mean, 1e-12, "z-scored row mean")

	var ss float64
	for _, v := range row {
		ss += (v - mean) * (v - mean)
	}
	std := math.Sqrt(ss / float64(len(row)-1))
	assert.InDelta(t, 1, std, 1e-12, "z-scored row sample std")
}

// TestZScoreRows_ZeroVariancePolicy covers the degenerate-row policy from
// the end-to-end scenario: [5,5,5,5] must come back all-zero, not NaN.
func TestZScoreRows_ZeroVariancePolicy(t *testing.T) {
	m, err := matrix.New([]string{"flat"}, []string{"a", "b", "c", "d"},
		[]float64{5, 5, 5, 5})
	require.NoError(t, err)

	out, degenerate, err := normalize.ZScoreRows(m)
	require.NoError(t, err)
	assert.Equal(t, 1, degenerate)

	row, _ := out.Row(0)
	for j, v := range row {
		assert.Equal(t, 0.0, v, "cell %d of zero-variance row", j)
	}
}

// TestTernarize_Domain verifies the fixed-magnitude mode emits only
// {-1,0,1}.
func TestTernarize_Domain(t *testing.T) {
	m, err := matrix.New([]string{"g1", "g2"}, []string{"a", "b", "c"},
		[]float64{-2.5, 0.3, 1.7, 0.9, -1.0, 2.2})
	require.NoError(t, err)

	out, err := normalize.Ternarize(m)
	require.NoError(t, err)

	for i := 0; i < out.Rows(); i++ {
		for j := 0; j < out.Cols(); j++ {
			v, _ := out.At(i, j)
			assert.Contains(t, []float64{-1, 0, 1}, v, "cell (%d,%d)", i, j)
		}
	}
	v, _ := out.At(0, 0)
	assert.Equal(t, -1.0, v, "-2.5 ≤ -cut")
	v, _ = out.At(0, 1)
	assert.Equal(t, 0.0, v, "0.3 inside the neutral band")
	v, _ = out.At(1, 1)
	assert.Equal(t, -1.0, v, "-1.0 hits the cut inclusively")
}

// TestTernarize_QuantileMode verifies per-column quantile cuts mark the
// extremes only.
func TestTernarize_QuantileMode(t *testing.T) {
	m, err := matrix.New(
		[]string{"g1", "g2", "g3", "g4", "g5"},
		[]string{"A"},
		[]float64{10, 2, 3, 4, -10})
	require.NoError(t, err)

	out, err := normalize.Ternarize(m, normalize.WithTernaryQuantile(0.2))
	require.NoError(t, err)

	col, _ := out.Col(0)
	assert.Equal(t, []float64{1, 0, 0, 0, -1}, col)
}

// TestFilterImputeThenZScore_Scenario is end-to-end scenario 2: the row
// [1,2,3,4,100] with the outlier flagged missing (20% < 95% cutoff, row
// kept) is imputed with the row mean, and the resulting z-scores stay
// within the expected bound; a zero-variance companion row z-scores to
// zeros.
func TestFilterImputeThenZScore_Scenario(t *testing.T) {
	nan := math.NaN()
	m, err := matrix.New(
		[]string{"g", "flat"},
		[]string{"s1", "s2", "s3", "s4", "s5"},
		[]float64{
			1, 2, 3, 4, nan, // the 100 slot flagged missing
			5, 5, 5, 5, 5,
		})
	require.NoError(t, err)

	imputed, stats, err := normalize.FilterImpute(m)
	require.NoError(t, err)
	assert.Equal(t, 2, imputed.Rows(), "nothing filtered at 20% missing")
	assert.Equal(t, 1, stats.CellsImputed)

	v, _ := imputed.At(0, 4)
	assert.Equal(t, 2.5, v, "row-mean imputation of (1+2+3+4)/4")

	out, degenerate, err := normalize.ZScoreRows(imputed)
	require.NoError(t, err)
	assert.Equal(t, 1, degenerate, "flat row is degenerate")

	zrow, _ := out.Row(0)
	for _, z := range zrow {
		assert.False(t, math.IsNaN(z))
		assert.LessOrEqual(t, math.Abs(z), 3.0, "imputed value must not blow up the z-score")
	}
	flat, _ := out.Row(1)
	for _, z := range flat {
		assert.Equal(t, 0.0, z, "zero-variance row z-scores to zeros")
	}
}

// TestChain_FixedOrderCheckpoints verifies the named checkpoints exist and
// differ as the stages demand.
func TestChain_FixedOrderCheckpoints(t *testing.T) {
	m, err := matrix.New(
		[]string{"g1", "g2", "g3"},
		[]string{"s1", "s2"},
		[]float64{1, 8, 4, 2, 16, 32})
	require.NoError(t, err)

	res, err := normalize.Chain(m)
	require.NoError(t, err)

	require.NotNil(t, res.Filtered)
	require.NotNil(t, res.Normalized)
	require.NotNil(t, res.Standardized)
	assert.Equal(t, m.RowLabels(), res.Standardized.RowLabels())

	// Quantile post-condition holds on the Normalized checkpoint.
	colA, _ := res.Normalized.Col(0)
	colB, _ := res.Normalized.Col(1)
	sort.Float64s(colA)
	sort.Float64s(colB)
	for k := range colA {
		assert.InDelta(t, colA[k], colB[k], 1e-9)
	}
}
