package tabular_test

import (
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/genelab/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseFormat verifies the format tag mapping.
func TestParseFormat(t *testing.T) {
	f, err := tabular.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, tabular.FormatTSV, f)

	f, err = tabular.ParseFormat("GCT")
	require.NoError(t, err)
	assert.Equal(t, tabular.FormatGCT, f)

	_, err = tabular.ParseFormat("xlsx")
	assert.ErrorIs(t, err, tabular.ErrBadFormat)
}

// TestReadMatrixFormat_GCT decodes a well-formed GCT 1.2 file, dropping
// the description column.
func TestReadMatrixFormat_GCT(t *testing.T) {
	src := "#1.2\n" +
		"2\t3\n" +
		"Name\tDescription\ts1\ts2\ts3\n" +
		"TP53\ttumor protein p53\t1\t2\tNA\n" +
		"BRCA1\tna\t4\t5\t6\n"

	m, err := tabular.ReadMatrixFormat(strings.NewReader(src), tabular.FormatGCT)
	require.NoError(t, err)

	assert.Equal(t, []string{"TP53", "BRCA1"}, m.RowLabels())
	assert.Equal(t, []string{"s1", "s2", "s3"}, m.ColLabels())
	v, _ := m.At(1, 2)
	assert.Equal(t, 6.0, v)
	v, _ = m.At(0, 2)
	assert.True(t, math.IsNaN(v), "NA decodes to missing in GCT too")
}

// TestReadMatrixFormat_GCTValidation verifies the preamble and dimension
// checks.
func TestReadMatrixFormat_GCTValidation(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"wrong version", "#1.3\n1\t1\nName\tDescription\ts1\ng\td\t1\n"},
		{"bad dims", "#1.2\ntwo\t1\nName\tDescription\ts1\ng\td\t1\n"},
		{"row count mismatch", "#1.2\n2\t1\nName\tDescription\ts1\ng\td\t1\n"},
		{"short header", "#1.2\n1\t2\nName\tDescription\ts1\ng\td\t1\t2\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tabular.ReadMatrixFormat(strings.NewReader(tc.src), tabular.FormatGCT)
			assert.Error(t, err)
		})
	}
}

// TestReadMatrixFormat_TSVDelegates verifies the TSV variant shares the
// plain reader.
func TestReadMatrixFormat_TSVDelegates(t *testing.T) {
	src := "\ts1\n" + "TP53\t1\n"
	m, err := tabular.ReadMatrixFormat(strings.NewReader(src), tabular.FormatTSV)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Rows())

	_, err = tabular.ReadMatrixFormat(strings.NewReader(src), tabular.Format(9))
	assert.ErrorIs(t, err, tabular.ErrBadFormat)
}
