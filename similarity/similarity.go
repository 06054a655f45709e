// SPDX-License-Identifier: MIT

package similarity

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/katalvlaran/genelab/matrix"
	"golang.org/x/sync/errgroup"
)

// Metric selects the pairwise similarity measure.
type Metric int

const (
	// Cosine similarity between real-valued vectors; range [-1,1] on
	// z-scored data, [0,1] on nonnegative data.
	Cosine Metric = iota

	// Jaccard similarity between nonzero supports; range [0,1].
	Jaccard
)

// String implements fmt.Stringer for logs and errors.
func (m Metric) String() string {
	switch m {
	case Cosine:
		return "cosine"
	case Jaccard:
		return "jaccard"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// ErrBadMetric indicates a Metric value outside the defined set.
var ErrBadMetric = errors.New("similarity: unknown metric")

// Option configures Similarity.
type Option func(*options)

type options struct {
	sparse  bool
	workers int
}

// WithSparse enables the sorted-index sparse path for Jaccard. Ignored by
// Cosine, which is inherently dense.
func WithSparse() Option {
	return func(o *options) { o.sparse = true }
}

// WithWorkers caps the number of parallel row workers.
// Panics on n < 1 (programmer error).
func WithWorkers(n int) Option {
	if n < 1 {
		panic("similarity: WithWorkers: n must be >= 1")
	}

	return func(o *options) { o.workers = n }
}

// Similarity computes the symmetric pairwise similarity matrix between the
// rows (axis == matrix.Rows) or columns (axis == matrix.Cols) of m.
//
// Implementation:
//   - Stage 1: orient — column mode works on the transpose, keeping one
//     canonical row-wise kernel.
//   - Stage 2: precompute per-vector invariants (norms for cosine, sorted
//     nonzero supports for sparse Jaccard).
//   - Stage 3: fan row chunks out over an errgroup; the worker owning
//     min(i,j) writes both mirror cells, so every output cell has exactly
//     one writer and no synchronization is needed.
//
// Behavior highlights:
//   - Output labels equal the input labels of the chosen axis, same order,
//     on both output axes.
//   - Diagonal is 1.0 for both metrics.
//   - Degenerate vectors (zero norm / empty support) contribute 0 against
//     everything else — policy, not error.
//   - Empty input → empty square matrix.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrBadAxis, ErrBadMetric.
// Complexity: O(n²·m) dense; sparse Jaccard O(n²·k) for support size k.
func Similarity(m *matrix.Dense, axis matrix.Axis, metric Metric, opts ...Option) (*matrix.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("similarity: %w", matrix.ErrNilMatrix)
	}
	if !axis.Valid() {
		return nil, fmt.Errorf("similarity: axis %v: %w", axis, matrix.ErrBadAxis)
	}
	if metric != Cosine && metric != Jaccard {
		return nil, fmt.Errorf("similarity: %v: %w", metric, ErrBadMetric)
	}
	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, set := range opts {
		set(&o)
	}

	// Stage 1 (Orient): one canonical row-wise kernel.
	src := m
	if axis == matrix.Cols {
		src = m.Transpose()
	}
	n := src.Rows()
	labels := src.RowLabels()
	out := matrix.NewZeros(labels, labels)
	if n == 0 {
		return out, nil
	}

	// Stage 2 (Precompute): per-vector invariants.
	vecs := make([][]float64, n)
	for i := 0; i < n; i++ {
		vecs[i], _ = src.Row(i)
	}
	var norms []float64
	var supports [][]int
	switch {
	case metric == Cosine:
		norms = make([]float64, n)
		for i, v := range vecs {
			norms[i] = l2(v)
		}
	case o.sparse:
		supports = make([][]int, n)
		for i, v := range vecs {
			supports[i] = nonzeroIndices(v)
		}
	}

	// Stage 3 (Fan out): disjoint row chunks, one writer per cell.
	g := new(errgroup.Group)
	g.SetLimit(o.workers)
	chunk := (n + o.workers - 1) / o.workers
	for start := 0; start < n; start += chunk {
		lo, hi := start, start+chunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				_ = out.Set(i, i, 1.0) // self-similarity is defined as 1
				for j := i + 1; j < n; j++ {
					var s float64
					switch {
					case metric == Cosine:
						s = cosine(vecs[i], vecs[j], norms[i], norms[j])
					case o.sparse:
						s = jaccardSparse(supports[i], supports[j])
					default:
						s = jaccardDense(vecs[i], vecs[j])
					}
					_ = out.Set(i, j, s)
					_ = out.Set(j, i, s)
				}
			}

			return nil
		})
	}
	_ = g.Wait() // workers are pure and never fail

	return out, nil
}

// l2 returns the Euclidean norm of v.
func l2(v []float64) float64 {
	var sq float64
	for _, x := range v {
		sq += x * x
	}

	return math.Sqrt(sq)
}

// cosine computes dot(a,b)/(|a||b|) with the zero-norm → 0 policy.
func cosine(a, b []float64, na, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for k := range a {
		dot += a[k] * b[k]
	}

	return dot / (na * nb)
}

// jaccardDense counts the both-nonzero / either-nonzero ratio.
func jaccardDense(a, b []float64) float64 {
	inter, union := 0, 0
	for k := range a {
		an, bn := a[k] != 0, b[k] != 0
		if an && bn {
			inter++
		}
		if an || bn {
			union++
		}
	}
	if union == 0 {
		return 0 // zero-union policy
	}

	return float64(inter) / float64(union)
}

// jaccardSparse merges two ascending support index lists.
func jaccardSparse(a, b []int) float64 {
	inter := 0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			inter++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}

	return float64(inter) / float64(union)
}

// nonzeroIndices returns the ascending indices of nonzero entries.
func nonzeroIndices(v []float64) []int {
	idx := make([]int, 0, len(v)/4)
	for k, x := range v {
		if x != 0 {
			idx = append(idx, k)
		}
	}

	return idx
}
