// SPDX-License-Identifier: MIT

package setoverlap

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/katalvlaran/genelab/genesets"
	"github.com/katalvlaran/genelab/matrix"
	"golang.org/x/sync/errgroup"
)

// DefaultTopK bounds the ranked association table.
const DefaultTopK = 1000

// Pair is the scored association between one set from A and one from B.
type Pair struct {
	A, B         string
	Intersection []string // sorted intersecting genes
	OnlyA, OnlyB int
	Jaccard      float64
	P, Q         float64
}

// Result carries every output surface of one overlap run.
type Result struct {
	// Pairs holds all |A|·|B| scored pairs sorted by Q ascending
	// (ties: Jaccard descending, then input order).
	Pairs []Pair

	// Top holds the strongest TopK associations: Jaccard descending,
	// ties broken by Q ascending.
	Top []Pair

	// JaccardMatrix and PValueMatrix are dense |A|×|B| tables with A set
	// names as row labels and B set names as column labels.
	JaccardMatrix *matrix.Dense
	PValueMatrix  *matrix.Dense

	// UniverseSize is the background population n used by the tests.
	UniverseSize int
}

// Option configures Overlap.
type Option func(*options)

type options struct {
	universeSize int // 0 ⇒ derived from the two libraries
	topK         int
	workers      int
}

// WithUniverseSize fixes the background population instead of deriving it
// from the union of both libraries. Values below the derived union are
// raised to it, since a universe smaller than the observed genes is
// incoherent. Panics on n < 1.
func WithUniverseSize(n int) Option {
	if n < 1 {
		panic("setoverlap: WithUniverseSize: n must be >= 1")
	}

	return func(o *options) { o.universeSize = n }
}

// WithTopK overrides the ranked-table bound. Panics on k < 1.
func WithTopK(k int) Option {
	if k < 1 {
		panic("setoverlap: WithTopK: k must be >= 1")
	}

	return func(o *options) { o.topK = k }
}

// WithWorkers caps the parallel A-row workers. Panics on n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("setoverlap: WithWorkers: n must be >= 1")
	}

	return func(o *options) { o.workers = n }
}

// Overlap scores every (a, b) pair of the two libraries.
//
// Implementation:
//   - Stage 1: derive the universe size n (distinct union, unless pinned
//     higher by WithUniverseSize).
//   - Stage 2: fan chunks of A-rows out over an errgroup; each worker
//     fills pairs[ai*|B| ... ] — disjoint ranges, read-only inputs, no
//     locks. Per pair: sorted-merge intersection, Jaccard with the
//     empty-union → 0 policy, Fisher exact two-tailed p.
//   - Stage 3 (reduce): rank p ascending (stable, input order on ties),
//     assign q = p·N/rank, sort Pairs by q, extract Top by Jaccard/q.
//
// Behavior highlights:
//   - Either library empty → empty Pairs/Top and 0×q / p×0 matrices;
//     never an error.
//   - Deterministic output ordering for byte-stable artifacts.
//
// Errors: nil library only.
// Complexity: O(p·q·k) pair scoring + O(N log N) ranking.
func Overlap(a, b *genesets.Library, opts ...Option) (*Result, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("setoverlap: Overlap: nil library")
	}
	o := options{topK: DefaultTopK, workers: runtime.GOMAXPROCS(0)}
	for _, set := range opts {
		set(&o)
	}

	// Stage 1 (Universe): background population for the exact test.
	universe := genesets.Universe(a, b)
	n := len(universe)
	if o.universeSize > n {
		n = o.universeSize
	}

	setsA, setsB := a.Sets(), b.Sets()
	p, q := len(setsA), len(setsB)

	namesA := make([]string, p)
	for i, s := range setsA {
		namesA[i] = s.Name
	}
	namesB := make([]string, q)
	for j, s := range setsB {
		namesB[j] = s.Name
	}

	res := &Result{
		JaccardMatrix: matrix.NewZeros(namesA, namesB),
		PValueMatrix:  matrix.NewZeros(namesA, namesB),
		UniverseSize:  n,
	}
	if p == 0 || q == 0 {
		return res, nil // empty-input policy: valid, empty result
	}

	// Stage 2 (Score): disjoint slice ranges per worker.
	pairs := make([]Pair, p*q)
	g := new(errgroup.Group)
	g.SetLimit(o.workers)
	chunk := (p + o.workers - 1) / o.workers
	for start := 0; start < p; start += chunk {
		lo, hi := start, start+chunk
		if hi > p {
			hi = p
		}
		g.Go(func() error {
			for ai := lo; ai < hi; ai++ {
				sa := setsA[ai]
				for bi := 0; bi < q; bi++ {
					sb := setsB[bi]
					inter := sa.Intersect(sb)
					i := len(inter)
					onlyA := sa.Len() - i
					onlyB := sb.Len() - i
					neither := n - i - onlyA - onlyB

					jac := 0.0
					if union := i + onlyA + onlyB; union > 0 {
						jac = float64(i) / float64(union)
					}

					pairs[ai*q+bi] = Pair{
						A:            sa.Name,
						B:            sb.Name,
						Intersection: inter,
						OnlyA:        onlyA,
						OnlyB:        onlyB,
						Jaccard:      jac,
						P:            FisherExact(i, onlyA, onlyB, neither),
					}
				}
			}

			return nil
		})
	}
	_ = g.Wait() // workers are pure and never fail

	// Stage 2b (Matrices): deterministic fill from the scored pairs.
	for ai := 0; ai < p; ai++ {
		for bi := 0; bi < q; bi++ {
			pr := pairs[ai*q+bi]
			_ = res.JaccardMatrix.Set(ai, bi, pr.Jaccard)
			_ = res.PValueMatrix.Set(ai, bi, pr.P)
		}
	}

	// Stage 3 (Reduce): rank-adjusted q-values, global sort, top-K.
	adjust(pairs)
	res.Pairs = pairs
	res.Top = topK(pairs, o.topK)

	return res, nil
}

// adjust assigns q = p·N/rank(p) in place and sorts pairs by q ascending.
// Ranking is stable: equal p-values keep input order, so q assignment and
// the final ordering are deterministic.
func adjust(pairs []Pair) {
	N := len(pairs)
	order := make([]int, N)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return pairs[order[x]].P < pairs[order[y]].P
	})
	for rank, idx := range order {
		pairs[idx].Q = pairs[idx].P * float64(N) / float64(rank+1)
	}
	sort.SliceStable(pairs, func(x, y int) bool {
		if pairs[x].Q != pairs[y].Q {
			return pairs[x].Q < pairs[y].Q
		}

		return pairs[x].Jaccard > pairs[y].Jaccard
	})
}

// topK returns the k strongest associations: Jaccard descending, ties by
// q ascending. The input slice is not reordered.
func topK(pairs []Pair, k int) []Pair {
	ranked := append([]Pair(nil), pairs...)
	sort.SliceStable(ranked, func(x, y int) bool {
		if ranked[x].Jaccard != ranked[y].Jaccard {
			return ranked[x].Jaccard > ranked[y].Jaccard
		}

		return ranked[x].Q < ranked[y].Q
	})
	if k > len(ranked) {
		k = len(ranked)
	}

	return ranked[:k]
}
