// SPDX-License-Identifier: MIT

package symbols

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/genelab/matrix"
)

// DefaultMaxIterations caps the fixed-point remap loop. Real lookup tables
// converge in one or two passes; the cap exists so a cyclic or otherwise
// malformed table fails loudly instead of spinning.
const DefaultMaxIterations = 8

var (
	// ErrNilLookup indicates that a nil *Lookup was passed.
	ErrNilLookup = errors.New("symbols: nil lookup")

	// ErrRemapDiverged indicates the fixed-point loop either grew the row
	// count (impossible for a well-formed lookup: mapping only drops or
	// merges rows) or failed to stabilize within the iteration cap.
	ErrRemapDiverged = errors.New("symbols: remapping did not converge")
)

// Lookup holds the two read-only symbol mappings for one dataset release.
// Immutable after NewLookup; safe for concurrent readers.
type Lookup struct {
	canonical map[string]string // raw symbol → approved symbol
	geneID    map[string]int64  // approved symbol → NCBI gene id
}

// NewLookup copies both mappings into an immutable Lookup.
// Complexity: O(|canonical| + |geneID|).
func NewLookup(canonical map[string]string, geneID map[string]int64) *Lookup {
	lk := &Lookup{
		canonical: make(map[string]string, len(canonical)),
		geneID:    make(map[string]int64, len(geneID)),
	}
	for raw, sym := range canonical {
		lk.canonical[raw] = sym
	}
	for sym, id := range geneID {
		lk.geneID[sym] = id
	}
	// Approved symbols resolve to themselves. Without these identity
	// entries a second mapping pass would drop every already-canonical row
	// and the fixed-point loop could never stabilize on a nonempty matrix.
	for _, sym := range canonical {
		if _, ok := lk.canonical[sym]; !ok {
			lk.canonical[sym] = sym
		}
	}
	for sym := range geneID {
		if _, ok := lk.canonical[sym]; !ok {
			lk.canonical[sym] = sym
		}
	}

	return lk
}

// Canonical resolves a raw symbol to its approved symbol.
func (lk *Lookup) Canonical(raw string) (string, bool) {
	sym, ok := lk.canonical[raw]
	return sym, ok
}

// GeneID resolves an approved symbol to its NCBI integer gene ID.
func (lk *Lookup) GeneID(symbol string) (int64, bool) {
	id, ok := lk.geneID[symbol]
	return id, ok
}

// Len reports the number of raw-symbol entries, mostly for logging.
func (lk *Lookup) Len() int { return len(lk.canonical) }

// MapResult reports the outcome of a (possibly iterated) mapping run.
type MapResult struct {
	// Matrix is the relabeled, merged matrix with unique canonical rows.
	Matrix *matrix.Dense

	// Dropped counts rows discarded because their raw label was absent
	// from the lookup, summed over all iterations.
	Dropped int

	// Iterations is the number of map+merge passes executed.
	Iterations int
}

// MapRows performs one mapping pass over gene rows.
// Stage 1 (Resolve): translate each row label through the lookup; collect
// the indices of resolvable rows and drop the rest.
// Stage 2 (Relabel): rebuild the matrix with canonical row labels.
// Stage 3 (Merge): mean-merge rows that collided on one canonical symbol.
//
// Returns the merged matrix and the dropped-row count. An input whose rows
// all resolve and never collide comes back as an identical copy.
//
// Errors: ErrNilLookup, matrix.ErrNilMatrix.
// Complexity: O(r*c).
func MapRows(m *matrix.Dense, lk *Lookup) (*matrix.Dense, int, error) {
	if m == nil {
		return nil, 0, fmt.Errorf("symbols: MapRows: %w", matrix.ErrNilMatrix)
	}
	if lk == nil {
		return nil, 0, fmt.Errorf("symbols: MapRows: %w", ErrNilLookup)
	}

	// Stage 1 (Resolve): deterministic row order, first to last.
	labels := m.RowLabels()
	keep := make([]int, 0, len(labels))
	mapped := make([]string, 0, len(labels))
	for i, raw := range labels {
		sym, ok := lk.Canonical(raw)
		if !ok {
			continue // unmapped raw symbol: row is dropped, counted below
		}
		keep = append(keep, i)
		mapped = append(mapped, sym)
	}
	dropped := len(labels) - len(keep)

	// Stage 2 (Relabel): subset and swap in canonical labels.
	sub, err := m.SelectRows(keep)
	if err != nil {
		return nil, 0, fmt.Errorf("symbols: MapRows: %w", err)
	}
	relabeled, err := sub.WithRowLabels(mapped)
	if err != nil {
		return nil, 0, fmt.Errorf("symbols: MapRows: %w", err)
	}

	// Stage 3 (Merge): restore the unique-row-label invariant.
	merged, err := matrix.Merge(relabeled, matrix.Rows)
	if err != nil {
		return nil, 0, fmt.Errorf("symbols: MapRows: %w", err)
	}

	return merged, dropped, nil
}

// Option configures MapToFixedPoint.
type Option func(*options)

type options struct {
	maxIterations int
}

// WithMaxIterations overrides the fixed-point iteration cap.
// Panics on n < 1 (programmer error, not data error).
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic("symbols: WithMaxIterations: n must be >= 1")
	}

	return func(o *options) { o.maxIterations = n }
}

// MapToFixedPoint iterates MapRows until the row count stabilizes.
//
// Mapping can introduce new duplicates (distinct raw labels collapsing onto
// one canonical symbol whose merged label is itself a raw key), so a single
// pass is not guaranteed to reach the unique-canonical-row invariant. The
// loop re-applies map+merge until the row count is unchanged.
//
// Invariants enforced per iteration:
//   - row count is monotonically non-increasing, else ErrRemapDiverged;
//   - at most maxIterations passes, else ErrRemapDiverged.
//
// Errors: ErrNilLookup, ErrRemapDiverged, wrapped MapRows errors.
// Complexity: O(iterations * r*c); converges in 1–2 passes on curated
// lookup tables.
func MapToFixedPoint(m *matrix.Dense, lk *Lookup, opts ...Option) (MapResult, error) {
	o := options{maxIterations: DefaultMaxIterations}
	for _, set := range opts {
		set(&o)
	}

	res := MapResult{Matrix: m}
	prev := -1 // sentinel: first pass always runs
	for res.Iterations < o.maxIterations {
		mapped, dropped, err := MapRows(res.Matrix, lk)
		if err != nil {
			return MapResult{}, err
		}
		res.Iterations++
		res.Dropped += dropped
		if prev >= 0 && mapped.Rows() > prev {
			return MapResult{}, fmt.Errorf("symbols: MapToFixedPoint: row count grew %d→%d: %w",
				prev, mapped.Rows(), ErrRemapDiverged)
		}
		stable := mapped.Rows() == res.Matrix.Rows() && dropped == 0
		prev = mapped.Rows()
		res.Matrix = mapped
		if stable {
			return res, nil
		}
	}

	return MapResult{}, fmt.Errorf("symbols: MapToFixedPoint: no fixed point after %d iterations: %w",
		o.maxIterations, ErrRemapDiverged)
}
