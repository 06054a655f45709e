// SPDX-License-Identifier: MIT
// Package normalize: functional configuration.
// Defaults are documented constants (single source of truth); WithX
// constructors validate strictly and panic only on programmer error.

package normalize

// ImputeStrategy selects how FilterImpute fills surviving missing cells.
type ImputeStrategy int

const (
	// RowMean imputes a missing cell with the mean of its row's finite
	// values. Default: preserves per-gene location, which keeps the later
	// row z-scoring stable.
	RowMean ImputeStrategy = iota

	// ColumnMean imputes a missing cell with the mean of its column's
	// finite values, preserving column-wise statistics instead.
	ColumnMean
)

const (
	// DefaultMissingCutoff drops a row/column when its missing fraction
	// strictly exceeds this value.
	DefaultMissingCutoff = 0.95

	// DefaultLogEpsilon is the ε in log2(x+ε), small enough to be
	// negligible against real expression values yet keeping log2 finite
	// at x == 0.
	DefaultLogEpsilon = 1e-6

	// DefaultTernaryCut is the symmetric |z| threshold for the
	// fixed-magnitude ternarization mode: z ≥ +cut → +1, z ≤ -cut → -1.
	DefaultTernaryCut = 1.0
)

// Option mutates the package options. Setters are idempotent; public entry
// points accept ...Option and resolve them against the defaults.
type Option func(*options)

type options struct {
	missingCutoff   float64
	impute          ImputeStrategy
	logEpsilon      float64
	ternaryCut      float64
	ternaryQuantile float64 // 0 ⇒ fixed-magnitude mode
}

func gatherOptions(opts ...Option) options {
	o := options{
		missingCutoff: DefaultMissingCutoff,
		impute:        RowMean,
		logEpsilon:    DefaultLogEpsilon,
		ternaryCut:    DefaultTernaryCut,
	}
	for _, set := range opts {
		set(&o)
	}

	return o
}

// WithMissingCutoff overrides the missing-fraction cutoff.
// Panics unless 0 ≤ f ≤ 1 (programmer error).
func WithMissingCutoff(f float64) Option {
	if f < 0 || f > 1 {
		panic("normalize: WithMissingCutoff: cutoff must be in [0,1]")
	}

	return func(o *options) { o.missingCutoff = f }
}

// WithImputeStrategy selects the imputation rule for surviving gaps.
func WithImputeStrategy(s ImputeStrategy) Option {
	return func(o *options) { o.impute = s }
}

// WithLogEpsilon overrides ε in log2(x+ε).
// Panics unless ε > 0 (ε = 0 would reintroduce -Inf at x == 0).
func WithLogEpsilon(eps float64) Option {
	if !(eps > 0) {
		panic("normalize: WithLogEpsilon: epsilon must be > 0")
	}

	return func(o *options) { o.logEpsilon = eps }
}

// WithTernaryCut sets the fixed-magnitude |z| threshold and selects the
// fixed-magnitude mode. Panics unless cut > 0.
func WithTernaryCut(cut float64) Option {
	if !(cut > 0) {
		panic("normalize: WithTernaryCut: cut must be > 0")
	}

	return func(o *options) {
		o.ternaryCut = cut
		o.ternaryQuantile = 0
	}
}

// WithTernaryQuantile selects the per-column quantile mode: the top q
// fraction of each column maps to +1 and the bottom q fraction to -1.
// Panics unless 0 < q < 0.5.
func WithTernaryQuantile(q float64) Option {
	if !(q > 0 && q < 0.5) {
		panic("normalize: WithTernaryQuantile: q must be in (0, 0.5)")
	}

	return func(o *options) { o.ternaryQuantile = q }
}
