// SPDX-License-Identifier: MIT

package normalize

import (
	"fmt"
	"math"

	"github.com/katalvlaran/genelab/matrix"
)

// Log2 applies the elementwise variance-stabilizing transform log2(x+ε).
//
// Behavior highlights:
//   - x == 0 maps to log2(ε), finite by the ε > 0 option invariant.
//   - Negative input (ill-formed for expression counts, but total
//     functions never fail on numbers) is clamped to 0 before the
//     transform, so the output is always finite.
//
// Errors: matrix.ErrNilMatrix only.
// Complexity: O(r*c).
func Log2(m *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("normalize: Log2: %w", matrix.ErrNilMatrix)
	}
	o := gatherOptions(opts...)

	out := m.Clone()
	r, c := out.Rows(), out.Cols()
	for i := 0; i < r; i++ { // fixed i→j traversal
		for j := 0; j < c; j++ {
			v, _ := out.At(i, j)
			if v < 0 {
				v = 0 // clamp: negatives cannot reach -Inf territory
			}
			_ = out.Set(i, j, math.Log2(v+o.logEpsilon))
		}
	}

	return out, nil
}
