// SPDX-License-Identifier: MIT

// Package matrix provides the labeled dense matrix that every genelab
// pipeline stage consumes and produces.
//
// A Dense is a row-major float64 matrix whose rows carry gene labels and
// whose columns carry sample/attribute labels. Missing cells are encoded
// as NaN; every numeric stage downstream of normalize.FilterImpute may
// assume a fully finite matrix.
//
// Core guarantees:
//   - Construction validates shape and label/dimension agreement.
//   - Transforms never mutate their input; each returns a fresh Dense.
//   - Merge collapses duplicate labels by mean and is idempotent:
//     Merge(Merge(m, ax), ax) == Merge(m, ax) cell for cell.
//   - Iteration order is fixed (row-major i→j), so results are
//     deterministic and reproducible across runs.
//
// Errors are package-level sentinels ("matrix: ...") matched with
// errors.Is; no public operation panics on user input.
package matrix
