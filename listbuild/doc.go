// SPDX-License-Identifier: MIT

// Package listbuild derives tabular and set-shaped artifacts from a
// processed expression matrix.
//
// Four builders, all pure functions over a read-only matrix:
//
//   - GeneList — one row per matrix row: canonical symbol plus its NCBI
//     gene ID where the lookup resolves one (unresolved symbols are
//     retained with HasID=false, never dropped).
//   - AttributeList — one row per matrix column with its nonzero
//     association count.
//   - SetLibrary — per row (or column), the set of opposite-axis labels
//     whose value is positive (Up) or negative (Down). Empty sets are
//     retained so the library stays 1:1 with the list output.
//   - EdgeList — one weighted edge per nonzero cell.
//
// All builders preserve matrix label order, so outputs are byte-stable
// across runs. On a ternary matrix the set libraries carry the usual
// up/down regulation semantics; on arbitrary matrices the sign test
// still applies as documented.
package listbuild
