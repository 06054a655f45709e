// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All public operations MUST return these sentinels (optionally wrapped with
// fmt.Errorf("op: %w", ...) at the boundary) and tests MUST check them via
// errors.Is. Panics are reserved for programmer errors in private helpers.

package matrix

import "errors"

var (
	// ErrBadShape is returned when row/column counts are negative or when
	// the backing data length disagrees with rows*cols.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrLabelMismatch indicates that a label slice length does not match
	// the corresponding dimension.
	ErrLabelMismatch = errors.New("matrix: label count does not match dimension")

	// ErrOutOfRange indicates that a row or column index is outside valid
	// bounds. Public indexers return this, they never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrUnknownLabel indicates that a referenced row/column label is not
	// present on the requested axis.
	ErrUnknownLabel = errors.New("matrix: unknown label")

	// ErrBadAxis indicates an Axis value other than Rows or Cols.
	ErrBadAxis = errors.New("matrix: invalid axis")

	// ErrNilMatrix indicates that a nil *Dense was passed where a matrix
	// is required.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
