// SPDX-License-Identifier: MIT

// Package pipeline orchestrates the matrix processing track end to end:
// symbol fixed-point remapping, the normalization chain, ternarization,
// gene/attribute similarity, list and set-library building, and edge
// extraction — all collected into one Artifacts struct.
//
// The run is a fixed stage sequence. Each stage failure halts the run
// and is wrapped with the stage name; no partial Artifacts are returned.
// Stage progress (dimensions in/out, dropped counts, durations) is
// logged through zerolog; the default logger is disabled, so library
// callers pay nothing unless they opt in with WithLogger.
//
// Inputs are never mutated. Every artifact is freshly allocated, so two
// runs over the same inputs produce byte-identical output.
package pipeline
