// Copyright ©2026 The fastsg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fastsg provides a compact, index-addressable representation of
// a non-zero-boundary sparse grid over the unit hypercube [0,1]^d.
//
// A SparseGrid is built by sampling a caller-supplied FunctionEval at
// every one of its N(d,n) grid points, addressed by the bijective
// conversions between a linear index, a (levels, indices) pair, and a
// coordinate vector (IndexToLevelIndex, LevelIndexToIndex,
// CoordToLevelIndex, LevelIndexToCoord, IndexToCoord, CoordToIndex).
// Hierarchize rewrites the grid's values in place from nodal samples to
// hierarchical surpluses; Evaluate and EvaluateBatch then interpolate at
// arbitrary points in [0,1]^d using tensor products of 1-D hat functions.
//
// fastsg has no notion of adaptivity, dimensions other than the classical
// isotropic level-n sparse grid, value types other than float32, or
// persistence; see the package's design notes for the reasoning.
package fastsg
