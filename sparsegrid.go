// Copyright ©2026 The fastsg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastsg

import "github.com/afm/fastsg/combin"

// SparseGrid owns the flat array of nodal (or, after Hierarchize, surplus)
// values of a non-zero-boundary, d-dimensional, level-n sparse grid. It is
// immutable in (d, n) once constructed; Hierarchize is the one in-place,
// one-way mutation of values it supports.
type SparseGrid struct {
	d, n         int
	values       []float32
	hierarchized bool
}

// NewSparseGrid constructs a sparse grid of dimension d and refinement
// level n, sampling f at every one of the N(d,n) grid points.
func NewSparseGrid(d, n int, f FunctionEval) (*SparseGrid, error) {
	if err := validateConfig(d, n); err != nil {
		return nil, err
	}
	size := gridSize(d, n)

	values := make([]float32, size)
	coord := make([]float32, d)
	for k := int64(0); k < size; k++ {
		li, err := IndexToLevelIndex(k, d, n)
		if err != nil {
			// size and IndexToLevelIndex are derived from the same
			// formulas; disagreement is an internal invariant break,
			// not a caller error.
			panic("fastsg: internal invariant violated: " + err.Error())
		}
		copy(coord, LevelIndexToCoord(li))
		values[k] = f.Eval(coord)
	}

	return &SparseGrid{d: d, n: n, values: values}, nil
}

// Size returns N(d, n), the number of points of a non-zero-boundary,
// d-dimensional, level-n sparse grid.
func Size(d, n int) (int, error) {
	if err := validateConfig(d, n); err != nil {
		return 0, err
	}
	return int(gridSize(d, n)), nil
}

// Size returns the number of grid points owned by g.
func (g *SparseGrid) Size() int { return len(g.values) }

// Dims returns the dimensionality of g.
func (g *SparseGrid) Dims() int { return g.d }

// Level returns the refinement level of g.
func (g *SparseGrid) Level() int { return g.n }

// Hierarchized reports whether Hierarchize has been called on g.
func (g *SparseGrid) Hierarchized() bool { return g.hierarchized }

// Hierarchize transforms values in place from nodal (function samples) to
// hierarchical surplus form: for each dimension cd, in descending order of
// linear index, it subtracts the average of the point's left and right
// parent values on axis cd (0 for a missing parent) from the point's own
// value.
//
// The descending inner loop is load-bearing: it guarantees that when point
// j is updated for axis cd, its two parents on axis cd have not yet been
// updated for axis cd in this pass (an interior parent is coarser on axis
// cd, so it sits at a smaller linear index within the same sub-grid and is
// reached after j; a boundary parent has no parent of its own on axis cd
// and is never changed in this pass). Reversing it breaks the
// parent-before-child dependency the surplus transform relies on.
func (g *SparseGrid) Hierarchize() error {
	size := int64(len(g.values))
	for cd := 0; cd < g.d; cd++ {
		for j := size - 1; j >= 0; j-- {
			li, err := IndexToLevelIndex(j, g.d, g.n)
			if err != nil {
				panic("fastsg: internal invariant violated: " + err.Error())
			}

			var vLeft, vRight float32
			if lp, ok := g.LeftParent(li, cd); ok {
				idx, err := LevelIndexToIndex(lp, g.d, g.n)
				if err != nil {
					panic("fastsg: internal invariant violated: " + err.Error())
				}
				vLeft = g.values[idx]
			}
			if rp, ok := g.RightParent(li, cd); ok {
				idx, err := LevelIndexToIndex(rp, g.d, g.n)
				if err != nil {
					panic("fastsg: internal invariant violated: " + err.Error())
				}
				vRight = g.values[idx]
			}

			g.values[j] -= (vLeft + vRight) / 2
		}
	}
	g.hierarchized = true
	return nil
}

// LeftParent returns the left parent of li on axis cd: the nearest coarser
// grid point to the left of li on axis cd (the left end of li's hat
// support, which may be more than one level coarser). It reports
// false when li is already a boundary point on axis cd (no parent exists).
func (g *SparseGrid) LeftParent(li LevelIndex, cd int) (LevelIndex, bool) {
	if li.Levels[cd] == -1 {
		return LevelIndex{}, false
	}
	parent := li.clone()
	if li.Indices[cd] == 0 {
		parent.Levels[cd] = -1
		parent.Indices[cd] = 0
		return parent, true
	}
	coord := float32(li.Indices[cd]) / float32(uint64(1)<<uint(li.Levels[cd]))
	level, index, _ := oddLevelOf(coord)
	parent.Levels[cd] = level
	parent.Indices[cd] = index
	return parent, true
}

// RightParent returns the right parent of li on axis cd, symmetric to
// LeftParent.
func (g *SparseGrid) RightParent(li LevelIndex, cd int) (LevelIndex, bool) {
	if li.Levels[cd] == -1 {
		return LevelIndex{}, false
	}
	parent := li.clone()
	maxIndex := (1 << uint(li.Levels[cd])) - 1
	if li.Indices[cd] == maxIndex {
		parent.Levels[cd] = -1
		parent.Indices[cd] = 1
		return parent, true
	}
	coord := float32(li.Indices[cd]+1) / float32(uint64(1)<<uint(li.Levels[cd]))
	level, index, _ := oddLevelOf(coord)
	parent.Levels[cd] = level
	parent.Indices[cd] = index
	return parent, true
}

// LeftParentCoord and RightParentCoord are the coordinate-vector forms of
// LeftParent/RightParent, for callers that work in coordinates rather than
// (levels, indices).
func (g *SparseGrid) LeftParentCoord(coord []float32, cd int) ([]float32, bool) {
	li, err := CoordToLevelIndex(coord)
	if err != nil {
		return nil, false
	}
	parent, ok := g.LeftParent(li, cd)
	if !ok {
		return nil, false
	}
	return LevelIndexToCoord(parent), true
}

func (g *SparseGrid) RightParentCoord(coord []float32, cd int) ([]float32, bool) {
	li, err := CoordToLevelIndex(coord)
	if err != nil {
		return nil, false
	}
	parent, ok := g.RightParent(li, cd)
	if !ok {
		return nil, false
	}
	return LevelIndexToCoord(parent), true
}

// Next returns the first grid point of the sub-grid that follows li's
// sub-grid in the linear layout, reporting false when li's sub-grid is the
// last one.
func (g *SparseGrid) Next(li LevelIndex) (LevelIndex, bool) {
	idx, err := LevelIndexToIndex(li, g.d, g.n)
	if err != nil {
		return LevelIndex{}, false
	}
	pd := interiorDims(li)
	nextIdx := idx + combin.ZeroBoundarySize(pd, g.n)
	if nextIdx >= int64(len(g.values)) {
		return LevelIndex{}, false
	}
	next, err := IndexToLevelIndex(nextIdx, g.d, g.n)
	if err != nil {
		return LevelIndex{}, false
	}
	return next, true
}

func interiorDims(li LevelIndex) int {
	pd := 0
	for _, l := range li.Levels {
		if l != -1 {
			pd++
		}
	}
	return pd
}

// Evaluate interpolates the sparse grid at coord, a point in [0,1]^d. It
// assumes g has been hierarchized.
func (g *SparseGrid) Evaluate(coord []float32) (float32, error) {
	vals, err := g.evaluateAll([][]float32{coord})
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

// EvaluateBatch interpolates the sparse grid at every point in coords, a
// slice of m points each in [0,1]^d. It amortises the single walk of the
// sparse grid's sub-grids across all m points, rather than repeating
// Evaluate m times.
func (g *SparseGrid) EvaluateBatch(coords [][]float32) ([]float32, error) {
	return g.evaluateAll(coords)
}

// evaluateAll is the shared walker behind Evaluate and EvaluateBatch. It
// walks every regular sub-grid contained in the sparse grid exactly once,
// in the linear layout induced by the Converter, and accumulates each
// query point's weighted sum of tensorised 1-D hat-function values. All
// scratch state is local to the call, so concurrent calls on an already-
// hierarchized grid (read-only) are safe.
func (g *SparseGrid) evaluateAll(coords [][]float32) ([]float32, error) {
	d, n := g.d, g.n
	m := len(coords)
	for _, c := range coords {
		if len(c) != d {
			return nil, &DomainError{Reason: "coordinate length does not match grid dimensionality"}
		}
		for i, x := range c {
			if x < 0 || x > 1 {
				return nil, &DomainError{Dim: i, Value: x, Reason: "coordinate not in [0,1]"}
			}
		}
	}

	vals := make([]float32, m)
	prod0 := make([]float32, m)
	pcoords := make([][]float32, m)
	for j := range pcoords {
		pcoords[j] = make([]float32, d)
	}

	cursor := int64(0)
	for pd := d; pd >= 0; pd-- {
		groupCount := (int64(1) << uint(d-pd)) * combin.Binomial(d, d-pd)
		for kk := int64(0); kk < groupCount; kk++ {
			li, err := IndexToLevelIndex(cursor, d, n)
			if err != nil {
				panic("fastsg: internal invariant violated: " + err.Error())
			}
			base := cursor
			cursor += combin.ZeroBoundarySize(pd, n)

			for j := 0; j < m; j++ {
				prod0[j] = 1
			}
			pi := 0
			for k := 0; k < d; k++ {
				if li.Levels[k] == -1 {
					if li.Indices[k] == 0 {
						for j := 0; j < m; j++ {
							prod0[j] *= 1 - coords[j][k]
						}
					} else {
						for j := 0; j < m; j++ {
							prod0[j] *= coords[j][k]
						}
					}
				} else {
					for j := 0; j < m; j++ {
						pcoords[j][pi] = coords[j][k]
					}
					pi++
				}
			}

			if pd == 0 {
				for j := 0; j < m; j++ {
					vals[j] += prod0[j] * g.values[base]
				}
				continue
			}

			plevels := make([]int, pd)
			sub := base
			for S := 0; S < n; S++ {
				plevels[0] = 0
				plevels[pd-1] = S
				for {
					regularSize := int64(1) << uint(S)
					for j := 0; j < m; j++ {
						prod := prod0[j]
						index2 := int64(0)
						for k := 0; k < pd; k++ {
							levelSize := int64(1) << uint(plevels[k])
							x := pcoords[j][k]
							idxK := int64(float64(x) * float64(levelSize))
							if idxK >= levelSize {
								idxK = levelSize - 1
							}
							left := float32(float64(idxK) / float64(levelSize))
							width := float32(1) / float32(levelSize)
							hat := 1 - abs32((2*(x-left)/width)-1)
							if hat < 0 {
								hat = 0
							}
							prod *= hat
							index2 = index2*levelSize + idxK
						}
						vals[j] += prod * g.values[sub+index2]
					}
					sub += regularSize

					if plevels[0] == S {
						break
					}
					k := 1
					for plevels[k] == 0 {
						k++
					}
					plevels[k]--
					t0 := plevels[0]
					plevels[0] = 0
					plevels[k-1] = t0 + 1
				}
			}
		}
	}

	return vals, nil
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
