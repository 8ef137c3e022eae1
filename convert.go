// Copyright ©2026 The fastsg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastsg

import (
	"math"

	"github.com/afm/fastsg/combin"
	"github.com/afm/fastsg/internal/zb"
	"gonum.org/v1/gonum/floats/scalar"
)

// LevelIndex is the (levels, indices) representation of a sparse grid
// point: for axis i, Levels[i] == -1 means the point is on the boundary of
// that axis (Indices[i] is 0 or 1, selecting the left or right face);
// otherwise Levels[i] >= 0 and Indices[i] is in [0, 2^Levels[i]).
type LevelIndex struct {
	Levels  []int
	Indices []int
}

// clone returns an independent copy of li.
func (li LevelIndex) clone() LevelIndex {
	levels := make([]int, len(li.Levels))
	indices := make([]int, len(li.Indices))
	copy(levels, li.Levels)
	copy(indices, li.Indices)
	return LevelIndex{Levels: levels, Indices: indices}
}

// gridSize returns N(d, n), the number of points of a non-zero-boundary,
// d-dimensional, level-n sparse grid:
//
//	N(d,n) = Σ_{i=0}^{d} 2^i · C(d,i) · Z(d-i,n)
func gridSize(d, n int) int64 {
	var total int64
	pow := int64(1)
	for i := 0; i <= d; i++ {
		total += pow * combin.Binomial(d, i) * combin.ZeroBoundarySize(d-i, n)
		pow *= 2
	}
	return total
}

// groupStart returns G(n0, d, n), the cumulative offset of the group of
// sub-grids with exactly n0 boundary axes.
func groupStart(n0, d, n int) int64 {
	var total int64
	pow := int64(1)
	for i := 0; i < n0; i++ {
		total += pow * combin.Binomial(d, i) * combin.ZeroBoundarySize(d-i, n)
		pow *= 2
	}
	return total
}

// thresholdInterior computes 2^n01 * C(rest, n01-1), defined as 0 when
// n01 == 0 (there is no "remaining minus one" slot to place a boundary
// axis in).
func thresholdInterior(n01, rest int) int64 {
	if n01 == 0 {
		return 0
	}
	return (int64(1) << uint(n01)) * combin.Binomial(rest, n01-1)
}

// thresholdSide computes 2^n01 * C(rest, n01).
func thresholdSide(n01, rest int) int64 {
	return (int64(1) << uint(n01)) * combin.Binomial(rest, n01)
}

// IndexToLevelIndex decodes the linear index k, for a d-dimensional,
// level-n sparse grid, into its (levels, indices) representation.
func IndexToLevelIndex(k int64, d, n int) (LevelIndex, error) {
	if err := validateConfig(d, n); err != nil {
		return LevelIndex{}, err
	}
	size := gridSize(d, n)
	if k < 0 || k >= size {
		return LevelIndex{}, &RangeError{Index: int(k), Size: int(size)}
	}

	n01 := 0
	for k >= (int64(1)<<uint(n01))*combin.Binomial(d, n01)*combin.ZeroBoundarySize(d-n01, n) {
		k -= (int64(1) << uint(n01)) * combin.Binomial(d, n01) * combin.ZeroBoundarySize(d-n01, n)
		n01++
	}

	pd := d - n01
	zbSize := combin.ZeroBoundarySize(pd, n)
	inner := k % zbSize
	subIdx := k / zbSize

	var plevels, pindices []int
	if pd > 0 {
		plevels, pindices = zb.FromIndex(inner, pd)
	}

	levels := make([]int, d)
	indices := make([]int, d)
	j := 0
	remaining := subIdx
	n01Left := n01
	for i := 0; i < d; i++ {
		if remaining >= thresholdInterior(n01Left, d-i-1) {
			remaining -= thresholdInterior(n01Left, d-i-1)
			levels[i] = plevels[j]
			indices[i] = pindices[j]
			j++
		} else {
			levels[i] = -1
			n01Left--
			if remaining >= thresholdSide(n01Left, d-i-1) {
				remaining -= thresholdSide(n01Left, d-i-1)
				indices[i] = 1
			} else {
				indices[i] = 0
			}
		}
	}

	return LevelIndex{Levels: levels, Indices: indices}, nil
}

// LevelIndexToIndex encodes the (levels, indices) representation li into
// its linear index, for a d-dimensional, level-n sparse grid.
func LevelIndexToIndex(li LevelIndex, d, n int) (int64, error) {
	if err := validateConfig(d, n); err != nil {
		return 0, err
	}
	if len(li.Levels) != d || len(li.Indices) != d {
		return 0, &DomainError{Reason: "levels/indices length does not match d"}
	}

	var plevels, pindices []int
	for i := 0; i < d; i++ {
		if li.Levels[i] != -1 {
			plevels = append(plevels, li.Levels[i])
			pindices = append(pindices, li.Indices[i])
		}
	}
	pd := len(plevels)

	var inner int64
	if pd > 0 {
		inner = zb.ToIndex(plevels, pindices)
	}

	n01 := d - pd
	var subIdx int64
	n01Left := n01
	for i := 0; i < d; i++ {
		if li.Levels[i] != -1 {
			subIdx += thresholdInterior(n01Left, d-i-1)
		} else {
			n01Left--
			if li.Indices[i] == 1 {
				subIdx += thresholdSide(n01Left, d-i-1)
			}
		}
	}

	return groupStart(n01, d, n) + subIdx*combin.ZeroBoundarySize(pd, n) + inner, nil
}

// oddLevelMaxIterations bounds the dyadic-fraction search in oddLevelOf: a
// float32 mantissa has 23 bits, so no valid grid coordinate needs more than
// this many doublings to reach an integer.
const oddLevelMaxIterations = 30

// oddLevelOf finds the smallest level l >= 0 such that coord*2^(l+1) is an
// odd integer, returning that level and the corresponding index
// (coord*2^(l+1)-1)/2, so that coord == (index+0.5)/2^l.
// coord must lie strictly in (0,1). Ported from Converter::coord2li's
// doubling loop, guarded with a tolerance comparison (float32 arithmetic
// can leave a coordinate that is mathematically exact a hair off from
// integral) and an iteration cap.
func oddLevelOf(coord float32) (level, index int, ok bool) {
	cc := float64(coord)
	level = -1
	for it := 0; it <= oddLevelMaxIterations; it++ {
		rounded := math.Round(cc)
		if scalar.EqualWithinAbsOrRel(cc, rounded, 1e-5, 1e-5) {
			idx := (int64(rounded) - 1) / 2
			return level, int(idx), true
		}
		cc *= 2
		level++
	}
	return 0, 0, false
}

// CoordToLevelIndex decodes a coordinate vector in [0,1]^d into its
// (levels, indices) representation, axis by axis.
func CoordToLevelIndex(coords []float32) (LevelIndex, error) {
	d := len(coords)
	levels := make([]int, d)
	indices := make([]int, d)
	for i, c := range coords {
		if c < 0 || c > 1 {
			return LevelIndex{}, &DomainError{Dim: i, Value: c, Reason: "coordinate not in [0,1]"}
		}
		switch {
		case c == 0:
			levels[i], indices[i] = -1, 0
		case c == 1:
			levels[i], indices[i] = -1, 1
		default:
			l, idx, ok := oddLevelOf(c)
			if !ok {
				return LevelIndex{}, &DomainError{Dim: i, Value: c, Reason: "coordinate is not a dyadic grid point"}
			}
			levels[i], indices[i] = l, idx
		}
	}
	return LevelIndex{Levels: levels, Indices: indices}, nil
}

// LevelIndexToCoord encodes a (levels, indices) representation into its
// coordinate vector, axis by axis.
func LevelIndexToCoord(li LevelIndex) []float32 {
	d := len(li.Levels)
	coords := make([]float32, d)
	for i, l := range li.Levels {
		if l == -1 {
			if li.Indices[i] == 0 {
				coords[i] = 0
			} else {
				coords[i] = 1
			}
			continue
		}
		coords[i] = (float32(li.Indices[i]) + 0.5) / float32(uint64(1)<<uint(l))
	}
	return coords
}

// IndexToCoord decodes the linear index k directly into a coordinate
// vector, for a d-dimensional, level-n sparse grid.
func IndexToCoord(k int64, d, n int) ([]float32, error) {
	li, err := IndexToLevelIndex(k, d, n)
	if err != nil {
		return nil, err
	}
	return LevelIndexToCoord(li), nil
}

// CoordToIndex encodes a coordinate vector directly into its linear index,
// for a d-dimensional, level-n sparse grid.
func CoordToIndex(coords []float32, d, n int) (int64, error) {
	if len(coords) != d {
		return 0, &DomainError{Reason: "coordinate length does not match d"}
	}
	li, err := CoordToLevelIndex(coords)
	if err != nil {
		return 0, err
	}
	return LevelIndexToIndex(li, d, n)
}

func validateConfig(d, n int) error {
	if d < 0 {
		return &ConfigError{D: d, N: n, Reason: "d must be >= 0"}
	}
	if n < 0 {
		return &ConfigError{D: d, N: n, Reason: "n must be >= 0"}
	}
	if size := gridSize(d, n); size < 0 {
		return &ConfigError{D: d, N: n, Reason: "size(d,n) overflows the platform integer"}
	}
	return nil
}
