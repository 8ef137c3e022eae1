// Copyright ©2026 The fastsg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zb implements the zero-boundary sparse-grid bijection: the
// linearisation of points (l_0,...,l_{d-1}), i_j in [0, 2^l_j), subject to
// sum(l) < n. It is internal machinery for the Converter in the parent
// package, never exposed as a public operation.
package zb

import "github.com/afm/fastsg/combin"

// ToIndex returns the linear index of the zero-boundary grid point
// (levels, indices), both of length pd >= 1: a mixed-radix flat index
// over the indices, offset by a stars-and-bars composition rank and a
// running total-level block size.
func ToIndex(levels, indices []int) int64 {
	pd := len(levels)

	index1 := int64(indices[0])
	for i := 1; i < pd; i++ {
		index1 = (index1 << uint(levels[i])) + int64(indices[i])
	}

	sum := 0
	var index2 int64
	for i := 0; i < pd-1; i++ {
		sum += levels[i]
		if sum > 0 {
			index2 += combin.Binomial(i+sum, sum-1)
		}
	}
	sum += levels[pd-1]
	index2 <<= uint(sum)

	var index3 int64
	pow := int64(1)
	for i := 0; i < sum; i++ {
		index3 += pow * combin.Binomial(pd-1+i, i)
		pow *= 2
	}

	return index1 + index2 + index3
}

// FromIndex inverts ToIndex: given a linear index in [0, ZeroBoundarySize(pd,n))
// and the dimensionality pd, returns the levels and indices vectors.
func FromIndex(index int64, pd int) (levels, indices []int) {
	levels = make([]int, pd)
	indices = make([]int, pd)

	f := int64(1)
	isum := int64(0)
	i := 0
	for index >= isum+combin.Binomial(pd-1+i, i)*f {
		isum += combin.Binomial(pd-1+i, i) * f
		f *= 2
		i++
	}

	sum := i
	index -= isum
	rest := index % f
	index /= f

	for i := pd - 2; i >= 0; i-- {
		isum := int64(0)
		j := 0
		for index >= isum+combin.Binomial(i+j, j) {
			isum += combin.Binomial(i+j, j)
			j++
		}
		level := sum - j
		sum = j
		fLevel := int64(1) << uint(level)
		dindex := rest % fLevel
		rest /= fLevel
		levels[i+1] = level
		indices[i+1] = int(dindex)
		index -= isum
	}

	level := sum
	fLevel := int64(1) << uint(level)
	dindex := rest % fLevel
	levels[0] = level
	indices[0] = int(dindex)

	return levels, indices
}
