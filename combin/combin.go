// Copyright ©2026 The fastsg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package combin provides the small combinatorial primitives the sparse
// grid addressing scheme is built on: binomial coefficients and the size
// of a zero-boundary sparse grid.
package combin

// Binomial returns the binomial coefficient C(n, k), the number of ways to
// choose k items from a set of n items, computed incrementally to avoid
// the overflow that a naive factorial-ratio implementation would incur.
//
// Binomial panics if n or k is negative, or if k > n.
func Binomial(n, k int) int64 {
	if n < 0 || k < 0 {
		panic("combin: negative input")
	}
	if k > n {
		panic("combin: k > n")
	}
	if k == 0 || k == n {
		return 1
	}
	if k > n-k {
		k = n - k
	}
	var c int64 = 1
	for i := 1; i <= k; i++ {
		c *= int64(n - k + i)
		c /= int64(i)
	}
	return c
}

// ZeroBoundarySize returns Z(d, n), the number of points in a d-dimensional,
// level-n zero-boundary sparse grid:
//
//	Z(0, n) = 1
//	Z(d, n) = Σ_{j=0}^{n-1} 2^j · C(d-1+j, j)   for d > 0
//
// ZeroBoundarySize panics if d or n is negative.
func ZeroBoundarySize(d, n int) int64 {
	if d < 0 || n < 0 {
		panic("combin: negative input")
	}
	if d == 0 {
		return 1
	}
	var size int64
	pow := int64(1)
	for j := 0; j < n; j++ {
		size += pow * Binomial(d-1+j, j)
		pow *= 2
	}
	return size
}
