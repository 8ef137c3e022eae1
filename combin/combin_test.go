// Copyright ©2026 The fastsg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package combin

import "testing"

var binomialTests = []struct {
	n, k int
	ans  int64
}{
	{0, 0, 1},
	{5, 0, 1},
	{5, 1, 5},
	{5, 2, 10},
	{5, 3, 10},
	{5, 4, 5},
	{5, 5, 1},

	{6, 0, 1},
	{6, 1, 6},
	{6, 2, 15},
	{6, 3, 20},
	{6, 4, 15},
	{6, 5, 6},
	{6, 6, 1},

	{20, 0, 1},
	{20, 1, 20},
	{20, 2, 190},
	{20, 3, 1140},
	{20, 4, 4845},
	{20, 5, 15504},
	{20, 6, 38760},
	{20, 7, 77520},
	{20, 8, 125970},
	{20, 9, 167960},
	{20, 10, 184756},
	{20, 11, 167960},
	{20, 12, 125970},
	{20, 13, 77520},
	{20, 14, 38760},
	{20, 15, 15504},
	{20, 16, 4845},
	{20, 17, 1140},
	{20, 18, 190},
	{20, 19, 20},
	{20, 20, 1},
}

func TestBinomial(t *testing.T) {
	for cas, test := range binomialTests {
		ans := Binomial(test.n, test.k)
		if ans != test.ans {
			t.Errorf("Case %v: Binomial mismatch. Got %v, want %v.", cas, ans, test.ans)
		}
	}
}

func TestBinomialPanics(t *testing.T) {
	for _, test := range []struct {
		n, k int
	}{
		{-1, 0},
		{5, -1},
		{3, 4},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Binomial(%v, %v) did not panic", test.n, test.k)
				}
			}()
			Binomial(test.n, test.k)
		}()
	}
}

// zerobTests are zero-boundary sizes for small (d, n), cross-checked by
// bruteZeroBoundarySize below.
var zerobTests = []struct {
	d, n int
	ans  int64
}{
	{0, 0, 1},
	{0, 5, 1},
	{1, 0, 0},
	{1, 1, 1},
	{1, 2, 3},
	{1, 3, 7},
	{2, 0, 0},
	{2, 1, 1},
	{2, 2, 5},
	{2, 3, 17},
	{3, 1, 1},
	{3, 2, 7},
	{3, 3, 31},
}

func TestZeroBoundarySize(t *testing.T) {
	for cas, test := range zerobTests {
		ans := ZeroBoundarySize(test.d, test.n)
		if ans != test.ans {
			t.Errorf("Case %v: ZeroBoundarySize(%v, %v) = %v, want %v.", cas, test.d, test.n, ans, test.ans)
		}
	}
}

// bruteZeroBoundarySize counts grid points by exhaustive recursion over
// level vectors (l_0,...,l_{d-1}) with l_j >= 0 and sum(l) < n: each such
// vector contributes 2^{l_0}·...·2^{l_{d-1}} distinct index choices. This
// cross-checks ZeroBoundarySize independently of the closed-form recurrence
// it implements.
func bruteZeroBoundarySize(d, n int) int64 {
	if d == 0 {
		return 1
	}
	var total int64
	var rec func(dim, budget int, product int64)
	rec = func(dim, budget int, product int64) {
		if dim == d {
			total += product
			return
		}
		for l := 0; l < budget; l++ {
			rec(dim+1, budget-l, product*(1<<uint(l)))
		}
	}
	rec(0, n, 1)
	return total
}

func TestZeroBoundarySizeMatchesBruteForce(t *testing.T) {
	for d := 0; d <= 5; d++ {
		for n := 0; n <= 6; n++ {
			got := ZeroBoundarySize(d, n)
			want := bruteZeroBoundarySize(d, n)
			if got != want {
				t.Errorf("ZeroBoundarySize(%d, %d) = %d, want %d (brute force)", d, n, got, want)
			}
		}
	}
}
