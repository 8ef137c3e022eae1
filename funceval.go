// Copyright ©2026 The fastsg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastsg

// FunctionEval is the external contract a SparseGrid samples at
// construction time: given a coordinate vector of length d in [0,1]^d, it
// returns a scalar value. Implementations need not be stateful; a
// SparseGrid calls Eval exactly N(d,n) times, once per grid point, and
// never concurrently.
type FunctionEval interface {
	Eval(coord []float32) float32
}

// FunctionEvalFunc adapts a plain function to the FunctionEval interface.
type FunctionEvalFunc func(coord []float32) float32

// Eval calls f(coord).
func (f FunctionEvalFunc) Eval(coord []float32) float32 {
	return f(coord)
}
