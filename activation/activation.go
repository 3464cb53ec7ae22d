// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package activation implements the scalar-valued functions applied to a
// cost residual (spec.md §4.2): value, gradient and Hessian w.r.t. the
// residual.
package activation

// Activation maps a residual r to a scalar cost contribution.
type Activation interface {
	NR() int
	// Calc returns a = activation(r).
	Calc(r []float64) float64
	// CalcDiff returns ar = da/dr and arr = d2a/dr2.
	CalcDiff(r []float64) (ar []float64, arr [][]float64)
}
