// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package residual implements the residual-based cost catalog of spec.md
// §4.3: each entry produces r(x,u) and its Jacobians Rx, Ru, which the cost
// package composes with an activation to obtain l, Lx, Lu and the
// Gauss-Newton Hessians.
package residual

import (
	"github.com/cpmech/gosl/la"
)

// Residual is the interface consumed by cost.CostModelSum. Rx has shape
// nr x ndx, Ru has shape nr x nu; both follow gofem's la.MatAlloc
// row-major convention rather than gonum/mat, matching the small dense
// buffers the activation catalog already uses.
type Residual interface {
	NR() int
	NDX() int
	NU() int
	Calc(x, u []float64) (r []float64)
	CalcDiff(x, u []float64) (r []float64, Rx, Ru [][]float64)
}

// zeroMat returns an nr x nc matrix of zeros, or nil if either dimension is 0.
func zeroMat(nr, nc int) [][]float64 {
	if nr == 0 || nc == 0 {
		return nil
	}
	return la.MatAlloc(nr, nc)
}

// denseToMat copies a gonum-style row-major *mat.Dense-like accessor into
// an la.MatAlloc buffer. rows/cols must match the dimensions of the
// matrix behind at.
func denseToMat(rows, cols int, at func(i, j int) float64) [][]float64 {
	m := la.MatAlloc(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m[i][j] = at(i, j)
		}
	}
	return m
}
