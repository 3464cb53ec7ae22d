// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package activation

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// WeightedQuadratic implements a = 1/2 sum wi ri^2, ar = w ⊙ r, arr = diag(w).
type WeightedQuadratic struct {
	W []float64
}

// NewWeightedQuadratic builds a weighted-quadratic activation; every weight
// must be non-negative (spec.md §4.2).
func NewWeightedQuadratic(w []float64) *WeightedQuadratic {
	for i, wi := range w {
		if wi < 0 {
			chk.Panic("WeightedQuadratic: weight[%d]=%g must be >= 0", i, wi)
		}
	}
	return &WeightedQuadratic{W: append([]float64(nil), w...)}
}

// NewQuadratic builds an unweighted (w=1) quadratic activation of size nr.
func NewQuadratic(nr int) *WeightedQuadratic {
	w := make([]float64, nr)
	for i := range w {
		w[i] = 1
	}
	return &WeightedQuadratic{W: w}
}

func (a *WeightedQuadratic) NR() int { return len(a.W) }

func (a *WeightedQuadratic) Calc(r []float64) float64 {
	var sum float64
	for i, ri := range r {
		sum += a.W[i] * ri * ri
	}
	return 0.5 * sum
}

func (a *WeightedQuadratic) CalcDiff(r []float64) (ar []float64, arr [][]float64) {
	n := len(r)
	ar = make([]float64, n)
	arr = la.MatAlloc(n, n)
	for i, ri := range r {
		ar[i] = a.W[i] * ri
		arr[i][i] = a.W[i]
	}
	return
}
