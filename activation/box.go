// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package activation

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Box implements the soft box-inequality activation of spec.md §4.2: zero
// contribution inside [Lower, Upper], a one-sided quadratic penalty outside.
// Either bound may be +-Inf to disable that side. Beta is accepted and
// validated (>= 0) for parity with the smoothing knob of the original
// model, but—per spec.md §4.2's literal formula, which is already C1 at the
// bounds without it—does not alter value/gradient/Hessian; see DESIGN.md.
type Box struct {
	Lower, Upper []float64
	Beta         float64
}

// NewBox builds a box-inequality activation; panics if a component has
// Lower > Upper or Beta < 0 (construction-time invariant, spec.md §7).
func NewBox(lower, upper []float64, beta float64) *Box {
	if len(lower) != len(upper) {
		chk.Panic("Box: lower/upper size mismatch (%d vs %d)", len(lower), len(upper))
	}
	if beta < 0 {
		chk.Panic("Box: beta=%g must be >= 0", beta)
	}
	for i := range lower {
		if lower[i] > upper[i] {
			chk.Panic("Box: lower[%d]=%g > upper[%d]=%g", i, lower[i], i, upper[i])
		}
	}
	return &Box{
		Lower: append([]float64(nil), lower...),
		Upper: append([]float64(nil), upper...),
		Beta:  beta,
	}
}

func (a *Box) NR() int { return len(a.Lower) }

func (a *Box) Calc(r []float64) float64 {
	var sum float64
	for i, ri := range r {
		switch {
		case ri > a.Upper[i]:
			d := ri - a.Upper[i]
			sum += 0.5 * d * d
		case ri < a.Lower[i]:
			d := a.Lower[i] - ri
			sum += 0.5 * d * d
		}
	}
	return sum
}

func (a *Box) CalcDiff(r []float64) (ar []float64, arr [][]float64) {
	n := len(r)
	ar = make([]float64, n)
	arr = la.MatAlloc(n, n)
	for i, ri := range r {
		switch {
		case !math.IsInf(a.Upper[i], 1) && ri > a.Upper[i]:
			ar[i] = ri - a.Upper[i]
			arr[i][i] = 1
		case !math.IsInf(a.Lower[i], -1) && ri < a.Lower[i]:
			ar[i] = -(a.Lower[i] - ri)
			arr[i][i] = 1
		}
	}
	return
}
