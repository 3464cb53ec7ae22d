// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package residual

// ControlResidual is the control-regularization cost of spec.md §4.3:
// r = u - uref, Rx = 0, Ru = I.
type ControlResidual struct {
	Uref []float64
	ndx  int
}

// NewControlResidual builds a control-regularization residual against uref;
// ndx is the state tangent size (needed only to size the zero Rx block).
func NewControlResidual(uref []float64, ndx int) *ControlResidual {
	return &ControlResidual{Uref: append([]float64(nil), uref...), ndx: ndx}
}

func (r *ControlResidual) NR() int  { return len(r.Uref) }
func (r *ControlResidual) NDX() int { return r.ndx }
func (r *ControlResidual) NU() int  { return len(r.Uref) }

func (r *ControlResidual) Calc(x, u []float64) []float64 {
	n := len(r.Uref)
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		res[i] = u[i] - r.Uref[i]
	}
	return res
}

func (r *ControlResidual) CalcDiff(x, u []float64) (res []float64, Rx, Ru [][]float64) {
	res = r.Calc(x, u)
	n := len(r.Uref)
	Rx = zeroMat(n, r.ndx)
	Ru = zeroMat(n, n)
	for i := 0; i < n; i++ {
		Ru[i][i] = 1
	}
	return
}
