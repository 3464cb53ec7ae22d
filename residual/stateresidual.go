// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package residual

import (
	"github.com/cpmech/ddp/dynamics"
	"github.com/cpmech/ddp/state"
)

// StateResidual is the state-regularization cost of spec.md §4.3:
// r = diff(xref, x), Rx = Jdiff(xref, x, second), Ru = 0.
type StateResidual struct {
	S    state.State
	Xref []float64
	nu   int
}

// NewStateResidual builds a state-regularization residual against xref; nu
// is the control size (needed only to size the zero Ru block).
func NewStateResidual(s state.State, xref []float64, nu int) *StateResidual {
	return &StateResidual{S: s, Xref: append([]float64(nil), xref...), nu: nu}
}

func (r *StateResidual) NR() int  { return r.S.NDX() }
func (r *StateResidual) NDX() int { return r.S.NDX() }
func (r *StateResidual) NU() int  { return r.nu }

func (r *StateResidual) Calc(x, u []float64) []float64 {
	return r.S.Diff(r.Xref, x)
}

func (r *StateResidual) CalcDiff(x, u []float64) (res []float64, Rx, Ru [][]float64) {
	res = r.Calc(x, u)
	_, J1 := r.S.JDiff(r.Xref, x, dynamics.ArgSecond)
	rows, cols := J1.Dims()
	Rx = denseToMat(rows, cols, J1.At)
	Ru = zeroMat(r.NR(), r.nu)
	return
}
