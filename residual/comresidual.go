// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package residual

import (
	"github.com/cpmech/ddp/dynamics"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// CoMPosition is the center-of-mass cost of spec.md §4.3: r = com(q) - c*,
// Rx[:, :nv] = J_com(q). CenterOfMass/JacobianCenterOfMass may return 2 or
// 3 rows depending on the model (PlanarArm returns 2, confined to its
// plane); the residual embeds whatever it gets into a canonical nr-vector
// matching the dimension the model actually reports, rather than padding
// to 3 unconditionally, since there is no sensible "out of plane" axis to
// invent for a planar model.
type CoMPosition struct {
	RB    dynamics.RigidBody
	Cstar []float64
	nq    int
	nv    int
	ndx   int
	nu    int
}

func NewCoMPosition(rb dynamics.RigidBody, cstar []float64, ndx, nu int) *CoMPosition {
	return &CoMPosition{RB: rb, Cstar: append([]float64(nil), cstar...), nq: rb.NQ(), nv: rb.NV(), ndx: ndx, nu: nu}
}

func (r *CoMPosition) NR() int  { return len(r.Cstar) }
func (r *CoMPosition) NDX() int { return r.ndx }
func (r *CoMPosition) NU() int  { return r.nu }

func (r *CoMPosition) currentQ(x []float64) []float64 {
	if len(x) < r.nq {
		chk.Panic("CoMPosition: state vector too short (%d < %d)", len(x), r.nq)
	}
	return x[:r.nq]
}

func (r *CoMPosition) Calc(x, u []float64) []float64 {
	q := r.currentQ(x)
	c := r.RB.CenterOfMass(q)
	n := len(r.Cstar)
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		res[i] = c[i] - r.Cstar[i]
	}
	return res
}

func (r *CoMPosition) CalcDiff(x, u []float64) (res []float64, Rx, Ru [][]float64) {
	res = r.Calc(x, u)
	q := r.currentQ(x)
	J := r.RB.JacobianCenterOfMass(q)
	rows, cols := J.Dims()
	Rx = la.MatAlloc(rows, r.ndx)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			Rx[i][j] = J.At(i, j)
		}
	}
	Ru = zeroMat(rows, r.nu)
	return
}
