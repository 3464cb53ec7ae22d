// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package residual

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ddp/dynamics"
	"github.com/cpmech/ddp/state"
)

func Test_stateresidual01(tst *testing.T) {

	chk.PrintTitle("stateresidual01")

	s := state.NewVector(3)
	xref := []float64{1, 2, 3}
	r := NewStateResidual(s, xref, 2)

	x := []float64{1, 2, 4}
	res := r.Calc(x, nil)
	chk.Array(tst, "r", 1e-14, res, []float64{0, 0, 1})

	_, Rx, Ru := r.CalcDiff(x, nil)
	chk.Matrix(tst, "Rx", 1e-14, Rx, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	for i := range Ru {
		for j := range Ru[i] {
			chk.Scalar(tst, "Ru", 1e-14, Ru[i][j], 0)
		}
	}
}

func Test_controlresidual01(tst *testing.T) {

	chk.PrintTitle("controlresidual01")

	uref := []float64{1, -1}
	r := NewControlResidual(uref, 4)
	u := []float64{3, 2}
	res := r.Calc(nil, u)
	chk.Array(tst, "r", 1e-14, res, []float64{2, 3})

	_, Rx, Ru := r.CalcDiff(nil, u)
	for _, row := range Rx {
		for _, v := range row {
			chk.Scalar(tst, "Rx", 1e-14, v, 0)
		}
	}
	chk.Matrix(tst, "Ru", 1e-14, Ru, [][]float64{{1, 0}, {0, 1}})
}

func Test_comresidual01(tst *testing.T) {

	chk.PrintTitle("comresidual01: FD cross-check against the analytic CoM Jacobian")

	arm := dynamics.NewPlanarArm(3, 1.0, 1.0)
	st := state.NewComposite(arm)
	ndx := st.NDX()

	cstar := []float64{0.3, -0.2}
	r := NewCoMPosition(arm, cstar, ndx, 0)

	x := st.Rand()
	q := x[:arm.NQ()]

	res := r.Calc(x, nil)
	com := arm.CenterOfMass(q)
	chk.Array(tst, "r", 1e-14, res, []float64{com[0] - cstar[0], com[1] - cstar[1]})

	_, Rx, _ := r.CalcDiff(x, nil)

	const h = 1e-6
	for j := 0; j < arm.NQ(); j++ {
		dx := make([]float64, ndx)
		dx[j] = h
		xp := st.Integrate(x, dx)
		rp := r.Calc(xp, nil)

		dx[j] = -h
		xm := st.Integrate(x, dx)
		rm := r.Calc(xm, nil)

		for i := 0; i < 2; i++ {
			fd := (rp[i] - rm[i]) / (2 * h)
			chk.Scalar(tst, "Rx vs FD", 1e-3, Rx[i][j], fd)
		}
	}
}

func Test_frametranslation01(tst *testing.T) {

	chk.PrintTitle("frametranslation01: FD cross-check against the analytic Jacobian")

	arm := dynamics.NewPlanarArm(3, 1.0, 1.0)
	st := state.NewComposite(arm)
	ndx := st.NDX()

	r := NewFrameTranslation(arm, "tip", []float64{0.5, 0.5, 0}, ndx, 3)

	x := st.Rand()
	q, v := x[:arm.NQ()], x[arm.NQ():]
	arm.ForwardKinematics(q, v)

	_, Rx, _ := r.CalcDiff(x, make([]float64, 3))

	const h = 1e-6
	for j := 0; j < arm.NQ(); j++ {
		dx := make([]float64, ndx)
		dx[j] = h
		xp := st.Integrate(x, dx)
		qp := xp[:arm.NQ()]
		arm.ForwardKinematics(qp, v)
		rp := r.Calc(xp, nil)

		dx[j] = -h
		xm := st.Integrate(x, dx)
		qm := xm[:arm.NQ()]
		arm.ForwardKinematics(qm, v)
		rm := r.Calc(xm, nil)

		arm.ForwardKinematics(q, v)
		for i := 0; i < 3; i++ {
			fd := (rp[i] - rm[i]) / (2 * h)
			chk.Scalar(tst, "Rx vs FD", 1e-3, Rx[i][j], fd)
		}
	}
}
