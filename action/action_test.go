// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ddp/cost"
	"github.com/cpmech/ddp/dynamics"
)

func Test_lqrdam01(tst *testing.T) {

	chk.PrintTitle("lqrdam01: a = A.v + B.q + C.u + d")

	nv, nu := 2, 2
	A := [][]float64{{1, 0}, {0, 1}}
	B := [][]float64{{-1, 0}, {0, -1}}
	C := [][]float64{{2, 0}, {0, 2}}
	d := []float64{0.1, -0.1}

	costs := cost.NewCostModelSum(2*nv, nu)
	dam := NewLQRDAM(nv, nu, A, B, C, d, costs)

	x := []float64{1, 2, 3, 4} // q=(1,2), v=(3,4)
	u := []float64{0.5, -0.5}
	v, a, _ := dam.Calc(x, u)
	chk.Array(tst, "v", 1e-14, v, []float64{3, 4})
	chk.Array(tst, "a", 1e-14, a, []float64{
		-1*1 + 1*3 + 2*0.5 + 0.1,
		-1*2 + 1*4 + 2*-0.5 - 0.1,
	})

	Fx, Fu := dam.CalcDiff(x, u)
	chk.Matrix(tst, "Fx", 1e-14, Fx, [][]float64{{-1, 0, 1, 0}, {0, -1, 0, 1}})
	chk.Matrix(tst, "Fu", 1e-14, Fu, [][]float64{{2, 0}, {0, 2}})
}

func Test_freefwddam_armature_aba_panics(tst *testing.T) {

	chk.PrintTitle("freefwddam_armature_aba_panics: armature and ABA are mutually exclusive")

	defer func() {
		if r := recover(); r == nil {
			tst.Fatalf("expected a panic when combining armature with ABA")
		}
	}()

	arm := dynamics.NewPlanarArm(2, 1.0, 1.0)
	costs := cost.NewCostModelSum(4, 2)
	NewFreeFwdDynamicsDAM(arm, costs, 2, true, []float64{0.1, 0.1})
}
