// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action_test

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ddp/action"
	"github.com/cpmech/ddp/activation"
	"github.com/cpmech/ddp/cost"
	"github.com/cpmech/ddp/dynamics"
	"github.com/cpmech/ddp/numdiff"
	"github.com/cpmech/ddp/residual"
	"github.com/cpmech/ddp/state"
)

func buildArmIAM() (*action.IntegratedActionModel, *state.Composite) {
	arm := dynamics.NewPlanarArm(2, 1.0, 1.0)
	st := state.NewComposite(arm)
	ndx := st.NDX()

	costs := cost.NewCostModelSum(ndx, 2)
	xreg := residual.NewStateResidual(st, st.Zero(), 2)
	costs.AddCost("xReg", xreg, activation.NewQuadratic(ndx), 1e-2)
	ureg := residual.NewControlResidual([]float64{0, 0}, ndx)
	costs.AddCost("uReg", ureg, activation.NewQuadratic(2), 1e-2)

	dam := action.NewFreeFwdDynamicsDAM(arm, costs, 2, false, nil)
	iam := action.NewIntegratedActionModel(dam, 1e-2)
	return iam, st
}

func Test_iam_consistency_with_numdiff(tst *testing.T) {

	chk.PrintTitle("iam_consistency_with_numdiff: Fx/Fu/Lx/Lu match a FD shim")

	iam, st := buildArmIAM()
	nd := numdiff.NewActionModelND(iam)

	x := st.Rand()
	u := []float64{0.1, -0.2}

	Fx, Fu, Lx, Lu, _, _, _ := iam.CalcDiff(x, u)
	FxFD, FuFD, LxFD, LuFD, _, _, _ := nd.CalcDiff(x, u)

	tol := 10 * math.Sqrt(numdiff.DefaultH)
	for i := range Fx {
		for j := range Fx[i] {
			chk.Scalar(tst, "Fx", tol, Fx[i][j], FxFD[i][j])
		}
	}
	for i := range Fu {
		for j := range Fu[i] {
			chk.Scalar(tst, "Fu", tol, Fu[i][j], FuFD[i][j])
		}
	}
	chk.Array(tst, "Lx", tol, Lx, LxFD)
	chk.Array(tst, "Lu", tol, Lu, LuFD)
}
