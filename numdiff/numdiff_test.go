// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numdiff

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ddp/residual"
	"github.com/cpmech/ddp/state"
)

// Test_residualjacobians_stateresidual checks ResidualJacobians (backed by
// gosl/num.DerivCen) against StateResidual's closed-form Rx = I, Ru = 0.
// A frame-based residual is not a valid fixture here: its Calc reads the
// rigid-body model's cached kinematics, which only a host action model
// (not this residual-level shim) is responsible for refreshing per SPEC_FULL.md
// §9's kinematic freshness policy — see action.Test_iam_consistency_with_numdiff
// for the FD cross-check at that level instead.
func Test_residualjacobians_stateresidual(tst *testing.T) {

	chk.PrintTitle("residualjacobians_stateresidual: num.DerivCen matches Rx=I, Ru=0")

	st := state.NewVector(3)
	xref := []float64{0.2, -0.1, 0.4}
	r := residual.NewStateResidual(st, xref, 2)

	x := []float64{1, 2, 3}
	u := []float64{0.1, -0.2}

	Rx, Ru := ResidualJacobians(r, st, x, u, false)

	chk.Matrix(tst, "Rx", 1e-5, Rx, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	for _, row := range Ru {
		for _, v := range row {
			chk.Scalar(tst, "Ru", 1e-5, v, 0)
		}
	}
}
