// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cost

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ddp/activation"
	"github.com/cpmech/ddp/residual"
	"github.com/cpmech/ddp/state"
)

func Test_costsum01(tst *testing.T) {

	chk.PrintTitle("costsum01: weighted sum of a state and control regularizer")

	s := state.NewVector(2)
	xreg := residual.NewStateResidual(s, []float64{0, 0}, 2)
	ureg := residual.NewControlResidual([]float64{0, 0}, 2)

	c := NewCostModelSum(2, 2)
	c.AddCost("xReg", xreg, activation.NewQuadratic(2), 2.0)
	c.AddCost("uReg", ureg, activation.NewQuadratic(2), 0.5)

	x := []float64{1, 2}
	u := []float64{3, 4}
	l := c.Calc(x, u)
	want := 2.0*0.5*(1+4) + 0.5*0.5*(9+16)
	chk.Scalar(tst, "l", 1e-12, l, want)

	c.CalcDiff(x, u)
	chk.Array(tst, "Lx", 1e-12, c.Lx, []float64{2 * 1, 2 * 2})
	chk.Array(tst, "Lu", 1e-12, c.Lu, []float64{0.5 * 3, 0.5 * 4})
	chk.Matrix(tst, "Lxx", 1e-12, c.Lxx, [][]float64{{2, 0}, {0, 2}})
	chk.Matrix(tst, "Luu", 1e-12, c.Luu, [][]float64{{0.5, 0}, {0, 0.5}})
	if c.NRStack != 4 {
		tst.Fatalf("NRStack should be 4, got %d", c.NRStack)
	}
}

func Test_costsum_duplicate_name_panics(tst *testing.T) {

	chk.PrintTitle("costsum_duplicate_name_panics")

	defer func() {
		if r := recover(); r == nil {
			tst.Fatalf("expected a panic on duplicate cost name")
		}
	}()

	s := state.NewVector(2)
	xreg := residual.NewStateResidual(s, []float64{0, 0}, 0)
	c := NewCostModelSum(2, 0)
	c.AddCost("xReg", xreg, activation.NewQuadratic(2), 1.0)
	c.AddCost("xReg", xreg, activation.NewQuadratic(2), 1.0)
}

func Test_costsum_nonpositive_weight_panics(tst *testing.T) {

	chk.PrintTitle("costsum_nonpositive_weight_panics")

	defer func() {
		if r := recover(); r == nil {
			tst.Fatalf("expected a panic on non-positive weight")
		}
	}()

	s := state.NewVector(2)
	xreg := residual.NewStateResidual(s, []float64{0, 0}, 0)
	c := NewCostModelSum(2, 0)
	c.AddCost("xReg", xreg, activation.NewQuadratic(2), 0)
}
