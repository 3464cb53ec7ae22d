// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shooting

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ddp/action"
	"github.com/cpmech/ddp/activation"
	"github.com/cpmech/ddp/cost"
	"github.com/cpmech/ddp/residual"
	"github.com/cpmech/ddp/state"
)

// buildLQRChain assembles a single-axis decoupled LQR chain, the same
// a=-k.q+u style model used across the package's other tests.
func buildLQRChain(nKnots int) (*ShootingProblem, [][]float64, [][]float64) {
	nv, nu := 1, 1
	dt := 0.1
	A := [][]float64{{-1}}
	B := [][]float64{{-2}}
	C := [][]float64{{1}}
	d := []float64{0}

	ndx := 2 * nv
	st := state.NewVector(ndx)

	buildRunning := func() action.ActionModel {
		costs := cost.NewCostModelSum(ndx, nu)
		xreg := residual.NewStateResidual(st, make([]float64, ndx), nu)
		costs.AddCost("xReg", xreg, activation.NewQuadratic(ndx), 1.0)
		ureg := residual.NewControlResidual(make([]float64, nu), ndx)
		costs.AddCost("uReg", ureg, activation.NewQuadratic(nu), 0.1)
		dam := action.NewLQRDAM(nv, nu, A, B, C, d, costs)
		return action.NewIntegratedActionModel(dam, dt)
	}

	running := make([]action.ActionModel, nKnots)
	for k := range running {
		running[k] = buildRunning()
	}

	termCosts := cost.NewCostModelSum(ndx, 0)
	termReg := residual.NewStateResidual(st, make([]float64, ndx), 0)
	termCosts.AddCost("xReg", termReg, activation.NewQuadratic(ndx), 5.0)
	terminal := action.NewTerminalActionModel(st, termCosts)

	x0 := []float64{1, 0}
	prob := NewShootingProblem(x0, running, terminal)

	xs := make([][]float64, nKnots+1)
	us := make([][]float64, nKnots)
	xs[0] = append([]float64(nil), x0...)
	for k := 0; k < nKnots; k++ {
		us[k] = make([]float64, nu)
		xnext, _ := running[k].Calc(xs[k], us[k])
		xs[k+1] = xnext
	}
	return prob, xs, us
}

func Test_shooting_gaps_zero_on_rollout(tst *testing.T) {

	chk.PrintTitle("shooting_gaps_zero_on_rollout: a feasible guess has zero gaps")

	prob, xs, us := buildLQRChain(5)
	prob.Calc(xs, us)
	for k, kn := range prob.Knots {
		chk.Array(tst, "gap", 1e-12, kn.Gap, []float64{0, 0})
		_ = k
	}
}

func Test_shooting_gap_nonzero_on_mismatch(tst *testing.T) {

	chk.PrintTitle("shooting_gap_nonzero_on_mismatch: perturbing xs[k+1] opens a gap")

	prob, xs, us := buildLQRChain(3)
	xs[1][0] += 0.5
	prob.Calc(xs, us)
	if prob.Knots[0].Gap[0] == 0 {
		tst.Fatalf("expected a nonzero gap after perturbing xs[1]")
	}
}

func Test_shooting_calc_calcdiff_agree_on_cost(tst *testing.T) {

	chk.PrintTitle("shooting_calc_calcdiff_agree_on_cost")

	prob, xs, us := buildLQRChain(4)
	cA := prob.Calc(xs, us)
	cB := prob.CalcDiff(xs, us)
	chk.Scalar(tst, "total cost", 1e-12, cA, cB)
}

func Test_shooting_quasistatic_defaults_to_zero(tst *testing.T) {

	chk.PrintTitle("shooting_quasistatic_defaults_to_zero")

	prob, _, _ := buildLQRChain(2)
	u := prob.QuasiStatic(0, []float64{1, 0})
	chk.Array(tst, "u", 1e-12, u, []float64{0})
}

func Test_shooting_panics_on_empty_running(tst *testing.T) {

	chk.PrintTitle("shooting_panics_on_empty_running")

	defer func() {
		if r := recover(); r == nil {
			tst.Fatalf("expected a panic with zero running models")
		}
	}()
	NewShootingProblem([]float64{0}, nil, nil)
}
