// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package scenarios builds the end-to-end test/benchmark problems of
// spec.md §8: a reaching task for an n-link planar arm, run in place of the
// talos_arm/pinocchio scenario the original spec names (the real
// URDF-driven rigid-body library is out of scope; see SPEC_FULL.md §8).
package scenarios

import (
	"github.com/cpmech/ddp/action"
	"github.com/cpmech/ddp/activation"
	"github.com/cpmech/ddp/cost"
	"github.com/cpmech/ddp/dynamics"
	"github.com/cpmech/ddp/residual"
	"github.com/cpmech/ddp/shooting"
	"github.com/cpmech/ddp/state"
)

// PlanarReachProblem bundles a shooting problem together with the initial
// guess a solver should start from.
type PlanarReachProblem struct {
	Problem *shooting.ShootingProblem
	Xs0     [][]float64
	Us0     [][]float64
}

// NewPlanarReachProblem builds an N-knot, dt-stepped reaching task for an
// n-link planar arm: drive the tip frame to target (px, py) while
// regularizing state and control, with an armature added to every joint
// (analogous to E1's gripperPose/xReg/uReg/armature setup).
func NewPlanarReachProblem(n int, dt float64, nKnots int, targetX, targetY float64) *PlanarReachProblem {
	arm := dynamics.NewPlanarArm(n, 1.0/float64(n), 1.0)
	st := state.NewComposite(arm)
	ndx := st.NDX()

	armature := make([]float64, n)
	for i := range armature {
		armature[i] = 0.1
	}

	q0 := arm.Neutral()
	for i := range q0 {
		q0[i] = 0.1
	}
	x0 := make([]float64, st.NX())
	copy(x0[:n], q0)

	buildRunning := func() action.ActionModel {
		costs := cost.NewCostModelSum(ndx, n)

		goal := dynamics.Identity()
		goal.P[0], goal.P[1] = targetX, targetY
		frameCost := residual.NewFrameTranslation(arm, "tip", goal.P[:], ndx, n)
		costs.AddCost("gripperPose", frameCost, activation.NewQuadratic(3), 1.0)

		xreg := residual.NewStateResidual(st, st.Zero(), n)
		costs.AddCost("xReg", xreg, activation.NewQuadratic(ndx), 1e-4)

		ureg := residual.NewControlResidual(make([]float64, n), ndx)
		costs.AddCost("uReg", ureg, activation.NewQuadratic(n), 1e-4)

		dam := action.NewFreeFwdDynamicsDAM(arm, costs, n, false, armature)
		return action.NewIntegratedActionModel(dam, dt)
	}

	running := make([]action.ActionModel, nKnots)
	for k := range running {
		running[k] = buildRunning()
	}

	termCosts := cost.NewCostModelSum(ndx, 0)
	goal := dynamics.Identity()
	goal.P[0], goal.P[1] = targetX, targetY
	termFrameCost := residual.NewFrameTranslation(arm, "tip", goal.P[:], ndx, 0)
	termCosts.AddCost("gripperPose", termFrameCost, activation.NewQuadratic(3), 1.0)
	terminal := action.NewTerminalActionModel(st, termCosts)

	prob := shooting.NewShootingProblem(x0, running, terminal)

	xs0 := make([][]float64, nKnots+1)
	us0 := make([][]float64, nKnots)
	xs0[0] = append([]float64(nil), x0...)
	for k := 0; k < nKnots; k++ {
		us0[k] = make([]float64, n)
		xnext, _ := running[k].Calc(xs0[k], us0[k])
		xs0[k+1] = xnext
	}

	return &PlanarReachProblem{Problem: prob, Xs0: xs0, Us0: us0}
}
