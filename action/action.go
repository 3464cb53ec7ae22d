// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package action implements the action-model layer of spec.md §4.5/§4.6:
// continuous-time differential action models (DAM) and their explicit-Euler
// discretization into the discrete action models (IAM) consumed by the
// shooting problem and the solver.
package action

import (
	"github.com/cpmech/ddp/cost"
	"github.com/cpmech/ddp/state"
)

// DifferentialActionModel is the continuous-time dynamics+cost model of
// spec.md §4.5: Calc evaluates the state derivative [v; a] and the running
// cost at (x, u); CalcDiff additionally populates the acceleration
// Jacobians Fx (nv x ndx) and Fu (nv x nu), and the cost sum's derivative
// buffers (reachable via Costs()).
type DifferentialActionModel interface {
	St() state.State
	NV() int
	NU() int
	Calc(x, u []float64) (v, a []float64, l float64)
	CalcDiff(x, u []float64) (Fx, Fu [][]float64)
	Costs() *cost.CostModelSum
	// QuasiStatic returns a per-model hint control at x; defaults to the
	// zero vector unless the concrete model overrides it (spec.md §4.7).
	QuasiStatic(x []float64) []float64
}

// ActionModel is the discrete-time interface consumed by the shooting
// problem (spec.md §4.7): Calc produces the next state and running cost,
// CalcDiff additionally populates the discrete Jacobians Fx, Fu (both
// ndx-rowed) and the cost derivatives Lx, Lu, Lxx, Lxu, Luu.
type ActionModel interface {
	St() state.State
	NU() int
	Calc(x, u []float64) (xnext []float64, l float64)
	CalcDiff(x, u []float64) (Fx, Fu [][]float64, Lx, Lu []float64, Lxx, Lxu, Luu [][]float64)
	QuasiStatic(x []float64) []float64
}
