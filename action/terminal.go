// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"github.com/cpmech/ddp/cost"
	"github.com/cpmech/ddp/state"
)

// TerminalActionModel is a control-free ActionModel wrapping a cost sum
// evaluated at the final knot of a shooting problem (spec.md §4.7): it has
// no dynamics of its own (xnext == x) and NU() == 0.
type TerminalActionModel struct {
	St_    state.State
	Costs_ *cost.CostModelSum
}

// NewTerminalActionModel builds a terminal model over st whose cost is
// costs (already sized to st.NDX() and nu=0).
func NewTerminalActionModel(st state.State, costs *cost.CostModelSum) *TerminalActionModel {
	return &TerminalActionModel{St_: st, Costs_: costs}
}

func (t *TerminalActionModel) St() state.State { return t.St_ }
func (t *TerminalActionModel) NU() int         { return 0 }

func (t *TerminalActionModel) QuasiStatic(x []float64) []float64 { return nil }

// refreshKinematics updates the rigid-body kinematic cache at x when the
// state is a Composite, so frame and CoM costs read the final knot.
func (t *TerminalActionModel) refreshKinematics(x []float64) {
	if c, ok := t.St_.(*state.Composite); ok {
		nq := c.RB.NQ()
		c.RB.ForwardKinematics(x[:nq], x[nq:])
		c.RB.UpdateFramePlacements()
	}
}

func (t *TerminalActionModel) Calc(x, u []float64) (xnext []float64, l float64) {
	t.refreshKinematics(x)
	l = t.Costs_.Calc(x, nil)
	return append([]float64(nil), x...), l
}

func (t *TerminalActionModel) CalcDiff(x, u []float64) (Fx, Fu [][]float64, Lx, Lu []float64, Lxx, Lxu, Luu [][]float64) {
	t.refreshKinematics(x)
	t.Costs_.CalcDiff(x, nil)
	ndx := t.St_.NDX()
	Fx = make([][]float64, ndx)
	for i := 0; i < ndx; i++ {
		Fx[i] = make([]float64, ndx)
		Fx[i][i] = 1
	}
	Fu = nil
	Lx = t.Costs_.Lx
	Lu = nil
	Lxx = t.Costs_.Lxx
	Lxu = nil
	Luu = nil
	return
}
