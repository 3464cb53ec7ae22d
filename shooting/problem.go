// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shooting implements the multiple-shooting problem assembly of
// spec.md §4.7: a chain of running action models plus a terminal model,
// evaluated and differentiated knot by knot.
package shooting

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ddp/action"
)

// Knot holds the per-knot quantities calc/calcDiff populate: the predicted
// next state, the running cost, the multiple-shooting gap (nonzero only
// when the caller's xs[k+1] disagrees with the model's own prediction) and
// the discrete Jacobians/cost derivatives from CalcDiff.
type Knot struct {
	Xnext []float64
	Cost  float64
	Gap   []float64

	Fx, Fu        [][]float64
	Lx, Lu        []float64
	Lxx, Lxu, Luu [][]float64
}

// ShootingProblem assembles T running models plus one terminal model over a
// shared initial state x0.
type ShootingProblem struct {
	X0       []float64
	Running  []action.ActionModel
	Terminal action.ActionModel

	Knots        []Knot
	TerminalCost float64
	TerminalLx   []float64
	TerminalLxx  [][]float64
	TotalCost    float64
}

// NewShootingProblem builds a shooting problem with T running knots.
func NewShootingProblem(x0 []float64, running []action.ActionModel, terminal action.ActionModel) *ShootingProblem {
	if len(running) == 0 {
		chk.Panic("ShootingProblem: must have at least one running model")
	}
	return &ShootingProblem{
		X0:       append([]float64(nil), x0...),
		Running:  running,
		Terminal: terminal,
		Knots:    make([]Knot, len(running)),
	}
}

func (p *ShootingProblem) T() int { return len(p.Running) }

// Calc evaluates every running model's xnext/cost and the terminal cost,
// accumulating the total over the trajectory (xs, us); xs must have T+1
// entries, us must have T entries. The multiple-shooting gap at knot k is
// diff(xs[k+1], xnext_k): nonzero whenever the caller's guessed xs[k+1]
// disagrees with the model's own prediction (spec.md §4.7).
func (p *ShootingProblem) Calc(xs [][]float64, us [][]float64) float64 {
	p.checkSizes(xs, us)
	p.TotalCost = 0
	for k, m := range p.Running {
		xnext, l := m.Calc(xs[k], us[k])
		p.Knots[k].Xnext = xnext
		p.Knots[k].Cost = l
		p.Knots[k].Gap = m.St().Diff(xs[k+1], xnext)
		p.TotalCost += l
	}
	_, lt := p.Terminal.Calc(xs[len(xs)-1], nil)
	p.TerminalCost = lt
	p.TotalCost += lt
	return p.TotalCost
}

// CalcDiff does everything Calc does, plus populates every knot's discrete
// Jacobians and cost derivatives.
func (p *ShootingProblem) CalcDiff(xs [][]float64, us [][]float64) float64 {
	p.checkSizes(xs, us)
	p.TotalCost = 0
	for k, m := range p.Running {
		Fx, Fu, Lx, Lu, Lxx, Lxu, Luu := m.CalcDiff(xs[k], us[k])
		xnext, l := m.Calc(xs[k], us[k])
		p.Knots[k] = Knot{
			Xnext: xnext,
			Cost:  l,
			Gap:   m.St().Diff(xs[k+1], xnext),
			Fx:    Fx, Fu: Fu,
			Lx: Lx, Lu: Lu,
			Lxx: Lxx, Lxu: Lxu, Luu: Luu,
		}
		p.TotalCost += l
	}
	_, _, Lxt, _, Lxxt, _, _ := p.Terminal.CalcDiff(xs[len(xs)-1], nil)
	_, lt := p.Terminal.Calc(xs[len(xs)-1], nil)
	p.TerminalCost = lt
	p.TotalCost += lt
	p.TerminalLx = Lxt
	p.TerminalLxx = Lxxt
	return p.TotalCost
}

// QuasiStatic returns the k-th running model's per-model initial-control
// hint at x (spec.md §4.7); defaults to zero unless the model overrides it.
func (p *ShootingProblem) QuasiStatic(k int, x []float64) []float64 {
	return p.Running[k].QuasiStatic(x)
}

func (p *ShootingProblem) checkSizes(xs, us [][]float64) {
	if len(xs) != len(p.Running)+1 {
		chk.Panic("ShootingProblem: xs has %d entries, want %d", len(xs), len(p.Running)+1)
	}
	if len(us) != len(p.Running) {
		chk.Panic("ShootingProblem: us has %d entries, want %d", len(us), len(p.Running))
	}
}
