// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package numdiff implements the finite-difference shims of spec.md §4.10,
// used only in tests to cross-check analytic Jacobians: given a model and
// its state, build the Fx/Fu Jacobians and the cost derivatives by
// evaluating calc at tangent-perturbed inputs.
package numdiff

import (
	"github.com/cpmech/ddp/action"
	"github.com/cpmech/ddp/cost"
	"github.com/cpmech/ddp/state"
)

// DefaultH is the default finite-difference perturbation size (spec.md
// §4.10).
const DefaultH = 1e-5

// ActionModelND wraps an action.ActionModel with a finite-difference
// CalcDiff; Calc is delegated unchanged.
type ActionModelND struct {
	M               action.ActionModel
	H               float64
	WithGaussApprox bool
	Costs           *cost.CostModelSum // not read by CalcDiff, nor is WithGaussApprox
}

// NewActionModelND builds a num-diff shim over m with the default step.
func NewActionModelND(m action.ActionModel) *ActionModelND {
	return &ActionModelND{M: m, H: DefaultH}
}

func (n *ActionModelND) St() state.State { return n.M.St() }
func (n *ActionModelND) NU() int         { return n.M.NU() }

func (n *ActionModelND) Calc(x, u []float64) ([]float64, float64) { return n.M.Calc(x, u) }

func (n *ActionModelND) QuasiStatic(x []float64) []float64 { return n.M.QuasiStatic(x) }

// CalcDiff builds Fx, Fu by perturbing x (in the tangent of St()) and u,
// and Lx, Lu, Lxx, Lxu, Luu by central-differencing the cost scalar twice.
// It does this whatever WithGaussApprox is set to: neither that flag nor
// n.Costs is read, and no Gauss-Newton variant is computed.
func (n *ActionModelND) CalcDiff(x, u []float64) (Fx, Fu [][]float64, Lx, Lu []float64, Lxx, Lxu, Luu [][]float64) {
	st := n.St()
	ndx := st.NDX()
	nu := n.NU()
	h := n.H
	_, l0 := n.M.Calc(x, u)

	Fx = make([][]float64, ndx)
	Lx = make([]float64, ndx)
	for j := 0; j < ndx; j++ {
		dxp := make([]float64, ndx)
		dxp[j] = h
		xp := st.Integrate(x, dxp)
		xnp, lp := n.M.Calc(xp, u)

		dxm := make([]float64, ndx)
		dxm[j] = -h
		xm := st.Integrate(x, dxm)
		xnm, lm := n.M.Calc(xm, u)

		col := st.Diff(xnm, xnp)
		for i := range col {
			col[i] /= 2 * h
			if Fx[i] == nil {
				Fx[i] = make([]float64, ndx)
			}
			Fx[i][j] = col[i]
		}
		Lx[j] = (lp - lm) / (2 * h)
	}

	Fu = make([][]float64, ndx)
	for i := range Fu {
		Fu[i] = make([]float64, nu)
	}
	Lu = make([]float64, nu)
	for j := 0; j < nu; j++ {
		up := append([]float64(nil), u...)
		up[j] += h
		xnp, lp := n.M.Calc(x, up)

		um := append([]float64(nil), u...)
		um[j] -= h
		xnm, lm := n.M.Calc(x, um)

		col := st.Diff(xnm, xnp)
		for i := range col {
			Fu[i][j] = col[i] / (2 * h)
		}
		Lu[j] = (lp - lm) / (2 * h)
	}
	_ = l0

	Lxx = hessianFD(func(xx, uu []float64) float64 { _, l := n.M.Calc(xx, uu); return l }, x, u, st, ndx, nu, h, true)
	Lxu = mixedHessianFD(func(xx, uu []float64) float64 { _, l := n.M.Calc(xx, uu); return l }, x, u, st, ndx, nu, h)
	Luu = hessianFD(func(xx, uu []float64) float64 { _, l := n.M.Calc(xx, uu); return l }, x, u, st, ndx, nu, h, false)
	return
}

// hessianFD central-differences the cost scalar twice w.r.t. either the
// state tangent (wrtX=true, returns ndx x ndx) or the control (wrtX=false,
// returns nu x nu).
func hessianFD(l func(x, u []float64) float64, x, u []float64, st state.State, ndx, nu int, h float64, wrtX bool) [][]float64 {
	n := nu
	if wrtX {
		n = ndx
	}
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	perturb := func(i int, s float64) (float64, []float64, []float64) {
		xx, uu := x, u
		if wrtX {
			dx := make([]float64, ndx)
			dx[i] = s
			xx = st.Integrate(x, dx)
		} else {
			uu = append([]float64(nil), u...)
			uu[i] += s
		}
		return l(xx, uu), xx, uu
	}
	l00 := l(x, u)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var v float64
			if i == j {
				lp, _, _ := perturb(i, h)
				lm, _, _ := perturb(i, -h)
				v = (lp - 2*l00 + lm) / (h * h)
			} else {
				lpp := secondOrderEval(l, x, u, st, ndx, wrtX, i, h, j, h)
				lpm := secondOrderEval(l, x, u, st, ndx, wrtX, i, h, j, -h)
				lmp := secondOrderEval(l, x, u, st, ndx, wrtX, i, -h, j, h)
				lmm := secondOrderEval(l, x, u, st, ndx, wrtX, i, -h, j, -h)
				v = (lpp - lpm - lmp + lmm) / (4 * h * h)
			}
			out[i][j] = v
			out[j][i] = v
		}
	}
	return out
}

func secondOrderEval(l func(x, u []float64) float64, x, u []float64, st state.State, ndx int, wrtX bool, i int, hi float64, j int, hj float64) float64 {
	if wrtX {
		dx := make([]float64, ndx)
		dx[i] += hi
		dx[j] += hj
		xx := st.Integrate(x, dx)
		return l(xx, u)
	}
	uu := append([]float64(nil), u...)
	uu[i] += hi
	uu[j] += hj
	return l(x, uu)
}

func mixedHessianFD(l func(x, u []float64) float64, x, u []float64, st state.State, ndx, nu int, h float64) [][]float64 {
	out := make([][]float64, ndx)
	for i := range out {
		out[i] = make([]float64, nu)
	}
	for i := 0; i < ndx; i++ {
		for j := 0; j < nu; j++ {
			dxp := make([]float64, ndx)
			dxp[i] = h
			upp := append([]float64(nil), u...)
			upp[j] += h
			lpp := l(st.Integrate(x, dxp), upp)

			upm := append([]float64(nil), u...)
			upm[j] -= h
			lpm := l(st.Integrate(x, dxp), upm)

			dxm := make([]float64, ndx)
			dxm[i] = -h
			ump := append([]float64(nil), u...)
			ump[j] += h
			lmp := l(st.Integrate(x, dxm), ump)

			umm := append([]float64(nil), u...)
			umm[j] -= h
			lmm := l(st.Integrate(x, dxm), umm)

			out[i][j] = (lpp - lpm - lmp + lmm) / (4 * h * h)
		}
	}
	return out
}
