// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/ddp/dynamics"
	"github.com/cpmech/ddp/state"
)

// IntegratedActionModel discretizes a DifferentialActionModel by explicit
// Euler over a fixed step Dt, per spec.md §4.6: xnext = integrate(x,
// [v.dt, a.dt]), l_disc = dt . l_cont, with the discrete Jacobians built
// from the state manifold's own Jintegrate and the DAM's Fx, Fu.
type IntegratedActionModel struct {
	D  DifferentialActionModel
	Dt float64
}

// NewIntegratedActionModel wraps d with a fixed step dt > 0.
func NewIntegratedActionModel(d DifferentialActionModel, dt float64) *IntegratedActionModel {
	if dt <= 0 {
		chk.Panic("IntegratedActionModel: dt=%g must be > 0", dt)
	}
	return &IntegratedActionModel{D: d, Dt: dt}
}

func (m *IntegratedActionModel) St() state.State { return m.D.St() }
func (m *IntegratedActionModel) NU() int         { return m.D.NU() }

func (m *IntegratedActionModel) QuasiStatic(x []float64) []float64 { return m.D.QuasiStatic(x) }

func (m *IntegratedActionModel) Calc(x, u []float64) (xnext []float64, l float64) {
	v, a, lc := m.D.Calc(x, u)
	nv := m.D.NV()
	dx := make([]float64, 2*nv)
	for i := 0; i < nv; i++ {
		dx[i] = v[i] * m.Dt
		dx[nv+i] = a[i] * m.Dt
	}
	xnext = m.St().Integrate(x, dx)
	l = m.Dt * lc
	return
}

// denseMul multiplies a *mat.Dense a by a plain row-major matrix b:
// out = a . b.
func denseMul(a *mat.Dense, b [][]float64) [][]float64 {
	ar, ac := a.Dims()
	bc := len(b[0])
	out := make([][]float64, ar)
	for i := 0; i < ar; i++ {
		out[i] = make([]float64, bc)
		for j := 0; j < bc; j++ {
			var s float64
			for k := 0; k < ac; k++ {
				s += a.At(i, k) * b[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}

func addPlain(a, b [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = make([]float64, len(a[i]))
		for j := range a[i] {
			out[i][j] = a[i][j] + b[i][j]
		}
	}
	return out
}

func scalePlain(a [][]float64, s float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = make([]float64, len(a[i]))
		for j := range a[i] {
			out[i][j] = a[i][j] * s
		}
	}
	return out
}

func (m *IntegratedActionModel) CalcDiff(x, u []float64) (Fx, Fu [][]float64, Lx, Lu []float64, Lxx, Lxu, Luu [][]float64) {
	Fxc, Fuc := m.D.CalcDiff(x, u)
	nv := m.D.NV()
	ndx := 2 * nv
	nu := m.D.NU()

	// Da = [0 I; Fx], ndx x ndx.
	Da := make([][]float64, ndx)
	for i := 0; i < nv; i++ {
		Da[i] = make([]float64, ndx)
		Da[i][nv+i] = 1
	}
	for i := 0; i < nv; i++ {
		Da[nv+i] = append([]float64(nil), Fxc[i]...)
	}

	// [0; Fu], ndx x nu.
	zFu := make([][]float64, ndx)
	for i := 0; i < nv; i++ {
		zFu[i] = make([]float64, nu)
	}
	for i := 0; i < nv; i++ {
		zFu[nv+i] = append([]float64(nil), Fuc[i]...)
	}

	v, a, _ := m.D.Calc(x, u)
	dx := make([]float64, ndx)
	for i := 0; i < nv; i++ {
		dx[i] = v[i] * m.Dt
		dx[nv+i] = a[i] * m.Dt
	}
	J0, J1 := m.St().JIntegrate(x, dx, dynamics.ArgBoth)

	Fx = addPlain(toPlain(J0), scalePlain(denseMul(J1, Da), m.Dt))
	Fu = denseMul(J1, scalePlain(zFu, m.Dt))

	costs := m.D.Costs()
	Lx = scaleVec(costs.Lx, m.Dt)
	Lu = scaleVec(costs.Lu, m.Dt)
	Lxx = scalePlain(costs.Lxx, m.Dt)
	Lxu = scalePlain(costs.Lxu, m.Dt)
	Luu = scalePlain(costs.Luu, m.Dt)
	return
}

func toPlain(a *mat.Dense) [][]float64 {
	r, c := a.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			out[i][j] = a.At(i, j)
		}
	}
	return out
}

func scaleVec(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * s
	}
	return out
}
