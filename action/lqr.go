// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ddp/cost"
	"github.com/cpmech/ddp/state"
)

// LQRDAM is the linear-quadratic differential action model of spec.md
// §4.5: a = A.v + B.q + C.u + d, with quadratic costs. Used for regression
// and stress-testing the solver against a model whose Jacobians are
// constants, cached once at construction rather than recomputed per call.
type LQRDAM struct {
	St_    *state.Vector
	Costs_ *cost.CostModelSum
	nq, nv, nu int

	// Fx, Fu are the constant Jacobians cached at construction: Fx is
	// nv x 2nv ([B | A]), Fu is nv x nu (== C).
	Fx, Fu [][]float64
	d      []float64
}

// NewLQRDAM builds an LQR DAM with configuration size nq == nv (the
// degenerate Euclidean case spec.md's regression scenarios use); A, B, C
// are nv x nv, nv x nq and nv x nu respectively, d has length nv.
func NewLQRDAM(nv, nu int, A, B, C [][]float64, d []float64, costs *cost.CostModelSum) *LQRDAM {
	if len(A) != nv || len(B) != nv || len(C) != nv || len(d) != nv {
		chk.Panic("LQRDAM: A, B, C, d must all have nv=%d rows", nv)
	}
	Fx := make([][]float64, nv)
	for i := 0; i < nv; i++ {
		Fx[i] = make([]float64, 2*nv)
		copy(Fx[i][:nv], B[i])
		copy(Fx[i][nv:], A[i])
	}
	Fu := make([][]float64, nv)
	for i := 0; i < nv; i++ {
		Fu[i] = append([]float64(nil), C[i]...)
	}
	return &LQRDAM{
		St_:    state.NewVector(2 * nv),
		Costs_: costs,
		nq:     nv,
		nv:     nv,
		nu:     nu,
		Fx:     Fx,
		Fu:     Fu,
		d:      append([]float64(nil), d...),
	}
}

func (l *LQRDAM) St() state.State           { return l.St_ }
func (l *LQRDAM) NV() int                   { return l.nv }
func (l *LQRDAM) NU() int                   { return l.nu }
func (l *LQRDAM) Costs() *cost.CostModelSum { return l.Costs_ }

func (l *LQRDAM) QuasiStatic(x []float64) []float64 { return make([]float64, l.nu) }

func (l *LQRDAM) acceleration(x, u []float64) []float64 {
	a := make([]float64, l.nv)
	for i := 0; i < l.nv; i++ {
		s := l.d[i]
		for j := 0; j < 2*l.nv; j++ {
			s += l.Fx[i][j] * x[j]
		}
		for k := 0; k < l.nu; k++ {
			s += l.Fu[i][k] * u[k]
		}
		a[i] = s
	}
	return a
}

func (l *LQRDAM) Calc(x, u []float64) (v, a []float64, lcost float64) {
	v = append([]float64(nil), x[l.nv:]...)
	a = l.acceleration(x, u)
	lcost = l.Costs_.Calc(x, u)
	return
}

func (l *LQRDAM) CalcDiff(x, u []float64) (Fx, Fu [][]float64) {
	l.Costs_.CalcDiff(x, u)
	return l.Fx, l.Fu
}
