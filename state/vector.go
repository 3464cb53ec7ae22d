// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"math/rand"

	"github.com/cpmech/ddp/dynamics"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Vector is the flat Euclidean state manifold: diff/integrate reduce to
// vector subtraction/addition and every Jacobian is ±I.
type Vector struct {
	N   int
	rng *rand.Rand
}

// NewVector builds an n-dimensional Euclidean state.
func NewVector(n int) *Vector {
	return &Vector{N: n, rng: rand.New(rand.NewSource(1))}
}

func (v *Vector) NX() int  { return v.N }
func (v *Vector) NDX() int { return v.N }

func (v *Vector) Zero() []float64 { return make([]float64, v.N) }

func (v *Vector) Rand() []float64 {
	x := make([]float64, v.N)
	for i := range x {
		x[i] = v.rng.NormFloat64()
	}
	return x
}

func (v *Vector) Diff(x0, x1 []float64) []float64 {
	dx := make([]float64, v.N)
	floats.SubTo(dx, x1, x0)
	return dx
}

func (v *Vector) Integrate(x, dx []float64) []float64 {
	out := make([]float64, v.N)
	floats.AddTo(out, x, dx)
	return out
}

func (v *Vector) JDiff(x0, x1 []float64, which dynamics.JacobianArg) (J0, J1 *mat.Dense) {
	if which == dynamics.ArgFirst || which == dynamics.ArgBoth {
		J0 = negIdentity(v.N)
	}
	if which == dynamics.ArgSecond || which == dynamics.ArgBoth {
		J1 = identity(v.N)
	}
	return
}

func (v *Vector) JIntegrate(x, dx []float64, which dynamics.JacobianArg) (J0, J1 *mat.Dense) {
	if which == dynamics.ArgFirst || which == dynamics.ArgBoth {
		J0 = identity(v.N)
	}
	if which == dynamics.ArgSecond || which == dynamics.ArgBoth {
		J1 = identity(v.N)
	}
	return
}
