// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package state implements the state manifolds consumed by costs, action
// models and the DDP/FDDP solver: a flat vector space and a Lie-group
// composite (configuration on a manifold x velocity in a vector space).
package state

import (
	"github.com/cpmech/ddp/dynamics"
	"gonum.org/v1/gonum/mat"
)

// State is the manifold interface of spec.md §4.1. Every operation except
// Rand is pure; Rand advances the implementation's own random generator.
type State interface {
	NX() int  // ambient size
	NDX() int // tangent size, NDX <= NX

	Zero() []float64 // canonical reference state
	Rand() []float64 // sample; used only by tests

	// Diff returns dx such that Integrate(x0, dx) == x1.
	Diff(x0, x1 []float64) []float64
	Integrate(x, dx []float64) []float64

	// JDiff returns the Jacobians of Diff w.r.t. x0 and/or x1, selected by
	// which; the Jacobian not requested is returned as nil.
	JDiff(x0, x1 []float64, which dynamics.JacobianArg) (J0, J1 *mat.Dense)
	// JIntegrate returns the Jacobians of Integrate w.r.t. x and/or dx.
	JIntegrate(x, dx []float64, which dynamics.JacobianArg) (J0, J1 *mat.Dense)
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func negIdentity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, -1)
	}
	return m
}

func blockDiag(a, b *mat.Dense) *mat.Dense {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	out := mat.NewDense(ra+rb, ca+cb, nil)
	out.Slice(0, ra, 0, ca).(*mat.Dense).Copy(a)
	out.Slice(ra, ra+rb, ca, ca+cb).(*mat.Dense).Copy(b)
	return out
}
