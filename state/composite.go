// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"math/rand"

	"github.com/cpmech/ddp/dynamics"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Composite is the Lie-group state of spec.md §4.1: a configuration factor
// q living on the manifold of an external RigidBody collaborator, composed
// with a velocity factor v in the associated Euclidean tangent space.
// x = [q; v], dx = [dq; dv], with dq in the tangent of q's manifold.
type Composite struct {
	RB  dynamics.RigidBody
	nq  int
	nv  int
	rng *rand.Rand
}

// NewComposite builds a composite state over rb.
func NewComposite(rb dynamics.RigidBody) *Composite {
	return &Composite{RB: rb, nq: rb.NQ(), nv: rb.NV(), rng: rand.New(rand.NewSource(3))}
}

func (c *Composite) NX() int  { return c.nq + c.nv }
func (c *Composite) NDX() int { return 2 * c.nv }

func (c *Composite) splitX(x []float64) (q, v []float64) {
	if len(x) != c.NX() {
		chk.Panic("Composite: state has wrong size %d (want %d)", len(x), c.NX())
	}
	return x[:c.nq], x[c.nq:]
}

func (c *Composite) splitDx(dx []float64) (dq, dv []float64) {
	if len(dx) != c.NDX() {
		chk.Panic("Composite: tangent has wrong size %d (want %d)", len(dx), c.NDX())
	}
	return dx[:c.nv], dx[c.nv:]
}

func (c *Composite) Zero() []float64 {
	x := make([]float64, c.NX())
	copy(x[:c.nq], c.RB.Neutral())
	return x
}

func (c *Composite) Rand() []float64 {
	x := make([]float64, c.NX())
	copy(x[:c.nq], c.RB.RandomConfiguration())
	for i := 0; i < c.nv; i++ {
		x[c.nq+i] = c.rng.NormFloat64()
	}
	return x
}

func (c *Composite) Diff(x0, x1 []float64) []float64 {
	q0, v0 := c.splitX(x0)
	q1, v1 := c.splitX(x1)
	dx := make([]float64, c.NDX())
	copy(dx[:c.nv], c.RB.Difference(q0, q1))
	floats.SubTo(dx[c.nv:], v1, v0)
	return dx
}

func (c *Composite) Integrate(x, dx []float64) []float64 {
	q, v := c.splitX(x)
	dq, dv := c.splitDx(dx)
	out := make([]float64, c.NX())
	copy(out[:c.nq], c.RB.Integrate(q, dq))
	floats.AddTo(out[c.nq:], v, dv)
	return out
}

func (c *Composite) JDiff(x0, x1 []float64, which dynamics.JacobianArg) (J0, J1 *mat.Dense) {
	q0, _ := c.splitX(x0)
	q1, _ := c.splitX(x1)
	Jq0, Jq1 := c.RB.JDifference(q0, q1)
	if which == dynamics.ArgFirst || which == dynamics.ArgBoth {
		J0 = blockDiag(Jq0, negIdentity(c.nv))
	}
	if which == dynamics.ArgSecond || which == dynamics.ArgBoth {
		J1 = blockDiag(Jq1, identity(c.nv))
	}
	return
}

func (c *Composite) JIntegrate(x, dx []float64, which dynamics.JacobianArg) (J0, J1 *mat.Dense) {
	q, _ := c.splitX(x)
	dq, _ := c.splitDx(dx)
	Jq, Jdq := c.RB.DIntegrate(q, dq)
	if which == dynamics.ArgFirst || which == dynamics.ArgBoth {
		J0 = blockDiag(Jq, identity(c.nv))
	}
	if which == dynamics.ArgSecond || which == dynamics.ArgBoth {
		J1 = blockDiag(Jdq, identity(c.nv))
	}
	return
}
