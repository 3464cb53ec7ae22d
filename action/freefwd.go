// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/ddp/cost"
	"github.com/cpmech/ddp/dynamics"
	"github.com/cpmech/ddp/state"
)

// FreeFwdDynamicsDAM is the free-forward-dynamics differential action model
// of spec.md §4.5: acceleration is obtained either by inverting the
// composite-rigid-body mass matrix (optionally with an added armature
// diagonal) or, when UseABA is set, directly via the articulated-body
// algorithm. The two paths are mutually exclusive: an armature term has no
// meaning under ABA, since the articulated-body recursion never forms M
// explicitly (spec.md's open question on ABA+armature, resolved as a
// construction-time precondition error; see DESIGN.md).
type FreeFwdDynamicsDAM struct {
	RB       dynamics.RigidBody
	St_      *state.Composite
	Costs_   *cost.CostModelSum
	Armature []float64 // nil disables; length nv
	UseABA   bool

	nq, nv, nu int
}

// NewFreeFwdDynamicsDAM builds a free-forward-dynamics DAM over rb. Passing
// a non-nil armature together with useABA = true panics.
func NewFreeFwdDynamicsDAM(rb dynamics.RigidBody, costs *cost.CostModelSum, nu int, useABA bool, armature []float64) *FreeFwdDynamicsDAM {
	if useABA && armature != nil {
		chk.Panic("FreeFwdDynamicsDAM: armature is incompatible with the ABA path")
	}
	if armature != nil && len(armature) != rb.NV() {
		chk.Panic("FreeFwdDynamicsDAM: armature has length %d, want %d", len(armature), rb.NV())
	}
	return &FreeFwdDynamicsDAM{
		RB:       rb,
		St_:      state.NewComposite(rb),
		Costs_:   costs,
		Armature: armature,
		UseABA:   useABA,
		nq:       rb.NQ(),
		nv:       rb.NV(),
		nu:       nu,
	}
}

func (d *FreeFwdDynamicsDAM) St() state.State        { return d.St_ }
func (d *FreeFwdDynamicsDAM) NV() int                { return d.nv }
func (d *FreeFwdDynamicsDAM) NU() int                { return d.nu }
func (d *FreeFwdDynamicsDAM) Costs() *cost.CostModelSum { return d.Costs_ }

func (d *FreeFwdDynamicsDAM) QuasiStatic(x []float64) []float64 { return make([]float64, d.nu) }

func (d *FreeFwdDynamicsDAM) split(x []float64) (q, v []float64) {
	return x[:d.nq], x[d.nq:]
}

func (d *FreeFwdDynamicsDAM) massDense(q []float64) *mat.Dense {
	M, _ := d.RB.ComputeAllTerms(q, make([]float64, d.nv))
	n := d.nv
	out := mat.NewDense(n, n, nil)
	out.CopySym(M)
	if d.Armature != nil {
		for i := 0; i < n; i++ {
			out.Set(i, i, out.At(i, i)+d.Armature[i])
		}
	}
	return out
}

func (d *FreeFwdDynamicsDAM) acceleration(q, v, u []float64) []float64 {
	if d.UseABA {
		return d.RB.ABA(q, v, u)
	}
	_, nle := d.RB.ComputeAllTerms(q, v)
	rhs := make([]float64, d.nv)
	for i := range rhs {
		rhs[i] = u[i] - nle[i]
	}
	M := d.massDense(q)
	var a mat.VecDense
	err := a.SolveVec(M, mat.NewVecDense(d.nv, rhs))
	if err != nil {
		chk.Panic("FreeFwdDynamicsDAM: mass matrix solve failed: %v", err)
	}
	out := make([]float64, d.nv)
	for i := range out {
		out[i] = a.AtVec(i)
	}
	return out
}

func (d *FreeFwdDynamicsDAM) Calc(x, u []float64) (v, a []float64, l float64) {
	q, vq := d.split(x)
	d.RB.ForwardKinematics(q, vq)
	d.RB.UpdateFramePlacements()
	a = d.acceleration(q, vq, u)
	l = d.Costs_.Calc(x, u)
	return append([]float64(nil), vq...), a, l
}

func (d *FreeFwdDynamicsDAM) CalcDiff(x, u []float64) (Fx, Fu [][]float64) {
	q, v := d.split(x)
	d.RB.ForwardKinematics(q, v)
	d.RB.UpdateFramePlacements()

	ndx := 2 * d.nv
	Fx = make([][]float64, d.nv)
	Fu = make([][]float64, d.nv)
	for i := range Fx {
		Fx[i] = make([]float64, ndx)
		Fu[i] = make([]float64, d.nu)
	}

	if d.UseABA {
		dAdq, dAdv, Minv := d.RB.ComputeABADerivatives(q, v, u)
		for i := 0; i < d.nv; i++ {
			for j := 0; j < d.nv; j++ {
				Fx[i][j] = dAdq.At(i, j)
				Fx[i][d.nv+j] = dAdv.At(i, j)
				Fu[i][j] = Minv.At(i, j)
			}
		}
	} else {
		a := d.acceleration(q, v, u)
		dTauDq, dTauDv, M := d.RB.ComputeRNEADerivatives(q, v, a)
		n := d.nv
		Md := mat.NewDense(n, n, nil)
		Md.CopySym(M)
		if d.Armature != nil {
			for i := 0; i < n; i++ {
				Md.Set(i, i, Md.At(i, i)+d.Armature[i])
			}
		}
		var Minv mat.Dense
		if err := Minv.Inverse(Md); err != nil {
			chk.Panic("FreeFwdDynamicsDAM: mass matrix is not invertible: %v", err)
		}
		var negMinvDq, negMinvDv mat.Dense
		negMinvDq.Mul(&Minv, dTauDq)
		negMinvDv.Mul(&Minv, dTauDv)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				Fx[i][j] = -negMinvDq.At(i, j)
				Fx[i][n+j] = -negMinvDv.At(i, j)
				Fu[i][j] = Minv.At(i, j)
			}
		}
	}

	d.Costs_.CalcDiff(x, u)
	return
}
