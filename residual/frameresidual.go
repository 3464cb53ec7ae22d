// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package residual

import (
	"github.com/cpmech/ddp/dynamics"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// embedJacobianRows scatters a native (transDim+rotDim) x nv frame Jacobian
// into the canonical 3-translation + 3-rotation spatial layout, so residual
// code does not need to special-case a model whose motion is confined to a
// subspace (e.g. PlanarArm's 2 translation + 1 rotation rows).
func embedJacobianRows(native *mat.Dense, transDim, rotDim, nv int) [][]float64 {
	out := la.MatAlloc(6, nv)
	for i := 0; i < transDim; i++ {
		for j := 0; j < nv; j++ {
			out[i][j] = native.At(i, j)
		}
	}
	for i := 0; i < rotDim; i++ {
		for j := 0; j < nv; j++ {
			out[3+i][j] = native.At(transDim+i, j)
		}
	}
	return out
}

// embedVectorRows scatters a native (transDim+rotDim)-vector into the
// canonical 6-component [translation; rotation] layout.
func embedVectorRows(native []float64, transDim, rotDim int) []float64 {
	out := make([]float64, 6)
	for i := 0; i < transDim; i++ {
		out[i] = native[i]
	}
	for i := 0; i < rotDim; i++ {
		out[3+i] = native[transDim+i]
	}
	return out
}

// matMulLeftDense multiplies a dense gonum matrix a (rxk) by a plain
// row-major matrix b (kxc): out = a . b.
func matMulLeftDense(a *mat.Dense, b [][]float64) [][]float64 {
	ar, ac := a.Dims()
	bc := len(b[0])
	out := la.MatAlloc(ar, bc)
	for i := 0; i < ar; i++ {
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

func negMat(a [][]float64) [][]float64 {
	out := la.MatAlloc(len(a), len(a[0]))
	for i := range a {
		for j := range a[i] {
			out[i][j] = -a[i][j]
		}
	}
	return out
}

// FrameTranslation is the frame-translation cost of spec.md §4.3:
// r = p(q) - p*, with Rx[:, :nv] the translational rows of the frame's
// local-world-aligned Jacobian embedded in the canonical x,y,z layout.
type FrameTranslation struct {
	RB    dynamics.RigidBody
	Frame string
	Pstar []float64 // length 3
	nv    int
	ndx   int
	nu    int
}

// NewFrameTranslation builds a frame-translation residual over a composite
// state of tangent size ndx = 2*nv.
func NewFrameTranslation(rb dynamics.RigidBody, frame string, pstar []float64, ndx, nu int) *FrameTranslation {
	if len(pstar) != 3 {
		chk.Panic("FrameTranslation: pstar must have length 3, got %d", len(pstar))
	}
	return &FrameTranslation{RB: rb, Frame: frame, Pstar: append([]float64(nil), pstar...), nv: rb.NV(), ndx: ndx, nu: nu}
}

func (r *FrameTranslation) NR() int  { return 3 }
func (r *FrameTranslation) NDX() int { return r.ndx }
func (r *FrameTranslation) NU() int  { return r.nu }

func (r *FrameTranslation) Calc(x, u []float64) []float64 {
	m, err := r.RB.FramePlacement(r.Frame)
	if err != nil {
		chk.Panic("FrameTranslation: %v", err)
	}
	return []float64{m.P[0] - r.Pstar[0], m.P[1] - r.Pstar[1], m.P[2] - r.Pstar[2]}
}

func (r *FrameTranslation) CalcDiff(x, u []float64) (res []float64, Rx, Ru [][]float64) {
	res = r.Calc(x, u)
	J, err := r.RB.FrameJacobian(r.Frame)
	if err != nil {
		chk.Panic("FrameTranslation: %v", err)
	}
	transDim, rotDim := r.RB.FrameJacobianDims()
	full := embedJacobianRows(J, transDim, rotDim, r.nv)
	Rx = la.MatAlloc(3, r.ndx)
	for i := 0; i < 3; i++ {
		copy(Rx[i][:r.nv], full[i])
	}
	Ru = zeroMat(3, r.nu)
	return
}

// FramePlacement is the frame-placement cost of spec.md §4.3:
// r = log6(M(q)^-1 . M*), Rx[:, :nv] = -Jlog6(r) . J_frame(q), rest zero.
type FramePlacement struct {
	RB    dynamics.RigidBody
	Frame string
	Mstar dynamics.SE3
	nv    int
	ndx   int
	nu    int
}

func NewFramePlacement(rb dynamics.RigidBody, frame string, mstar dynamics.SE3, ndx, nu int) *FramePlacement {
	return &FramePlacement{RB: rb, Frame: frame, Mstar: mstar, nv: rb.NV(), ndx: ndx, nu: nu}
}

func (r *FramePlacement) NR() int  { return 6 }
func (r *FramePlacement) NDX() int { return r.ndx }
func (r *FramePlacement) NU() int  { return r.nu }

func (r *FramePlacement) Calc(x, u []float64) []float64 {
	m, err := r.RB.FramePlacement(r.Frame)
	if err != nil {
		chk.Panic("FramePlacement: %v", err)
	}
	return r.RB.Log6(m.Inverse().Mul(r.Mstar))
}

func (r *FramePlacement) CalcDiff(x, u []float64) (res []float64, Rx, Ru [][]float64) {
	res = r.Calc(x, u)
	J, err := r.RB.FrameJacobian(r.Frame)
	if err != nil {
		chk.Panic("FramePlacement: %v", err)
	}
	transDim, rotDim := r.RB.FrameJacobianDims()
	Jframe := embedJacobianRows(J, transDim, rotDim, r.nv)
	Jlog := r.RB.Jlog6(res)
	full := negMat(matMulLeftDense(Jlog, Jframe))
	Rx = la.MatAlloc(6, r.ndx)
	for i := 0; i < 6; i++ {
		copy(Rx[i][:r.nv], full[i])
	}
	Ru = zeroMat(6, r.nu)
	return
}

// FrameVelocity is the frame-velocity cost of spec.md §4.3: r = v_frame(q,v),
// a 6-vector (3 linear, 3 angular); Rx splits into d(v)/dq and d(v)/dv via
// the dynamics library's kinematic-derivative routines.
type FrameVelocity struct {
	RB    dynamics.RigidBody
	Frame string
	nv    int
	ndx   int
	nu    int
}

func NewFrameVelocity(rb dynamics.RigidBody, frame string, ndx, nu int) *FrameVelocity {
	return &FrameVelocity{RB: rb, Frame: frame, nv: rb.NV(), ndx: ndx, nu: nu}
}

func (r *FrameVelocity) NR() int  { return 6 }
func (r *FrameVelocity) NDX() int { return r.ndx }
func (r *FrameVelocity) NU() int  { return r.nu }

func (r *FrameVelocity) Calc(x, u []float64) []float64 {
	v, err := r.RB.FrameVelocity(r.Frame)
	if err != nil {
		chk.Panic("FrameVelocity: %v", err)
	}
	transDim, rotDim := r.RB.FrameJacobianDims()
	return embedVectorRows(v, transDim, rotDim)
}

func (r *FrameVelocity) CalcDiff(x, u []float64) (res []float64, Rx, Ru [][]float64) {
	res = r.Calc(x, u)
	Jq, Jv, err := r.RB.FrameVelocityJacobian(r.Frame)
	if err != nil {
		chk.Panic("FrameVelocity: %v", err)
	}
	transDim, rotDim := r.RB.FrameJacobianDims()
	fullQ := embedJacobianRows(Jq, transDim, rotDim, r.nv)
	fullV := embedJacobianRows(Jv, transDim, rotDim, r.nv)
	Rx = la.MatAlloc(6, r.ndx)
	for i := 0; i < 6; i++ {
		copy(Rx[i][:r.nv], fullQ[i])
		copy(Rx[i][r.nv:], fullV[i])
	}
	Ru = zeroMat(6, r.nu)
	return
}
