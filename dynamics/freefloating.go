// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynamics

import (
	"math"
	"math/rand"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// FreeFloatingToy is a minimal free-floating base (SE(3) configuration)
// composed with a chain of revolute joints. It exists only to exercise the
// Lie-group delegation path of the composite state (spec §4.1) in manifold-
// law tests; it is not used by the end-to-end DDP scenarios (those use
// PlanarArm, whose configuration is already Euclidean). Its DIntegrate and
// JDifference are identity stand-ins rather than exact SE(3) Jacobians: the
// real rigid-body library's job of differentiating its own manifold is out
// of scope (spec §1), and the composite state only needs *some* consistent
// RigidBody to delegate to in order to prove out its own wiring.
type FreeFloatingToy struct {
	NJoints int
	rng     *rand.Rand
}

func NewFreeFloatingToy(njoints int) *FreeFloatingToy {
	return &FreeFloatingToy{NJoints: njoints, rng: rand.New(rand.NewSource(2))}
}

func (f *FreeFloatingToy) NQ() int { return 7 + f.NJoints }
func (f *FreeFloatingToy) NV() int { return 6 + f.NJoints }

func (f *FreeFloatingToy) Neutral() []float64 {
	q := make([]float64, f.NQ())
	q[6] = 1 // quaternion w
	return q
}

func (f *FreeFloatingToy) RandomConfiguration() []float64 {
	q := make([]float64, f.NQ())
	for i := 0; i < 3; i++ {
		q[i] = f.rng.NormFloat64()
	}
	qq := quatNormalize(quat{f.rng.NormFloat64(), f.rng.NormFloat64(), f.rng.NormFloat64(), f.rng.NormFloat64()})
	copy(q[3:7], qq[:])
	for i := 0; i < f.NJoints; i++ {
		q[7+i] = (f.rng.Float64()*2 - 1) * math.Pi
	}
	return q
}

func (f *FreeFloatingToy) se3Of(q []float64) SE3 {
	var m SE3
	m.P[0], m.P[1], m.P[2] = q[0], q[1], q[2]
	m.R = quatToRotMat(quat{q[3], q[4], q[5], q[6]})
	return m
}

// exp6 is the SE(3) exponential map, inverse of Log6Vec's [v;w] convention.
func exp6(xi []float64) SE3 {
	var rho, w [3]float64
	copy(rho[:], xi[0:3])
	copy(w[:], xi[3:6])
	theta := math.Sqrt(w[0]*w[0] + w[1]*w[1] + w[2]*w[2])
	R := expSO3(w)
	var I, V [3][3]float64
	I[0][0], I[1][1], I[2][2] = 1, 1, 1
	if theta < 1e-9 {
		V = I
	} else {
		K := hat(w)
		c1 := (1 - math.Cos(theta)) / (theta * theta)
		c2 := (theta - math.Sin(theta)) / (theta * theta * theta)
		V = addMat(I, addMat(scaleMat(K, c1), scaleMat(mulMat(K, K), c2)))
	}
	m := SE3{R: R}
	p := matVec(V, rho)
	m.P = p
	return m
}

func se3ToQuat(m SE3) quat {
	R := m.R
	tr := R[0][0] + R[1][1] + R[2][2]
	w := math.Sqrt(math.Max(0, 1+tr)) / 2
	var x, y, z float64
	if w > 1e-6 {
		x = (R[2][1] - R[1][2]) / (4 * w)
		y = (R[0][2] - R[2][0]) / (4 * w)
		z = (R[1][0] - R[0][1]) / (4 * w)
	} else {
		x = math.Sqrt(math.Max(0, 1+R[0][0]-R[1][1]-R[2][2])) / 2
		y = math.Sqrt(math.Max(0, 1-R[0][0]+R[1][1]-R[2][2])) / 2
		z = math.Sqrt(math.Max(0, 1-R[0][0]-R[1][1]+R[2][2])) / 2
	}
	return quatNormalize(quat{x, y, z, w})
}

func (f *FreeFloatingToy) Integrate(q, dq []float64) []float64 {
	m := f.se3Of(q)
	dm := exp6(dq[0:6])
	mNext := m.Mul(dm)
	out := make([]float64, f.NQ())
	out[0], out[1], out[2] = mNext.P[0], mNext.P[1], mNext.P[2]
	qq := se3ToQuat(mNext)
	copy(out[3:7], qq[:])
	for i := 0; i < f.NJoints; i++ {
		out[7+i] = q[7+i] + dq[6+i]
	}
	return out
}

func (f *FreeFloatingToy) Difference(q0, q1 []float64) []float64 {
	m0, m1 := f.se3Of(q0), f.se3Of(q1)
	xi := Log6Vec(m0.Inverse().Mul(m1))
	out := make([]float64, f.NV())
	copy(out[0:6], xi)
	for i := 0; i < f.NJoints; i++ {
		out[6+i] = q1[7+i] - q0[7+i]
	}
	return out
}

func (f *FreeFloatingToy) identityJac() *mat.Dense { return identity(f.NV()) }

func (f *FreeFloatingToy) DIntegrate(q, dq []float64) (Jq, Jdq *mat.Dense) {
	return f.identityJac(), f.identityJac()
}

func (f *FreeFloatingToy) JDifference(q0, q1 []float64) (J0, J1 *mat.Dense) {
	neg := mat.NewDense(f.NV(), f.NV(), nil)
	for i := 0; i < f.NV(); i++ {
		neg.Set(i, i, -1)
	}
	return neg, f.identityJac()
}

func (f *FreeFloatingToy) ComputeAllTerms(q, v []float64) (M *mat.SymDense, nle []float64) {
	n := f.NV()
	M = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		M.SetSym(i, i, 1)
	}
	return M, make([]float64, n)
}

func (f *FreeFloatingToy) ABA(q, v, tau []float64) []float64 {
	a := make([]float64, f.NV())
	copy(a, tau)
	return a
}

func (f *FreeFloatingToy) ComputeABADerivatives(q, v, tau []float64) (dAdq, dAdv, Minv *mat.Dense) {
	return mat.NewDense(f.NV(), f.NV(), nil), mat.NewDense(f.NV(), f.NV(), nil), f.identityJac()
}

func (f *FreeFloatingToy) ComputeMinverse(q []float64) *mat.Dense { return f.identityJac() }

func (f *FreeFloatingToy) ComputeRNEADerivatives(q, v, acc []float64) (dTauDq, dTauDv *mat.Dense, M *mat.SymDense) {
	M, _ = f.ComputeAllTerms(q, v)
	return mat.NewDense(f.NV(), f.NV(), nil), mat.NewDense(f.NV(), f.NV(), nil), M
}

func (f *FreeFloatingToy) ForwardKinematics(q, v []float64) {}
func (f *FreeFloatingToy) UpdateFramePlacements()            {}

func (f *FreeFloatingToy) FramePlacement(frame string) (SE3, error) {
	return SE3{}, chk.Err("FreeFloatingToy: no named frames available")
}
func (f *FreeFloatingToy) FrameVelocity(frame string) ([]float64, error) {
	return nil, chk.Err("FreeFloatingToy: no named frames available")
}
func (f *FreeFloatingToy) FrameJacobian(frame string) (*mat.Dense, error) {
	return nil, chk.Err("FreeFloatingToy: no named frames available")
}
func (f *FreeFloatingToy) FrameVelocityJacobian(frame string) (Jq, Jv *mat.Dense, err error) {
	return nil, nil, chk.Err("FreeFloatingToy: no named frames available")
}
func (f *FreeFloatingToy) FrameJacobianDims() (transDim, rotDim int) { return 3, 3 }

func (f *FreeFloatingToy) CenterOfMass(q []float64) []float64 {
	return []float64{q[0], q[1], q[2]}
}

func (f *FreeFloatingToy) JacobianCenterOfMass(q []float64) *mat.Dense {
	J := mat.NewDense(3, f.NV(), nil)
	J.Set(0, 0, 1)
	J.Set(1, 1, 1)
	J.Set(2, 2, 1)
	return J
}

func (f *FreeFloatingToy) Log6(m SE3) []float64       { return Log6Vec(m) }
func (f *FreeFloatingToy) Jlog6(r []float64) *mat.Dense { return Jlog6Mat(r) }
