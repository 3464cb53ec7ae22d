// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynamics

import (
	"math"
	"math/rand"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// PlanarArm is a serial chain of n revolute joints moving in a vertical
// plane, each joint carrying a point mass at its distal end. Because every
// joint is revolute, its configuration space is Euclidean (nq == nv), the
// same degenerate case spec.md's talos_arm scenarios exercise, so PlanarArm
// stands in for the real URDF-driven arm in the end-to-end tests (the real
// rigid-body library is out of scope per spec.md §1).
//
// Derivatives of the dynamics (Coriolis terms, ABA/RNEA Jacobians) are
// obtained here by internally finite-differencing the closed-form mass
// matrix and gravity terms rather than by a hand-derived recursive
// algorithm: PlanarArm is a stand-in for an external collaborator, not an
// implementation of the rigid-body library itself, so it does not need the
// real library's O(n) analytic-derivative machinery (see DESIGN.md).
type PlanarArm struct {
	N       int
	Length  []float64
	Mass    []float64
	Gravity float64
	Frames  map[string]int // named frame -> link index (1-based tip)
	rng     *rand.Rand
	lastQ   []float64
	lastV   []float64
}

// NewPlanarArm builds an n-link arm with uniform link length and mass.
func NewPlanarArm(n int, length, mass float64) *PlanarArm {
	a := &PlanarArm{
		N:       n,
		Length:  make([]float64, n),
		Mass:    make([]float64, n),
		Gravity: 9.81,
		Frames:  map[string]int{"tip": n},
		rng:     rand.New(rand.NewSource(1)),
	}
	for i := 0; i < n; i++ {
		a.Length[i] = length
		a.Mass[i] = mass
	}
	return a
}

func (a *PlanarArm) NQ() int { return a.N }
func (a *PlanarArm) NV() int { return a.N }

func (a *PlanarArm) Neutral() []float64 { return make([]float64, a.N) }

func (a *PlanarArm) RandomConfiguration() []float64 {
	q := make([]float64, a.N)
	for i := range q {
		q[i] = (a.rng.Float64()*2 - 1) * math.Pi
	}
	return q
}

func (a *PlanarArm) Integrate(q, dq []float64) []float64 {
	out := make([]float64, a.N)
	for i := range out {
		out[i] = q[i] + dq[i]
	}
	return out
}

func (a *PlanarArm) Difference(q0, q1 []float64) []float64 {
	out := make([]float64, a.N)
	for i := range out {
		out[i] = q1[i] - q0[i]
	}
	return out
}

func (a *PlanarArm) DIntegrate(q, dq []float64) (Jq, Jdq *mat.Dense) {
	return identity(a.N), identity(a.N)
}

func (a *PlanarArm) JDifference(q0, q1 []float64) (J0, J1 *mat.Dense) {
	neg := mat.NewDense(a.N, a.N, nil)
	for i := 0; i < a.N; i++ {
		neg.Set(i, i, -1)
	}
	return neg, identity(a.N)
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// cumulativeAngles returns theta_k = sum_{j<=k} q_j for k=0..N-1.
func (a *PlanarArm) cumulativeAngles(q []float64) []float64 {
	theta := make([]float64, a.N)
	var s float64
	for i := 0; i < a.N; i++ {
		s += q[i]
		theta[i] = s
	}
	return theta
}

// linkJacobian returns the 2xN Jacobian of the i-th point mass position
// w.r.t. q (i is 0-based link index).
func (a *PlanarArm) linkJacobian(theta []float64, i int) *mat.Dense {
	J := mat.NewDense(2, a.N, nil)
	for k := 0; k <= i; k++ {
		for j := 0; j <= k; j++ {
			J.Set(0, j, J.At(0, j)-a.Length[k]*math.Sin(theta[k]))
			J.Set(1, j, J.At(1, j)+a.Length[k]*math.Cos(theta[k]))
		}
	}
	return J
}

// massMatrix computes M(q) = sum_i m_i Ji^T Ji.
func (a *PlanarArm) massMatrix(q []float64) *mat.SymDense {
	theta := a.cumulativeAngles(q)
	M := mat.NewSymDense(a.N, nil)
	for i := 0; i < a.N; i++ {
		J := a.linkJacobian(theta, i)
		var JtJ mat.Dense
		JtJ.Mul(J.T(), J)
		for r := 0; r < a.N; r++ {
			for c := r; c < a.N; c++ {
				M.SetSym(r, c, M.At(r, c)+a.Mass[i]*JtJ.At(r, c))
			}
		}
	}
	return M
}

// potentialGradient computes g(q) = dV/dq with V(q) = sum_i m_i * grav * y_i(q).
func (a *PlanarArm) potentialGradient(q []float64) []float64 {
	theta := a.cumulativeAngles(q)
	g := make([]float64, a.N)
	for i := 0; i < a.N; i++ {
		for k := 0; k <= i; k++ {
			for j := 0; j <= k; j++ {
				g[j] += a.Mass[i] * a.Gravity * a.Length[k] * math.Cos(theta[k])
			}
		}
	}
	return g
}

// christoffelTimesV computes C(q,v) v via finite-differenced Christoffel
// symbols of the analytic mass matrix.
func (a *PlanarArm) christoffelTimesV(q, v []float64) []float64 {
	const h = 1e-6
	n := a.N
	dMdq := make([]*mat.SymDense, n)
	qp := append([]float64(nil), q...)
	for k := 0; k < n; k++ {
		qp[k] = q[k] + h
		Mp := a.massMatrix(qp)
		qp[k] = q[k] - h
		Mm := a.massMatrix(qp)
		qp[k] = q[k]
		D := mat.NewSymDense(n, nil)
		for r := 0; r < n; r++ {
			for c := r; c < n; c++ {
				D.SetSym(r, c, (Mp.At(r, c)-Mm.At(r, c))/(2*h))
			}
		}
		dMdq[k] = D
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var s float64
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				gamma := 0.5 * (dMdq[k].At(i, j) + dMdq[j].At(i, k) - dMdq[i].At(j, k))
				s += gamma * v[j] * v[k]
			}
		}
		out[i] = s
	}
	return out
}

func (a *PlanarArm) ComputeAllTerms(q, v []float64) (M *mat.SymDense, nle []float64) {
	M = a.massMatrix(q)
	c := a.christoffelTimesV(q, v)
	g := a.potentialGradient(q)
	nle = make([]float64, a.N)
	for i := range nle {
		nle[i] = c[i] + g[i]
	}
	return
}

func symToDense(s *mat.SymDense) *mat.Dense {
	n := s.SymmetricDim()
	d := mat.NewDense(n, n, nil)
	d.CopySym(s)
	return d
}

func (a *PlanarArm) ComputeMinverse(q []float64) *mat.Dense {
	M := symToDense(a.massMatrix(q))
	var Minv mat.Dense
	err := Minv.Inverse(M)
	if err != nil {
		chk.Panic("PlanarArm: mass matrix is not invertible: %v", err)
	}
	return &Minv
}

func (a *PlanarArm) acceleration(q, v, tau []float64) []float64 {
	M, nle := a.ComputeAllTerms(q, v)
	rhs := make([]float64, a.N)
	for i := range rhs {
		rhs[i] = tau[i] - nle[i]
	}
	Minv := a.ComputeMinverse(q)
	acc := make([]float64, a.N)
	Mv := mat.NewVecDense(a.N, rhs)
	var av mat.VecDense
	av.MulVec(Minv, Mv)
	for i := range acc {
		acc[i] = av.AtVec(i)
	}
	_ = M
	return acc
}

func (a *PlanarArm) ABA(q, v, tau []float64) []float64 {
	return a.acceleration(q, v, tau)
}

func (a *PlanarArm) ComputeABADerivatives(q, v, tau []float64) (dAdq, dAdv, Minv *mat.Dense) {
	n := a.N
	Minv = a.ComputeMinverse(q)
	dAdq = mat.NewDense(n, n, nil)
	fd.Jacobian(dAdq, func(y, x []float64) {
		copy(y, a.acceleration(x, v, tau))
	}, q, &fd.JacobianSettings{Formula: fd.Central})
	dAdv = mat.NewDense(n, n, nil)
	fd.Jacobian(dAdv, func(y, x []float64) {
		copy(y, a.acceleration(q, x, tau))
	}, v, &fd.JacobianSettings{Formula: fd.Central})
	return
}

func (a *PlanarArm) ComputeRNEADerivatives(q, v, acc []float64) (dTauDq, dTauDv *mat.Dense, M *mat.SymDense) {
	n := a.N
	M = a.massMatrix(q)
	invDyn := func(qq, vv []float64) []float64 {
		Mq := symToDense(a.massMatrix(qq))
		c := a.christoffelTimesV(qq, vv)
		g := a.potentialGradient(qq)
		Ma := mat.NewVecDense(n, nil)
		Ma.MulVec(Mq, mat.NewVecDense(n, acc))
		tau := make([]float64, n)
		for i := 0; i < n; i++ {
			tau[i] = Ma.AtVec(i) + c[i] + g[i]
		}
		return tau
	}
	dTauDq = mat.NewDense(n, n, nil)
	fd.Jacobian(dTauDq, func(y, x []float64) { copy(y, invDyn(x, v)) }, q, &fd.JacobianSettings{Formula: fd.Central})
	dTauDv = mat.NewDense(n, n, nil)
	fd.Jacobian(dTauDv, func(y, x []float64) { copy(y, invDyn(q, x)) }, v, &fd.JacobianSettings{Formula: fd.Central})
	return
}

// ForwardKinematics caches (q, v) for subsequent frame/CoM queries; the
// kinematic-freshness policy (SPEC_FULL.md §9) requires the host to call
// this once before any frame-dependent cost reads from the model.
func (a *PlanarArm) ForwardKinematics(q, v []float64) {
	a.lastQ = append(a.lastQ[:0], q...)
	a.lastV = append(a.lastV[:0], v...)
}

func (a *PlanarArm) UpdateFramePlacements() {}

func (a *PlanarArm) tipIndex(frame string) (int, error) {
	idx, ok := a.Frames[frame]
	if !ok {
		return 0, chk.Err("PlanarArm: unknown frame %q", frame)
	}
	return idx, nil
}

func (a *PlanarArm) FramePlacement(frame string) (SE3, error) {
	idx, err := a.tipIndex(frame)
	if err != nil {
		return SE3{}, err
	}
	theta := a.cumulativeAngles(a.lastQ)
	var x, y float64
	for k := 0; k < idx; k++ {
		x += a.Length[k] * math.Cos(theta[k])
		y += a.Length[k] * math.Sin(theta[k])
	}
	m := Identity()
	m.P[0], m.P[1] = x, y
	tlast := theta[idx-1]
	m.R[0][0], m.R[0][1] = math.Cos(tlast), -math.Sin(tlast)
	m.R[1][0], m.R[1][1] = math.Sin(tlast), math.Cos(tlast)
	return m, nil
}

func (a *PlanarArm) FrameVelocity(frame string) ([]float64, error) {
	idx, err := a.tipIndex(frame)
	if err != nil {
		return nil, err
	}
	theta := a.cumulativeAngles(a.lastQ)
	J := a.linkJacobian(theta, idx-1)
	var vel mat.VecDense
	vel.MulVec(J, mat.NewVecDense(a.N, a.lastV))
	var omega float64
	for k := 0; k < idx; k++ {
		omega += a.lastV[k]
	}
	return []float64{vel.AtVec(0), vel.AtVec(1), omega}, nil
}

// FrameJacobian returns the 3xN Jacobian (vx,vy,omega) of the named frame at
// the cached configuration.
func (a *PlanarArm) FrameJacobian(frame string) (*mat.Dense, error) {
	idx, err := a.tipIndex(frame)
	if err != nil {
		return nil, err
	}
	theta := a.cumulativeAngles(a.lastQ)
	J2 := a.linkJacobian(theta, idx-1)
	J := mat.NewDense(3, a.N, nil)
	for j := 0; j < a.N; j++ {
		J.Set(0, j, J2.At(0, j))
		J.Set(1, j, J2.At(1, j))
		if j < idx {
			J.Set(2, j, 1)
		}
	}
	return J, nil
}

// FrameVelocityJacobian splits d(v_frame)/dq and d(v_frame)/dv at the cached
// (q, v); d(v_frame)/dq is obtained by finite-differencing the closed-form
// velocity map (same rationale as the other derivative stand-ins above).
func (a *PlanarArm) FrameVelocityJacobian(frame string) (Jq, Jv *mat.Dense, err error) {
	if _, err = a.tipIndex(frame); err != nil {
		return nil, nil, err
	}
	Jv, _ = a.FrameJacobian(frame)
	n := a.N
	q, v := a.lastQ, a.lastV
	Jq = mat.NewDense(3, n, nil)
	fd.Jacobian(Jq, func(y, x []float64) {
		theta := a.cumulativeAngles(x)
		idx := a.Frames[frame]
		J := a.linkJacobian(theta, idx-1)
		var vel mat.VecDense
		vel.MulVec(J, mat.NewVecDense(n, v))
		var omega float64
		for k := 0; k < idx; k++ {
			omega += v[k]
		}
		y[0], y[1], y[2] = vel.AtVec(0), vel.AtVec(1), omega
	}, q, &fd.JacobianSettings{Formula: fd.Central})
	return
}

func (a *PlanarArm) CenterOfMass(q []float64) []float64 {
	theta := a.cumulativeAngles(q)
	var mtot, x, y float64
	for i := 0; i < a.N; i++ {
		var xi, yi float64
		for k := 0; k <= i; k++ {
			xi += a.Length[k] * math.Cos(theta[k])
			yi += a.Length[k] * math.Sin(theta[k])
		}
		x += a.Mass[i] * xi
		y += a.Mass[i] * yi
		mtot += a.Mass[i]
	}
	return []float64{x / mtot, y / mtot}
}

func (a *PlanarArm) JacobianCenterOfMass(q []float64) *mat.Dense {
	n := a.N
	theta := a.cumulativeAngles(q)
	var mtot float64
	for _, m := range a.Mass {
		mtot += m
	}
	J := mat.NewDense(2, n, nil)
	for i := 0; i < a.N; i++ {
		Ji := a.linkJacobian(theta, i)
		for r := 0; r < 2; r++ {
			for c := 0; c < n; c++ {
				J.Set(r, c, J.At(r, c)+a.Mass[i]/mtot*Ji.At(r, c))
			}
		}
	}
	return J
}

func (a *PlanarArm) FrameJacobianDims() (transDim, rotDim int) { return 2, 1 }

func (a *PlanarArm) Log6(m SE3) []float64 { return Log6Vec(m) }
func (a *PlanarArm) Jlog6(r []float64) *mat.Dense { return Jlog6Mat(r) }
