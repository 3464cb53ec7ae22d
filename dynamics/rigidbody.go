// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dynamics defines the collaborator interface consumed from an
// external rigid-body dynamics library (forward dynamics, mass matrix, RNEA
// and their derivatives, manifold integrate/difference/dIntegrate) together
// with a couple of small concrete models used to exercise the rest of the
// module without a real dynamics backend.
package dynamics

import (
	"gonum.org/v1/gonum/mat"
)

// JacobianArg selects which argument of a two-argument manifold operation a
// Jacobian is requested with respect to.
type JacobianArg int

// Argument selectors for Jdiff/Jintegrate-style operations.
const (
	ArgFirst JacobianArg = iota
	ArgSecond
	ArgBoth
)

// SE3 is a rigid transform: rotation R (3x3, orthonormal) and translation P.
type SE3 struct {
	R [3][3]float64
	P [3]float64
}

// Identity returns the neutral SE3 element.
func Identity() SE3 {
	var m SE3
	m.R[0][0], m.R[1][1], m.R[2][2] = 1, 1, 1
	return m
}

// Inverse returns the inverse transform.
func (m SE3) Inverse() SE3 {
	var out SE3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.R[i][j] = m.R[j][i]
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.P[i] -= out.R[i][j] * m.P[j]
		}
	}
	return out
}

// Mul composes two transforms: (m * n).
func (m SE3) Mul(n SE3) SE3 {
	var out SE3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += m.R[i][k] * n.R[k][j]
			}
			out.R[i][j] = s
		}
	}
	for i := 0; i < 3; i++ {
		s := m.P[i]
		for k := 0; k < 3; k++ {
			s += m.R[i][k] * n.P[k]
		}
		out.P[i] = s
	}
	return out
}

// RigidBody is the narrow surface consumed from a rigid-body dynamics
// library, per spec §6. Implementations must be safe to call repeatedly
// with scratch state reused between calls (e.g. a pinocchio Model/Data
// pair); the concrete models here keep only the kinematic cache set by
// ForwardKinematics and a random generator used by RandomConfiguration.
type RigidBody interface {
	// NQ returns the configuration vector size.
	NQ() int
	// NV returns the tangent/velocity size.
	NV() int

	Neutral() []float64
	RandomConfiguration() []float64
	Integrate(q, dq []float64) []float64
	Difference(q0, q1 []float64) []float64
	// DIntegrate returns the Jacobians of Integrate w.r.t. q and dq.
	DIntegrate(q, dq []float64) (Jq, Jdq *mat.Dense)
	// JDifference returns the Jacobians of Difference w.r.t. q0 and q1.
	JDifference(q0, q1 []float64) (J0, J1 *mat.Dense)

	// ComputeAllTerms populates and returns the joint-space mass matrix and
	// the nonlinear (Coriolis + gravity) bias term at (q, v).
	ComputeAllTerms(q, v []float64) (M *mat.SymDense, nle []float64)

	// ABA evaluates the articulated-body forward dynamics a = ABA(q,v,tau).
	ABA(q, v, tau []float64) (a []float64)
	// ComputeABADerivatives returns da/dq, da/dv and Minv at (q,v,tau).
	ComputeABADerivatives(q, v, tau []float64) (dAdq, dAdv *mat.Dense, Minv *mat.Dense)
	// ComputeMinverse returns the inverse mass matrix at q.
	ComputeMinverse(q []float64) *mat.Dense
	// ComputeRNEADerivatives returns dtau/dq, dtau/dv and dtau/da (== M).
	ComputeRNEADerivatives(q, v, a []float64) (dTauDq, dTauDv *mat.Dense, M *mat.SymDense)

	// ForwardKinematics/UpdateFramePlacements refresh the kinematic cache;
	// the host (DAM) calls these once per calc/calcDiff before any cost
	// that reads frame or CoM quantities (see the kinematic freshness
	// policy, SPEC_FULL.md §9).
	ForwardKinematics(q, v []float64)
	UpdateFramePlacements()

	FramePlacement(frame string) (SE3, error)
	FrameVelocity(frame string) ([]float64, error)
	// FrameJacobian returns the local-world-aligned frame Jacobian; its rows
	// are laid out as FrameJacobianDims() translational rows followed by
	// rotational rows (3 and 3 for a full spatial frame; fewer for models
	// whose motion is confined to a subspace, e.g. a planar arm).
	FrameJacobian(frame string) (*mat.Dense, error)
	// FrameJacobianDims reports the (translational, rotational) row counts
	// of FrameJacobian, so a generic residual can embed them into a full
	// 3+3 spatial layout regardless of the model's native dimensionality.
	FrameJacobianDims() (transDim, rotDim int)
	// FrameVelocityJacobian splits d(v_frame)/dq and d(v_frame)/dv.
	FrameVelocityJacobian(frame string) (Jq, Jv *mat.Dense, err error)

	CenterOfMass(q []float64) []float64
	JacobianCenterOfMass(q []float64) *mat.Dense

	Log6(m SE3) []float64
	Jlog6(r []float64) *mat.Dense
}
