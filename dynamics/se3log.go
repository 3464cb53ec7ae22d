// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynamics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Log6Vec computes the se(3) logarithm of m as a 6-vector [v; w] (translation
// part first, rotation part second). Shared by every RigidBody.Log6
// implementation so the convention is identical across models.
func Log6Vec(m SE3) []float64 {
	r := (SE3{}).logImpl(m)
	return r[:]
}

// jlog3 is the inverse right Jacobian of the SO(3) logarithm.
func jlog3(w [3]float64) [3][3]float64 {
	theta := math.Sqrt(w[0]*w[0] + w[1]*w[1] + w[2]*w[2])
	var I [3][3]float64
	I[0][0], I[1][1], I[2][2] = 1, 1, 1
	if theta < 1e-9 {
		return I
	}
	K := hat(w)
	K2 := mulMat(K, K)
	a := 0.5
	b := 1/(theta*theta) - (1+math.Cos(theta))/(2*theta*math.Sin(theta))
	return addMat(I, addMat(scaleMat(K, a), scaleMat(K2, b)))
}

// qBarfoot is the off-diagonal coupling block of the SE(3) left Jacobian,
// following Barfoot, "State Estimation for Robotics", eq. 7.86.
func qBarfoot(rho, phi [3]float64) [3][3]float64 {
	theta := math.Sqrt(phi[0]*phi[0] + phi[1]*phi[1] + phi[2]*phi[2])
	Prho := hat(rho)
	Pphi := hat(phi)
	if theta < 1e-9 {
		return scaleMat(Prho, 0.5)
	}
	st, ct := math.Sin(theta), math.Cos(theta)
	t2, t3, t4, t5 := theta*theta, theta*theta*theta, theta*theta*theta*theta, theta*theta*theta*theta*theta
	c1 := (theta - st) / t3
	c2 := (t2 + 2*ct - 2) / (2 * t4)
	c3 := (2*theta - 3*st + theta*ct) / (2 * t5)

	PphiPrho := mulMat(Pphi, Prho)
	PrhoPphi := mulMat(Prho, Pphi)
	PphiPhi := mulMat(Pphi, Pphi)
	PphiPrhoPphi := mulMat(PphiPrho, Pphi)

	term1 := scaleMat(Prho, 0.5)
	term2 := scaleMat(addMat(addMat(PphiPrho, PrhoPphi), PphiPrhoPphi), c1)
	term3 := scaleMat(
		addMat(mulMat(PphiPhi, Prho), addMat(mulMat(Prho, PphiPhi), scaleMat(PphiPrhoPphi, -3))),
		c2)
	term4 := scaleMat(
		addMat(mulMat(PphiPrhoPphi, Pphi), mulMat(PphiPhi, mulMat(Prho, Pphi))),
		c3)
	return addMat(addMat(addMat(term1, term2), term3), term4)
}

// Jlog6Mat computes the 6x6 Jacobian of the se(3) logarithm (the inverse of
// the SE(3) left Jacobian, evaluated at the log-coordinates r themselves),
// in the same [v; w] layout as Log6Vec.
func Jlog6Mat(r []float64) *mat.Dense {
	var rho, phi [3]float64
	copy(rho[:], r[0:3])
	copy(phi[:], r[3:6])
	Jl3inv := jlog3(phi)
	Q := qBarfoot(rho, phi)
	// top-right block: -Jl3inv * Q * Jl3inv
	TR := scaleMat(mulMat(Jl3inv, mulMat(Q, Jl3inv)), -1)

	out := mat.NewDense(6, 6, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, Jl3inv[i][j])
			out.Set(i, j+3, TR[i][j])
			out.Set(i+3, j, 0)
			out.Set(i+3, j+3, Jl3inv[i][j])
		}
	}
	return out
}
