// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynamics

import "math"

// hat maps a 3-vector to its skew-symmetric cross-product matrix.
func hat(w [3]float64) [3][3]float64 {
	return [3][3]float64{
		{0, -w[2], w[1]},
		{w[2], 0, -w[0]},
		{-w[1], w[0], 0},
	}
}

// expSO3 is the Rodrigues exponential map, so(3) -> SO(3).
func expSO3(w [3]float64) [3][3]float64 {
	theta := math.Sqrt(w[0]*w[0] + w[1]*w[1] + w[2]*w[2])
	var R [3][3]float64
	R[0][0], R[1][1], R[2][2] = 1, 1, 1
	if theta < 1e-12 {
		K := hat(w)
		return addMat(R, K)
	}
	K := hat(w)
	s := math.Sin(theta) / theta
	c := (1 - math.Cos(theta)) / (theta * theta)
	K2 := mulMat(K, K)
	return addMat(R, addMat(scaleMat(K, s), scaleMat(K2, c)))
}

// logSO3 is the inverse Rodrigues map, SO(3) -> so(3).
func logSO3(R [3][3]float64) [3]float64 {
	tr := R[0][0] + R[1][1] + R[2][2]
	cosTheta := (tr - 1) / 2
	if cosTheta > 1 {
		cosTheta = 1
	}
	if cosTheta < -1 {
		cosTheta = -1
	}
	theta := math.Acos(cosTheta)
	if theta < 1e-9 {
		return [3]float64{
			(R[2][1] - R[1][2]) / 2,
			(R[0][2] - R[2][0]) / 2,
			(R[1][0] - R[0][1]) / 2,
		}
	}
	s := theta / (2 * math.Sin(theta))
	return [3]float64{
		s * (R[2][1] - R[1][2]),
		s * (R[0][2] - R[2][0]),
		s * (R[1][0] - R[0][1]),
	}
}

func addMat(a, b [3][3]float64) (out [3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[i][j] + b[i][j]
		}
	}
	return
}

func scaleMat(a [3][3]float64, s float64) (out [3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[i][j] * s
		}
	}
	return
}

func mulMat(a, b [3][3]float64) (out [3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			out[i][j] = s
		}
	}
	return
}

// logImpl computes the se(3) logarithm of m, returned as [v; w] (translation part
// first, rotation part second), the convention used by the frame-placement
// residual (spec §4.3/§4.4).
func (SE3) logImpl(m SE3) [6]float64 {
	w := logSO3(m.R)
	theta := math.Sqrt(w[0]*w[0] + w[1]*w[1] + w[2]*w[2])
	var Vinv [3][3]float64
	Vinv[0][0], Vinv[1][1], Vinv[2][2] = 1, 1, 1
	if theta > 1e-9 {
		K := hat(w)
		K = scaleMat(K, 1/theta)
		a := 0.5
		b := 1/(theta*theta) - (1+math.Cos(theta))/(2*theta*math.Sin(theta))
		K2 := mulMat(K, K)
		Vinv = addMat(Vinv, addMat(scaleMat(K, -theta*a), scaleMat(K2, theta*theta*b)))
	} else {
		K := hat(w)
		Vinv = addMat(Vinv, scaleMat(K, -0.5))
	}
	v := matVec(Vinv, m.P)
	return [6]float64{v[0], v[1], v[2], w[0], w[1], w[2]}
}

func matVec(A [3][3]float64, x [3]float64) [3]float64 {
	var y [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			y[i] += A[i][j] * x[j]
		}
	}
	return y
}
