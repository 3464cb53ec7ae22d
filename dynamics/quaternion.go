// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynamics

import "math"

// quat is a unit quaternion stored as (x, y, z, w), pinocchio's convention
// for a free-flyer's orientation component.
type quat [4]float64

func quatIdentity() quat { return quat{0, 0, 0, 1} }

func quatNormalize(q quat) quat {
	n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if n < 1e-15 {
		return quatIdentity()
	}
	return quat{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}

func quatMul(a, b quat) quat {
	return quat{
		a[3]*b[0] + a[0]*b[3] + a[1]*b[2] - a[2]*b[1],
		a[3]*b[1] - a[0]*b[2] + a[1]*b[3] + a[2]*b[0],
		a[3]*b[2] + a[0]*b[1] - a[1]*b[0] + a[2]*b[3],
		a[3]*b[3] - a[0]*b[0] - a[1]*b[1] - a[2]*b[2],
	}
}

func quatConj(q quat) quat { return quat{-q[0], -q[1], -q[2], q[3]} }

// quatExp is the quaternion exponential of a rotation-vector w (so(3)).
func quatExp(w [3]float64) quat {
	theta := math.Sqrt(w[0]*w[0] + w[1]*w[1] + w[2]*w[2])
	if theta < 1e-12 {
		return quatNormalize(quat{w[0] / 2, w[1] / 2, w[2] / 2, 1})
	}
	s := math.Sin(theta / 2)
	return quat{w[0] / theta * s, w[1] / theta * s, w[2] / theta * s, math.Cos(theta / 2)}
}

// quatLog is the inverse of quatExp.
func quatLog(q quat) [3]float64 {
	q = quatNormalize(q)
	vnorm := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2])
	if vnorm < 1e-12 {
		return [3]float64{2 * q[0], 2 * q[1], 2 * q[2]}
	}
	theta := 2 * math.Atan2(vnorm, q[3])
	s := theta / vnorm
	return [3]float64{q[0] * s, q[1] * s, q[2] * s}
}

func quatRotate(q quat, v [3]float64) [3]float64 {
	p := quat{v[0], v[1], v[2], 0}
	r := quatMul(quatMul(q, p), quatConj(q))
	return [3]float64{r[0], r[1], r[2]}
}

func quatToRotMat(q quat) [3][3]float64 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	return [3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}
}
