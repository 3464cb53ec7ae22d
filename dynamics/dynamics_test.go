// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynamics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_so3_exp_log_roundtrip checks that logSO3(expSO3(w)) recovers w for a
// handful of rotation vectors, all with angles well below pi (the largest
// is 1 rad).
func Test_so3_exp_log_roundtrip(tst *testing.T) {

	chk.PrintTitle("so3_exp_log_roundtrip")

	cases := [][3]float64{
		{0, 0, 0},
		{0.1, -0.2, 0.3},
		{1.0, 0, 0},
		{0.5, 0.5, 0.5},
	}
	for _, w := range cases {
		R := expSO3(w)
		wBack := logSO3(R)
		chk.Array(tst, "w", 1e-8, w[:], wBack[:])
	}
}

// Test_se3_exp_log_roundtrip checks that Log6Vec(exp6(xi)) recovers xi.
func Test_se3_exp_log_roundtrip(tst *testing.T) {

	chk.PrintTitle("se3_exp_log_roundtrip")

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 5; trial++ {
		var xi [6]float64
		for i := range xi {
			xi[i] = rng.NormFloat64() * 0.3
		}
		m := exp6(xi[:])
		xiBack := Log6Vec(m)
		chk.Array(tst, "xi", 1e-7, xi[:], xiBack)
	}
}

// Test_jlog6_consistency cross-checks Jlog6Mat against a central-difference
// approximation of d(Log6Vec(exp6(r+h*e_i)))/dr_i at a handful of points,
// the same ana-vs-num idiom the teacher uses throughout its solid models.
func Test_jlog6_consistency(tst *testing.T) {

	chk.PrintTitle("jlog6_consistency: analytical vs numerical")

	r := []float64{0.1, -0.05, 0.2, 0.3, -0.1, 0.15}
	Jana := Jlog6Mat(r)

	h := 1e-6
	for j := 0; j < 6; j++ {
		rp := append([]float64(nil), r...)
		rm := append([]float64(nil), r...)
		rp[j] += h
		rm[j] -= h
		// numerical derivative of Log6Vec(exp6(.)) composed with itself is
		// not what Jlog6 differentiates; instead verify the defining
		// property Jlog6(r) = d(Log6Vec(m))/dr evaluated via the chain
		// m(r) = exp6(r), i.e. finite-difference exp6 then Log6Vec.
		fp := Log6Vec(exp6(rp))
		fm := Log6Vec(exp6(rm))
		for i := 0; i < 6; i++ {
			num := (fp[i] - fm[i]) / (2 * h)
			chk.AnaNum(tst, "Jlog6", 1e-4, Jana.At(i, j), num, false)
		}
	}
}

// Test_freefloating_manifold_laws checks Difference(q, Integrate(q,dq)) == dq
// for small dq, the composite-state consistency law of spec §4.1.
func Test_freefloating_manifold_laws(tst *testing.T) {

	chk.PrintTitle("freefloating_manifold_laws")

	f := NewFreeFloatingToy(2)
	q := f.RandomConfiguration()
	dq := []float64{0.01, -0.02, 0.005, 0.01, -0.01, 0.02, 0.03, -0.04}

	q1 := f.Integrate(q, dq)
	dqBack := f.Difference(q, q1)
	chk.Array(tst, "dq", 1e-6, dq, dqBack)
}

// Test_freefloating_neutral_roundtrip checks Integrate(q,0) == q.
func Test_freefloating_neutral_roundtrip(tst *testing.T) {

	chk.PrintTitle("freefloating_neutral_roundtrip")

	f := NewFreeFloatingToy(1)
	q := f.RandomConfiguration()
	zero := make([]float64, f.NV())
	q1 := f.Integrate(q, zero)

	for i := range q {
		if math.Abs(q[i]-q1[i]) > 1e-9 {
			tst.Fatalf("Integrate(q,0) should equal q: i=%d q=%g q1=%g", i, q[i], q1[i])
		}
	}
}
