// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/ddp/dynamics"
)

// checkManifoldLaws verifies diff(x, integrate(x, dx)) == dx and
// integrate(x0, diff(x0, x1)) == x1 to within tol.
func checkManifoldLaws(tst *testing.T, name string, s State, x, dx []float64, tol float64) {
	x1 := s.Integrate(x, dx)
	dxBack := s.Diff(x, x1)
	for i := range dx {
		chk.Scalar(tst, io.Sf("%s diff(integrate)[%d]", name, i), tol, dxBack[i], dx[i])
	}
	x0 := x
	x1b := s.Integrate(x0, s.Diff(x0, x1))
	for i := range x1b {
		chk.Scalar(tst, io.Sf("%s integrate(diff)[%d]", name, i), tol, x1b[i], x1[i])
	}
}

func Test_vector01(tst *testing.T) {

	chk.PrintTitle("vector01: manifold laws on a flat Euclidean state")

	s := NewVector(4)
	x := s.Rand()
	dx := s.Rand()
	checkManifoldLaws(tst, "vector", s, x, dx, 1e-12)
}

func Test_vector_jacobians(tst *testing.T) {

	chk.PrintTitle("vector_jacobians: Jdiff/Jintegrate are +-I")

	s := NewVector(3)
	x0 := s.Rand()
	x1 := s.Rand()
	J0, J1 := s.JDiff(x0, x1, dynamics.ArgBoth)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			chk.Scalar(tst, "J1[i][j]", 1e-15, J1.At(i, j), want)
			chk.Scalar(tst, "J0[i][j]", 1e-15, J0.At(i, j), -want)
		}
	}
}

func Test_composite01(tst *testing.T) {

	chk.PrintTitle("composite01: manifold laws on the Lie-group composite state")

	arm := dynamics.NewPlanarArm(3, 1.0, 1.0)
	s := NewComposite(arm)
	x := s.Rand()
	dx := s.Rand()
	checkManifoldLaws(tst, "composite", s, x, dx, 1e-12)
}

func Test_composite_sizes(tst *testing.T) {

	chk.PrintTitle("composite_sizes")

	arm := dynamics.NewPlanarArm(5, 1.0, 1.0)
	s := NewComposite(arm)
	if s.NX() != 10 {
		tst.Fatalf("NX should be 10, got %d", s.NX())
	}
	if s.NDX() != 10 {
		tst.Fatalf("NDX should be 10, got %d", s.NDX())
	}
}
