// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/ddp/shooting"
)

// KKTSolver forms and solves the dense Newton system for the multiple-
// shooting Lagrangian of spec.md §4.8: equality constraints xs[k+1] -
// xnext_k = 0 (in the tangent space, via diff) are enforced exactly at
// every Newton step. Used as a correctness oracle in tests, not for
// production-sized problems (the system is O((N.(ndx+nu))^2) dense).
type KKTSolver struct {
	Problem *shooting.ShootingProblem
	ThStop  float64
	MaxIter int
}

// NewKKTSolver builds a KKT solver with the spec's default tolerance.
func NewKKTSolver(p *shooting.ShootingProblem) *KKTSolver {
	return &KKTSolver{Problem: p, ThStop: 1e-9, MaxIter: 100}
}

// Solve runs dense Newton iterations on the primal-dual system until the
// largest component of the primal Newton step falls below ThStop (or the
// largest running-knot |Lx| and gap component already does), or MaxIter is
// reached.
func (s *KKTSolver) Solve(xsInit, usInit [][]float64) (xs, us [][]float64, converged bool) {
	n := s.Problem.T()
	xs = cloneMat(xsInit)
	us = cloneMat(usInit)

	ndx := s.Problem.Running[0].St().NDX()
	nu := len(us[0])

	for iter := 0; iter < s.MaxIter; iter++ {
		s.Problem.CalcDiff(xs, us)

		// Stack primal variables as dx_k (k=0..N, dx_0 fixed at 0) and du_k
		// (k=0..N-1); stack N+1 dual blocks: lambda_0 for dx_0 = 0 and
		// lambda_{k+1} for each constraint g_k = diff(xs[k+1], xnext_k) = 0.
		nPrimal := n*(ndx+nu) + ndx
		nDual := (n + 1) * ndx
		nTot := nPrimal + nDual

		H := mat.NewDense(nTot, nTot, nil)
		rhs := mat.NewVecDense(nTot, nil)

		primalIdx := func(k int) (xoff, uoff int) {
			return k * (ndx + nu), k*(ndx+nu) + ndx
		}
		dualIdx := func(k int) int { return nPrimal + k*ndx }

		gradNorm := 0.0

		// initial-state equality: dx_0 = 0 (lambda at slot dualIdx(0)).
		l0 := dualIdx(0)
		x0off, _ := primalIdx(0)
		for i := 0; i < ndx; i++ {
			H.Set(l0+i, x0off+i, 1)
			H.Set(x0off+i, l0+i, 1)
		}

		for k := 0; k < n; k++ {
			kn := s.Problem.Knots[k]
			xoff, uoff := primalIdx(k)
			lk := dualIdx(k + 1)

			for i := 0; i < ndx; i++ {
				for j := 0; j < ndx; j++ {
					H.Set(xoff+i, xoff+j, H.At(xoff+i, xoff+j)+kn.Lxx[i][j])
				}
				for j := 0; j < nu; j++ {
					H.Set(xoff+i, uoff+j, H.At(xoff+i, uoff+j)+kn.Lxu[i][j])
					H.Set(uoff+j, xoff+i, H.At(uoff+j, xoff+i)+kn.Lxu[i][j])
				}
			}
			for i := 0; i < nu; i++ {
				for j := 0; j < nu; j++ {
					H.Set(uoff+i, uoff+j, H.At(uoff+i, uoff+j)+kn.Luu[i][j])
				}
			}
			for i := 0; i < ndx; i++ {
				rhs.SetVec(xoff+i, -kn.Lx[i])
				if a := math.Abs(kn.Lx[i]); a > gradNorm {
					gradNorm = a
				}
			}
			for i := 0; i < nu; i++ {
				rhs.SetVec(uoff+i, -kn.Lu[i])
			}

			// constraint diff(xs[k+1], xnext_k) = 0 linearized:
			// dx_{k+1} - Fx.dx_k - Fu.du_k = g_k, coupling
			// lambda_{k+1} to primal blocks (xoff,uoff) and (xoff', ·).
			xoffNext, _ := primalIdx(k + 1)
			for i := 0; i < ndx; i++ {
				H.Set(lk+i, xoffNext+i, H.At(lk+i, xoffNext+i)+1)
				H.Set(xoffNext+i, lk+i, H.At(xoffNext+i, lk+i)+1)
				for j := 0; j < ndx; j++ {
					H.Set(lk+i, xoff+j, H.At(lk+i, xoff+j)-kn.Fx[i][j])
					H.Set(xoff+j, lk+i, H.At(xoff+j, lk+i)-kn.Fx[i][j])
				}
				for j := 0; j < nu; j++ {
					H.Set(lk+i, uoff+j, H.At(lk+i, uoff+j)-kn.Fu[i][j])
					H.Set(uoff+j, lk+i, H.At(uoff+j, lk+i)-kn.Fu[i][j])
				}
				rhs.SetVec(lk+i, kn.Gap[i])
				if a := math.Abs(kn.Gap[i]); a > gradNorm {
					gradNorm = a
				}
			}
		}

		xoffN, _ := primalIdx(n)
		for i := 0; i < ndx; i++ {
			H.Set(xoffN+i, xoffN+i, H.At(xoffN+i, xoffN+i)+s.Problem.TerminalLxx[i][i])
			for j := 0; j < ndx; j++ {
				if i != j {
					H.Set(xoffN+i, xoffN+j, H.At(xoffN+i, xoffN+j)+s.Problem.TerminalLxx[i][j])
				}
			}
			rhs.SetVec(xoffN+i, -s.Problem.TerminalLx[i])
		}

		if gradNorm < s.ThStop {
			return xs, us, true
		}

		var lu mat.LU
		lu.Factorize(H)
		var sol mat.VecDense
		if err := lu.SolveVecTo(&sol, false, rhs); err != nil {
			chk.Panic("KKTSolver: singular KKT system at iter %d: %v", iter, err)
		}
		var stepNorm float64
		for i := 0; i < nPrimal; i++ {
			if a := math.Abs(sol.AtVec(i)); a > stepNorm {
				stepNorm = a
			}
		}
		if stepNorm < s.ThStop {
			return xs, us, true
		}

		for k := 0; k <= n; k++ {
			xoff, _ := primalIdx(k)
			dx := make([]float64, ndx)
			for i := 0; i < ndx; i++ {
				dx[i] = sol.AtVec(xoff + i)
			}
			xs[k] = s.Problem.Running[minInt(k, n-1)].St().Integrate(xs[k], dx)
			if k < n {
				_, uoff := primalIdx(k)
				for i := 0; i < nu; i++ {
					us[k][i] += sol.AtVec(uoff + i)
				}
			}
		}
		s.Problem.Calc(xs, us)
	}
	return xs, us, false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
