// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver implements the DDP/FDDP Riccati solver and the dense KKT
// Newton reference solver of spec.md §4.8/§4.9.
package solver

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/ddp/shooting"
)

// Status is the tri-state solver outcome of spec.md §6.
type Status int

const (
	StatusConverged Status = iota
	StatusMaxIterReached
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusMaxIterReached:
		return "max_iter_reached"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Callback is invoked once per iteration with the diagnostics the caller
// may want to log or plot.
type Callback func(iter int, cost, gradNorm, mu, stepLength float64)

// PrintCallback is a Callback that prints one line per iteration in the
// teacher's chk.PrintTitle/io.Pf idiom.
func PrintCallback(iter int, cost, gradNorm, mu, stepLength float64) {
	io.Pf("iter=%3d  cost=%13.6e  |Qu|=%10.3e  mu=%10.3e  alpha=%6.4f\n", iter, cost, gradNorm, mu, stepLength)
}

// Solver is the DDP/FDDP Riccati solver of spec.md §4.9.
type Solver struct {
	Problem *shooting.ShootingProblem

	RegInit  float64
	RegMin   float64
	RegMax   float64
	RegIncr  float64
	RegDecr  float64
	ThStop   float64
	ChangeLB float64
	ChangeUB float64
	AlphaMin float64

	Callback Callback

	mu float64

	xs [][]float64
	us [][]float64

	// per-knot backward-pass outputs.
	k []([]float64)
	K [][][]float64

	d1, d2 float64
}

// NewSolver builds a solver with the spec's default tuning constants.
func NewSolver(p *shooting.ShootingProblem) *Solver {
	return &Solver{
		Problem:  p,
		RegInit:  1e-9,
		RegMin:   1e-9,
		RegMax:   1e9,
		RegIncr:  10,
		RegDecr:  0.5,
		ThStop:   1e-9,
		ChangeLB: 1e-8,
		ChangeUB: 10,
		AlphaMin: 1.0 / 32,
	}
}

// Solve runs the solver from the given initial guess. isFeasible hints that
// the multiple-shooting gaps may be assumed zero on the first backward
// pass (classic DDP path); when false (the common case for a cold-started,
// possibly inconsistent guess) FDDP's gap-aware backward pass (spec.md
// §4.9) and the forward pass's (1-alpha) gap interpolation (spec.md §4.9)
// close the gaps progressively over iterations, starting from whatever
// gaps xsInit actually has.
func (s *Solver) Solve(xsInit, usInit [][]float64, maxIter int, isFeasible bool) (xs, us [][]float64, status Status) {
	s.xs = cloneMat(xsInit)
	s.us = cloneMat(usInit)
	s.mu = s.RegInit

	s.Problem.CalcDiff(s.xs, s.us)
	if isFeasible {
		for k := range s.Problem.Knots {
			for i := range s.Problem.Knots[k].Gap {
				s.Problem.Knots[k].Gap[i] = 0
			}
		}
	}

	for iter := 0; iter < maxIter; iter++ {
		gradNorm, ok := s.backwardPass()
		if !ok {
			return s.xs, s.us, StatusFailed
		}

		stop := math.Max(gradNorm, s.maxGapNorm())
		if stop < s.ThStop {
			if s.Callback != nil {
				s.Callback(iter, s.Problem.TotalCost, gradNorm, s.mu, 0)
			}
			return s.xs, s.us, StatusConverged
		}

		accepted, alpha := s.forwardPassLineSearch()
		if s.Callback != nil {
			s.Callback(iter, s.Problem.TotalCost, gradNorm, s.mu, alpha)
		}
		if accepted {
			s.mu = math.Max(s.RegMin, s.mu*s.RegDecr)
		} else {
			s.mu *= s.RegIncr
			if s.mu > s.RegMax {
				return s.xs, s.us, StatusFailed
			}
		}
	}
	return s.xs, s.us, StatusMaxIterReached
}

func (s *Solver) maxGapNorm() float64 {
	var mx float64
	for _, kn := range s.Problem.Knots {
		for _, g := range kn.Gap {
			if a := math.Abs(g); a > mx {
				mx = a
			}
		}
	}
	return mx
}

func cloneMat(a [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i, row := range a {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
