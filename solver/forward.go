// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "math"

// forwardPassLineSearch tries step lengths alpha in {1, 1/2, 1/4, ...,
// AlphaMin}, committing the first one accepted by the expected-improvement
// ratio test of spec.md §4.9. FDDP's gap interpolation (the (1-alpha).g
// term) is applied in the tangent before each knot's integrate call, so
// alpha=1 closes every multiple-shooting gap in one shot and smaller alpha
// leaves a proportional residual gap.
func (s *Solver) forwardPassLineSearch() (accepted bool, alphaUsed float64) {
	n := s.Problem.T()
	v0 := s.Problem.TotalCost

	for alpha := 1.0; alpha >= s.AlphaMin; alpha *= 0.5 {
		xnew := make([][]float64, n+1)
		unew := make([][]float64, n)
		xnew[0] = append([]float64(nil), s.xs[0]...)

		diverged := false
		for k := 0; k < n; k++ {
			m := s.Problem.Running[k]
			st := m.St()
			dx := st.Diff(s.xs[k], xnew[k])

			nu := len(s.us[k])
			uk := make([]float64, nu)
			Kk := s.K[k]
			for i := 0; i < nu; i++ {
				var kdx float64
				for j := range dx {
					kdx += Kk[i][j] * dx[j]
				}
				uk[i] = s.us[k][i] + alpha*s.k[k][i] + kdx
			}
			unew[k] = uk

			xk1, _ := m.Calc(xnew[k], uk)
			gap := s.Problem.Knots[k].Gap
			if len(gap) > 0 && (1-alpha) != 0 {
				tangentGap := make([]float64, len(gap))
				for i := range gap {
					tangentGap[i] = (1 - alpha) * gap[i]
				}
				xk1 = st.Integrate(xk1, tangentGap)
			}
			if !finiteVec(xk1) {
				diverged = true
				break
			}
			xnew[k+1] = xk1
		}
		if diverged {
			continue
		}

		costNew := s.Problem.Calc(xnew, unew)
		if !math.IsNaN(costNew) && !math.IsInf(costNew, 0) {
			// d1 < 0 for a descent step, so the predicted reduction is
			// the negated expected change.
			expected := -(alpha*s.d1 + 0.5*alpha*alpha*s.d2)
			var z float64
			if math.Abs(expected) < 1e-12 {
				z = 0
			} else {
				z = (v0 - costNew) / expected
			}
			if z >= s.ChangeLB && z <= s.ChangeUB {
				s.xs = xnew
				s.us = unew
				s.Problem.CalcDiff(s.xs, s.us)
				return true, alpha
			}
		}
	}
	// no step accepted: recompute so Knots/TotalCost reflect the committed
	// (unchanged) trajectory before the next backward pass.
	s.Problem.Calc(s.xs, s.us)
	return false, 0
}

func finiteVec(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
