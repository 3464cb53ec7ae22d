// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numdiff

import (
	"github.com/cpmech/gosl/num"

	"github.com/cpmech/ddp/residual"
	"github.com/cpmech/ddp/state"
)

// ResidualJacobians finite-differences a residual's Rx, Ru at (x, u),
// perturbing x in the tangent of st (spec.md §4.10), one component at a
// time via gosl/num.DerivCen — the same derivfcn the teacher's material-
// model drivers use to cross-check an analytic tangent (msolid/driver.go,
// mdl/solid/t_hyperelast1_test.go), with num.DerivFwd as the one-sided
// fallback for residuals evaluated at a manifold boundary where the
// centered stencil would step outside the domain. Used only in tests to
// cross-check the analytic catalog in package residual.
func ResidualJacobians(r residual.Residual, st state.State, x, u []float64, useFwd bool) (Rx, Ru [][]float64) {
	ndx := st.NDX()
	nu := len(u)
	nr := r.NR()

	derivfcn := num.DerivCen
	if useFwd {
		derivfcn = num.DerivFwd
	}

	Rx = make([][]float64, nr)
	for i := range Rx {
		Rx[i] = make([]float64, ndx)
	}
	dx := make([]float64, ndx)
	for j := 0; j < ndx; j++ {
		for i := 0; i < nr; i++ {
			i := i
			Rx[i][j] = derivfcn(func(dxj float64, args ...interface{}) (res float64) {
				dx[j] = dxj
				xp := st.Integrate(x, dx)
				dx[j] = 0
				return r.Calc(xp, u)[i]
			}, 0)
		}
	}

	Ru = make([][]float64, nr)
	for i := range Ru {
		Ru[i] = make([]float64, nu)
	}
	up := append([]float64(nil), u...)
	for j := 0; j < nu; j++ {
		for i := 0; i < nr; i++ {
			i := i
			Ru[i][j] = derivfcn(func(uj float64, args ...interface{}) (res float64) {
				up[j] = uj
				res = r.Calc(x, up)[i]
				up[j] = u[j]
				return
			}, u[j])
		}
	}
	return
}
