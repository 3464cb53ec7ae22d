// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cost implements the cost-sum aggregator of spec.md §4.4: a
// mapping from unique name to (residual, activation, weight), composed via
// the Gauss-Newton approximation into l, Lx, Lu, Lxx, Lxu, Luu, plus the
// stacked residual buffers R, Rx_stack, Ru_stack used by solvers that want
// the raw Gauss-Newton factors directly.
package cost

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ddp/activation"
	"github.com/cpmech/ddp/residual"
)

type namedCost struct {
	name   string
	res    residual.Residual
	act    activation.Activation
	weight float64
}

// CostModelSum aggregates named residual costs over a common (ndx, nu)
// tangent/control pair. Costs are iterated in insertion order so the
// stacked buffers are reproducible across runs (spec.md §4.4).
type CostModelSum struct {
	ndx   int
	nu    int
	costs []namedCost
	index map[string]int

	// L is recomputed by Calc and CalcDiff; Lx, Lu, Lxx, Lxu, Luu and the
	// stacked Gauss-Newton buffers are re-zeroed and repopulated by CalcDiff.
	L   float64
	Lx  []float64
	Lu  []float64
	Lxx [][]float64
	Lxu [][]float64
	Luu [][]float64

	NRStack int
	R       []float64
	RxStack [][]float64
	RuStack [][]float64
}

// NewCostModelSum builds an empty cost sum over a state tangent of size ndx
// and a control of size nu.
func NewCostModelSum(ndx, nu int) *CostModelSum {
	return &CostModelSum{
		ndx:   ndx,
		nu:    nu,
		index: make(map[string]int),
	}
}

// AddCost inserts a named residual cost; name must be unique and weight must
// be strictly positive (spec.md §4.4, §7).
func (c *CostModelSum) AddCost(name string, res residual.Residual, act activation.Activation, weight float64) {
	if _, exists := c.index[name]; exists {
		chk.Panic("CostModelSum: cost %q already exists", name)
	}
	if weight <= 0 {
		chk.Panic("CostModelSum: weight of %q must be > 0, got %g", name, weight)
	}
	if res.NR() != act.NR() {
		chk.Panic("CostModelSum: %q residual size %d != activation size %d", name, res.NR(), act.NR())
	}
	c.index[name] = len(c.costs)
	c.costs = append(c.costs, namedCost{name: name, res: res, act: act, weight: weight})
}

// RemoveCost deletes a named cost; errors (panics, per the package's
// construction-time-invariant convention) if absent.
func (c *CostModelSum) RemoveCost(name string) {
	i, exists := c.index[name]
	if !exists {
		chk.Panic("CostModelSum: cost %q does not exist", name)
	}
	c.costs = append(c.costs[:i], c.costs[i+1:]...)
	delete(c.index, name)
	for n, j := range c.index {
		if j > i {
			c.index[n] = j - 1
		}
	}
}

func zeroVec(n int) []float64 { return make([]float64, n) }

func zeroMat(nr, nc int) [][]float64 {
	m := make([][]float64, nr)
	for i := range m {
		m[i] = make([]float64, nc)
	}
	return m
}

// Calc accumulates the weighted cost value over every active residual.
func (c *CostModelSum) Calc(x, u []float64) float64 {
	c.L = 0
	for _, nc := range c.costs {
		r := nc.res.Calc(x, u)
		c.L += nc.weight * nc.act.Calc(r)
	}
	return c.L
}

// CalcDiff accumulates weighted derivatives into the shared buffers and
// fills the stacked residual/Jacobian buffers (row blocks scaled by
// sqrt(weight)) for downstream Gauss-Newton consumers.
func (c *CostModelSum) CalcDiff(x, u []float64) {
	c.L = 0
	c.Lx = zeroVec(c.ndx)
	c.Lu = zeroVec(c.nu)
	c.Lxx = zeroMat(c.ndx, c.ndx)
	c.Lxu = zeroMat(c.ndx, c.nu)
	c.Luu = zeroMat(c.nu, c.nu)

	c.NRStack = 0
	for _, nc := range c.costs {
		c.NRStack += nc.res.NR()
	}
	c.R = zeroVec(c.NRStack)
	c.RxStack = zeroMat(c.NRStack, c.ndx)
	c.RuStack = zeroMat(c.NRStack, c.nu)

	row := 0
	for _, nc := range c.costs {
		r, Rx, Ru := nc.res.CalcDiff(x, u)
		ar, arr := nc.act.CalcDiff(r)
		c.L += nc.weight * nc.act.Calc(r)

		nr := nc.res.NR()
		sw := math.Sqrt(nc.weight)
		for i := 0; i < nr; i++ {
			c.R[row+i] = sw * r[i]
			if Rx != nil {
				copy(c.RxStack[row+i], Rx[i])
				for j := range c.RxStack[row+i] {
					c.RxStack[row+i][j] *= sw
				}
			}
			if Ru != nil {
				copy(c.RuStack[row+i], Ru[i])
				for j := range c.RuStack[row+i] {
					c.RuStack[row+i][j] *= sw
				}
			}
		}
		row += nr

		// Lx += w * Rx^T ar, Lu += w * Ru^T ar
		for j := 0; j < c.ndx; j++ {
			var s float64
			for i := 0; i < nr; i++ {
				if Rx != nil {
					s += Rx[i][j] * ar[i]
				}
			}
			c.Lx[j] += nc.weight * s
		}
		for j := 0; j < c.nu; j++ {
			var s float64
			for i := 0; i < nr; i++ {
				if Ru != nil {
					s += Ru[i][j] * ar[i]
				}
			}
			c.Lu[j] += nc.weight * s
		}

		// Lxx += w * Rx^T arr Rx, Lxu += w * Rx^T arr Ru, Luu += w * Ru^T arr Ru
		addGaussNewtonBlock(c.Lxx, Rx, Rx, arr, nc.weight, c.ndx, c.ndx, nr)
		addGaussNewtonBlock(c.Lxu, Rx, Ru, arr, nc.weight, c.ndx, c.nu, nr)
		addGaussNewtonBlock(c.Luu, Ru, Ru, arr, nc.weight, c.nu, c.nu, nr)
	}
}

// addGaussNewtonBlock accumulates w * A^T . arr . B into dst (rows x cols),
// where A is nr x rows and B is nr x cols; either A or B may be nil
// (zero-Jacobian block), in which case the contribution is skipped.
func addGaussNewtonBlock(dst [][]float64, A, B [][]float64, arr [][]float64, w float64, rows, cols, nr int) {
	if A == nil || B == nil {
		return
	}
	for p := 0; p < rows; p++ {
		for q := 0; q < cols; q++ {
			var s float64
			for i := 0; i < nr; i++ {
				var t float64
				for k := 0; k < nr; k++ {
					t += arr[i][k] * B[k][q]
				}
				s += A[i][p] * t
			}
			dst[p][q] += w * s
		}
	}
}
