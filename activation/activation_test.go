// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package activation

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_quadratic01(tst *testing.T) {

	chk.PrintTitle("quadratic01")

	a := NewWeightedQuadratic([]float64{2, 3})
	r := []float64{1, -2}
	chk.Scalar(tst, "calc", 1e-15, a.Calc(r), 0.5*(2*1+3*4))
	ar, arr := a.CalcDiff(r)
	chk.Array(tst, "ar", 1e-15, ar, []float64{2, -6})
	chk.Matrix(tst, "arr", 1e-15, arr, [][]float64{{2, 0}, {0, 3}})
}

func Test_box01(tst *testing.T) {

	chk.PrintTitle("box01: gradient is zero inside bounds, signed outside")

	lower := []float64{-1, math.Inf(-1)}
	upper := []float64{1, 2}
	a := NewBox(lower, upper, 0)

	// inside bounds: zero gradient.
	rIn := []float64{0, 1}
	arIn, _ := a.CalcDiff(rIn)
	for i, v := range arIn {
		chk.Scalar(tst, "ar inside", 1e-15, v, 0)
		_ = i
	}

	// strictly above the upper bound: positive gradient.
	rAbove := []float64{0, 5}
	arAbove, _ := a.CalcDiff(rAbove)
	if arAbove[1] <= 0 {
		tst.Fatalf("gradient above upper bound should be > 0, got %g", arAbove[1])
	}

	// strictly below the lower bound: negative gradient.
	rBelow := []float64{-5, 1}
	arBelow, _ := a.CalcDiff(rBelow)
	if arBelow[0] >= 0 {
		tst.Fatalf("gradient below lower bound should be < 0, got %g", arBelow[0])
	}
}

func Test_box_infinite_side(tst *testing.T) {

	chk.PrintTitle("box_infinite_side: an infinite bound never contributes")

	a := NewBox([]float64{math.Inf(-1)}, []float64{math.Inf(1)}, 0)
	chk.Scalar(tst, "calc", 1e-15, a.Calc([]float64{1e6}), 0)
}
