// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

func matFromPlain(a [][]float64) *mat.Dense {
	r := len(a)
	if r == 0 {
		return mat.NewDense(0, 0, nil)
	}
	c := len(a[0])
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, a[i][j])
		}
	}
	return out
}

func vecFromPlain(a []float64) *mat.VecDense {
	return mat.NewVecDense(len(a), append([]float64(nil), a...))
}

func plainFromVec(v *mat.VecDense) []float64 {
	n := v.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = v.AtVec(i)
	}
	return out
}

func plainFromMat(m *mat.Dense) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

func infNorm(v *mat.VecDense) float64 {
	var mx float64
	for i := 0; i < v.Len(); i++ {
		if a := math.Abs(v.AtVec(i)); a > mx {
			mx = a
		}
	}
	return mx
}

// backwardPass runs the Riccati recursion of spec.md §4.9 over the current
// knot buffers. It retries with an increasing mu whenever Quu_r fails its
// Cholesky factorization, up to RegMax; it returns ok=false only when even
// RegMax is not enough to make Quu_r positive-definite.
func (s *Solver) backwardPass() (gradNorm float64, ok bool) {
	n := s.Problem.T()
	s.k = make([][]float64, n)
	s.K = make([][][]float64, n)

	for {
		Vx := vecFromPlain(s.Problem.TerminalLx)
		Vxx := matFromPlain(s.Problem.TerminalLxx)

		s.d1, s.d2 = 0, 0
		var maxQu float64
		failed := false

		for idx := n - 1; idx >= 0; idx-- {
			kn := s.Problem.Knots[idx]
			Fx := matFromPlain(kn.Fx)
			Fu := matFromPlain(kn.Fu)
			Lx := vecFromPlain(kn.Lx)
			Lu := vecFromPlain(kn.Lu)
			Lxx := matFromPlain(kn.Lxx)
			Lxu := matFromPlain(kn.Lxu)
			Luu := matFromPlain(kn.Luu)
			g := vecFromPlain(kn.Gap)

			nu, _ := Fu.Dims()
			_ = nu
			nv, _ := Fx.Dims()
			_ = nv

			// t = Vx + Vxx . g
			var Vxxg mat.VecDense
			Vxxg.MulVec(Vxx, g)
			var t mat.VecDense
			t.AddVec(Vx, &Vxxg)

			var Qx, Qu mat.VecDense
			var FxtT, FutT mat.VecDense
			FxtT.MulVec(Fx.T(), &t)
			Qx.AddVec(Lx, &FxtT)
			FutT.MulVec(Fu.T(), &t)
			Qu.AddVec(Lu, &FutT)

			var FxtVxx, Qxx mat.Dense
			FxtVxx.Mul(Fx.T(), Vxx)
			var FxtVxxFx mat.Dense
			FxtVxxFx.Mul(&FxtVxx, Fx)
			Qxx.Add(Lxx, &FxtVxxFx)

			var FutVxx, Quu mat.Dense
			FutVxx.Mul(Fu.T(), Vxx)
			var FutVxxFu mat.Dense
			FutVxxFu.Mul(&FutVxx, Fu)
			Quu.Add(Luu, &FutVxxFu)

			var FutVxxFx, Qux mat.Dense
			FutVxxFx.Mul(&FutVxx, Fx)
			Qux.Add(Lxu.T(), &FutVxxFx)

			muR := mat.NewDense(Quu.RawMatrix().Rows, Quu.RawMatrix().Rows, nil)
			var FutFu mat.Dense
			FutFu.Mul(Fu.T(), Fu)
			muR.Scale(s.mu, &FutFu)
			var QuuR mat.Dense
			QuuR.Add(&Quu, muR)

			var FutFx mat.Dense
			FutFx.Mul(Fu.T(), Fx)
			muRux := mat.NewDense(FutFx.RawMatrix().Rows, FutFx.RawMatrix().Cols, nil)
			muRux.Scale(s.mu, &FutFx)
			var QuxR mat.Dense
			QuxR.Add(&Qux, muRux)

			sym := symmetrizeToSym(&QuuR)
			var chol mat.Cholesky
			if ok2 := chol.Factorize(sym); !ok2 {
				failed = true
				break
			}

			var kvec mat.VecDense
			if err := chol.SolveVecTo(&kvec, &Qu); err != nil {
				failed = true
				break
			}
			kvec.ScaleVec(-1, &kvec)

			var Kmat mat.Dense
			if err := chol.SolveTo(&Kmat, &QuxR); err != nil {
				failed = true
				break
			}
			Kmat.Scale(-1, &Kmat)

			s.k[idx] = plainFromVec(&kvec)
			s.K[idx] = plainFromMat(&Kmat)

			// Vx = Qx + K^T Quu k + K^T Qu + Qux^T k
			var Quuk, KtQuuk mat.VecDense
			Quuk.MulVec(&Quu, &kvec)
			KtQuuk.MulVec(Kmat.T(), &Quuk)
			var KtQu mat.VecDense
			KtQu.MulVec(Kmat.T(), &Qu)
			var Quxtk mat.VecDense
			Quxtk.MulVec(Qux.T(), &kvec)
			var newVx mat.VecDense
			newVx.AddVec(&Qx, &KtQuuk)
			newVx.AddVec(&newVx, &KtQu)
			newVx.AddVec(&newVx, &Quxtk)
			Vx = &newVx

			// Vxx = Qxx + K^T Quu K + K^T Qux + Qux^T K, symmetrized
			var KtQuu, KtQuuK mat.Dense
			KtQuu.Mul(Kmat.T(), &Quu)
			KtQuuK.Mul(&KtQuu, &Kmat)
			var KtQux mat.Dense
			KtQux.Mul(Kmat.T(), &Qux)
			var QuxtK mat.Dense
			QuxtK.Mul(Qux.T(), &Kmat)
			var newVxx mat.Dense
			newVxx.Add(&Qxx, &KtQuuK)
			newVxx.Add(&newVxx, &KtQux)
			newVxx.Add(&newVxx, &QuxtK)
			Vxx = symmetrize(&newVxx)

			// dV_exp += k^T Qu + 1/2 k^T Quu k (alpha-linear and alpha^2 parts).
			s.d1 += mat.Dot(&kvec, &Qu)
			s.d2 += mat.Dot(&kvec, &Quuk)

			if a := infNorm(&Qu); a > maxQu {
				maxQu = a
			}
		}

		if !failed {
			gradNorm = maxQu
			ok = true
			return
		}

		s.mu *= s.RegIncr
		if s.mu > s.RegMax {
			ok = false
			return
		}
	}
}

func symmetrize(a *mat.Dense) *mat.Dense {
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return out
}

func symmetrizeToSym(a *mat.Dense) *mat.SymDense {
	r, _ := a.Dims()
	out := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			out.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return out
}
