// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/ddp/shooting"
)

// NewSolverFromPrms builds a solver whose tuning constants are read from a
// material-parameter-style database, following gofem's model Init(prms)
// convention: any constant not present in prms keeps the NewSolver default.
func NewSolverFromPrms(p *shooting.ShootingProblem, prms fun.Prms) *Solver {
	s := NewSolver(p)
	prms.Connect(&s.RegInit, "reg_init", "DDP/FDDP initial regularization")
	prms.Connect(&s.RegMin, "reg_min", "DDP/FDDP minimum regularization")
	prms.Connect(&s.RegMax, "reg_max", "DDP/FDDP maximum regularization")
	prms.Connect(&s.RegIncr, "reg_incr", "DDP/FDDP regularization growth factor")
	prms.Connect(&s.RegDecr, "reg_decr", "DDP/FDDP regularization decay factor")
	prms.Connect(&s.ThStop, "th_stop", "DDP/FDDP stopping tolerance")
	prms.Connect(&s.ChangeLB, "change_lb", "DDP/FDDP line-search acceptance lower bound")
	prms.Connect(&s.ChangeUB, "change_ub", "DDP/FDDP line-search acceptance upper bound")
	prms.Connect(&s.AlphaMin, "alpha_min", "DDP/FDDP minimum line-search step length")
	return s
}
