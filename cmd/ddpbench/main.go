// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/ddp/scenarios"
	"github.com/cpmech/ddp/solver"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	io.PfWhite("\nddpbench -- DDP/FDDP solver microbenchmark\n\n")

	flag.Parse()
	trials := 5000
	if len(flag.Args()) > 0 {
		trials = io.Atoi(flag.Arg(0))
	}

	n := 4
	dt := 1e-2
	nKnots := 30

	start := time.Now()
	var lastStatus solver.Status
	failures := 0
	for t := 0; t < trials; t++ {
		prob := scenarios.NewPlanarReachProblem(n, dt, nKnots, 0.5, 0.5)
		s := solver.NewSolver(prob.Problem)
		_, _, status := s.Solve(prob.Xs0, prob.Us0, 100, false)
		lastStatus = status
		if status != solver.StatusConverged {
			failures++
		}
	}
	elapsed := time.Since(start)

	io.Pf("trials=%d  total=%v  per-trial=%v  last-status=%s\n", trials, elapsed, elapsed/time.Duration(trials), lastStatus)

	if failures > 0 {
		chk.Panic("ddpbench: %d of %d trials did not converge", failures, trials)
	}
}
