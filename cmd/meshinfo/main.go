// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command meshinfo builds one of the four topology flavors from flag-
// supplied dimensions, simulating the requested number of ranks in-process,
// and prints a one-rank-per-line summary. It is a thin consumer of the mesh
// package, exercising the library end to end the way gofem's own main.go
// drives the fem package.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bballamudi/CLIMA/mesh"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	dim := flag.Int("dim", 2, "horizontal dimension for brick mode (1..3)")
	nStr := flag.String("n", "4,4,4", "comma-separated element counts per horizontal axis")
	periodicStr := flag.String("periodic", "", "comma-separated booleans per horizontal axis")
	ranks := flag.Int("ranks", 1, "number of simulated ranks")
	shell := flag.Bool("shell", false, "build a cubed-shell / stacked-cubed-sphere instead of a brick")
	stack := flag.Int("stack", 0, "vertical element count; 0 builds a flat topology")
	flag.Parse()
	defer utl.DoProf(false)()

	io.PfWhite("\nmeshinfo -- distributed mesh topology core\n\n")
	io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	ns := parseInts(*nStr)
	periodic := parseBools(*periodicStr, *dim)

	comms := mesh.NewLocalComm(*ranks)
	lines := make([]string, *ranks)
	var wg sync.WaitGroup
	for r := 0; r < *ranks; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			topo, err := build(comms[r], *dim, ns, periodic, *shell, *stack)
			if err != nil {
				lines[r] = fmt.Sprintf("rank %d: ERROR: %v", r, err)
				return
			}
			lines[r] = summarize(topo)
		}(r)
	}
	wg.Wait()

	for _, l := range lines {
		io.Pfcyan("%s\n", l)
	}
}

func build(comm mesh.Comm, dim int, ns []int, periodic []bool, shell bool, stack int) (*mesh.Topology, error) {
	if shell {
		ne := ns[0]
		if stack <= 0 {
			return mesh.CubedShellTopology(comm, ne)
		}
		radii := utl.LinSpace(1, float64(stack+1), stack+1)
		return mesh.StackedCubedSphereTopology(comm, ne, stack, radii, mesh.WithBC(1, 2))
	}

	elemRange := make([][]float64, dim)
	for d := 0; d < dim; d++ {
		elemRange[d] = mesh.UniformAxis(0, float64(ns[d]), ns[d])
	}
	opts := []mesh.Option{mesh.WithPeriodicity(periodic...)}
	if stack <= 0 {
		return mesh.BrickTopology(comm, elemRange, opts...)
	}
	radii := utl.LinSpace(0, float64(stack), stack+1)
	return mesh.StackedBrickTopology(comm, elemRange, stack, radii, append(opts, mesh.WithBC(1, 2))...)
}

func summarize(t *mesh.Topology) string {
	return fmt.Sprintf("rank %d/%d: dim=%d nreal=%d nghost=%d stacksize=%d nabrs=%v",
		t.Rank(), t.Size(), t.NumDim(), t.NumReal(), t.NumGhost(), t.StackSize(), t.NabrRanks())
}

func parseInts(s string) []int {
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			chk.Panic("meshinfo: invalid -n entry %q: %v", p, err)
		}
		out[i] = v
	}
	return out
}

func parseBools(s string, n int) []bool {
	out := make([]bool, n)
	if s == "" {
		return out
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		if i >= n {
			break
		}
		v, err := strconv.ParseBool(strings.TrimSpace(p))
		if err != nil {
			chk.Panic("meshinfo: invalid -periodic entry %q: %v", p, err)
		}
		out[i] = v
	}
	return out
}
