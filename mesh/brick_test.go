package mesh_test

import (
	"testing"

	"github.com/bballamudi/CLIMA/mesh"
	"github.com/cpmech/gosl/chk"
)

func Test_brick1dPeriodicSingleRank(tst *testing.T) {

	chk.PrintTitle("brick1dPeriodicSingleRank")

	topos, errs := buildAllRanks(1, func(c mesh.Comm) (*mesh.Topology, error) {
		return mesh.BrickTopology(c, [][]float64{{0, 1, 2, 3, 4}}, mesh.WithPeriodicity(true))
	})
	if errs[0] != nil {
		tst.Fatalf("BrickTopology failed: %v", errs[0])
	}
	topo := topos[0]

	chk.IntAssert(topo.NumReal(), 4)
	chk.IntAssert(topo.NumGhost(), 0)

	for e := 0; e < topo.NumReal(); e++ {
		for f := 0; f < topo.NumFaces(); f++ {
			if topo.ElemToBndy(f, e) != 0 {
				tst.Errorf("elem %d face %d: want interior (periodic wrap), got boundary tag %d", e, f, topo.ElemToBndy(f, e))
			}
			if topo.ElemToOrdr(f, e) != 1 {
				tst.Errorf("elem %d face %d: 1-D orientation must always be 1, got %d", e, f, topo.ElemToOrdr(f, e))
			}
		}
	}

	// every element's high neighbor's low neighbor must be itself (reciprocity)
	for e := 0; e < topo.NumReal(); e++ {
		hi := topo.ElemToElem(1, e)
		if topo.ElemToElem(0, hi) != e {
			tst.Errorf("elem %d: reciprocity broken through neighbor %d", e, hi)
		}
	}
}

func Test_brick2dPeriodicInY(tst *testing.T) {

	chk.PrintTitle("brick2dPeriodicInY")

	elemRange := [][]float64{
		{0, 1, 2, 3},
		{0, 1, 2},
	}
	topos, errs := buildAllRanks(1, func(c mesh.Comm) (*mesh.Topology, error) {
		return mesh.BrickTopology(c, elemRange,
			mesh.WithPeriodicity(false, true),
			mesh.WithBoundary([]int{10, 10}, []int{20, 20}))
	})
	if errs[0] != nil {
		tst.Fatalf("BrickTopology failed: %v", errs[0])
	}
	topo := topos[0]

	chk.IntAssert(topo.NumReal(), 6)
	chk.IntAssert(topo.NumGhost(), 0)

	nxBoundary, nyBoundary := 0, 0
	for e := 0; e < topo.NumReal(); e++ {
		if topo.ElemToBndy(0, e) != 0 || topo.ElemToBndy(1, e) != 0 {
			nxBoundary++
		}
		if topo.ElemToBndy(2, e) != 0 || topo.ElemToBndy(3, e) != 0 {
			nyBoundary++
		}
	}
	if nxBoundary == 0 {
		tst.Errorf("x axis is non-periodic, expected some boundary faces")
	}
	if nyBoundary != 0 {
		tst.Errorf("y axis is periodic, expected zero boundary faces, got %d", nyBoundary)
	}
}

func Test_brick1dDefaultBoundarySingleRank(tst *testing.T) {

	chk.PrintTitle("brick1dDefaultBoundarySingleRank")

	topos, errs := buildAllRanks(1, func(c mesh.Comm) (*mesh.Topology, error) {
		return mesh.BrickTopology(c, [][]float64{{0, 1, 2}})
	})
	if errs[0] != nil {
		tst.Fatalf("BrickTopology failed: %v", errs[0])
	}
	topo := topos[0]

	chk.IntAssert(topo.NumReal(), 2)
	chk.IntAssert(topo.NumGhost(), 0)

	if got := topo.ElemToBndy(0, 0); got != 1 {
		tst.Errorf("elem 0 low face: default boundary tag = %d, want 1", got)
	}
	if got := topo.ElemToBndy(1, 0); got != 0 {
		tst.Errorf("elem 0 high face: want interior, got boundary tag %d", got)
	}
	if got := topo.ElemToBndy(0, 1); got != 0 {
		tst.Errorf("elem 1 low face: want interior, got boundary tag %d", got)
	}
	if got := topo.ElemToBndy(1, 1); got != 1 {
		tst.Errorf("elem 1 high face: default boundary tag = %d, want 1", got)
	}
}

func Test_brickTwoRanks(tst *testing.T) {

	chk.PrintTitle("brickTwoRanks")

	elemRange := [][]float64{
		{0, 1, 2, 3, 4},
		{0, 1, 2, 3, 4},
	}
	topos, errs := buildAllRanks(2, func(c mesh.Comm) (*mesh.Topology, error) {
		return mesh.BrickTopology(c, elemRange, mesh.WithPeriodicity(false, false),
			mesh.WithBoundary([]int{1, 1}, []int{1, 1}))
	})
	for r, err := range errs {
		if err != nil {
			tst.Fatalf("rank %d: BrickTopology failed: %v", r, err)
		}
	}

	total := 0
	for _, t := range topos {
		total += t.NumReal()
	}
	chk.IntAssert(total, 16)

	for r, t := range topos {
		if len(t.NabrRanks()) == 0 {
			tst.Errorf("rank %d: expected at least one neighbor with 2 ranks over a connected brick", r)
		}
		for _, n := range t.NabrRanks() {
			if n == r {
				tst.Errorf("rank %d: listed itself as a neighbor", r)
			}
		}
		lo, hi := t.NabrRecvRange(0)
		if hi < lo {
			tst.Errorf("rank %d: inverted recv range", r)
		}
		if hi-lo > t.NumGhost() {
			tst.Errorf("rank %d: recv range exceeds ghost count", r)
		}
	}

	// ghost ownership across ranks: every ghost element referenced across a
	// face must be owned as a real element by some other rank.
	for r, t := range topos {
		for e := 0; e < t.NumReal(); e++ {
			for f := 0; f < t.NumFaces(); f++ {
				g := t.ElemToElem(f, e)
				if g < t.NumReal() || t.ElemToBndy(f, e) != 0 {
					continue
				}
				peerGID := t.GlobalID(g)
				found := false
				for or, ot := range topos {
					if or == r {
						continue
					}
					for oe := 0; oe < ot.NumReal(); oe++ {
						if ot.GlobalID(oe) == peerGID {
							found = true
						}
					}
				}
				if !found {
					tst.Errorf("rank %d: ghost global id %d not owned as real by any other rank", r, peerGID)
				}
			}
		}
	}
}
