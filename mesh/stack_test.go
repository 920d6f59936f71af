package mesh_test

import (
	"testing"

	"github.com/bballamudi/CLIMA/mesh"
	"github.com/cpmech/gosl/chk"
)

func Test_stackedBrick2d(tst *testing.T) {

	chk.PrintTitle("stackedBrick2d")

	nLevels := 2
	topos, errs := buildAllRanks(1, func(c mesh.Comm) (*mesh.Topology, error) {
		return mesh.StackedBrickTopology(c, [][]float64{{0, 1, 2, 3}}, nLevels, []float64{0, 1, 2},
			mesh.WithPeriodicity(false),
			mesh.WithBoundary([]int{1}, []int{2}),
			mesh.WithBC(5, 6))
	})
	if errs[0] != nil {
		tst.Fatalf("StackedBrickTopology failed: %v", errs[0])
	}
	topo := topos[0]

	chk.IntAssert(topo.NumDim(), 2)
	chk.IntAssert(topo.StackSize(), nLevels)
	chk.IntAssert(topo.NumReal(), 3*nLevels)

	const xLow, xHigh, vLow, vHigh = 0, 1, 2, 3

	for e := 0; e < topo.NumReal(); e++ {
		col, lvl := e/nLevels, e%nLevels

		wantXLow := 0
		if col == 0 {
			wantXLow = 1
		}
		if got := topo.ElemToBndy(xLow, e); got != wantXLow {
			tst.Errorf("elem %d (col %d): x-low boundary tag = %d, want %d", e, col, got, wantXLow)
		}

		wantXHigh := 0
		if col == 2 {
			wantXHigh = 2
		}
		if got := topo.ElemToBndy(xHigh, e); got != wantXHigh {
			tst.Errorf("elem %d (col %d): x-high boundary tag = %d, want %d", e, col, got, wantXHigh)
		}

		wantVLow := 0
		if lvl == 0 {
			wantVLow = 5
		}
		if got := topo.ElemToBndy(vLow, e); got != wantVLow {
			tst.Errorf("elem %d (lvl %d): v-low boundary tag = %d, want %d", e, lvl, got, wantVLow)
		}

		wantVHigh := 0
		if lvl == nLevels-1 {
			wantVHigh = 6
		}
		if got := topo.ElemToBndy(vHigh, e); got != wantVHigh {
			tst.Errorf("elem %d (lvl %d): v-high boundary tag = %d, want %d", e, lvl, got, wantVHigh)
		}

		if lvl == 0 {
			if topo.ElemToElem(vLow, e) != e {
				tst.Errorf("elem %d: bottom level must self-reference on v-low", e)
			}
		} else if topo.ElemToElem(vLow, e) != e-1 {
			tst.Errorf("elem %d: v-low neighbor should be level below", e)
		}
	}
}

func Test_stackedBrickRejectsNonMonotonicRadii(tst *testing.T) {

	chk.PrintTitle("stackedBrickRejectsNonMonotonicRadii")

	topos, errs := buildAllRanks(1, func(c mesh.Comm) (*mesh.Topology, error) {
		return mesh.StackedBrickTopology(c, [][]float64{{0, 1, 2, 3}}, 2, []float64{0, 2, 1},
			mesh.WithBC(1, 2))
	})
	if errs[0] == nil {
		tst.Fatalf("expected InvalidShape for non-monotonic radii, got a topology: %+v", topos[0])
	}
	merr, ok := errs[0].(*mesh.Error)
	if !ok {
		tst.Fatalf("error is not *mesh.Error: %v", errs[0])
	}
	if merr.Kind != mesh.InvalidShape {
		tst.Errorf("error kind = %v, want InvalidShape", merr.Kind)
	}
}

func Test_stackedCubedSphere(tst *testing.T) {

	chk.PrintTitle("stackedCubedSphere")

	nLevels := 2
	radii := []float64{1, 2, 3}
	topos, errs := buildAllRanks(1, func(c mesh.Comm) (*mesh.Topology, error) {
		return mesh.StackedCubedSphereTopology(c, 2, nLevels, radii, mesh.WithBC(100, 200))
	})
	if errs[0] != nil {
		tst.Fatalf("StackedCubedSphereTopology failed: %v", errs[0])
	}
	topo := topos[0]

	chk.IntAssert(topo.NumDim(), 3)
	chk.IntAssert(topo.NumReal(), 24*nLevels)

	vLow, vHigh := topo.NumFaces()-2, topo.NumFaces()-1
	for e := 0; e < topo.NumReal(); e++ {
		lvl := e % nLevels
		wantLow, wantHigh := 0, 0
		if lvl == 0 {
			wantLow = 100
		}
		if lvl == nLevels-1 {
			wantHigh = 200
		}
		if got := topo.ElemToBndy(vLow, e); got != wantLow {
			tst.Errorf("elem %d (lvl %d): innermost radial tag = %d, want %d", e, lvl, got, wantLow)
		}
		if got := topo.ElemToBndy(vHigh, e); got != wantHigh {
			tst.Errorf("elem %d (lvl %d): outermost radial tag = %d, want %d", e, lvl, got, wantHigh)
		}
		for c := 0; c < 8; c++ {
			coord := topo.ElemToCoord(e, c)
			r := coord[0]*coord[0] + coord[1]*coord[1] + coord[2]*coord[2]
			lo, hi := radii[lvl]*radii[lvl], radii[lvl+1]*radii[lvl+1]
			if r < lo-1e-6 || r > hi+1e-6 {
				tst.Errorf("elem %d corner %d: |coord|^2=%g outside [%g,%g]", e, c, r, lo, hi)
			}
		}
	}
}
