package mesh_test

import (
	"math"
	"testing"

	"github.com/bballamudi/CLIMA/mesh"
	"github.com/cpmech/gosl/chk"
)

func Test_warpFaceCenters(tst *testing.T) {

	chk.PrintTitle("warpFaceCenters")

	cases := []struct {
		a, b, c          float64
		wantX, wantY, wantZ float64
	}{
		{1, 0, 0, 1, 0, 0},
		{-1, 0, 0, -1, 0, 0},
		{0, 1, 0, 0, 1, 0},
		{0, -1, 0, 0, -1, 0},
		{0, 0, 1, 0, 0, 1},
		{0, 0, -1, 0, 0, -1},
	}
	for _, cs := range cases {
		x, y, z, err := mesh.WarpCubeToSphere(cs.a, cs.b, cs.c)
		if err != nil {
			tst.Fatalf("WarpCubeToSphere(%v,%v,%v) failed: %v", cs.a, cs.b, cs.c, err)
		}
		if math.Abs(x-cs.wantX) > 1e-9 || math.Abs(y-cs.wantY) > 1e-9 || math.Abs(z-cs.wantZ) > 1e-9 {
			tst.Errorf("WarpCubeToSphere(%v,%v,%v) = (%v,%v,%v), want (%v,%v,%v)",
				cs.a, cs.b, cs.c, x, y, z, cs.wantX, cs.wantY, cs.wantZ)
		}
	}
}

func Test_warpIsUnitLength(tst *testing.T) {

	chk.PrintTitle("warpIsUnitLength")

	for i := -4; i <= 4; i++ {
		for j := -4; j <= 4; j++ {
			p, q := float64(i)/4, float64(j)/4
			x, y, z, err := mesh.WarpCubeToSphere(1, p, q)
			if err != nil {
				tst.Fatalf("WarpCubeToSphere(1,%v,%v) failed: %v", p, q, err)
			}
			n := math.Sqrt(x*x + y*y + z*z)
			if math.Abs(n-1) > 1e-9 {
				tst.Errorf("WarpCubeToSphere(1,%v,%v) has norm %v, want 1", p, q, n)
			}
		}
	}
}

func Test_warpRejectsDegenerateInput(tst *testing.T) {

	chk.PrintTitle("warpRejectsDegenerateInput")

	_, _, _, err := mesh.WarpCubeToSphere(0, 0, 0)
	if err == nil {
		tst.Fatalf("expected InvalidWarpInput for (0,0,0), got nil error")
	}
	var merr *mesh.Error
	if e, ok := err.(*mesh.Error); ok {
		merr = e
	} else {
		tst.Fatalf("error is not *mesh.Error: %v", err)
	}
	if merr.Kind != mesh.InvalidWarpInput {
		tst.Errorf("error kind = %v, want InvalidWarpInput", merr.Kind)
	}
}
