package mesh_test

import (
	"testing"

	"github.com/bballamudi/CLIMA/mesh"
	"github.com/cpmech/gosl/chk"
)

func Test_cubedShellNe2(tst *testing.T) {

	chk.PrintTitle("cubedShellNe2")

	topos, errs := buildAllRanks(1, func(c mesh.Comm) (*mesh.Topology, error) {
		return mesh.CubedShellTopology(c, 2)
	})
	if errs[0] != nil {
		tst.Fatalf("CubedShellTopology failed: %v", errs[0])
	}
	topo := topos[0]

	chk.IntAssert(topo.NumReal(), 24)
	chk.IntAssert(topo.NumGhost(), 0)
	chk.IntAssert(topo.NumFaces(), 4)

	reversedFound := false
	for e := 0; e < topo.NumReal(); e++ {
		for f := 0; f < topo.NumFaces(); f++ {
			if topo.ElemToBndy(f, e) != 0 {
				tst.Errorf("elem %d face %d: a closed shell has no boundary faces, got tag %d", e, f, topo.ElemToBndy(f, e))
			}
			ordr := topo.ElemToOrdr(f, e)
			if ordr != 1 && ordr != 3 {
				tst.Errorf("elem %d face %d: orientation code must be 1 or 3, got %d", e, f, ordr)
			}
			if ordr == 3 {
				reversedFound = true
			}
			nb := topo.ElemToElem(f, e)
			if nb < 0 || nb >= topo.NumReal() {
				tst.Errorf("elem %d face %d: neighbor index %d out of range", e, f, nb)
			}
		}
	}
	if !reversedFound {
		tst.Errorf("expected at least one reversed-orientation (code 3) match across the six patches")
	}
}
