package canary

import "github.com/cpmech/gosl/chk"

// StackInput bundles what the stack extruder needs from an already fully
// connected (dim-1)-D base topology to lift it into a dim-D stacked one
// (spec.md 4.F). Because every base real element is already owned by one
// rank, and a column's levels always stay on that same rank, extrusion is
// purely local: it never calls Comm.
type StackInput struct {
	Base     *Tables
	NLevels  int       // vertical element count per column
	Radii    []float64 // len NLevels+1, per-level-boundary radius/height
	Periodic bool      // wrap level NLevels-1 <-> 0 (StackedBrickTopology only)

	BndyLow, BndyHigh int // boundary tags for the bottom/top faces when not periodic

	// Warp, when non-nil, turns each base corner's (a,b,c) cube-surface
	// coordinate into a unit sphere direction that Radii then scales
	// (StackedCubedSphereTopology). When nil, the new vertical axis is
	// simply appended as coordinate component Base.Dim, taking the Radii
	// value directly (StackedBrickTopology).
	Warp func(a, b, c float64) (x, y, z float64, err error)
}

// ExtrudeStack lifts in.Base into a (Base.Dim+1)-D stacked mesh: every base
// real element becomes NLevels stacked elements forming one column, base
// faces are lifted level-by-level (same orientation, same boundary tag),
// and two new vertical faces are added per element, self-referencing at the
// column ends unless Periodic.
func ExtrudeStack(in StackInput) (*Tables, error) {
	base := in.Base
	if in.NLevels < 1 {
		return nil, errInvalidShape("stack", "nlevels must be >= 1, got %d", in.NLevels)
	}
	if base.Dim+1 > 3 {
		return nil, errInvalidShape("stack", "stacked dimension must be <= 3, got %d", base.Dim+1)
	}
	if len(in.Radii) != in.NLevels+1 {
		return nil, errInvalidShape("stack", "need %d radii, got %d", in.NLevels+1, len(in.Radii))
	}
	for i := 1; i < len(in.Radii); i++ {
		if in.Radii[i] <= in.Radii[i-1] {
			return nil, errInvalidShape("stack", "radii must be strictly monotonic, got %v", in.Radii)
		}
	}

	newDim := base.Dim + 1
	nc := numCorners(newDim)
	baseFaces := 2 * base.Dim
	vLow, vHigh := baseFaces, baseFaces+1
	nLevels := in.NLevels

	nReal := base.NReal * nLevels
	nGhost := base.NGhost * nLevels

	t := &Tables{
		Dim: newDim, NReal: nReal, NGhost: nGhost,
		ElemVert:  make([][]int, nReal+nGhost),
		ElemCoord: make([][][3]float64, nReal+nGhost),
		GlobalID:  make([]int, nReal+nGhost),
	}
	newFaces := 2 * newDim
	t.ElemToElem = make([][]int, newFaces)
	t.ElemToFace = make([][]int, newFaces)
	t.ElemToOrdr = make([][]int, newFaces)
	t.ElemToBndy = make([][]int, newFaces)
	for f := 0; f < newFaces; f++ {
		t.ElemToElem[f] = make([]int, nReal)
		t.ElemToFace[f] = make([]int, nReal)
		t.ElemToOrdr[f] = make([]int, nReal)
		t.ElemToBndy[f] = make([]int, nReal)
	}

	corners := func(baseElemIdx, level int) ([]int, [][3]float64, error) {
		vert := make([]int, nc)
		coord := make([][3]float64, nc)
		for cNew := 0; cNew < nc; cNew++ {
			baseCorner := cNew >> 1
			o := cNew & 1
			lvl := level + o
			vert[cNew] = base.ElemVert[baseElemIdx][baseCorner]*(nLevels+1) + lvl
			bc := base.ElemCoord[baseElemIdx][baseCorner]
			if in.Warp != nil {
				x, y, z, err := in.Warp(bc[0], bc[1], bc[2])
				if err != nil {
					return nil, nil, err
				}
				r := in.Radii[lvl]
				coord[cNew] = [3]float64{x * r, y * r, z * r}
			} else {
				c := bc
				c[base.Dim] = in.Radii[lvl]
				coord[cNew] = c
			}
		}
		return vert, coord, nil
	}

	for i := 0; i < base.NReal; i++ {
		for L := 0; L < nLevels; L++ {
			newIdx := i*nLevels + L
			vert, coord, err := corners(i, L)
			if err != nil {
				return nil, err
			}
			t.ElemVert[newIdx] = vert
			t.ElemCoord[newIdx] = coord
			t.GlobalID[newIdx] = base.GlobalID[i]*nLevels + L

			for f := 0; f < baseFaces; f++ {
				if in.Warp == nil && base.ElemToOrdr[f][i] != 1 {
					chk.Panic("stack: brick base face %d of elem %d has orientation code %d, want 1", f, i, base.ElemToOrdr[f][i])
				}
				bNeigh := base.ElemToElem[f][i]
				var neighIdx int
				if bNeigh < base.NReal {
					neighIdx = bNeigh*nLevels + L
				} else {
					ghostPos := bNeigh - base.NReal
					neighIdx = nReal + ghostPos*nLevels + L
				}
				t.ElemToElem[f][newIdx] = neighIdx
				t.ElemToFace[f][newIdx] = base.ElemToFace[f][i]
				t.ElemToOrdr[f][newIdx] = base.ElemToOrdr[f][i]
				t.ElemToBndy[f][newIdx] = base.ElemToBndy[f][i]
			}

			if L > 0 {
				t.ElemToElem[vLow][newIdx] = i*nLevels + (L - 1)
				t.ElemToFace[vLow][newIdx] = vHigh
				t.ElemToOrdr[vLow][newIdx] = 1
			} else if in.Periodic {
				t.ElemToElem[vLow][newIdx] = i*nLevels + (nLevels - 1)
				t.ElemToFace[vLow][newIdx] = vHigh
				t.ElemToOrdr[vLow][newIdx] = 1
			} else {
				t.ElemToElem[vLow][newIdx] = newIdx
				t.ElemToFace[vLow][newIdx] = vLow
				t.ElemToOrdr[vLow][newIdx] = 1
				t.ElemToBndy[vLow][newIdx] = in.BndyLow
			}

			if L < nLevels-1 {
				t.ElemToElem[vHigh][newIdx] = i*nLevels + (L + 1)
				t.ElemToFace[vHigh][newIdx] = vLow
				t.ElemToOrdr[vHigh][newIdx] = 1
			} else if in.Periodic {
				t.ElemToElem[vHigh][newIdx] = i * nLevels
				t.ElemToFace[vHigh][newIdx] = vLow
				t.ElemToOrdr[vHigh][newIdx] = 1
			} else {
				t.ElemToElem[vHigh][newIdx] = newIdx
				t.ElemToFace[vHigh][newIdx] = vHigh
				t.ElemToOrdr[vHigh][newIdx] = 1
				t.ElemToBndy[vHigh][newIdx] = in.BndyHigh
			}
		}
	}

	for gp := 0; gp < base.NGhost; gp++ {
		baseGhostIdx := base.NReal + gp
		for L := 0; L < nLevels; L++ {
			newIdx := nReal + gp*nLevels + L
			vert, coord, err := corners(baseGhostIdx, L)
			if err != nil {
				return nil, err
			}
			t.ElemVert[newIdx] = vert
			t.ElemCoord[newIdx] = coord
			t.GlobalID[newIdx] = base.GlobalID[baseGhostIdx]*nLevels + L
		}
	}

	t.NabrRank = append([]int(nil), base.NabrRank...)
	t.NabrRecvLo = make([]int, len(base.NabrRank))
	t.NabrRecvHi = make([]int, len(base.NabrRank))
	for n := range base.NabrRank {
		t.NabrRecvLo[n] = base.NabrRecvLo[n] * nLevels
		t.NabrRecvHi[n] = base.NabrRecvHi[n] * nLevels
	}

	t.SendElems = make([]int, 0, len(base.SendElems)*nLevels)
	t.NabrSendLo = make([]int, len(base.NabrRank))
	t.NabrSendHi = make([]int, len(base.NabrRank))
	for n := range base.NabrRank {
		t.NabrSendLo[n] = len(t.SendElems)
		for _, baseIdx := range base.SendElems[base.NabrSendLo[n]:base.NabrSendHi[n]] {
			for L := 0; L < nLevels; L++ {
				t.SendElems = append(t.SendElems, baseIdx*nLevels+L)
			}
		}
		t.NabrSendHi[n] = len(t.SendElems)
	}

	return t, nil
}
