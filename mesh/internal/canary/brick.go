package canary

import "github.com/cpmech/gosl/utl"

// GenerateBrick emits the local slice of a d-dimensional axis-aligned
// brick (spec.md 4.B). elemRange[d] lists the Nd+1 corner coordinates
// along axis d, so len(elemRange[d])-1 is the element count along that
// axis. periodicity[d] wraps axis d. boundary[0][d]/boundary[1][d] are the
// tags for the low/high face of axis d.
//
// Elements are handed out to (part, nParts) by linear-partitioning a plain
// row-major enumeration of the global element lattice; the authoritative
// Hilbert-curve reordering happens once, collectively, in the SFC
// partitioner (4.D) that always runs downstream of this generator. This
// resolves the overlap between 4.B's own mention of a space-filling curve
// and 4.D's explicit "reorder elements globally along a Hilbert curve"
// contract: one Hilbert pass, not two (see DESIGN.md).
func GenerateBrick(elemRange [][]float64, periodicity []bool, boundary [2][]int, part, nParts int) (*ElemSet, error) {
	dim := len(elemRange)
	if dim < 1 || dim > 3 {
		return nil, errInvalidShape("brick", "dim must be 1..3, got %d", dim)
	}
	edims := make([]int, dim) // elements per axis
	for d := 0; d < dim; d++ {
		if len(elemRange[d]) < 2 {
			return nil, errInvalidShape("brick", "axis %d has zero elements", d)
		}
		edims[d] = len(elemRange[d]) - 1
	}
	vdims := make([]int, dim) // vertices per axis
	for d := 0; d < dim; d++ {
		vdims[d] = edims[d] + 1
	}

	nGlobal := 1
	for _, n := range edims {
		nGlobal *= n
	}

	lo, hi := LinearPartition(nGlobal, part, nParts)
	nc := numCorners(dim)
	nfaces := 2 * dim

	out := &ElemSet{
		Dim:     dim,
		NGlobal: nGlobal,
	}
	for gid := lo; gid < hi; gid++ {
		eidx := latticeDecode(gid, edims)

		vert := make([]int, nc)
		coord := make([][3]float64, nc)
		for c := 0; c < nc; c++ {
			off := cornerOffset(dim, c)
			vidx := make([]int, dim)
			for d := 0; d < dim; d++ {
				vidx[d] = eidx[d] + off[d]
			}
			vert[c] = latticeEncode(vidx, vdims)
			for d := 0; d < dim; d++ {
				coord[c][d] = elemRange[d][vidx[d]]
			}
		}

		bndy := make([]int, nfaces)
		for a := 0; a < dim; a++ {
			if !periodicity[a] && eidx[a] == 0 {
				bndy[2*a] = boundary[0][a]
			}
			if !periodicity[a] && eidx[a] == edims[a]-1 {
				bndy[2*a+1] = boundary[1][a]
			}
		}

		out.GlobalID = append(out.GlobalID, gid)
		out.Vert = append(out.Vert, vert)
		out.Coord = append(out.Coord, coord)
		out.Bndy = append(out.Bndy, bndy)
	}

	for a := 0; a < dim; a++ {
		if !periodicity[a] {
			continue
		}
		others := make([]int, 0, dim-1)
		for d := 0; d < dim; d++ {
			if d != a {
				others = append(others, d)
			}
		}
		var walk func(pos int, vidx []int)
		walk = func(pos int, vidx []int) {
			if pos == len(others) {
				lowIdx := append([]int(nil), vidx...)
				lowIdx[a] = 0
				highIdx := append([]int(nil), vidx...)
				highIdx[a] = edims[a]
				out.FaceConns = append(out.FaceConns, VertPair{
					A: latticeEncode(lowIdx, vdims),
					B: latticeEncode(highIdx, vdims),
				})
				return
			}
			d := others[pos]
			for _, v := range utl.IntRange(edims[d] + 1) {
				vidx[d] = v
				walk(pos+1, vidx)
			}
		}
		walk(0, make([]int, dim))
	}

	return out, nil
}

// UniformAxis builds an elemRange row of n+1 evenly spaced corner
// coordinates between xmin and xmax; topology.go re-exports it as
// mesh.UniformAxis so callers need not hand-write ladders.
func UniformAxis(xmin, xmax float64, n int) []float64 {
	return utl.LinSpace(xmin, xmax, n+1)
}
