package canary

// shellPatch describes how one of the six cube faces embeds its local
// (p,q) element grid into the shared (Ne+1)^3 vertex lattice. fixedAxis is
// the cube axis (0=i,1=j,2=k) this patch lies normal to; pAxis/qAxis name
// which of the other two axes the patch's local p/q indices walk, and
// {p,q}Reflect flip that walk's direction. The six entries are not
// symmetric on purpose: without a reflected axis every seam would match
// with identity orientation, and the reflections here are what give rise
// to elemtoordr code 3 on some shell faces (spec.md
// 4.C/4.E step 5); see DESIGN.md.
type shellPatch struct {
	fixedAxis          int
	fixedLow           bool
	pAxis, qAxis       int
	pReflect, qReflect bool
}

var shellPatches = [6]shellPatch{
	{fixedAxis: 0, fixedLow: true, pAxis: 1, qAxis: 2, qReflect: true},   // 1: i=0
	{fixedAxis: 0, fixedLow: false, pAxis: 1, qAxis: 2},                 // 2: i=Ne
	{fixedAxis: 1, fixedLow: true, pAxis: 0, qAxis: 2, pReflect: true},   // 3: j=0
	{fixedAxis: 1, fixedLow: false, pAxis: 0, qAxis: 2},                 // 4: j=Ne
	{fixedAxis: 2, fixedLow: true, pAxis: 0, qAxis: 1, qReflect: true},   // 5: k=0
	{fixedAxis: 2, fixedLow: false, pAxis: 0, qAxis: 1},                 // 6: k=Ne
}

// GenerateCubedShell emits the local slice of the six-patch logically 2-D
// mesh of a cube's surface (spec.md 4.C). Vertices are addressed directly
// in the shared (Ne+1)^3 lattice, so patch boundaries and cube-corner
// fusion happen automatically through shared global vertex ids; no
// periodic face connections are ever emitted.
func GenerateCubedShell(ne, part, nParts int) (*ElemSet, error) {
	if ne < 1 {
		return nil, errInvalidShape("cubedshell", "ne must be >= 1, got %d", ne)
	}
	nGlobal := 6 * ne * ne
	lo, hi := LinearPartition(nGlobal, part, nParts)
	vdims := []int{ne + 1, ne + 1, ne + 1}

	out := &ElemSet{Dim: 2, NGlobal: nGlobal}
	for gid := lo; gid < hi; gid++ {
		patchID := gid / (ne * ne)
		rem := gid % (ne * ne)
		p := rem / ne
		q := rem % ne

		patch := shellPatches[patchID]
		vert := make([]int, 4)
		coord := make([][3]float64, 4)
		for c := 0; c < 4; c++ {
			off := cornerOffset(2, c) // off[0]=dp, off[1]=dq
			lp := p + off[0]
			lq := q + off[1]
			if patch.pReflect {
				lp = ne - lp
			}
			if patch.qReflect {
				lq = ne - lq
			}
			idx3 := make([]int, 3)
			if patch.fixedLow {
				idx3[patch.fixedAxis] = 0
			} else {
				idx3[patch.fixedAxis] = ne
			}
			idx3[patch.pAxis] = lp
			idx3[patch.qAxis] = lq

			vert[c] = latticeEncode(idx3, vdims)
			for a := 0; a < 3; a++ {
				coord[c][a] = (2*float64(idx3[a]) - float64(ne)) / float64(ne)
			}
		}

		out.GlobalID = append(out.GlobalID, gid)
		out.Vert = append(out.Vert, vert)
		out.Coord = append(out.Coord, coord)
		out.Bndy = append(out.Bndy, make([]int, 4)) // a shell has no boundary
	}
	return out, nil
}
