package canary

import (
	"sort"

	"github.com/cpmech/gosl/utl"
)

// Tables is the fully populated connectivity output for one rank (spec.md
// 4.E), everything the topology facade needs except the stacked-specific
// StackSize field.
type Tables struct {
	Dim           int
	NReal, NGhost int

	ElemVert  [][]int        // [elem][corner] global vertex id, len NReal+NGhost
	ElemCoord [][][3]float64 // [elem][corner], len NReal+NGhost
	GlobalID  []int          // [elem] global SFC id, len NReal+NGhost

	ElemToElem [][]int // [face][e], e in [0,NReal)
	ElemToFace [][]int
	ElemToOrdr [][]int
	ElemToBndy [][]int

	SendElems []int // local real indices, grouped per neighbor
	NabrRank  []int

	NabrRecvLo, NabrRecvHi []int // sub-ranges of ghost elems (0-based into [0,NGhost))
	NabrSendLo, NabrSendHi []int // sub-ranges of SendElems indices
}

// faceOcc is one element-face's registration in the global face-key table.
type faceOcc struct {
	GlobalElem int
	Face       int
	Fused      []int // fused vertex ids in the face's own Cartesian corner order
}

// FaceKey canonically identifies a face by its (fused, sorted) corner
// vertex ids. 4 slots cover the largest face this package ever builds
// (a 3-D element's quad face); unused slots are -1.
type FaceKey [4]int

func makeKey(ids []int) FaceKey {
	s := append([]int(nil), ids...)
	sort.Ints(s)
	var k FaceKey
	for i := range k {
		k[i] = -1
	}
	copy(k[:], s)
	return k
}

// Connect is the connectivity engine (spec.md 4.E): given this rank's
// post-SFC local elements, it exchanges the full global element table with
// every other rank, resolves face matches, synthesizes the ghost layer and
// per-neighbor send/recv ranges, and returns the fully populated tables.
//
// This implementation broadcasts each rank's full local element records
// (not just face keys) so every rank can resolve matching, ghosting, and
// orientation purely from local computation after one exchange; see
// DESIGN.md for why this trades network efficiency for simplicity in a
// reference/teaching implementation of spec.md step 4's "exchange face
// keys" contract.
func Connect(comm Comm, local *ElemSet) (*Tables, error) {
	dim := local.Dim
	nfaces := 2 * dim
	nReal := len(local.GlobalID)
	nGlobal := local.NGlobal
	myRank := comm.Rank()
	nRanks := comm.Size()

	records := make([]elemRecord, nReal)
	for i := 0; i < nReal; i++ {
		records[i] = elemRecord{
			GlobalID: local.GlobalID[i],
			Vert:     local.Vert[i],
			Coord:    local.Coord[i],
			Bndy:     local.Bndy[i],
		}
	}
	payload, err := encodeRecords(records)
	if err != nil {
		return nil, err
	}
	send := make([][]byte, nRanks)
	for j := range send {
		send[j] = payload
	}
	recv, err := comm.AllToAllV(send)
	if err != nil {
		return nil, err
	}

	global := make([]elemRecord, nGlobal)
	for _, buf := range recv {
		rs, err := decodeRecords(buf)
		if err != nil {
			return nil, err
		}
		for _, r := range rs {
			global[r.GlobalID] = r
		}
	}

	uf := buildUnionFind(local.FaceConns)

	faceKeyOf := func(gid, f int) (FaceKey, []int) {
		corners := faceLocalCorners(dim, f)
		fused := make([]int, len(corners))
		for k, c := range corners {
			fused[k] = uf.find(global[gid].Vert[c])
		}
		return makeKey(fused), fused
	}

	occMap := make(map[FaceKey][]faceOcc, nGlobal*nfaces/2)
	for gid := 0; gid < nGlobal; gid++ {
		for f := 0; f < nfaces; f++ {
			key, fused := faceKeyOf(gid, f)
			occMap[key] = append(occMap[key], faceOcc{GlobalElem: gid, Face: f, Fused: fused})
		}
	}
	for _, occs := range occMap {
		if len(occs) > 2 {
			return nil, errMeshInvariant("connectivity", "face shared by %d elements, want 1 or 2", len(occs))
		}
	}

	peerOf := func(gid, f int) (faceOcc, bool) {
		key, _ := faceKeyOf(gid, f)
		occs := occMap[key]
		if len(occs) != 2 {
			return faceOcc{}, false
		}
		if occs[0].GlobalElem == gid && occs[0].Face == f {
			return occs[1], true
		}
		return occs[0], true
	}

	// Global pass: discover which foreign ghosts I need, and which of my
	// own elements foreign ranks need from me. Both fall out of the same
	// symmetric face-match relation, so one sweep over every element in
	// the mesh (not just mine) fills both in one rank-invariant pass.
	ghostNeed := make(map[int]int) // foreign global id -> owning rank
	sendNeed := make(map[int]map[int]bool) // neighbor rank -> set of my global ids

	for gid := 0; gid < nGlobal; gid++ {
		ownerGid := OwnerOfGlobalID(gid, nGlobal, nRanks)
		for f := 0; f < nfaces; f++ {
			peer, ok := peerOf(gid, f)
			if !ok {
				continue
			}
			ownerPeer := OwnerOfGlobalID(peer.GlobalElem, nGlobal, nRanks)
			if ownerGid == ownerPeer {
				continue
			}
			if ownerGid == myRank {
				ghostNeed[peer.GlobalElem] = ownerPeer
			}
			if ownerPeer == myRank {
				if sendNeed[ownerGid] == nil {
					sendNeed[ownerGid] = make(map[int]bool)
				}
				sendNeed[ownerGid][peer.GlobalElem] = true
			}
		}
	}

	type ghostEntry struct{ rank, gid int }
	ghosts := make([]ghostEntry, 0, len(ghostNeed))
	for gid, rank := range ghostNeed {
		ghosts = append(ghosts, ghostEntry{rank, gid})
	}
	sort.Slice(ghosts, func(i, j int) bool {
		if ghosts[i].rank != ghosts[j].rank {
			return ghosts[i].rank < ghosts[j].rank
		}
		return ghosts[i].gid < ghosts[j].gid
	})
	ghostIndexOf := make(map[int]int, len(ghosts))
	for i, g := range ghosts {
		ghostIndexOf[g.gid] = nReal + i
	}

	rawRanks := make([]int, 0, len(ghosts)+len(sendNeed))
	for _, g := range ghosts {
		rawRanks = append(rawRanks, g.rank)
	}
	for r := range sendNeed {
		rawRanks = append(rawRanks, r)
	}
	nabrRank := utl.IntUnique(rawRanks)
	sort.Ints(nabrRank)

	nabrRecvLo := make([]int, len(nabrRank))
	nabrRecvHi := make([]int, len(nabrRank))
	{
		pos := 0
		for ri, r := range nabrRank {
			nabrRecvLo[ri] = pos
			for _, g := range ghosts {
				if g.rank == r {
					pos++
				}
			}
			nabrRecvHi[ri] = pos
		}
	}

	localIndexOfGID := make(map[int]int, nReal)
	for i, gid := range local.GlobalID {
		localIndexOfGID[gid] = i
	}

	sendElems := make([]int, 0)
	nabrSendLo := make([]int, len(nabrRank))
	nabrSendHi := make([]int, len(nabrRank))
	for ri, r := range nabrRank {
		nabrSendLo[ri] = len(sendElems)
		mine := sendNeed[r]
		ids := make([]int, 0, len(mine))
		for gid := range mine {
			ids = append(ids, gid)
		}
		sort.Ints(ids)
		for _, gid := range ids {
			sendElems = append(sendElems, localIndexOfGID[gid])
		}
		nabrSendHi[ri] = len(sendElems)
	}

	nGhost := len(ghosts)
	t := &Tables{
		Dim: dim, NReal: nReal, NGhost: nGhost,
		ElemToElem: make([][]int, nfaces),
		ElemToFace: make([][]int, nfaces),
		ElemToOrdr: make([][]int, nfaces),
		ElemToBndy: make([][]int, nfaces),
		SendElems:  sendElems,
		NabrRank:   nabrRank,
		NabrRecvLo: nabrRecvLo, NabrRecvHi: nabrRecvHi,
		NabrSendLo: nabrSendLo, NabrSendHi: nabrSendHi,
	}
	for f := 0; f < nfaces; f++ {
		t.ElemToElem[f] = make([]int, nReal)
		t.ElemToFace[f] = make([]int, nReal)
		t.ElemToOrdr[f] = make([]int, nReal)
		t.ElemToBndy[f] = make([]int, nReal)
	}

	for i := 0; i < nReal; i++ {
		gid := local.GlobalID[i]
		for f := 0; f < nfaces; f++ {
			peer, ok := peerOf(gid, f)
			if !ok {
				tag := local.Bndy[i][f]
				if tag == 0 {
					return nil, errMeshInvariant("connectivity", "face %d of elem %d is unmatched but untagged", f, gid)
				}
				t.ElemToElem[f][i] = i
				t.ElemToFace[f][i] = f
				t.ElemToOrdr[f][i] = 1
				t.ElemToBndy[f][i] = tag
				continue
			}
			_, myFused := faceKeyOf(gid, f)
			ordr, err := orientationCode(myFused, peer.Fused)
			if err != nil {
				return nil, err
			}
			ownerPeer := OwnerOfGlobalID(peer.GlobalElem, nGlobal, nRanks)
			var localIdx int
			if ownerPeer == myRank {
				localIdx = localIndexOfGID[peer.GlobalElem]
			} else {
				localIdx = ghostIndexOf[peer.GlobalElem]
			}
			t.ElemToElem[f][i] = localIdx
			t.ElemToFace[f][i] = peer.Face
			t.ElemToOrdr[f][i] = ordr
			t.ElemToBndy[f][i] = 0
		}
	}

	t.ElemVert = make([][]int, nReal+nGhost)
	t.ElemCoord = make([][][3]float64, nReal+nGhost)
	t.GlobalID = make([]int, nReal+nGhost)
	for i := 0; i < nReal; i++ {
		t.ElemVert[i] = local.Vert[i]
		t.ElemCoord[i] = local.Coord[i]
		t.GlobalID[i] = local.GlobalID[i]
	}
	for _, g := range ghosts {
		idx := ghostIndexOf[g.gid]
		rec := global[g.gid]
		t.ElemVert[idx] = rec.Vert
		t.ElemCoord[idx] = rec.Coord
		t.GlobalID[idx] = g.gid
	}

	return t, nil
}

// faceLocalCorners returns the local corner indices belonging to face f
// (0 <= f < 2*dim), in the face's own Cartesian corner order.
func faceLocalCorners(dim, f int) []int {
	axis := f / 2
	want := f % 2
	nc := numCorners(dim)
	var out []int
	for c := 0; c < nc; c++ {
		if cornerOffset(dim, c)[axis] == want {
			out = append(out, c)
		}
	}
	return out
}

// orientationCode compares two matched faces' fused vertex-id sequences
// (each in its own side's Cartesian corner order) and returns 1 if they
// agree, 3 if one is the exact reverse of the other (the only two cases
// spec.md permits), or a MeshInvariant error otherwise.
func orientationCode(mine, theirs []int) (int, error) {
	if len(mine) != len(theirs) {
		return 0, errMeshInvariant("connectivity", "matched faces have different corner counts")
	}
	same := true
	for i := range mine {
		if mine[i] != theirs[i] {
			same = false
			break
		}
	}
	if same {
		return 1, nil
	}
	reversed := true
	n := len(mine)
	for i := 0; i < n; i++ {
		if mine[i] != theirs[n-1-i] {
			reversed = false
			break
		}
	}
	if reversed {
		return 3, nil
	}
	return 0, errMeshInvariant("connectivity", "inconsistent orientation between matched faces")
}
