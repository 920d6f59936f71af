package canary

// LinearPartition splits [0, nGlobal) into nParts contiguous,
// as-even-as-possible pieces and returns the half-open range owned by
// part. The first nGlobal%nParts parts receive one extra element;
// deterministic and side-effect free (spec.md 4.A).
func LinearPartition(nGlobal, part, nParts int) (lo, hi int) {
	base := nGlobal / nParts
	rem := nGlobal % nParts
	if part < rem {
		lo = part * (base + 1)
		return lo, lo + base + 1
	}
	lo = rem*(base+1) + (part-rem)*base
	return lo, lo + base
}

// OwnerOfGlobalID returns which of nParts ranks LinearPartition assigned
// global index gid to, out of nGlobal total elements. Every rank can
// compute this for any gid without communication, since the split is a
// pure function of (nGlobal, nParts).
func OwnerOfGlobalID(gid, nGlobal, nParts int) int {
	base := nGlobal / nParts
	rem := nGlobal % nParts
	boundary := rem * (base + 1)
	if gid < boundary {
		return gid / (base + 1)
	}
	if base == 0 {
		return nParts - 1
	}
	return rem + (gid-boundary)/base
}
