package canary

// ElemSet is the generator output shared by the brick and cubed-shell
// generators (4.B, 4.C) and consumed by the SFC partitioner (4.D). One
// entry per locally-generated element, entries need not be contiguous in
// GlobalID nor owned by any particular rank yet.
type ElemSet struct {
	Dim      int         // logical dimension (1, 2 or 3)
	NGlobal  int         // total element count across all ranks
	GlobalID []int       // [elem] generator-assigned global id (pre-SFC)
	Vert     [][]int     // [elem][corner] global vertex id, Cartesian order
	Coord    [][][3]float64 // [elem][corner] -> (x,y,z), 3 rows always
	Bndy     [][]int     // [elem][face] boundary tag, 0 = interior

	// FaceConns lists global vertex-id pairs that must be treated as
	// identical during face keying (periodic wraps; the cubed shell emits
	// none, its patches share vertex ids directly).
	// It is the same on every rank: it is derived only from the global
	// shape parameters, never from which elements a rank happens to own.
	FaceConns []VertPair
}

// VertPair identifies two global vertex ids unified by a periodic wrap
// (spec.md 4.E step 2).
type VertPair struct{ A, B int }

// Centroid returns the arithmetic mean of an element's corners.
func Centroid(corners [][3]float64) [3]float64 {
	var c [3]float64
	for _, v := range corners {
		c[0] += v[0]
		c[1] += v[1]
		c[2] += v[2]
	}
	n := float64(len(corners))
	c[0] /= n
	c[1] /= n
	c[2] /= n
	return c
}
