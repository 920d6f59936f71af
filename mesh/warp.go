// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "math"

// WarpCubeToSphere is the cubed-shell warp (spec.md 4.G): a pure,
// allocation-free equiangular gnomonic projection (Ronchi, Iacono &
// Paolucci, 1996) of a point on the surface of a cube of half-side
// R = max(|a|,|b|,|c|) onto the sphere of that same radius R. It has no
// topology dependency; StackedCubedSphereTopology is the only caller,
// applying it to every corner (always at R=1, the generator's unit cube)
// before scaling by that corner's radius.
//
// (a, b, c) must have exactly one component at (or effectively at) ±R, the
// axis the cube face is normal to; the other two must lie in [-R, R]. A
// point with no dominant axis (e.g. the origin) has no well-defined face
// and returns an InvalidWarpInput error.
func WarpCubeToSphere(a, b, c float64) (x, y, z float64, err error) {
	abs := [3]float64{math.Abs(a), math.Abs(b), math.Abs(c)}
	dom := 0
	for i := 1; i < 3; i++ {
		if abs[i] > abs[dom] {
			dom = i
		}
	}
	if abs[dom] < 1e-9 {
		return 0, 0, 0, &Error{Kind: InvalidWarpInput, Op: "warp", Msg: "no dominant axis in (0,0,0)-like input"}
	}

	v := [3]float64{a, b, c}
	sign := 1.0
	if v[dom] < 0 {
		sign = -1.0
	}
	// Rescale the two non-dominant components onto [-1,1] (tolerating
	// input that isn't exactly on the unit cube) and apply the
	// equiangular tangent warp before normalizing to the unit sphere.
	dir := [3]float64{}
	dir[dom] = sign
	for i := 0; i < 3; i++ {
		if i == dom {
			continue
		}
		t := v[i] / abs[dom]
		dir[i] = math.Tan(t * math.Pi / 4)
	}
	n := math.Sqrt(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2])
	r := abs[dom]
	return r * dir[0] / n, r * dir[1] / n, r * dir[2] / n, nil
}
