// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh builds distributed mesh topologies for a finite-volume-style
// dynamical core: flat and vertically stacked bricks, and flat and stacked
// cubed-sphere shells, each connected rank-to-rank through a thin Comm port.
// The only importable surface is this package and its four constructors;
// the partitioning, generation and connectivity machinery they share lives
// in internal/canary and is never meant to be used directly.
package mesh

import (
	"log"

	"github.com/bballamudi/CLIMA/mesh/internal/canary"
)

// Topology is one rank's view of a distributed mesh: its real and ghost
// elements, their coordinates, face-to-face connectivity, and the
// neighbor-rank send/recv layout needed to keep ghost data current. All
// fields are unexported; callers go through the accessor methods below,
// following inp.Mesh's convention of exposing derived mesh state as typed,
// read-only struct data.
type Topology struct {
	dim       int
	comm      Comm
	stackSize int

	nReal, nGhost int
	elemVert      [][]int
	elemCoord     [][][3]float64
	globalID      []int

	elemToElem [][]int
	elemToFace [][]int
	elemToOrdr [][]int
	elemToBndy [][]int

	sendElems  []int
	nabrRank   []int
	nabrRecvLo []int
	nabrRecvHi []int
	nabrSendLo []int
	nabrSendHi []int
}

func newTopology(dim int, comm Comm, t *canary.Tables, stackSize int) *Topology {
	log.Printf("mesh: rank %d/%d built dim=%d nreal=%d nghost=%d nabrs=%d",
		comm.Rank(), comm.Size(), dim, t.NReal, t.NGhost, len(t.NabrRank))
	return &Topology{
		dim: dim, comm: comm, stackSize: stackSize,
		nReal: t.NReal, nGhost: t.NGhost,
		elemVert: t.ElemVert, elemCoord: t.ElemCoord, globalID: t.GlobalID,
		elemToElem: t.ElemToElem, elemToFace: t.ElemToFace,
		elemToOrdr: t.ElemToOrdr, elemToBndy: t.ElemToBndy,
		sendElems: t.SendElems, nabrRank: t.NabrRank,
		nabrRecvLo: t.NabrRecvLo, nabrRecvHi: t.NabrRecvHi,
		nabrSendLo: t.NabrSendLo, nabrSendHi: t.NabrSendHi,
	}
}

// NumDim returns the topology's full dimension (horizontal dimension plus
// one for stacked variants).
func (m *Topology) NumDim() int { return m.dim }

// NumFaces returns 2*NumDim.
func (m *Topology) NumFaces() int { return 2 * m.dim }

// Rank returns this topology's owning rank.
func (m *Topology) Rank() int { return m.comm.Rank() }

// Size returns the communicator's rank count.
func (m *Topology) Size() int { return m.comm.Size() }

// StackSize returns the vertical element count per column, or 0 for the
// flat (BrickTopology, CubedShellTopology) variants.
func (m *Topology) StackSize() int { return m.stackSize }

// NumReal returns the number of locally-owned elements.
func (m *Topology) NumReal() int { return m.nReal }

// NumGhost returns the number of ghost (foreign-owned, mirrored) elements.
func (m *Topology) NumGhost() int { return m.nGhost }

// GlobalID returns element e's (real or ghost) global id.
func (m *Topology) GlobalID(e int) int { return m.globalID[e] }

// ElemToCoord returns element e's corner-th corner coordinate. e ranges
// over [0, NumReal()+NumGhost()); corner ranges over [0, 2^NumDim()).
func (m *Topology) ElemToCoord(e, corner int) [3]float64 { return m.elemCoord[e][corner] }

// ElemToVert returns element e's corner-th corner global vertex id.
func (m *Topology) ElemToVert(e, corner int) int { return m.elemVert[e][corner] }

// ElemToElem returns the local index of the element across face f of real
// element e (e itself if f is a physical boundary).
func (m *Topology) ElemToElem(f, e int) int { return m.elemToElem[f][e] }

// ElemToFace returns which face of the neighboring element ElemToElem(f,e)
// is joined to face f of e.
func (m *Topology) ElemToFace(f, e int) int { return m.elemToFace[f][e] }

// ElemToOrdr returns the relative orientation code (1 identity, 3 reversed)
// of face f of real element e against its neighbor's matching face.
func (m *Topology) ElemToOrdr(f, e int) int { return m.elemToOrdr[f][e] }

// ElemToBndy returns the boundary tag of face f of real element e, or 0 if
// it is an interior (or ghost-connected) face.
func (m *Topology) ElemToBndy(f, e int) int { return m.elemToBndy[f][e] }

// SendElems returns the flattened, per-neighbor-grouped list of local real
// element indices this rank must send to its neighbors.
func (m *Topology) SendElems() []int { return m.sendElems }

// NabrRanks returns the ranks this rank exchanges ghost data with, in the
// order NabrRecvRange/NabrSendRange index into.
func (m *Topology) NabrRanks() []int { return m.nabrRank }

// NabrRecvRange returns the [lo,hi) sub-range of ghost element indices
// (offset from NumReal()) received from the n-th neighbor rank.
func (m *Topology) NabrRecvRange(n int) (lo, hi int) { return m.nabrRecvLo[n], m.nabrRecvHi[n] }

// NabrSendRange returns the [lo,hi) sub-range of SendElems sent to the n-th
// neighbor rank.
func (m *Topology) NabrSendRange(n int) (lo, hi int) { return m.nabrSendLo[n], m.nabrSendHi[n] }

// UniformAxis builds an elemRange row of n+1 evenly spaced corner
// coordinates between xmin and xmax, for callers who don't need a
// non-uniform ladder.
func UniformAxis(xmin, xmax float64, n int) []float64 {
	return canary.UniformAxis(xmin, xmax, n)
}

func bboxFromElemRange(elemRange [][]float64) canary.BBox {
	var b canary.BBox
	for a, axis := range elemRange {
		b.Min[a] = axis[0]
		b.Max[a] = axis[len(axis)-1]
	}
	return b
}

// BrickTopology builds a flat, axis-aligned brick mesh (spec.md 4.H).
// elemRange[d] lists the Nd+1 corner coordinates along axis d.
func BrickTopology(comm Comm, elemRange [][]float64, opts ...Option) (*Topology, error) {
	dim := len(elemRange)
	cfg := newConfig(dim)
	for _, o := range opts {
		o(cfg)
	}
	if err := cfg.validateFlat(dim, "BrickTopology"); err != nil {
		return nil, err
	}

	local, err := canary.GenerateBrick(elemRange, cfg.periodicity, cfg.boundary, comm.Rank(), comm.Size())
	if err != nil {
		return nil, fromCanary("BrickTopology", err)
	}
	local, err = canary.SFCPartition(comm, local, bboxFromElemRange(elemRange))
	if err != nil {
		return nil, fromCanary("BrickTopology", err)
	}
	tables, err := canary.Connect(comm, local)
	if err != nil {
		return nil, fromCanary("BrickTopology", err)
	}
	return newTopology(dim, comm, tables, 0), nil
}

// buildBaseBrick runs the full A->B->D->E pipeline for a brick base used by
// StackedBrickTopology, without extruding it.
func buildBaseBrick(comm Comm, elemRange [][]float64, cfg *config, op string) (*canary.Tables, error) {
	dim := len(elemRange)
	if err := cfg.validateFlat(dim, op); err != nil {
		return nil, err
	}
	local, err := canary.GenerateBrick(elemRange, cfg.periodicity, cfg.boundary, comm.Rank(), comm.Size())
	if err != nil {
		return nil, fromCanary(op, err)
	}
	local, err = canary.SFCPartition(comm, local, bboxFromElemRange(elemRange))
	if err != nil {
		return nil, fromCanary(op, err)
	}
	return canary.Connect(comm, local)
}

// StackedBrickTopology extrudes a flat brick base into nLevels vertical
// layers, one column per base element, never split across partitions
// (spec.md 4.F). radii lists the NLevels+1 vertical coordinate at each
// level boundary.
func StackedBrickTopology(comm Comm, baseElemRange [][]float64, nLevels int, radii []float64, opts ...Option) (*Topology, error) {
	baseDim := len(baseElemRange)
	cfg := newConfig(baseDim)
	for _, o := range opts {
		o(cfg)
	}
	base, err := buildBaseBrick(comm, baseElemRange, cfg, "StackedBrickTopology")
	if err != nil {
		return nil, fromCanary("StackedBrickTopology", err)
	}
	stacked, err := canary.ExtrudeStack(canary.StackInput{
		Base: base, NLevels: nLevels, Radii: radii,
		Periodic: cfg.vertPeriodic, BndyLow: cfg.bc[0], BndyHigh: cfg.bc[1],
	})
	if err != nil {
		return nil, fromCanary("StackedBrickTopology", err)
	}
	return newTopology(baseDim+1, comm, stacked, nLevels), nil
}

func validateShell(cfg *config, op string) error {
	if cfg.connectivity != "face" {
		return errUnsupported(op, "connectivity %q not implemented, only \"face\"", cfg.connectivity)
	}
	if cfg.ghostSize != 1 {
		return errUnsupported(op, "ghostsize %d not implemented, only 1", cfg.ghostSize)
	}
	for _, p := range cfg.periodicity {
		if p {
			return errUnsupported(op, "a cubed shell has no periodic axes")
		}
	}
	return nil
}

func buildBaseShell(comm Comm, ne int, cfg *config, op string) (*canary.Tables, error) {
	if err := validateShell(cfg, op); err != nil {
		return nil, err
	}
	local, err := canary.GenerateCubedShell(ne, comm.Rank(), comm.Size())
	if err != nil {
		return nil, fromCanary(op, err)
	}
	local, err = canary.SFCPartition(comm, local, canary.BBox{Min: [3]float64{-1, -1, -1}, Max: [3]float64{1, 1, 1}})
	if err != nil {
		return nil, fromCanary(op, err)
	}
	return canary.Connect(comm, local)
}

// CubedShellTopology builds a flat, six-patch cubed-shell mesh of ne*ne
// elements per patch (spec.md 4.C/4.H).
func CubedShellTopology(comm Comm, ne int, opts ...Option) (*Topology, error) {
	cfg := newConfig(2)
	for _, o := range opts {
		o(cfg)
	}
	tables, err := buildBaseShell(comm, ne, cfg, "CubedShellTopology")
	if err != nil {
		return nil, err
	}
	return newTopology(2, comm, tables, 0), nil
}

// StackedCubedSphereTopology extrudes a cubed-shell base radially into
// nLevels spherical layers (spec.md 4.F/4.G), using WarpCubeToSphere to
// project each corner before scaling by radii. WithBC is required: it sets
// the innermost/outermost radial boundary tags.
func StackedCubedSphereTopology(comm Comm, ne, nLevels int, radii []float64, opts ...Option) (*Topology, error) {
	cfg := newConfig(2)
	for _, o := range opts {
		o(cfg)
	}
	if !cfg.bcSet {
		return nil, errUnsupported("StackedCubedSphereTopology", "WithBC is required to tag the innermost/outermost radial faces")
	}
	if cfg.vertPeriodic {
		return nil, errUnsupported("StackedCubedSphereTopology", "a sphere's radial axis cannot be periodic")
	}
	base, err := buildBaseShell(comm, ne, cfg, "StackedCubedSphereTopology")
	if err != nil {
		return nil, err
	}
	stacked, err := canary.ExtrudeStack(canary.StackInput{
		Base: base, NLevels: nLevels, Radii: radii,
		BndyLow: cfg.bc[0], BndyHigh: cfg.bc[1],
		Warp: WarpCubeToSphere,
	})
	if err != nil {
		return nil, fromCanary("StackedCubedSphereTopology", err)
	}
	return newTopology(3, comm, stacked, nLevels), nil
}
