// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

// config is the unexported knob set every constructor builds up from
// Options before validating and handing it to internal/canary. The
// functional-options pattern here generalizes gofem's NewFEM-style
// constructor (required positional args plus a validated options tail) to
// Go's idiomatic closures-over-config form.
type config struct {
	periodicity  []bool
	boundary     [2][]int
	connectivity string
	ghostSize    int
	vertPeriodic bool
	bc           [2]int
	bcSet        bool
}

func newConfig(dim int) *config {
	low, high := make([]int, dim), make([]int, dim)
	for d := 0; d < dim; d++ {
		low[d], high[d] = 1, 1
	}
	return &config{
		periodicity:  make([]bool, dim),
		boundary:     [2][]int{low, high},
		connectivity: "face",
		ghostSize:    1,
		bc:           [2]int{1, 1},
	}
}

// Option configures a topology constructor.
type Option func(*config)

// WithPeriodicity marks axis d periodic when periodic[d] is true. Must list
// exactly one entry per horizontal axis of the topology being built.
func WithPeriodicity(periodic ...bool) Option {
	return func(c *config) { c.periodicity = append([]bool(nil), periodic...) }
}

// WithBoundary sets the low/high boundary tag for every horizontal axis.
// Ignored on axes marked periodic by WithPeriodicity.
func WithBoundary(low, high []int) Option {
	return func(c *config) {
		c.boundary[0] = append([]int(nil), low...)
		c.boundary[1] = append([]int(nil), high...)
	}
}

// WithConnectivity selects the neighbor-matching granularity. "face" is the
// only kind this module implements; any other value fails validation with
// Unsupported.
func WithConnectivity(kind string) Option {
	return func(c *config) { c.connectivity = kind }
}

// WithGhostSize sets the ghost layer depth. 1 is the only depth this module
// implements; any other value fails validation with Unsupported.
func WithGhostSize(n int) Option {
	return func(c *config) { c.ghostSize = n }
}

// WithVerticalPeriodic wraps the top and bottom levels of a stacked brick
// topology into each other's neighbors. Not valid on StackedCubedSphere.
func WithVerticalPeriodic(on bool) Option {
	return func(c *config) { c.vertPeriodic = on }
}

// WithBC sets the low/high boundary tag for the vertical axis of a stacked
// topology (the innermost/outermost radial faces for a sphere).
func WithBC(low, high int) Option {
	return func(c *config) {
		c.bc = [2]int{low, high}
		c.bcSet = true
	}
}

func (c *config) validateFlat(dim int, op string) error {
	if c.connectivity != "face" {
		return errUnsupported(op, "connectivity %q not implemented, only \"face\"", c.connectivity)
	}
	if c.ghostSize != 1 {
		return errUnsupported(op, "ghostsize %d not implemented, only 1", c.ghostSize)
	}
	if len(c.periodicity) != dim {
		return errInvalidShape(op, "periodicity has %d entries, want %d", len(c.periodicity), dim)
	}
	if len(c.boundary[0]) != dim || len(c.boundary[1]) != dim {
		return errInvalidShape(op, "boundary tags must have %d entries per side", dim)
	}
	return nil
}
