// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/bballamudi/CLIMA/mesh/internal/canary"

// Comm is the communicator port every topology constructor talks through
// (spec.md §6): a host program supplies its own implementation wired to
// whatever message-passing library it already depends on. This module never
// constructs one beyond the in-process reference below.
type Comm = canary.Comm

// NewLocalComm builds size mutually linked in-process communicators, one
// per simulated rank, for tests and for the meshinfo CLI harness. Every
// returned Comm must be driven from its own goroutine: construction is
// collective, so AllToAllV and Barrier block until all size ranks call
// them.
func NewLocalComm(size int) []Comm {
	return canary.NewLocalComm(size)
}
