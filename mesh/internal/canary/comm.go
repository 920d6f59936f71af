// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package canary implements the partitioning and connectivity machinery
// shared by every mesh topology flavor: the linear partitioner, the brick
// and cubed-shell generators, the space-filling-curve partitioner, the
// face-connectivity engine and the vertical stack extruder. It has no
// dependency on any concrete message-passing library; ranks talk to each
// other only through the Comm port defined here.
package canary

import (
	"fmt"
	"sync"
)

// Comm is the thin communicator port every component in this package talks
// through. It carries no assumption about the underlying transport: a host
// program wires it to whatever message-passing layer it already uses.
type Comm interface {
	Rank() int
	Size() int

	// AllToAllV exchanges variable-sized byte payloads: send[j] is delivered
	// to rank j, and the returned slice's j-th entry is what rank j sent to
	// this rank. len(send) must equal Size(); this is a collective call,
	// every rank in the group must call it the same number of times.
	AllToAllV(send [][]byte) ([][]byte, error)

	Barrier()
}

// exchange is a single round's shared mailbox, guarded by a barrier so
// every rank's AllToAllV call blocks until all ranks have posted their
// send table, matching the collective, SPMD nature of construction.
type exchange struct {
	mu      sync.Mutex
	cond    *sync.Cond
	size    int
	round   int
	posted  int
	read    int
	sendBuf [][][]byte
}

func newExchange(size int) *exchange {
	e := &exchange{size: size, sendBuf: make([][][]byte, size)}
	e.cond = sync.NewCond(&e.mu)
	return e
}

func (e *exchange) allToAllV(rank int, send [][]byte) [][]byte {
	e.mu.Lock()
	myRound := e.round
	e.sendBuf[rank] = send
	e.posted++
	if e.posted == e.size {
		e.cond.Broadcast()
	}
	for e.round == myRound && e.posted != e.size {
		e.cond.Wait()
	}
	recv := make([][]byte, e.size)
	for src := 0; src < e.size; src++ {
		recv[src] = e.sendBuf[src][rank]
	}
	e.read++
	if e.read == e.size {
		e.round++
		e.posted = 0
		e.read = 0
		e.sendBuf = make([][][]byte, e.size)
		e.cond.Broadcast()
	} else {
		for e.round == myRound {
			e.cond.Wait()
		}
	}
	e.mu.Unlock()
	return recv
}

func (e *exchange) barrier(rank int) {
	e.allToAllV(rank, make([][]byte, e.size))
}

// localComm is an in-process Comm used by tests and by the meshinfo CLI
// harness to exercise the full multi-rank pipeline from one Go process. It
// is not meant for production distributed execution: each simulated rank
// must run on its own goroutine so the collective barrier above can make
// progress.
type localComm struct {
	rank int
	size int
	ex   *exchange
}

// NewLocalComm builds size mutually linked in-process communicators, one
// per simulated rank. It is the only Comm implementation this module
// ships; production deployments supply their own, wired to whatever
// message-passing library the host program already depends on. Every
// returned Comm must be driven from its own goroutine: AllToAllV and
// Barrier block until all size ranks have called them.
func NewLocalComm(size int) []Comm {
	if size < 1 {
		size = 1
	}
	ex := newExchange(size)
	out := make([]Comm, size)
	for r := 0; r < size; r++ {
		out[r] = &localComm{rank: r, size: size, ex: ex}
	}
	return out
}

func (c *localComm) Rank() int { return c.rank }
func (c *localComm) Size() int { return c.size }

func (c *localComm) AllToAllV(send [][]byte) ([][]byte, error) {
	if len(send) != c.size {
		return nil, fmt.Errorf("canary: AllToAllV: send has %d entries, want %d", len(send), c.size)
	}
	return c.ex.allToAllV(c.rank, send), nil
}

func (c *localComm) Barrier() { c.ex.barrier(c.rank) }
