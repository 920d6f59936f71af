// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"

	"github.com/bballamudi/CLIMA/mesh/internal/canary"
	"github.com/cpmech/gosl/chk"
)

// ErrorKind discriminates the four failure categories this package can
// raise (spec.md §7): Unsupported (an option combination the constructor
// doesn't implement), InvalidShape (bad shape parameters), MeshInvariant
// (an internal consistency check failed) and InvalidWarpInput (warp.go).
type ErrorKind int

const (
	Unsupported ErrorKind = iota + 1
	InvalidShape
	MeshInvariant
	InvalidWarpInput
)

// Error is the type every exported function in this package returns on
// failure; callers discriminate failure categories with errors.As.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("mesh: %s: %s", e.Op, e.Msg)
}

func errUnsupported(op, format string, args ...interface{}) error {
	return &Error{Kind: Unsupported, Op: op, Msg: chk.Err(format, args...).Error()}
}

func errInvalidShape(op, format string, args ...interface{}) error {
	return &Error{Kind: InvalidShape, Op: op, Msg: chk.Err(format, args...).Error()}
}

// fromCanary translates an internal/canary error into this package's own
// kind taxonomy; canary sits underneath mesh and never imports it, so it
// keeps a small taxonomy of its own that this is the one place to bridge.
// An error that is already a *Error passes through unchanged.
func fromCanary(op string, err error) error {
	if err == nil {
		return nil
	}
	if me, ok := err.(*Error); ok {
		return me
	}
	ce, ok := err.(*canary.Error)
	if !ok {
		return &Error{Kind: MeshInvariant, Op: op, Msg: err.Error()}
	}
	kind := MeshInvariant
	if ce.Kind == canary.KindInvalidShape {
		kind = InvalidShape
	}
	return &Error{Kind: kind, Op: op, Msg: ce.Msg}
}
