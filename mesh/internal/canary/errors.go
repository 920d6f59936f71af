package canary

import "fmt"

// Kind discriminates the failure categories this package can raise. The
// mesh facade maps these onto its own exported error kinds; canary never
// imports mesh (it sits underneath it), so it keeps its own small taxonomy.
type Kind int

const (
	KindInvalidShape Kind = iota + 1
	KindMeshInvariant
)

// Error is the error type every exported canary function returns on
// failure. Op names the component that raised it (e.g. "connectivity",
// "brick") the way gofem's chk.Err messages are prefixed with the
// offending routine.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("canary: %s: %s", e.Op, e.Msg)
}

func errInvalidShape(op, format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidShape, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func errMeshInvariant(op, format string, args ...interface{}) error {
	return &Error{Kind: KindMeshInvariant, Op: op, Msg: fmt.Sprintf(format, args...)}
}
