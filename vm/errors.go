package vm

import "errors"

// Sentinel errors surfaced by the runtime core. All of them are fatal: the
// interpreter loop stops and returns the error to its caller immediately,
// there is no in-language recovery mechanism (spec §7).
var (
	errDivisionByZero = errors.New("arithmetic domain error: division or modulo by zero")

	errRegexCompile = errors.New("regex compile error")

	errIO = errors.New("input-output error")

	// errInvariant covers every condition the spec treats as a compiler
	// bug rather than a recoverable runtime fault: out-of-range register,
	// unknown label, unknown opcode, iterator invalidated by mutation.
	errInvariant = errors.New("vm invariant violation")
)

// FatalError wraps a sentinel error with the program-counter context it
// failed at, so a driver can report something more useful than "division by
// zero" with no location.
type FatalError struct {
	Err error
	PC  int
	Op  Opcode
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
