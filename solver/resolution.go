package solver

import (
	"errors"
	"fmt"
)

// GateResolution is the outcome of one attempt at one gate.
type GateResolution int

const (
	// Resolved means the gate is fully dealt with for this run.
	Resolved GateResolution = iota
	// Skip means no progress was possible this pass; the gate is retried
	// on the next pass.
	Skip
	// UnsupportedOpcode means the gate kind is outside this engine's
	// competence and must be handed to a different backend.
	UnsupportedOpcode
)

func (r GateResolution) String() string {
	switch r {
	case Resolved:
		return "resolved"
	case Skip:
		return "skip"
	case UnsupportedOpcode:
		return "unsupported opcode"
	}
	return "unknown"
}

// ErrUnsatisfiedConstrain reports a gate proven violated by the current
// knowledge. Fatal, never retried.
var ErrUnsatisfiedConstrain = errors.New("constraint is not satisfied")

// ErrIncompleteSolve reports a fixed point reached with gates left over.
// The circuit may still be satisfiable by a complementary solver, so this
// is distinct from ErrUnsatisfiedConstrain.
var ErrIncompleteSolve = errors.New("could not solve every gate")

// UnsupportedOpcodeError reports the first gate kind this engine had to
// hand off. All gates within the engine's competence are still solved.
type UnsupportedOpcodeError struct {
	Name string
}

func (e *UnsupportedOpcodeError) Error() string {
	return fmt.Sprintf("opcode %s requires backend-specific handling", e.Name)
}
