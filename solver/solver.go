// Package solver derives the full witness of a circuit from a partial
// assignment, gate by gate, until a fixed point is reached.
package solver

import (
	"fmt"

	"github.com/TomAFrench/noir/acir"
	"github.com/TomAFrench/noir/field"
	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// Solver owns the state of one solving run: the growing witness map, the
// derived-fact store and the set of gates already dealt with. A Solver is
// single use and not safe for concurrent use; independent circuits get
// independent Solvers.
type Solver struct {
	fld     field.Field
	gates   []acir.Gate
	witness acir.WitnessMap
	binary  *BinarySolver
	solved  *bitset.BitSet

	log       zerolog.Logger
	maxPasses int
}

type Option func(*Solver)

// WithLogger replaces the default gnark logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Solver) {
		s.log = log
	}
}

// WithMaxPasses caps the number of full passes. The natural bound is the
// gate count, since a pass either resolves something or terminates; the cap
// is a backstop, not a tuning knob.
func WithMaxPasses(n int) Option {
	return func(s *Solver) {
		s.maxPasses = n
	}
}

// New prepares a solving run over the given gate list. The initial witness
// map is copied; the caller's map is never mutated.
func New(fld field.Field, gates []acir.Gate, initial acir.WitnessMap, opts ...Option) *Solver {
	s := &Solver{
		fld:       fld,
		gates:     gates,
		witness:   initial.Clone(),
		binary:    NewBinarySolver(fld),
		solved:    bitset.New(uint(len(gates))),
		log:       logger.Logger(),
		maxPasses: len(gates) + 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Witness returns the witness map in its current state: complete after a
// nil-error Solve, best-effort partial otherwise.
func (s *Solver) Witness() acir.WitnessMap {
	return s.witness
}

// Solve drives passes over the unresolved gates until every gate is
// consumed or a pass makes no progress. The returned error is nil on full
// success, wraps ErrUnsatisfiedConstrain when a gate is proven violated,
// is an *UnsupportedOpcodeError when gates outside this engine's
// competence remain (all others are still solved), and wraps
// ErrIncompleteSolve when the run got stuck.
func (s *Solver) Solve() error {
	var unsupported *UnsupportedOpcodeError

	for pass := 1; s.maxPasses <= 0 || pass <= s.maxPasses; pass++ {
		progress := 0
		remaining := 0

		for i := range s.gates {
			if s.solved.Test(uint(i)) {
				continue
			}
			gate := &s.gates[i]
			res, err := s.solveGate(gate)
			if err != nil {
				return fmt.Errorf("gate %d (%s): %w", i, gate.Name(), err)
			}
			switch res {
			case Resolved:
				s.solved.Set(uint(i))
				progress++
			case UnsupportedOpcode:
				// consumed as far as this engine is concerned
				s.solved.Set(uint(i))
				if unsupported == nil {
					unsupported = &UnsupportedOpcodeError{Name: gate.Name()}
				}
			case Skip:
				remaining++
			}
		}

		s.log.Debug().
			Int("pass", pass).
			Int("resolved", progress).
			Int("remaining", remaining).
			Msg("solver pass")

		if remaining == 0 {
			if unsupported != nil {
				return unsupported
			}
			s.log.Info().
				Int("passes", pass).
				Int("nbGates", len(s.gates)).
				Int("nbWitnesses", s.witness.Len()).
				Msg("witness solved")
			return nil
		}
		if progress == 0 {
			if unsupported != nil {
				return unsupported
			}
			return fmt.Errorf("%w: %d gates unresolved", ErrIncompleteSolve, remaining)
		}
	}

	return fmt.Errorf("%w: pass limit reached", ErrIncompleteSolve)
}

// solveGate dispatches one gate. Arithmetic gates are partially evaluated,
// then tried as a plain algebraic solve, then through the binary solver.
// Fact detection always sees the original expression: shapes like
// idempotence depend on the exact term structure that substitution would
// destroy.
func (s *Solver) solveGate(gate *acir.Gate) (GateResolution, error) {
	switch gate.Type {
	case acir.Arithmetic:
		reduced := EvaluateExpression(s.fld, &gate.Expr, s.witness)
		res, err := SolveReduced(s.fld, &reduced, s.witness)
		if err != nil {
			return res, err
		}
		if res != Resolved {
			res, err = s.binary.SolveBooleans(s.witness, &reduced)
		}
		s.binary.IdentifyBooleans(&gate.Expr)
		return res, err
	case acir.Directive:
		return s.solveDirective(gate)
	default:
		return UnsupportedOpcode, nil
	}
}

// solveDirective registers the directive's facts and, when the operand is
// already known, computes the result outright.
func (s *Solver) solveDirective(gate *acir.Gate) (GateResolution, error) {
	switch gate.Directive {
	case acir.DirectiveInvert:
		s.binary.IdentifyBinaries(gate)
		xv, ok := s.witness.Get(gate.X)
		if !ok {
			return Skip, nil
		}
		inv, nonZero := s.fld.Inverse(xv)
		if !nonZero {
			inv = zero()
		}
		s.witness.Insert(gate.Result, inv)
		return Resolved, nil
	}
	return UnsupportedOpcode, nil
}
