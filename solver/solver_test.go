package solver

import (
	"errors"
	"testing"

	"github.com/TomAFrench/noir/acir"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// x*x - x == 0
func booleanConstraint(t *testing.T, w acir.Witness) acir.Gate {
	t.Helper()
	return acir.NewArithmeticGate(idempotenceExpr(t, w))
}

func TestSolveResolvesBooleanSum(t *testing.T) {
	fld := bn254Field(t)

	// x bool, y bool, x + y - 1 == 0, x = 1: the engine must derive y = 0
	gates := []acir.Gate{
		booleanConstraint(t, 1),
		booleanConstraint(t, 2),
		acir.NewArithmeticGate(acir.Expression{
			LinearCombinations: []acir.LinearTerm{
				{Coeff: fld.One(), W: 1},
				{Coeff: fld.One(), W: 2},
			},
			QC: fld.Neg(fld.One()),
		}),
	}
	initial := acir.NewWitnessMap()
	initial.Insert(1, fld.One())

	s := New(fld, gates, initial)
	require.NoError(t, s.Solve())

	v, ok := s.Witness().Get(2)
	require.True(t, ok)
	require.True(t, v.IsZero())
}

func TestSolveDetectsViolation(t *testing.T) {
	fld := bn254Field(t)

	gates := []acir.Gate{booleanConstraint(t, 1)}
	initial := acir.NewWitnessMap()
	initial.Insert(1, fld.FromInterface(2))

	s := New(fld, gates, initial)
	err := s.Solve()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnsatisfiedConstrain))
}

func TestSolveUnsupportedOpcodePassthrough(t *testing.T) {
	fld := bn254Field(t)

	// w1 - 1 == 0 and w2 - w1 == 0 are trivially solvable; the range gate
	// is not this engine's business but must not be dropped
	gates := []acir.Gate{
		acir.NewArithmeticGate(acir.Expression{
			LinearCombinations: []acir.LinearTerm{{Coeff: fld.One(), W: 1}},
			QC:                 fld.Neg(fld.One()),
		}),
		acir.NewRangeGate(3, 32),
		acir.NewArithmeticGate(acir.Expression{
			LinearCombinations: []acir.LinearTerm{
				{Coeff: fld.One(), W: 2},
				{Coeff: fld.Neg(fld.One()), W: 1},
			},
		}),
	}

	s := New(fld, gates, acir.NewWitnessMap())
	err := s.Solve()
	require.Error(t, err)

	var unsupported *UnsupportedOpcodeError
	require.True(t, errors.As(err, &unsupported))
	require.Equal(t, "range", unsupported.Name)

	// both arithmetic gates were still solved
	for _, w := range []acir.Witness{1, 2} {
		v, ok := s.Witness().Get(w)
		require.True(t, ok)
		require.Equal(t, fld.One(), v)
	}
}

func TestSolveStuckIsIncompleteNotUnsat(t *testing.T) {
	fld := bn254Field(t)

	// w1 + w2 == 0 with neither known and no facts: stuck, not unsat
	gates := []acir.Gate{
		acir.NewArithmeticGate(acir.Expression{
			LinearCombinations: []acir.LinearTerm{
				{Coeff: fld.One(), W: 1},
				{Coeff: fld.One(), W: 2},
			},
		}),
	}
	s := New(fld, gates, acir.NewWitnessMap())
	err := s.Solve()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrIncompleteSolve))
	require.False(t, errors.Is(err, ErrUnsatisfiedConstrain))
}

func TestSolveInvertDirective(t *testing.T) {
	fld := bn254Field(t)

	gates := []acir.Gate{acir.NewInvertDirective(1, 2)}
	initial := acir.NewWitnessMap()
	initial.Insert(1, fld.FromInterface(5))

	s := New(fld, gates, initial)
	require.NoError(t, s.Solve())

	v, ok := s.Witness().Get(2)
	require.True(t, ok)
	require.True(t, fld.IsOne(fld.Mul(v, fld.FromInterface(5))))
}

func TestSolveInvertDirectiveOfZero(t *testing.T) {
	fld := bn254Field(t)

	gates := []acir.Gate{acir.NewInvertDirective(1, 2)}
	initial := acir.NewWitnessMap()
	initial.Insert(1, zero())

	s := New(fld, gates, initial)
	require.NoError(t, s.Solve())

	v, ok := s.Witness().Get(2)
	require.True(t, ok)
	require.True(t, v.IsZero())
}

func TestSolveInversePairThroughBinarySolver(t *testing.T) {
	fld := bn254Field(t)

	// the directive can't be computed (w1 unknown) but registers the pair;
	// w1*w2 == 0 then forces both to zero
	gates := []acir.Gate{
		acir.NewInvertDirective(1, 2),
		acir.NewArithmeticGate(acir.NewQuadraticExpression(fld.One(), 1, 2)),
	}
	s := New(fld, gates, acir.NewWitnessMap())
	require.NoError(t, s.Solve())

	for _, w := range []acir.Witness{1, 2} {
		v, ok := s.Witness().Get(w)
		require.True(t, ok)
		require.True(t, v.IsZero())
	}
}

func TestSolveLaterGateUnlocksEarlierGate(t *testing.T) {
	fld := bn254Field(t)

	// gate order is adversarial: the first gate needs w2, which only the
	// second gate provides, so two passes are required
	gates := []acir.Gate{
		acir.NewArithmeticGate(acir.Expression{
			LinearCombinations: []acir.LinearTerm{
				{Coeff: fld.One(), W: 3},
				{Coeff: fld.Neg(fld.One()), W: 2},
			},
		}),
		acir.NewArithmeticGate(acir.Expression{
			LinearCombinations: []acir.LinearTerm{
				{Coeff: fld.One(), W: 2},
				{Coeff: fld.Neg(fld.One()), W: 1},
			},
		}),
	}
	initial := acir.NewWitnessMap()
	initial.Insert(1, fld.FromInterface(9))

	s := New(fld, gates, initial)
	require.NoError(t, s.Solve())

	v, ok := s.Witness().Get(3)
	require.True(t, ok)
	require.Equal(t, fld.FromInterface(9), v)
}

func TestSolveEmptyGateList(t *testing.T) {
	fld := bn254Field(t)
	s := New(fld, nil, acir.NewWitnessMap())
	require.NoError(t, s.Solve())
}

// A reversed chain w_{i+1} = w_i is the worst case for pass count: each
// pass resolves exactly one gate. Termination within the gate-count bound
// and monotone witness growth must hold for any chain length.
func TestSolveChainTerminationProperty(t *testing.T) {
	fld := bn254Field(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	properties.Property("reversed copy chains solve within the pass bound", prop.ForAll(
		func(n int, seed uint64) bool {
			gates := make([]acir.Gate, 0, n)
			for i := n; i >= 1; i-- {
				gates = append(gates, acir.NewArithmeticGate(acir.Expression{
					LinearCombinations: []acir.LinearTerm{
						{Coeff: fld.One(), W: acir.Witness(i + 1)},
						{Coeff: fld.Neg(fld.One()), W: acir.Witness(i)},
					},
				}))
			}
			initial := acir.NewWitnessMap()
			initial.Insert(1, fld.FromInterface(seed))

			s := New(fld, gates, initial)
			if err := s.Solve(); err != nil {
				return false
			}
			if s.Witness().Len() != n+1 {
				return false
			}
			want := fld.FromInterface(seed)
			for i := 1; i <= n+1; i++ {
				v, ok := s.Witness().Get(acir.Witness(i))
				if !ok || v != want {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 40),
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestWitnessMapMonotonicity(t *testing.T) {
	fld := bn254Field(t)

	m := acir.NewWitnessMap()
	m.Insert(1, fld.One())
	m.Insert(1, fld.One()) // idempotent

	require.Panics(t, func() {
		m.Insert(1, fld.FromInterface(2))
	})
}

func TestInitialWitnessIsNotMutated(t *testing.T) {
	fld := bn254Field(t)

	gates := []acir.Gate{
		acir.NewArithmeticGate(acir.Expression{
			LinearCombinations: []acir.LinearTerm{
				{Coeff: fld.One(), W: 2},
				{Coeff: fld.Neg(fld.One()), W: 1},
			},
		}),
	}
	initial := acir.NewWitnessMap()
	initial.Insert(1, fld.One())

	s := New(fld, gates, initial)
	require.NoError(t, s.Solve())
	require.Equal(t, 1, initial.Len())
	require.Equal(t, 2, s.Witness().Len())
}
