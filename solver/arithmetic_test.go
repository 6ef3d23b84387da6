package solver

import (
	"errors"
	"testing"

	"github.com/TomAFrench/noir/acir"
	"github.com/TomAFrench/noir/field"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/stretchr/testify/require"
)

func bn254Field(t *testing.T) field.Field {
	t.Helper()
	return field.GetFieldFromOrder(ecc.BN254.ScalarField())
}

func TestEvaluateExpressionSubstitution(t *testing.T) {
	fld := bn254Field(t)
	witness := acir.NewWitnessMap()
	witness.Insert(1, fld.FromInterface(3))

	// 2*w1*w2 + 5*w1 + w3 + 7
	e := acir.Expression{
		MulTerms: []acir.MulTerm{acir.NewMulTerm(fld.FromInterface(2), 1, 2)},
		LinearCombinations: []acir.LinearTerm{
			{Coeff: fld.FromInterface(5), W: 1},
			{Coeff: fld.One(), W: 3},
		},
		QC: fld.FromInterface(7),
	}

	reduced := EvaluateExpression(fld, &e, witness)
	require.Empty(t, reduced.MulTerms)
	require.Len(t, reduced.LinearCombinations, 2)
	// the mul term degraded to 6*w2
	require.Equal(t, acir.Witness(2), reduced.LinearCombinations[0].W)
	require.Equal(t, fld.FromInterface(6), reduced.LinearCombinations[0].Coeff)
	require.Equal(t, acir.Witness(3), reduced.LinearCombinations[1].W)
	// 5*3 + 7
	require.Equal(t, fld.FromInterface(22), reduced.QC)
}

func TestEvaluateExpressionMergesCollidingTerms(t *testing.T) {
	fld := bn254Field(t)
	witness := acir.NewWitnessMap()
	witness.Insert(1, fld.FromInterface(1))

	// w1*w2 - w2 evaluates to zero once w1 = 1
	e := acir.Expression{
		MulTerms: []acir.MulTerm{acir.NewMulTerm(fld.One(), 1, 2)},
		LinearCombinations: []acir.LinearTerm{
			{Coeff: fld.Neg(fld.One()), W: 2},
		},
	}
	reduced := EvaluateExpression(fld, &e, witness)
	require.True(t, reduced.IsConst())
	require.True(t, reduced.QC.IsZero())
}

func TestSolveReducedSingleUnknown(t *testing.T) {
	fld := bn254Field(t)
	witness := acir.NewWitnessMap()
	witness.Insert(1, fld.FromInterface(4))

	// 2*w2 + w1 - 10 == 0 with w1 = 4 forces w2 = 3
	e := acir.Expression{
		LinearCombinations: []acir.LinearTerm{
			{Coeff: fld.FromInterface(2), W: 2},
			{Coeff: fld.One(), W: 1},
		},
		QC: fld.Neg(fld.FromInterface(10)),
	}
	res, err := SolveExpression(fld, &e, witness)
	require.NoError(t, err)
	require.Equal(t, Resolved, res)

	v, ok := witness.Get(2)
	require.True(t, ok)
	require.Equal(t, fld.FromInterface(3), v)
}

func TestSolveReducedViolatedConstant(t *testing.T) {
	fld := bn254Field(t)
	witness := acir.NewWitnessMap()
	witness.Insert(1, fld.FromInterface(2))

	// w1 - 1 == 0 with w1 = 2
	e := acir.Expression{
		LinearCombinations: []acir.LinearTerm{{Coeff: fld.One(), W: 1}},
		QC:                 fld.Neg(fld.One()),
	}
	_, err := SolveExpression(fld, &e, witness)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnsatisfiedConstrain))
}

func TestSolveReducedQuadraticIsSkipped(t *testing.T) {
	fld := bn254Field(t)
	witness := acir.NewWitnessMap()

	e := acir.NewQuadraticExpression(fld.One(), 1, 2)
	res, err := SolveExpression(fld, &e, witness)
	require.NoError(t, err)
	require.Equal(t, Skip, res)
	require.Equal(t, 0, witness.Len())
}
