package solver

import (
	"fmt"

	"github.com/TomAFrench/noir/acir"
	"github.com/TomAFrench/noir/field"
	"github.com/consensys/gnark/constraint"
)

// EvaluateExpression substitutes every already-assigned witness of e and
// folds the constants, returning the residual expression over the still
// unknown witnesses. Pure: neither e nor the witness map is modified.
func EvaluateExpression(fld field.Field, e *acir.Expression, witness acir.WitnessMap) acir.Expression {
	res := acir.Expression{QC: e.QC}

	for _, t := range e.MulTerms {
		vl, okL := witness.Get(t.WL)
		vr, okR := witness.Get(t.WR)
		switch {
		case okL && okR:
			res.QC = fld.Add(res.QC, fld.Mul(fld.Mul(t.Coeff, vl), vr))
		case okL:
			res.LinearCombinations = append(res.LinearCombinations,
				acir.LinearTerm{Coeff: fld.Mul(t.Coeff, vl), W: t.WR})
		case okR:
			res.LinearCombinations = append(res.LinearCombinations,
				acir.LinearTerm{Coeff: fld.Mul(t.Coeff, vr), W: t.WL})
		default:
			res.MulTerms = append(res.MulTerms, t)
		}
	}

	for _, t := range e.LinearCombinations {
		if v, ok := witness.Get(t.W); ok {
			res.QC = fld.Add(res.QC, fld.Mul(t.Coeff, v))
		} else {
			res.LinearCombinations = append(res.LinearCombinations, t)
		}
	}

	res.Sort()
	res.LinearCombinations = mergeLinearTerms(fld, res.LinearCombinations)
	return res
}

// mergeLinearTerms folds sorted terms referring to the same witness and
// drops the ones whose coefficients cancel to zero.
func mergeLinearTerms(fld field.Field, terms []acir.LinearTerm) []acir.LinearTerm {
	out := terms[:0]
	for i := 0; i < len(terms); {
		c := terms[i].Coeff
		j := i + 1
		for j < len(terms) && terms[j].W == terms[i].W {
			c = fld.Add(c, terms[j].Coeff)
			j++
		}
		if !c.IsZero() {
			out = append(out, acir.LinearTerm{Coeff: c, W: terms[i].W})
		}
		i = j
	}
	return out
}

// SolveReduced inspects an already-evaluated expression.
//   - fully folded to zero: the gate holds, Resolved.
//   - fully folded to a nonzero constant: proven violated.
//   - a single unknown linear witness: its value is forced to -QC/coeff and
//     written into the witness map, Resolved.
//   - anything else: Skip.
func SolveReduced(fld field.Field, reduced *acir.Expression, witness acir.WitnessMap) (GateResolution, error) {
	if reduced.IsConst() {
		if reduced.QC.IsZero() {
			return Resolved, nil
		}
		return Skip, fmt.Errorf("%w: %s != 0", ErrUnsatisfiedConstrain, fld.String(reduced.QC))
	}

	if len(reduced.MulTerms) == 0 && len(reduced.LinearCombinations) == 1 {
		t := reduced.LinearCombinations[0]
		inv, ok := fld.Inverse(t.Coeff)
		if !ok {
			// zero coefficients are dropped during evaluation
			panic("unexpected: zero coefficient on residual linear term")
		}
		witness.Insert(t.W, fld.Mul(fld.Neg(reduced.QC), inv))
		return Resolved, nil
	}

	return Skip, nil
}

// SolveExpression is the one-shot form of evaluate-then-solve.
func SolveExpression(fld field.Field, e *acir.Expression, witness acir.WitnessMap) (GateResolution, error) {
	reduced := EvaluateExpression(fld, e, witness)
	return SolveReduced(fld, &reduced, witness)
}

func zero() constraint.Element {
	return constraint.Element{}
}
