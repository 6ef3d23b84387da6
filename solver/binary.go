package solver

import (
	"fmt"
	"math/big"

	"github.com/TomAFrench/noir/acir"
	"github.com/TomAFrench/noir/field"
)

// BinarySolver tracks facts about still-unresolved witnesses: which are
// provably 0/1-valued, which pairs are multiplicative inverses, and which
// carry a proven upper bound smaller than the field. Gates that use only
// such witnesses can be solved even when plain evaluation cannot touch
// them; this happens e.g. for array equality constraints whose right-hand
// values were never supplied.
//
// Facts are never retracted. The three stores only grow as gates are
// scanned, and every later solving attempt may rely on them regardless of
// gate order.
type BinarySolver struct {
	fld     field.Field
	modulus *big.Int

	binaryWitness   map[acir.Witness]struct{}
	invertWitness   map[acir.Witness]acir.Witness
	positiveWitness map[acir.Witness]*big.Int
}

func NewBinarySolver(fld field.Field) *BinarySolver {
	return &BinarySolver{
		fld:             fld,
		modulus:         fld.Field(),
		binaryWitness:   make(map[acir.Witness]struct{}),
		invertWitness:   make(map[acir.Witness]acir.Witness),
		positiveWitness: make(map[acir.Witness]*big.Int),
	}
}

func (s *BinarySolver) IsBoolean(w acir.Witness) bool {
	_, ok := s.binaryWitness[w]
	return ok
}

// AreInverse reports whether the two witnesses were recorded as an inverse
// pair, in either order.
func (s *BinarySolver) AreInverse(w1, w2 acir.Witness) bool {
	if r, ok := s.invertWitness[w1]; ok && r == w2 {
		return true
	}
	if r, ok := s.invertWitness[w2]; ok && r == w1 {
		return true
	}
	return false
}

// AreBoolean reports whether the product w1*w2 is bounded by 1: either the
// pair is an inverse pair (product 0 or 1 by the invert convention) or both
// witnesses are individually boolean.
func (s *BinarySolver) AreBoolean(w1, w2 acir.Witness) bool {
	return s.AreInverse(w1, w2) || (s.IsBoolean(w1) && s.IsBoolean(w2))
}

// MaxValue returns a proven upper bound on w, or nil when none is known.
func (s *BinarySolver) MaxValue(w acir.Witness) *big.Int {
	if s.IsBoolean(w) {
		return big.NewInt(1)
	}
	if v, ok := s.positiveWitness[w]; ok {
		return new(big.Int).Set(v)
	}
	return nil
}

// SolveBooleans attempts to close a (partially evaluated) expression using
// only derived facts. When the expression's true value is provably confined
// below the modulus, "== 0 in the field" coincides with "== 0 over the
// integers"; every term is non-negative, so the sum is zero only if each
// term is, which lets us force all linear witnesses to zero outright.
// An inconclusive bound always defers (Skip), never decides.
func (s *BinarySolver) SolveBooleans(witness acir.WitnessMap, gate *acir.Expression) (GateResolution, error) {
	if res, err := s.solveInverse(gate, witness); err != nil || res == Resolved {
		return res, err
	}

	max := s.IsBinary(gate)
	if max == nil {
		return Skip, nil
	}
	if max.Cmp(s.modulus) >= 0 {
		return Skip, nil
	}
	if !gate.QC.IsZero() {
		return Skip, fmt.Errorf("%w: expression is bounded by %s but has constant term %s",
			ErrUnsatisfiedConstrain, max.String(), s.fld.String(gate.QC))
	}
	for _, t := range gate.LinearCombinations {
		witness.Insert(t.W, zero())
	}
	return Resolved, nil
}

// IsBinary computes an exact upper bound on the expression's non-modular
// value, or nil when the expression is not classifiable: a mul term whose
// pair is not bounded by 1, a linear witness with no known max, or a term
// sum already past the modulus (the value could wrap, so nothing can be
// concluded). The returned bound includes the constant term.
func (s *BinarySolver) IsBinary(gate *acir.Expression) *big.Int {
	max := new(big.Int)
	for _, t := range gate.MulTerms {
		if !s.AreBoolean(t.WL, t.WR) {
			return nil
		}
		max.Add(max, s.fld.ToBigInt(t.Coeff))
	}
	for _, t := range gate.LinearCombinations {
		v := s.MaxValue(t.W)
		if v == nil {
			return nil
		}
		max.Add(max, v.Mul(v, s.fld.ToBigInt(t.Coeff)))
	}
	if max.Cmp(s.modulus) > 0 {
		return nil
	}
	return max.Add(max, s.fld.ToBigInt(gate.QC))
}

// solveInverse handles the shape c*x*y + qc == 0 where (x, y) is a recorded
// inverse pair and there are no linear terms. qc == 0 forces both to zero;
// qc == 1 is the satisfied "x*y = 1" form and is left for later passes; any
// other constant contradicts the invert convention.
func (s *BinarySolver) solveInverse(gate *acir.Expression, witness acir.WitnessMap) (GateResolution, error) {
	if len(gate.MulTerms) == 1 && len(gate.LinearCombinations) == 0 &&
		s.AreInverse(gate.MulTerms[0].WL, gate.MulTerms[0].WR) {
		if gate.QC.IsZero() {
			witness.Insert(gate.MulTerms[0].WL, zero())
			witness.Insert(gate.MulTerms[0].WR, zero())
			return Resolved, nil
		} else if !s.fld.IsOne(gate.QC) {
			return Skip, fmt.Errorf("%w: inverse pair product must be 0 or 1, constant is %s",
				ErrUnsatisfiedConstrain, s.fld.String(gate.QC))
		}
	}

	return Skip, nil
}

// IdentifyBooleans pattern-matches the canonical shapes that prove a
// witness is 0/1-valued, and records positive bounds for the optimizer
// shape. Matching requires exact coefficient cancellation; near-misses add
// nothing. Detection never fails, it either adds a fact or does nothing.
func (s *BinarySolver) IdentifyBooleans(arith *acir.Expression) {
	x := -1
	if len(arith.MulTerms) == 1 && len(arith.LinearCombinations) == 1 {
		m := arith.MulTerms[0]
		l := arith.LinearCombinations[0]
		sumML := s.fld.Add(m.Coeff, l.Coeff)
		sumMQ := s.fld.Add(m.Coeff, arith.QC)
		// x*x = x
		if m.WL == m.WR && m.WL == l.W && arith.QC.IsZero() &&
			sumML.IsZero() {
			x = 0
		} else if s.AreBoolean(m.WL, m.WR) {
			// x = a*b with a, b boolean or inverse
			if arith.QC.IsZero() {
				if sumML.IsZero() {
					x = 0
				}
			} else if sumMQ.IsZero() && m.Coeff == l.Coeff {
				x = 0
			}
		}
	} else if len(arith.MulTerms) == 0 && len(arith.LinearCombinations) == 2 {
		// x = y with exactly one side known boolean
		l0 := arith.LinearCombinations[0]
		l1 := arith.LinearCombinations[1]
		z := -1
		if s.IsBoolean(l0.W) && !s.IsBoolean(l1.W) {
			z = 1
		} else if s.IsBoolean(l1.W) && !s.IsBoolean(l0.W) {
			z = 0
		}
		if z >= 0 {
			sumLL := s.fld.Add(l0.Coeff, l1.Coeff)
			sumQL := s.fld.Add(arith.QC, l1.Coeff)
			if arith.QC.IsZero() {
				if sumLL.IsZero() {
					x = z
				}
			} else if sumQL.IsZero() && l0.Coeff == l1.Coeff {
				x = 0
			}
		}
	} else if len(arith.MulTerms) == 0 && len(arith.LinearCombinations) > 2 {
		// optimizer shape: one fresh intermediate plus a run of bounded
		// linear terms summing under the modulus
		max := s.fld.ToBigInt(arith.QC)
		for i, lin := range arith.LinearCombinations {
			if v := s.MaxValue(lin.W); v != nil {
				max.Add(max, v.Mul(v, s.fld.ToBigInt(lin.Coeff)))
			} else if x >= 0 {
				x = -1
				break
			} else {
				x = i
			}
		}
		if max.Cmp(s.modulus) < 0 && x >= 0 &&
			arith.LinearCombinations[x].Coeff == s.fld.Neg(s.fld.One()) {
			s.positiveWitness[arith.LinearCombinations[x].W] = max
			x = -1
		}
	}
	if x >= 0 {
		s.binaryWitness[arith.LinearCombinations[x].W] = struct{}{}
	}
}

// IdentifyBinaries records the facts one gate exposes without needing any
// witness values: invert directives yield inverse pairs, arithmetic gates
// go through boolean shape detection.
func (s *BinarySolver) IdentifyBinaries(gate *acir.Gate) {
	switch gate.Type {
	case acir.Directive:
		if gate.Directive == acir.DirectiveInvert {
			s.invertWitness[gate.X] = gate.Result
		}
	case acir.Arithmetic:
		s.IdentifyBooleans(&gate.Expr)
	}
}
