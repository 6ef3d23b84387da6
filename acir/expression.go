package acir

import (
	"sort"
	"strconv"
	"strings"

	"github.com/consensys/gnark/constraint"
)

// MulTerm is a quadratic term c * wL * wR.
type MulTerm struct {
	Coeff  constraint.Element
	WL, WR Witness
}

// NewMulTerm keeps the two witnesses in a canonical order so that equal
// terms compare equal regardless of how they were built.
func NewMulTerm(c constraint.Element, wL, wR Witness) MulTerm {
	if wL < wR {
		wL, wR = wR, wL
	}
	return MulTerm{Coeff: c, WL: wL, WR: wR}
}

// LinearTerm is c * w.
type LinearTerm struct {
	Coeff constraint.Element
	W     Witness
}

// Expression is a constraint of the form
//
//	sum_i c_i*wi*wi' + sum_j c_j*wj + QC == 0
//
// Term order is not semantically meaningful, but Sort gives a canonical
// order so solving is reproducible.
type Expression struct {
	MulTerms           []MulTerm
	LinearCombinations []LinearTerm
	QC                 constraint.Element
}

// NewConstExpression returns the expression `c == 0`.
func NewConstExpression(c constraint.Element) Expression {
	return Expression{QC: c}
}

// NewLinearExpression returns `c*w == 0`.
func NewLinearExpression(c constraint.Element, w Witness) Expression {
	return Expression{LinearCombinations: []LinearTerm{{Coeff: c, W: w}}}
}

// NewQuadraticExpression returns `c*wL*wR == 0`.
func NewQuadraticExpression(c constraint.Element, wL, wR Witness) Expression {
	return Expression{MulTerms: []MulTerm{NewMulTerm(c, wL, wR)}}
}

func (e Expression) Clone() Expression {
	res := Expression{
		MulTerms:           make([]MulTerm, len(e.MulTerms)),
		LinearCombinations: make([]LinearTerm, len(e.LinearCombinations)),
		QC:                 e.QC,
	}
	copy(res.MulTerms, e.MulTerms)
	copy(res.LinearCombinations, e.LinearCombinations)
	return res
}

// IsConst reports whether the expression has no witnesses left.
func (e Expression) IsConst() bool {
	return len(e.MulTerms) == 0 && len(e.LinearCombinations) == 0
}

// Sort puts terms in canonical order: mul terms by (WL, WR), linear terms
// by witness index.
func (e Expression) Sort() {
	sort.Slice(e.MulTerms, func(i, j int) bool {
		if e.MulTerms[i].WL != e.MulTerms[j].WL {
			return e.MulTerms[i].WL < e.MulTerms[j].WL
		}
		return e.MulTerms[i].WR < e.MulTerms[j].WR
	})
	sort.Slice(e.LinearCombinations, func(i, j int) bool {
		return e.LinearCombinations[i].W < e.LinearCombinations[j].W
	})
}

// String renders the expression with coefficients printed by the given
// engine. For logs and test failures only.
func (e Expression) String(field constraint.Field) string {
	var sb strings.Builder
	for _, t := range e.MulTerms {
		sb.WriteString(field.String(t.Coeff))
		sb.WriteString("*w")
		sb.WriteString(strconv.Itoa(int(t.WL)))
		sb.WriteString("*w")
		sb.WriteString(strconv.Itoa(int(t.WR)))
		sb.WriteString(" + ")
	}
	for _, t := range e.LinearCombinations {
		sb.WriteString(field.String(t.Coeff))
		sb.WriteString("*w")
		sb.WriteString(strconv.Itoa(int(t.W)))
		sb.WriteString(" + ")
	}
	sb.WriteString(field.String(e.QC))
	return sb.String()
}
