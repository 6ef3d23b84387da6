// Package field abstracts the prime field the circuit values live in.
// All element arithmetic goes through a stateless engine implementing
// constraint.Field, so the solver itself stays field-agnostic.
package field

import (
	"fmt"
	"math/big"

	"github.com/TomAFrench/noir/field/babybear"
	"github.com/TomAFrench/noir/field/bn254"
	"github.com/consensys/gnark/constraint"
)

type Field interface {
	constraint.Field
	// Field returns the modulus
	Field() *big.Int
	FieldBitLen() int
	// SerializedLen is the fixed byte width of one encoded element
	SerializedLen() int
}

func GetFieldFromOrder(x *big.Int) Field {
	if x.Cmp(bn254.ScalarField) == 0 {
		return &bn254.Field{}
	}
	if x.Cmp(babybear.ScalarField) == 0 {
		return &babybear.Field{}
	}
	panic(fmt.Sprintf("unknown field %v", x))
}

func GetFieldId(f Field) uint64 {
	if f.Field().Cmp(bn254.ScalarField) == 0 {
		return 0
	}
	if f.Field().Cmp(babybear.ScalarField) == 0 {
		return 1
	}
	panic(fmt.Sprintf("unsupported field %v", f))
}

func GetFieldById(id uint64) Field {
	switch id {
	case 0:
		return &bn254.Field{}
	case 1:
		return &babybear.Field{}
	}
	panic(fmt.Sprintf("unsupported field id %v", id))
}
