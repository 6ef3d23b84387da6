package field

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/stretchr/testify/require"
)

func TestGetFieldFromOrder(t *testing.T) {
	bn := GetFieldFromOrder(ecc.BN254.ScalarField())
	require.Equal(t, ecc.BN254.ScalarField(), bn.Field())

	bb := GetFieldFromOrder(big.NewInt(2013265921))
	require.Equal(t, 31, bb.FieldBitLen())

	require.Panics(t, func() {
		GetFieldFromOrder(big.NewInt(17))
	})
}

func TestFieldIdRoundTrip(t *testing.T) {
	for _, id := range []uint64{0, 1} {
		f := GetFieldById(id)
		require.Equal(t, id, GetFieldId(f))
	}
	require.Panics(t, func() {
		GetFieldById(2)
	})
}
