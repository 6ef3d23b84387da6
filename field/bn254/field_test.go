package bn254

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestArithmetic(t *testing.T) {
	var engine Field

	a := engine.FromInterface(3)
	b := engine.FromInterface(4)

	require.Equal(t, engine.FromInterface(7), engine.Add(a, b))
	require.Equal(t, engine.FromInterface(12), engine.Mul(a, b))
	require.Equal(t, engine.FromInterface(1), engine.Sub(b, a))

	// -3 + 3 == 0
	sum := engine.Add(engine.Neg(a), a)
	require.True(t, sum.IsZero())
}

func TestInverse(t *testing.T) {
	var engine Field

	a := engine.FromInterface(5)
	inv, ok := engine.Inverse(a)
	require.True(t, ok)
	require.True(t, engine.IsOne(engine.Mul(a, inv)))

	_, ok = engine.Inverse(engine.FromInterface(0))
	require.False(t, ok)
}

func TestToBigIntIsCanonical(t *testing.T) {
	var engine Field

	x := new(big.Int).Sub(ScalarField, big.NewInt(1))
	e := engine.FromInterface(x)
	require.Equal(t, x, engine.ToBigInt(e))

	// values reduce mod p on the way in
	y := new(big.Int).Add(ScalarField, big.NewInt(2))
	require.Equal(t, big.NewInt(2), engine.ToBigInt(engine.FromInterface(y)))
}

func TestUint64(t *testing.T) {
	var engine Field

	v, ok := engine.Uint64(engine.FromInterface(42))
	require.True(t, ok)
	require.Equal(t, uint64(42), v)

	_, ok = engine.Uint64(engine.FromInterface(ScalarField))
	require.True(t, ok) // p reduces to 0
}

func TestMetadata(t *testing.T) {
	var engine Field

	require.Equal(t, fr.Modulus(), engine.Field())
	require.Equal(t, fr.Bytes, engine.SerializedLen())
	require.Equal(t, fr.Modulus().BitLen(), engine.FieldBitLen())
}
