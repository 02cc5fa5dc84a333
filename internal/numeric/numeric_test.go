package numeric

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRational(t *testing.T, num, den int64) Number {
	t.Helper()
	n, err := NewRational(big.NewInt(num), big.NewInt(den))
	require.NoError(t, err)
	return n
}

func TestRationalCanonicality(t *testing.T) {
	n := mustRational(t, 2, 4)
	assert.Equal(t, KindRational, n.Kind)
	assert.Equal(t, "1", n.Num().String())
	assert.Equal(t, "2", n.Den().String())

	whole := mustRational(t, 6, 3)
	assert.Equal(t, KindInteger, whole.Kind, "denominator 1 must collapse to Integer")
}

func TestAddExactness(t *testing.T) {
	a := mustRational(t, 1, 3)
	b := mustRational(t, 1, 6)
	sum := Add(a, b)
	assert.Equal(t, KindRational, sum.Kind)
	assert.Equal(t, "1/2", sum.ToRationalString())
}

func TestDivByZero(t *testing.T) {
	_, err := Div(FromInt64(1), FromInt64(0))
	assert.Error(t, err)
}

func TestModAndIDivTruncateTowardZero(t *testing.T) {
	m, err := Mod(FromInt64(-7), FromInt64(2))
	require.NoError(t, err)
	assert.Equal(t, "-1", m.ToIntString())

	q, err := IDiv(FromInt64(-7), FromInt64(2))
	require.NoError(t, err)
	assert.Equal(t, "-3", q.ToIntString())
}

func TestPowRational(t *testing.T) {
	base := mustRational(t, 2, 3)
	res, err := Pow(base, FromInt64(3))
	require.NoError(t, err)
	assert.Equal(t, "8/27", res.ToRationalString())
}

func TestPowRejectsNegativeExponent(t *testing.T) {
	_, err := Pow(FromInt64(2), FromInt64(-1))
	assert.Error(t, err)
}

func TestPromotionToReal(t *testing.T) {
	r, err := NewReal(big.NewInt(1), big.NewInt(3), 20)
	require.NoError(t, err)
	sum := Add(FromInt64(1), r)
	assert.Equal(t, KindReal, sum.Kind)
	assert.Equal(t, 20, sum.Precision)
}

func TestCmpIgnoresPrecision(t *testing.T) {
	lowPrec, err := NewReal(big.NewInt(1), big.NewInt(2), 3)
	require.NoError(t, err)
	highPrec, err := NewReal(big.NewInt(1), big.NewInt(2), 30)
	require.NoError(t, err)
	assert.Equal(t, 0, Cmp(lowPrec, highPrec))
}

func TestWithPrecisionPreservesValue(t *testing.T) {
	r := mustRational(t, 1, 3)
	real := WithPrecision(r, 25)
	assert.Equal(t, 25, real.Precision)
	assert.True(t, Equal(r, real))
}
