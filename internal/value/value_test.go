package value

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"lumen/internal/numeric"
)

func TestEqNumericAcrossKinds(t *testing.T) {
	i := Int(numeric.FromInt64(2))
	r := Real(numeric.WithPrecision(numeric.FromInt64(2), 10))
	assert.True(t, Eq(i, r))
}

func TestRationalCollapsesToInteger(t *testing.T) {
	n, err := numeric.NewRational(big.NewInt(4), big.NewInt(2))
	assert.NoError(t, err)
	v := Rational(n)
	assert.Equal(t, KindInteger, v.Tag)
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, None().IsTruthy())
	assert.False(t, Int(numeric.FromInt64(0)).IsTruthy())
	assert.True(t, Int(numeric.FromInt64(1)).IsTruthy())
	assert.False(t, Str("").IsTruthy())
	assert.True(t, Str("x").IsTruthy())
	assert.False(t, Array(nil).IsTruthy())
}

func TestDisplayArray(t *testing.T) {
	arr := Array([]Value{Int(numeric.FromInt64(10)), Int(numeric.FromInt64(20))})
	assert.Equal(t, "[10, 20]", arr.Display())
}

func TestFingerprintMatchesEquality(t *testing.T) {
	a := Int(numeric.FromInt64(3))
	b := Real(numeric.WithPrecision(numeric.FromInt64(3), 8))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}
