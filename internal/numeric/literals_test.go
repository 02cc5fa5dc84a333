package numeric

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigFromInt(v int64) *big.Int { return big.NewInt(v) }

func TestParseBaseNInteger(t *testing.T) {
	n, err := ParseBaseN(16, "ff", "", "")
	require.NoError(t, err)
	assert.Equal(t, KindInteger, n.Kind)
	assert.Equal(t, "255", n.ToIntString())
}

func TestParseBaseNFractional(t *testing.T) {
	n, err := ParseBaseN(2, "1", "1", "")
	require.NoError(t, err)
	assert.Equal(t, KindReal, n.Kind)
	assert.Equal(t, "3/2", n.ToRationalString())
}

func TestParseBaseNExponent(t *testing.T) {
	n, err := ParseBaseN(10, "2", "", "3")
	require.NoError(t, err)
	assert.Equal(t, "2000", n.ToIntString())
}

func TestParseBaseNRejectsDigitOutOfRange(t *testing.T) {
	_, err := ParseBaseN(2, "12", "", "")
	assert.Error(t, err)
}

func TestParseBaseNRejectsNegativeExponent(t *testing.T) {
	_, err := ParseBaseN(10, "1", "", "-1")
	assert.Error(t, err)
}

func TestParseDecimal(t *testing.T) {
	n, err := ParseDecimal("0", "5")
	require.NoError(t, err)
	assert.Equal(t, KindReal, n.Kind)
	assert.Equal(t, "1/2", n.ToRationalString())
	assert.Equal(t, DefaultPrecision, n.Precision)
}

func TestRenderRealTruncatesNotRounds(t *testing.T) {
	n, err := NewReal(bigFromInt(1), bigFromInt(3), 5)
	require.NoError(t, err)
	assert.Equal(t, "0.33333", RenderReal(n))
}

func TestRenderRealPurelyIntegral(t *testing.T) {
	n, err := NewReal(bigFromInt(4), bigFromInt(1), 15)
	require.NoError(t, err)
	assert.Equal(t, "4", RenderReal(n))
}

func TestRenderRealNegative(t *testing.T) {
	n, err := NewReal(bigFromInt(-1), bigFromInt(4), 15)
	require.NoError(t, err)
	assert.Equal(t, "-0.25", RenderReal(n))
}

// A truncated digit of "0" with a nonzero remainder must survive: the
// renderer truncates long division, it never strips trailing zeros
// from the result the way a rounding-aware formatter would.
func TestRenderRealKeepsGenuineTruncatedZero(t *testing.T) {
	n, err := NewReal(bigFromInt(1), bigFromInt(80), 1)
	require.NoError(t, err)
	assert.Equal(t, "0.0", RenderReal(n))
}
