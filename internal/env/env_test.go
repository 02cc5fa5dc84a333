package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/instr"
	"lumen/internal/numeric"
	"lumen/internal/value"
	"lumen/token"
)

func TestDefineAndGetInnermostFirst(t *testing.T) {
	e := New()
	e.Define("x", value.Int(numeric.FromInt64(1)))
	e.PushScope()
	e.Define("x", value.Int(numeric.FromInt64(2)))
	v, ok := e.Get("x")
	require.True(t, ok)
	assert.True(t, value.Eq(v, value.Int(numeric.FromInt64(2))))

	e.PopScope()
	v, ok = e.Get("x")
	require.True(t, ok)
	assert.True(t, value.Eq(v, value.Int(numeric.FromInt64(1))))
}

func TestAssignUpdatesOuterFrame(t *testing.T) {
	e := New()
	e.Define("x", value.Int(numeric.FromInt64(1)))
	e.PushScope()
	e.Assign("x", value.Int(numeric.FromInt64(9)))
	e.PopScope()
	v, ok := e.Get("x")
	require.True(t, ok)
	assert.True(t, value.Eq(v, value.Int(numeric.FromInt64(9))))
}

func TestAssignDefinesWhenAbsent(t *testing.T) {
	e := New()
	e.Assign("y", value.Int(numeric.FromInt64(5)))
	v, ok := e.Get("y")
	require.True(t, ok)
	assert.True(t, value.Eq(v, value.Int(numeric.FromInt64(5))))
}

func TestMutateArrayInPlace(t *testing.T) {
	e := New()
	e.Define("arr", value.Array([]value.Value{value.Int(numeric.FromInt64(1)), value.Int(numeric.FromInt64(2))}))
	require.NoError(t, e.MutateArray("arr", 1, value.Int(numeric.FromInt64(99))))
	v, _ := e.Get("arr")
	assert.Equal(t, "99", v.Items[1].Display())
}

func TestMutateArrayIndexOutOfRange(t *testing.T) {
	e := New()
	e.Define("arr", value.Array([]value.Value{value.Int(numeric.FromInt64(1))}))
	err := e.MutateArray("arr", 5, value.None())
	require.Error(t, err)
}

func TestPushToArrayAppends(t *testing.T) {
	e := New()
	e.Define("arr", value.Array([]value.Value{value.Int(numeric.FromInt64(1))}))
	require.NoError(t, e.PushToArray("arr", value.Int(numeric.FromInt64(2))))
	v, _ := e.Get("arr")
	assert.Len(t, v.Items, 2)
}

func TestMemoizationGateDefaultsFalse(t *testing.T) {
	e := New()
	assert.False(t, e.MemoEnabled())
	e.SetMemoEnabled(true)
	assert.True(t, e.MemoEnabled())
}

func TestMemoCacheRoundTrip(t *testing.T) {
	e := New()
	fp := Fingerprint([]value.Value{value.Int(numeric.FromInt64(3))})
	_, ok := e.GetCached("fib", fp)
	assert.False(t, ok)
	e.CacheResult("fib", fp, value.Int(numeric.FromInt64(2)))
	v, ok := e.GetCached("fib", fp)
	require.True(t, ok)
	assert.True(t, value.Eq(v, value.Int(numeric.FromInt64(2))))
}

func TestFingerprintMatchesAcrossEqualArgLists(t *testing.T) {
	a := []value.Value{value.Int(numeric.FromInt64(3)), value.Str("x")}
	b := []value.Value{value.Int(numeric.FromInt64(3)), value.Str("x")}
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFunctionTableUpsert(t *testing.T) {
	e := New()
	e.DefineFunction("f", []string{"a"}, instr.Literal(token.Position{}, value.None()), true)
	_, ok := e.LookupFunction("f")
	assert.True(t, ok)
}
