package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/env"
	"lumen/internal/instr"
	"lumen/internal/numeric"
	"lumen/internal/value"
	"lumen/token"
)

var pos = token.Position{}

func intLit(n int64) instr.Instruction { return instr.Literal(pos, value.Int(numeric.FromInt64(n))) }

func run(t *testing.T, ins instr.Instruction) (value.Value, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	ev := New(&out, nil, 0)
	e := env.New()
	v, flow, err := ev.Execute(ins, e)
	require.NoError(t, err)
	require.Equal(t, Normal, flow)
	return v, &out
}

func TestIntegerAdditionStaysInteger(t *testing.T) {
	// 4 + 21 -> 25 (Integer)
	add := instr.BinaryOp(pos, "+", intLit(4), intLit(21))
	v, _ := run(t, add)
	assert.Equal(t, value.KindInteger, v.Tag)
	assert.Equal(t, "25", v.Display())
}

func TestIntegerDivisionYieldsRational(t *testing.T) {
	div := instr.BinaryOp(pos, "/", intLit(1), intLit(2))
	v, _ := run(t, div)
	assert.Equal(t, value.KindRational, v.Tag)
	assert.Equal(t, "1/2", v.Display())
}

func TestRealRendering(t *testing.T) {
	real := instr.Invoke(pos, "real", []instr.Instruction{
		instr.BinaryOp(pos, "/", intLit(1), intLit(3)),
	})
	v, _ := run(t, real)
	assert.Equal(t, value.KindReal, v.Tag)
	assert.Equal(t, "0.333333333333333", v.Display())
}

func TestArrayLiteralDisplay(t *testing.T) {
	arr := instr.Invoke(pos, "__construct_array", []instr.Instruction{intLit(10), intLit(99), intLit(30)})
	v, _ := run(t, arr)
	assert.Equal(t, value.KindArray, v.Tag)
	assert.Equal(t, "[10, 99, 30]", v.Display())
}

func TestEmitWritesToStdout(t *testing.T) {
	emit := instr.Invoke(pos, "emit", []instr.Instruction{instr.Literal(pos, value.Str("hi"))})
	_, out := run(t, emit)
	assert.Equal(t, "hi", out.String())
}

func TestWhileLoopEmitsDigitsThenStops(t *testing.T) {
	var out bytes.Buffer
	ev := New(&out, nil, 0)
	e := env.New()

	// i = 0
	_, _, err := ev.Execute(instr.Assign(pos, "i", intLit(0), instr.AssignDefine, false), e)
	require.NoError(t, err)

	cond := instr.BinaryOp(pos, "<", instr.Variable(pos, "i"), intLit(3))
	body := instr.Sequence(pos, []instr.Instruction{
		instr.Invoke(pos, "emit", []instr.Instruction{
			instr.Invoke(pos, "int_to_string", []instr.Instruction{instr.Variable(pos, "i")}),
		}),
		instr.Assign(pos, "i", instr.BinaryOp(pos, "+", instr.Variable(pos, "i"), intLit(1)), instr.AssignUpdate, false),
	})
	loop := instr.Loop(pos, cond, instr.Scope(pos, body))

	_, flow, err := ev.Execute(loop, e)
	require.NoError(t, err)
	require.Equal(t, Normal, flow)
	assert.Equal(t, "012", out.String())
}

// fib(n) { if n < 2 { return n } return fib(n-1) + fib(n-2) }, called under
// MEMOIZATION = true, must evaluate the body at most once per distinct n.
// Each body evaluation pings an extern counter so the test can bound the
// real call count rather than just the final result.
func TestMemoizedFibonacciBoundsBodyEvaluations(t *testing.T) {
	calls := 0
	externs := map[string]ExternFunc{
		"test:count": func(args []value.Value) (value.Value, error) {
			calls++
			return value.None(), nil
		},
	}
	var out bytes.Buffer
	ev := New(&out, externs, 0)
	e := env.New()

	nVar := instr.Variable(pos, "n")
	body := instr.Scope(pos, instr.Sequence(pos, []instr.Instruction{
		instr.Invoke(pos, "extern", []instr.Instruction{instr.Literal(pos, value.Symbol("test:count"))}),
		instr.Branch(pos,
			instr.BinaryOp(pos, "<", nVar, intLit(2)),
			instr.Scope(pos, instr.Transfer(pos, instr.TransferReturn, ptr(nVar))),
			nil,
		),
		instr.Transfer(pos, instr.TransferReturn, ptr(instr.BinaryOp(pos, "+",
			instr.Invoke(pos, "fib", []instr.Instruction{instr.BinaryOp(pos, "-", nVar, intLit(1))}),
			instr.Invoke(pos, "fib", []instr.Instruction{instr.BinaryOp(pos, "-", nVar, intLit(2))}),
		))),
	}))
	e.DefineFunction("fib", []string{"n"}, body, true)

	_, _, err := ev.Execute(instr.Assign(pos, "MEMOIZATION", instr.Literal(pos, value.Bool(true)), instr.AssignUpdate, false), e)
	require.NoError(t, err)

	v, flow, err := ev.Execute(instr.Invoke(pos, "fib", []instr.Instruction{intLit(20)}), e)
	require.NoError(t, err)
	require.Equal(t, Normal, flow)
	assert.Equal(t, "6765", v.Display())
	assert.LessOrEqual(t, calls, 21)
}

func ptr(i instr.Instruction) *instr.Instruction { return &i }

func TestShortCircuitAndSkipsRightOperand(t *testing.T) {
	var out bytes.Buffer
	ev := New(&out, nil, 0)
	e := env.New()

	rhsEvaluated := instr.Invoke(pos, "emit", []instr.Instruction{instr.Literal(pos, value.Str("x"))})
	and := instr.BinaryOp(pos, "and", instr.Literal(pos, value.Bool(false)), rhsEvaluated)

	v, flow, err := ev.Execute(and, e)
	require.NoError(t, err)
	require.Equal(t, Normal, flow)
	assert.False(t, v.Bool)
	assert.Empty(t, out.String(), "right operand must not be evaluated")
}

func TestPushMutatesArrayInPlace(t *testing.T) {
	e := env.New()
	ev := New(&bytes.Buffer{}, nil, 0)

	arr := instr.Invoke(pos, "__construct_array", []instr.Instruction{intLit(1), intLit(2)})
	_, _, err := ev.Execute(instr.Assign(pos, "xs", arr, instr.AssignDefine, true), e)
	require.NoError(t, err)

	push := instr.Invoke(pos, "push", []instr.Instruction{instr.Variable(pos, "xs"), intLit(3)})
	_, flow, err := ev.Execute(push, e)
	require.NoError(t, err)
	require.Equal(t, Normal, flow)

	v, ok := e.Get("xs")
	require.True(t, ok)
	assert.Equal(t, "[1, 2, 3]", v.Display())
}

func TestIndexOutOfRangeIsError(t *testing.T) {
	e := env.New()
	ev := New(&bytes.Buffer{}, nil, 0)
	arr := instr.Invoke(pos, "__construct_array", []instr.Instruction{intLit(1)})
	_, _, err := ev.Execute(instr.Assign(pos, "xs", arr, instr.AssignDefine, false), e)
	require.NoError(t, err)

	idx := instr.BinaryOp(pos, "[]", instr.Variable(pos, "xs"), intLit(5))
	_, _, err = ev.Execute(idx, e)
	require.Error(t, err)
}

func TestForLoopOverRange(t *testing.T) {
	e := env.New()
	ev := New(&bytes.Buffer{}, nil, 0)

	rangeExpr := instr.BinaryOp(pos, "..", intLit(0), intLit(3))
	_, _, err := ev.Execute(instr.Assign(pos, "total", intLit(0), instr.AssignDefine, false), e)
	require.NoError(t, err)

	body := instr.Scope(pos, instr.Assign(pos, "total", instr.BinaryOp(pos, "+", instr.Variable(pos, "total"), instr.Variable(pos, "i")), instr.AssignUpdate, false))
	forLoop := instr.ForLoop(pos, "i", rangeExpr, body, false)

	_, flow, err := ev.Execute(forLoop, e)
	require.NoError(t, err)
	require.Equal(t, Normal, flow)

	v, ok := e.Get("total")
	require.True(t, ok)
	assert.Equal(t, "3", v.Display())
}
