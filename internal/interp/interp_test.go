package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/config"
	"lumen/internal/eval"
	"lumen/internal/langs/lumen"
	"lumen/internal/registry"
	"lumen/internal/value"
)

func newLumenInterp(t *testing.T, out *bytes.Buffer, opts ...Option) *Interpreter {
	t.Helper()
	s := lumen.Schema()
	r := registry.New()
	lumen.Register(r, s)
	cfg := config.Default()
	cfg.PreludeFiles = nil
	allOpts := append([]Option{WithStdout(out), WithConfig(cfg)}, opts...)
	i, err := New(s, r, allOpts...)
	require.NoError(t, err)
	return i
}

func TestRunEmitsLiteral(t *testing.T) {
	var out bytes.Buffer
	i := newLumenInterp(t, &out)
	_, err := i.Run(`emit("hello")`)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.String())
}

func TestRunFunctionDefinitionAndCall(t *testing.T) {
	var out bytes.Buffer
	i := newLumenInterp(t, &out)
	src := "fn square(x)\n    return x * x\nemit(int_to_string(square(6)))\n"
	_, err := i.Run(src)
	require.NoError(t, err)
	assert.Equal(t, "36", out.String())
}

func TestRunArgsAreReadOnly(t *testing.T) {
	var out bytes.Buffer
	i := newLumenInterp(t, &out, WithArgs([]string{"a", "b"}))
	_, err := i.Run(`emit(ARGS[0])`)
	require.NoError(t, err)
	assert.Equal(t, "a", out.String())

	_, err = i.Run(`ARGS = 3`)
	require.Error(t, err)
}

func TestRunWithExternDispatch(t *testing.T) {
	var out bytes.Buffer
	externs := map[string]eval.ExternFunc{
		"host:greet": func(args []value.Value) (value.Value, error) {
			return value.Str("hi from host"), nil
		},
	}
	i := newLumenInterp(t, &out, WithExternDispatch(externs))
	_, err := i.Run(`emit(extern("host:greet"))`)
	require.NoError(t, err)
	assert.Equal(t, "hi from host", out.String())
}
