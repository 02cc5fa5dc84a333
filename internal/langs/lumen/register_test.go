package lumen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/config"
	"lumen/internal/interp"
	"lumen/internal/registry"
)

func run(t *testing.T, src string) string {
	t.Helper()
	s := Schema()
	r := registry.New()
	Register(r, s)
	cfg := config.Default()
	cfg.PreludeFiles = nil
	var out bytes.Buffer
	in, err := interp.New(s, r, interp.WithStdout(&out), interp.WithConfig(cfg))
	require.NoError(t, err)
	_, err = in.Run(src)
	require.NoError(t, err)
	return out.String()
}

func TestFunctionDefinitionAndCall(t *testing.T) {
	src := "fn double(x)\n    return x * 2\nemit(int_to_string(double(21)))\n"
	assert.Equal(t, "42", run(t, src))
}

func TestPipeDesugarsToCall(t *testing.T) {
	src := "fn double(x)\n    return x * 2\nemit(int_to_string(5 |> double()))\n"
	assert.Equal(t, "10", run(t, src))
}

func TestIfElseChain(t *testing.T) {
	src := "let x = 5\n" +
		"if x < 0\n" +
		"    emit(\"neg\")\n" +
		"else if x == 0\n" +
		"    emit(\"zero\")\n" +
		"else\n" +
		"    emit(\"pos\")\n"
	assert.Equal(t, "pos", run(t, src))
}

func TestForLoopAccumulates(t *testing.T) {
	src := "var total = 0\n" +
		"for i in 0..5\n" +
		"    total = total + i\n" +
		"emit(int_to_string(total))\n"
	assert.Equal(t, "10", run(t, src))
}
