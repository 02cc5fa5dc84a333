package pythoncore

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

func TestDefAndCall(t *testing.T) {
	src := "def square(x)\n    return x * x\nemit(int_to_string(square(7)))\n"
	assert.Equal(t, "49", run(t, src))
}

func TestElifChain(t *testing.T) {
	src := "x = 2\n" +
		"if x == 1\n" +
		"    emit(\"one\")\n" +
		"elif x == 2\n" +
		"    emit(\"two\")\n" +
		"else\n" +
		"    emit(\"other\")\n"
	assert.Equal(t, "two", run(t, src))
}

func TestAndOrShortCircuit(t *testing.T) {
	src := "x = False\n" +
		"if x and True\n" +
		"    emit(\"yes\")\n" +
		"else\n" +
		"    emit(\"no\")\n"
	assert.Equal(t, "no", run(t, src))
}

func TestWhileLoop(t *testing.T) {
	src := "i = 0\n" +
		"total = 0\n" +
		"while i < 4\n" +
		"    total = total + i\n" +
		"    i = i + 1\n" +
		"emit(int_to_string(total))\n"
	assert.Equal(t, "6", run(t, src))
}
