package rustcore

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

func TestFnAndBraceBlocks(t *testing.T) {
	src := `fn cube(x) { return x * x * x }
emit(int_to_string(cube(3)))`
	assert.Equal(t, "27", run(t, src))
}

func TestAndAndOperator(t *testing.T) {
	src := `let mut x = true
if x && false {
    emit("yes")
} else {
    emit("no")
}`
	assert.Equal(t, "no", run(t, src))
}

func TestNonChainingComparisonIsParseError(t *testing.T) {
	s := Schema()
	r := registry.New()
	Register(r, s)
	cfg := config.Default()
	cfg.PreludeFiles = nil
	var out bytes.Buffer
	in, err := interp.New(s, r, interp.WithStdout(&out), interp.WithConfig(cfg))
	require.NoError(t, err)
	_, err = in.Run("let x = 1 < 2 < 3\n")
	assert.Error(t, err)
}

func TestWhileLoopInBraces(t *testing.T) {
	src := `let mut i = 0
let mut total = 0
while i < 5 {
    total = total + i
    i = i + 1
}
emit(int_to_string(total))`
	assert.Equal(t, "10", run(t, src))
}
