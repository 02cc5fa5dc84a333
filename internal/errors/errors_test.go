package errors

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"lumen/token"
)

func TestErrorFormatWithPosition(t *testing.T) {
	e := At(ParseError, token.Position{Line: 3, Column: 7}, "unexpected token %q", "}")
	assert.Equal(t, `ParseError at 3:7: unexpected token "}"`, e.Error())
}

func TestErrorFormatWithoutPosition(t *testing.T) {
	e := New(NameError, "undefined variable %q", "x")
	assert.Equal(t, `NameError: undefined variable "x"`, e.Error())
}

func TestReporterCollapsesNonParseKindsToRuntimeError(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.Report(At(ArithmeticError, token.Position{Line: 1, Column: 1}, "division by zero"))
	assert.Equal(t, "RuntimeError: division by zero\n", buf.String())
}

func TestReporterParseErrorKeepsPosition(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.Report(At(ParseError, token.Position{Line: 2, Column: 5}, "expected ')'"))
	assert.Equal(t, "ParseError at 2:5: expected ')'\n", buf.String())
}

func TestIsKind(t *testing.T) {
	var err error = New(IndexError, "out of range")
	assert.True(t, Is(err, IndexError))
	assert.False(t, Is(err, TypeError))
}
