package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/lexer"
	"lumen/internal/schema"
	"lumen/token"
)

func lexemeSeq(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Lexeme
	}
	return out
}

func TestNormalizeIndentation(t *testing.T) {
	s := &schema.Schema{Layout: schema.LayoutIndentation, IndentationSize: 4}
	src := "if x\n    emit(1)\n    emit(2)\nemit(3)\n"
	toks, err := lexer.Lex(src, s, nil)
	require.NoError(t, err)

	out, err := Normalize(toks, s)
	require.NoError(t, err)

	seq := lexemeSeq(out)
	assert.Contains(t, seq, token.INDENT)
	assert.Contains(t, seq, token.DEDENT)
	assert.Contains(t, seq, token.NEWLINE)
	assert.Equal(t, token.EOF, seq[len(seq)-1])
}

func TestNormalizeBracesPassThrough(t *testing.T) {
	s := &schema.Schema{Layout: schema.LayoutBraces}
	toks := []token.Token{
		{Lexeme: "{", Pos: token.Position{Line: 1, Column: 1}},
		{Lexeme: "}", Pos: token.Position{Line: 1, Column: 2}},
		{Lexeme: token.EOF, Pos: token.Position{Line: 1, Column: 3}},
	}
	out, err := Normalize(toks, s)
	require.NoError(t, err)
	assert.Equal(t, toks, out)
}

func TestNormalizeRejectsBadIndentWidth(t *testing.T) {
	s := &schema.Schema{Layout: schema.LayoutIndentation, IndentationSize: 4}
	src := "if x\n  emit(1)\n"
	toks, err := lexer.Lex(src, s, nil)
	require.NoError(t, err)
	_, err = Normalize(toks, s)
	assert.Error(t, err)
}
