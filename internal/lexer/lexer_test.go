package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/schema"
	"lumen/token"
)

func TestMaximalMunch(t *testing.T) {
	lexemes := schema.SortedMulticharLexemes([]string{"=", "==", "=>"})
	toks, err := Lex("a == b", &schema.Schema{}, lexemes)
	require.NoError(t, err)
	var ops []string
	for _, tk := range toks {
		if tk.Lexeme == "==" || tk.Lexeme == "=" {
			ops = append(ops, tk.Lexeme)
		}
	}
	assert.Equal(t, []string{"=="}, ops)
}

func TestIdentifierIsSingleToken(t *testing.T) {
	toks, err := Lex("myVariable2", &schema.Schema{}, nil)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "myVariable2", toks[0].Lexeme)
	assert.Equal(t, token.EOF, toks[1].Lexeme)
}

func TestKeywordLexemeRespectsWordBoundary(t *testing.T) {
	lexemes := schema.SortedMulticharLexemes([]string{"let"})
	toks, err := Lex("lettuce", &schema.Schema{}, lexemes)
	require.NoError(t, err)
	assert.Equal(t, "lettuce", toks[0].Lexeme, "must not match 'let' prefix of a longer word")
}

func TestStringLiteralWithEscape(t *testing.T) {
	toks, err := Lex(`"a\"b"`, &schema.Schema{}, nil)
	require.NoError(t, err)
	assert.Equal(t, `"a\"b"`, toks[0].Lexeme)
}

func TestUnterminatedStringErrors(t *testing.T) {
	_, err := Lex(`"abc`, &schema.Schema{}, nil)
	assert.Error(t, err)
}

func TestCommentStrippedPreservingLineCount(t *testing.T) {
	toks, err := Lex("a # comment\nb", &schema.Schema{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, toks[0].Pos.Line)
	last := toks[len(toks)-2] // before EOF
	assert.Equal(t, "b", last.Lexeme)
	assert.Equal(t, 2, last.Pos.Line)
}

func TestHashInsideStringIsNotAComment(t *testing.T) {
	toks, err := Lex(`"a#b"`, &schema.Schema{}, nil)
	require.NoError(t, err)
	assert.Equal(t, `"a#b"`, toks[0].Lexeme)
}

func TestBaseNNumberLexedAsSingleToken(t *testing.T) {
	toks, err := Lex("16@ff.8^2", &schema.Schema{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "16@ff.8^2", toks[0].Lexeme)
}

func TestLosslessReconstruction(t *testing.T) {
	src := "let x = 1 + 2"
	lexemes := schema.SortedMulticharLexemes([]string{"+", "="})
	toks, err := Lex(src, &schema.Schema{}, lexemes)
	require.NoError(t, err)
	var rebuilt string
	for _, tk := range toks {
		if tk.IsSynthetic() {
			continue
		}
		rebuilt += tk.Lexeme
	}
	assert.Equal(t, src, rebuilt)
}
