// Package token defines the lexeme token produced by the lexer.
//
// Per the kernel's design, a token carries no semantic class: it is a
// byte span lifted out of the source plus the lexeme text and its
// derived line/column. Classification (keyword vs identifier, operator
// precedence, statement role) lives entirely in schema tables and
// handler predicates consulted later in the pipeline.
package token

import "fmt"

// Position is a single point in the source, derived from a byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open byte range [Start, End) within the source.
type Span struct {
	Start int
	End   int
}

// Token is a single lexeme: the exact source text it covers plus its
// location. Structural markers the normalizer inserts (Indent/Dedent/
// Newline) and the trailing EOF are plain tokens whose Lexeme equals one
// of the sentinel constants below, so later stages can recognize them
// without a type tag.
type Token struct {
	Lexeme string
	Span   Span
	Pos    Position
}

// Sentinel lexemes for synthesized structural tokens. These values are
// chosen so they can never collide with a real source lexeme (schema
// lexemes are restricted to printable, non-control text).
const (
	EOF     = "\x00EOF"
	INDENT  = "\x00INDENT"
	DEDENT  = "\x00DEDENT"
	NEWLINE = "\x00NEWLINE"
)

// IsSynthetic reports whether the token was inserted by the lexer or
// normalizer rather than matched against source bytes.
func (t Token) IsSynthetic() bool {
	switch t.Lexeme {
	case EOF, INDENT, DEDENT, NEWLINE:
		return true
	default:
		return false
	}
}

func (t Token) String() string {
	switch t.Lexeme {
	case EOF:
		return "<EOF>"
	case INDENT:
		return "<INDENT>"
	case DEDENT:
		return "<DEDENT>"
	case NEWLINE:
		return "<NEWLINE>"
	default:
		return t.Lexeme
	}
}
