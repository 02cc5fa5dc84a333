// Package lexer implements the schema-driven, semantically neutral
// maximal-munch lexer (spec §4.2): `(source, schema) -> []token.Token`.
// No token is classified here; keyword/operator/identifier distinctions
// are left entirely to schema lookups and parser handler predicates
// consulted downstream.
//
// Grounded on the teacher's internal/parser/scanner.go Scanner struct
// (byte cursor, line/column bookkeeping, advance/peek/matchNext) and on
// original_source/src/lexer.rs's lex_line dispatch (string / number /
// word / operator branches), generalized so the operator branch performs
// registry-driven maximal munch instead of a fixed two-char lookup.
package lexer

import (
	"fmt"

	"lumen/internal/schema"
	"lumen/token"
)

// Lexer turns source text into a flat token stream per a language schema.
type Lexer struct {
	src     string
	lexemes []string // multichar lexemes, pre-sorted descending by length

	pos    int
	line   int
	column int
}

// New constructs a Lexer. lexemes must already be merged and sorted by
// descending length (schema.SortedMulticharLexemes / registry.Lexemes).
func New(src string, lexemes []string) *Lexer {
	return &Lexer{src: src, lexemes: lexemes, line: 1, column: 1}
}

// Lex strips comments (preserving newlines for line counting) then
// tokenizes the result, appending a trailing EOF token (spec §4.2).
func Lex(src string, s *schema.Schema, lexemes []string) ([]token.Token, error) {
	stripped := stripComments(src)
	lx := New(stripped, lexemes)
	return lx.scan()
}

func (l *Lexer) scan() ([]token.Token, error) {
	var out []token.Token
	for !l.atEnd() {
		if isInlineSpace(l.peek()) {
			out = append(out, l.scanWhitespaceRun())
			continue
		}
		startPos := l.position()
		ch := l.peek()

		switch {
		case ch == '\n':
			out = append(out, l.emitFixed("\n", startPos))
		case ch == '"' || ch == '\'':
			tok, err := l.scanString(ch, startPos)
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
		case isDigit(ch):
			out = append(out, l.scanNumber(startPos))
		case isWordStart(ch):
			out = append(out, l.scanWord(startPos))
		default:
			if lex, ok := l.matchMulticharAt(l.pos); ok {
				out = append(out, l.emitFixed(lex, startPos))
			} else {
				out = append(out, l.emitFixed(l.src[l.pos:l.pos+1], startPos))
			}
		}
	}
	out = append(out, token.Token{Lexeme: token.EOF, Span: token.Span{Start: l.pos, End: l.pos}, Pos: l.position()})
	return out, nil
}

// matchMulticharAt finds the longest registered multichar lexeme whose
// text matches at offset i, honoring the word-boundary rule for
// alphabetic candidates (spec §4.2, §8 property 2).
func (l *Lexer) matchMulticharAt(i int) (string, bool) {
	for _, lex := range l.lexemes {
		if len(lex) == 0 || i+len(lex) > len(l.src) {
			continue
		}
		if l.src[i:i+len(lex)] != lex {
			continue
		}
		if isWordShaped(lex) {
			next := i + len(lex)
			if next < len(l.src) && isWordContinue(l.src[next]) {
				continue
			}
		}
		return lex, true
	}
	return "", false
}

func isWordShaped(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isWordStart(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

// emitFixed advances the cursor exactly len(lex) bytes and returns the
// token covering it.
func (l *Lexer) emitFixed(lex string, startPos token.Position) token.Token {
	start := l.pos
	for i := 0; i < len(lex); i++ {
		l.advance()
	}
	return token.Token{Lexeme: lex, Span: token.Span{Start: start, End: l.pos}, Pos: startPos}
}

func (l *Lexer) scanWord(startPos token.Position) token.Token {
	start := l.pos
	for !l.atEnd() && isWordContinue(l.peek()) {
		l.advance()
	}
	lex := l.src[start:l.pos]
	return token.Token{Lexeme: lex, Span: token.Span{Start: start, End: l.pos}, Pos: startPos}
}

// scanNumber consumes a decimal literal `int[.frac]` or a base-N literal
// `base@digits[.frac][^exp]` (spec §4.1) as a single lexeme span; the
// parser's literal handler re-parses the text via internal/numeric.
func (l *Lexer) scanNumber(startPos token.Position) token.Token {
	start := l.pos
	l.consumeRun(isDigit)

	if !l.atEnd() && l.peek() == '@' {
		l.advance()
		l.consumeRun(isAlnum)
		if !l.atEnd() && l.peek() == '.' {
			l.advance()
			l.consumeRun(isAlnum)
		}
		if !l.atEnd() && l.peek() == '^' {
			l.advance()
			l.consumeRun(isAlnum)
		}
		lex := l.src[start:l.pos]
		return token.Token{Lexeme: lex, Span: token.Span{Start: start, End: l.pos}, Pos: startPos}
	}

	if !l.atEnd() && l.peek() == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		l.advance()
		l.consumeRun(isDigit)
	}
	lex := l.src[start:l.pos]
	return token.Token{Lexeme: lex, Span: token.Span{Start: start, End: l.pos}, Pos: startPos}
}

func (l *Lexer) consumeRun(pred func(byte) bool) {
	for !l.atEnd() && pred(l.peek()) {
		l.advance()
	}
}

// scanString consumes a quoted string literal, honoring a single
// backslash escape look-ahead (spec §4.2). The returned lexeme includes
// the surrounding quotes; callers interpret escapes when materializing
// the String value.
func (l *Lexer) scanString(quote byte, startPos token.Position) (token.Token, error) {
	start := l.pos
	l.advance() // opening quote
	for !l.atEnd() {
		c := l.peek()
		if c == '\\' && l.pos+1 < len(l.src) {
			l.advance()
			l.advance()
			continue
		}
		if c == quote {
			l.advance()
			lex := l.src[start:l.pos]
			return token.Token{Lexeme: lex, Span: token.Span{Start: start, End: l.pos}, Pos: startPos}, nil
		}
		l.advance()
	}
	return token.Token{}, fmt.Errorf("unterminated string starting at %s", startPos)
}

func isInlineSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' }

// scanWhitespaceRun consumes a maximal run of inline whitespace as one
// token, so that concatenating every non-synthetic token reproduces the
// source exactly (spec §8 property 1); the parser skips these tokens.
func (l *Lexer) scanWhitespaceRun() token.Token {
	start := l.pos
	startPos := l.position()
	for !l.atEnd() && isInlineSpace(l.peek()) {
		l.advance()
	}
	return token.Token{Lexeme: l.src[start:l.pos], Span: token.Span{Start: start, End: l.pos}, Pos: startPos}
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }
func (l *Lexer) peek() byte  { return l.src[l.pos] }

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.pos}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlnum(c byte) bool { return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isWordStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
func isWordContinue(c byte) bool { return isWordStart(c) || isDigit(c) }

// stripComments removes `#`-to-end-of-line comments while preserving
// newlines and respecting string-literal boundaries, so line numbers
// downstream remain accurate and a `#` inside a string is not treated as
// a comment (spec §4.2).
func stripComments(src string) string {
	var b []byte
	inString := false
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inString {
			b = append(b, c)
			if c == '\\' && i+1 < len(src) {
				i++
				b = append(b, src[i])
				continue
			}
			if c == quote {
				inString = false
			}
			continue
		}
		if c == '"' || c == '\'' {
			inString = true
			quote = c
			b = append(b, c)
			continue
		}
		if c == '#' {
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b = append(b, '\n')
			}
			continue
		}
		b = append(b, c)
	}
	return string(b)
}
