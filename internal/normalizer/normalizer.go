// Package normalizer implements the structural normalizer (spec §4.3):
// it turns indentation into explicit INDENT/DEDENT/NEWLINE tokens for
// layout languages and passes brace-delimited token streams through
// unchanged.
//
// Grounded on original_source/src/lexer.rs's indentation-stack algorithm
// (count leading spaces, compare to an indent stack, emit one token per
// level crossed), translated here into a post-pass over already-lexed
// tokens rather than being fused into lexing, per spec §4.3.
package normalizer

import (
	"fmt"

	"lumen/internal/schema"
	"lumen/token"
)

// Normalize applies the structural pass. For schema.LayoutBraces it
// returns tokens unchanged. For schema.LayoutIndentation it rebuilds the
// stream with INDENT/DEDENT/NEWLINE sentinels inserted per line.
func Normalize(tokens []token.Token, s *schema.Schema) ([]token.Token, error) {
	if s.Layout != schema.LayoutIndentation {
		return tokens, nil
	}
	return normalizeLines(dropRawWhitespace(tokens), s.IndentUnit())
}

// dropRawWhitespace removes the lexer's raw inline-whitespace-run and
// bare "\n" tokens before structural analysis: indentation width and
// logical-line boundaries are computed from content tokens only, and the
// normalizer reintroduces its own NEWLINE/INDENT/DEDENT sentinels in
// their place.
func dropRawWhitespace(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Lexeme == "\n" || isAllInlineSpace(tok.Lexeme) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isAllInlineSpace(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\r' {
			return false
		}
	}
	return true
}

// normalizeLines groups tokens by source line, measures each line's
// leading-column indentation from its first real token, and emits
// INDENT/DEDENT/NEWLINE per spec §4.3.
func normalizeLines(tokens []token.Token, unit int) ([]token.Token, error) {
	var out []token.Token
	indents := []int{0}

	var lineTokens []token.Token
	curLine := 0
	haveLine := false

	emitLine := func(indentCol int, endPos token.Position) error {
		current := indents[len(indents)-1]
		width := indentCol - 1
		if width > current {
			if (width-current)%unit != 0 {
				return fmt.Errorf("invalid indentation at %s", endPos)
			}
			indents = append(indents, width)
			out = append(out, token.Token{Lexeme: token.INDENT, Pos: endPos})
		} else if width < current {
			for len(indents) > 1 && indents[len(indents)-1] > width {
				indents = indents[:len(indents)-1]
				out = append(out, token.Token{Lexeme: token.DEDENT, Pos: endPos})
			}
			if indents[len(indents)-1] != width {
				return fmt.Errorf("indentation mismatch at %s", endPos)
			}
		}
		out = append(out, lineTokens...)
		out = append(out, token.Token{Lexeme: token.NEWLINE, Pos: endPos})
		return nil
	}

	var lastPos token.Position
	for _, tok := range tokens {
		if tok.Lexeme == token.EOF {
			continue
		}
		if !haveLine {
			curLine = tok.Pos.Line
			haveLine = true
		}
		if tok.Pos.Line != curLine {
			if err := emitLine(firstCol(lineTokens), lastPos); err != nil {
				return nil, err
			}
			lineTokens = nil
			curLine = tok.Pos.Line
		}
		lineTokens = append(lineTokens, tok)
		lastPos = tok.Pos
	}
	if len(lineTokens) > 0 {
		if err := emitLine(firstCol(lineTokens), lastPos); err != nil {
			return nil, err
		}
	}

	for len(indents) > 1 {
		indents = indents[:len(indents)-1]
		out = append(out, token.Token{Lexeme: token.DEDENT, Pos: lastPos})
	}
	out = append(out, token.Token{Lexeme: token.EOF, Pos: lastPos})
	return out, nil
}

func firstCol(toks []token.Token) int {
	if len(toks) == 0 {
		return 1
	}
	return toks[0].Pos.Column
}
