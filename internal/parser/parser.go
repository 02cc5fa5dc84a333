// Package parser implements the Pratt expression parser and statement
// dispatcher (spec §4.4): `(tokens, schema, registry) -> Instruction`.
//
// Grounded on the teacher's internal/parser/{scanner,parser_pratt}.go
// Parser struct (advance/peek/match/consume, parsePrattExpr(minPrec)
// recursing at prec+1), generalized from a fixed binaryPrecedence map and
// hard-coded statement switch into a registry-driven dispatch per spec
// §4.4/§4.5.
package parser

import (
	"lumen/internal/errors"
	"lumen/internal/instr"
	"lumen/internal/registry"
	"lumen/internal/schema"
	"lumen/token"
)

// Parser walks a token stream produced by internal/lexer + internal/
// normalizer, consulting a schema and a registry of handlers.
type Parser struct {
	toks   []token.Token
	idx    int
	schema *schema.Schema
	reg    *registry.Registry
}

// New constructs a Parser over a fully lexed and normalized token stream.
func New(toks []token.Token, s *schema.Schema, r *registry.Registry) *Parser {
	return &Parser{toks: toks, schema: s, reg: r}
}

// Schema exposes the active language schema to handlers that need it
// (e.g. to consult BinaryOps/UnaryOps precedence tables at registration
// time; most handlers close over this at registration instead).
func (p *Parser) Schema() *schema.Schema { return p.schema }

// isTrivia reports whether a token is lexer-level noise (an inline
// whitespace run, or a bare newline on a brace-delimited schema where
// the normalizer left it untouched) that carries no syntactic weight.
func isTrivia(t token.Token) bool {
	if t.Lexeme == "\n" {
		return true
	}
	if t.Lexeme == "" {
		return false
	}
	for i := 0; i < len(t.Lexeme); i++ {
		c := t.Lexeme[i]
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}

func (p *Parser) skipTrivia() {
	for p.idx < len(p.toks) && isTrivia(p.toks[p.idx]) {
		p.idx++
	}
}

// Peek returns the next significant token without consuming it.
func (p *Parser) Peek() token.Token {
	p.skipTrivia()
	if p.idx >= len(p.toks) {
		return token.Token{Lexeme: token.EOF}
	}
	return p.toks[p.idx]
}

// PeekLexeme satisfies registry.Parser.
func (p *Parser) PeekLexeme() string { return p.Peek().Lexeme }

// Advance consumes and returns the next significant token.
func (p *Parser) Advance() token.Token {
	tok := p.Peek()
	if p.idx < len(p.toks) {
		p.idx++
	}
	return tok
}

// Check reports whether the next significant token has the given lexeme.
func (p *Parser) Check(lexeme string) bool { return p.Peek().Lexeme == lexeme }

// Match consumes the next token if it has the given lexeme.
func (p *Parser) Match(lexeme string) bool {
	if p.Check(lexeme) {
		p.Advance()
		return true
	}
	return false
}

// Expect consumes the next token, requiring it to have the given lexeme.
func (p *Parser) Expect(lexeme string) (token.Token, error) {
	if !p.Check(lexeme) {
		tok := p.Peek()
		return token.Token{}, errors.At(errors.ParseError, tok.Pos, "expected %q, found %q", lexeme, tok.Lexeme)
	}
	return p.Advance(), nil
}

// AtEnd reports whether the parser has reached the trailing EOF token.
func (p *Parser) AtEnd() bool { return p.Peek().Lexeme == token.EOF }

// ExpectIdentifier consumes a word-shaped, non-keyword token.
func (p *Parser) ExpectIdentifier() (token.Token, error) {
	tok := p.Peek()
	if tok.Lexeme == "" || !isWordShaped(tok.Lexeme) || p.schema.Keywords[tok.Lexeme] {
		return token.Token{}, errors.At(errors.ParseError, tok.Pos, "expected identifier, found %q", tok.Lexeme)
	}
	return p.Advance(), nil
}

func isWordShaped(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		word := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || (i > 0 && c >= '0' && c <= '9')
		if !word {
			return false
		}
	}
	return true
}

// consumeTerminators eats zero or more statement terminators (schema
// terminator lexemes, or the structural NEWLINE sentinel) following a
// statement; absence is not an error, since a block's closing DEDENT/`}`
// also legally ends a statement.
func (p *Parser) consumeTerminators() {
	for {
		lex := p.PeekLexeme()
		if lex == token.NEWLINE {
			p.Advance()
			continue
		}
		matched := false
		for _, term := range p.schema.Terminators {
			if lex == term {
				p.Advance()
				matched = true
				break
			}
		}
		if !matched {
			return
		}
	}
}

// ParseProgram parses the entire token stream into a top-level Sequence
// (spec §4.4's contract for a whole program).
func (p *Parser) ParseProgram() (instr.Instruction, error) {
	pos := p.Peek().Pos
	var stmts []instr.Instruction
	for !p.AtEnd() {
		p.skipStatementSeparators()
		if p.AtEnd() {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return instr.Instruction{}, err
		}
		stmts = append(stmts, stmt)
		p.consumeTerminators()
	}
	return instr.Sequence(pos, stmts), nil
}

func (p *Parser) skipStatementSeparators() {
	for p.PeekLexeme() == token.NEWLINE {
		p.Advance()
	}
}

// parseStatement consults the registry's statement handlers in
// registration order; the first match wins. Falling through, it parses
// an expression statement and promotes it to an assignment if a bare
// variable or indexed form is followed by `=` (spec §4.4).
func (p *Parser) parseStatement() (instr.Instruction, error) {
	if h := p.reg.MatchStatement(p); h != nil {
		return h.Parse(p, p.reg)
	}

	pos := p.Peek().Pos
	expr, err := p.ParseExpression(0)
	if err != nil {
		return instr.Instruction{}, err
	}

	if p.Check("=") {
		switch expr.Kind {
		case instr.KindVariable:
			p.Advance()
			val, err := p.ParseExpression(0)
			if err != nil {
				return instr.Instruction{}, err
			}
			return instr.Assign(pos, expr.VarName, val, instr.AssignUpdate, false), nil
		case instr.KindOperate:
			if expr.OpKind == instr.OperateBinary && expr.Op == "[]" && expr.Operands[0].Kind == instr.KindVariable {
				p.Advance()
				val, err := p.ParseExpression(0)
				if err != nil {
					return instr.Instruction{}, err
				}
				return instr.IndexedAssign(pos, expr.Operands[0].VarName, expr.Operands[1], val), nil
			}
		}
		return instr.Instruction{}, errors.At(errors.ParseError, pos, "invalid assignment target")
	}

	return expr, nil
}

// ParseExpression implements precedence-climbing expression parsing
// (spec §4.4). Exactly one prefix handler must match; the infix loop
// repeatedly consults the registry for a handler whose precedence is at
// least minPrec.
func (p *Parser) ParseExpression(minPrec int) (instr.Instruction, error) {
	prefix := p.reg.MatchPrefix(p)
	if prefix == nil {
		tok := p.Peek()
		return instr.Instruction{}, errors.At(errors.ParseError, tok.Pos, "unexpected token in expression: %q", tok.Lexeme)
	}
	left, err := prefix.Parse(p, p.reg)
	if err != nil {
		return instr.Instruction{}, err
	}

	for {
		infix := p.reg.MatchInfix(p, minPrec)
		if infix == nil {
			break
		}
		left, err = infix.Parse(p, p.reg, left)
		if err != nil {
			return instr.Instruction{}, err
		}
	}
	return left, nil
}

// ParseBlock consumes one statement block: an INDENT..DEDENT run for
// layout languages (optionally preceded by `:`), or a brace-delimited
// run for brace languages (spec §4.3/§4.4).
func (p *Parser) ParseBlock() (instr.Instruction, error) {
	pos := p.Peek().Pos
	p.Match(":")

	if p.schema.Layout == schema.LayoutIndentation {
		p.Match(token.NEWLINE)
		if _, err := p.Expect(token.INDENT); err != nil {
			return instr.Instruction{}, err
		}
		var stmts []instr.Instruction
		for !p.Check(token.DEDENT) && !p.AtEnd() {
			p.skipStatementSeparators()
			if p.Check(token.DEDENT) || p.AtEnd() {
				break
			}
			stmt, err := p.parseStatement()
			if err != nil {
				return instr.Instruction{}, err
			}
			stmts = append(stmts, stmt)
			p.consumeTerminators()
		}
		if _, err := p.Expect(token.DEDENT); err != nil {
			return instr.Instruction{}, err
		}
		return instr.Scope(pos, instr.Sequence(pos, stmts)), nil
	}

	if _, err := p.Expect(p.schema.BlockOpen); err != nil {
		return instr.Instruction{}, err
	}
	var stmts []instr.Instruction
	for !p.Check(p.schema.BlockClose) && !p.AtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return instr.Instruction{}, err
		}
		stmts = append(stmts, stmt)
		p.consumeTerminators()
	}
	if _, err := p.Expect(p.schema.BlockClose); err != nil {
		return instr.Instruction{}, err
	}
	return instr.Scope(pos, instr.Sequence(pos, stmts)), nil
}
