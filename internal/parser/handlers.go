// Handler constructors shared by every language registration in
// internal/langs. Each returns a registry.PrefixHandler, InfixHandler, or
// StmtHandler; a language's register.go wires these against its own
// schema.Schema operator tables and keyword spellings (spec §4.5:
// "language authors populate the registry at interpreter start by
// calling per-feature register functions").
package parser

import (
	"strconv"
	"strings"

	"lumen/internal/errors"
	"lumen/internal/instr"
	"lumen/internal/numeric"
	"lumen/internal/registry"
	"lumen/internal/schema"
	"lumen/internal/value"
)

func asParser(p registry.Parser) *Parser { return p.(*Parser) }

// NumberLiteralHandler recognizes decimal and base-N numeric literals
// (spec §4.1) and parses them exactly via internal/numeric.
func NumberLiteralHandler() registry.PrefixHandler {
	return registry.PrefixHandler{
		Name: "number-literal",
		Matches: func(p registry.Parser) bool {
			lex := p.PeekLexeme()
			return lex != "" && lex[0] >= '0' && lex[0] <= '9'
		},
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			n, err := parseNumberLexeme(tok.Lexeme)
			if err != nil {
				return instr.Instruction{}, errors.At(errors.ParseError, tok.Pos, "malformed numeric literal %q: %s", tok.Lexeme, err)
			}
			return instr.Literal(tok.Pos, value.Numeric(n)), nil
		},
	}
}

func parseNumberLexeme(lex string) (numeric.Number, error) {
	if at := strings.IndexByte(lex, '@'); at >= 0 {
		base, err := strconv.Atoi(lex[:at])
		if err != nil {
			return numeric.Number{}, err
		}
		rest := lex[at+1:]
		intPart, fracPart, expPart := rest, "", ""
		if dot := strings.IndexByte(rest, '.'); dot >= 0 {
			intPart = rest[:dot]
			rest2 := rest[dot+1:]
			if caret := strings.IndexByte(rest2, '^'); caret >= 0 {
				fracPart = rest2[:caret]
				expPart = rest2[caret+1:]
			} else {
				fracPart = rest2
			}
		} else if caret := strings.IndexByte(rest, '^'); caret >= 0 {
			intPart = rest[:caret]
			expPart = rest[caret+1:]
		}
		return numeric.ParseBaseN(base, intPart, fracPart, expPart)
	}
	if dot := strings.IndexByte(lex, '.'); dot >= 0 {
		return numeric.ParseDecimal(lex[:dot], lex[dot+1:])
	}
	return numeric.ParseDecimal(lex, "")
}

// StringLiteralHandler recognizes quoted string literals and unescapes
// a single backslash look-ahead (spec §4.2).
func StringLiteralHandler() registry.PrefixHandler {
	return registry.PrefixHandler{
		Name: "string-literal",
		Matches: func(p registry.Parser) bool {
			lex := p.PeekLexeme()
			return len(lex) >= 2 && (lex[0] == '"' || lex[0] == '\'')
		},
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			raw := tok.Lexeme[1 : len(tok.Lexeme)-1]
			return instr.Literal(tok.Pos, value.Str(unescapeString(raw))), nil
		},
	}
}

func unescapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// KeywordLiteralHandler recognizes a reserved word that stands for a
// fixed Value (e.g. "true", "false", "none").
func KeywordLiteralHandler(keyword string, v value.Value) registry.PrefixHandler {
	return registry.PrefixHandler{
		Name: "keyword-literal:" + keyword,
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == keyword },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			return instr.Literal(tok.Pos, v), nil
		},
	}
}

// IdentifierHandler recognizes any word-shaped lexeme not registered as
// a schema keyword and parses it as a Variable reference.
func IdentifierHandler(s *schema.Schema) registry.PrefixHandler {
	return registry.PrefixHandler{
		Name: "identifier",
		Matches: func(p registry.Parser) bool {
			lex := p.PeekLexeme()
			return isWordShaped(lex) && !s.Keywords[lex]
		},
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			return instr.Variable(tok.Pos, tok.Lexeme), nil
		},
	}
}

// GroupingHandler recognizes `( expr )` and returns the inner expression
// unwrapped (grouping carries no node of its own).
func GroupingHandler(open, close string) registry.PrefixHandler {
	return registry.PrefixHandler{
		Name:    "grouping",
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == open },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			p.Advance()
			inner, err := p.ParseExpression(0)
			if err != nil {
				return instr.Instruction{}, err
			}
			if _, err := p.Expect(close); err != nil {
				return instr.Instruction{}, err
			}
			return inner, nil
		},
	}
}

// ArrayLiteralHandler recognizes `[e1, e2, ...]` and desugars to
// `__construct_array(args...)` (spec §4.4).
func ArrayLiteralHandler() registry.PrefixHandler {
	return registry.PrefixHandler{
		Name:    "array-literal",
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == "[" },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			pos := p.Peek().Pos
			p.Advance()
			var elems []instr.Instruction
			if !p.Check("]") {
				for {
					e, err := p.ParseExpression(0)
					if err != nil {
						return instr.Instruction{}, err
					}
					elems = append(elems, e)
					if !p.Match(",") {
						break
					}
					if p.Check("]") {
						break
					}
				}
			}
			if _, err := p.Expect("]"); err != nil {
				return instr.Instruction{}, err
			}
			return instr.Invoke(pos, "__construct_array", elems), nil
		},
	}
}

// UnaryPrefixHandler recognizes a prefix unary operator (e.g. `-`, `not`,
// `!`) and parses its operand at the operator's own precedence (spec
// §4.4).
func UnaryPrefixHandler(op string, info schema.UnaryOpInfo) registry.PrefixHandler {
	return registry.PrefixHandler{
		Name:    "unary:" + op,
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == op },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			operand, err := p.ParseExpression(info.Precedence)
			if err != nil {
				return instr.Instruction{}, err
			}
			return instr.UnaryOp(tok.Pos, op, operand), nil
		},
	}
}

// BinaryInfixHandler recognizes a left/right/non-associative binary
// operator per the schema's precedence table (spec §4.4). nonChainGroup,
// if non-empty, lists sibling lexemes a non-associative operator must
// not chain with (e.g. rust-core's non-chaining comparisons).
func BinaryInfixHandler(op string, info schema.BinaryOpInfo, nonChainGroup []string) registry.InfixHandler {
	return registry.InfixHandler{
		Name:       "binary:" + op,
		Precedence: info.Precedence,
		Matches:    func(p registry.Parser) bool { return p.PeekLexeme() == op },
		Parse: func(rp registry.Parser, r *registry.Registry, left instr.Instruction) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			nextMin := info.Precedence + 1
			if info.Associativity == schema.RightAssoc {
				nextMin = info.Precedence
			}
			right, err := p.ParseExpression(nextMin)
			if err != nil {
				return instr.Instruction{}, err
			}
			node := instr.BinaryOp(tok.Pos, op, left, right)
			if info.Associativity == schema.NonAssoc && len(nonChainGroup) > 0 {
				next := p.PeekLexeme()
				for _, sib := range nonChainGroup {
					if next == sib {
						return instr.Instruction{}, errors.At(errors.ParseError, p.Peek().Pos, "comparison operators do not chain")
					}
				}
			}
			return node, nil
		},
	}
}

// IndexPostfixHandler recognizes `target[index]`, desugaring to the
// Operate `[]` binary form the evaluator dispatches for indexing.
func IndexPostfixHandler(precedence int) registry.InfixHandler {
	return registry.InfixHandler{
		Name:       "index",
		Precedence: precedence,
		Matches:    func(p registry.Parser) bool { return p.PeekLexeme() == "[" },
		Parse: func(rp registry.Parser, r *registry.Registry, left instr.Instruction) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			idx, err := p.ParseExpression(0)
			if err != nil {
				return instr.Instruction{}, err
			}
			if _, err := p.Expect("]"); err != nil {
				return instr.Instruction{}, err
			}
			return instr.BinaryOp(tok.Pos, "[]", left, idx), nil
		},
	}
}

// CallPostfixHandler recognizes `name(args...)`, the call-by-name form
// (spec §3 Invoke). The callee must be a bare Variable.
func CallPostfixHandler(precedence int) registry.InfixHandler {
	return registry.InfixHandler{
		Name:       "call",
		Precedence: precedence,
		Matches:    func(p registry.Parser) bool { return p.PeekLexeme() == "(" },
		Parse: func(rp registry.Parser, r *registry.Registry, left instr.Instruction) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			if left.Kind != instr.KindVariable {
				return instr.Instruction{}, errors.At(errors.ParseError, tok.Pos, "cannot call a non-function expression")
			}
			var args []instr.Instruction
			if !p.Check(")") {
				for {
					a, err := p.ParseExpression(0)
					if err != nil {
						return instr.Instruction{}, err
					}
					args = append(args, a)
					if !p.Match(",") {
						break
					}
				}
			}
			if _, err := p.Expect(")"); err != nil {
				return instr.Instruction{}, err
			}
			return instr.Invoke(left.Pos, left.VarName, args), nil
		},
	}
}

// PipeHandler recognizes `x |> f(args...)` and desugars it at parse time
// to `f(x, args...)` (spec §4.4).
func PipeHandler(lexeme string, precedence int) registry.InfixHandler {
	return registry.InfixHandler{
		Name:       "pipe",
		Precedence: precedence,
		Matches:    func(p registry.Parser) bool { return p.PeekLexeme() == lexeme },
		Parse: func(rp registry.Parser, r *registry.Registry, left instr.Instruction) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			right, err := p.ParseExpression(precedence + 1)
			if err != nil {
				return instr.Instruction{}, err
			}
			if right.Kind != instr.KindInvoke {
				return instr.Instruction{}, errors.At(errors.ParseError, tok.Pos, "pipe target must be a call expression")
			}
			return instr.Invoke(tok.Pos, right.Function, append([]instr.Instruction{left}, right.Args...)), nil
		},
	}
}

// ExternHandler recognizes `extern("selector", args...)` (spec §4.4):
// the selector must be a string literal, never an identifier.
func ExternHandler(syntax schema.ExternSyntax) registry.PrefixHandler {
	return registry.PrefixHandler{
		Name:    "extern",
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == syntax.Keyword },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			if _, err := p.Expect(syntax.ArgsOpen); err != nil {
				return instr.Instruction{}, err
			}
			sel := p.Peek()
			if len(sel.Lexeme) < 2 || sel.Lexeme[0] != syntax.SelectorQuote {
				return instr.Instruction{}, errors.At(errors.ParseError, sel.Pos, "extern selector must be a string literal")
			}
			p.Advance()
			selector := sel.Lexeme[1 : len(sel.Lexeme)-1]
			args := []instr.Instruction{instr.Literal(tok.Pos, value.Symbol(selector))}
			for p.Match(syntax.ArgSep) {
				a, err := p.ParseExpression(0)
				if err != nil {
					return instr.Instruction{}, err
				}
				args = append(args, a)
			}
			if _, err := p.Expect(syntax.ArgsClose); err != nil {
				return instr.Instruction{}, err
			}
			return instr.Invoke(tok.Pos, "extern", args), nil
		},
	}
}
