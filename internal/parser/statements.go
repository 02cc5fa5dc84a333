// Statement handler constructors, grounded on the control-flow keywords
// parsed by original_source/src_microcode/kernel/_3_reduce.rs's
// parse_statement dispatch, reworked from that file's hard-coded `match
// keyword.as_str()` into the registry's first-match-wins handler list
// (spec §4.4/§4.5).
package parser

import (
	"lumen/internal/instr"
	"lumen/internal/registry"
	"lumen/token"
)

// LetHandler recognizes `keyword [mut] name = value` (spec §3's `let
// mut` marker; `var` reuses this same shape with mode Define per spec
// §4.7: "let/var -> define").
func LetHandler(keyword string, allowMut bool) registry.StmtHandler {
	return registry.StmtHandler{
		Name:    "stmt:" + keyword,
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == keyword },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			mut := allowMut && p.Match("mut")
			name, err := p.ExpectIdentifier()
			if err != nil {
				return instr.Instruction{}, err
			}
			if _, err := p.Expect("="); err != nil {
				return instr.Instruction{}, err
			}
			val, err := p.ParseExpression(0)
			if err != nil {
				return instr.Instruction{}, err
			}
			return instr.Assign(tok.Pos, name.Lexeme, val, instr.AssignDefine, mut), nil
		},
	}
}

// IfHandler recognizes `ifKw cond block [elifKw cond block]* [elseKw block]`.
// elifKw may be "" for schemas with no dedicated elif keyword, in which
// case `else if...` chains instead (spec's lumen/rust-core shape).
func IfHandler(ifKw, elifKw, elseKw string) registry.StmtHandler {
	return registry.StmtHandler{
		Name:    "stmt:" + ifKw,
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == ifKw },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			return parseIfTail(p, r, tok, ifKw, elifKw, elseKw)
		},
	}
}

func parseIfTail(p *Parser, r *registry.Registry, tok token.Token, ifKw, elifKw, elseKw string) (instr.Instruction, error) {
	cond, err := p.ParseExpression(0)
	if err != nil {
		return instr.Instruction{}, err
	}
	then, err := p.ParseBlock()
	if err != nil {
		return instr.Instruction{}, err
	}
	var els *instr.Instruction
	switch {
	case elifKw != "" && p.Check(elifKw):
		elifTok := p.Advance()
		elifBranch, err := parseIfTail(p, r, elifTok, ifKw, elifKw, elseKw)
		if err != nil {
			return instr.Instruction{}, err
		}
		els = &elifBranch
	case p.Match(elseKw):
		if p.PeekLexeme() == ifKw {
			elseTok := p.Advance()
			elseBranch, err := parseIfTail(p, r, elseTok, ifKw, elifKw, elseKw)
			if err != nil {
				return instr.Instruction{}, err
			}
			els = &elseBranch
		} else {
			elseBlock, err := p.ParseBlock()
			if err != nil {
				return instr.Instruction{}, err
			}
			els = &elseBlock
		}
	}
	return instr.Branch(tok.Pos, cond, then, els), nil
}

// WhileHandler recognizes `keyword cond block` as a pre-test Loop.
func WhileHandler(keyword string) registry.StmtHandler {
	return registry.StmtHandler{
		Name:    "stmt:" + keyword,
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == keyword },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			cond, err := p.ParseExpression(0)
			if err != nil {
				return instr.Instruction{}, err
			}
			body, err := p.ParseBlock()
			if err != nil {
				return instr.Instruction{}, err
			}
			return instr.Loop(tok.Pos, cond, body), nil
		},
	}
}

// UntilHandler recognizes `keyword cond block` as a post-test UntilLoop
// (exit when cond becomes true, body runs at least once).
func UntilHandler(keyword string) registry.StmtHandler {
	return registry.StmtHandler{
		Name:    "stmt:" + keyword,
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == keyword },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			cond, err := p.ParseExpression(0)
			if err != nil {
				return instr.Instruction{}, err
			}
			body, err := p.ParseBlock()
			if err != nil {
				return instr.Instruction{}, err
			}
			return instr.UntilLoop(tok.Pos, cond, body), nil
		},
	}
}

// ForHandler recognizes `forKw var inKw iterable block`.
func ForHandler(forKw, inKw string, freshPerIter bool) registry.StmtHandler {
	return registry.StmtHandler{
		Name:    "stmt:" + forKw,
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == forKw },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			varName, err := p.ExpectIdentifier()
			if err != nil {
				return instr.Instruction{}, err
			}
			if _, err := p.Expect(inKw); err != nil {
				return instr.Instruction{}, err
			}
			iterable, err := p.ParseExpression(0)
			if err != nil {
				return instr.Instruction{}, err
			}
			body, err := p.ParseBlock()
			if err != nil {
				return instr.Instruction{}, err
			}
			return instr.ForLoop(tok.Pos, varName.Lexeme, iterable, body, freshPerIter), nil
		},
	}
}

// FnHandler recognizes `keyword name(params) block`, always marking the
// definition memoizable: the actual gate is the MEMOIZATION flag
// consulted at call time (spec §4.6).
func FnHandler(keyword string) registry.StmtHandler {
	return registry.StmtHandler{
		Name:    "stmt:" + keyword,
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == keyword },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			name, err := p.ExpectIdentifier()
			if err != nil {
				return instr.Instruction{}, err
			}
			if _, err := p.Expect("("); err != nil {
				return instr.Instruction{}, err
			}
			var params []string
			if !p.Check(")") {
				for {
					id, err := p.ExpectIdentifier()
					if err != nil {
						return instr.Instruction{}, err
					}
					params = append(params, id.Lexeme)
					if !p.Match(",") {
						break
					}
				}
			}
			if _, err := p.Expect(")"); err != nil {
				return instr.Instruction{}, err
			}
			body, err := p.ParseBlock()
			if err != nil {
				return instr.Instruction{}, err
			}
			return instr.FunctionDef(tok.Pos, name.Lexeme, params, body, true), nil
		},
	}
}

// ReturnHandler recognizes `keyword [expr]`, where a trailing terminator,
// block-close, or EOF means no value.
func ReturnHandler(keyword string) registry.StmtHandler {
	return registry.StmtHandler{
		Name:    "stmt:" + keyword,
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == keyword },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			if returnEndsBare(p) {
				return instr.Transfer(tok.Pos, instr.TransferReturn, nil), nil
			}
			val, err := p.ParseExpression(0)
			if err != nil {
				return instr.Instruction{}, err
			}
			return instr.Transfer(tok.Pos, instr.TransferReturn, &val), nil
		},
	}
}

func returnEndsBare(p *Parser) bool {
	lex := p.PeekLexeme()
	if lex == p.schema.BlockClose || p.AtEnd() {
		return true
	}
	for _, term := range append([]string{token.NEWLINE}, p.schema.Terminators...) {
		if lex == term {
			return true
		}
	}
	return false
}

// BreakHandler recognizes a bare `keyword`.
func BreakHandler(keyword string) registry.StmtHandler {
	return registry.StmtHandler{
		Name:    "stmt:" + keyword,
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == keyword },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			return instr.Transfer(tok.Pos, instr.TransferBreak, nil), nil
		},
	}
}

// ContinueHandler recognizes a bare `keyword`.
func ContinueHandler(keyword string) registry.StmtHandler {
	return registry.StmtHandler{
		Name:    "stmt:" + keyword,
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == keyword },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			return instr.Transfer(tok.Pos, instr.TransferContinue, nil), nil
		},
	}
}

// MemoizationHandler recognizes `MEMOIZATION = true|false`; any other
// use of the reserved identifier is rejected elsewhere by excluding it
// from the ordinary IdentifierHandler's Keywords check (spec §4.4).
func MemoizationHandler(name string) registry.StmtHandler {
	return registry.StmtHandler{
		Name:    "stmt:" + name,
		Matches: func(p registry.Parser) bool { return p.PeekLexeme() == name },
		Parse: func(rp registry.Parser, r *registry.Registry) (instr.Instruction, error) {
			p := asParser(rp)
			tok := p.Advance()
			if _, err := p.Expect("="); err != nil {
				return instr.Instruction{}, err
			}
			val, err := p.ParseExpression(0)
			if err != nil {
				return instr.Instruction{}, err
			}
			return instr.Assign(tok.Pos, name, val, instr.AssignUpdate, false), nil
		},
	}
}
