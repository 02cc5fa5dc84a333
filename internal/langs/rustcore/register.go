// Package rustcore builds the Rust-core language schema: brace-delimited
// blocks, `&&`/`||` alongside `and`/`or`, and non-chaining comparison
// operators (spec §4.4). Grounded on
// original_source/src_microcode/languages/rust/schema.rs.
package rustcore

import (
	"lumen/internal/langs"
	"lumen/internal/parser"
	"lumen/internal/registry"
	"lumen/internal/schema"
	"lumen/internal/value"
)

var comparisonFamily = []string{"==", "!=", "<", ">", "<=", ">="}

// Schema returns the Rust-core language schema.
func Schema() *schema.Schema {
	return &schema.Schema{
		Name:   "rust-core",
		Layout: schema.LayoutBraces,
		MulticharLexemes: []string{
			"==", "!=", "<=", ">=", "**", "->", "&&", "||",
			"let", "mut", "if", "else", "while", "for", "in",
			"break", "continue", "return", "fn",
			"and", "or", "not", "true", "false", "none",
		},
		Keywords: map[string]bool{
			"let": true, "mut": true, "if": true, "else": true,
			"while": true, "for": true, "in": true,
			"break": true, "continue": true, "return": true, "fn": true,
			"and": true, "or": true, "not": true,
			"true": true, "false": true, "none": true,
		},
		Terminators: []string{";"},
		BlockOpen:   "{",
		BlockClose:  "}",
		BinaryOps: map[string]schema.BinaryOpInfo{
			"||":  {Precedence: langs.PrecOr, Associativity: schema.LeftAssoc, ShortCircuit: true},
			"or":  {Precedence: langs.PrecOr, Associativity: schema.LeftAssoc, ShortCircuit: true},
			"&&":  {Precedence: langs.PrecAnd, Associativity: schema.LeftAssoc, ShortCircuit: true},
			"and": {Precedence: langs.PrecAnd, Associativity: schema.LeftAssoc, ShortCircuit: true},
			"==":  {Precedence: langs.PrecCompare, Associativity: schema.NonAssoc},
			"!=":  {Precedence: langs.PrecCompare, Associativity: schema.NonAssoc},
			"<":   {Precedence: langs.PrecCompare, Associativity: schema.NonAssoc},
			">":   {Precedence: langs.PrecCompare, Associativity: schema.NonAssoc},
			"<=":  {Precedence: langs.PrecCompare, Associativity: schema.NonAssoc},
			">=":  {Precedence: langs.PrecCompare, Associativity: schema.NonAssoc},
			"+":   {Precedence: langs.PrecAdditive, Associativity: schema.LeftAssoc},
			"-":   {Precedence: langs.PrecAdditive, Associativity: schema.LeftAssoc},
			"*":   {Precedence: langs.PrecMultiply, Associativity: schema.LeftAssoc},
			"/":   {Precedence: langs.PrecMultiply, Associativity: schema.LeftAssoc},
			"%":   {Precedence: langs.PrecMultiply, Associativity: schema.LeftAssoc},
			"**":  {Precedence: langs.PrecExponent, Associativity: schema.RightAssoc},
		},
		UnaryOps: map[string]schema.UnaryOpInfo{
			"-":   {Precedence: langs.PrecUnary, Position: schema.Prefix},
			"not": {Precedence: langs.PrecUnary, Position: schema.Prefix},
			"!":   {Precedence: langs.PrecUnary, Position: schema.Prefix},
		},
		ForLoopFreshScope: true,
		AllowMutMarker:    true,
	}
}

// Register populates r with every Rust-core handler.
func Register(r *registry.Registry, s *schema.Schema) {
	r.RegisterPrefix(parser.NumberLiteralHandler())
	r.RegisterPrefix(parser.StringLiteralHandler())
	r.RegisterPrefix(parser.KeywordLiteralHandler("true", value.Bool(true)))
	r.RegisterPrefix(parser.KeywordLiteralHandler("false", value.Bool(false)))
	r.RegisterPrefix(parser.KeywordLiteralHandler("none", value.None()))
	r.RegisterPrefix(parser.ArrayLiteralHandler())
	for op, info := range s.UnaryOps {
		r.RegisterPrefix(parser.UnaryPrefixHandler(op, info))
	}
	r.RegisterPrefix(parser.GroupingHandler("(", ")"))
	r.RegisterPrefix(parser.IdentifierHandler(s))

	r.RegisterInfix(parser.CallPostfixHandler(langs.PrecPostfix))
	r.RegisterInfix(parser.IndexPostfixHandler(langs.PrecPostfix))
	for op, info := range s.BinaryOps {
		var nonChain []string
		if info.Associativity == schema.NonAssoc {
			nonChain = comparisonFamily
		}
		r.RegisterInfix(parser.BinaryInfixHandler(op, info, nonChain))
	}

	r.RegisterStatement(parser.LetHandler("let", true))
	r.RegisterStatement(parser.IfHandler("if", "", "else"))
	r.RegisterStatement(parser.WhileHandler("while"))
	r.RegisterStatement(parser.ForHandler("for", "in", s.ForLoopFreshScope))
	r.RegisterStatement(parser.FnHandler("fn"))
	r.RegisterStatement(parser.ReturnHandler("return"))
	r.RegisterStatement(parser.BreakHandler("break"))
	r.RegisterStatement(parser.ContinueHandler("continue"))
}
