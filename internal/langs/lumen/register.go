// Package lumen builds the Lumen language schema and registers its
// handlers: full indentation layout, let/var, for/while/until, fn,
// MEMOIZATION, extern, and the pipe operator (spec §3 supplemented
// feature list). Grounded on
// original_source/src_microcode/languages/lumen/schema.rs's operator
// precedence table and original_source/src_microcode/kernel/_3_reduce.rs's
// statement grammar.
package lumen

import (
	"lumen/internal/langs"
	"lumen/internal/parser"
	"lumen/internal/registry"
	"lumen/internal/schema"
	"lumen/internal/value"
)

// Schema returns the Lumen language schema.
func Schema() *schema.Schema {
	return &schema.Schema{
		Name:            "lumen",
		Layout:          schema.LayoutIndentation,
		IndentationSize: 4,
		MulticharLexemes: []string{
			"|>", "**", "==", "!=", "<=", ">=", "//", "..",
			"let", "var", "mut", "if", "else", "while", "until", "for", "in",
			"break", "continue", "return", "fn", "true", "false", "none",
			"and", "or", "not", "extern", "MEMOIZATION",
		},
		Keywords: map[string]bool{
			"let": true, "var": true, "mut": true, "if": true, "else": true,
			"while": true, "until": true, "for": true, "in": true,
			"break": true, "continue": true, "return": true, "fn": true,
			"true": true, "false": true, "none": true,
			"and": true, "or": true, "not": true, "extern": true,
			"MEMOIZATION": true,
		},
		Terminators: []string{";"},
		BinaryOps: map[string]schema.BinaryOpInfo{
			"|>": {Precedence: langs.PrecPipe, Associativity: schema.RightAssoc},
			"or": {Precedence: langs.PrecOr, Associativity: schema.LeftAssoc, ShortCircuit: true},
			"and": {Precedence: langs.PrecAnd, Associativity: schema.LeftAssoc, ShortCircuit: true},
			"==": {Precedence: langs.PrecCompare, Associativity: schema.LeftAssoc},
			"!=": {Precedence: langs.PrecCompare, Associativity: schema.LeftAssoc},
			"<":  {Precedence: langs.PrecCompare, Associativity: schema.LeftAssoc},
			">":  {Precedence: langs.PrecCompare, Associativity: schema.LeftAssoc},
			"<=": {Precedence: langs.PrecCompare, Associativity: schema.LeftAssoc},
			">=": {Precedence: langs.PrecCompare, Associativity: schema.LeftAssoc},
			"..": {Precedence: langs.PrecRange, Associativity: schema.LeftAssoc},
			"+":  {Precedence: langs.PrecAdditive, Associativity: schema.LeftAssoc},
			"-":  {Precedence: langs.PrecAdditive, Associativity: schema.LeftAssoc},
			"*":  {Precedence: langs.PrecMultiply, Associativity: schema.LeftAssoc},
			"/":  {Precedence: langs.PrecMultiply, Associativity: schema.LeftAssoc},
			"%":  {Precedence: langs.PrecMultiply, Associativity: schema.LeftAssoc},
			"//": {Precedence: langs.PrecMultiply, Associativity: schema.LeftAssoc},
			"**": {Precedence: langs.PrecExponent, Associativity: schema.RightAssoc},
			".":  {Precedence: langs.PrecDot, Associativity: schema.LeftAssoc},
		},
		UnaryOps: map[string]schema.UnaryOpInfo{
			"-":   {Precedence: langs.PrecUnary, Position: schema.Prefix},
			"not": {Precedence: langs.PrecUnary, Position: schema.Prefix},
		},
		Extern: &schema.ExternSyntax{
			Keyword: "extern", SelectorQuote: '"', ArgsOpen: "(", ArgsClose: ")", ArgSep: ",",
		},
		ForLoopFreshScope: false,
		AllowMutMarker:    true,
	}
}

// Register populates r with every Lumen handler.
func Register(r *registry.Registry, s *schema.Schema) {
	r.RegisterPrefix(parser.NumberLiteralHandler())
	r.RegisterPrefix(parser.StringLiteralHandler())
	r.RegisterPrefix(parser.KeywordLiteralHandler("true", value.Bool(true)))
	r.RegisterPrefix(parser.KeywordLiteralHandler("false", value.Bool(false)))
	r.RegisterPrefix(parser.KeywordLiteralHandler("none", value.None()))
	r.RegisterPrefix(parser.ArrayLiteralHandler())
	r.RegisterPrefix(parser.ExternHandler(*s.Extern))
	for op, info := range s.UnaryOps {
		r.RegisterPrefix(parser.UnaryPrefixHandler(op, info))
	}
	r.RegisterPrefix(parser.GroupingHandler("(", ")"))
	r.RegisterPrefix(parser.IdentifierHandler(s))

	r.RegisterInfix(parser.CallPostfixHandler(langs.PrecPostfix))
	r.RegisterInfix(parser.IndexPostfixHandler(langs.PrecPostfix))
	r.RegisterInfix(parser.PipeHandler("|>", langs.PrecPipe))
	for op, info := range s.BinaryOps {
		if op == "|>" {
			continue
		}
		r.RegisterInfix(parser.BinaryInfixHandler(op, info, nil))
	}

	r.RegisterStatement(parser.LetHandler("let", true))
	r.RegisterStatement(parser.LetHandler("var", false))
	r.RegisterStatement(parser.IfHandler("if", "", "else"))
	r.RegisterStatement(parser.WhileHandler("while"))
	r.RegisterStatement(parser.UntilHandler("until"))
	r.RegisterStatement(parser.ForHandler("for", "in", s.ForLoopFreshScope))
	r.RegisterStatement(parser.FnHandler("fn"))
	r.RegisterStatement(parser.ReturnHandler("return"))
	r.RegisterStatement(parser.BreakHandler("break"))
	r.RegisterStatement(parser.ContinueHandler("continue"))
	r.RegisterStatement(parser.MemoizationHandler("MEMOIZATION"))
}
