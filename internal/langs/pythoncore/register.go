// Package pythoncore builds the Python-core language schema: indentation
// layout, `and`/`or` (no `&&`/`||`), no pipe or extern. Grounded on
// original_source/src_microcode/languages/python_core/schema.rs.
package pythoncore

import (
	"lumen/internal/langs"
	"lumen/internal/parser"
	"lumen/internal/registry"
	"lumen/internal/schema"
	"lumen/internal/value"
)

// Schema returns the Python-core language schema.
func Schema() *schema.Schema {
	return &schema.Schema{
		Name:            "python-core",
		Layout:          schema.LayoutIndentation,
		IndentationSize: 4,
		MulticharLexemes: []string{
			"**", "==", "!=", "<=", ">=", "//",
			"def", "if", "elif", "else", "while", "for", "in",
			"break", "continue", "return", "and", "or", "not",
			"True", "False", "None",
		},
		Keywords: map[string]bool{
			"def": true, "if": true, "elif": true, "else": true,
			"while": true, "for": true, "in": true,
			"break": true, "continue": true, "return": true,
			"and": true, "or": true, "not": true,
			"True": true, "False": true, "None": true,
		},
		Terminators: []string{";"},
		BinaryOps: map[string]schema.BinaryOpInfo{
			"or":  {Precedence: langs.PrecOr, Associativity: schema.LeftAssoc, ShortCircuit: true},
			"and": {Precedence: langs.PrecAnd, Associativity: schema.LeftAssoc, ShortCircuit: true},
			"==":  {Precedence: langs.PrecCompare, Associativity: schema.LeftAssoc},
			"!=":  {Precedence: langs.PrecCompare, Associativity: schema.LeftAssoc},
			"<":   {Precedence: langs.PrecCompare, Associativity: schema.LeftAssoc},
			">":   {Precedence: langs.PrecCompare, Associativity: schema.LeftAssoc},
			"<=":  {Precedence: langs.PrecCompare, Associativity: schema.LeftAssoc},
			">=":  {Precedence: langs.PrecCompare, Associativity: schema.LeftAssoc},
			"+":   {Precedence: langs.PrecAdditive, Associativity: schema.LeftAssoc},
			"-":   {Precedence: langs.PrecAdditive, Associativity: schema.LeftAssoc},
			"*":   {Precedence: langs.PrecMultiply, Associativity: schema.LeftAssoc},
			"/":   {Precedence: langs.PrecMultiply, Associativity: schema.LeftAssoc},
			"%":   {Precedence: langs.PrecMultiply, Associativity: schema.LeftAssoc},
			"//":  {Precedence: langs.PrecMultiply, Associativity: schema.LeftAssoc},
			"**":  {Precedence: langs.PrecExponent, Associativity: schema.RightAssoc},
		},
		UnaryOps: map[string]schema.UnaryOpInfo{
			"-":   {Precedence: langs.PrecUnary, Position: schema.Prefix},
			"not": {Precedence: langs.PrecUnary, Position: schema.Prefix},
		},
		ForLoopFreshScope: false,
	}
}

// Register populates r with every Python-core handler.
func Register(r *registry.Registry, s *schema.Schema) {
	r.RegisterPrefix(parser.NumberLiteralHandler())
	r.RegisterPrefix(parser.StringLiteralHandler())
	r.RegisterPrefix(parser.KeywordLiteralHandler("True", value.Bool(true)))
	r.RegisterPrefix(parser.KeywordLiteralHandler("False", value.Bool(false)))
	r.RegisterPrefix(parser.KeywordLiteralHandler("None", value.None()))
	r.RegisterPrefix(parser.ArrayLiteralHandler())
	for op, info := range s.UnaryOps {
		r.RegisterPrefix(parser.UnaryPrefixHandler(op, info))
	}
	r.RegisterPrefix(parser.GroupingHandler("(", ")"))
	r.RegisterPrefix(parser.IdentifierHandler(s))

	r.RegisterInfix(parser.CallPostfixHandler(langs.PrecPostfix))
	r.RegisterInfix(parser.IndexPostfixHandler(langs.PrecPostfix))
	for op, info := range s.BinaryOps {
		r.RegisterInfix(parser.BinaryInfixHandler(op, info, nil))
	}

	r.RegisterStatement(parser.FnHandler("def"))
	r.RegisterStatement(parser.IfHandler("if", "elif", "else"))
	r.RegisterStatement(parser.WhileHandler("while"))
	r.RegisterStatement(parser.ForHandler("for", "in", s.ForLoopFreshScope))
	r.RegisterStatement(parser.ReturnHandler("return"))
	r.RegisterStatement(parser.BreakHandler("break"))
	r.RegisterStatement(parser.ContinueHandler("continue"))
}
