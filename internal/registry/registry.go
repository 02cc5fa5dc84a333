// Package registry implements the ordered handler registry (spec §4.5):
// three ordered lists of prefix, infix, and statement handlers, plus the
// shared multichar-lexeme table consulted by the lexer for maximal munch.
// Grounded on original_source/src/kernel/registry.rs's TokenRegistry merge
// step and the teacher's plugin-style registration pattern in
// internal/stdlib/modules.go (an ordered slice of registered entries,
// first match wins).
package registry

import (
	"lumen/internal/instr"
	"lumen/internal/schema"
)

// Parser is the narrow interface handlers need from the parser to avoid
// an import cycle between internal/parser and internal/registry: the
// parser package implements this, and handlers are written against it.
type Parser interface {
	PeekLexeme() string
	ParseExpression(minPrec int) (instr.Instruction, error)
	ParseBlock() (instr.Instruction, error)
}

// PrefixHandler recognizes and parses a prefix expression form (literal,
// identifier, grouping, unary op, extern call, array literal).
type PrefixHandler struct {
	Name    string
	Matches func(p Parser) bool
	Parse   func(p Parser, r *Registry) (instr.Instruction, error)
}

// InfixHandler recognizes and parses an infix/postfix expression
// continuation (binary op, pipe, index, call).
type InfixHandler struct {
	Name       string
	Precedence int
	Matches    func(p Parser) bool
	Parse      func(p Parser, r *Registry, left instr.Instruction) (instr.Instruction, error)
}

// StmtHandler recognizes and parses a statement form (let/var/if/while/
// until/for/fn/return/break/continue/MEMOIZATION). Expression statements
// and the assignment fallback are handled by the parser itself.
type StmtHandler struct {
	Name    string
	Matches func(p Parser) bool
	Parse   func(p Parser, r *Registry) (instr.Instruction, error)
}

// Registry holds the three ordered handler lists plus the merged,
// sorted multichar lexeme table.
type Registry struct {
	Prefixes   []PrefixHandler
	Infixes    []InfixHandler
	Statements []StmtHandler

	lexemes []string
	sorted  bool
}

// New returns an empty registry ready for per-language registration.
func New() *Registry {
	return &Registry{}
}

// RegisterPrefix appends a prefix handler; registration order is the
// first-match priority (spec §4.5).
func (r *Registry) RegisterPrefix(h PrefixHandler) {
	r.Prefixes = append(r.Prefixes, h)
}

// RegisterInfix appends an infix handler.
func (r *Registry) RegisterInfix(h InfixHandler) {
	r.Infixes = append(r.Infixes, h)
}

// RegisterStatement appends a statement handler.
func (r *Registry) RegisterStatement(h StmtHandler) {
	r.Statements = append(r.Statements, h)
}

// AddLexemes contributes multi-char lexemes a handler consumes (e.g.
// "==", "|>", "//") to the shared table; call before Lexemes().
func (r *Registry) AddLexemes(lexemes ...string) {
	r.lexemes = append(r.lexemes, lexemes...)
	r.sorted = false
}

// Lexemes returns the registry's contributed multichar lexemes merged
// with a language schema's own table and sorted by descending length
// once (spec §4.5: "merged and sorted by descending length once").
func (r *Registry) Lexemes(s *schema.Schema) []string {
	all := make([]string, 0, len(r.lexemes)+len(s.MulticharLexemes))
	seen := make(map[string]bool)
	for _, l := range append(append([]string{}, r.lexemes...), s.MulticharLexemes...) {
		if !seen[l] {
			seen[l] = true
			all = append(all, l)
		}
	}
	return schema.SortedMulticharLexemes(all)
}

// MatchPrefix returns the first prefix handler whose Matches predicate
// holds, or nil.
func (r *Registry) MatchPrefix(p Parser) *PrefixHandler {
	for i := range r.Prefixes {
		if r.Prefixes[i].Matches(p) {
			return &r.Prefixes[i]
		}
	}
	return nil
}

// MatchInfix returns the first infix handler whose Matches predicate
// holds AND whose precedence is at least minPrec, or nil.
func (r *Registry) MatchInfix(p Parser, minPrec int) *InfixHandler {
	for i := range r.Infixes {
		h := &r.Infixes[i]
		if h.Precedence < minPrec {
			continue
		}
		if h.Matches(p) {
			return h
		}
	}
	return nil
}

// MatchStatement returns the first statement handler whose Matches
// predicate holds, or nil.
func (r *Registry) MatchStatement(p Parser) *StmtHandler {
	for i := range r.Statements {
		if r.Statements[i].Matches(p) {
			return &r.Statements[i]
		}
	}
	return nil
}
