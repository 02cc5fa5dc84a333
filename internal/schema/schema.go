// Package schema defines the purely data-driven LanguageSchema (spec §3,
// §4.5): the tables a language author supplies so the shared lexer,
// normalizer, and parser can host a new language without touching core
// code. Grounded on original_source/src/schema/mod.rs's field layout and
// original_source/src_microcode/languages/*/schema.rs's concrete tables.
package schema

import "sort"

// Associativity of a binary operator.
type Associativity string

const (
	LeftAssoc  Associativity = "LEFT"
	RightAssoc Associativity = "RIGHT"
	NonAssoc   Associativity = "NONE"
)

// UnaryPosition distinguishes prefix from postfix unary operators.
type UnaryPosition string

const (
	Prefix  UnaryPosition = "PREFIX"
	Postfix UnaryPosition = "POSTFIX"
)

// BinaryOpInfo is one row of the binary-operator precedence table.
type BinaryOpInfo struct {
	Precedence    int
	Associativity Associativity
	ShortCircuit  bool
}

// UnaryOpInfo is one row of the unary-operator table.
type UnaryOpInfo struct {
	Precedence int
	Position   UnaryPosition
}

// ExternSyntax configures the optional `extern(...)` call form.
type ExternSyntax struct {
	Keyword      string
	SelectorQuote byte
	ArgsOpen     string
	ArgsClose    string
	ArgSep       string
}

// LayoutStyle distinguishes indentation-sensitive languages from
// brace-delimited ones (spec §4.3: brace languages bypass the normalizer).
type LayoutStyle string

const (
	LayoutIndentation LayoutStyle = "INDENTATION"
	LayoutBraces      LayoutStyle = "BRACES"
)

// Schema is the complete per-language data object consumed by the lexer,
// normalizer, and parser (spec §3's "Schema").
type Schema struct {
	Name string

	Layout          LayoutStyle
	IndentationSize int // units of leading-space width per level; 0 means use default of 4

	// MulticharLexemes is the set of multi-character operator/punctuation
	// lexemes this language's own handlers introduce (merged with the
	// registry's handler-contributed lexemes before sorting; see
	// internal/registry).
	MulticharLexemes []string

	// Keywords are word-shaped lexemes requiring a non-word boundary
	// after the match (spec §4.2).
	Keywords map[string]bool

	// Terminators end a statement (e.g. ";" or NEWLINE, depending on
	// layout style).
	Terminators []string

	// BlockOpen/BlockClose are the brace-language block delimiters; for
	// indentation languages these are empty and INDENT/DEDENT sentinels
	// are used instead.
	BlockOpen  string
	BlockClose string

	BinaryOps map[string]BinaryOpInfo
	UnaryOps  map[string]UnaryOpInfo

	Extern *ExternSyntax

	// ForLoopFreshScope selects the Open Question (a) resolution for
	// this language's ForLoop: true binds the loop variable in a fresh
	// frame per iteration, false binds it in the surrounding scope.
	ForLoopFreshScope bool

	// AllowMutMarker records whether the language accepts (not enforces)
	// `let mut` (spec §3 supplemented feature). The parser does not read
	// it; parser.LetHandler's allowMut argument switches the marker on.
	AllowMutMarker bool
}

// IndentUnit returns the configured indentation width, defaulting to 4
// per spec §4.3.
func (s Schema) IndentUnit() int {
	if s.IndentationSize <= 0 {
		return 4
	}
	return s.IndentationSize
}

// SortedMulticharLexemes returns lexemes sorted by descending length, the
// order the lexer requires for maximal munch (spec §4.2, §8 property 2).
func SortedMulticharLexemes(lexemes []string) []string {
	out := make([]string, len(lexemes))
	copy(out, lexemes)
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
