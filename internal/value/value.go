// Package value implements the runtime Value tagged union (spec §3): a
// closed set of value kinds with equality, display, and kind reflection,
// following the teacher's closed-tag idiom (internal/ast.NodeType) applied
// to runtime values instead of AST nodes.
package value

import (
	"fmt"
	"strings"

	"lumen/internal/numeric"
)

// Kind tags a runtime value's category (spec §3's "Kind" meta-value).
type Kind string

const (
	KindInteger  Kind = "INTEGER"
	KindRational Kind = "RATIONAL"
	KindReal     Kind = "REAL"
	KindString   Kind = "STRING"
	KindBoolean  Kind = "BOOLEAN"
	KindArray    Kind = "ARRAY"
	KindNone     Kind = "NONE"
	KindRange    Kind = "RANGE"
	KindFunction Kind = "FUNCTION"
	KindSymbol   Kind = "SYMBOL"
	KindKind     Kind = "KIND"
)

// Value is the runtime value. Exactly one field group is meaningful per
// Tag; this mirrors the teacher's tagged-node pattern but collapses it
// into a single struct since the evaluator must branch on kind at every
// operator anyway (spec §9 design note).
type Value struct {
	Tag Kind

	Num   numeric.Number // Integer / Rational / Real
	Str   string         // String / Symbol / Function name / Kind name
	Bool  bool           // Boolean
	Items []Value        // Array
	Range Range          // Range
	Fn    *Function      // Function
}

// Range is a half-open integer range [Start, End).
type Range struct {
	Start int64
	End   int64
}

// Function is a name-addressed function reference (spec §3: "Function{
// params, body_ref}" — the core never holds first-class closures, only a
// pointer into the function table by name).
type Function struct {
	Name string
}

// Constructors.

func Int(n numeric.Number) Value   { return Value{Tag: KindInteger, Num: n} }
func Rational(n numeric.Number) Value {
	if n.Kind == numeric.KindInteger {
		return Value{Tag: KindInteger, Num: n}
	}
	return Value{Tag: KindRational, Num: n}
}
func Real(n numeric.Number) Value { return Value{Tag: KindReal, Num: n} }

// Numeric wraps a numeric.Number at its natural kind (Integer, Rational,
// or Real), used by the evaluator after arithmetic so the result is never
// tagged Rational with a denominator of 1 (spec invariant).
func Numeric(n numeric.Number) Value {
	switch n.Kind {
	case numeric.KindInteger:
		return Int(n)
	case numeric.KindRational:
		return Rational(n)
	default:
		return Real(n)
	}
}

func Str(s string) Value          { return Value{Tag: KindString, Str: s} }
func Bool(b bool) Value           { return Value{Tag: KindBoolean, Bool: b} }
func Array(items []Value) Value   { return Value{Tag: KindArray, Items: items} }
func None() Value                 { return Value{Tag: KindNone} }
func RangeVal(start, end int64) Value {
	return Value{Tag: KindRange, Range: Range{Start: start, End: end}}
}
func FunctionVal(name string) Value { return Value{Tag: KindFunction, Fn: &Function{Name: name}} }
func Symbol(name string) Value      { return Value{Tag: KindSymbol, Str: name} }
func KindVal(k Kind) Value          { return Value{Tag: KindKind, Str: string(k)} }

// IsTruthy coerces a value to bool per spec §4.7 Branch rules: true for
// non-zero numbers, non-empty strings/arrays, Bool(true); false for None,
// Bool(false), zero, empty.
func (v Value) IsTruthy() bool {
	switch v.Tag {
	case KindBoolean:
		return v.Bool
	case KindNone:
		return false
	case KindInteger, KindRational, KindReal:
		return !v.Num.IsZero()
	case KindString:
		return v.Str != ""
	case KindArray:
		return len(v.Items) > 0
	default:
		return true
	}
}

// Eq implements value equality. Numeric kinds compare exactly across
// kinds (spec §3 invariant); reals compare via cross-multiplied
// numerators (spec §9(c)).
func Eq(a, b Value) bool {
	if isNumeric(a.Tag) && isNumeric(b.Tag) {
		return numeric.Equal(a.Num, b.Num)
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case KindString, KindSymbol, KindKind:
		return a.Str == b.Str
	case KindBoolean:
		return a.Bool == b.Bool
	case KindNone:
		return true
	case KindArray:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Eq(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case KindRange:
		return a.Range == b.Range
	case KindFunction:
		return a.Fn.Name == b.Fn.Name
	default:
		return false
	}
}

func isNumeric(k Kind) bool {
	return k == KindInteger || k == KindRational || k == KindReal
}

// Display renders a value for concatenation / emit coercion (spec §4.7's
// per-kind to-string builtins and the `.`/`+` string-coercion rule).
func (v Value) Display() string {
	switch v.Tag {
	case KindInteger:
		return v.Num.ToIntString()
	case KindRational:
		return v.Num.ToRationalString()
	case KindReal:
		return numeric.RenderReal(v.Num)
	case KindString, KindSymbol:
		return v.Str
	case KindBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNone:
		return "none"
	case KindArray:
		parts := make([]string, len(v.Items))
		for i, it := range v.Items {
			parts[i] = it.Display()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindRange:
		return fmt.Sprintf("%d..%d", v.Range.Start, v.Range.End)
	case KindFunction:
		return "<function " + v.Fn.Name + ">"
	case KindKind:
		return v.Str
	default:
		return ""
	}
}

// Fingerprint produces a deterministic, value-sensitive encoding of a
// single value for memoization argument fingerprinting (spec §4.6): two
// values that are Eq must fingerprint identically. Display alone does not
// satisfy this for numbers: Eq values of different kinds or precisions
// render differently (Rational 1/2 vs Real 0.5). Every numeric kind is
// therefore encoded by its exact num/den string under one "n:" prefix;
// other kinds are prefixed with their tag so kinds that are never Eq to
// each other stay apart.
func (v Value) Fingerprint() string {
	switch v.Tag {
	case KindInteger, KindRational, KindReal:
		return "n:" + v.Num.ToRationalString()
	case KindArray:
		parts := make([]string, len(v.Items))
		for i, it := range v.Items {
			parts[i] = it.Fingerprint()
		}
		return "a:[" + strings.Join(parts, ",") + "]"
	default:
		return string(v.Tag) + ":" + v.Display()
	}
}
