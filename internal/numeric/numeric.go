// Package numeric implements the exact numeric tower: arbitrary-precision
// Integer, reduced Rational, and fixed-precision Real, with cross-kind
// promotion, per spec §4.1.
//
// Division of two integers produces a Rational. Mixing an integer with a
// rational/real promotes; mixing a rational with a real promotes to real
// carrying the real's precision. A Rational with denominator 1 always
// collapses to Integer.
package numeric

import (
	"fmt"
	"math/big"
)

// Kind tags the three numeric representations.
type Kind int

const (
	KindInteger Kind = iota
	KindRational
	KindReal
)

// DefaultPrecision is the default number of significant decimal digits
// carried by a Real when none is requested explicitly.
const DefaultPrecision = 15

// Number is the numeric-tower value. Integer values store their magnitude
// in Int (Rat is nil). Rational and Real values store a reduced big.Rat;
// Real additionally carries Precision, the number of significant decimal
// digits to render.
type Number struct {
	Kind      Kind
	Int       *big.Int
	Rat       *big.Rat
	Precision int
}

// FromInt64 builds an exact Integer.
func FromInt64(v int64) Number {
	return Number{Kind: KindInteger, Int: big.NewInt(v)}
}

// FromBigInt builds an exact Integer from an owned big.Int.
func FromBigInt(v *big.Int) Number {
	return Number{Kind: KindInteger, Int: new(big.Int).Set(v)}
}

// NewRational builds a reduced Rational (or Integer, if it reduces to a
// whole number) from numerator/denominator.
func NewRational(num, den *big.Int) (Number, error) {
	if den.Sign() == 0 {
		return Number{}, fmt.Errorf("division by zero")
	}
	r := new(big.Rat).SetFrac(num, den)
	return reduceRational(r), nil
}

// NewReal builds a Real carrying the given precision from a ratio.
func NewReal(num, den *big.Int, precision int) (Number, error) {
	if den.Sign() == 0 {
		return Number{}, fmt.Errorf("division by zero")
	}
	if precision < 1 {
		precision = DefaultPrecision
	}
	r := new(big.Rat).SetFrac(num, den)
	return Number{Kind: KindReal, Rat: r, Precision: precision}, nil
}

// reduceRational normalizes a big.Rat to the tower's Rational
// representation, collapsing to Integer when the denominator is 1. Per
// spec invariant, big.Rat is always kept in lowest terms with a positive
// denominator, so no extra GCD step is needed beyond what big.Rat.SetFrac
// already performs.
func reduceRational(r *big.Rat) Number {
	if r.IsInt() {
		return Number{Kind: KindInteger, Int: new(big.Int).Set(r.Num())}
	}
	return Number{Kind: KindRational, Rat: r}
}

// AsRat returns the value as a big.Rat regardless of Kind, without losing
// precision.
func (n Number) AsRat() *big.Rat {
	switch n.Kind {
	case KindInteger:
		return new(big.Rat).SetInt(n.Int)
	default:
		return new(big.Rat).Set(n.Rat)
	}
}

// Sign reports the sign of the value: -1, 0, or 1.
func (n Number) Sign() int {
	if n.Kind == KindInteger {
		return n.Int.Sign()
	}
	return n.Rat.Sign()
}

// IsZero reports whether the value is exactly zero.
func (n Number) IsZero() bool { return n.Sign() == 0 }

// promote returns the common kind two operands must be raised to before
// an arithmetic operation, and the precision to carry if either is Real.
func promote(a, b Number) (Kind, int) {
	if a.Kind == KindReal || b.Kind == KindReal {
		p := a.Precision
		if b.Kind == KindReal && b.Precision > p {
			p = b.Precision
		}
		if p < 1 {
			p = DefaultPrecision
		}
		return KindReal, p
	}
	if a.Kind == KindRational || b.Kind == KindRational {
		return KindRational, 0
	}
	return KindInteger, 0
}

func fromRatAtKind(r *big.Rat, kind Kind, precision int) Number {
	switch kind {
	case KindReal:
		return Number{Kind: KindReal, Rat: new(big.Rat).Set(r), Precision: precision}
	case KindRational:
		return reduceRational(r)
	default:
		if !r.IsInt() {
			// Division of two integers always yields Rational per spec;
			// callers that want Integer-only ops must not reach here
			// with a non-integral result.
			return Number{Kind: KindRational, Rat: new(big.Rat).Set(r)}
		}
		return Number{Kind: KindInteger, Int: new(big.Int).Set(r.Num())}
	}
}

// Neg negates a numeric value.
func Neg(a Number) Number {
	if a.Kind == KindInteger {
		return Number{Kind: KindInteger, Int: new(big.Int).Neg(a.Int)}
	}
	return fromRatAtKind(new(big.Rat).Neg(a.Rat), a.Kind, a.Precision)
}

// Add adds two numeric values with promotion.
func Add(a, b Number) Number {
	kind, prec := promote(a, b)
	r := new(big.Rat).Add(a.AsRat(), b.AsRat())
	if kind == KindInteger {
		return Number{Kind: KindInteger, Int: new(big.Int).Add(a.Int, b.Int)}
	}
	return fromRatAtKind(r, kind, prec)
}

// Sub subtracts b from a with promotion.
func Sub(a, b Number) Number {
	kind, prec := promote(a, b)
	if kind == KindInteger {
		return Number{Kind: KindInteger, Int: new(big.Int).Sub(a.Int, b.Int)}
	}
	r := new(big.Rat).Sub(a.AsRat(), b.AsRat())
	return fromRatAtKind(r, kind, prec)
}

// Mul multiplies two numeric values with promotion.
func Mul(a, b Number) Number {
	kind, prec := promote(a, b)
	if kind == KindInteger {
		return Number{Kind: KindInteger, Int: new(big.Int).Mul(a.Int, b.Int)}
	}
	r := new(big.Rat).Mul(a.AsRat(), b.AsRat())
	return fromRatAtKind(r, kind, prec)
}

// Div divides a by b. Division of two integers always yields a Rational
// (spec §4.1); mixing with Real promotes to Real.
func Div(a, b Number) (Number, error) {
	if b.IsZero() {
		return Number{}, fmt.Errorf("division by zero")
	}
	kind, prec := promote(a, b)
	if kind == KindInteger {
		kind = KindRational
	}
	r := new(big.Rat).Quo(a.AsRat(), b.AsRat())
	return fromRatAtKind(r, kind, prec), nil
}

// truncToInt truncates a rational toward zero and returns the integer
// part as a big.Int.
func truncToInt(r *big.Rat) *big.Int {
	q := new(big.Int)
	q.Quo(r.Num(), r.Denom())
	return q
}

// Mod computes the truncating modulo of the integer parts of a and b,
// returning an Integer, or a Real with denominator 1 if either operand
// was Real (spec §4.1).
func Mod(a, b Number) (Number, error) {
	bi := truncToInt(b.AsRat())
	if bi.Sign() == 0 {
		return Number{}, fmt.Errorf("modulo by zero")
	}
	ai := truncToInt(a.AsRat())
	m := new(big.Int).Rem(ai, bi)
	return wrapTruncResult(m, a, b), nil
}

// IDiv computes the truncating integer quotient of the integer parts of a
// and b (spec §4.1, the "//" operator).
func IDiv(a, b Number) (Number, error) {
	bi := truncToInt(b.AsRat())
	if bi.Sign() == 0 {
		return Number{}, fmt.Errorf("division by zero")
	}
	ai := truncToInt(a.AsRat())
	q := new(big.Int).Quo(ai, bi)
	return wrapTruncResult(q, a, b), nil
}

func wrapTruncResult(v *big.Int, a, b Number) Number {
	if a.Kind == KindReal || b.Kind == KindReal {
		prec := a.Precision
		if b.Kind == KindReal && b.Precision > prec {
			prec = b.Precision
		}
		if prec < 1 {
			prec = DefaultPrecision
		}
		return Number{Kind: KindReal, Rat: new(big.Rat).SetInt(v), Precision: prec}
	}
	return Number{Kind: KindInteger, Int: v}
}

// maxExponent bounds Pow's exponent per spec §4.1 ("fits in 32 bits").
const maxExponent = 1<<31 - 1

// Pow raises a to the non-negative integer exponent exp (itself a
// Number, which must be an Integer in [0, maxExponent]).
func Pow(a, exp Number) (Number, error) {
	if exp.Kind != KindInteger {
		return Number{}, fmt.Errorf("exponent must be an integer")
	}
	if exp.Int.Sign() < 0 {
		return Number{}, fmt.Errorf("exponent must be non-negative")
	}
	if !exp.Int.IsInt64() || exp.Int.Int64() > maxExponent {
		return Number{}, fmt.Errorf("exponent too large")
	}
	n := exp.Int.Int64()

	if a.Kind == KindInteger {
		r := new(big.Int).Exp(a.Int, big.NewInt(n), nil)
		return Number{Kind: KindInteger, Int: r}, nil
	}

	num := new(big.Int).Exp(a.AsRat().Num(), big.NewInt(n), nil)
	den := new(big.Int).Exp(a.AsRat().Denom(), big.NewInt(n), nil)
	r := new(big.Rat).SetFrac(num, den)
	if a.Kind == KindReal {
		return Number{Kind: KindReal, Rat: r, Precision: a.Precision}, nil
	}
	return reduceRational(r), nil
}

// Cmp orders two numeric values (spec §9(c): precision is never consulted,
// comparison cross-multiplies numerators as exact integers).
func Cmp(a, b Number) int {
	if a.Kind == KindInteger && b.Kind == KindInteger {
		return a.Int.Cmp(b.Int)
	}
	return a.AsRat().Cmp(b.AsRat())
}

// Equal reports exact numeric equality across kinds.
func Equal(a, b Number) bool { return Cmp(a, b) == 0 }

// Num returns the numerator of a Rational/Real (or the Integer itself).
func (n Number) Num() *big.Int {
	if n.Kind == KindInteger {
		return new(big.Int).Set(n.Int)
	}
	return new(big.Int).Set(n.Rat.Num())
}

// Den returns the denominator of a Rational/Real (1 for Integer).
func (n Number) Den() *big.Int {
	if n.Kind == KindInteger {
		return big.NewInt(1)
	}
	return new(big.Int).Set(n.Rat.Denom())
}

// IntPart returns the truncated integer part of any numeric value.
func (n Number) IntPart() *big.Int {
	if n.Kind == KindInteger {
		return new(big.Int).Set(n.Int)
	}
	return truncToInt(n.Rat)
}

// FracPart returns the fractional remainder (value - IntPart) as a
// Rational/Real of the same kind.
func (n Number) FracPart() Number {
	if n.Kind == KindInteger {
		return Number{Kind: KindInteger, Int: big.NewInt(0)}
	}
	whole := new(big.Rat).SetInt(n.IntPart())
	frac := new(big.Rat).Sub(n.Rat, whole)
	if n.Kind == KindReal {
		return Number{Kind: KindReal, Rat: frac, Precision: n.Precision}
	}
	return reduceRational(frac)
}

// WithPrecision returns a Real promoted from n carrying precision p
// (spec §4.7 `real(x, p)`; spec §8 property 5).
func WithPrecision(n Number, p int) Number {
	if p < 1 {
		p = DefaultPrecision
	}
	return Number{Kind: KindReal, Rat: n.AsRat(), Precision: p}
}

// ToIntString formats an Integer for display. Panics if Kind is not
// KindInteger; callers must check Kind first (mirrors the per-kind
// to-string builtins of spec §4.7, which error on wrong kind instead).
func (n Number) ToIntString() string {
	return n.Int.String()
}

// ToRationalString formats a Rational as "num/den", or just "num" if the
// denominator is 1 (which canonically cannot happen per the reduction
// invariant, but is handled defensively for Integer values routed here).
func (n Number) ToRationalString() string {
	r := n.AsRat()
	if r.IsInt() {
		return r.Num().String()
	}
	return fmt.Sprintf("%s/%s", r.Num().String(), r.Denom().String())
}
