package numeric

import (
	"fmt"
	"math/big"
	"strings"
)

// digitValue returns the value of a base-N digit character (0-9a-zA-Z),
// or -1 if ch is not a digit character at all.
func digitValue(ch byte) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'z':
		return int(ch-'a') + 10
	case ch >= 'A' && ch <= 'Z':
		return int(ch-'A') + 10
	default:
		return -1
	}
}

// ParseBaseN parses a `base@digits[.frac][^exp]` literal exactly, per
// spec §4.1: base in [2,36], digits 0-35 valued as 0-9a-zA-Z, base must
// exceed every digit's value, exponent is interpreted in the same base
// and must be non-negative. A fractional part promotes the result to
// Real with precision = max(DefaultPrecision, significant-digit count).
func ParseBaseN(base int, intPart, fracPart, expPart string) (Number, error) {
	if base < 2 || base > 36 {
		return Number{}, fmt.Errorf("base out of range: %d", base)
	}
	bigBase := big.NewInt(int64(base))

	foldDigits := func(s string) (*big.Int, error) {
		acc := big.NewInt(0)
		for i := 0; i < len(s); i++ {
			d := digitValue(s[i])
			if d < 0 || d >= base {
				return nil, fmt.Errorf("invalid digit %q for base %d", s[i], base)
			}
			acc.Mul(acc, bigBase)
			acc.Add(acc, big.NewInt(int64(d)))
		}
		return acc, nil
	}

	intVal, err := foldDigits(intPart)
	if err != nil {
		return Number{}, err
	}

	var expVal *big.Int
	if expPart != "" {
		expVal, err = foldDigits(expPart)
		if err != nil {
			return Number{}, err
		}
		if expVal.Sign() < 0 {
			return Number{}, fmt.Errorf("exponent must be non-negative")
		}
	}

	if fracPart == "" {
		result := intVal
		if expVal != nil {
			if !expVal.IsInt64() {
				return Number{}, fmt.Errorf("exponent too large")
			}
			scale := new(big.Int).Exp(bigBase, expVal, nil)
			result = new(big.Int).Mul(intVal, scale)
		}
		return Number{Kind: KindInteger, Int: result}, nil
	}

	fracVal, err := foldDigits(fracPart)
	if err != nil {
		return Number{}, err
	}
	fracLen := big.NewInt(int64(len(fracPart)))
	fracDen := new(big.Int).Exp(bigBase, fracLen, nil)

	num := new(big.Int).Mul(intVal, fracDen)
	num.Add(num, fracVal)
	den := fracDen

	if expVal != nil {
		if !expVal.IsInt64() {
			return Number{}, fmt.Errorf("exponent too large")
		}
		scale := new(big.Int).Exp(bigBase, expVal, nil)
		num.Mul(num, scale)
	}

	sigDigits := len(strings.TrimLeft(intPart, "0")) + len(fracPart)
	precision := DefaultPrecision
	if sigDigits > precision {
		precision = sigDigits
	}

	return NewReal(num, den, precision)
}

// ParseDecimal parses an `int.frac` decimal literal exactly, per spec
// §4.1: the result is Real{num = int*10^|frac| + frac, den = 10^|frac|,
// precision = max(DefaultPrecision, significant-digit count)}.
func ParseDecimal(intPart, fracPart string) (Number, error) {
	intVal, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return Number{}, fmt.Errorf("invalid integer part %q", intPart)
	}
	if fracPart == "" {
		return Number{Kind: KindInteger, Int: intVal}, nil
	}
	fracVal, ok := new(big.Int).SetString(fracPart, 10)
	if !ok {
		return Number{}, fmt.Errorf("invalid fractional part %q", fracPart)
	}

	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(fracPart))), nil)
	num := new(big.Int).Mul(intVal, den)
	if intVal.Sign() < 0 {
		num.Sub(num, fracVal)
	} else {
		num.Add(num, fracVal)
	}

	sigDigits := len(strings.TrimLeft(strings.TrimPrefix(intPart, "-"), "0")) + len(fracPart)
	precision := DefaultPrecision
	if sigDigits > precision {
		precision = sigDigits
	}

	return NewReal(num, den, precision)
}

// RenderReal produces the decimal rendering of a Real per spec §4.1/§9(b):
// integer part, then up to (precision - digits(int_part)) fractional
// digits by truncating long division, never rounding. A zero integer
// part counts as no digits, so 1/3 at precision 5 renders "0.33333". A
// purely integral real prints without a fractional part.
func RenderReal(n Number) string {
	if n.Kind != KindReal {
		panic("RenderReal: not a Real value")
	}
	r := n.Rat
	neg := r.Sign() < 0
	absNum := new(big.Int).Abs(r.Num())
	den := new(big.Int).Abs(r.Denom())

	intPart := new(big.Int)
	rem := new(big.Int)
	intPart.QuoRem(absNum, den, rem)

	intDigits := 0
	if intPart.Sign() != 0 {
		intDigits = len(intPart.String())
	}
	fracDigits := n.Precision - intDigits
	if fracDigits < 0 {
		fracDigits = 0
	}

	var b strings.Builder
	if neg && (intPart.Sign() != 0 || rem.Sign() != 0) {
		b.WriteByte('-')
	}
	b.WriteString(intPart.String())

	if rem.Sign() == 0 || fracDigits == 0 {
		return b.String()
	}

	b.WriteByte('.')
	ten := big.NewInt(10)
	for i := 0; i < fracDigits; i++ {
		rem.Mul(rem, ten)
		digit := new(big.Int)
		digit.QuoRem(rem, den, rem)
		b.WriteString(digit.String())
		if rem.Sign() == 0 {
			break
		}
	}
	return b.String()
}
