// Package langs wires the shared lexer/normalizer/parser/registry core
// to concrete language schemas (spec §3's supplemented "three concrete
// language schemas": lumen, python-core, rust-core).
package langs

// Precedence levels shared by all three schemas (spec §4.4's low-to-high
// operator list). Concrete schemas omit the levels their grammar doesn't
// use (e.g. rust-core has no pipe or dot-concat).
const (
	PrecPipe     = 10
	PrecOr       = 20
	PrecAnd      = 30
	PrecCompare  = 40
	PrecRange    = 50
	PrecAdditive = 60
	PrecMultiply = 70
	PrecExponent = 80
	PrecUnary    = 90
	PrecDot      = 100
	PrecPostfix  = 110
)
