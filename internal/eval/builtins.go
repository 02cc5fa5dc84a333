package eval

import (
	"unicode/utf8"

	"lumen/internal/env"
	"lumen/internal/errors"
	"lumen/internal/instr"
	"lumen/internal/numeric"
	"lumen/internal/value"
)

// execPush implements push(array_name, v) (spec §4.7): the first argument
// must be a bare variable reference, evaluated specially so the array can
// be mutated in place rather than by copy.
func (ev *Evaluator) execPush(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	if len(ins.Args) != 2 {
		return value.Value{}, Normal, errors.At(errors.ArityError, ins.Pos, "push expects 2 arguments, got %d", len(ins.Args))
	}
	if ins.Args[0].Kind != instr.KindVariable {
		return value.Value{}, Normal, errors.At(errors.TypeError, ins.Pos, "push's first argument must be a variable")
	}
	v, flow, err := ev.Execute(ins.Args[1], e)
	if err != nil || flow != Normal {
		return v, flow, err
	}
	if err := e.PushToArray(ins.Args[0].VarName, v); err != nil {
		return value.Value{}, Normal, err
	}
	return value.None(), Normal, nil
}

// callBuiltin dispatches one of the fixed built-in functions (spec §4.7's
// table). The bool result reports whether ins.Function named a builtin at
// all; a caller that gets false should fall through to user-function
// lookup.
func (ev *Evaluator) callBuiltin(ins instr.Instruction, args []value.Value, e *env.Environment) (value.Value, bool, error) {
	switch ins.Function {
	case "emit":
		return ev.builtinEmit(ins, args)
	case "real":
		return ev.builtinReal(ins, args)
	case "len":
		return ev.builtinLen(ins, args)
	case "char_at":
		return ev.builtinCharAt(ins, args)
	case "ord":
		return ev.builtinOrd(ins, args)
	case "chr":
		return ev.builtinChr(ins, args)
	case "kind":
		return ev.builtinKind(ins, args)
	case "num":
		return ev.builtinNum(ins, args)
	case "den":
		return ev.builtinDen(ins, args)
	case "int":
		return ev.builtinInt(ins, args)
	case "frac":
		return ev.builtinFrac(ins, args)
	case "int_to_string":
		return stringConverter(ins, args, value.KindInteger)
	case "real_to_string":
		return stringConverter(ins, args, value.KindReal)
	case "rational_to_string":
		return stringConverter(ins, args, value.KindRational)
	case "bool_to_string":
		return stringConverter(ins, args, value.KindBoolean)
	case "array_to_string":
		return stringConverter(ins, args, value.KindArray)
	case "none_to_string":
		return stringConverter(ins, args, value.KindNone)
	case "kind_to_string":
		return stringConverter(ins, args, value.KindKind)
	case "extern":
		return ev.builtinExtern(ins, args)
	case "__construct_array":
		return value.Array(append([]value.Value{}, args...)), true, nil
	}
	return value.Value{}, false, nil
}

func arityError(ins instr.Instruction, want, got int) error {
	return errors.At(errors.ArityError, ins.Pos, "%s expects %d argument(s), got %d", ins.Function, want, got)
}

func (ev *Evaluator) builtinEmit(ins instr.Instruction, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 {
		return value.Value{}, true, arityError(ins, 1, len(args))
	}
	if args[0].Tag != value.KindString {
		return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "emit requires a string argument")
	}
	_, err := ev.Stdout.Write([]byte(args[0].Str))
	return value.None(), true, err
}

func (ev *Evaluator) builtinReal(ins instr.Instruction, args []value.Value) (value.Value, bool, error) {
	if len(args) < 1 || len(args) > 2 {
		return value.Value{}, true, arityError(ins, 1, len(args))
	}
	if !isNumericValue(args[0]) {
		return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "real requires a numeric argument")
	}
	precision := numeric.DefaultPrecision
	if len(args) == 2 {
		if args[1].Tag != value.KindInteger {
			return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "real's precision argument must be an integer")
		}
		precision = int(args[1].Num.IntPart().Int64())
	}
	return value.Real(numeric.WithPrecision(args[0].Num, precision)), true, nil
}

func (ev *Evaluator) builtinLen(ins instr.Instruction, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 {
		return value.Value{}, true, arityError(ins, 1, len(args))
	}
	switch args[0].Tag {
	case value.KindString:
		return value.Int(numeric.FromInt64(int64(utf8.RuneCountInString(args[0].Str)))), true, nil
	case value.KindArray:
		return value.Int(numeric.FromInt64(int64(len(args[0].Items)))), true, nil
	}
	return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "len requires a String or Array")
}

func (ev *Evaluator) builtinCharAt(ins instr.Instruction, args []value.Value) (value.Value, bool, error) {
	if len(args) != 2 {
		return value.Value{}, true, arityError(ins, 2, len(args))
	}
	if args[0].Tag != value.KindString || args[1].Tag != value.KindInteger {
		return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "char_at requires (String, Integer)")
	}
	i := args[1].Num.IntPart().Int64()
	runes := []rune(args[0].Str)
	if i < 0 || i >= int64(len(runes)) {
		return value.None(), true, nil
	}
	return value.Str(string(runes[i])), true, nil
}

func (ev *Evaluator) builtinOrd(ins instr.Instruction, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 || args[0].Tag != value.KindString {
		return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "ord requires a single-character String")
	}
	r, _ := utf8.DecodeRuneInString(args[0].Str)
	if r == utf8.RuneError {
		return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "ord requires a non-empty String")
	}
	return value.Int(numeric.FromInt64(int64(r))), true, nil
}

func (ev *Evaluator) builtinChr(ins instr.Instruction, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 || args[0].Tag != value.KindInteger {
		return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "chr requires an Integer")
	}
	return value.Str(string(rune(args[0].Num.IntPart().Int64()))), true, nil
}

func (ev *Evaluator) builtinKind(ins instr.Instruction, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 {
		return value.Value{}, true, arityError(ins, 1, len(args))
	}
	return value.KindVal(args[0].Tag), true, nil
}

func (ev *Evaluator) builtinNum(ins instr.Instruction, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 || args[0].Tag != value.KindRational {
		return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "num requires a Rational")
	}
	return value.Int(numeric.FromBigInt(args[0].Num.Num())), true, nil
}

func (ev *Evaluator) builtinDen(ins instr.Instruction, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 || args[0].Tag != value.KindRational {
		return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "den requires a Rational")
	}
	return value.Int(numeric.FromBigInt(args[0].Num.Den())), true, nil
}

func (ev *Evaluator) builtinInt(ins instr.Instruction, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 || args[0].Tag != value.KindReal {
		return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "int requires a Real")
	}
	return value.Int(numeric.FromBigInt(args[0].Num.IntPart())), true, nil
}

func (ev *Evaluator) builtinFrac(ins instr.Instruction, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 || args[0].Tag != value.KindReal {
		return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "frac requires a Real")
	}
	return value.Real(args[0].Num.FracPart()), true, nil
}

// stringConverter implements the mechanical per-kind *_to_string builtins
// (spec §4.7), erroring when the argument's kind doesn't match.
func stringConverter(ins instr.Instruction, args []value.Value, want value.Kind) (value.Value, bool, error) {
	if len(args) != 1 {
		return value.Value{}, true, arityError(ins, 1, len(args))
	}
	if args[0].Tag != want {
		return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "%s requires a %s argument, got %s", ins.Function, want, args[0].Tag)
	}
	return value.Str(args[0].Display()), true, nil
}

func (ev *Evaluator) builtinExtern(ins instr.Instruction, args []value.Value) (value.Value, bool, error) {
	if len(args) < 1 || args[0].Tag != value.KindSymbol {
		return value.Value{}, true, errors.At(errors.TypeError, ins.Pos, "extern requires a selector symbol")
	}
	selector := args[0].Str
	key, ok := ev.resolveExternKey(selector)
	if !ok {
		return value.Value{}, true, errors.At(errors.CapabilityError, ins.Pos, "unknown extern selector %q", selector)
	}
	shim := ev.Externs[key]
	v, err := shim(args[1:])
	if err != nil {
		return value.Value{}, true, errors.At(errors.CapabilityError, ins.Pos, "%s", err.Error())
	}
	return v, true, nil
}
