// Package eval walks the Instruction tree against an Environment (spec
// §4.7): `execute(instruction, env) -> (Value, ControlFlow)`.
//
// Grounded on the teacher's internal/ir tree-walking shape (a single big
// switch over a node's tag, dispatching to one function per case) and
// original_source/src_microcode/eval/mod.rs's flow-propagation rules,
// generalized here from Kanso's static IR evaluation to a dynamic runtime
// interpreter over instr.Instruction.
package eval

import (
	"io"

	"lumen/internal/env"
	"lumen/internal/errors"
	"lumen/internal/instr"
	"lumen/internal/numeric"
	"lumen/internal/value"
)

// ControlFlow is the non-local signal propagated up from execute (spec
// §4.7).
type ControlFlow int

const (
	Normal ControlFlow = iota
	BreakFlow
	ContinueFlow
	ReturnFlow
)

// ExternFunc is a host capability shim (spec §4.8): takes the evaluated
// argument list, returns a Value or a CapabilityError.
type ExternFunc func(args []value.Value) (value.Value, error)

// Evaluator carries the host-owned side channels the core touches:
// the stdout sink and the external-function side table (spec §4.8,
// §5: "no global mutable state other than the host's stdout sink and
// the external-function registry").
type Evaluator struct {
	Stdout   io.Writer
	Externs  map[string]ExternFunc
	MaxDepth int

	depth int
}

// New builds an Evaluator. maxDepth <= 0 disables the call-depth guard.
func New(stdout io.Writer, externs map[string]ExternFunc, maxDepth int) *Evaluator {
	if externs == nil {
		externs = map[string]ExternFunc{}
	}
	return &Evaluator{Stdout: stdout, Externs: externs, MaxDepth: maxDepth}
}

// Execute walks one Instruction node against e, returning its value, the
// control-flow signal it produced, and any error.
func (ev *Evaluator) Execute(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	switch ins.Kind {
	case instr.KindSequence:
		return ev.execSequence(ins, e)
	case instr.KindScope:
		return ev.execScope(ins, e)
	case instr.KindBranch:
		return ev.execBranch(ins, e)
	case instr.KindLoop:
		return ev.execLoop(ins, e)
	case instr.KindUntilLoop:
		return ev.execUntilLoop(ins, e)
	case instr.KindForLoop:
		return ev.execForLoop(ins, e)
	case instr.KindAssign:
		return ev.execAssign(ins, e)
	case instr.KindIndexedAssign:
		return ev.execIndexedAssign(ins, e)
	case instr.KindInvoke:
		return ev.execInvoke(ins, e)
	case instr.KindOperate:
		return ev.execOperate(ins, e)
	case instr.KindTransfer:
		return ev.execTransfer(ins, e)
	case instr.KindFunctionDef:
		e.DefineFunction(ins.Name, ins.Params, *ins.Body, true)
		return value.None(), Normal, nil
	case instr.KindLiteral:
		return ins.Lit, Normal, nil
	case instr.KindVariable:
		v, ok := e.Get(ins.VarName)
		if !ok {
			return value.Value{}, Normal, errors.At(errors.NameError, ins.Pos, "undefined variable %q", ins.VarName)
		}
		return v, Normal, nil
	}
	return value.Value{}, Normal, errors.At(errors.ParseError, ins.Pos, "unhandled instruction kind %q", ins.Kind)
}

func (ev *Evaluator) execSequence(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	result := value.None()
	for _, child := range ins.Children {
		v, flow, err := ev.Execute(child, e)
		if err != nil {
			return value.Value{}, Normal, err
		}
		result = v
		if flow != Normal {
			return v, flow, nil
		}
	}
	return result, Normal, nil
}

func (ev *Evaluator) execScope(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	e.PushScope()
	defer e.PopScope()
	return ev.Execute(*ins.Child, e)
}

func (ev *Evaluator) execBranch(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	cond, flow, err := ev.Execute(*ins.Cond, e)
	if err != nil || flow != Normal {
		return cond, flow, err
	}
	if cond.IsTruthy() {
		return ev.Execute(*ins.Then, e)
	}
	if ins.Else != nil {
		return ev.Execute(*ins.Else, e)
	}
	return value.None(), Normal, nil
}

func (ev *Evaluator) execLoop(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	result := value.None()
	for {
		cond, flow, err := ev.Execute(*ins.Cond, e)
		if err != nil || flow != Normal {
			return cond, flow, err
		}
		if !cond.IsTruthy() {
			return result, Normal, nil
		}
		v, flow, err := ev.Execute(*ins.Body, e)
		if err != nil {
			return value.Value{}, Normal, err
		}
		switch flow {
		case BreakFlow:
			return result, Normal, nil
		case ReturnFlow:
			return v, flow, nil
		case ContinueFlow:
		}
		result = v
	}
}

func (ev *Evaluator) execUntilLoop(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	result := value.None()
	for {
		v, flow, err := ev.Execute(*ins.Body, e)
		if err != nil {
			return value.Value{}, Normal, err
		}
		switch flow {
		case BreakFlow:
			return result, Normal, nil
		case ReturnFlow:
			return v, flow, nil
		}
		result = v
		cond, flow, err := ev.Execute(*ins.Cond, e)
		if err != nil || flow != Normal {
			return cond, flow, err
		}
		if cond.IsTruthy() {
			return result, Normal, nil
		}
	}
}

func (ev *Evaluator) execForLoop(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	iter, flow, err := ev.Execute(*ins.Iterable, e)
	if err != nil || flow != Normal {
		return iter, flow, err
	}
	if iter.Tag != value.KindRange {
		return value.Value{}, Normal, errors.At(errors.TypeError, ins.Pos, "for loop requires a Range, got %s", iter.Tag)
	}
	result := value.None()
	for i := iter.Range.Start; i < iter.Range.End; i++ {
		if ins.FreshPerIter {
			e.PushScope()
		}
		e.Define(ins.LoopVar, value.Int(numeric.FromInt64(i)))
		v, flow, err := ev.Execute(*ins.Body, e)
		if ins.FreshPerIter {
			e.PopScope()
		}
		if err != nil {
			return value.Value{}, Normal, err
		}
		switch flow {
		case BreakFlow:
			return result, Normal, nil
		case ReturnFlow:
			return v, flow, nil
		case ContinueFlow:
			continue
		}
		result = v
	}
	return result, Normal, nil
}

func (ev *Evaluator) execAssign(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	if ins.Name == "MEMOIZATION" {
		v, flow, err := ev.Execute(*ins.Value, e)
		if err != nil || flow != Normal {
			return v, flow, err
		}
		if v.Tag != value.KindBoolean {
			return value.Value{}, Normal, errors.At(errors.TypeError, ins.Pos, "MEMOIZATION requires a boolean, got %s", v.Tag)
		}
		e.SetMemoEnabled(v.Bool)
		return value.None(), Normal, nil
	}
	if ins.Name == "ARGS" {
		return value.Value{}, Normal, errors.At(errors.ReservedNameError, ins.Pos, "ARGS is read-only")
	}
	v, flow, err := ev.Execute(*ins.Value, e)
	if err != nil || flow != Normal {
		return v, flow, err
	}
	if ins.Mode == instr.AssignDefine {
		e.Define(ins.Name, v)
	} else {
		e.Assign(ins.Name, v)
	}
	return v, Normal, nil
}

func (ev *Evaluator) execIndexedAssign(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	if ins.Name == "ARGS" {
		return value.Value{}, Normal, errors.At(errors.ReservedNameError, ins.Pos, "ARGS is read-only")
	}
	idx, flow, err := ev.Execute(*ins.Index, e)
	if err != nil || flow != Normal {
		return idx, flow, err
	}
	if idx.Tag != value.KindInteger {
		return value.Value{}, Normal, errors.At(errors.TypeError, ins.Pos, "array index must be an integer")
	}
	v, flow, err := ev.Execute(*ins.Value, e)
	if err != nil || flow != Normal {
		return v, flow, err
	}
	if err := e.MutateArray(ins.Name, idx.Num.IntPart().Int64(), v); err != nil {
		return value.Value{}, Normal, err
	}
	return v, Normal, nil
}

func (ev *Evaluator) execTransfer(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	if ins.XferVal == nil {
		var flow ControlFlow
		switch ins.XferKind {
		case instr.TransferBreak:
			flow = BreakFlow
		case instr.TransferContinue:
			flow = ContinueFlow
		case instr.TransferReturn:
			flow = ReturnFlow
		}
		return value.None(), flow, nil
	}
	v, flow, err := ev.Execute(*ins.XferVal, e)
	if err != nil || flow != Normal {
		return v, flow, err
	}
	switch ins.XferKind {
	case instr.TransferBreak:
		return v, BreakFlow, nil
	case instr.TransferContinue:
		return v, ContinueFlow, nil
	default:
		return v, ReturnFlow, nil
	}
}

func (ev *Evaluator) execInvoke(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	if ins.Function == "push" {
		return ev.execPush(ins, e)
	}

	args := make([]value.Value, 0, len(ins.Args))
	for _, a := range ins.Args {
		v, flow, err := ev.Execute(a, e)
		if err != nil || flow != Normal {
			return v, flow, err
		}
		args = append(args, v)
	}

	if v, ok, err := ev.callBuiltin(ins, args, e); ok {
		return v, Normal, err
	}

	fn, ok := e.LookupFunction(ins.Function)
	if !ok {
		return value.Value{}, Normal, errors.At(errors.NameError, ins.Pos, "undefined function %q", ins.Function)
	}
	if len(args) != len(fn.Params) {
		return value.Value{}, Normal, errors.At(errors.ArityError, ins.Pos, "%s expects %d argument(s), got %d", ins.Function, len(fn.Params), len(args))
	}

	memoGateOpen := e.MemoEnabled() && fn.Memoizable
	fingerprint := ""
	if memoGateOpen {
		fingerprint = env.Fingerprint(args)
		if cached, ok := e.GetCached(ins.Function, fingerprint); ok {
			return cached, Normal, nil
		}
	}

	if ev.MaxDepth > 0 && ev.depth >= ev.MaxDepth {
		return value.Value{}, Normal, errors.At(errors.StackOverflowError, ins.Pos, "call stack exceeded depth %d", ev.MaxDepth)
	}
	ev.depth++
	e.PushScope()
	e.PushMemoState(e.MemoEnabled())
	for i, p := range fn.Params {
		e.Define(p, args[i])
	}
	result, flow, err := ev.Execute(fn.Body, e)
	e.PopMemoState()
	e.PopScope()
	ev.depth--
	if err != nil {
		return value.Value{}, Normal, err
	}
	if flow != ReturnFlow && flow != Normal {
		return value.Value{}, Normal, errors.At(errors.ParseError, ins.Pos, "break/continue escaped function %q", ins.Function)
	}

	if memoGateOpen {
		e.CacheResult(ins.Function, fingerprint, result)
	}
	return result, Normal, nil
}

func (ev *Evaluator) execOperate(ins instr.Instruction, e *env.Environment) (value.Value, ControlFlow, error) {
	if ins.OpKind == instr.OperateBinary {
		switch ins.Op {
		case "and", "&&":
			return ev.shortCircuit(ins, e, false)
		case "or", "||":
			return ev.shortCircuit(ins, e, true)
		}
	}

	operands := make([]value.Value, 0, len(ins.Operands))
	for _, o := range ins.Operands {
		v, flow, err := ev.Execute(o, e)
		if err != nil || flow != Normal {
			return v, flow, err
		}
		operands = append(operands, v)
	}

	if ins.OpKind == instr.OperateUnary {
		v, err := applyUnary(ins.Op, operands[0], ins)
		return v, Normal, err
	}
	v, err := applyBinary(ins.Op, operands[0], operands[1], ins)
	return v, Normal, err
}

// shortCircuit implements and/or without evaluating the right operand
// when the left already determines the result (spec §4.4/§8 property 6).
func (ev *Evaluator) shortCircuit(ins instr.Instruction, e *env.Environment, shortOn bool) (value.Value, ControlFlow, error) {
	left, flow, err := ev.Execute(ins.Operands[0], e)
	if err != nil || flow != Normal {
		return left, flow, err
	}
	if left.IsTruthy() == shortOn {
		return value.Bool(shortOn), Normal, nil
	}
	right, flow, err := ev.Execute(ins.Operands[1], e)
	if err != nil || flow != Normal {
		return right, flow, err
	}
	return value.Bool(right.IsTruthy()), Normal, nil
}

func applyUnary(op string, v value.Value, ins instr.Instruction) (value.Value, error) {
	switch op {
	case "-":
		if !isNumericValue(v) {
			return value.Value{}, errors.At(errors.TypeError, ins.Pos, "unary - requires a number, got %s", v.Tag)
		}
		return value.Numeric(numeric.Neg(v.Num)), nil
	case "not", "!":
		return value.Bool(!v.IsTruthy()), nil
	}
	return value.Value{}, errors.At(errors.ParseError, ins.Pos, "unknown unary operator %q", op)
}

func applyBinary(op string, l, r value.Value, ins instr.Instruction) (value.Value, error) {
	switch op {
	case "+":
		if l.Tag == value.KindString || r.Tag == value.KindString {
			return value.Str(l.Display() + r.Display()), nil
		}
		return numericBinary(numeric.Add, l, r, ins)
	case ".":
		return value.Str(l.Display() + r.Display()), nil
	case "-":
		return numericBinary(numeric.Sub, l, r, ins)
	case "*":
		return numericBinary(numeric.Mul, l, r, ins)
	case "/":
		return numericBinaryErr(numeric.Div, l, r, ins)
	case "%":
		return numericBinaryErr(numeric.Mod, l, r, ins)
	case "//":
		return numericBinaryErr(numeric.IDiv, l, r, ins)
	case "**":
		return numericBinaryErr(numeric.Pow, l, r, ins)
	case "..":
		if l.Tag != value.KindInteger || r.Tag != value.KindInteger {
			return value.Value{}, errors.At(errors.TypeError, ins.Pos, "range bounds must be integers")
		}
		return value.RangeVal(l.Num.IntPart().Int64(), r.Num.IntPart().Int64()), nil
	case "[]":
		return indexValue(l, r, ins)
	case "==":
		return value.Bool(value.Eq(l, r)), nil
	case "!=":
		return value.Bool(!value.Eq(l, r)), nil
	case "<", ">", "<=", ">=":
		return compare(op, l, r, ins)
	}
	return value.Value{}, errors.At(errors.ParseError, ins.Pos, "unknown binary operator %q", op)
}

func isNumericValue(v value.Value) bool {
	switch v.Tag {
	case value.KindInteger, value.KindRational, value.KindReal:
		return true
	}
	return false
}

func numericBinary(f func(a, b numeric.Number) numeric.Number, l, r value.Value, ins instr.Instruction) (value.Value, error) {
	if !isNumericValue(l) || !isNumericValue(r) {
		return value.Value{}, errors.At(errors.TypeError, ins.Pos, "operator %q requires numbers, got %s and %s", ins.Op, l.Tag, r.Tag)
	}
	return value.Numeric(f(l.Num, r.Num)), nil
}

func numericBinaryErr(f func(a, b numeric.Number) (numeric.Number, error), l, r value.Value, ins instr.Instruction) (value.Value, error) {
	if !isNumericValue(l) || !isNumericValue(r) {
		return value.Value{}, errors.At(errors.TypeError, ins.Pos, "operator %q requires numbers, got %s and %s", ins.Op, l.Tag, r.Tag)
	}
	n, err := f(l.Num, r.Num)
	if err != nil {
		return value.Value{}, errors.At(errors.ArithmeticError, ins.Pos, "%s", err.Error())
	}
	return value.Numeric(n), nil
}

func indexValue(l, idx value.Value, ins instr.Instruction) (value.Value, error) {
	if l.Tag != value.KindArray {
		return value.Value{}, errors.At(errors.TypeError, ins.Pos, "cannot index non-array %s", l.Tag)
	}
	if idx.Tag != value.KindInteger {
		return value.Value{}, errors.At(errors.TypeError, ins.Pos, "array index must be an integer")
	}
	i := idx.Num.IntPart().Int64()
	if i < 0 || i >= int64(len(l.Items)) {
		return value.Value{}, errors.At(errors.IndexError, ins.Pos, "index %d out of range for array of length %d", i, len(l.Items))
	}
	return l.Items[i], nil
}

func compare(op string, l, r value.Value, ins instr.Instruction) (value.Value, error) {
	var cmp int
	switch {
	case isNumericValue(l) && isNumericValue(r):
		cmp = numeric.Cmp(l.Num, r.Num)
	case l.Tag == value.KindString && r.Tag == value.KindString:
		cmp = stringCmp(l.Str, r.Str)
	default:
		return value.Value{}, errors.At(errors.TypeError, ins.Pos, "cannot compare %s and %s", l.Tag, r.Tag)
	}
	switch op {
	case "<":
		return value.Bool(cmp < 0), nil
	case ">":
		return value.Bool(cmp > 0), nil
	case "<=":
		return value.Bool(cmp <= 0), nil
	default:
		return value.Bool(cmp >= 0), nil
	}
}

func stringCmp(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
