// Package instr defines the Instruction tagged-variant tree: the sole
// contract between the parser and the evaluator (spec §3). It follows the
// teacher's closed-tag AST idiom (a Kind enum plus a struct carrying every
// variant's fields, each annotated with the fields it actually uses)
// generalized from Move/EVM contract nodes to the kernel's instruction set.
package instr

import (
	"lumen/internal/value"
	"lumen/token"
)

// Kind tags which Instruction variant a node represents.
type Kind string

const (
	KindSequence      Kind = "SEQUENCE"
	KindScope         Kind = "SCOPE"
	KindBranch        Kind = "BRANCH"
	KindLoop          Kind = "LOOP"
	KindUntilLoop     Kind = "UNTIL_LOOP"
	KindForLoop       Kind = "FOR_LOOP"
	KindAssign        Kind = "ASSIGN"
	KindIndexedAssign Kind = "INDEXED_ASSIGN"
	KindInvoke        Kind = "INVOKE"
	KindOperate       Kind = "OPERATE"
	KindTransfer      Kind = "TRANSFER"
	KindFunctionDef   Kind = "FUNCTION_DEF"
	KindLiteral       Kind = "LITERAL"
	KindVariable      Kind = "VARIABLE"
)

// OperateKind distinguishes unary from binary operator application.
type OperateKind string

const (
	OperateUnary  OperateKind = "UNARY"
	OperateBinary OperateKind = "BINARY"
)

// TransferKind distinguishes the three non-local control-flow signals.
type TransferKind string

const (
	TransferReturn   TransferKind = "RETURN"
	TransferBreak    TransferKind = "BREAK"
	TransferContinue TransferKind = "CONTINUE"
)

// AssignMode distinguishes a binding statement's keyword (spec §4.7):
// let/var define fresh in the current frame; bare `name = ...` updates an
// existing binding, defining it if absent.
type AssignMode string

const (
	AssignDefine AssignMode = "DEFINE"
	AssignUpdate AssignMode = "UPDATE"
)

// Instruction is a single node of the parsed program tree. Exactly one
// field group is meaningful per Kind; this mirrors the teacher's node
// struct (a tag plus every variant's payload) rather than a Go interface
// hierarchy, since the evaluator must switch on Kind at every step anyway.
type Instruction struct {
	Kind Kind
	Pos  token.Position

	// Sequence
	Children []Instruction

	// Scope
	Child *Instruction

	// Branch
	Cond *Instruction
	Then *Instruction
	Else *Instruction

	// Loop / UntilLoop share Cond/Then(body); ForLoop:
	LoopVar      string
	Iterable     *Instruction
	Body         *Instruction
	FreshPerIter bool

	// Assign / IndexedAssign
	Name   string
	Index  *Instruction
	Value  *Instruction
	Mode   AssignMode
	Mut    bool

	// Invoke
	Function string
	Args     []Instruction

	// Operate
	OpKind   OperateKind
	Op       string
	Operands []Instruction

	// Transfer
	XferKind TransferKind
	XferVal  *Instruction

	// FunctionDef
	Params      []string
	Memoizable  bool

	// Literal
	Lit value.Value

	// Variable
	VarName string
}

func at(pos token.Position, kind Kind) Instruction {
	return Instruction{Kind: kind, Pos: pos}
}

// Sequence constructs a Sequence node.
func Sequence(pos token.Position, children []Instruction) Instruction {
	n := at(pos, KindSequence)
	n.Children = children
	return n
}

// Scope constructs a Scope node wrapping child in a fresh lexical frame.
func Scope(pos token.Position, child Instruction) Instruction {
	n := at(pos, KindScope)
	n.Child = &child
	return n
}

// Branch constructs a conditional node; els may be nil.
func Branch(pos token.Position, cond, then Instruction, els *Instruction) Instruction {
	n := at(pos, KindBranch)
	n.Cond = &cond
	n.Then = &then
	n.Else = els
	return n
}

// Loop constructs a pre-test while node.
func Loop(pos token.Position, cond, body Instruction) Instruction {
	n := at(pos, KindLoop)
	n.Cond = &cond
	n.Body = &body
	return n
}

// UntilLoop constructs a post-test do-until node.
func UntilLoop(pos token.Position, cond, body Instruction) Instruction {
	n := at(pos, KindUntilLoop)
	n.Cond = &cond
	n.Body = &body
	return n
}

// ForLoop constructs a ranged iteration node.
func ForLoop(pos token.Position, varName string, iterable, body Instruction, freshPerIter bool) Instruction {
	n := at(pos, KindForLoop)
	n.LoopVar = varName
	n.Iterable = &iterable
	n.Body = &body
	n.FreshPerIter = freshPerIter
	return n
}

// Assign constructs a simple-name binding node.
func Assign(pos token.Position, name string, val Instruction, mode AssignMode, mut bool) Instruction {
	n := at(pos, KindAssign)
	n.Name = name
	n.Value = &val
	n.Mode = mode
	n.Mut = mut
	return n
}

// IndexedAssign constructs an array-element mutation node.
func IndexedAssign(pos token.Position, name string, index, val Instruction) Instruction {
	n := at(pos, KindIndexedAssign)
	n.Name = name
	n.Index = &index
	n.Value = &val
	return n
}

// Invoke constructs a call-by-name node.
func Invoke(pos token.Position, function string, args []Instruction) Instruction {
	n := at(pos, KindInvoke)
	n.Function = function
	n.Args = args
	return n
}

// UnaryOp constructs a unary operator application.
func UnaryOp(pos token.Position, op string, operand Instruction) Instruction {
	n := at(pos, KindOperate)
	n.OpKind = OperateUnary
	n.Op = op
	n.Operands = []Instruction{operand}
	return n
}

// BinaryOp constructs a binary operator application.
func BinaryOp(pos token.Position, op string, left, right Instruction) Instruction {
	n := at(pos, KindOperate)
	n.OpKind = OperateBinary
	n.Op = op
	n.Operands = []Instruction{left, right}
	return n
}

// Transfer constructs a non-local control-flow signal node; val may be nil.
func Transfer(pos token.Position, kind TransferKind, val *Instruction) Instruction {
	n := at(pos, KindTransfer)
	n.XferKind = kind
	n.XferVal = val
	return n
}

// FunctionDef constructs a function-definition node.
func FunctionDef(pos token.Position, name string, params []string, body Instruction, memoizable bool) Instruction {
	n := at(pos, KindFunctionDef)
	n.Name = name
	n.Params = params
	n.Body = &body
	n.Memoizable = memoizable
	return n
}

// Literal constructs a constant-value leaf.
func Literal(pos token.Position, v value.Value) Instruction {
	n := at(pos, KindLiteral)
	n.Lit = v
	return n
}

// Variable constructs a name-reference leaf.
func Variable(pos token.Position, name string) Instruction {
	n := at(pos, KindVariable)
	n.VarName = name
	return n
}
