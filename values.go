// values.go — runtime value model and the operator set.
//
// WHAT THIS FILE DOES
// -------------------
// Defines the tagged `Value` carrier used by the evaluator (eval.go) and the
// closed `Operation` set shared by the parser (parser.go) and the evaluator.
//
// The value model is deliberately tiny:
//
//	None         — absence of a value (assignments, loops, definitions)
//	Bool(bool)   — result of relational/logical operators
//	Number(f32)  — the only numeric type; all literals are float32
//
// There are no implicit coercions anywhere: the evaluator rejects None
// operands and Bool/Number mixes explicitly rather than propagating them.
//
// Operations partition into an *arithmetic* set (+ - / *) that demands
// Number operands, and a *logical* set (< > == != || &&) that demands
// same-tagged operands. The partition predicates here are the single source
// of truth for that dispatch.
package sp

import (
	"fmt"
	"strconv"
)

// ValueTag enumerates the runtime kinds a Value may hold.
// The tag determines which field of Value.Data is valid.
type ValueTag int

const (
	VTNone   ValueTag = iota // no payload
	VTBool                   // bool
	VTNumber                 // float32
)

// Value is the universal runtime carrier.
//
// Invariants:
//   - When Tag==VTNone, Data is nil.
//   - When Tag==VTBool, Data is bool.
//   - When Tag==VTNumber, Data is float32.
type Value struct {
	Tag  ValueTag
	Data any
}

// None is the singleton empty Value.
var None = Value{Tag: VTNone}

// Primitive constructors.
func Bool(b bool) Value      { return Value{Tag: VTBool, Data: b} }
func Number(f float32) Value { return Value{Tag: VTNumber, Data: f} }

// AsNumber unwraps a VTNumber payload.
func (v Value) AsNumber() (float32, bool) {
	if v.Tag != VTNumber {
		return 0, false
	}
	return v.Data.(float32), true
}

// AsBool unwraps a VTBool payload.
func (v Value) AsBool() (bool, bool) {
	if v.Tag != VTBool {
		return false, false
	}
	return v.Data.(bool), true
}

// String renders the debug representation the shell prints after evaluation.
func (v Value) String() string {
	switch v.Tag {
	case VTNone:
		return "None"
	case VTBool:
		return fmt.Sprintf("Bool(%v)", v.Data.(bool))
	case VTNumber:
		return "Number(" + strconv.FormatFloat(float64(v.Data.(float32)), 'g', -1, 32) + ")"
	default:
		return "<unknown>"
	}
}

// Operation is the closed operator set. The constant order keeps the
// arithmetic operators contiguous; IsArithmetic relies on it.
type Operation int

const (
	OpPlus Operation = iota
	OpMinus
	OpDivide
	OpMultiply
	OpLess
	OpMore
	OpEqual
	OpNotEqual
	OpOr
	OpAnd
)

// IsArithmetic reports whether the operator demands Number operands and
// produces a Number. The remaining operators are logical/relational and
// produce a Bool.
func (op Operation) IsArithmetic() bool { return op <= OpMultiply }

func (op Operation) String() string {
	switch op {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpDivide:
		return "/"
	case OpMultiply:
		return "*"
	case OpLess:
		return "<"
	case OpMore:
		return ">"
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpOr:
		return "||"
	case OpAnd:
		return "&&"
	default:
		return "<op?>"
	}
}

// operationFromString maps an operator lexeme to its Operation. The second
// result is false for unknown lexemes.
func operationFromString(s string) (Operation, bool) {
	switch s {
	case "+":
		return OpPlus, true
	case "-":
		return OpMinus, true
	case "/":
		return OpDivide, true
	case "*":
		return OpMultiply, true
	case "<":
		return OpLess, true
	case ">":
		return OpMore, true
	case "==":
		return OpEqual, true
	case "!=":
		return OpNotEqual, true
	case "||":
		return OpOr, true
	case "&&":
		return OpAnd, true
	default:
		return 0, false
	}
}
