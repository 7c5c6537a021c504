// node.go — AST node variants and their text renderings.
//
// WHAT THIS FILE DOES
// -------------------
// Defines the closed set of AST variants the parser (parser.go) produces and
// the evaluator (eval.go) consumes, plus two pure renderers:
//
//   - Node.String()  — source form mirroring the grammar. Binary operations
//     are rendered fully parenthesized so that printing and re-parsing any
//     tree reproduces the same shape (the grammar's same-precedence chains
//     are right-associative, so unparenthesized output would regroup).
//   - DumpNode()     — constructor-style debug dump the shell prints after a
//     successful parse.
//
// The node set is a closed sum: every variant carries the unexported marker
// method, and every consumption site switches over the full set. Each parent
// exclusively owns its children; trees are never shared or mutated after
// parsing.
package sp

import (
	"strconv"
	"strings"
)

// Node is one parsed statement or expression.
type Node interface {
	// String renders a re-parseable source form of the node.
	String() string

	// Evaluate executes the node against env. Defined in eval.go.
	Evaluate(env *Environment) (Value, error)

	node() // closed set marker
}

// Function is the callable payload registered by a function definition:
// ordered parameter names plus the body block. It is not itself a Node.
type Function struct {
	Parameters []string
	Body       Node
}

// Constant is a literal leaf.
type Constant struct {
	Value Value
}

// Variable references a name that must resolve at evaluation time.
type Variable struct {
	Name string
}

// BinaryOperation applies Op to the results of both children. Both sides are
// always evaluated, left first; there is no short-circuiting.
type BinaryOperation struct {
	Op    Operation
	Left  Node
	Right Node
}

// Assignment binds the evaluated right side to Name, creating or overwriting.
type Assignment struct {
	Name  string
	Value Node
}

// Block is an ordered statement sequence; its value is the last statement's.
type Block struct {
	Statements []Node
}

// FunctionDef registers Fn under Name in the environment's function table.
type FunctionDef struct {
	Name string
	Fn   Function
}

// Call invokes a previously defined function with evaluated arguments.
type Call struct {
	Name string
	Args []Node
}

// IfElse branches on Condition; Else may be nil.
type IfElse struct {
	Condition Node
	Then      Node
	Else      Node
}

// While re-checks Condition before every iteration.
type While struct {
	Condition Node
	Body      Node
}

// For runs Init once, then loops body-then-step while Condition holds.
type For struct {
	Init      Node
	Condition Node
	Body      Node
	Step      Node
}

func (*Constant) node()        {}
func (*Variable) node()        {}
func (*BinaryOperation) node() {}
func (*Assignment) node()      {}
func (*Block) node()           {}
func (*FunctionDef) node()     {}
func (*Call) node()            {}
func (*IfElse) node()          {}
func (*While) node()           {}
func (*For) node()             {}

// ─────────────────────────── source rendering ───────────────────────────

func (n *Constant) String() string {
	switch n.Value.Tag {
	case VTNumber:
		return strconv.FormatFloat(float64(n.Value.Data.(float32)), 'g', -1, 32)
	case VTBool:
		return strconv.FormatBool(n.Value.Data.(bool))
	default:
		return "None"
	}
}

func (n *Variable) String() string { return n.Name }

func (n *BinaryOperation) String() string {
	return "(" + n.Left.String() + n.Op.String() + n.Right.String() + ")"
}

func (n *Assignment) String() string {
	return n.Name + " = " + n.Value.String()
}

func (n *Block) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for _, s := range n.Statements {
		b.WriteString(s.String())
		b.WriteByte(';')
	}
	b.WriteByte('}')
	return b.String()
}

func (n *FunctionDef) String() string {
	return "fn " + n.Name + "(" + strings.Join(n.Fn.Parameters, ", ") + ") " + n.Fn.Body.String()
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

func (n *IfElse) String() string {
	s := "if " + n.Condition.String() + " " + n.Then.String()
	if n.Else != nil {
		s += " else " + n.Else.String()
	}
	return s
}

func (n *While) String() string {
	return "while " + n.Condition.String() + " " + n.Body.String()
}

func (n *For) String() string {
	return "for " + n.Init.String() + "; " + n.Condition.String() + "; " + n.Step.String() + " " + n.Body.String()
}

// ─────────────────────────── debug rendering ───────────────────────────

// DumpNode renders a constructor-style view of the tree, one node per
// constructor, for the shell's post-parse echo. It is pure and never
// evaluates anything.
func DumpNode(n Node) string {
	var b strings.Builder
	dumpInto(&b, n)
	return b.String()
}

func dumpInto(b *strings.Builder, n Node) {
	switch x := n.(type) {
	case *Constant:
		b.WriteString("Constant(")
		b.WriteString(x.Value.String())
		b.WriteByte(')')
	case *Variable:
		b.WriteString("Variable(")
		b.WriteString(x.Name)
		b.WriteByte(')')
	case *BinaryOperation:
		b.WriteString("BinaryOperation(")
		b.WriteString(x.Op.String())
		b.WriteString(", ")
		dumpInto(b, x.Left)
		b.WriteString(", ")
		dumpInto(b, x.Right)
		b.WriteByte(')')
	case *Assignment:
		b.WriteString("Assignment(")
		b.WriteString(x.Name)
		b.WriteString(", ")
		dumpInto(b, x.Value)
		b.WriteByte(')')
	case *Block:
		b.WriteString("Block(")
		for i, s := range x.Statements {
			if i > 0 {
				b.WriteString(", ")
			}
			dumpInto(b, s)
		}
		b.WriteByte(')')
	case *FunctionDef:
		b.WriteString("Function(")
		b.WriteString(x.Name)
		b.WriteString(", [")
		b.WriteString(strings.Join(x.Fn.Parameters, " "))
		b.WriteString("], ")
		dumpInto(b, x.Fn.Body)
		b.WriteByte(')')
	case *Call:
		b.WriteString("Call(")
		b.WriteString(x.Name)
		for _, a := range x.Args {
			b.WriteString(", ")
			dumpInto(b, a)
		}
		b.WriteByte(')')
	case *IfElse:
		b.WriteString("IfElse(")
		dumpInto(b, x.Condition)
		b.WriteString(", ")
		dumpInto(b, x.Then)
		if x.Else != nil {
			b.WriteString(", ")
			dumpInto(b, x.Else)
		}
		b.WriteByte(')')
	case *While:
		b.WriteString("While(")
		dumpInto(b, x.Condition)
		b.WriteString(", ")
		dumpInto(b, x.Body)
		b.WriteByte(')')
	case *For:
		b.WriteString("For(")
		dumpInto(b, x.Init)
		b.WriteString(", ")
		dumpInto(b, x.Condition)
		b.WriteString(", ")
		dumpInto(b, x.Body)
		b.WriteString(", ")
		dumpInto(b, x.Step)
		b.WriteByte(')')
	}
}
