// eval.go — tree-walking evaluation of parsed statements.
//
// OVERVIEW
// --------
// Evaluation is a method set attached to Node: each variant implements
// `Evaluate(*Environment) (Value, error)` by plain recursion. There is no
// explicit call stack, no suspension, and no I/O — deep user recursion is
// bounded by the goroutine stack and exhausting it is fatal rather than
// recoverable.
//
// Semantics worth calling out:
//
//   - Binary operators evaluate BOTH sides, left first; `&&`/`||` do not
//     short-circuit. Arithmetic demands Number operands (divide-by-zero
//     follows float32 semantics and yields Inf/NaN, not an error); logical
//     operators demand same-tagged operands, `<`/`>` only Numbers, `||`/`&&`
//     only Bools.
//   - The truthiness rule for `if`/`while`/`for` is: Bool(true) is true, and
//     Number(0) is true. Yes — zero, not non-zero. The rule is inherited
//     behavior and is pinned by tests; changing it changes which loops
//     terminate.
//   - A call clones the caller's environment after evaluating arguments
//     against the caller, binds parameters into the clone, runs the body
//     there, and throws the clone away. Callee assignments are invisible to
//     the caller.
//   - Runtime failures abort the current top-level statement only.
//     Assignments that already ran keep their bindings; the shell evaluates
//     each line independently.
package sp

import "fmt"

// RuntimeError is an execution-time failure: undefined names, arity
// mismatches, operand type mismatches.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string { return "runtime error: " + e.Msg }

func runtimeErrorf(format string, args ...any) error {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

// truthy implements the branching rule: Bool(true) or Number equal to 0.
func truthy(v Value) bool {
	switch v.Tag {
	case VTBool:
		return v.Data.(bool)
	case VTNumber:
		return v.Data.(float32) == 0
	default:
		return false
	}
}

func (n *Constant) Evaluate(env *Environment) (Value, error) {
	return n.Value, nil
}

func (n *Variable) Evaluate(env *Environment) (Value, error) {
	v, ok := env.GetVariable(n.Name)
	if !ok {
		return None, runtimeErrorf("undefined variable: %s", n.Name)
	}
	return v, nil
}

func (n *BinaryOperation) Evaluate(env *Environment) (Value, error) {
	left, err := n.Left.Evaluate(env)
	if err != nil {
		return None, err
	}
	right, err := n.Right.Evaluate(env)
	if err != nil {
		return None, err
	}
	if n.Op.IsArithmetic() {
		return evalArithmetic(n.Op, left, right)
	}
	return evalLogical(n.Op, left, right)
}

func evalArithmetic(op Operation, left, right Value) (Value, error) {
	l, lok := left.AsNumber()
	r, rok := right.AsNumber()
	if !lok || !rok {
		return None, runtimeErrorf("operator %s expects numbers, got %s and %s", op, left, right)
	}
	switch op {
	case OpPlus:
		return Number(l + r), nil
	case OpMinus:
		return Number(l - r), nil
	case OpMultiply:
		return Number(l * r), nil
	default: // OpDivide; zero divisors follow float semantics
		return Number(l / r), nil
	}
}

func evalLogical(op Operation, left, right Value) (Value, error) {
	if left.Tag != right.Tag || left.Tag == VTNone {
		return None, runtimeErrorf("operator %s expects matching operands, got %s and %s", op, left, right)
	}
	switch op {
	case OpEqual, OpNotEqual:
		eq := left.Data == right.Data
		if op == OpNotEqual {
			eq = !eq
		}
		return Bool(eq), nil
	case OpLess, OpMore:
		l, lok := left.AsNumber()
		r, rok := right.AsNumber()
		if !lok || !rok {
			return None, runtimeErrorf("operator %s expects numbers, got %s and %s", op, left, right)
		}
		if op == OpLess {
			return Bool(l < r), nil
		}
		return Bool(l > r), nil
	default: // OpOr, OpAnd
		l, lok := left.AsBool()
		r, rok := right.AsBool()
		if !lok || !rok {
			return None, runtimeErrorf("operator %s expects booleans, got %s and %s", op, left, right)
		}
		if op == OpOr {
			return Bool(l || r), nil
		}
		return Bool(l && r), nil
	}
}

func (n *Assignment) Evaluate(env *Environment) (Value, error) {
	v, err := n.Value.Evaluate(env)
	if err != nil {
		return None, err
	}
	env.SetVariable(n.Name, v)
	return None, nil
}

func (n *Block) Evaluate(env *Environment) (Value, error) {
	result := None
	for _, stmt := range n.Statements {
		v, err := stmt.Evaluate(env)
		if err != nil {
			return None, err
		}
		result = v
	}
	return result, nil
}

func (n *FunctionDef) Evaluate(env *Environment) (Value, error) {
	env.SetFunction(n.Name, n.Fn)
	return None, nil
}

func (n *Call) Evaluate(env *Environment) (Value, error) {
	fn, ok := env.GetFunction(n.Name)
	if !ok {
		return None, runtimeErrorf("undefined function: %s", n.Name)
	}
	if len(n.Args) != len(fn.Parameters) {
		return None, runtimeErrorf("function %s expects %d arguments, got %d",
			n.Name, len(fn.Parameters), len(n.Args))
	}

	// Arguments see the caller's environment; the body sees a snapshot.
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := a.Evaluate(env)
		if err != nil {
			return None, err
		}
		args[i] = v
	}
	frame := env.Clone()
	for i, p := range fn.Parameters {
		frame.SetVariable(p, args[i])
	}
	return fn.Body.Evaluate(frame)
}

func (n *IfElse) Evaluate(env *Environment) (Value, error) {
	cond, err := n.Condition.Evaluate(env)
	if err != nil {
		return None, err
	}
	if truthy(cond) {
		return n.Then.Evaluate(env)
	}
	if n.Else != nil {
		return n.Else.Evaluate(env)
	}
	return None, nil
}

func (n *While) Evaluate(env *Environment) (Value, error) {
	for {
		cond, err := n.Condition.Evaluate(env)
		if err != nil {
			return None, err
		}
		if !truthy(cond) {
			return None, nil
		}
		if _, err := n.Body.Evaluate(env); err != nil {
			return None, err
		}
	}
}

func (n *For) Evaluate(env *Environment) (Value, error) {
	// The init value is discarded without inspection.
	if _, err := n.Init.Evaluate(env); err != nil {
		return None, err
	}
	for {
		cond, err := n.Condition.Evaluate(env)
		if err != nil {
			return None, err
		}
		if !truthy(cond) {
			return None, nil
		}
		if _, err := n.Body.Evaluate(env); err != nil {
			return None, err
		}
		if _, err := n.Step.Evaluate(env); err != nil {
			return None, err
		}
	}
}
