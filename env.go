// env.go — the mutable binding store threaded through evaluation.
//
// An Environment owns two flat, name-keyed tables: variable bindings and the
// function table. There is no lexical scoping and no parent chain — one flat
// namespace per active call frame. Isolation between call frames comes from
// value semantics instead: a function call snapshots the caller's environment
// with Clone, binds parameters into the snapshot, and discards it afterwards,
// so callee-side mutation never leaks back (see eval.go).
//
// The shell creates one Environment at startup and threads it through every
// top-level statement, which is how bindings persist across REPL lines.
package sp

// Environment maps names to variable values and defined functions.
type Environment struct {
	variables map[string]Value
	functions map[string]Function
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		variables: make(map[string]Value),
		functions: make(map[string]Function),
	}
}

// GetVariable looks up a variable binding by exact name.
func (e *Environment) GetVariable(name string) (Value, bool) {
	v, ok := e.variables[name]
	return v, ok
}

// SetVariable binds name to v, creating or overwriting.
func (e *Environment) SetVariable(name string, v Value) {
	e.variables[name] = v
}

// GetFunction looks up a defined function by exact name.
func (e *Environment) GetFunction(name string) (Function, bool) {
	f, ok := e.functions[name]
	return f, ok
}

// SetFunction registers fn under name, silently replacing any prior
// definition.
func (e *Environment) SetFunction(name string, fn Function) {
	e.functions[name] = fn
}

// Clone returns an independent copy of both tables. Function bodies are
// shared across the copy; parsed trees are never mutated, so sharing is
// safe.
func (e *Environment) Clone() *Environment {
	c := &Environment{
		variables: make(map[string]Value, len(e.variables)),
		functions: make(map[string]Function, len(e.functions)),
	}
	for k, v := range e.variables {
		c.variables[k] = v
	}
	for k, f := range e.functions {
		c.functions[k] = f
	}
	return c
}
