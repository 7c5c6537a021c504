package sp

import (
	"strings"
	"testing"
)

// evalStatement runs one statement against env and fails on parse leftovers.
func evalStatement(t *testing.T, env *Environment, src string) (Value, error) {
	t.Helper()
	rest, n, err := ParseStatement([]byte(src))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	if len(rest) != 0 {
		t.Fatalf("parse %q: unconsumed remainder %q", src, string(rest))
	}
	return n.Evaluate(env)
}

// runProgram feeds statements one at a time into a fresh environment, the way
// the shell does, and returns the last value.
func runProgram(t *testing.T, stmts ...string) (Value, *Environment) {
	t.Helper()
	env := NewEnvironment()
	last := None
	for _, s := range stmts {
		v, err := evalStatement(t, env, s)
		if err != nil {
			t.Fatalf("evaluate %q: %v", s, err)
		}
		last = v
	}
	return last, env
}

func mustNumber(t *testing.T, v Value) float32 {
	t.Helper()
	f, ok := v.AsNumber()
	if !ok {
		t.Fatalf("want a Number, got %s", v)
	}
	return f
}

func wantErrContains(t *testing.T, err error, sub string) {
	t.Helper()
	if err == nil {
		t.Fatalf("want error containing %q, got nil", sub)
	}
	if !strings.Contains(err.Error(), sub) {
		t.Fatalf("error %q does not contain %q", err.Error(), sub)
	}
}

func Test_Eval_Arithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want float32
	}{
		{"1+2+3", 6},
		{"1 + 2 + 3", 6},
		{"1+2*3.5", 8},
		{"3+4*(6.5-6)", 5},
		{"1-2-3", 2}, // right-associative: 1-(2-3)
		{"-5+1", -4},
		{"10/4", 2.5},
	}
	for _, c := range cases {
		v, _ := runProgram(t, c.src)
		if got := mustNumber(t, v); got != c.want {
			t.Fatalf("%q = %v, want %v", c.src, got, c.want)
		}
	}
}

func Test_Eval_DivideByZero_Follows_Float_Semantics(t *testing.T) {
	v, _ := runProgram(t, "1/0")
	f := mustNumber(t, v)
	if !(f > 0 && f*2 == f) { // +Inf
		t.Fatalf("1/0 = %v, want +Inf", f)
	}

	v, _ = runProgram(t, "0/0")
	f = mustNumber(t, v)
	if f == f { // NaN
		t.Fatalf("0/0 = %v, want NaN", f)
	}
}

func Test_Eval_Relational_And_Logical(t *testing.T) {
	v, _ := runProgram(t, "3<4")
	if b, ok := v.AsBool(); !ok || !b {
		t.Fatalf("3<4 = %s, want Bool(true)", v)
	}

	v, _ = runProgram(t, "(1<2) && (3>4)")
	if b, ok := v.AsBool(); !ok || b {
		t.Fatalf("(1<2) && (3>4) = %s, want Bool(false)", v)
	}

	v, _ = runProgram(t, "(1<2) || (3>4)")
	if b, ok := v.AsBool(); !ok || !b {
		t.Fatalf("(1<2) || (3>4) = %s, want Bool(true)", v)
	}

	v, _ = runProgram(t, "1 != 2")
	if b, ok := v.AsBool(); !ok || !b {
		t.Fatalf("1 != 2 = %s, want Bool(true)", v)
	}
}

func Test_Eval_Type_Mismatches(t *testing.T) {
	env := NewEnvironment()

	// Chaining a relational result into another relational operator mixes
	// Bool and Number.
	_, err := evalStatement(t, env, "1<2<3")
	wantErrContains(t, err, "matching operands")

	// Arithmetic on a Bool.
	_, err = evalStatement(t, env, "(1<2)+1")
	wantErrContains(t, err, "expects numbers")

	// && on Numbers.
	_, err = evalStatement(t, env, "1 && 2")
	wantErrContains(t, err, "expects booleans")
}

func Test_Eval_No_ShortCircuit(t *testing.T) {
	// The right side always runs: an undefined name there fails even when
	// the left side already decides a conventional || .
	env := NewEnvironment()
	_, err := evalStatement(t, env, "(1<2) || nope")
	wantErrContains(t, err, "undefined variable")
}

func Test_Eval_Variables(t *testing.T) {
	v, env := runProgram(t, "x = 4", "x*2")
	if got := mustNumber(t, v); got != 8 {
		t.Fatalf("x*2 = %v, want 8", got)
	}

	// Assignment itself yields None.
	res, err := evalStatement(t, env, "y = 1")
	if err != nil {
		t.Fatalf("assignment: %v", err)
	}
	if res.Tag != VTNone {
		t.Fatalf("assignment result = %s, want None", res)
	}

	_, err = evalStatement(t, env, "zz + 1")
	wantErrContains(t, err, "undefined variable: zz")
}

func Test_Eval_Statement_Failure_Keeps_Earlier_Bindings(t *testing.T) {
	env := NewEnvironment()
	if _, err := evalStatement(t, env, "a = 1"); err != nil {
		t.Fatal(err)
	}
	_, err := evalStatement(t, env, "b = bogus()")
	wantErrContains(t, err, "undefined function")

	if v, ok := env.GetVariable("a"); !ok || mustNumber(t, v) != 1 {
		t.Fatal("a must survive a later failing statement")
	}
	if _, ok := env.GetVariable("b"); ok {
		t.Fatal("b must not be bound after its right side failed")
	}
}

func Test_Eval_Function_Call(t *testing.T) {
	v, _ := runProgram(t,
		"fn add(a, b) {a + b;}",
		"add(2, 40)",
	)
	if got := mustNumber(t, v); got != 42 {
		t.Fatalf("add(2, 40) = %v, want 42", got)
	}
}

func Test_Eval_Function_Definition_Yields_None_And_Replaces(t *testing.T) {
	env := NewEnvironment()
	v, err := evalStatement(t, env, "fn f() {1;}")
	if err != nil {
		t.Fatal(err)
	}
	if v.Tag != VTNone {
		t.Fatalf("definition result = %s, want None", v)
	}

	// Redefinition silently replaces.
	if _, err := evalStatement(t, env, "fn f() {2;}"); err != nil {
		t.Fatal(err)
	}
	got, err := evalStatement(t, env, "f()")
	if err != nil {
		t.Fatal(err)
	}
	if mustNumber(t, got) != 2 {
		t.Fatalf("f() = %s, want the replacement body's 2", got)
	}
}

func Test_Eval_Call_Arity_Mismatch(t *testing.T) {
	env := NewEnvironment()
	if _, err := evalStatement(t, env, "fn f(a) {mark = 1;}"); err != nil {
		t.Fatal(err)
	}
	_, err := evalStatement(t, env, "f(1, 2)")
	wantErrContains(t, err, "expects 1 arguments, got 2")
	if _, ok := env.GetVariable("mark"); ok {
		t.Fatal("body must not run on arity mismatch")
	}
}

func Test_Eval_Call_Clone_Isolation(t *testing.T) {
	_, env := runProgram(t,
		"fn f() {x = 99;}",
		"x = 1",
		"f()",
	)
	v, ok := env.GetVariable("x")
	if !ok {
		t.Fatal("x missing")
	}
	if mustNumber(t, v) != 1 {
		t.Fatalf("x = %s after f(); callee assignments must not leak", v)
	}
}

func Test_Eval_Call_Sees_PreCall_Snapshot(t *testing.T) {
	v, _ := runProgram(t,
		"g = 10",
		"fn f(a) {a + g;}",
		"f(5)",
	)
	if mustNumber(t, v) != 15 {
		t.Fatalf("f(5) = %s, want 15 (snapshot includes g)", v)
	}
}

func Test_Eval_Block_Value_Is_Last_Statement(t *testing.T) {
	v, _ := runProgram(t,
		"fn f() {a = 1; a + 1;}",
		"f()",
	)
	if mustNumber(t, v) != 2 {
		t.Fatalf("f() = %s, want 2", v)
	}

	// Empty body yields None.
	v, _ = runProgram(t, "fn e() {}", "e()")
	if v.Tag != VTNone {
		t.Fatalf("e() = %s, want None", v)
	}
}

// The branching rule is inherited as-is: Bool(true) is true, and a Number is
// true exactly when it equals zero.
func Test_Eval_Truthiness_Zero_Is_True(t *testing.T) {
	v, _ := runProgram(t, "if 0 {1;} else {2;}")
	if mustNumber(t, v) != 1 {
		t.Fatalf("if 0 took the else branch: %s", v)
	}

	v, _ = runProgram(t, "if 1 {1;} else {2;}")
	if mustNumber(t, v) != 2 {
		t.Fatalf("if 1 took the then branch: %s", v)
	}

	v, _ = runProgram(t, "if 2>1 {1;} else {2;}")
	if mustNumber(t, v) != 1 {
		t.Fatalf("Bool(true) condition took the else branch: %s", v)
	}

	// No else, false condition: None.
	v, _ = runProgram(t, "if 1<0 {1;}")
	if v.Tag != VTNone {
		t.Fatalf("want None, got %s", v)
	}
}

func Test_Eval_While(t *testing.T) {
	// Relational conditions carry Bool and behave conventionally.
	_, env := runProgram(t,
		"i = 0",
		"s = 0",
		"while i < 5 {s = s + i; i = i + 1;}",
	)
	s, _ := env.GetVariable("s")
	if mustNumber(t, s) != 10 {
		t.Fatalf("s = %s, want 10", s)
	}

	// A numeric condition runs while it equals zero.
	_, env = runProgram(t,
		"i = 0",
		"n = 0",
		"while i {i = i + 1; n = n + 1;}",
	)
	n, _ := env.GetVariable("n")
	if mustNumber(t, n) != 1 {
		t.Fatalf("n = %s, want exactly one iteration", n)
	}

	// Always-false condition: zero iterations, result None.
	v, env := runProgram(t,
		"hit = 0",
		"while 1<0 {hit = 1;}",
	)
	if v.Tag != VTNone {
		t.Fatalf("while result = %s, want None", v)
	}
	hit, _ := env.GetVariable("hit")
	if mustNumber(t, hit) != 0 {
		t.Fatal("body ran despite a false condition")
	}
}

func Test_Eval_For(t *testing.T) {
	_, env := runProgram(t,
		"s = 0",
		"for i = 0; i < 3; i = i + 1 {s = s + i;}",
	)
	s, _ := env.GetVariable("s")
	if mustNumber(t, s) != 3 {
		t.Fatalf("s = %s, want 3", s)
	}
	// The loop variable lives in the shared namespace and survives the loop.
	i, _ := env.GetVariable("i")
	if mustNumber(t, i) != 3 {
		t.Fatalf("i = %s, want 3", i)
	}

	// Zero iterations under the inverted numeric rule: condition 1 is false.
	v, env := runProgram(t,
		"hit = 0",
		"for x = 0; 1; x = x + 1 {hit = 1;}",
	)
	if v.Tag != VTNone {
		t.Fatalf("for result = %s, want None", v)
	}
	hit, _ := env.GetVariable("hit")
	if mustNumber(t, hit) != 0 {
		t.Fatal("body ran despite a false-by-the-rule condition")
	}
}
