package sp

import "testing"

func Test_Env_Variable_CreateOrOverwrite(t *testing.T) {
	env := NewEnvironment()
	if _, ok := env.GetVariable("x"); ok {
		t.Fatal("fresh environment should be empty")
	}
	env.SetVariable("x", Number(1))
	env.SetVariable("x", Number(2))
	v, ok := env.GetVariable("x")
	if !ok || mustNumber(t, v) != 2 {
		t.Fatalf("x = %v, want 2", v)
	}
}

func Test_Env_Function_Replace(t *testing.T) {
	env := NewEnvironment()
	env.SetFunction("f", Function{Parameters: []string{"a"}, Body: &Block{}})
	env.SetFunction("f", Function{Parameters: nil, Body: &Block{}})
	f, ok := env.GetFunction("f")
	if !ok || len(f.Parameters) != 0 {
		t.Fatalf("replacement did not take: %#v", f)
	}
}

func Test_Env_Clone_Is_Independent(t *testing.T) {
	env := NewEnvironment()
	env.SetVariable("x", Number(1))
	env.SetFunction("f", Function{Body: &Block{}})

	c := env.Clone()
	c.SetVariable("x", Number(99))
	c.SetVariable("y", Number(1))
	c.SetFunction("g", Function{Body: &Block{}})

	if v, _ := env.GetVariable("x"); mustNumber(t, v) != 1 {
		t.Fatal("clone write leaked into the original")
	}
	if _, ok := env.GetVariable("y"); ok {
		t.Fatal("clone-only variable visible in the original")
	}
	if _, ok := env.GetFunction("g"); ok {
		t.Fatal("clone-only function visible in the original")
	}
	if _, ok := c.GetFunction("f"); !ok {
		t.Fatal("clone lost an existing function")
	}
}
