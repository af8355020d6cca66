package cmds

import (
	"fmt"
	"testing"
)

func TestVar(t *testing.T) {
	a := Var[int]("TestVarInt", "")
	b := Var[string]("TestVarString", "")
	GlobalExecutor.MustExecute([]string{
		"TestVarInt", "42",
		"TestVarString=bar",
	})
	if *a != 42 || *b != "bar" {
		t.Fatalf("got %d %q", *a, *b)
	}
	GlobalExecutor.MustExecute([]string{
		"TestVarInt.",
	})
	if *a != 0 {
		t.Fatalf("got %d", *a)
	}
}

func TestSwitch(t *testing.T) {
	foo := Switch("TestSwitch", "")
	GlobalExecutor.MustExecute([]string{
		"TestSwitch",
	})
	if !*foo {
		t.Fatal()
	}
	GlobalExecutor.MustExecute([]string{
		"!TestSwitch",
	})
	if *foo {
		t.Fatal()
	}
}

func TestCollect(t *testing.T) {
	list := Collect[string]("TestCollect", "")
	GlobalExecutor.MustExecute([]string{
		"TestCollect", "a",
		"TestCollect=b",
	})
	if str := fmt.Sprintf("%v", *list); str != "[a b]" {
		t.Fatalf("got %s", str)
	}
}

func TestTypedVar(t *testing.T) {
	type Path string
	v := Var[Path]("TestTypedVar", "a path")
	GlobalExecutor.MustExecute([]string{
		"TestTypedVar", "a.md",
	})
	if *v != "a.md" {
		t.Fatalf("got %q", *v)
	}
	if desc := GlobalExecutor.commands["TestTypedVar"].Description; desc != "a path" {
		t.Fatalf("got %q", desc)
	}
}
