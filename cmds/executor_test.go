package cmds

import (
	"errors"
	"strings"
	"testing"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var a int
	executor.Define("+a", Func(func() {
		a = 42
	}))
	executor.Define("a", Func(func(i int) {
		a = i
	}))

	for _, c := range []struct {
		args     []string
		expected int
	}{
		{[]string{"+a"}, 42},
		{[]string{"a", "1"}, 1},
		{[]string{"a=2"}, 2},
		{[]string{"a=3", "+a", "a", "4"}, 4},
	} {
		if err := executor.Execute(c.args); err != nil {
			t.Fatal(err)
		}
		if a != c.expected {
			t.Fatalf("%v: got %d", c.args, a)
		}
	}

	err := executor.Execute([]string{
		"foo",
	})
	if !errors.Is(err, ErrUnknownCommand) || !strings.Contains(err.Error(), "foo") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"a", "x"})
	if err == nil || !strings.Contains(err.Error(), "a: convert x to int") {
		t.Fatalf("got %v", err)
	}
	err = executor.Execute([]string{"a"})
	if err == nil || !strings.Contains(err.Error(), "expecting argument") {
		t.Fatalf("got %v", err)
	}
}

func TestCommandError(t *testing.T) {
	executor := NewExecutor()
	errFoo := errors.New("foo")
	executor.Define("fail", Func(func() error {
		return errFoo
	}))
	executor.Define("ok", Func(func() error {
		return nil
	}))
	if err := executor.Execute([]string{"ok"}); err != nil {
		t.Fatal(err)
	}
	if err := executor.Execute([]string{"ok", "fail"}); !errors.Is(err, errFoo) {
		t.Fatalf("got %v", err)
	}
}

func TestSubCommands(t *testing.T) {
	executor := NewExecutor()
	var bar, baz int
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
			bar = 1
		}),
		"baz": Func(func(i int) {
			baz = i
		}),
	}))

	if err := executor.Execute([]string{
		"foo",
		"bar",
		"baz", "42",
	}); err != nil {
		t.Fatal(err)
	}
	if bar != 1 || baz != 42 {
		t.Fatalf("got %d %d", bar, baz)
	}

	// sub commands are only visible after their parent
	if err := executor.Execute([]string{"bar"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("got %v", err)
	}
}

func TestDuplicatedSubCommand(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"a": nil,
	}))
	executor.Define("bar", Sub(map[string]*Command{
		"a": nil,
	}))
	err := executor.Execute([]string{"foo", "bar"})
	if err == nil || !strings.Contains(err.Error(), "duplicated sub command: bar a") {
		t.Fatalf("got %v", err)
	}
}

func TestDuplicatedDefine(t *testing.T) {
	defer func() {
		if p := recover(); p == nil {
			t.Fatal("should panic")
		}
	}()
	executor := NewExecutor()
	executor.Define("help", Func(func() {}))
}

func TestOptionalArgument(t *testing.T) {
	executor := NewExecutor()
	var n int
	var s string
	executor.Define("foo", Func(func(arg *int, arg2 *string) {
		n = *arg
		s = *arg2
	}))

	for _, c := range []struct {
		args []string
		n    int
		s    string
	}{
		{[]string{"foo", "42", "foo"}, 42, "foo"},
		{[]string{"foo", "99"}, 99, ""},
		{[]string{"foo"}, 0, ""},
	} {
		if err := executor.Execute(c.args); err != nil {
			t.Fatal(err)
		}
		if n != c.n || s != c.s {
			t.Fatalf("%v: got %d %q", c.args, n, s)
		}
	}
}
