package chains

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/vartext/modes"
)

func TestRunOrder(t *testing.T) {
	chain := Chain{
		Func("upper", strings.ToUpper),
		Identity(),
		Func("suffix", func(s string) string {
			return s + "!"
		}),
		{Name: "nil"},
	}
	out, err := chain.Run(t.Context(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if out != "HELLO!" {
		t.Fatalf("got %q", out)
	}

	out, err = chain.Without("upper").Run(t.Context(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if out != "hello!" {
		t.Fatalf("got %q", out)
	}
	// Without copies
	if fmt.Sprint(chain.Names()) != "[upper identity suffix nil]" {
		t.Fatalf("got %v", chain.Names())
	}

	out, err = Chain(nil).Run(t.Context(), "x")
	if err != nil || out != "x" {
		t.Fatalf("got %q %v", out, err)
	}
}

func TestRunError(t *testing.T) {
	errFoo := errors.New("foo")
	called := false
	chain := Chain{
		{
			Name: "fail",
			Apply: func(context.Context, string) (string, error) {
				return "", errFoo
			},
		},
		Func("after", func(s string) string {
			called = true
			return s
		}),
	}
	_, err := chain.Run(t.Context(), "x")
	if !errors.Is(err, errFoo) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "stage fail") {
		t.Fatalf("got %v", err)
	}
	if called {
		t.Fatal()
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	chain := Chain{
		Func("cancel", func(s string) string {
			cancel()
			return s
		}),
		Func("never", func(string) string {
			t.Fatal("should not run")
			return ""
		}),
	}
	if _, err := chain.Run(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestModuleRun(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		run Run,
	) {
		out, err := run(t.Context(), Chain{
			Func("upper", strings.ToUpper),
		}, "abc")
		if err != nil {
			t.Fatal(err)
		}
		if out != "ABC" {
			t.Fatalf("got %q", out)
		}

		_, err = run(t.Context(), Chain{
			{
				Name: "fail",
				Apply: func(context.Context, string) (string, error) {
					return "", errors.New("boom")
				},
			},
		}, "abc")
		if err == nil || !strings.Contains(err.Error(), "span: ") {
			t.Fatalf("got %v", err)
		}
	})
}
