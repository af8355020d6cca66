package processors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/vartext/configs"
	"github.com/reusee/vartext/interps"
	"github.com/reusee/vartext/modes"
	"github.com/reusee/vartext/replaces"
	"github.com/reusee/vartext/sigils"
)

func testScope(t *testing.T, config string, table interps.Table) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
		func() Definitions {
			return newTestSource(table)
		},
	).Fork(
		func() configs.Loader {
			return configs.NewSourcesLoader([]configs.Source{
				{
					Path:    "test.cue",
					Content: []byte(config),
				},
			}, configs.Schema)
		},
	)
}

func TestModuleDefaults(t *testing.T) {
	testScope(t, "", interps.Table{
		"a": "A",
	}).Call(func(
		op sigils.Operator,
		script ScriptSigil,
		dispatcher replaces.Dispatcher,
		p *VariableProcessor,
		sp ScriptProcessor,
	) {
		if op != sigils.Moustache {
			t.Fatalf("got %v", op)
		}
		if script.Operator != sigils.StarlarkDefault() {
			t.Fatalf("got %v", script)
		}
		if dispatcher.Threshold != replaces.Threshold {
			t.Fatalf("got %v", dispatcher)
		}
		out, err := p.Apply("{{a}}")
		if err != nil {
			t.Fatal(err)
		}
		if out != "A" {
			t.Fatalf("got %q", out)
		}
		out, err = sp.Apply("v__a")
		if err != nil {
			t.Fatal(err)
		}
		if out != `"A"` {
			t.Fatalf("got %q", out)
		}
	})
}

func TestModuleConfig(t *testing.T) {
	testScope(t, `
sigils: {
	began: "<<"
	ended: ">>"
}
script: {
	separator: "$"
}
threshold: 10
case_insensitive: true
`, interps.Table{
		"name": "Jane",
	}).Call(func(
		op sigils.Operator,
		script ScriptSigil,
		dispatcher replaces.Dispatcher,
		p *VariableProcessor,
	) {
		if op.Began() != "<<" || op.Ended() != ">>" {
			t.Fatalf("got %v", op)
		}
		if script.Apply("a.b") != "v$a$b" {
			t.Fatalf("got %v", script.Apply("a.b"))
		}
		if dispatcher.Threshold != 10 {
			t.Fatalf("got %v", dispatcher)
		}
		out, err := p.Apply("<<NAME>>")
		if err != nil {
			t.Fatal(err)
		}
		if out != "Jane" {
			t.Fatalf("got %q", out)
		}
	})
}

func TestModuleBadSigil(t *testing.T) {
	for _, config := range []string{
		`sigils: { began: "{ {", ended: "}}" }`,
		// a lone token is never paired with a default one
		`sigils: { began: "$" }`,
		`sigils: { ended: "]]" }`,
		`sigils: { began: "[[", ended: "[" }`,
		`script: { began: "<<" }`,
	} {
		func() {
			defer func() {
				p := recover()
				if p == nil {
					t.Fatalf("%s: should panic", config)
				}
				if !strings.Contains(fmt.Sprint(p), sigils.ErrInvalidSigil.Error()) {
					t.Fatalf("%s: got %v", config, p)
				}
			}()
			testScope(t, config, nil).Call(func(
				op sigils.Operator,
				script ScriptSigil,
			) {
			})
		}()
	}
}
