package sigils

import (
	"errors"
	"slices"
	"testing"
)

func TestApplyEntoken(t *testing.T) {
	keys := []string{
		"name",
		"application.title",
		"a.b.c.d",
		"名前.苗字",
		"with_underscore",
		"dash-and:colon",
		"x5f",
		"_x5f_",
		"a.",
		"a..b",
	}
	operators := []Operator{
		Moustache,
		Dollar,
		MustNative("${", "}"),
		RDefault(),
		StarlarkDefault(),
		MustScript("`r#", "`", "v", "$"),
	}
	for _, op := range operators {
		for _, key := range keys {
			wrapped := op.Apply(key)
			if got := op.Entoken(wrapped); got != key {
				t.Fatalf("%v: %q -> %q -> %q", op, key, wrapped, got)
			}
			if !op.Matches(wrapped) {
				t.Fatalf("%v: %q does not match", op, wrapped)
			}
		}
	}
}

func TestApplyForms(t *testing.T) {
	cases := []struct {
		op       Operator
		key      string
		expected string
	}{
		{Moustache, "application.title", "{{application.title}}"},
		{Dollar, "a.b", "$a.b$"},
		{RDefault(), "application.title", "v$application$title"},
		{StarlarkDefault(), "a.b", "v__a__b"},
		{MustScript("`r#", "`", "v", "$"), "a.b", "`r#v$a$b`"},
		{RDefault(), "a-b", "v$a_x2d_b"},
	}
	for _, c := range cases {
		if got := c.op.Apply(c.key); got != c.expected {
			t.Fatalf("got %q, expected %q", got, c.expected)
		}
	}
}

func TestEntokenMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"{{",
		"}}",
		"{{a",
		"a}}",
		"plain",
	} {
		if got := Moustache.Entoken(s); got != s {
			t.Fatalf("got %q for %q", got, s)
		}
	}
	// best effort for script keys
	if got := RDefault().Entoken("v$a$b"); got != "a.b" {
		t.Fatalf("got %q", got)
	}
	if got := RDefault().Entoken("a$b"); got != "a.b" {
		t.Fatalf("got %q", got)
	}
}

func TestValidate(t *testing.T) {
	for _, c := range []struct {
		began, ended string
		ok           bool
	}{
		{"{{", "}}", true},
		{"$", "$", true},
		{"${", "}", true},
		{"", "}}", false},
		{"{{", "", false},
		{"{ {", "}}", false},
		{"{{", "{{{", false},
		{"[", "[[", false},
		{"[[", "[", false},
		{"`r#", "`", false},
		{"<%", "%>", true},
		{"<<", ">>", true},
		{"%{", "}%", true},
		{"\xff", "}}", false},
	} {
		err := Validate(c.began, c.ended)
		if c.ok && err != nil {
			t.Fatalf("%q %q: %v", c.began, c.ended, err)
		}
		if !c.ok && !errors.Is(err, ErrInvalidSigil) {
			t.Fatalf("%q %q: got %v", c.began, c.ended, err)
		}
	}
}

func TestScriptValidation(t *testing.T) {
	for _, c := range []struct {
		namespace, separator string
	}{
		{"", "$"},
		{"1v", "$"},
		{"v-v", "$"},
		{"v", ""},
		{"v", "_"},
		{"v", "a"},
		{"v", " "},
	} {
		if _, err := Script("", "", c.namespace, c.separator); !errors.Is(err, ErrInvalidSigil) {
			t.Fatalf("%q %q: got %v", c.namespace, c.separator, err)
		}
	}
	for _, c := range []struct {
		began, ended string
		ok           bool
	}{
		{"{", "", false},
		{"", "}", false},
		{"`r#", "`", true},
		{"<<", ">>", true},
		{"<", "x>", false},
		{"<", "$>", false},
		{"<", "_>", false},
		{"<", "a<", false},
		{"< ", ">", false},
	} {
		_, err := Script(c.began, c.ended, "v", "$")
		if c.ok && err != nil {
			t.Fatalf("%q %q: %v", c.began, c.ended, err)
		}
		if !c.ok && !errors.Is(err, ErrInvalidSigil) {
			t.Fatalf("%q %q: got %v", c.began, c.ended, err)
		}
	}
}

func TestReferences(t *testing.T) {
	collect := func(op Operator, text string) (keys []string) {
		for ref := range op.References(text) {
			if op.Apply(ref.Key) != text[ref.Start:ref.End] {
				t.Fatalf("bad offsets %+v in %q", ref, text)
			}
			keys = append(keys, ref.Key)
		}
		return
	}

	for _, c := range []struct {
		op       Operator
		text     string
		expected []string
	}{
		{Moustache, "Hello {{name.first}} {{name.last}}!", []string{"name.first", "name.last"}},
		{Moustache, "{{}} {{ a }} {{{{b}}", []string{"b"}},
		{Moustache, "{{a", nil},
		{Dollar, "$a$ and $b$", []string{"a", "b"}},
		{Dollar, "costs $5 and $c.d$", []string{"c.d"}},
		{RDefault(), "x <- v$a$b + v$c$$", []string{"a.b", "c"}},
		{RDefault(), "uv$a v$ v$b", []string{"b"}},
		{StarlarkDefault(), "v__a__b_x2d_c + 1", []string{"a.b-c"}},
		{MustScript("`r#", "`", "v", "$"), "`r#v$a$b` `r#v$c", []string{"a.b"}},
		{MustScript("`r#", "`", "v", "$"), "`r#v$a$` `r#v$$`", []string{"a.", "."}},
	} {
		if got := collect(c.op, c.text); !slices.Equal(got, c.expected) {
			t.Fatalf("%v %q: got %q", c.op, c.text, got)
		}
	}
}

func TestMatches(t *testing.T) {
	if !Moustache.Matches("{{a}}") {
		t.Fatal()
	}
	if Moustache.Matches("{{a}} ") {
		t.Fatal()
	}
	if Moustache.Matches("x{{a}}") {
		t.Fatal()
	}
	if Moustache.Matches("{{a b}}") {
		t.Fatal()
	}

	// a trailing dot survives only when the whole text is one key
	r := RDefault()
	if !r.Matches("v$a$") {
		t.Fatal()
	}
	if r.Matches("v$a$ ") || r.Matches("v$a b") || r.Matches("v$") {
		t.Fatal()
	}
	if key := r.Entoken("v$a$"); key != "a." {
		t.Fatalf("got %q", key)
	}
}

func TestRekey(t *testing.T) {
	m := Moustache.Rekey(map[string]string{
		"a":   "1",
		"b.c": "2",
	})
	if len(m) != 2 || m["{{a}}"] != "1" || m["{{b.c}}"] != "2" {
		t.Fatalf("got %v", m)
	}
}
