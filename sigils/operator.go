package sigils

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const Theory = `
# Sigil Operators

An operator wraps a bare definition key in the token pair of one target syntax
and unwraps it again. Operators are values: copying one never lets a holder
change the tokens seen by another.

1. Native operators wrap keys verbatim: Began + key + Ended. They are also used
   to recognize references inside definition values and documents.
2. Script operators render a key as an identifier of an embedded scripting
   language: Began + Namespace + Separator + body + Ended. In the body the
   hierarchy dot becomes Separator, letters and digits are kept, and every
   other rune r is written as "_x<hex r>_". The mapping is a pure function of
   the key, so the same key always maps to the same identifier and Entoken
   recovers the key exactly.
3. Entoken never fails. Input that is not a well formed wrapped key is
   returned unchanged (native) or decoded as far as possible (script).
`

type Kind uint8

const (
	KindNative Kind = iota
	KindScript
)

func (k Kind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindScript:
		return "script"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

var ErrInvalidSigil = errors.New("invalid sigil")

type Operator struct {
	kind      Kind
	began     string
	ended     string
	namespace string
	separator string
}

var (
	// Moustache is the default document syntax: {{root.name}}
	Moustache = MustNative("{{", "}}")
	// Dollar is the YAML definition syntax: $root.name$
	Dollar = MustNative("$", "$")
)

// Validate checks a token pair for use by a native operator.
func Validate(began, ended string) error {
	if began == "" || ended == "" {
		return fmt.Errorf("%w: empty token in %q %q", ErrInvalidSigil, began, ended)
	}
	if err := checkToken(began); err != nil {
		return err
	}
	if err := checkToken(ended); err != nil {
		return err
	}
	if began == ended {
		return nil
	}
	// neither token may be read as part of the other
	if strings.Contains(ended, began) || strings.Contains(began, ended) {
		return fmt.Errorf("%w: overlapping tokens %q %q", ErrInvalidSigil, began, ended)
	}
	return nil
}

// validateScriptTokens checks the optional token pair of a script operator.
// The encoded body never contains either token, so only the closing token
// must stay apart from the body alphabet.
func validateScriptTokens(began, ended, separator string) error {
	if began == "" && ended == "" {
		return nil
	}
	if began == "" || ended == "" {
		return fmt.Errorf("%w: script tokens %q %q must be both set or both empty", ErrInvalidSigil, began, ended)
	}
	if err := checkToken(began); err != nil {
		return err
	}
	if err := checkToken(ended); err != nil {
		return err
	}
	if began != ended && strings.Contains(ended, began) {
		return fmt.Errorf("%w: overlapping tokens %q %q", ErrInvalidSigil, began, ended)
	}
	r, _ := utf8.DecodeRuneInString(ended)
	if isLegal(r) || strings.HasPrefix(ended, separator) || strings.HasPrefix(ended, escapeMark[:1]) {
		return fmt.Errorf("%w: closing token %q continues an identifier", ErrInvalidSigil, ended)
	}
	return nil
}

func checkToken(token string) error {
	if strings.IndexFunc(token, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: token %q contains space", ErrInvalidSigil, token)
	}
	if !utf8.ValidString(token) {
		return fmt.Errorf("%w: token %q is not valid text", ErrInvalidSigil, token)
	}
	return nil
}

func Native(began, ended string) (Operator, error) {
	if err := Validate(began, ended); err != nil {
		return Operator{}, err
	}
	return Operator{
		kind:  KindNative,
		began: began,
		ended: ended,
	}, nil
}

func MustNative(began, ended string) Operator {
	op, err := Native(began, ended)
	if err != nil {
		panic(err)
	}
	return op
}

// Script returns an operator producing identifiers like v$root$name for
// namespace "v" and separator "$". The tokens may both be empty.
func Script(began, ended, namespace, separator string) (Operator, error) {
	if namespace == "" {
		return Operator{}, fmt.Errorf("%w: empty namespace", ErrInvalidSigil)
	}
	for i, r := range namespace {
		if !isLegal(r) || i == 0 && unicode.IsDigit(r) {
			return Operator{}, fmt.Errorf("%w: namespace %q is not an identifier", ErrInvalidSigil, namespace)
		}
	}
	if separator == "" || separator == escapeMark[:1] {
		return Operator{}, fmt.Errorf("%w: bad separator %q", ErrInvalidSigil, separator)
	}
	for _, r := range separator {
		if isLegal(r) || unicode.IsSpace(r) {
			return Operator{}, fmt.Errorf("%w: separator %q contains %q", ErrInvalidSigil, separator, r)
		}
	}
	if err := validateScriptTokens(began, ended, separator); err != nil {
		return Operator{}, err
	}
	return Operator{
		kind:      KindScript,
		began:     began,
		ended:     ended,
		namespace: namespace,
		separator: separator,
	}, nil
}

func MustScript(began, ended, namespace, separator string) Operator {
	op, err := Script(began, ended, namespace, separator)
	if err != nil {
		panic(err)
	}
	return op
}

// RDefault renders keys as R list lookups: v$root$name$first
func RDefault() Operator {
	return MustScript("", "", "v", "$")
}

// StarlarkDefault renders keys as Starlark identifiers: v__root__name__first
func StarlarkDefault() Operator {
	return MustScript("", "", "v", "__")
}

func (o Operator) Kind() Kind {
	return o.kind
}

func (o Operator) Began() string {
	return o.began
}

func (o Operator) Ended() string {
	return o.ended
}

func (o Operator) Namespace() string {
	return o.namespace
}

func (o Operator) Separator() string {
	return o.separator
}

func (o Operator) String() string {
	switch o.kind {
	case KindScript:
		return fmt.Sprintf("script(%s%s%s…%s)", o.began, o.namespace, o.separator, o.ended)
	}
	return fmt.Sprintf("native(%s…%s)", o.began, o.ended)
}

func (o Operator) Apply(key string) string {
	switch o.kind {
	case KindScript:
		var b strings.Builder
		b.Grow(len(o.began) + len(o.namespace) + len(o.separator) + len(key)*2 + len(o.ended))
		b.WriteString(o.began)
		b.WriteString(o.namespace)
		b.WriteString(o.separator)
		o.encode(&b, key)
		b.WriteString(o.ended)
		return b.String()
	}
	return o.began + key + o.ended
}

func (o Operator) Entoken(wrapped string) string {
	switch o.kind {

	case KindScript:
		body := wrapped
		if o.began != "" {
			body = strings.TrimPrefix(body, o.began)
		}
		if o.ended != "" {
			body = strings.TrimSuffix(body, o.ended)
		}
		body = strings.TrimPrefix(body, o.namespace+o.separator)
		key, _ := o.decode(body)
		return key

	}

	if len(wrapped) < len(o.began)+len(o.ended) ||
		!strings.HasPrefix(wrapped, o.began) ||
		!strings.HasSuffix(wrapped, o.ended) {
		return wrapped
	}
	return wrapped[len(o.began) : len(wrapped)-len(o.ended)]
}

// Matches reports whether text as a whole is one wrapped key.
func (o Operator) Matches(text string) bool {
	for ref := range o.References(text) {
		if ref.Start == 0 && ref.End == len(text) {
			return true
		}
		break
	}
	if o.kind != KindScript || !strings.HasPrefix(text, o.began+o.namespace+o.separator) {
		return false
	}
	key := o.Entoken(text)
	return key != "" && o.Apply(key) == text
}

// Rekey returns a copy of m with every key wrapped by the operator.
func (o Operator) Rekey(m map[string]string) map[string]string {
	ret := make(map[string]string, len(m))
	for k, v := range m {
		ret[o.Apply(k)] = v
	}
	return ret
}

func isLegal(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
