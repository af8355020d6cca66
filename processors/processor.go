package processors

import (
	"context"
	"sync/atomic"

	"github.com/reusee/vartext/chains"
	"github.com/reusee/vartext/replaces"
	"github.com/reusee/vartext/sigils"
	"go.starlark.net/starlark"
	"golang.org/x/sync/singleflight"
)

const Theory = `
# Variable Processing

A variable processor replaces every wrapped key of a document with its
resolved value in a single left to right pass. Inserted values are never
rescanned.

1. The wrapped key map (Apply(key) -> value) is derived from the resolved
   definitions and published as one immutable entry tagged with the content
   hash of the definitions. Readers load the entry without locking.
2. The entry is rebuilt only when the hash reported by the definitions source
   differs from the published one. Concurrent rebuilds for one hash are
   collapsed into one.
3. A definitions failure (such as a cycle) is returned to the caller; the
   document is never half substituted.
`

// Definitions is the source of resolved values.
type Definitions interface {
	Resolved() (values map[string]string, hash string, err error)
}

type VariableProcessor struct {
	source     Definitions
	operator   sigils.Operator
	dispatcher replaces.Dispatcher
	value      func(string) string
	options    []replaces.Option

	cache    atomic.Pointer[entry]
	group    singleflight.Group
	rebuilds atomic.Int64
}

type entry struct {
	hash    string
	needles map[string]string
}

type Option func(*VariableProcessor)

// WithValues transforms every value before it is inserted.
func WithValues(fn func(string) string) Option {
	return func(p *VariableProcessor) {
		p.value = fn
	}
}

func WithReplaceOptions(options ...replaces.Option) Option {
	return func(p *VariableProcessor) {
		p.options = append(p.options, options...)
	}
}

func New(
	source Definitions,
	operator sigils.Operator,
	dispatcher replaces.Dispatcher,
	options ...Option,
) *VariableProcessor {
	ret := &VariableProcessor{
		source:     source,
		operator:   operator,
		dispatcher: dispatcher,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// NewScript returns a processor for script code: keys render as script
// identifiers and values become string literals.
func NewScript(
	source Definitions,
	operator sigils.Operator,
	dispatcher replaces.Dispatcher,
) *VariableProcessor {
	return New(source, operator, dispatcher,
		WithValues(Quote),
		WithReplaceOptions(replaces.WholeWords()),
	)
}

// Quote renders s as a script string literal.
func Quote(s string) string {
	return starlark.String(s).String()
}

func (p *VariableProcessor) Operator() sigils.Operator {
	return p.operator
}

func (p *VariableProcessor) Apply(text string) (string, error) {
	needles, err := p.needles()
	if err != nil {
		return "", err
	}
	if text == "" || len(needles) == 0 {
		return text, nil
	}
	return p.dispatcher.Replace(text, needles, p.options...), nil
}

func (p *VariableProcessor) Stage(name string) chains.Stage {
	return chains.Stage{
		Name: name,
		Apply: func(_ context.Context, text string) (string, error) {
			return p.Apply(text)
		},
	}
}

func (p *VariableProcessor) needles() (map[string]string, error) {
	values, hash, err := p.source.Resolved()
	if err != nil {
		return nil, err
	}
	if e := p.cache.Load(); e != nil && e.hash == hash {
		return e.needles, nil
	}

	v, err, _ := p.group.Do(hash, func() (any, error) {
		if e := p.cache.Load(); e != nil && e.hash == hash {
			return e, nil
		}
		e := &entry{
			hash:    hash,
			needles: p.entoken(values),
		}
		p.rebuilds.Add(1)
		p.cache.Store(e)
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entry).needles, nil
}

func (p *VariableProcessor) entoken(values map[string]string) map[string]string {
	ret := make(map[string]string, len(values))
	for key, value := range values {
		if p.value != nil {
			value = p.value(value)
		}
		ret[p.operator.Apply(key)] = value
	}
	return ret
}
